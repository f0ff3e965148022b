//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package host

import (
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sys/unix"
)

// cellPixelHeight returns the pixel height of one cell, or 0 when the
// terminal does not report pixel geometry.
func cellPixelHeight(fd int) float64 {
	ws, err := unix.IoctlGetWinsize(fd, unix.TIOCGWINSZ)
	if err != nil || ws.Row == 0 || ws.Ypixel == 0 {
		return 0
	}
	return float64(ws.Ypixel) / float64(ws.Row)
}

// watchResize calls fire on every SIGWINCH until the returned stop func runs.
func watchResize(fire func()) (stop func()) {
	sigs := make(chan os.Signal, 1)
	done := make(chan struct{})
	signal.Notify(sigs, syscall.SIGWINCH)

	go func() {
		for {
			select {
			case <-done:
				return
			case <-sigs:
				fire()
			}
		}
	}()

	return func() {
		signal.Stop(sigs)
		close(done)
	}
}
