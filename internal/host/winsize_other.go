//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package host

func cellPixelHeight(int) float64 {
	return 0
}

// watchResize is a no-op where SIGWINCH does not exist; sizes arrive via Feed.
func watchResize(func()) (stop func()) {
	return func() {}
}
