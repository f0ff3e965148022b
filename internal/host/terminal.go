package host

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/five82/devinfo/internal/device"
)

const (
	defaultFontSize = "16px"
	defaultWidth    = 80
	defaultHeight   = 24
)

// TerminalOptions configure a Terminal environment.
type TerminalOptions struct {
	// File is the terminal to measure. Nil uses os.Stdout.
	File *os.File

	// Signals subscribes to SIGWINCH while resize listeners are attached.
	// Leave it off when a UI framework already watches the window and
	// reports sizes through Feed.
	Signals bool

	// DefaultFontSize applies when the terminal reports no pixel geometry.
	DefaultFontSize string

	// Fallback is the size of last resort.
	Fallback device.Size

	// UserAgent overrides the synthesised terminal user agent.
	UserAgent string

	// Getenv reads the environment. Nil uses os.Getenv.
	Getenv func(string) string

	Logger *slog.Logger
}

// Terminal measures the controlling terminal.
type Terminal struct {
	fd      uintptr
	signals bool
	getenv  func(string) string
	logger  *slog.Logger
	agent   string
	profile string

	mu        sync.Mutex
	fed       device.Size
	fallback  device.Size
	fontSize  string
	listeners map[uint64]func()
	nextID    uint64
	stopWatch func()
}

// NewTerminal builds a Terminal environment.
func NewTerminal(opts TerminalOptions) *Terminal {
	file := opts.File
	if file == nil {
		file = os.Stdout
	}
	getenv := opts.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	fontSize := strings.TrimSpace(opts.DefaultFontSize)
	if fontSize == "" {
		fontSize = defaultFontSize
	}
	fallback := opts.Fallback
	if fallback.Width <= 0 {
		fallback.Width = defaultWidth
	}
	if fallback.Height <= 0 {
		fallback.Height = defaultHeight
	}
	agent := strings.TrimSpace(opts.UserAgent)
	if agent == "" {
		agent = UserAgentFromEnv(getenv, runtime.GOOS)
	}

	return &Terminal{
		fd:        file.Fd(),
		signals:   opts.Signals,
		getenv:    getenv,
		logger:    logger,
		agent:     agent,
		profile:   profileName(termenv.EnvColorProfile()),
		fallback:  fallback,
		fontSize:  fontSize,
		listeners: make(map[uint64]func()),
	}
}

// Display implements device.Environment. Output redirected to a file or pipe
// counts as having no display.
func (t *Terminal) Display() (device.Display, bool) {
	if !isatty.IsTerminal(t.fd) && !isatty.IsCygwinTerminal(t.fd) {
		return nil, false
	}
	return t, true
}

// Sizes implements device.Display. Sources, highest priority first: the size
// fed by the UI, the kernel window size, COLUMNS/LINES, the fallback.
func (t *Terminal) Sizes() []device.Size {
	t.mu.Lock()
	fed, fallback := t.fed, t.fallback
	t.mu.Unlock()

	sizes := []device.Size{fed}
	if w, h, err := term.GetSize(int(t.fd)); err == nil {
		sizes = append(sizes, device.Size{Width: w, Height: h})
	} else {
		t.logger.Debug("host: terminal size unavailable", "error", err)
	}
	sizes = append(sizes, device.Size{
		Width:  envInt(t.getenv, "COLUMNS"),
		Height: envInt(t.getenv, "LINES"),
	})
	return append(sizes, fallback)
}

// ComputedFontSize implements device.Display using the cell pixel height.
func (t *Terminal) ComputedFontSize() string {
	if px := cellPixelHeight(int(t.fd)); px > 0 {
		return strconv.FormatFloat(px, 'f', -1, 64) + "px"
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.fontSize
}

// ColorProfile implements device.Display.
func (t *Terminal) ColorProfile() string {
	return t.profile
}

// UserAgent implements device.Environment.
func (t *Terminal) UserAgent() string {
	return t.agent
}

// OnResize implements device.Environment.
func (t *Terminal) OnResize(fn func()) func() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.nextID++
	id := t.nextID
	t.listeners[id] = fn
	if t.signals && t.stopWatch == nil {
		t.stopWatch = watchResize(t.fire)
	}

	return func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		delete(t.listeners, id)
		if len(t.listeners) == 0 && t.stopWatch != nil {
			t.stopWatch()
			t.stopWatch = nil
		}
	}
}

// Feed records a size reported by the UI framework and notifies resize
// listeners.
func (t *Terminal) Feed(width, height int) {
	t.mu.Lock()
	t.fed = device.Size{Width: width, Height: height}
	t.mu.Unlock()
	t.fire()
}

// Configure updates the values config hot reload may change.
func (t *Terminal) Configure(fontSize string, fallback device.Size) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if fs := strings.TrimSpace(fontSize); fs != "" {
		t.fontSize = fs
	}
	if fallback.Width > 0 {
		t.fallback.Width = fallback.Width
	}
	if fallback.Height > 0 {
		t.fallback.Height = fallback.Height
	}
}

func (t *Terminal) fire() {
	t.mu.Lock()
	fns := make([]func(), 0, len(t.listeners))
	for _, fn := range t.listeners {
		fns = append(fns, fn)
	}
	t.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// UserAgentFromEnv synthesises a user-agent string describing the terminal
// emulator, e.g. "iTerm.app/3.5.0 (Macintosh; Mac OS X) xterm-256color".
func UserAgentFromEnv(getenv func(string) string, goos string) string {
	program := strings.TrimSpace(getenv("TERM_PROGRAM"))
	if program == "" {
		program = "terminal"
	}
	version := strings.TrimSpace(getenv("TERM_PROGRAM_VERSION"))
	if version == "" {
		version = "0"
	}
	ua := fmt.Sprintf("%s/%s (%s)", program, version, platformToken(goos))
	if termName := strings.TrimSpace(getenv("TERM")); termName != "" {
		ua += " " + termName
	}
	return ua
}

func platformToken(goos string) string {
	switch goos {
	case "darwin":
		return "Macintosh; Mac OS X"
	case "windows":
		return "Windows NT 10.0"
	case "linux":
		return "X11; Linux"
	case "freebsd", "openbsd", "netbsd", "dragonfly":
		return "X11; " + goos
	default:
		return goos
	}
}

func profileName(p termenv.Profile) string {
	switch p {
	case termenv.TrueColor:
		return "truecolor"
	case termenv.ANSI256:
		return "ansi256"
	case termenv.ANSI:
		return "ansi"
	default:
		return "ascii"
	}
}

func envInt(getenv func(string) string, key string) int {
	n, err := strconv.Atoi(strings.TrimSpace(getenv(key)))
	if err != nil || n < 0 {
		return 0
	}
	return n
}
