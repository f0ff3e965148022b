package host

import (
	"sync"

	"github.com/five82/devinfo/internal/device"
)

// Static is an in-memory environment. Tests and headless runs use it to
// control what the reporter measures.
type Static struct {
	mu          sync.Mutex
	interactive bool
	sizes       []device.Size
	fontSize    string
	profile     string
	agent       string
	listeners   map[uint64]func()
	nextID      uint64
	attaches    int
}

// StaticOptions seed a Static environment.
type StaticOptions struct {
	Interactive  bool
	Width        int
	Height       int
	FontSize     string
	ColorProfile string
	UserAgent    string
}

// NewStatic builds a Static environment.
func NewStatic(opts StaticOptions) *Static {
	return &Static{
		interactive: opts.Interactive,
		sizes:       []device.Size{{Width: opts.Width, Height: opts.Height}},
		fontSize:    opts.FontSize,
		profile:     opts.ColorProfile,
		agent:       opts.UserAgent,
		listeners:   make(map[uint64]func()),
	}
}

// Display implements device.Environment.
func (s *Static) Display() (device.Display, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.interactive {
		return nil, false
	}
	return staticDisplay{
		sizes:    append([]device.Size(nil), s.sizes...),
		fontSize: s.fontSize,
		profile:  s.profile,
	}, true
}

// OnResize implements device.Environment.
func (s *Static) OnResize(fn func()) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	id := s.nextID
	s.listeners[id] = fn
	s.attaches++
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// UserAgent implements device.Environment.
func (s *Static) UserAgent() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.agent
}

// SetInteractive toggles whether a display is attached.
func (s *Static) SetInteractive(interactive bool) {
	s.mu.Lock()
	s.interactive = interactive
	s.mu.Unlock()
}

// SetSizes replaces the measurement sources, highest priority first.
func (s *Static) SetSizes(sizes ...device.Size) {
	s.mu.Lock()
	s.sizes = append([]device.Size(nil), sizes...)
	s.mu.Unlock()
}

// Resize sets the primary size and notifies resize listeners.
func (s *Static) Resize(width, height int) {
	s.mu.Lock()
	s.sizes = []device.Size{{Width: width, Height: height}}
	s.mu.Unlock()
	s.FireResize()
}

// Feed is Resize under the name UI frameworks use to report sizes.
func (s *Static) Feed(width, height int) {
	s.Resize(width, height)
}

// FireResize notifies resize listeners without changing any measurement.
func (s *Static) FireResize() {
	s.mu.Lock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn()
	}
}

// ResizeListeners returns how many resize listeners are attached.
func (s *Static) ResizeListeners() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.listeners)
}

// Attaches counts OnResize calls over the environment's lifetime.
func (s *Static) Attaches() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.attaches
}

type staticDisplay struct {
	sizes    []device.Size
	fontSize string
	profile  string
}

func (d staticDisplay) Sizes() []device.Size { return d.sizes }

func (d staticDisplay) ComputedFontSize() string { return d.fontSize }

func (d staticDisplay) ColorProfile() string { return d.profile }
