package device

// SizeUnknown marks a dimension that could not be measured because no
// interactive display was attached. It is distinct from a measured zero.
const SizeUnknown = -1

// Orientation of the viewport.
type Orientation string

const (
	Landscape Orientation = "landscape"
	Portrait  Orientation = "portrait"
)

// Size is a width/height pair in cells.
type Size struct {
	Width  int
	Height int
}

// WindowDetails describes the viewport at one instant.
type WindowDetails struct {
	Width       int
	Height      int
	Orientation Orientation

	// DefaultFontSize is the parsed computed font size in pixels. It is nil
	// when no display is attached and may be NaN when the host reported
	// something unparsable.
	DefaultFontSize *float64

	// WidthEm is Width divided by DefaultFontSize.
	WidthEm *float64
}

// Known reports whether both dimensions were measured.
func (w WindowDetails) Known() bool {
	return w.Width != SizeUnknown && w.Height != SizeUnknown
}

// Clone returns a copy that shares no pointers with w.
func (w WindowDetails) Clone() WindowDetails {
	w.DefaultFontSize = cloneFloat(w.DefaultFontSize)
	w.WidthEm = cloneFloat(w.WidthEm)
	return w
}

// UserAgent holds the parsed fields of a user-agent string.
type UserAgent struct {
	Raw            string `json:"raw" yaml:"raw"`
	Browser        string `json:"browser" yaml:"browser"`
	BrowserVersion string `json:"browserVersion" yaml:"browserVersion"`
	OS             string `json:"os" yaml:"os"`
	OSVersion      string `json:"osVersion" yaml:"osVersion"`
	Device         string `json:"device" yaml:"device"`
	Mobile         bool   `json:"mobile" yaml:"mobile"`
	Tablet         bool   `json:"tablet" yaml:"tablet"`
	Desktop        bool   `json:"desktop" yaml:"desktop"`
	Bot            bool   `json:"bot" yaml:"bot"`
}

// Info is a complete device snapshot delivered to listeners.
type Info struct {
	WindowDetails
	Screen       WindowDetails
	UserAgent    UserAgent
	ColorProfile string
}

// Clone returns a deep copy of info.
func (info Info) Clone() Info {
	info.WindowDetails = info.WindowDetails.Clone()
	info.Screen = info.Screen.Clone()
	return info
}

// Listener receives device snapshots.
type Listener func(Info)

// Display is an attached, interactive viewport.
type Display interface {
	// Sizes lists candidate measurements in priority order. For each
	// dimension the first non-zero value wins.
	Sizes() []Size

	// ComputedFontSize returns the default font size as a CSS-like pixel
	// string, e.g. "16px".
	ComputedFontSize() string

	// ColorProfile names the colour capability of the display.
	ColorProfile() string
}

// Environment is the host the reporter measures.
type Environment interface {
	// Display returns the attached display, or false when running without
	// an interactive surface.
	Display() (Display, bool)

	// OnResize arranges for fn to be called on every viewport resize and
	// returns a function that removes it. Implementations must not call fn
	// synchronously from OnResize.
	OnResize(fn func()) (remove func())

	// UserAgent is the host's own user-agent string.
	UserAgent() string
}

func cloneFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	v := *f
	return &v
}
