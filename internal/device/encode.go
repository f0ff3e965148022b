package device

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
)

type wireDetails struct {
	Width           *int        `json:"width" yaml:"width"`
	Height          *int        `json:"height" yaml:"height"`
	Orientation     Orientation `json:"orientation" yaml:"orientation"`
	DefaultFontSize *float64    `json:"defaultFontSize,omitempty" yaml:"defaultFontSize,omitempty"`
	WidthEm         *float64    `json:"widthEm,omitempty" yaml:"widthEm,omitempty"`
}

type wireInfo struct {
	wireDetails  `yaml:",inline"`
	Screen       wireDetails `json:"screen" yaml:"screen"`
	UserAgent    UserAgent   `json:"userAgent" yaml:"userAgent"`
	ColorProfile string      `json:"colorProfile,omitempty" yaml:"colorProfile,omitempty"`
}

// MarshalJSON writes unknown sizes as null and drops non-finite font numbers.
func (info Info) MarshalJSON() ([]byte, error) {
	return json.Marshal(info.wire())
}

// MarshalYAML mirrors MarshalJSON for gopkg.in/yaml.v3.
func (info Info) MarshalYAML() (interface{}, error) {
	return info.wire(), nil
}

func (info Info) wire() wireInfo {
	return wireInfo{
		wireDetails:  info.WindowDetails.wire(),
		Screen:       info.Screen.wire(),
		UserAgent:    info.UserAgent,
		ColorProfile: info.ColorProfile,
	}
}

func (w WindowDetails) wire() wireDetails {
	out := wireDetails{
		Orientation:     w.Orientation,
		DefaultFontSize: finite(w.DefaultFontSize),
		WidthEm:         finite(w.WidthEm),
	}
	if w.Width != SizeUnknown {
		width := w.Width
		out.Width = &width
	}
	if w.Height != SizeUnknown {
		height := w.Height
		out.Height = &height
	}
	return out
}

// String renders a compact single-line summary such as
// "120x40 landscape font=16px em=7.50".
func (w WindowDetails) String() string {
	var b strings.Builder
	if w.Known() {
		fmt.Fprintf(&b, "%dx%d", w.Width, w.Height)
	} else {
		b.WriteString("unknown")
	}
	b.WriteString(" ")
	b.WriteString(string(w.Orientation))
	if w.DefaultFontSize != nil {
		fmt.Fprintf(&b, " font=%gpx", *w.DefaultFontSize)
	}
	if w.WidthEm != nil {
		fmt.Fprintf(&b, " em=%.2f", *w.WidthEm)
	}
	return b.String()
}

// String renders the whole snapshot on one line, e.g.
// "viewport 120x40 landscape font=16px em=7.50 | screen ... | ua Chrome 120 on Windows 10".
func (info Info) String() string {
	parts := []string{
		"viewport " + info.WindowDetails.String(),
		"screen " + info.Screen.String(),
	}
	if info.ColorProfile != "" {
		parts = append(parts, "colors "+info.ColorProfile)
	}
	if ua := info.UserAgent.String(); ua != "" {
		parts = append(parts, "ua "+ua)
	}
	return strings.Join(parts, " | ")
}

// String summarises the parsed fields, falling back to the raw string.
func (ua UserAgent) String() string {
	var fields []string
	for _, s := range []string{ua.Browser, ua.BrowserVersion} {
		if s != "" {
			fields = append(fields, s)
		}
	}
	if ua.OS != "" {
		platform := ua.OS
		if ua.OSVersion != "" {
			platform += " " + ua.OSVersion
		}
		fields = append(fields, "on "+platform)
	}
	if len(fields) == 0 {
		return ua.Raw
	}
	return strings.Join(fields, " ")
}

func finite(f *float64) *float64 {
	if f == nil || math.IsNaN(*f) || math.IsInf(*f, 0) {
		return nil
	}
	v := *f
	return &v
}
