package device_test

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/five82/devinfo/internal/device"
	"github.com/five82/devinfo/internal/host"
)

func TestBuild_NoDisplayReportsUnknown(t *testing.T) {
	env := host.NewStatic(host.StaticOptions{Width: 500, Height: 300, FontSize: "16px"})

	info := device.Build(env, device.UserAgent{})
	if info.Width != device.SizeUnknown || info.Height != device.SizeUnknown {
		t.Fatalf("size = %dx%d, want unknown", info.Width, info.Height)
	}
	if info.Orientation != device.Landscape {
		t.Fatalf("Orientation = %q, want landscape", info.Orientation)
	}
	if info.DefaultFontSize != nil || info.WidthEm != nil {
		t.Fatalf("font fields = %v/%v, want nil", info.DefaultFontSize, info.WidthEm)
	}
	if info.Known() || info.Screen.Known() {
		t.Fatalf("Known() = true without display")
	}
}

func TestBuild_Orientation(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          device.Orientation
	}{
		{"wider", 120, 40, device.Landscape},
		{"taller", 40, 120, device.Portrait},
		{"square", 80, 80, device.Landscape},
		{"one taller", 79, 80, device.Portrait},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := host.NewStatic(host.StaticOptions{Interactive: true, Width: tt.width, Height: tt.height, FontSize: "16px"})
			info := device.Build(env, device.UserAgent{})
			if info.Orientation != tt.want {
				t.Fatalf("Orientation = %q, want %q", info.Orientation, tt.want)
			}
			if info.Screen.Orientation != tt.want {
				t.Fatalf("Screen.Orientation = %q, want %q", info.Screen.Orientation, tt.want)
			}
		})
	}
}

func TestBuild_WidthEmTimesFontSizeIsWidth(t *testing.T) {
	for _, fontSize := range []string{"16px", "13.5px", "9px", "32"} {
		env := host.NewStatic(host.StaticOptions{Interactive: true, Width: 173, Height: 51, FontSize: fontSize})
		info := device.Build(env, device.UserAgent{})
		if info.DefaultFontSize == nil || info.WidthEm == nil {
			t.Fatalf("%s: font fields missing", fontSize)
		}
		got := *info.WidthEm * *info.DefaultFontSize
		if math.Abs(got-173) > 1e-9 {
			t.Fatalf("%s: WidthEm*font = %v, want 173", fontSize, got)
		}
	}
}

func TestBuild_SizePriorityPerDimension(t *testing.T) {
	env := host.NewStatic(host.StaticOptions{Interactive: true, FontSize: "16px"})
	env.SetSizes(
		device.Size{Width: 0, Height: 0},
		device.Size{Width: 150, Height: 0},
		device.Size{Width: 80, Height: 60},
	)
	info := device.Build(env, device.UserAgent{})
	if info.Width != 150 || info.Height != 60 {
		t.Fatalf("size = %dx%d, want 150x60", info.Width, info.Height)
	}
}

func TestBuild_ScreenIsIndependentCopy(t *testing.T) {
	env := host.NewStatic(host.StaticOptions{Interactive: true, Width: 100, Height: 50, FontSize: "10px"})
	info := device.Build(env, device.UserAgent{Browser: "Chrome"})

	if info.Screen.Width != info.Width || info.Screen.Height != info.Height {
		t.Fatalf("Screen = %v, want same as window %v", info.Screen, info.WindowDetails)
	}
	*info.Screen.DefaultFontSize = 99
	if *info.DefaultFontSize != 10 {
		t.Fatalf("DefaultFontSize = %v after mutating Screen, want 10", *info.DefaultFontSize)
	}
	if info.UserAgent.Browser != "Chrome" {
		t.Fatalf("UserAgent.Browser = %q, want Chrome", info.UserAgent.Browser)
	}
}

func TestParseFontSize(t *testing.T) {
	tests := []struct {
		in   string
		want float64
		nan  bool
	}{
		{"16px", 16, false},
		{" 12.5px ", 12.5, false},
		{"20", 20, false},
		{"", 0, false},
		{"px", 0, false},
		{"medium", 0, true},
		{"16pt", 0, true},
	}
	for _, tt := range tests {
		got := device.ParseFontSize(tt.in)
		if tt.nan {
			if !math.IsNaN(got) {
				t.Fatalf("ParseFontSize(%q) = %v, want NaN", tt.in, got)
			}
			continue
		}
		if got != tt.want {
			t.Fatalf("ParseFontSize(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestBuild_MalformedFontSizePassesThrough(t *testing.T) {
	env := host.NewStatic(host.StaticOptions{Interactive: true, Width: 100, Height: 50, FontSize: "large"})
	info := device.Build(env, device.UserAgent{})
	if info.DefaultFontSize == nil || !math.IsNaN(*info.DefaultFontSize) {
		t.Fatalf("DefaultFontSize = %v, want NaN", info.DefaultFontSize)
	}
	if info.WidthEm == nil || !math.IsNaN(*info.WidthEm) {
		t.Fatalf("WidthEm = %v, want NaN", info.WidthEm)
	}

	// Non-finite values must not break encoding.
	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	if strings.Contains(string(data), "defaultFontSize") {
		t.Fatalf("json = %s, want NaN font size omitted", data)
	}
}

func TestInfo_JSONWritesUnknownAsNull(t *testing.T) {
	env := host.NewStatic(host.StaticOptions{})
	info := device.Build(env, device.UserAgent{Browser: "Firefox"})

	data, err := json.Marshal(info)
	if err != nil {
		t.Fatalf("json.Marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	if v, ok := decoded["width"]; !ok || v != nil {
		t.Fatalf("width = %v (present %v), want null", v, ok)
	}
	if decoded["orientation"] != "landscape" {
		t.Fatalf("orientation = %v, want landscape", decoded["orientation"])
	}
	screen, ok := decoded["screen"].(map[string]any)
	if !ok || screen["height"] != nil {
		t.Fatalf("screen = %v, want height null", decoded["screen"])
	}
	ua, ok := decoded["userAgent"].(map[string]any)
	if !ok || ua["browser"] != "Firefox" {
		t.Fatalf("userAgent = %v, want browser Firefox", decoded["userAgent"])
	}
}

func TestInfo_YAML(t *testing.T) {
	env := host.NewStatic(host.StaticOptions{Interactive: true, Width: 120, Height: 40, FontSize: "16px", ColorProfile: "truecolor"})
	info := device.Build(env, device.UserAgent{})

	data, err := yaml.Marshal(info)
	if err != nil {
		t.Fatalf("yaml.Marshal: %v", err)
	}
	out := string(data)
	for _, want := range []string{"width: 120", "height: 40", "orientation: landscape", "screen:", "colorProfile: truecolor", "widthEm: 7.5"} {
		if !strings.Contains(out, want) {
			t.Fatalf("yaml output missing %q:\n%s", want, out)
		}
	}
}

func TestWindowDetails_String(t *testing.T) {
	env := host.NewStatic(host.StaticOptions{Interactive: true, Width: 120, Height: 40, FontSize: "16px"})
	got := device.Build(env, device.UserAgent{}).WindowDetails.String()
	if got != "120x40 landscape font=16px em=7.50" {
		t.Fatalf("String = %q", got)
	}

	headless := device.Build(host.NewStatic(host.StaticOptions{}), device.UserAgent{}).WindowDetails.String()
	if headless != "unknown landscape" {
		t.Fatalf("String = %q, want %q", headless, "unknown landscape")
	}
}

func TestInfo_StringIncludesEverySection(t *testing.T) {
	env := host.NewStatic(host.StaticOptions{Interactive: true, Width: 120, Height: 40, FontSize: "16px", ColorProfile: "truecolor"})
	ua := device.ParseUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	info := device.Build(env, ua)

	got := fmt.Sprint(info)
	if got != info.String() {
		t.Fatalf("fmt.Sprint = %q, want Info.String %q", got, info.String())
	}
	for _, want := range []string{
		"viewport 120x40 landscape font=16px em=7.50",
		"screen 120x40 landscape",
		"colors truecolor",
		"ua Chrome 120.0.0.0 on Windows",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("String = %q, missing %q", got, want)
		}
	}

	raw := device.UserAgent{Raw: "curl/8.0"}
	if raw.String() != "curl/8.0" {
		t.Fatalf("UserAgent.String = %q, want raw fallback", raw.String())
	}
}

func TestParseUserAgent(t *testing.T) {
	chrome := device.ParseUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	if chrome.Browser != "Chrome" || chrome.OS != "Windows" || !chrome.Desktop {
		t.Fatalf("chrome = %+v, want Chrome on Windows desktop", chrome)
	}

	iphone := device.ParseUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.0 Mobile/15E148 Safari/604.1")
	if iphone.OS != "iOS" || !iphone.Mobile {
		t.Fatalf("iphone = %+v, want mobile iOS", iphone)
	}

	empty := device.ParseUserAgent("")
	if empty.Browser != "" || empty.Raw != "" {
		t.Fatalf("empty = %+v, want zero fields", empty)
	}
}
