package device

import (
	"math"
	"strconv"
	"strings"
)

// Build measures env and returns a snapshot carrying the given parsed user agent.
func Build(env Environment, ua UserAgent) Info {
	details := WindowDetails{
		Width:       SizeUnknown,
		Height:      SizeUnknown,
		Orientation: Landscape,
	}

	var profile string
	if display, ok := env.Display(); ok && display != nil {
		details.Width, details.Height = pickSize(display.Sizes())
		details.Orientation = OrientationOf(details.Width, details.Height)

		fontSize := ParseFontSize(display.ComputedFontSize())
		widthEm := float64(details.Width) / fontSize
		details.DefaultFontSize = &fontSize
		details.WidthEm = &widthEm

		profile = display.ColorProfile()
	}

	return Info{
		WindowDetails: details,
		Screen:        details.Clone(),
		UserAgent:     ua,
		ColorProfile:  profile,
	}
}

// OrientationOf classifies a viewport. Square viewports count as landscape.
func OrientationOf(width, height int) Orientation {
	if width >= height {
		return Landscape
	}
	return Portrait
}

// ParseFontSize converts a computed font size such as "16px" into pixels.
// Blank input yields 0 and anything unparsable yields NaN; neither is an error.
func ParseFontSize(raw string) float64 {
	trimmed := strings.TrimSpace(strings.Replace(raw, "px", "", 1))
	if trimmed == "" {
		return 0
	}
	value, err := strconv.ParseFloat(trimmed, 64)
	if err != nil {
		return math.NaN()
	}
	return value
}

func pickSize(sizes []Size) (width, height int) {
	for _, s := range sizes {
		if width == 0 && s.Width > 0 {
			width = s.Width
		}
		if height == 0 && s.Height > 0 {
			height = s.Height
		}
	}
	return width, height
}
