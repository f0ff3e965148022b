package device

import "github.com/mileusna/useragent"

// ParseUserAgent extracts browser, OS and device fields from raw. Malformed
// input produces empty or partial fields rather than an error.
func ParseUserAgent(raw string) UserAgent {
	parsed := useragent.Parse(raw)
	return UserAgent{
		Raw:            raw,
		Browser:        parsed.Name,
		BrowserVersion: parsed.Version,
		OS:             parsed.OS,
		OSVersion:      parsed.OSVersion,
		Device:         parsed.Device,
		Mobile:         parsed.Mobile,
		Tablet:         parsed.Tablet,
		Desktop:        parsed.Desktop,
		Bot:            parsed.Bot,
	}
}
