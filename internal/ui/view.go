package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/five82/devinfo/internal/device"
)

const (
	labelWidth   = 14
	panelMinimum = 36

	// LayoutCompactWidth is the width below which panels stack vertically.
	LayoutCompactWidth = 100
)

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Measuring..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	return m.renderMain()
}

func (m Model) renderMain() string {
	styles := m.theme.Styles()
	snap := m.snapshot

	header := styles.Title.Render("devinfo") + "  " + m.renderStatus()

	if !snap.HasInfo {
		waiting := styles.MutedText.Render("Waiting for the first snapshot...")
		return lipgloss.JoinVertical(lipgloss.Left, header, "", waiting, "", m.renderFooter())
	}

	panelWidth := m.panelWidth()
	panels := []string{
		m.renderDetailsPanel("Viewport", snap.Info.WindowDetails, panelWidth),
	}
	if !m.hideScreen {
		panels = append(panels, m.renderDetailsPanel("Screen", snap.Info.Screen, panelWidth))
	}
	top := m.joinPanels(panels)
	bottom := m.joinPanels([]string{
		m.renderUserAgentPanel(snap.Info.UserAgent, panelWidth),
		m.renderTerminalPanel(panelWidth),
	})

	return lipgloss.JoinVertical(lipgloss.Left, header, top, bottom, m.renderFooter())
}

func (m Model) joinPanels(panels []string) string {
	if m.width < LayoutCompactWidth {
		return lipgloss.JoinVertical(lipgloss.Left, panels...)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, panels...)
}

func (m Model) panelWidth() int {
	if m.width < LayoutCompactWidth {
		return max(m.width-2, panelMinimum)
	}
	return max(m.width/2-2, panelMinimum)
}

func (m Model) renderStatus() string {
	styles := m.theme.Styles()
	snap := m.snapshot
	if !snap.HasInfo {
		return styles.Warning.Render("measuring")
	}
	parts := []string{
		styles.MutedText.Render(fmt.Sprintf("updates %d", snap.Notifications)),
		styles.MutedText.Render(snap.LastUpdated.Format(time.TimeOnly)),
	}
	if snap.IsHeadless() {
		parts = append(parts, styles.Danger.Render("no display"))
	}
	if m.flash != "" {
		parts = append(parts, styles.AccentText.Render(m.flash))
	}
	return strings.Join(parts, "  ")
}

func (m Model) renderDetailsPanel(title string, d device.WindowDetails, width int) string {
	styles := m.theme.Styles()
	rows := []string{
		styles.PanelTitle.Render(title),
		m.row("Width", formatSize(d.Width)),
		m.row("Height", formatSize(d.Height)),
		styles.Label.Render("Orientation") + styles.OrientationBadge(d, m.theme.Background),
		m.row("Font size", formatFloat(d.DefaultFontSize, "px")),
		m.row("Width (em)", formatFloat(d.WidthEm, "")),
	}
	return styles.Panel.Width(width).Render(strings.Join(rows, "\n"))
}

func (m Model) renderUserAgentPanel(ua device.UserAgent, width int) string {
	styles := m.theme.Styles()
	valueWidth := max(width-labelWidth-4, 8)
	rows := []string{
		styles.PanelTitle.Render("User agent"),
		m.row("Browser", joinNonEmpty(ua.Browser, ua.BrowserVersion)),
		m.row("OS", joinNonEmpty(ua.OS, ua.OSVersion)),
		m.row("Device", orDash(ua.Device)),
		m.row("Class", deviceClass(ua)),
		m.row("Raw", runewidth.Truncate(orDash(ua.Raw), valueWidth, "…")),
	}
	return styles.Panel.Width(width).Render(strings.Join(rows, "\n"))
}

func (m Model) renderTerminalPanel(width int) string {
	styles := m.theme.Styles()
	snap := m.snapshot
	rows := []string{
		styles.PanelTitle.Render("Terminal"),
		m.row("Colors", orDash(snap.Info.ColorProfile)),
		m.row("Notifications", fmt.Sprintf("%d", snap.Notifications)),
		m.row("Flips", fmt.Sprintf("%d", snap.OrientationChanges)),
		m.row("Theme", m.theme.Name),
	}
	return styles.Panel.Width(width).Render(strings.Join(rows, "\n"))
}

func (m Model) renderFooter() string {
	styles := m.theme.Styles()
	return styles.Footer.Render(m.help.View(m.keys))
}

func (m Model) row(label, value string) string {
	styles := m.theme.Styles()
	return styles.Label.Render(label) + styles.Value.Render(value)
}

func formatSize(v int) string {
	if v == device.SizeUnknown {
		return "unknown"
	}
	return fmt.Sprintf("%d", v)
}

func formatFloat(v *float64, unit string) string {
	switch {
	case v == nil:
		return "—"
	case math.IsNaN(*v):
		return "not a number"
	case math.IsInf(*v, 0):
		return "∞"
	}
	return fmt.Sprintf("%.2f%s", *v, unit)
}

func deviceClass(ua device.UserAgent) string {
	var classes []string
	if ua.Mobile {
		classes = append(classes, "mobile")
	}
	if ua.Tablet {
		classes = append(classes, "tablet")
	}
	if ua.Desktop {
		classes = append(classes, "desktop")
	}
	if ua.Bot {
		classes = append(classes, "bot")
	}
	if len(classes) == 0 {
		return "—"
	}
	return strings.Join(classes, ", ")
}

func joinNonEmpty(parts ...string) string {
	var kept []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			kept = append(kept, p)
		}
	}
	if len(kept) == 0 {
		return "—"
	}
	return strings.Join(kept, " ")
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "—"
	}
	return s
}
