package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. All colors used by the CLI are named here.
var (
	// ColorCyan is used for identifiable nouns: module keys, paths, architectures.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "parsed" status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for the "skipped" status.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for the "broken" status.
	ColorRed = lipgloss.Color("196")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleDim styles structural chrome.
	StyleDim = lipgloss.NewStyle().Faint(true)
)

// Styles groups the styles used by tree rendering.
type Styles struct {
	Bold  lipgloss.Style
	Muted lipgloss.Style
}

// GetStyles returns the shared styles.
func GetStyles() Styles {
	return Styles{
		Bold:  lipgloss.NewStyle().Bold(true),
		Muted: lipgloss.NewStyle().Foreground(ColorDimGray),
	}
}

// Module file statuses reported during collection.
const (
	StatusParsed  = "parsed"
	StatusListed  = "listed"
	StatusBroken  = "broken"
	StatusSkipped = "skipped"
)

// statusStyle returns the style for a module file status. Unknown statuses
// are unstyled.
func statusStyle(status string) lipgloss.Style {
	switch status {
	case StatusParsed:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusListed:
		return lipgloss.NewStyle().Faint(true)
	case StatusSkipped:
		return lipgloss.NewStyle().Foreground(ColorYellow)
	case StatusBroken:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minKeyColumnWidth keeps status words aligned across lines.
const minKeyColumnWidth = 48

// FormatModuleLine renders a module key with a right-aligned, color-coded
// status suffix: m:<category/package/version>  <status>
func FormatModuleLine(category, pkg, version, status string) string {
	path := category + "/" + pkg + "/" + version

	padding := minKeyColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("m:") +
		StyleNoun.Render(path) +
		strings.Repeat(" ", padding) +
		statusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}

// vetLabelWidth aligns the detail column of FormatVetCheck.
const vetLabelWidth = 32

// FormatVetCheck renders a passed check with an optional aligned detail.
func FormatVetCheck(label, detail string) string {
	line := FormatCheckmark(label)
	if detail == "" {
		return line
	}
	padding := vetLabelWidth - len(label)
	if padding < 2 {
		padding = 2
	}
	return line + strings.Repeat(" ", padding) + StyleDim.Render(detail)
}
