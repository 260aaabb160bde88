package color

import (
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/muesli/termenv"
)

// Define colors
var (
	Success = lipgloss.AdaptiveColor{Light: "#05A167", Dark: "#05D176"}
	Error   = lipgloss.AdaptiveColor{Light: "#E06A56", Dark: "#F97171"}
	Warning = lipgloss.AdaptiveColor{Light: "#E0A956", Dark: "#F9C171"}
	Subtle  = lipgloss.AdaptiveColor{Light: "#9B9B9B", Dark: "#5C5C5C"}
)

// Define styles. Tabs are left alone so expressions print exactly as written.
var (
	SuccessStyle = lipgloss.NewStyle().Foreground(Success).TabWidth(lipgloss.NoTabConversion)
	ErrorStyle   = lipgloss.NewStyle().Foreground(Error).TabWidth(lipgloss.NoTabConversion)
	WarningStyle = lipgloss.NewStyle().Foreground(Warning).TabWidth(lipgloss.NoTabConversion)
	SubtleStyle  = lipgloss.NewStyle().Foreground(Subtle).TabWidth(lipgloss.NoTabConversion)
)

// Initialize switches rendering to plain text when noColor is set or
// NO_COLOR is present in the environment.
func Initialize(noColor bool) {
	if noColor || os.Getenv("NO_COLOR") != "" {
		lipgloss.SetColorProfile(termenv.Ascii)
		text.DisableColors()
	}
}

// PassedMarker renders the expression check pass marker.
func PassedMarker() string {
	return "[ " + SuccessStyle.Render("PASSED") + " ]"
}

// FailedMarker renders the expression check failure marker.
func FailedMarker() string {
	return "[ " + ErrorStyle.Render("FAILED") + " ]"
}

// Good renders text in the success colour.
func Good(s string) string {
	return render(SuccessStyle, s)
}

// Bad renders text in the error colour.
func Bad(s string) string {
	return render(ErrorStyle, s)
}

// Warn renders text in the warning colour.
func Warn(s string) string {
	return render(WarningStyle, s)
}

// Muted renders de-emphasized text.
func Muted(s string) string {
	return render(SubtleStyle, s)
}

// render colours each line on its own; lipgloss pads multi-line blocks
// to a common width.
func render(style lipgloss.Style, s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = style.Render(line)
		}
	}
	return strings.Join(lines, "\n")
}
