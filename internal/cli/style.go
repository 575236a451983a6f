package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Palette for terminal output. Dark is used on dark backgrounds.
var (
	ColorSuccess = lipgloss.AdaptiveColor{Dark: "#22c55e", Light: "#16a34a"}
	ColorError   = lipgloss.AdaptiveColor{Dark: "#ef4444", Light: "#dc2626"}
	ColorWarning = lipgloss.AdaptiveColor{Dark: "#f59e0b", Light: "#d97706"}
	ColorMuted   = lipgloss.AdaptiveColor{Dark: "#6b7280", Light: "#9ca3af"}
	ColorAccent  = lipgloss.AdaptiveColor{Dark: "#a78bfa", Light: "#7c3aed"} // reference IDs
	ColorURL     = lipgloss.AdaptiveColor{Dark: "#38bdf8", Light: "#0284c7"}
)

var (
	StyleSuccess = lipgloss.NewStyle().Foreground(ColorSuccess)
	StyleError   = lipgloss.NewStyle().Foreground(ColorError)
	StyleWarning = lipgloss.NewStyle().Foreground(ColorWarning)
	StyleMuted   = lipgloss.NewStyle().Foreground(ColorMuted)
	StyleID      = lipgloss.NewStyle().Foreground(ColorAccent)
	StyleURL     = lipgloss.NewStyle().Foreground(ColorURL)
	StyleBold    = lipgloss.NewStyle().Bold(true)

	styleTitle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorAccent).
			Padding(0, 2).
			Bold(true)
)

const (
	IconSuccess = "✓"
	IconError   = "✗"
	IconWarning = "!"
	IconInfo    = "→"

	swatchBlock = "██"
)

func printStatus(w io.Writer, icon string, format string, args ...any) {
	fmt.Fprintf(w, "%s %s\n", icon, fmt.Sprintf(format, args...))
}

// PrintSuccess prints a green-ticked line to stdout.
func PrintSuccess(format string, args ...any) {
	printStatus(os.Stdout, StyleSuccess.Render(IconSuccess), format, args...)
}

// PrintError prints a red-crossed line to stderr.
func PrintError(format string, args ...any) {
	printStatus(os.Stderr, StyleError.Render(IconError), format, args...)
}

// PrintWarning prints to stderr so warnings never pollute --json output.
func PrintWarning(format string, args ...any) {
	printStatus(os.Stderr, StyleWarning.Render(IconWarning), format, args...)
}

func PrintInfo(format string, args ...any) {
	printStatus(os.Stdout, StyleMuted.Render(IconInfo), format, args...)
}

func RenderID(id string) string { return StyleID.Render(id) }
func RenderURL(url string) string { return StyleURL.Render(url) }
func RenderMuted(text string) string { return StyleMuted.Render(text) }
func RenderBold(text string) string { return StyleBold.Render(text) }

// ColorSwatch renders a two-cell block in hexColor.
func ColorSwatch(hexColor string) string {
	if hexColor == "" {
		return StyleMuted.Render(swatchBlock)
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hexColor)).Render(swatchBlock)
}

// ColorChip renders text on a hexColor background. Dark backgrounds get
// white text.
func ColorChip(text, hexColor string, dark bool) string {
	fg := lipgloss.Color("#000000")
	if dark {
		fg = lipgloss.Color("#ffffff")
	}
	return lipgloss.NewStyle().
		Background(lipgloss.Color(hexColor)).
		Foreground(fg).
		Padding(0, 1).
		Render(text)
}

// TitleBox renders a title in a bordered box.
func TitleBox(title string) string {
	return styleTitle.Render(title)
}
