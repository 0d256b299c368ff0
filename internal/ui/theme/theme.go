// Package theme holds the terminal color palette and shared styles.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/vark"
)

// Palette
var (
	Primary   = lipgloss.Color("#6366F1") // Indigo
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
)

// One color per learning mode, used for profile bars and question tags.
var modeColors = map[vark.Mode]color.Color{
	vark.Visual:      lipgloss.Color("#38BDF8"),
	vark.Auditory:    lipgloss.Color("#A78BFA"),
	vark.Reading:     lipgloss.Color("#FBBF24"),
	vark.Kinesthetic: lipgloss.Color("#34D399"),
}

// ModeColor returns the color for m, or Text for an unknown mode.
func ModeColor(m vark.Mode) color.Color {
	if c, ok := modeColors[m]; ok {
		return c
	}
	return Text
}

var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Divider = lipgloss.NewStyle().
		Foreground(Border)
)
