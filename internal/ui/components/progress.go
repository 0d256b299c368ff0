package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/ui/theme"
)

// ProgressBar is a horizontal bar for a 0-100 value.
type ProgressBar struct {
	Label      string
	LabelWidth int
	Value      float64
	Width      int
	Color      color.Color
}

func NewProgressBar(label string, value float64, width int) ProgressBar {
	return ProgressBar{Label: label, Value: value, Width: width, Color: theme.Secondary}
}

func (p ProgressBar) View() string {
	var out string
	if p.Label != "" {
		out = lipgloss.NewStyle().
			Foreground(theme.Text).
			Width(max(p.LabelWidth, lipgloss.Width(p.Label))).
			Render(p.Label) + "  "
	}

	const valueWidth = 7
	barWidth := max(4, p.Width-lipgloss.Width(out)-valueWidth)
	filled := min(barWidth, max(0, int(float64(barWidth)*p.Value/100+0.5)))

	out += lipgloss.NewStyle().Background(p.Color).Render(strings.Repeat(" ", filled))
	out += lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", barWidth-filled))
	out += lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %5.1f%%", p.Value))
	return out
}
