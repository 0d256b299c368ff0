package components

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/ui/theme"
)

// MultiChoice is an option selector. The correct option is unknown until
// Reveal is called with the graded answer.
type MultiChoice struct {
	Options  []string
	Selected int
	Chosen   int
	correct  string
}

func NewMultiChoice(options []string) MultiChoice {
	return MultiChoice{Options: options, Chosen: -1}
}

// Update moves the cursor. Digit keys jump straight to an option; enter
// and digits both choose.
func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Chosen >= 0 {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Chosen = m.Selected
	default:
		if n, err := strconv.Atoi(key); err == nil && n >= 1 && n <= len(m.Options) {
			m.Selected = n - 1
			m.Chosen = m.Selected
		}
	}
	return m, nil
}

// Answer returns the chosen option text.
func (m MultiChoice) Answer() (string, bool) {
	if m.Chosen < 0 || m.Chosen >= len(m.Options) {
		return "", false
	}
	return m.Options[m.Chosen], true
}

// Reveal marks correct as the right option for rendering.
func (m *MultiChoice) Reveal(correct string) {
	m.correct = correct
}

func (m MultiChoice) View() string {
	var b strings.Builder
	for i, opt := range m.Options {
		prefix := "  "
		if i == m.Selected && m.Chosen < 0 {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%d) %s", prefix, i+1, opt)

		style := lipgloss.NewStyle().Foreground(theme.Text)
		switch {
		case m.correct != "" && strings.EqualFold(opt, m.correct):
			style = theme.Correct
		case i == m.Chosen && m.correct != "":
			style = theme.Incorrect
		case i == m.Selected && m.Chosen < 0:
			style = theme.Selected
		case m.Chosen >= 0:
			style = style.Foreground(theme.TextDim)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
