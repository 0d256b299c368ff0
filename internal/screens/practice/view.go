package practice

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

func (s *PracticeScreen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return renderError(width, s.errMsg)
	case s.sess == nil:
		return renderStatus(width, "Preparing your session...")
	case s.confirmQuit:
		return renderQuitConfirm(width)
	case s.feedback != nil:
		return s.renderFeedback(width)
	case s.busy:
		return renderStatus(width, "Checking...")
	}
	return s.renderQuestion(width)
}

func (s *PracticeScreen) renderQuestion(width int) string {
	q, ok := s.current()
	if !ok {
		return renderStatus(width, "Wrapping up...")
	}

	var b strings.Builder

	tag := lipgloss.NewStyle().Foreground(theme.ModeColor(q.Mode)).Bold(true).Render(string(q.Mode))
	left := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).Render("  " + q.ConceptName)
	if q.Review {
		left += theme.Hint.Render("  review")
	}
	right := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("Q %d/%d  %s %d  ", s.index+1, len(s.sess.Questions),
			lipgloss.NewStyle().Foreground(theme.Success).Render("*"), s.correct)) + tag

	line := left
	if pad := width - lipgloss.Width(left) - lipgloss.Width(right) - 2; pad > 0 {
		line += strings.Repeat(" ", pad) + right
	}
	b.WriteString(line)
	b.WriteString("\n")
	b.WriteString(theme.Divider.Render(strings.Repeat("─", max(0, width-2))))
	b.WriteString("\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text))
	b.WriteString("\n\n")

	if s.mcActive {
		b.WriteString(layout.Centered(s.choice.View(), width))
	} else {
		b.WriteString(layout.Centered("Answer: "+s.input.View(), width))
	}
	return b.String()
}

func (s *PracticeScreen) renderFeedback(width int) string {
	res := s.feedback
	var b strings.Builder
	b.WriteString("\n")

	if s.mcActive {
		b.WriteString(layout.Centered(s.choice.View(), width))
		b.WriteString("\n")
	}

	if res.Correct {
		b.WriteString(layout.Centered(theme.Correct.Render("Correct!"), width))
	} else {
		b.WriteString(layout.Centered(theme.Incorrect.Render("Not quite"), width))
		b.WriteString("\n")
		b.WriteString(layout.Centered(
			lipgloss.NewStyle().Foreground(theme.TextDim).Render("Correct answer: "+res.CorrectAnswer), width))
	}
	b.WriteString("\n\n")

	if res.Explanation != "" {
		exp := lipgloss.NewStyle().Width(min(width-8, 70)).Foreground(theme.Text).Render(res.Explanation)
		b.WriteString(layout.Centered(exp, width))
		b.WriteString("\n\n")
	}
	if !res.Correct && len(res.Hints) > 0 {
		for _, h := range res.Hints {
			b.WriteString(layout.Centered(theme.Hint.Render("Hint: "+h), width))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(layout.Centered(theme.Hint.Render("Press any key to continue..."), width))
	return b.String()
}

func renderQuitConfirm(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render("Finish the session now?"), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Only answered questions count toward your score."), width))
	b.WriteString("\n\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Success).Render("[Y] Yes, finish"), width))
	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Primary).Render("[N] No, keep going"), width))
	return b.String()
}

func renderStatus(width int, msg string) string {
	return "\n\n\n" + layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim).Render(msg), width)
}

func renderError(width int, msg string) string {
	return "\n\n\n" + layout.Centered(
		lipgloss.NewStyle().Foreground(theme.Error).Render("Error: "+msg+"\n\nPress any key to exit."), width)
}
