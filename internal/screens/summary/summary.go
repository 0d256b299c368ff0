// Package summary shows the evaluation of a finished practice session.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/mastery"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/session"
	"github.com/abhisek/learnpath/internal/ui/components"
	"github.com/abhisek/learnpath/internal/ui/layout"
	"github.com/abhisek/learnpath/internal/ui/theme"
	"github.com/abhisek/learnpath/internal/vark"
)

// Result is everything the summary renders.
type Result struct {
	ConceptName string
	Answered    int
	Correct     int
	Total       int
	Evaluation  session.Evaluation
	Profile     vark.Profile
}

type SummaryScreen struct {
	result Result
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

func New(r Result) *SummaryScreen {
	return &SummaryScreen{result: r}
}

func (s *SummaryScreen) Init() tea.Cmd { return nil }

func (s *SummaryScreen) Title() string { return "Session Summary" }

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Done"}}
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

// ScoreLine describes the session score, or its absence.
func (r Result) ScoreLine() string {
	if r.Evaluation.Score == nil {
		return "No score: nothing was answered"
	}
	change := r.Evaluation.MasteryChange
	sign := "+"
	if change < 0 {
		sign = ""
	}
	return fmt.Sprintf("Score %d%%   (%d/%d correct)   mastery %s%d",
		*r.Evaluation.Score, r.Correct, r.Answered, sign, change)
}

func (s *SummaryScreen) View(width, height int) string {
	r := s.result
	var b strings.Builder

	b.WriteString(theme.Title.Width(width).Render("Session complete: " + r.ConceptName))
	b.WriteString("\n\n")

	scoreStyle := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	if sc := r.Evaluation.Score; sc != nil {
		switch mastery.BandFor(*sc) {
		case mastery.BandStrong:
			scoreStyle = scoreStyle.Foreground(theme.Success)
		case mastery.BandEmerging:
			scoreStyle = scoreStyle.Foreground(theme.Error)
		}
	}
	b.WriteString(layout.Centered(scoreStyle.Render(r.ScoreLine()), width))
	b.WriteString("\n")
	if r.Answered < r.Total {
		b.WriteString(layout.Centered(theme.Hint.Render(fmt.Sprintf("%d of %d questions skipped", r.Total-r.Answered, r.Total)), width))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	for _, rec := range r.Evaluation.Recommendations {
		b.WriteString(layout.Centered(theme.Body.Render("• "+rec), width))
		b.WriteString("\n")
	}

	if next := r.Evaluation.NextPractice; next != nil {
		b.WriteString("\n")
		b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.Accent).Render(
			fmt.Sprintf("Next up: %s (%s, difficulty %.0f)", next.ConceptName, next.Priority, next.RecommendedDifficulty)), width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(layout.Centered(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Learning style"), width))
	b.WriteString("\n")
	b.WriteString(ProfileBars(r.Profile, min(width-8, 60)))
	return b.String()
}

// ProfileBars renders one bar per learning mode, in canonical order.
func ProfileBars(p vark.Profile, width int) string {
	var b strings.Builder
	for _, m := range vark.Modes {
		bar := components.NewProgressBar(m.Title(), p.Get(m), width)
		bar.LabelWidth = 12
		bar.Color = theme.ModeColor(m)
		b.WriteString("  " + bar.View() + "\n")
	}
	return b.String()
}
