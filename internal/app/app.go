// Package app is the root bubbletea model of the terminal practice runner.
package app

import (
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/learnpath/internal/router"
	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/ui/layout"
)

// AppModel frames the active screen with a header and footer.
type AppModel struct {
	router  *router.Router
	student string
	width   int
	height  int
}

func NewAppModel(initial screen.Screen, student string) AppModel {
	return AppModel{router: router.New(initial), student: student}
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, m.router.Update(msg)
}

func (m AppModel) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	return v
}

func (m AppModel) render() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	hints := []layout.KeyHint{{Key: "Ctrl+C", Description: "Quit"}}
	if active != nil {
		title = active.Title()
		if hp, ok := active.(screen.KeyHintProvider); ok {
			hints = append(hp.KeyHints(), hints...)
		}
	}

	header := layout.RenderHeader(title, m.student, m.width)
	footer := layout.RenderFooter(hints, m.width)
	contentHeight := max(0, m.height-lipgloss.Height(header)-lipgloss.Height(footer))
	return layout.RenderFrame(header, m.router.View(m.width, contentHeight), footer, m.width, m.height)
}

// Run shows initial until a screen quits.
func Run(initial screen.Screen, student string) error {
	p := tea.NewProgram(NewAppModel(initial, student))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}
