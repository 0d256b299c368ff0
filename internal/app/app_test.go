package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/screen"
	"github.com/abhisek/learnpath/internal/ui/layout"
)

type stubScreen struct{ initRan bool }

func (s *stubScreen) Init() tea.Cmd                           { s.initRan = true; return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                    { return "body" }
func (s *stubScreen) Title() string                           { return "Stub" }
func (s *stubScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "X", Description: "Do"}}
}

func TestAppModel_InitRunsInitialScreen(t *testing.T) {
	s := &stubScreen{}
	m := NewAppModel(s, "amy")
	m.Init()
	assert.True(t, s.initRan)
}

func TestAppModel_CtrlCQuits(t *testing.T) {
	m := NewAppModel(&stubScreen{}, "amy")
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestAppModel_View(t *testing.T) {
	var model tea.Model = NewAppModel(&stubScreen{}, "amy")
	model, _ = model.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	out := model.(AppModel).render()
	assert.Contains(t, out, "Stub")
	assert.Contains(t, out, "amy")
	assert.Contains(t, out, "body")
}

func TestAppModel_TooSmall(t *testing.T) {
	var model tea.Model = NewAppModel(&stubScreen{}, "amy")
	model, _ = model.Update(tea.WindowSizeMsg{Width: 20, Height: 10})
	assert.Contains(t, model.(AppModel).render(), "Terminal too small")
}
