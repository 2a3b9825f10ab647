package app

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memoriz/internal/router"
	"github.com/abhisek/memoriz/internal/screen"
	"github.com/abhisek/memoriz/internal/screens/assessment"
	"github.com/abhisek/memoriz/internal/screens/welcome"
	"github.com/abhisek/memoriz/internal/session"
)

type pageScreen struct{ escapes bool }

func (p *pageScreen) Init() tea.Cmd                            { return nil }
func (p *pageScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return p, nil }
func (p *pageScreen) View(int, int) string                    { return "page" }
func (p *pageScreen) Title() string                           { return "Page" }
func (p *pageScreen) HandlesEscape() bool                     { return p.escapes }

func update(t *testing.T, m AppModel, msg tea.Msg) (AppModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	am, ok := next.(AppModel)
	require.True(t, ok)
	return am, cmd
}

func TestFirstScreen(t *testing.T) {
	deps := screen.Deps{Session: session.DefaultConfig()}

	m := newAppModel(deps, Options{})
	assert.IsType(t, &welcome.WelcomeScreen{}, m.router.Active())

	m = newAppModel(deps, Options{Assess: true})
	assert.IsType(t, &assessment.AssessmentScreen{}, m.router.Active())
}

func TestEscapePopsUnlessScreenHandlesIt(t *testing.T) {
	m := newAppModel(screen.Deps{Session: session.DefaultConfig()}, Options{})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, 100, m.width)

	_, cmd := update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	assert.Nil(t, cmd, "root screen stays")

	m, _ = update(t, m, router.PushScreenMsg{Screen: &pageScreen{}})
	_, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	require.NotNil(t, cmd)
	assert.Equal(t, router.PopScreenMsg{}, cmd())

	m, _ = update(t, m, router.ReplaceScreenMsg{Screen: &pageScreen{escapes: true}})
	_, cmd = update(t, m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd != nil {
		_, popped := cmd().(router.PopScreenMsg)
		assert.False(t, popped, "screen handles its own escape")
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newAppModel(screen.Deps{Session: session.DefaultConfig()}, Options{})
	_, cmd := update(t, m, tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
}
