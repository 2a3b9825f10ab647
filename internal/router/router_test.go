package router

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/memoriz/internal/screen"
)

type resumeCountMsg int

// fakeScreen records what the router does to it.
type fakeScreen struct {
	name    string
	inits   int
	resumed int
	seen    []tea.Msg
}

func (s *fakeScreen) Init() tea.Cmd {
	s.inits++
	return nil
}

func (s *fakeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	s.seen = append(s.seen, msg)
	if _, ok := msg.(ResumedMsg); ok {
		s.resumed++
		n := s.resumed
		return s, func() tea.Msg { return resumeCountMsg(n) }
	}
	return s, nil
}

func (s *fakeScreen) View(int, int) string { return s.name }
func (s *fakeScreen) Title() string        { return s.name }

func TestAssessmentFlow(t *testing.T) {
	home := &fakeScreen{name: "home"}
	test := &fakeScreen{name: "test"}
	report := &fakeScreen{name: "report"}
	r := New(home)

	r.Update(PushScreenMsg{Screen: test})
	assert.Equal(t, 1, test.inits)
	assert.Equal(t, 2, r.Depth())

	r.Update(ReplaceScreenMsg{Screen: report})
	assert.Equal(t, 1, report.inits)
	assert.Equal(t, 2, r.Depth(), "replace keeps depth")
	assert.Equal(t, "report", r.View(80, 24))

	cmd := r.Update(PopToRootMsg{})
	require.NotNil(t, cmd)
	assert.Equal(t, resumeCountMsg(1), cmd())
	assert.Same(t, home, r.Active())
	assert.Equal(t, 0, test.resumed)
}

func TestPopResumesScreenBelow(t *testing.T) {
	home := &fakeScreen{name: "home"}
	r := New(home)
	r.Push(&fakeScreen{name: "stats"})
	r.Push(&fakeScreen{name: "history"})

	r.Pop()
	assert.Equal(t, "stats", r.Active().Title())
	assert.Equal(t, 0, home.resumed)

	r.Pop()
	assert.Equal(t, 1, home.resumed)
}

func TestRootIsNeverPopped(t *testing.T) {
	home := &fakeScreen{name: "home"}
	r := New(home)

	assert.Nil(t, r.Update(PopScreenMsg{}))
	assert.Nil(t, r.Update(PopToRootMsg{}))
	assert.Equal(t, 1, r.Depth())
	assert.Zero(t, home.resumed)
}

func TestOtherMessagesReachActiveScreen(t *testing.T) {
	home := &fakeScreen{name: "home"}
	top := &fakeScreen{name: "top"}
	r := New(home)
	r.Push(top)

	key := tea.KeyPressMsg{Code: 'x', Text: "x"}
	r.Update(key)
	require.Len(t, top.seen, 1)
	assert.Equal(t, key, top.seen[0])
	assert.Empty(t, home.seen)
}
