package assessment

import (
	"time"

	tea "charm.land/bubbletea/v2"
)

// taskDueMsg is sent when a scheduler task's timer elapses.
type taskDueMsg struct {
	ID uint64
}

// clockTickMsg refreshes the elapsed-time display.
type clockTickMsg time.Time

// ticker arms a timer for a scheduler task. Tests swap it to fire tasks
// by hand.
type ticker func(id uint64, d time.Duration) tea.Cmd

func teaTicker(id uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return taskDueMsg{ID: id} })
}

func clockTick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockTickMsg(t) })
}
