package escalate

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// ExpiredMsg is delivered to the update loop when a scheduled timer fires.
// Route it to Engine.Update.
type ExpiredMsg struct {
	Engine int
	Timer  Timer
	Seq    uint64
}

// Scheduler turns a delay and a message into a command that delivers the
// message once the delay has elapsed.
type Scheduler interface {
	After(d time.Duration, msg tea.Msg) tea.Cmd
}

// TeaScheduler schedules through tea.Tick.
type TeaScheduler struct{}

// After implements Scheduler.
func (TeaScheduler) After(d time.Duration, msg tea.Msg) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return msg
	})
}
