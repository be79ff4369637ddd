// Package escalate implements the brand-mark click escalation engine.
//
// Rapid clicks on the brand mark climb through a fixed ladder of tiers:
// a purr at 3 clicks, a fortune overlay at 5, neko at 7, ultimate at 10 and
// ascension at 20. Each tier expires on its own timer and ascension locks
// the mark until it ends.
//
// The engine is designed to live inside a bubbletea program. Timers are
// tea.Cmds that deliver an ExpiredMsg back into the update loop, so every
// state mutation happens on the program's single update goroutine.
package escalate

import (
	"log/slog"
	"math/rand/v2"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Durations for every timer the engine arms.
const (
	IdleWindow        = 3000 * time.Millisecond
	FortuneDuration   = 2500 * time.Millisecond
	NekoDuration      = 8000 * time.Millisecond
	UltimateDuration  = 10000 * time.Millisecond
	AscensionDuration = 13500 * time.Millisecond
	PulseDuration     = 200 * time.Millisecond
)

// Click-count thresholds. Each fires only on exact equality.
const (
	PurrThreshold      = 3
	FortuneThreshold   = 5
	NekoThreshold      = 7
	UltimateThreshold  = 10
	AscensionThreshold = 20
)

// FortuneCount is the number of fortune messages the provider serves,
// indexed from 1.
const FortuneCount = 6

// Tier is the exclusive escalation level of the brand mark.
type Tier int

const (
	TierIdle Tier = iota
	TierNeko
	TierUltimate
	TierAscension
)

func (t Tier) String() string {
	switch t {
	case TierNeko:
		return "neko"
	case TierUltimate:
		return "ultimate"
	case TierAscension:
		return "ascension"
	default:
		return "idle"
	}
}

// MessageProvider supplies localized fortune text for an index in
// [1, FortuneCount]. A false return suppresses the overlay.
type MessageProvider interface {
	Fortune(index int) (string, bool)
}

// State is the derived presentation view of the engine.
type State struct {
	Tier       Tier
	ClickCount int
	Purring    bool
	Fortune    string // empty when no overlay is shown
	Locked     bool
	Pulse      bool
}

// HasFortune reports whether the fortune overlay should be drawn.
func (s State) HasFortune() bool { return s.Fortune != "" }

var lastID int64

func nextID() int {
	return int(atomic.AddInt64(&lastID, 1))
}

// Option configures an Engine.
type Option func(*Engine)

// WithScheduler replaces the default tea.Tick scheduler.
func WithScheduler(s Scheduler) Option {
	return func(e *Engine) { e.sched = s }
}

// WithRand sets the source for fortune selection. intn must return a value
// in [0, n).
func WithRand(intn func(n int) int) Option {
	return func(e *Engine) { e.intn = intn }
}

// WithLogger sets the logger used for tier transitions.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine owns the click counter, the current tier, the fortune overlay and
// every pending timer. It is not safe for concurrent use; call it only from
// the bubbletea update loop.
type Engine struct {
	id       int
	sched    Scheduler
	messages MessageProvider
	intn     func(n int) int
	log      *slog.Logger

	clickCount int
	tier       Tier
	fortune    string
	pulse      bool
	pulses     int

	timers timerSet
	closed bool
}

// New creates an engine in the initial idle state.
func New(messages MessageProvider, opts ...Option) *Engine {
	e := &Engine{
		id:       nextID(),
		sched:    TeaScheduler{},
		messages: messages,
		intn:     rand.IntN,
		log:      slog.Default(),
		timers:   newTimerSet(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ID returns the engine's identifier, carried by every ExpiredMsg it emits.
func (e *Engine) ID() int { return e.id }

// RegisterInteraction records one click on the brand mark and returns the
// updated view plus the commands that arm any timers it scheduled. While the
// mark is locked, or after Close, the call changes nothing.
func (e *Engine) RegisterInteraction() (State, tea.Cmd) {
	if e.closed || e.tier == TierAscension {
		return e.State(), nil
	}

	cmds := []tea.Cmd{e.firePulse()}
	cmds = append(cmds, e.arm(TimerIdleReset, IdleWindow))

	e.clickCount++

	// A run restarted by the idle reset inside a tier only climbs: thresholds
	// at or below the current tier are skipped.
	switch {
	case e.clickCount == FortuneThreshold && e.tier == TierIdle:
		cmds = append(cmds, e.showFortune())
	case e.clickCount == NekoThreshold && e.tier < TierNeko:
		e.enter(TierNeko)
		cmds = append(cmds, e.armTier(TimerNekoExpire, NekoDuration))
	case e.clickCount == UltimateThreshold && e.tier < TierUltimate:
		e.enter(TierUltimate)
		cmds = append(cmds, e.armTier(TimerUltimateExpire, UltimateDuration))
	case e.clickCount == AscensionThreshold:
		e.enter(TierAscension)
		cmds = append(cmds, e.armTier(TimerAscensionExpire, AscensionDuration))
	}

	return e.State(), tea.Batch(cmds...)
}

// State returns the current presentation view. It has no side effects.
func (e *Engine) State() State {
	s := State{
		Tier:       e.tier,
		ClickCount: e.clickCount,
		Purring:    e.clickCount >= PurrThreshold && e.tier == TierIdle,
		Locked:     e.tier == TierAscension,
		Pulse:      e.pulse && e.tier != TierAscension,
	}
	if e.tier == TierIdle {
		s.Fortune = e.fortune
	}
	return s
}

// Reset cancels every pending timer and returns to the initial state.
func (e *Engine) Reset() {
	if e.closed {
		return
	}
	e.reset()
}

// Close tears the engine down. Pending timers are cancelled and every later
// call becomes a no-op.
func (e *Engine) Close() {
	e.timers.cancelAll()
	e.closed = true
}

// Closed reports whether Close has been called.
func (e *Engine) Closed() bool { return e.closed }

// Pending reports whether t is currently armed.
func (e *Engine) Pending(t Timer) bool { return e.timers.pending(t) }

// Pulses returns the number of pulse signals emitted since creation.
func (e *Engine) Pulses() int { return e.pulses }

// Update applies timer expiries addressed to this engine. Expiries for
// cancelled or superseded timers are dropped.
func (e *Engine) Update(msg tea.Msg) tea.Cmd {
	exp, ok := msg.(ExpiredMsg)
	if !ok || exp.Engine != e.id || e.closed {
		return nil
	}
	if !e.timers.take(exp.Timer, exp.Seq) {
		return nil
	}

	switch exp.Timer {
	case TimerIdleReset:
		e.clickCount = 0
	case TimerFortuneExpire:
		e.fortune = ""
	case TimerNekoExpire:
		e.log.Debug("escalation tier expired", "tier", e.tier)
		e.tier = TierIdle
		e.clickCount = 0
		e.timers.cancel(TimerIdleReset)
	case TimerUltimateExpire, TimerAscensionExpire:
		e.log.Debug("escalation tier expired", "tier", e.tier)
		e.reset()
	case TimerPulse:
		e.pulse = false
	}
	return nil
}

func (e *Engine) reset() {
	e.timers.cancelAll()
	e.clickCount = 0
	e.tier = TierIdle
	e.fortune = ""
	e.pulse = false
}

// enter switches tier. Tiers above idle never carry the fortune overlay.
func (e *Engine) enter(t Tier) {
	e.log.Debug("escalation tier entered", "tier", t, "clicks", e.clickCount)
	e.tier = t
	e.fortune = ""
	e.timers.cancel(TimerFortuneExpire)
}

func (e *Engine) firePulse() tea.Cmd {
	e.pulse = true
	e.pulses++
	return e.arm(TimerPulse, PulseDuration)
}

func (e *Engine) showFortune() tea.Cmd {
	idx := e.intn(FortuneCount) + 1
	var text string
	if e.messages != nil {
		if s, ok := e.messages.Fortune(idx); ok {
			text = s
		}
	}
	if text == "" {
		e.log.Debug("fortune unavailable", "index", idx)
		e.fortune = ""
		e.timers.cancel(TimerFortuneExpire)
		return nil
	}
	e.fortune = text
	return e.arm(TimerFortuneExpire, FortuneDuration)
}

// arm cancels t if pending and schedules it afresh.
func (e *Engine) arm(t Timer, d time.Duration) tea.Cmd {
	seq := e.timers.arm(t)
	return e.sched.After(d, ExpiredMsg{Engine: e.id, Timer: t, Seq: seq})
}

// armTier schedules a tier expiry. Any other tier expiry and the idle reset
// are cancelled first so at most one tier timer is ever pending.
func (e *Engine) armTier(t Timer, d time.Duration) tea.Cmd {
	for _, other := range tierTimers {
		if other != t {
			e.timers.cancel(other)
		}
	}
	e.timers.cancel(TimerIdleReset)
	return e.arm(t, d)
}
