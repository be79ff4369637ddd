package escalate

// Timer names one of the engine's scheduled callbacks.
type Timer int

const (
	TimerIdleReset Timer = iota
	TimerFortuneExpire
	TimerNekoExpire
	TimerUltimateExpire
	TimerAscensionExpire
	TimerPulse
)

func (t Timer) String() string {
	switch t {
	case TimerIdleReset:
		return "idle-reset"
	case TimerFortuneExpire:
		return "fortune-expire"
	case TimerNekoExpire:
		return "neko-expire"
	case TimerUltimateExpire:
		return "ultimate-expire"
	case TimerAscensionExpire:
		return "ascension-expire"
	case TimerPulse:
		return "pulse"
	default:
		return "unknown"
	}
}

// tierTimers are mutually exclusive: at most one is ever pending.
var tierTimers = []Timer{TimerNekoExpire, TimerUltimateExpire, TimerAscensionExpire}

// timerSet maps each armed timer to the sequence number of its live
// handle. A timer is pending iff it has an entry. Expiry messages carry the
// sequence they were armed with, so a message for a cancelled or re-armed
// timer no longer matches and is discarded.
type timerSet struct {
	live map[Timer]uint64
	seq  uint64
}

func newTimerSet() timerSet {
	return timerSet{live: make(map[Timer]uint64)}
}

// arm cancels any live handle for t and returns the sequence of a new one.
func (s *timerSet) arm(t Timer) uint64 {
	s.seq++
	s.live[t] = s.seq
	return s.seq
}

// cancel drops t. Cancelling an absent timer is a no-op.
func (s *timerSet) cancel(t Timer) {
	delete(s.live, t)
}

func (s *timerSet) cancelAll() {
	clear(s.live)
}

func (s *timerSet) pending(t Timer) bool {
	_, ok := s.live[t]
	return ok
}

// take consumes the live handle for t if seq matches it, reporting whether
// the expiry should run.
func (s *timerSet) take(t Timer, seq uint64) bool {
	cur, ok := s.live[t]
	if !ok || cur != seq {
		return false
	}
	delete(s.live, t)
	return true
}

// pendingTiers counts armed tier expiries.
func (s *timerSet) pendingTiers() int {
	n := 0
	for _, t := range tierTimers {
		if s.pending(t) {
			n++
		}
	}
	return n
}
