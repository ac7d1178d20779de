package card

import (
	"sync"
	"time"
)

type Phase int

const (
	Idle Phase = iota
	Animating
	Cooldown
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Animating:
		return "animating"
	case Cooldown:
		return "cooldown"
	}
	return "unknown"
}

// Lock keeps a transition from being re-triggered while it runs.
//
//	Idle --Begin--> Animating --End or timeout--> Cooldown --cooldown--> Idle
//
// End is the animation-end event from the renderer. The timeout is the
// transition's known duration and only matters when that event never
// arrives. Begin outside Idle is refused.
type Lock struct {
	clock    Clock
	duration time.Duration
	cooldown time.Duration

	mu     sync.Mutex
	phase  Phase
	gen    uint64
	timer  Timer
	closed bool
}

func NewLock(clock Clock, duration, cooldown time.Duration) *Lock {
	return &Lock{clock: clock, duration: duration, cooldown: cooldown}
}

// Begin starts a transition and reports whether it was allowed.
func (l *Lock) Begin() bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.closed || l.phase != Idle {
		return false
	}
	l.phase = Animating
	l.schedule(l.duration, l.finish)
	return true
}

// End signals that the running transition completed.
func (l *Lock) End() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.finish()
}

func (l *Lock) Phase() Phase {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.phase
}

// Close cancels pending timers; the lock refuses new transitions afterwards.
func (l *Lock) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.stopTimer()
	l.phase = Idle
}

// finish moves Animating to Cooldown (or straight to Idle). l.mu held.
func (l *Lock) finish() {
	if l.phase != Animating {
		return
	}
	if l.cooldown <= 0 {
		l.stopTimer()
		l.phase = Idle
		return
	}
	l.phase = Cooldown
	l.schedule(l.cooldown, func() { l.phase = Idle })
}

// schedule replaces the pending timer with one running fn under l.mu.
// Callbacks of replaced timers are dropped through the generation check.
func (l *Lock) schedule(d time.Duration, fn func()) {
	l.stopTimer()
	l.gen++
	gen := l.gen
	l.timer = l.clock.AfterFunc(d, func() {
		l.mu.Lock()
		defer l.mu.Unlock()
		if l.gen != gen || l.closed {
			return
		}
		l.timer = nil
		fn()
	})
}

func (l *Lock) stopTimer() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	l.gen++
}
