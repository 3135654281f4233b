// Package focus runs the Pomodoro-style countdown that feeds completed
// sessions back into the state.
package focus

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/juju/clock"

	campus "github.com/goliatone/go-campus"
)

// Phase is the timer lifecycle.
type Phase string

const (
	PhaseIdle    Phase = "idle"
	PhaseRunning Phase = "running"
	PhasePaused  Phase = "paused"
)

// Recorder receives the completed session. *store.Store satisfies it.
type Recorder interface {
	Update(transform campus.Transform) campus.DomainState
}

// Option configures a Timer.
type Option func(*Timer)

// WithClock overrides the wall clock. Tests pass a testclock.
func WithClock(clk clock.Clock) Option {
	return func(t *Timer) {
		if clk != nil {
			t.clock = clk
		}
	}
}

// WithRecorder sets where completed sessions land.
func WithRecorder(recorder Recorder) Option {
	return func(t *Timer) {
		t.recorder = recorder
	}
}

// WithOnComplete registers a callback fired after a session is recorded.
func WithOnComplete(fn func(campus.FocusMode, int)) Option {
	return func(t *Timer) {
		t.onComplete = fn
	}
}

// Timer is a single countdown. It tracks elapsed time against the clock,
// so a paused timer does not accumulate.
type Timer struct {
	mu         sync.Mutex
	clock      clock.Clock
	recorder   Recorder
	onComplete func(campus.FocusMode, int)

	phase     Phase
	mode      campus.FocusMode
	ambient   campus.AmbientMode
	startedAt time.Time
	resumedAt time.Time
	duration  time.Duration
	elapsed   time.Duration
}

// NewTimer constructs an idle timer.
func NewTimer(opts ...Option) *Timer {
	t := &Timer{
		clock: clock.WallClock,
		phase: PhaseIdle,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(t)
		}
	}
	return t
}

// Start begins a countdown. Starting over a running or paused timer
// abandons the previous countdown without recording it.
func (t *Timer) Start(mode campus.FocusMode, minutes int, ambient campus.AmbientMode) error {
	if minutes <= 0 {
		return fmt.Errorf("focus: minutes must be positive, got %d", minutes)
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	now := t.clock.Now()
	t.phase = PhaseRunning
	t.mode = mode
	t.ambient = ambient
	t.startedAt = now
	t.resumedAt = now
	t.duration = time.Duration(minutes) * time.Minute
	t.elapsed = 0
	return nil
}

// Pause freezes the countdown. Pausing an idle timer is a no-op.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase != PhaseRunning {
		return
	}
	t.elapsed += t.clock.Now().Sub(t.resumedAt)
	t.phase = PhasePaused
}

// Resume continues a paused countdown.
func (t *Timer) Resume() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.phase != PhasePaused {
		return
	}
	t.resumedAt = t.clock.Now()
	t.phase = PhaseRunning
}

// Reset abandons the countdown without recording anything.
func (t *Timer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.phase = PhaseIdle
	t.elapsed = 0
	t.duration = 0
}

// Phase reports the lifecycle phase.
func (t *Timer) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// Remaining reports how much of the countdown is left.
func (t *Timer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	remaining := t.duration - t.elapsedLocked()
	if remaining < 0 {
		return 0
	}
	return remaining
}

// Tick checks the clock and completes the session when the countdown has
// run out. It reports whether the session completed on this call. Callers
// drive it from their own loop; Run does so on the clock.
func (t *Timer) Tick() bool {
	t.mu.Lock()
	if t.phase != PhaseRunning || t.elapsedLocked() < t.duration {
		t.mu.Unlock()
		return false
	}

	mode := t.mode
	ambient := t.ambient
	startedAt := t.startedAt
	minutes := int(t.duration / time.Minute)
	t.phase = PhaseIdle
	t.elapsed = 0
	t.duration = 0
	recorder := t.recorder
	onComplete := t.onComplete
	t.mu.Unlock()

	if recorder != nil {
		recorder.Update(campus.RecordFocusSession(startedAt, minutes, mode, ambient))
	}
	if onComplete != nil {
		onComplete(mode, minutes)
	}
	return true
}

// Run blocks until the countdown completes or ctx is cancelled. A paused
// timer keeps Run waiting; it wakes on a coarse interval to notice phase
// changes.
func (t *Timer) Run(ctx context.Context) error {
	for {
		if t.Tick() {
			return nil
		}
		wait := t.Remaining()
		if t.Phase() != PhaseRunning || wait < time.Second {
			wait = time.Second
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.clock.After(wait):
		}
	}
}

func (t *Timer) elapsedLocked() time.Duration {
	if t.phase == PhaseRunning {
		return t.elapsed + t.clock.Now().Sub(t.resumedAt)
	}
	return t.elapsed
}
