package focus_test

import (
	"testing"
	"time"

	"github.com/juju/clock/testclock"

	campus "github.com/goliatone/go-campus"
	"github.com/goliatone/go-campus/pkg/focus"
)

var timerStart = time.Date(2026, time.August, 28, 9, 0, 0, 0, time.UTC)

type captureRecorder struct {
	states []campus.DomainState
}

func (r *captureRecorder) Update(transform campus.Transform) campus.DomainState {
	var state campus.DomainState
	if len(r.states) > 0 {
		state = r.states[len(r.states)-1]
	}
	state = transform(state)
	r.states = append(r.states, state)
	return state
}

func (r *captureRecorder) latest() campus.DomainState {
	if len(r.states) == 0 {
		return campus.DomainState{}
	}
	return r.states[len(r.states)-1]
}

func TestStartRejectsNonPositiveMinutes(t *testing.T) {
	timer := focus.NewTimer()
	if err := timer.Start(campus.FocusModeFocus, 0, campus.AmbientNone); err == nil {
		t.Fatalf("zero minutes must be rejected")
	}
	if err := timer.Start(campus.FocusModeFocus, -5, campus.AmbientNone); err == nil {
		t.Fatalf("negative minutes must be rejected")
	}
	if timer.Phase() != focus.PhaseIdle {
		t.Fatalf("rejected start must leave the timer idle")
	}
}

func TestCountdownCompletesAndRecords(t *testing.T) {
	clk := testclock.NewClock(timerStart)
	recorder := &captureRecorder{}
	timer := focus.NewTimer(focus.WithClock(clk), focus.WithRecorder(recorder))

	if err := timer.Start(campus.FocusModeFocus, 25, campus.AmbientRain); err != nil {
		t.Fatalf("start: %v", err)
	}
	if got := timer.Remaining(); got != 25*time.Minute {
		t.Fatalf("expected 25m remaining, got %v", got)
	}

	clk.Advance(10 * time.Minute)
	if timer.Tick() {
		t.Fatalf("countdown must not complete early")
	}
	if got := timer.Remaining(); got != 15*time.Minute {
		t.Fatalf("expected 15m remaining, got %v", got)
	}

	clk.Advance(15 * time.Minute)
	if !timer.Tick() {
		t.Fatalf("expected completion")
	}
	if timer.Phase() != focus.PhaseIdle {
		t.Fatalf("completed timer must return to idle, got %s", timer.Phase())
	}

	state := recorder.latest()
	if len(state.Focus.Sessions) != 1 {
		t.Fatalf("expected one recorded session, got %+v", state.Focus.Sessions)
	}
	session := state.Focus.Sessions[0]
	if session.Minutes != 25 || session.Mode != campus.FocusModeFocus || session.Ambient != campus.AmbientRain {
		t.Fatalf("unexpected session: %+v", session)
	}
	if session.StartedAt != timerStart.Format(time.RFC3339) {
		t.Fatalf("session must carry the start time, got %s", session.StartedAt)
	}
	if got := state.Focus.DailyMinutes[campus.ISODate(timerStart)]; got != 25 {
		t.Fatalf("focus minutes must accumulate, got %d", got)
	}

	if timer.Tick() {
		t.Fatalf("a completed countdown must not complete twice")
	}
	if len(recorder.states) != 1 {
		t.Fatalf("expected exactly one recorded update, got %d", len(recorder.states))
	}
}

func TestPauseFreezesTheCountdown(t *testing.T) {
	clk := testclock.NewClock(timerStart)
	timer := focus.NewTimer(focus.WithClock(clk))

	if err := timer.Start(campus.FocusModeFocus, 10, campus.AmbientNone); err != nil {
		t.Fatalf("start: %v", err)
	}

	clk.Advance(4 * time.Minute)
	timer.Pause()
	if timer.Phase() != focus.PhasePaused {
		t.Fatalf("expected paused, got %s", timer.Phase())
	}

	// Time passing while paused must not count.
	clk.Advance(30 * time.Minute)
	if got := timer.Remaining(); got != 6*time.Minute {
		t.Fatalf("expected 6m remaining, got %v", got)
	}
	if timer.Tick() {
		t.Fatalf("a paused timer must not complete")
	}

	timer.Resume()
	clk.Advance(6 * time.Minute)
	if !timer.Tick() {
		t.Fatalf("expected completion after resume")
	}
}

func TestPauseAndResumeAreNoOpsOutsideTheirPhase(t *testing.T) {
	timer := focus.NewTimer()
	timer.Pause()
	if timer.Phase() != focus.PhaseIdle {
		t.Fatalf("pausing an idle timer must be a no-op")
	}
	timer.Resume()
	if timer.Phase() != focus.PhaseIdle {
		t.Fatalf("resuming an idle timer must be a no-op")
	}
}

func TestResetAbandonsWithoutRecording(t *testing.T) {
	clk := testclock.NewClock(timerStart)
	recorder := &captureRecorder{}
	timer := focus.NewTimer(focus.WithClock(clk), focus.WithRecorder(recorder))

	if err := timer.Start(campus.FocusModeFocus, 10, campus.AmbientNone); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(20 * time.Minute)
	timer.Reset()

	if timer.Phase() != focus.PhaseIdle {
		t.Fatalf("expected idle after reset")
	}
	if timer.Tick() {
		t.Fatalf("a reset timer must not complete")
	}
	if len(recorder.states) != 0 {
		t.Fatalf("reset must not record a session")
	}
}

func TestRestartAbandonsPreviousCountdown(t *testing.T) {
	clk := testclock.NewClock(timerStart)
	recorder := &captureRecorder{}
	timer := focus.NewTimer(focus.WithClock(clk), focus.WithRecorder(recorder))

	if err := timer.Start(campus.FocusModeFocus, 10, campus.AmbientNone); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(9 * time.Minute)
	if err := timer.Start(campus.FocusModeBreak, 5, campus.AmbientNone); err != nil {
		t.Fatalf("restart: %v", err)
	}

	clk.Advance(5 * time.Minute)
	if !timer.Tick() {
		t.Fatalf("expected the new countdown to complete")
	}
	state := recorder.latest()
	if len(state.Focus.Sessions) != 1 || state.Focus.Sessions[0].Mode != campus.FocusModeBreak {
		t.Fatalf("only the second countdown may record, got %+v", state.Focus.Sessions)
	}
}

func TestOnCompleteCallback(t *testing.T) {
	clk := testclock.NewClock(timerStart)
	var gotMode campus.FocusMode
	var gotMinutes int
	timer := focus.NewTimer(
		focus.WithClock(clk),
		focus.WithOnComplete(func(mode campus.FocusMode, minutes int) {
			gotMode = mode
			gotMinutes = minutes
		}),
	)

	if err := timer.Start(campus.FocusModeBreak, 5, campus.AmbientCafe); err != nil {
		t.Fatalf("start: %v", err)
	}
	clk.Advance(5 * time.Minute)
	if !timer.Tick() {
		t.Fatalf("expected completion")
	}
	if gotMode != campus.FocusModeBreak || gotMinutes != 5 {
		t.Fatalf("unexpected callback values: %s %d", gotMode, gotMinutes)
	}
}
