// Package pomodoro implements the focus/break cycle state machine used by
// FocusNow clients. The machine is cooperative: one countdown driver at a
// time advances it by calling Tick once per second.
package pomodoro

import (
	"context"
	"sync"
	"time"
)

// Phase identifies the current timer phase. Values match the wire format
// used by POST /api/ciclos.
type Phase string

const (
	PhaseFocus      Phase = "foco"
	PhaseShortBreak Phase = "pausa_curta"
	PhaseLongBreak  Phase = "pausa_longa"
)

// Config holds the per-user timer durations (minutes) and behavior flags.
type Config struct {
	FocusMinutes      int
	ShortBreakMinutes int
	LongBreakMinutes  int
	LongBreakInterval int

	// AutoAdvance starts the next phase immediately after a completion.
	AutoAdvance bool

	// PreEndWarningSeconds fires the warning callback this many seconds
	// before a focus phase ends. Zero disables the warning.
	PreEndWarningSeconds int
}

// DefaultConfig mirrors the server-side defaults (25/5/15/4).
func DefaultConfig() Config {
	return Config{
		FocusMinutes:         25,
		ShortBreakMinutes:    5,
		LongBreakMinutes:     15,
		LongBreakInterval:    4,
		AutoAdvance:          true,
		PreEndWarningSeconds: 5,
	}
}

// CompletedCycle describes a finished phase, ready to be persisted.
type CompletedCycle struct {
	Phase           Phase
	DurationMinutes int
	Completed       bool
}

// Callbacks are invoked from within Tick. OnComplete must not block the
// countdown: persistence is fire-and-forget relative to phase advance.
type Callbacks struct {
	OnComplete    func(CompletedCycle)
	OnWarning     func(Phase)
	OnPhaseChange func(phase Phase, running bool)
}

// Timer is the pomodoro state machine.
type Timer struct {
	mu sync.Mutex

	cfg Config
	cb  Callbacks

	phase     Phase
	running   bool
	remaining int // seconds

	cyclesSinceLongBreak int
	completedCycles      int
	warned               bool
}

// New returns a paused timer in the focus phase with the full focus
// duration remaining.
func New(cfg Config, cb Callbacks) *Timer {
	t := &Timer{cfg: cfg, cb: cb, phase: PhaseFocus}
	t.remaining = t.phaseSeconds(PhaseFocus)
	return t
}

// Start transitions paused → running. Starting while running is a no-op.
func (t *Timer) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.notifyPhase()
}

// Pause halts the countdown, preserving remaining time. Pausing while
// paused is a no-op.
func (t *Timer) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	t.notifyPhase()
}

// Stop pauses and resets remaining time to the full configured duration
// of the current phase.
func (t *Timer) Stop() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.running = false
	t.remaining = t.phaseSeconds(t.phase)
	t.warned = false
	t.notifyPhase()
}

// Tick advances the countdown by one second. It is a no-op while paused.
func (t *Timer) Tick() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}

	t.remaining--

	if t.phase == PhaseFocus && !t.warned &&
		t.cfg.PreEndWarningSeconds > 0 && t.remaining == t.cfg.PreEndWarningSeconds {
		t.warned = true
		if t.cb.OnWarning != nil {
			t.cb.OnWarning(t.phase)
		}
	}

	if t.remaining <= 0 {
		t.complete()
	}
}

// complete fires the completion callback, advances to the next phase and
// either keeps running (auto-advance) or pauses awaiting a manual start.
// Caller holds t.mu.
func (t *Timer) complete() {
	finished := t.phase

	if t.cb.OnComplete != nil {
		t.cb.OnComplete(CompletedCycle{
			Phase:           finished,
			DurationMinutes: t.phaseMinutes(finished),
			Completed:       true,
		})
	}

	t.completedCycles++
	if finished == PhaseFocus {
		t.cyclesSinceLongBreak++
	}

	switch finished {
	case PhaseFocus:
		if t.cyclesSinceLongBreak >= t.cfg.LongBreakInterval {
			t.phase = PhaseLongBreak
			t.cyclesSinceLongBreak = 0
		} else {
			t.phase = PhaseShortBreak
		}
	default:
		t.phase = PhaseFocus
	}

	t.remaining = t.phaseSeconds(t.phase)
	t.warned = false
	t.running = t.cfg.AutoAdvance
	t.notifyPhase()
}

// Run drives the timer with a one-second ticker until ctx is cancelled.
func (t *Timer) Run(ctx context.Context) {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			t.Tick()
		}
	}
}

// Phase returns the current phase.
func (t *Timer) Phase() Phase {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.phase
}

// Running reports whether the countdown is active.
func (t *Timer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}

// Remaining returns the seconds left in the current phase.
func (t *Timer) Remaining() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.remaining
}

// CompletedCycles returns the session-wide completion counter (UI dots).
func (t *Timer) CompletedCycles() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completedCycles
}

// CyclesSinceLongBreak returns focus completions since the last long break.
func (t *Timer) CyclesSinceLongBreak() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.cyclesSinceLongBreak
}

func (t *Timer) phaseMinutes(p Phase) int {
	switch p {
	case PhaseShortBreak:
		return t.cfg.ShortBreakMinutes
	case PhaseLongBreak:
		return t.cfg.LongBreakMinutes
	default:
		return t.cfg.FocusMinutes
	}
}

func (t *Timer) phaseSeconds(p Phase) int {
	return t.phaseMinutes(p) * 60
}

func (t *Timer) notifyPhase() {
	if t.cb.OnPhaseChange != nil {
		t.cb.OnPhaseChange(t.phase, t.running)
	}
}
