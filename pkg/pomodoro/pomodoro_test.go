package pomodoro

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tick(t *Timer, n int) {
	for i := 0; i < n; i++ {
		t.Tick()
	}
}

func testConfig() Config {
	return Config{
		FocusMinutes:         1,
		ShortBreakMinutes:    1,
		LongBreakMinutes:     1,
		LongBreakInterval:    4,
		AutoAdvance:          true,
		PreEndWarningSeconds: 5,
	}
}

func TestPhaseSequenceWithLongBreakInterval(t *testing.T) {
	var phases []Phase
	tm := New(testConfig(), Callbacks{
		OnComplete: func(c CompletedCycle) {
			phases = append(phases, c.Phase)
		},
	})
	tm.Start()

	// Run through 4 focus phases and their breaks (8 phases x 60s).
	tick(tm, 8*60)

	want := []Phase{
		PhaseFocus, PhaseShortBreak,
		PhaseFocus, PhaseShortBreak,
		PhaseFocus, PhaseShortBreak,
		PhaseFocus, PhaseLongBreak,
	}
	assert.Equal(t, want, phases)

	// Counter resets as soon as the long break is entered.
	assert.Equal(t, 0, tm.CyclesSinceLongBreak())
	assert.Equal(t, 8, tm.CompletedCycles())
	assert.Equal(t, PhaseFocus, tm.Phase())
}

func TestCompletedCycleReportsMinutes(t *testing.T) {
	var got []CompletedCycle
	cfg := testConfig()
	cfg.FocusMinutes = 25
	tm := New(cfg, Callbacks{
		OnComplete: func(c CompletedCycle) { got = append(got, c) },
	})
	tm.Start()
	tick(tm, 25*60)

	require.Len(t, got, 1)
	assert.Equal(t, PhaseFocus, got[0].Phase)
	assert.Equal(t, 25, got[0].DurationMinutes)
	assert.True(t, got[0].Completed)
}

func TestPreEndWarningFiresOncePerFocusPhase(t *testing.T) {
	warnings := 0
	tm := New(testConfig(), Callbacks{
		OnWarning: func(Phase) { warnings++ },
	})
	tm.Start()

	// Full focus phase plus the following break.
	tick(tm, 2*60)
	assert.Equal(t, 1, warnings, "breaks must not warn")

	// Second focus phase warns again.
	tick(tm, 60)
	assert.Equal(t, 2, warnings)
}

func TestWarningResetAfterStop(t *testing.T) {
	warnings := 0
	tm := New(testConfig(), Callbacks{
		OnWarning: func(Phase) { warnings++ },
	})
	tm.Start()
	tick(tm, 56) // warning fires at remaining == 5
	require.Equal(t, 1, warnings)

	tm.Stop()
	tm.Start()
	tick(tm, 56)
	assert.Equal(t, 2, warnings)
}

func TestStartWhileRunningIsNoop(t *testing.T) {
	tm := New(testConfig(), Callbacks{})
	tm.Start()
	tick(tm, 10)
	remaining := tm.Remaining()

	tm.Start()
	assert.Equal(t, remaining, tm.Remaining())
	assert.True(t, tm.Running())
}

func TestPauseKeepsRemainingAndStopResets(t *testing.T) {
	tm := New(testConfig(), Callbacks{})
	tm.Start()
	tick(tm, 10)

	tm.Pause()
	assert.False(t, tm.Running())
	assert.Equal(t, 50, tm.Remaining())

	// Ticks while paused are ignored.
	tick(tm, 10)
	assert.Equal(t, 50, tm.Remaining())

	tm.Stop()
	assert.Equal(t, 60, tm.Remaining())
}

func TestManualAdvanceWhenAutoAdvanceDisabled(t *testing.T) {
	cfg := testConfig()
	cfg.AutoAdvance = false
	tm := New(cfg, Callbacks{})
	tm.Start()
	tick(tm, 60)

	assert.Equal(t, PhaseShortBreak, tm.Phase())
	assert.False(t, tm.Running())
	assert.Equal(t, 60, tm.Remaining())

	tm.Start()
	assert.True(t, tm.Running())
}
