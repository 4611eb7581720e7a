package services

import (
	"testing"

	"github.com/focusnow-app/focusnow-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestComputeLevel(t *testing.T) {
	cases := []struct {
		xp    int
		level int
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{199, 2},
		{250, 3},
		{1000, 11},
	}
	for _, c := range cases {
		assert.Equal(t, c.level, ComputeLevel(c.xp), "xp=%d", c.xp)
	}

	// Negative XP is clamped rather than producing level 0.
	assert.Equal(t, 1, ComputeLevel(-50))
}

func TestXPForCycle(t *testing.T) {
	assert.Equal(t, 25, XPForCycle(models.CycleFocus))
	assert.Equal(t, 10, XPForCycle(models.CycleShortBreak))
	assert.Equal(t, 10, XPForCycle(models.CycleLongBreak))
}

func TestUnlockablePredicates(t *testing.T) {
	byLevel := Sound{ID: "a", MinLevel: 3}
	assert.False(t, byLevel.Unlockable(2, 100))
	assert.True(t, byLevel.Unlockable(3, 0))

	byCycles := Sound{ID: "b", MinCycles: 4}
	assert.False(t, byCycles.Unlockable(10, 3))
	assert.True(t, byCycles.Unlockable(1, 4))

	both := Sound{ID: "c", MinLevel: 2, MinCycles: 5}
	assert.False(t, both.Unlockable(2, 4), "both predicates must hold")
	assert.False(t, both.Unlockable(1, 5))
	assert.True(t, both.Unlockable(2, 5))
}

func TestEvaluateUnlocksSkipsOwned(t *testing.T) {
	owned := map[string]bool{"sons-da-floresta": true, "focus-now": true}

	newly := EvaluateUnlocks(1, 0, owned)
	assert.Equal(t, []string{"alvida-neve"}, newly)

	// Owned set never shrinks; re-evaluating with everything owned
	// yields nothing even at high level.
	all := make(map[string]bool)
	for _, s := range SoundCatalog {
		all[s.ID] = true
	}
	assert.Empty(t, EvaluateUnlocks(99, 9999, all))
}

func TestEvaluateUnlocksByCycleCount(t *testing.T) {
	newly := EvaluateUnlocks(1, 2, nil)

	assert.Contains(t, newly, "sons-de-chuva")
	assert.Contains(t, newly, "correnteza-tranquila")
	assert.Contains(t, newly, "more-five-minutes")
	assert.Contains(t, newly, "take-five-minutes")
	assert.NotContains(t, newly, "focus-flow-2", "needs 3 cycles")
	assert.NotContains(t, newly, "focus-flow", "needs level 2")
}

func TestEvaluateUnlocksPreservesCatalogOrder(t *testing.T) {
	newly := EvaluateUnlocks(2, 0, nil)

	want := []string{"sons-da-floresta", "alvida-neve", "focus-flow", "focus-now", "mar-aberto", "vale-sussurante"}
	assert.Equal(t, want, newly)
}

func TestCatalogSoundLookup(t *testing.T) {
	s, ok := CatalogSound("vale-sussurante-2")
	assert.True(t, ok)
	assert.Equal(t, 6, s.MinLevel)

	_, ok = CatalogSound("does-not-exist")
	assert.False(t, ok)
}
