package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebasblancogonz/bulkup/internal/ledger"
)

func TestCache_ZeroWeightIsAbsent(t *testing.T) {
	c := ledger.NewCache()
	k := ledger.NewKey("p", "lunes", 0, "Sentadilla", 0, "2024-01-01")

	c.SetWeight(k, 100)
	w, ok := c.Weight(k)
	require.True(t, ok)
	assert.Equal(t, 100.0, w)

	// Writing zero removes the entry instead of storing 0.
	c.SetWeight(k, 0)
	_, ok = c.Weight(k)
	assert.False(t, ok)

	c.SetWeight(k, -5)
	_, ok = c.Weight(k)
	assert.False(t, ok)
}

func TestCache_ClearWeekLeavesOtherWeeksAlone(t *testing.T) {
	c := ledger.NewCache()
	week1 := "2024-01-01"
	week2 := "2024-01-08"

	k1 := ledger.NewKey("p", "lunes", 0, "Sentadilla", 0, week1)
	k2 := ledger.NewKey("p", "lunes", 0, "Sentadilla", 0, week2)
	n1 := ledger.NewKey("p", "lunes", 0, "Sentadilla", ledger.NoSet, week1)
	n2 := ledger.NewKey("p", "lunes", 0, "Sentadilla", ledger.NoSet, week2)

	c.SetWeight(k1, 80)
	c.SetWeight(k2, 85)
	c.SetNote(n1, "rodilla molesta")
	c.SetNote(n2, "todo bien")
	c.SetLegacyWeight("p-lunes-1-0-"+week1, 60)
	c.SetLegacyWeight("p-lunes-1-0-"+week2, 62.5)

	c.ClearWeek(week1)

	_, ok := c.Weight(k1)
	assert.False(t, ok)
	_, ok = c.Note(n1)
	assert.False(t, ok)

	w, ok := c.Weight(k2)
	require.True(t, ok)
	assert.Equal(t, 85.0, w)
	note, ok := c.Note(n2)
	require.True(t, ok)
	assert.Equal(t, "todo bien", note)

	// The week-2 legacy entry must survive too.
	canonical := ledger.NewKey("p", "lunes", 1, "Zancadas", 0, week2)
	w, ok = c.MigrateLegacyRead(canonical, canonical.LegacyStrings())
	require.True(t, ok)
	assert.Equal(t, 62.5, w)
}

func TestCache_MigrateLegacyRead_SelfHeals(t *testing.T) {
	c := ledger.NewCache()
	canonical := ledger.NewKey("plan1", "lunes", 0, "Sentadilla", 1, "2024-01-01")

	// Only the old pre-exercise-name entry exists.
	c.SetLegacyWeight("plan1-lunes-0-1-2024-01-01", 90)

	w, ok := c.MigrateLegacyRead(canonical, canonical.LegacyStrings())
	require.True(t, ok)
	assert.Equal(t, 90.0, w)

	// After the read the value lives under the canonical key.
	w, ok = c.Weight(canonical)
	require.True(t, ok)
	assert.Equal(t, 90.0, w)

	// And the legacy entry is gone: a second migration finds the canonical.
	w, ok = c.MigrateLegacyRead(canonical, canonical.LegacyStrings())
	require.True(t, ok)
	assert.Equal(t, 90.0, w)
}

func TestCache_MigrateLegacyRead_PriorityOrder(t *testing.T) {
	c := ledger.NewCache()
	canonical := ledger.NewKey("plan1", "lunes", 0, "Sentadilla", 0, "2024-01-01")

	// Both historic formats present: the plan-qualified one wins.
	c.SetLegacyWeight("plan1-lunes-0-0-2024-01-01", 100)
	c.SetLegacyWeight("lunes-0-0-2024-01-01", 55)

	w, ok := c.MigrateLegacyRead(canonical, canonical.LegacyStrings())
	require.True(t, ok)
	assert.Equal(t, 100.0, w)
}

func TestCache_MigrateLegacyRead_Miss(t *testing.T) {
	c := ledger.NewCache()
	canonical := ledger.NewKey("p", "lunes", 0, "Sentadilla", 0, "2024-01-01")
	_, ok := c.MigrateLegacyRead(canonical, canonical.LegacyStrings())
	assert.False(t, ok)
}

func TestCache_WeekSize(t *testing.T) {
	c := ledger.NewCache()
	c.SetWeight(ledger.NewKey("p", "lunes", 0, "Sentadilla", 0, "2024-01-01"), 80)
	c.SetWeight(ledger.NewKey("p", "lunes", 0, "Sentadilla", 1, "2024-01-01"), 82.5)
	c.SetWeight(ledger.NewKey("p", "lunes", 0, "Sentadilla", 0, "2024-01-08"), 85)

	assert.Equal(t, 2, c.WeekSize("2024-01-01"))
	assert.Equal(t, 1, c.WeekSize("2024-01-08"))
	assert.Equal(t, 0, c.WeekSize("2024-01-15"))
}
