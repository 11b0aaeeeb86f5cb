package ledger_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sebasblancogonz/bulkup/internal/ledger"
)

func TestNormalizeExercise(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"Sentadilla", "sentadilla"},
		{"Press Banca", "press_banca"},
		{"Sentadilla Búlgara", "sentadilla_bulgara"},
		{"Curl Femoral Tumbado", "curl_femoral_tumbado"},
		{"Peso Muerto Rumano", "peso_muerto_rumano"},
		{"Extensión Tríceps", "extension_triceps"},
		{"Leñador", "lenador"},
		{"ÑU", "nu"},
		// Non-Spanish accents pass through unchanged.
		{"Überkopf Drücken", "überkopf_drücken"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, ledger.NormalizeExercise(tc.name), tc.name)
	}
}

func TestKey_String(t *testing.T) {
	k := ledger.NewKey("plan1", "lunes", 0, "Sentadilla Búlgara", 2, "2024-01-01")
	assert.Equal(t, "plan1-lunes-0-sentadilla_bulgara-2-2024-01-01", k.String())

	// Without a plan id the prefix disappears.
	k = ledger.NewKey("", "lunes", 0, "Sentadilla", ledger.NoSet, "2024-01-01")
	assert.Equal(t, "lunes-0-sentadilla-2024-01-01", k.String())
}

func TestKey_Deterministic(t *testing.T) {
	a := ledger.NewKey("p", "martes", 3, "Press Militar", 1, "2024-04-01")
	b := ledger.NewKey("p", "martes", 3, "Press Militar", 1, "2024-04-01")
	assert.Equal(t, a, b)
	assert.Equal(t, a.String(), b.String())
}

func TestKey_DistinctTuplesDoNotCollide(t *testing.T) {
	keys := []ledger.Key{
		ledger.NewKey("p", "lunes", 0, "Sentadilla", 0, "2024-01-01"),
		ledger.NewKey("p", "lunes", 0, "Sentadilla", 1, "2024-01-01"),
		ledger.NewKey("p", "lunes", 1, "Sentadilla", 0, "2024-01-01"),
		ledger.NewKey("p", "martes", 0, "Sentadilla", 0, "2024-01-01"),
		ledger.NewKey("p", "lunes", 0, "Peso Muerto", 0, "2024-01-01"),
		ledger.NewKey("p", "lunes", 0, "Sentadilla", 0, "2024-01-08"),
	}
	seen := make(map[ledger.Key]bool)
	for _, k := range keys {
		require.False(t, seen[k], "collision on %v", k)
		seen[k] = true
	}
}

func TestKey_LegacyStrings(t *testing.T) {
	k := ledger.NewKey("plan1", "lunes", 0, "Sentadilla", 1, "2024-01-01")
	assert.Equal(t, []string{
		"plan1-lunes-0-1-2024-01-01",
		"lunes-0-1-2024-01-01",
	}, k.LegacyStrings())

	// Exercise-level keys leave out the set index as well.
	k = ledger.NewKey("", "lunes", 0, "Sentadilla", ledger.NoSet, "2024-01-01")
	assert.Equal(t, []string{"lunes-0-2024-01-01"}, k.LegacyStrings())
}

func TestLegacyRawKey_MatchesLegacyStrings(t *testing.T) {
	k := ledger.NewKey("plan1", "lunes", 2, "Remo", 0, "2024-01-01")
	raw := ledger.LegacyRawKey("plan1", "lunes", 2, 0, "2024-01-01")
	assert.Equal(t, k.LegacyStrings()[0], raw)
}
