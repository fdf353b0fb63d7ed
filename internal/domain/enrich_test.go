package domain

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnrichObservation(t *testing.T) {
	frozen := time.Date(2026, 8, 26, 10, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { SetClock(nil) })

	t.Run("stamps ingestion time", func(t *testing.T) {
		wind := 110
		obs := EnrichObservation(Observation{MaxWindKts: &wind})
		assert.Equal(t, frozen, obs.IngestedAt)
	})

	t.Run("category from wind", func(t *testing.T) {
		wind := 110
		obs := EnrichObservation(Observation{MaxWindKts: &wind})
		require.NotNil(t, obs.Category)
		assert.Equal(t, "cat3", *obs.Category)
	})

	t.Run("null wind means null category", func(t *testing.T) {
		obs := EnrichObservation(Observation{})
		assert.Nil(t, obs.Category)
	})
}

func TestDeriveCategory(t *testing.T) {
	tests := []struct {
		wind int
		want string
	}{
		{20, "td"},
		{33, "td"},
		{34, "ts"},
		{63, "ts"},
		{64, "cat1"},
		{82, "cat1"},
		{83, "cat2"},
		{95, "cat2"},
		{96, "cat3"},
		{112, "cat3"},
		{113, "cat4"},
		{136, "cat4"},
		{137, "cat5"},
		{165, "cat5"},
	}

	for _, tc := range tests {
		got := deriveCategory(&tc.wind)
		require.NotNil(t, got)
		assert.Equal(t, tc.want, *got, "wind %d kt", tc.wind)
	}

	assert.Nil(t, deriveCategory(nil))
}

func TestLookupTables(t *testing.T) {
	b, ok := LookupBasin("AL")
	require.True(t, ok)
	assert.Equal(t, "Atlantic", b.Name)

	r, ok := LookupRecordIdentifier("L")
	require.True(t, ok)
	assert.Contains(t, r.Description, "Landfall")

	s, ok := LookupStatus("HU")
	require.True(t, ok)
	assert.Equal(t, "> 64 knots", s.Intensity)

	_, ok = LookupBasin("XX")
	assert.False(t, ok)
	_, ok = LookupRecordIdentifier("Z")
	assert.False(t, ok)
	_, ok = LookupStatus("ZZ")
	assert.False(t, ok)
}
