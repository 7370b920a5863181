package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestComputeAward(t *testing.T) {
	tests := []struct {
		name                  string
		base, earned, cap     int64
		want                  int64
	}{
		{"full award under cap", 10, 0, 100, 10},
		{"full award exactly fills cap", 30, 70, 100, 30},
		{"clamped at boundary", 30, 90, 100, 10},
		{"zero at cap", 10, 100, 100, 0},
		{"zero above cap", 10, 150, 100, 0},
		{"zero base", 0, 0, 100, 0},
		{"negative base treated as zero", -5, 0, 100, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeAward(tt.base, tt.earned, tt.cap)
			assert.Equal(t, tt.want, got)
			// Idempotent under re-evaluation.
			assert.Equal(t, got, ComputeAward(tt.base, tt.earned, tt.cap))
		})
	}
}

func TestComputeAward_NeverNegative(t *testing.T) {
	for base := int64(0); base <= 20; base += 5 {
		for earned := int64(0); earned <= 120; earned += 30 {
			assert.GreaterOrEqual(t, ComputeAward(base, earned, 100), int64(0))
		}
	}
}

func TestIsNewDay(t *testing.T) {
	noon := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

	assert.False(t, IsNewDay(noon, noon))
	// Later the same day is not a new day.
	assert.False(t, IsNewDay(noon, noon.Add(11*time.Hour)))
	// One minute past midnight is a new day.
	assert.True(t, IsNewDay(noon, time.Date(2026, 3, 15, 0, 1, 0, 0, time.UTC)))
	// Month and year boundaries.
	assert.True(t, IsNewDay(time.Date(2026, 3, 31, 23, 0, 0, 0, time.UTC), time.Date(2026, 4, 1, 1, 0, 0, 0, time.UTC)))
	assert.True(t, IsNewDay(time.Date(2025, 12, 31, 23, 0, 0, 0, time.UTC), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)))
	// Clock skew backwards never counts as a new day.
	assert.False(t, IsNewDay(noon, noon.Add(-25*time.Hour)))
}

func TestEffectiveDailyEarned(t *testing.T) {
	yesterday := time.Date(2026, 3, 13, 18, 0, 0, 0, time.UTC)
	today := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, int64(0), EffectiveDailyEarned(90, yesterday, today))
	assert.Equal(t, int64(90), EffectiveDailyEarned(90, today, today.Add(2*time.Hour)))
}
