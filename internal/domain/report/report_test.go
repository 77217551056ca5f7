package report

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentageChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		want     float64
	}{
		{"zero previous saturates", 7, 0, 700},
		{"both zero", 0, 0, 0},
		{"growth", 15, 10, 50},
		{"decline", 5, 10, -50},
		{"rounded to one decimal", 1, 3, -66.7},
		{"fractional previous below one", 2, 0.5, 150},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, PercentageChange(tt.current, tt.previous), 1e-9)
		})
	}
}

func TestComparisonWindows(t *testing.T) {
	now := time.Date(2024, 6, 30, 12, 0, 0, 0, time.UTC)
	cur, prev := ComparisonWindows(now)

	assert.Equal(t, now, cur.To)
	assert.Equal(t, now.AddDate(0, 0, -30), cur.From)
	assert.Equal(t, cur.From, prev.To)
	assert.Equal(t, now.AddDate(0, 0, -60), prev.From)
}

func TestCompare(t *testing.T) {
	changes := Compare(
		PeriodCounts{Orders: 4, Views: 20, Revenue: 150},
		PeriodCounts{Orders: 0, Views: 10, Revenue: 100},
	)
	assert.Equal(t, 400.0, changes.Orders)
	assert.Equal(t, 100.0, changes.Views)
	assert.Equal(t, 50.0, changes.Revenue)
}

func TestFunnel(t *testing.T) {
	stages := Funnel(PeriodCounts{Views: 100, Inquiries: 10, Orders: 2})
	require.Len(t, stages, 3)
	assert.Equal(t, "views", stages[0].Stage)
	assert.Equal(t, int64(2), stages[2].Count)
}

func TestNewActivity(t *testing.T) {
	a, err := NewActivity(uuid.New(), ActivityOrder, "New order SO-1", "", RelatedEntity{Type: EntityOrder})
	require.NoError(t, err)
	assert.Equal(t, ActivityOrder, a.Type)

	_, err = NewActivity(uuid.New(), ActivityOrder, " ", "", RelatedEntity{})
	assert.Error(t, err)
}

func TestDayOf(t *testing.T) {
	d := DayOf(time.Date(2024, 1, 2, 23, 59, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), d)
}
