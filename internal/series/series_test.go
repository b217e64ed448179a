package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func weekStart(t *testing.T, date string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02", date)
	assert.NoError(t, err)
	return ts
}

func TestBuild_DropsIncompleteCurrentPeriod(t *testing.T) {
	points := []Point{
		{PeriodStart: weekStart(t, "2026-08-03"), Value: 100},
		{PeriodStart: weekStart(t, "2026-08-10"), Value: 110},
		{PeriodStart: weekStart(t, "2026-08-17"), Value: 105},
		{PeriodStart: weekStart(t, "2026-08-24"), Value: 40}, // week still running
	}
	now := weekStart(t, "2026-08-27")

	s := Build(points, now, PeriodWeek)

	assert.Equal(t, []float64{100, 110, 105}, s.Values())
	assert.Equal(t, 3, s.Len())
	assert.InDelta(t, 105, s.Latest(), 1e-9)
}

func TestBuild_KeepsJustFinishedPeriod(t *testing.T) {
	points := []Point{
		{PeriodStart: weekStart(t, "2026-08-17"), Value: 105},
		{PeriodStart: weekStart(t, "2026-08-24"), Value: 120},
	}
	// Monday after the 2026-08-24 week ends.
	now := weekStart(t, "2026-08-31")

	s := Build(points, now, PeriodWeek)
	assert.Equal(t, []float64{105, 120}, s.Values())
}

func TestBuild_SortsOldestFirst(t *testing.T) {
	points := []Point{
		{PeriodStart: weekStart(t, "2026-08-12"), Value: 2},
		{PeriodStart: weekStart(t, "2026-08-10"), Value: 1},
		{PeriodStart: weekStart(t, "2026-08-14"), Value: 3},
	}
	now := weekStart(t, "2026-08-20")

	s := Build(points, now, PeriodDay)
	assert.Equal(t, []float64{1, 2, 3}, s.Values())
}

func TestFromValues_CopiesInput(t *testing.T) {
	raw := []float64{1, 2, 3}
	s := FromValues(raw)
	raw[0] = 99

	assert.Equal(t, []float64{1, 2, 3}, s.Values())

	got := s.Values()
	got[1] = 42
	assert.Equal(t, []float64{1, 2, 3}, s.Values())
}

func TestEmptySeries(t *testing.T) {
	var s CompleteSeries
	assert.Zero(t, s.Len())
	assert.Zero(t, s.Latest())
	assert.Empty(t, s.Values())
}
