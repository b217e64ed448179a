// Package series provides the CompleteSeries type fed into significance
// analysis. Including a partial current period systematically biases trend
// direction downward, so the analyzer only accepts series built here, where
// the in-progress period is dropped structurally instead of by caller
// convention.
package series

import (
	"sort"
	"time"
)

// Period is the bucketing granularity of a metric series.
type Period string

const (
	// PeriodWeek buckets values by ISO week starting Monday.
	PeriodWeek Period = "week"
	// PeriodDay buckets values by calendar day.
	PeriodDay Period = "day"
)

// Point is one observed metric value with the start of its period.
type Point struct {
	PeriodStart time.Time `json:"period_start"`
	Value       float64   `json:"value"`
}

// CompleteSeries is an ordered run of metric values, oldest first, with the
// current (incomplete) period excluded. The zero value is an empty series.
type CompleteSeries struct {
	values []float64
}

// Build sorts the points oldest-first and drops any point whose period has
// not finished as of now, returning the resulting complete series.
func Build(points []Point, now time.Time, period Period) CompleteSeries {
	sorted := make([]Point, len(points))
	copy(sorted, points)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].PeriodStart.Before(sorted[j].PeriodStart)
	})

	values := make([]float64, 0, len(sorted))
	for _, p := range sorted {
		if !periodEnd(p.PeriodStart, period).After(now) {
			values = append(values, p.Value)
		}
	}
	return CompleteSeries{values: values}
}

// FromValues wraps already-complete values. Callers own the contract that
// no in-progress period is included; prefer Build when timestamps exist.
func FromValues(values []float64) CompleteSeries {
	copied := make([]float64, len(values))
	copy(copied, values)
	return CompleteSeries{values: copied}
}

// Values returns a copy of the series values, oldest first.
func (s CompleteSeries) Values() []float64 {
	out := make([]float64, len(s.values))
	copy(out, s.values)
	return out
}

// Len returns the number of complete periods in the series.
func (s CompleteSeries) Len() int {
	return len(s.values)
}

// Latest returns the most recent complete value, or zero for an empty series.
func (s CompleteSeries) Latest() float64 {
	if len(s.values) == 0 {
		return 0
	}
	return s.values[len(s.values)-1]
}

func periodEnd(start time.Time, period Period) time.Time {
	switch period {
	case PeriodDay:
		return start.AddDate(0, 0, 1)
	default:
		return start.AddDate(0, 0, 7)
	}
}
