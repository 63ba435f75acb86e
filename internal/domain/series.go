package domain

import "time"

// TimePoint is one month bucket in a time series.
type TimePoint struct {
	Month time.Time
	Count int
}

// TimeSeries holds per-month event counts, months ascending. Months with no
// events are absent rather than zero-filled.
type TimeSeries struct {
	Points []TimePoint
}

// Empty reports whether the series has no data points.
func (s TimeSeries) Empty() bool { return len(s.Points) == 0 }

// Total returns the sum of all bucket counts.
func (s TimeSeries) Total() int {
	var n int
	for _, p := range s.Points {
		n += p.Count
	}
	return n
}

// CategoryCount is one entry in a ranked distribution.
type CategoryCount struct {
	Category string
	Count    int
}

// RankedDistribution holds category counts sorted descending by count,
// ties broken by first appearance in the input, truncated to a top-N.
type RankedDistribution struct {
	Entries []CategoryCount
}

// Empty reports whether the distribution has no entries.
func (d RankedDistribution) Empty() bool { return len(d.Entries) == 0 }

// StackedMatrix is a categories × months grid of counts. Counts[i][j] is the
// number of events of Categories[i] during Months[j]; absent combinations
// are zero.
type StackedMatrix struct {
	Categories []string
	Months     []time.Time
	Counts     [][]int
}

// Empty reports whether the matrix has no months.
func (m StackedMatrix) Empty() bool { return len(m.Months) == 0 }

// MonthTotal returns the column sum for month index j.
func (m StackedMatrix) MonthTotal(j int) int {
	var n int
	for i := range m.Categories {
		n += m.Counts[i][j]
	}
	return n
}

// CalendarMatrix is a 7×W grid of per-day event counts. Rows are days of the
// week, Monday-indexed; columns are week offsets from the first event date.
type CalendarMatrix struct {
	Start time.Time
	Weeks int
	// Counts has exactly 7 rows of Weeks columns each.
	Counts [][]int
}

// Empty reports whether the matrix covers no days.
func (m CalendarMatrix) Empty() bool { return m.Weeks == 0 }

// Total returns the sum of all cells.
func (m CalendarMatrix) Total() int {
	var n int
	for _, row := range m.Counts {
		for _, c := range row {
			n += c
		}
	}
	return n
}

// Max returns the largest single-day count in the matrix.
func (m CalendarMatrix) Max() int {
	var max int
	for _, row := range m.Counts {
		for _, c := range row {
			if c > max {
				max = c
			}
		}
	}
	return max
}
