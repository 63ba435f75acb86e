// Package aggregate turns raw event records into chart-ready series. All
// functions are pure: no I/O, no rendering, and deterministic output — the
// same input sequence always produces bit-identical series. Malformed
// records are counted and skipped, never fatal.
package aggregate

import (
	"sort"
	"time"

	"github.com/couchcryptid/storm-report-service/internal/domain"
)

const (
	// DefaultRankLimit caps the ranked distribution at its top entries.
	DefaultRankLimit = 10
	// DefaultStackCategories caps the stacked matrix category set.
	DefaultStackCategories = 6
)

// BucketByMonth counts events per calendar month. Months appear in
// ascending order, one point per month present in the input; months with no
// events are not zero-filled. Records with an unparsable or absent date are
// skipped and counted in the second return value.
func BucketByMonth(events []domain.EventRecord) (domain.TimeSeries, int) {
	counts := make(map[time.Time]int)
	var skipped int
	for _, rec := range events {
		d, ok := rec.Date()
		if !ok {
			skipped++
			continue
		}
		counts[monthStart(d)]++
	}

	months := make([]time.Time, 0, len(counts))
	for m := range counts {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	series := domain.TimeSeries{Points: make([]domain.TimePoint, 0, len(months))}
	for _, m := range months {
		series.Points = append(series.Points, domain.TimePoint{Month: m, Count: counts[m]})
	}
	return series, skipped
}

// RankCategories counts events per category and returns the top limit
// entries sorted by count descending. Ties break by first appearance in the
// input, not by category name, so ranking is stable across runs. A limit of
// zero or less applies DefaultRankLimit. Category resolution never fails
// (missing keys map to "Unknown"), so the skip count is always zero; it is
// returned for contract symmetry with the other aggregations.
func RankCategories(events []domain.EventRecord, limit int) (domain.RankedDistribution, int) {
	if limit <= 0 {
		limit = DefaultRankLimit
	}

	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	for i, rec := range events {
		cat := rec.Category()
		if _, seen := counts[cat]; !seen {
			firstSeen[cat] = i
		}
		counts[cat]++
	}

	entries := make([]domain.CategoryCount, 0, len(counts))
	for cat, n := range counts {
		entries = append(entries, domain.CategoryCount{Category: cat, Count: n})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return firstSeen[entries[i].Category] < firstSeen[entries[j].Category]
	})

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return domain.RankedDistribution{Entries: entries}, 0
}

// StackByMonth builds a categories × months grid of counts. Months cover
// every month with at least one dated event, ascending. The category subset
// is the first categoryLimit names of the full category set in lexicographic
// order — not by frequency; common types can be under-represented when more
// categories exist, which matches the upstream behavior this preserves.
// Cells for absent (category, month) pairs are zero. Records without a
// parsable date are skipped and counted.
func StackByMonth(events []domain.EventRecord, categoryLimit int) (domain.StackedMatrix, int) {
	if categoryLimit <= 0 {
		categoryLimit = DefaultStackCategories
	}

	monthly := make(map[time.Time]map[string]int)
	allCategories := make(map[string]struct{})
	var skipped int
	for _, rec := range events {
		d, ok := rec.Date()
		if !ok {
			skipped++
			continue
		}
		m := monthStart(d)
		if monthly[m] == nil {
			monthly[m] = make(map[string]int)
		}
		cat := rec.Category()
		monthly[m][cat]++
		allCategories[cat] = struct{}{}
	}

	if len(monthly) == 0 {
		return domain.StackedMatrix{}, skipped
	}

	categories := make([]string, 0, len(allCategories))
	for cat := range allCategories {
		categories = append(categories, cat)
	}
	sort.Strings(categories)
	if len(categories) > categoryLimit {
		categories = categories[:categoryLimit]
	}

	months := make([]time.Time, 0, len(monthly))
	for m := range monthly {
		months = append(months, m)
	}
	sort.Slice(months, func(i, j int) bool { return months[i].Before(months[j]) })

	counts := make([][]int, len(categories))
	for i, cat := range categories {
		counts[i] = make([]int, len(months))
		for j, m := range months {
			counts[i][j] = monthly[m][cat]
		}
	}

	return domain.StackedMatrix{Categories: categories, Months: months, Counts: counts}, skipped
}

// CalendarMatrix builds a 7-row weekday × week-offset grid of per-day
// counts. Rows are Monday-indexed weekdays; column j covers days
// [first+7j, first+7j+6] relative to the first event date. The week count
// is ceil((last-first+1)/7); a day index landing outside that range is
// dropped rather than resizing the grid. Records without a parsable date
// are skipped and counted.
func CalendarMatrix(events []domain.EventRecord) (domain.CalendarMatrix, int) {
	perDay := make(map[time.Time]int)
	var skipped int
	for _, rec := range events {
		d, ok := rec.Date()
		if !ok {
			skipped++
			continue
		}
		perDay[d]++
	}

	if len(perDay) == 0 {
		return domain.CalendarMatrix{}, skipped
	}

	days := make([]time.Time, 0, len(perDay))
	for d := range perDay {
		days = append(days, d)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	first, last := days[0], days[len(days)-1]

	totalDays := int(last.Sub(first).Hours()/24) + 1
	weeks := (totalDays + 6) / 7

	counts := make([][]int, 7)
	for i := range counts {
		counts[i] = make([]int, weeks)
	}
	for _, d := range days {
		week := int(d.Sub(first).Hours()/24) / 7
		if week >= weeks {
			continue
		}
		counts[mondayIndex(d.Weekday())][week] = perDay[d]
	}

	return domain.CalendarMatrix{Start: first, Weeks: weeks, Counts: counts}, skipped
}

func monthStart(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// mondayIndex maps time.Weekday (Sunday=0) to a Monday=0 row index.
func mondayIndex(w time.Weekday) int {
	return (int(w) + 6) % 7
}
