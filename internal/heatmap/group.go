package heatmap

import "fmt"

// GroupByYear groups records into one YearGroup per year.
//
// Years appear in the order of their first record and months keep input
// order; nothing is re-sorted. Accumulation is keyed by year, so interleaved
// input still groups correctly. Empty input yields an empty slice.
func GroupByYear(records []MonthlyRecord, base float64) ([]YearGroup, error) {
	groups := make([]YearGroup, 0)
	byYear := make(map[int]int)
	seen := make(map[[2]int]struct{}, len(records))

	for i, r := range records {
		if r.Month < 1 || r.Month > 12 {
			return nil, fmt.Errorf("%w: record %d (year %d) has month %d", ErrMalformedRecord, i, r.Year, r.Month)
		}
		key := [2]int{r.Year, r.Month}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: record %d repeats year %d month %d", ErrMalformedRecord, i, r.Year, r.Month)
		}
		seen[key] = struct{}{}

		idx, ok := byYear[r.Year]
		if !ok {
			idx = len(groups)
			byYear[r.Year] = idx
			groups = append(groups, YearGroup{Year: r.Year})
		}
		groups[idx].MonthlyData = append(groups[idx].MonthlyData, Derive(r, base))
	}

	return groups, nil
}

// YearRange returns the smallest and largest year present. ok is false when
// groups is empty.
func YearRange(groups []YearGroup) (minYear, maxYear int, ok bool) {
	if len(groups) == 0 {
		return 0, 0, false
	}
	minYear, maxYear = groups[0].Year, groups[0].Year
	for _, g := range groups[1:] {
		if g.Year < minYear {
			minYear = g.Year
		}
		if g.Year > maxYear {
			maxYear = g.Year
		}
	}
	return minYear, maxYear, true
}
