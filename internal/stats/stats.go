// Package stats folds record collections into the aggregate numbers shown
// on the tracker dashboards. Every function is pure and total: empty
// input yields zero values, never an error or NaN.
package stats

import (
	"sort"
	"time"
)

// Count returns the number of records matching the predicate. A nil
// predicate counts everything.
func Count[T any](records []T, pred func(T) bool) int {
	if pred == nil {
		return len(records)
	}
	n := 0
	for _, r := range records {
		if pred(r) {
			n++
		}
	}
	return n
}

// Sum folds the selected optional numeric field. Records without the
// field contribute nothing.
func Sum[T any](records []T, sel func(T) (float64, bool)) float64 {
	total := 0.0
	for _, r := range records {
		if v, ok := sel(r); ok {
			total += v
		}
	}
	return total
}

// Average divides the sum of the selected field by the count of records
// that have it, not the total record count. Returns 0 when no record has
// the field.
func Average[T any](records []T, sel func(T) (float64, bool)) float64 {
	total, n := 0.0, 0
	for _, r := range records {
		if v, ok := sel(r); ok {
			total += v
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return total / float64(n)
}

// GroupCount is one ranked entry of a TopN result.
type GroupCount struct {
	Key   string
	Count int
}

// TopN groups records by key, counts each group, and returns the n
// largest groups in descending count order. Ties keep first-seen order.
// Records with an empty key are skipped. n <= 0 returns nil.
func TopN[T any](records []T, key func(T) string, n int) []GroupCount {
	if n <= 0 {
		return nil
	}

	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		k := key(r)
		if k == "" {
			continue
		}
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	ranked := make([]GroupCount, 0, len(order))
	for _, k := range order {
		ranked = append(ranked, GroupCount{Key: k, Count: counts[k]})
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Count > ranked[j].Count })

	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// Distribution returns counts for every group key in first-seen order,
// without ranking or truncation.
func Distribution[T any](records []T, key func(T) string) []GroupCount {
	counts := make(map[string]int)
	var order []string
	for _, r := range records {
		k := key(r)
		if _, seen := counts[k]; !seen {
			order = append(order, k)
		}
		counts[k]++
	}

	out := make([]GroupCount, 0, len(order))
	for _, k := range order {
		out = append(out, GroupCount{Key: k, Count: counts[k]})
	}
	return out
}

// Percentage returns part/whole as a fraction in [0,1], or 0 when whole
// is 0.
func Percentage(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole
}

// Streak counts consecutive calendar days with at least one timestamp,
// walking backwards from today. A streak is still alive if the most
// recent entry was yesterday; a day without entries before that breaks it.
func Streak(stamps []time.Time, now time.Time) int {
	days := make(map[string]bool, len(stamps))
	for _, t := range stamps {
		days[t.Format("2006-01-02")] = true
	}

	anchor := now
	if !days[anchor.Format("2006-01-02")] {
		anchor = anchor.AddDate(0, 0, -1)
		if !days[anchor.Format("2006-01-02")] {
			return 0
		}
	}

	n := 0
	for days[anchor.Format("2006-01-02")] {
		n++
		anchor = anchor.AddDate(0, 0, -1)
	}
	return n
}
