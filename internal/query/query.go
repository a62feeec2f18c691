// Package query evaluates declarative filter/sort/group specifications
// against a snapshot of a record collection. Evaluation is a pure function
// of (snapshot, query): it never mutates the snapshot and re-evaluating an
// unchanged snapshot yields identical output.
package query

import (
	"sort"
	"strings"
	"time"
)

// Predicate decides whether a record matches a filter.
type Predicate[T any] func(T) bool

// Less orders two records for sorting.
type Less[T any] func(a, b T) bool

// Query describes a derived view: composable filters, one sort rule, and
// an optional top-N truncation applied after filter+sort. All fields are
// optional; the zero Query returns the snapshot unchanged (as a copy).
type Query[T any] struct {
	Filters []Predicate[T]
	SortBy  Less[T]
	Desc    bool
	Limit   int // 0 means no truncation
}

// Where returns a copy of the query with an extra filter appended.
func (q Query[T]) Where(p Predicate[T]) Query[T] {
	filters := make([]Predicate[T], len(q.Filters), len(q.Filters)+1)
	copy(filters, q.Filters)
	q.Filters = append(filters, p)
	return q
}

// Evaluate applies the query to a snapshot and returns a new slice.
// Sorting is stable, so ties keep insertion order. Filtering an empty
// snapshot returns an empty result.
func Evaluate[T any](snapshot []T, q Query[T]) []T {
	result := make([]T, 0, len(snapshot))
	for _, r := range snapshot {
		if q.matches(r) {
			result = append(result, r)
		}
	}

	if q.SortBy != nil {
		less := q.SortBy
		if q.Desc {
			orig := less
			less = func(a, b T) bool { return orig(b, a) }
		}
		sort.SliceStable(result, func(i, j int) bool { return less(result[i], result[j]) })
	}

	if q.Limit > 0 && len(result) > q.Limit {
		result = result[:q.Limit]
	}
	return result
}

func (q Query[T]) matches(r T) bool {
	for _, p := range q.Filters {
		if p != nil && !p(r) {
			return false
		}
	}
	return true
}

// Group is one bucket of a grouped evaluation. Records whose group key is
// absent land in a single bucket with Ungrouped set rather than being
// dropped.
type Group[T any] struct {
	Key       string
	Ungrouped bool
	Records   []T
}

// GroupBy evaluates the query and buckets the result by key. Group order
// is first-seen; each group is internally ordered by the query's sort
// rule. The key selector returns (key, ok); ok=false routes the record to
// the ungrouped bucket.
func GroupBy[T any](snapshot []T, q Query[T], key func(T) (string, bool)) []Group[T] {
	evaluated := Evaluate(snapshot, q)

	var groups []Group[T]
	pos := make(map[string]int)
	ungrouped := -1

	for _, r := range evaluated {
		k, ok := key(r)
		if !ok {
			if ungrouped < 0 {
				ungrouped = len(groups)
				groups = append(groups, Group[T]{Ungrouped: true})
			}
			groups[ungrouped].Records = append(groups[ungrouped].Records, r)
			continue
		}
		i, seen := pos[k]
		if !seen {
			i = len(groups)
			pos[k] = i
			groups = append(groups, Group[T]{Key: k})
		}
		groups[i].Records = append(groups[i].Records, r)
	}
	return groups
}

// TextMatch builds a case-insensitive substring filter over the string
// fields returned by the selector. An empty or whitespace-only needle
// matches everything (no text filter).
func TextMatch[T any](needle string, fields func(T) []string) Predicate[T] {
	needle = strings.ToLower(strings.TrimSpace(needle))
	return func(r T) bool {
		if needle == "" {
			return true
		}
		for _, f := range fields(r) {
			if strings.Contains(strings.ToLower(f), needle) {
				return true
			}
		}
		return false
	}
}

// WithinDays keeps records whose timestamp falls inside the trailing
// window of the given number of days ending at now. days <= 0 disables
// the filter.
func WithinDays[T any](days int, now time.Time, at func(T) time.Time) Predicate[T] {
	return func(r T) bool {
		if days <= 0 {
			return true
		}
		cutoff := now.AddDate(0, 0, -days)
		t := at(r)
		return t.After(cutoff) && !t.After(now)
	}
}

// NumberRange keeps records whose optional numeric field lies inside the
// given bounds. Bounds are explicit options, not sentinels: a nil bound
// is unbounded on that side. With both bounds nil every record matches,
// including records lacking the field; once any bound is set, records
// lacking the field are excluded.
func NumberRange[T any](min, max *float64, sel func(T) (float64, bool)) Predicate[T] {
	return func(r T) bool {
		if min == nil && max == nil {
			return true
		}
		v, ok := sel(r)
		if !ok {
			return false
		}
		if min != nil && v < *min {
			return false
		}
		if max != nil && v > *max {
			return false
		}
		return true
	}
}

// OneOf keeps records whose selected value is in the allowed set. An
// empty set disables the filter.
func OneOf[T any, V comparable](allowed []V, sel func(T) V) Predicate[T] {
	if len(allowed) == 0 {
		return func(T) bool { return true }
	}
	set := make(map[V]struct{}, len(allowed))
	for _, v := range allowed {
		set[v] = struct{}{}
	}
	return func(r T) bool {
		_, ok := set[sel(r)]
		return ok
	}
}

// Equals keeps records whose selected value equals want. The zero value
// of V disables the filter, matching the "empty flag means no filter"
// convention used by the list commands.
func Equals[T any, V comparable](want V, sel func(T) V) Predicate[T] {
	var zero V
	if want == zero {
		return func(T) bool { return true }
	}
	return func(r T) bool { return sel(r) == want }
}

// MostRecentFirst orders records by a timestamp, newest first when used
// as Query.SortBy with Desc unset.
func MostRecentFirst[T any](at func(T) time.Time) Less[T] {
	return func(a, b T) bool { return at(a).After(at(b)) }
}
