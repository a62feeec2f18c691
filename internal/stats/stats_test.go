package stats

import (
	"reflect"
	"testing"
	"time"
)

type entry struct {
	Owner string
	Price *float64
}

func priced(v float64) *float64 { return &v }

func price(e entry) (float64, bool) {
	if e.Price == nil {
		return 0, false
	}
	return *e.Price, true
}

func TestCount(t *testing.T) {
	entries := []entry{{Owner: "a"}, {Owner: "b"}, {Owner: "a"}}

	if got := Count(entries, nil); got != 3 {
		t.Errorf("Count(nil pred) = %d, want 3", got)
	}
	got := Count(entries, func(e entry) bool { return e.Owner == "a" })
	if got != 2 {
		t.Errorf("Count(owner=a) = %d, want 2", got)
	}
	if got := Count[entry](nil, nil); got != 0 {
		t.Errorf("Count(empty) = %d, want 0", got)
	}
}

func TestSumAndAverageSkipAbsentFields(t *testing.T) {
	entries := []entry{
		{Price: priced(10)},
		{},
		{Price: priced(30)},
	}

	if got := Sum(entries, price); got != 40 {
		t.Errorf("Sum = %v, want 40", got)
	}
	// The unpriced entry is excluded from the denominator.
	if got := Average(entries, price); got != 20 {
		t.Errorf("Average = %v, want 20", got)
	}
}

func TestAverageEmptyIsZero(t *testing.T) {
	if got := Average(nil, price); got != 0 {
		t.Errorf("Average(empty) = %v, want 0", got)
	}
	unpriced := []entry{{}, {}}
	if got := Average(unpriced, price); got != 0 {
		t.Errorf("Average(all absent) = %v, want 0", got)
	}
}

func TestTopN(t *testing.T) {
	entries := []entry{
		{Owner: "alice"},
		{Owner: "bob"},
		{Owner: "cara"},
		{Owner: "alice"},
		{Owner: "cara"},
		{Owner: ""},
		{Owner: "alice"},
	}
	key := func(e entry) string { return e.Owner }

	got := TopN(entries, key, 2)
	want := []GroupCount{{Key: "alice", Count: 3}, {Key: "cara", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopN(2) = %v, want %v", got, want)
	}

	if got := TopN(entries, key, 0); got != nil {
		t.Errorf("TopN(0) = %v, want nil", got)
	}
	if got := TopN(entries, key, 10); len(got) != 3 {
		t.Errorf("TopN(10) returned %d groups, want 3", len(got))
	}
}

func TestTopNTiesKeepFirstSeenOrder(t *testing.T) {
	entries := []entry{{Owner: "x"}, {Owner: "y"}, {Owner: "y"}, {Owner: "x"}}

	got := TopN(entries, func(e entry) string { return e.Owner }, 2)
	want := []GroupCount{{Key: "x", Count: 2}, {Key: "y", Count: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("TopN = %v, want %v", got, want)
	}
}

func TestDistribution(t *testing.T) {
	entries := []entry{{Owner: "b"}, {Owner: "a"}, {Owner: "b"}, {Owner: "b"}}

	got := Distribution(entries, func(e entry) string { return e.Owner })
	want := []GroupCount{{Key: "b", Count: 3}, {Key: "a", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Distribution = %v, want %v", got, want)
	}
}

func TestPercentage(t *testing.T) {
	if got := Percentage(1, 4); got != 0.25 {
		t.Errorf("Percentage(1,4) = %v, want 0.25", got)
	}
	if got := Percentage(3, 0); got != 0 {
		t.Errorf("Percentage(3,0) = %v, want 0", got)
	}
}

func TestStreak(t *testing.T) {
	now := time.Date(2024, 6, 15, 9, 30, 0, 0, time.UTC)
	day := func(n int) time.Time { return now.AddDate(0, 0, -n) }

	tests := []struct {
		name   string
		stamps []time.Time
		want   int
	}{
		{"no entries", nil, 0},
		{"single entry today", []time.Time{now}, 1},
		{"three days ending today", []time.Time{day(2), day(1), now}, 3},
		{"alive via yesterday", []time.Time{day(2), day(1)}, 2},
		{"broken two days ago", []time.Time{day(3), day(2)}, 0},
		{"gap resets the run", []time.Time{day(4), day(1), now}, 2},
		{"multiple entries per day count once", []time.Time{now, now.Add(-time.Hour), day(1)}, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Streak(tt.stamps, now); got != tt.want {
				t.Errorf("Streak = %d, want %d", got, tt.want)
			}
		})
	}
}
