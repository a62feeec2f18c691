package models

import "time"

// Series statuses.
const (
	SeriesStatusPlanned   = "planned"
	SeriesStatusWatching  = "watching"
	SeriesStatusCompleted = "completed"
	SeriesStatusDropped   = "dropped"
)

// SeriesStatuses lists the valid series statuses.
var SeriesStatuses = []string{SeriesStatusPlanned, SeriesStatusWatching, SeriesStatusCompleted, SeriesStatusDropped}

// IsValidSeriesStatus reports whether status is a known series status.
func IsValidSeriesStatus(status string) bool {
	for _, s := range SeriesStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Rating bounds for a series.
const (
	RatingMin = 0.0
	RatingMax = 10.0
)

// Series is one show on the watchlist. Season and Episode track progress;
// Rating is optional until the user scores the show.
type Series struct {
	Meta
	Title   string   `json:"title"`
	Status  string   `json:"status"`
	Season  int      `json:"season"`
	Episode int      `json:"episode"`
	Rating  *float64 `json:"rating,omitempty"`
	Genre   string   `json:"genre,omitempty"`
	Notes   string   `json:"notes,omitempty"`
}

func (s Series) WithIdentity(id string, now time.Time) Series {
	s.Meta = s.Meta.identified(id, now)
	return s
}

func (s Series) WithTimestamps(created, modified time.Time) Series {
	s.Meta = s.Meta.stamped(created, modified)
	return s
}

// RatingValue returns the rating and whether one is set.
func (s Series) RatingValue() (float64, bool) {
	if s.Rating == nil {
		return 0, false
	}
	return *s.Rating, true
}
