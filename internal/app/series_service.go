package app

import (
	"context"
	"time"

	"github.com/example/trove/internal/core/series"
	"github.com/example/trove/internal/models"
	"github.com/example/trove/internal/query"
	"github.com/example/trove/internal/stats"
	"github.com/example/trove/internal/store"
)

// SeriesService manages the TV-series watchlist.
type SeriesService struct {
	list  *store.Store[models.Series]
	clock func() time.Time
}

// NewSeriesService creates a SeriesService with an injected store.
func NewSeriesService(list *store.Store[models.Series]) *SeriesService {
	return &SeriesService{list: list, clock: time.Now}
}

// AddSeries validates and stores a new series. An empty status defaults
// to planned.
func (s *SeriesService) AddSeries(ctx context.Context, sr models.Series) (models.Series, error) {
	if err := guardSeries(sr); err != nil {
		return models.Series{}, err
	}
	if sr.Status == "" {
		sr.Status = models.SeriesStatusPlanned
	}
	return s.list.Add(ctx, sr)
}

// UpdateSeries validates and replaces an existing series.
func (s *SeriesService) UpdateSeries(ctx context.Context, sr models.Series) (models.Series, error) {
	if err := guardSeries(sr); err != nil {
		return models.Series{}, err
	}
	return s.list.Update(ctx, sr)
}

// DeleteSeries removes a series. Deleting an unknown id is a no-op.
func (s *SeriesService) DeleteSeries(ctx context.Context, id string) error {
	return s.list.Delete(ctx, id)
}

// GetSeries retrieves a series by id.
func (s *SeriesService) GetSeries(id string) (models.Series, error) {
	return s.list.Get(id)
}

func guardSeries(sr models.Series) error {
	return series.CanSaveSeries(series.SaveSeriesContext{
		Title:   sr.Title,
		Status:  sr.Status,
		Season:  sr.Season,
		Episode: sr.Episode,
		Rating:  sr.Rating,
	}).Error()
}

// Advance records watching progress: the next episode, or the next season
// when nextSeason is set (resetting the episode to 1). Advancing a
// planned series moves it to watching.
func (s *SeriesService) Advance(ctx context.Context, id string, nextSeason bool) (models.Series, error) {
	sr, err := s.list.Get(id)
	if err != nil {
		return models.Series{}, err
	}
	if err := series.CanAdvance(series.AdvanceContext{SeriesID: id, Status: sr.Status}).Error(); err != nil {
		return models.Series{}, err
	}

	if sr.Status == models.SeriesStatusPlanned {
		sr.Status = models.SeriesStatusWatching
	}
	if nextSeason {
		sr.Season++
		sr.Episode = 1
	} else {
		sr.Episode++
		if sr.Season == 0 {
			sr.Season = 1
		}
	}
	return s.list.Update(ctx, sr)
}

// Rate sets the series rating.
func (s *SeriesService) Rate(ctx context.Context, id string, rating float64) (models.Series, error) {
	sr, err := s.list.Get(id)
	if err != nil {
		return models.Series{}, err
	}
	sr.Rating = &rating
	if err := guardSeries(sr); err != nil {
		return models.Series{}, err
	}
	return s.list.Update(ctx, sr)
}

// MarkStatus moves a series to the given status.
func (s *SeriesService) MarkStatus(ctx context.Context, id, status string) (models.Series, error) {
	sr, err := s.list.Get(id)
	if err != nil {
		return models.Series{}, err
	}
	sr.Status = status
	if err := guardSeries(sr); err != nil {
		return models.Series{}, err
	}
	return s.list.Update(ctx, sr)
}

// SeriesFilters contains filter options for listing series. Zero-valued
// fields are ignored.
type SeriesFilters struct {
	Status    string
	Genre     string
	Text      string
	MinRating *float64
	MaxRating *float64
	Limit     int
}

// ListSeries returns a derived view of the watchlist, most recently
// touched first.
func (s *SeriesService) ListSeries(f SeriesFilters) []models.Series {
	q := query.Query[models.Series]{
		SortBy: query.MostRecentFirst(func(sr models.Series) time.Time { return sr.UpdatedAt }),
		Limit:  f.Limit,
	}
	q = q.Where(query.Equals(f.Status, func(sr models.Series) string { return sr.Status }))
	q = q.Where(query.Equals(f.Genre, func(sr models.Series) string { return sr.Genre }))
	q = q.Where(query.TextMatch(f.Text, func(sr models.Series) []string {
		return []string{sr.Title, sr.Genre, sr.Notes}
	}))
	q = q.Where(query.NumberRange(f.MinRating, f.MaxRating, models.Series.RatingValue))
	return query.Evaluate(s.list.All(), q)
}

// SeriesByGenre groups the watchlist by genre; series without a genre
// land in the ungrouped bucket.
func (s *SeriesService) SeriesByGenre() []query.Group[models.Series] {
	q := query.Query[models.Series]{
		SortBy: func(a, b models.Series) bool { return a.Title < b.Title },
	}
	return query.GroupBy(s.list.All(), q, func(sr models.Series) (string, bool) {
		return sr.Genre, sr.Genre != ""
	})
}

// SeriesSummary is the dashboard aggregate for the watchlist.
type SeriesSummary struct {
	Total         int
	ByStatus      []stats.GroupCount
	AverageRating float64 // over rated series only
	TopGenres     []stats.GroupCount
}

// Summary folds the watchlist into dashboard numbers.
func (s *SeriesService) Summary() SeriesSummary {
	all := s.list.All()
	return SeriesSummary{
		Total:         len(all),
		ByStatus:      stats.Distribution(all, func(sr models.Series) string { return sr.Status }),
		AverageRating: stats.Average(all, models.Series.RatingValue),
		TopGenres:     stats.TopN(all, func(sr models.Series) string { return sr.Genre }, 3),
	}
}
