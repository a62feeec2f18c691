package app

import (
	"context"
	"strings"
	"time"

	"github.com/example/trove/internal/core/mood"
	"github.com/example/trove/internal/models"
	"github.com/example/trove/internal/query"
	"github.com/example/trove/internal/stats"
	"github.com/example/trove/internal/store"
)

// MoodService manages the mood/weather journal.
type MoodService struct {
	entries *store.Store[models.MoodEntry]
	clock   func() time.Time
}

// NewMoodService creates a MoodService with an injected store.
func NewMoodService(entries *store.Store[models.MoodEntry]) *MoodService {
	return &MoodService{entries: entries, clock: time.Now}
}

// AddEntry validates and stores a new journal entry.
func (s *MoodService) AddEntry(ctx context.Context, e models.MoodEntry) (models.MoodEntry, error) {
	if err := guardEntry(e); err != nil {
		return models.MoodEntry{}, err
	}
	return s.entries.Add(ctx, e)
}

// UpdateEntry validates and replaces an existing journal entry.
func (s *MoodService) UpdateEntry(ctx context.Context, e models.MoodEntry) (models.MoodEntry, error) {
	if err := guardEntry(e); err != nil {
		return models.MoodEntry{}, err
	}
	return s.entries.Update(ctx, e)
}

// DeleteEntry removes a journal entry. Deleting an unknown id is a no-op.
func (s *MoodService) DeleteEntry(ctx context.Context, id string) error {
	return s.entries.Delete(ctx, id)
}

// GetEntry retrieves a journal entry by id.
func (s *MoodService) GetEntry(id string) (models.MoodEntry, error) {
	return s.entries.Get(id)
}

func guardEntry(e models.MoodEntry) error {
	return mood.CanSaveEntry(mood.SaveEntryContext{
		Mood:        e.Mood,
		Weather:     e.Weather,
		Temperature: e.Temperature,
	}).Error()
}

// EntryFilters contains filter options for listing journal entries.
// Zero-valued fields are ignored.
type EntryFilters struct {
	Mood       int // exact mood, 0 = all
	Weather    string
	Tag        string
	Text       string
	WithinDays int
	Limit      int
}

// ListEntries returns a derived view of the journal, most recent first.
func (s *MoodService) ListEntries(f EntryFilters) []models.MoodEntry {
	q := query.Query[models.MoodEntry]{
		SortBy: query.MostRecentFirst(func(e models.MoodEntry) time.Time { return e.CreatedAt }),
		Limit:  f.Limit,
	}
	q = q.Where(query.Equals(f.Mood, func(e models.MoodEntry) int { return e.Mood }))
	q = q.Where(query.Equals(f.Weather, func(e models.MoodEntry) string { return e.Weather }))
	q = q.Where(query.TextMatch(f.Text, func(e models.MoodEntry) []string {
		return append([]string{e.Note}, e.Tags...)
	}))
	q = q.Where(query.WithinDays(f.WithinDays, s.clock(), func(e models.MoodEntry) time.Time { return e.CreatedAt }))
	if f.Tag != "" {
		want := strings.ToLower(f.Tag)
		q = q.Where(func(e models.MoodEntry) bool {
			for _, t := range e.Tags {
				if strings.ToLower(t) == want {
					return true
				}
			}
			return false
		})
	}
	return query.Evaluate(s.entries.All(), q)
}

// MoodSummary is the dashboard aggregate for the mood journal.
type MoodSummary struct {
	Entries            int
	AverageMood        float64
	AverageTemperature float64
	Streak             int // consecutive days with an entry, ending today
	Moods              []stats.GroupCount
	ByWeather          []stats.GroupCount
}

// Summary folds the journal into dashboard numbers.
func (s *MoodService) Summary() MoodSummary {
	entries := s.entries.All()

	stamps := make([]time.Time, 0, len(entries))
	for _, e := range entries {
		stamps = append(stamps, e.CreatedAt)
	}

	return MoodSummary{
		Entries: len(entries),
		AverageMood: stats.Average(entries, func(e models.MoodEntry) (float64, bool) {
			return float64(e.Mood), true
		}),
		AverageTemperature: stats.Average(entries, models.MoodEntry.TemperatureValue),
		Streak:             stats.Streak(stamps, s.clock()),
		Moods:              stats.Distribution(entries, models.MoodEntry.MoodName),
		ByWeather: stats.TopN(entries, func(e models.MoodEntry) string { return e.Weather },
			len(models.WeatherConditions)),
	}
}
