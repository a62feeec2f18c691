package app

import (
	"context"
	"strings"
	"time"

	"github.com/example/trove/internal/core/dream"
	"github.com/example/trove/internal/models"
	"github.com/example/trove/internal/query"
	"github.com/example/trove/internal/stats"
	"github.com/example/trove/internal/store"
)

// DreamService manages the dream and prediction journal.
type DreamService struct {
	dreams *store.Store[models.Dream]
	clock  func() time.Time
}

// NewDreamService creates a DreamService with an injected store.
func NewDreamService(dreams *store.Store[models.Dream]) *DreamService {
	return &DreamService{dreams: dreams, clock: time.Now}
}

// AddDream validates and stores a new dream. An empty kind defaults to
// dream and an empty outcome to pending.
func (s *DreamService) AddDream(ctx context.Context, d models.Dream) (models.Dream, error) {
	if err := guardDream(d); err != nil {
		return models.Dream{}, err
	}
	if d.Kind == "" {
		d.Kind = models.DreamKindDream
	}
	if d.Outcome == "" {
		d.Outcome = models.OutcomePending
	}
	return s.dreams.Add(ctx, d)
}

// UpdateDream validates and replaces an existing dream.
func (s *DreamService) UpdateDream(ctx context.Context, d models.Dream) (models.Dream, error) {
	if err := guardDream(d); err != nil {
		return models.Dream{}, err
	}
	return s.dreams.Update(ctx, d)
}

// DeleteDream removes a dream. Deleting an unknown id is a no-op.
func (s *DreamService) DeleteDream(ctx context.Context, id string) error {
	return s.dreams.Delete(ctx, id)
}

// GetDream retrieves a dream by id.
func (s *DreamService) GetDream(id string) (models.Dream, error) {
	return s.dreams.Get(id)
}

func guardDream(d models.Dream) error {
	return dream.CanSaveDream(dream.SaveDreamContext{
		Title: d.Title,
		Kind:  d.Kind,
	}).Error()
}

// Resolve stamps a terminal outcome on a dream. A dream is resolved
// exactly once; the resolution time comes from the service clock.
func (s *DreamService) Resolve(ctx context.Context, id, outcome string) (models.Dream, error) {
	d, err := s.dreams.Get(id)
	if err != nil {
		return models.Dream{}, err
	}
	guard := dream.CanResolveDream(dream.ResolveDreamContext{
		DreamID:        id,
		CurrentOutcome: d.Outcome,
		NewOutcome:     outcome,
	})
	if err := guard.Error(); err != nil {
		return models.Dream{}, err
	}

	now := s.clock()
	d.Outcome = outcome
	d.ResolvedAt = &now
	return s.dreams.Update(ctx, d)
}

// DreamFilters contains filter options for listing dreams. Zero-valued
// fields are ignored.
type DreamFilters struct {
	Kind       string
	Outcome    string
	Tag        string
	Text       string
	Lucid      bool // only lucid dreams
	WithinDays int
	Limit      int
}

// ListDreams returns a derived view of the journal, most recent first.
func (s *DreamService) ListDreams(f DreamFilters) []models.Dream {
	q := query.Query[models.Dream]{
		SortBy: query.MostRecentFirst(func(d models.Dream) time.Time { return d.CreatedAt }),
		Limit:  f.Limit,
	}
	q = q.Where(query.Equals(f.Kind, func(d models.Dream) string { return d.Kind }))
	q = q.Where(query.Equals(f.Outcome, func(d models.Dream) string { return d.Outcome }))
	q = q.Where(query.TextMatch(f.Text, func(d models.Dream) []string {
		return append([]string{d.Title, d.Description}, d.Tags...)
	}))
	q = q.Where(query.WithinDays(f.WithinDays, s.clock(), func(d models.Dream) time.Time { return d.CreatedAt }))
	if f.Lucid {
		q = q.Where(func(d models.Dream) bool { return d.Lucid })
	}
	if f.Tag != "" {
		want := strings.ToLower(f.Tag)
		q = q.Where(func(d models.Dream) bool {
			for _, t := range d.Tags {
				if strings.ToLower(t) == want {
					return true
				}
			}
			return false
		})
	}
	return query.Evaluate(s.dreams.All(), q)
}

// DreamSummary is the dashboard aggregate for the dream journal.
type DreamSummary struct {
	Total           int
	ByKind          []stats.GroupCount
	ByOutcome       []stats.GroupCount
	FulfillmentRate float64 // fulfilled predictions over resolved predictions
	TopTags         []stats.GroupCount
}

// Summary folds the journal into dashboard numbers. FulfillmentRate only
// considers predictions that have reached a terminal outcome.
func (s *DreamService) Summary() DreamSummary {
	all := s.dreams.All()

	isResolvedPrediction := func(d models.Dream) bool {
		return d.Kind == models.DreamKindPrediction && d.Resolved()
	}
	resolved := stats.Count(all, isResolvedPrediction)
	fulfilled := stats.Count(all, func(d models.Dream) bool {
		return isResolvedPrediction(d) && d.Outcome == models.OutcomeFulfilled
	})

	// TopN keys on single strings; flatten tags first.
	type tagged struct{ tag string }
	var tags []tagged
	for _, d := range all {
		for _, t := range d.Tags {
			tags = append(tags, tagged{tag: strings.ToLower(t)})
		}
	}

	return DreamSummary{
		Total:           len(all),
		ByKind:          stats.Distribution(all, func(d models.Dream) string { return d.Kind }),
		ByOutcome:       stats.Distribution(all, func(d models.Dream) string { return d.Outcome }),
		FulfillmentRate: stats.Percentage(float64(fulfilled), float64(resolved)),
		TopTags:         stats.TopN(tags, func(t tagged) string { return t.tag }, 5),
	}
}
