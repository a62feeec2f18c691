// Package app contains the application services for the trove trackers.
// Each service owns one tracker: it consults the pure guards, funnels all
// mutation through the shared record store, and builds the derived views
// and summaries the CLI renders.
package app

import (
	"context"
	"time"

	"github.com/example/trove/internal/core/gift"
	"github.com/example/trove/internal/models"
	"github.com/example/trove/internal/query"
	"github.com/example/trove/internal/stats"
	"github.com/example/trove/internal/store"
)

// GiftService manages gift ideas and their custom categories.
type GiftService struct {
	gifts      *store.Store[models.GiftIdea]
	categories *store.Store[models.CustomCategory]
	clock      func() time.Time
}

// NewGiftService creates a GiftService with injected stores.
func NewGiftService(gifts *store.Store[models.GiftIdea], categories *store.Store[models.CustomCategory]) *GiftService {
	return &GiftService{
		gifts:      gifts,
		categories: categories,
		clock:      time.Now,
	}
}

// AddGift validates and stores a new gift idea. An empty status defaults
// to idea; an empty category defaults to the builtin default.
func (s *GiftService) AddGift(ctx context.Context, g models.GiftIdea) (models.GiftIdea, error) {
	if err := s.guardSave(g); err != nil {
		return models.GiftIdea{}, err
	}
	if g.Status == "" {
		g.Status = models.GiftStatusIdea
	}
	if g.Category == (models.Category{}) {
		g.Category = models.DefaultCategory
	}
	return s.gifts.Add(ctx, g)
}

// UpdateGift validates and replaces an existing gift idea.
func (s *GiftService) UpdateGift(ctx context.Context, g models.GiftIdea) (models.GiftIdea, error) {
	if err := s.guardSave(g); err != nil {
		return models.GiftIdea{}, err
	}
	return s.gifts.Update(ctx, g)
}

// DeleteGift removes a gift idea. Deleting an unknown id is a no-op.
func (s *GiftService) DeleteGift(ctx context.Context, id string) error {
	return s.gifts.Delete(ctx, id)
}

// GetGift retrieves a gift idea by id.
func (s *GiftService) GetGift(id string) (models.GiftIdea, error) {
	return s.gifts.Get(id)
}

// MarkGift moves a gift to the given lifecycle status.
func (s *GiftService) MarkGift(ctx context.Context, id, status string) (models.GiftIdea, error) {
	g, err := s.gifts.Get(id)
	if err != nil {
		return models.GiftIdea{}, err
	}
	if err := gift.CanMarkGift(gift.MarkGiftContext{GiftID: id, Status: status}).Error(); err != nil {
		return models.GiftIdea{}, err
	}
	g.Status = status
	return s.gifts.Update(ctx, g)
}

func (s *GiftService) guardSave(g models.GiftIdea) error {
	guardCtx := gift.SaveGiftContext{
		Title:  g.Title,
		Price:  g.Price,
		Status: g.Status,
	}
	if g.Category.IsCustom() {
		guardCtx.CustomCategory = g.Category.CustomID
		_, err := s.categories.Get(g.Category.CustomID)
		guardCtx.CategoryExists = err == nil
	}
	return gift.CanSaveGift(guardCtx).Error()
}

// GiftFilters contains filter options for listing gift ideas. Zero-valued
// fields are ignored.
type GiftFilters struct {
	Status     string
	Recipient  string
	Occasion   string
	Category   *models.Category
	Text       string
	WithinDays int
	MinPrice   *float64
	MaxPrice   *float64
	SortBy     string // "recent" (default), "price", "title"
	Limit      int
}

// ListGifts returns a derived view of the gift collection, most recent
// first unless another sort is requested.
func (s *GiftService) ListGifts(f GiftFilters) []models.GiftIdea {
	q := query.Query[models.GiftIdea]{
		SortBy: giftSort(f.SortBy),
		Limit:  f.Limit,
	}
	q = q.Where(query.Equals(f.Status, func(g models.GiftIdea) string { return g.Status }))
	q = q.Where(query.Equals(f.Recipient, func(g models.GiftIdea) string { return g.Recipient }))
	q = q.Where(query.Equals(f.Occasion, func(g models.GiftIdea) string { return g.Occasion }))
	q = q.Where(query.TextMatch(f.Text, func(g models.GiftIdea) []string {
		return []string{g.Title, g.Recipient, g.Notes}
	}))
	q = q.Where(query.WithinDays(f.WithinDays, s.clock(), func(g models.GiftIdea) time.Time { return g.CreatedAt }))
	q = q.Where(query.NumberRange(f.MinPrice, f.MaxPrice, models.GiftIdea.PriceValue))
	if f.Category != nil {
		want := *f.Category
		q = q.Where(func(g models.GiftIdea) bool { return g.Category == want })
	}
	return query.Evaluate(s.gifts.All(), q)
}

// GiftsByRecipient groups the filtered gifts by recipient, preserving the
// view's sort inside each group. Gifts without a recipient land in the
// ungrouped bucket.
func (s *GiftService) GiftsByRecipient(f GiftFilters) []query.Group[models.GiftIdea] {
	q := query.Query[models.GiftIdea]{SortBy: giftSort(f.SortBy)}
	q = q.Where(query.Equals(f.Status, func(g models.GiftIdea) string { return g.Status }))
	return query.GroupBy(s.gifts.All(), q, func(g models.GiftIdea) (string, bool) {
		return g.Recipient, g.Recipient != ""
	})
}

func giftSort(name string) query.Less[models.GiftIdea] {
	switch name {
	case "price":
		return func(a, b models.GiftIdea) bool {
			av, aok := a.PriceValue()
			bv, bok := b.PriceValue()
			if aok != bok {
				return aok // priced gifts before unpriced
			}
			return av > bv
		}
	case "title":
		return func(a, b models.GiftIdea) bool { return a.Title < b.Title }
	default:
		return query.MostRecentFirst(func(g models.GiftIdea) time.Time { return g.CreatedAt })
	}
}

// AddCategory validates and stores a new custom category.
func (s *GiftService) AddCategory(ctx context.Context, name, icon, color string) (models.CustomCategory, error) {
	dup := false
	for _, c := range s.categories.All() {
		if c.Name == name {
			dup = true
			break
		}
	}
	guard := gift.CanSaveCategory(gift.SaveCategoryContext{Name: name, DuplicateName: dup})
	if err := guard.Error(); err != nil {
		return models.CustomCategory{}, err
	}
	return s.categories.Add(ctx, models.CustomCategory{Name: name, Icon: icon, Color: color})
}

// ListCategories returns the custom categories in insertion order.
func (s *GiftService) ListCategories() []models.CustomCategory {
	return s.categories.All()
}

// DeleteCategory removes a custom category. Gifts referencing it are
// reassigned to the default builtin category first, so no gift is ever
// left dangling.
func (s *GiftService) DeleteCategory(ctx context.Context, id string) error {
	for _, g := range s.gifts.All() {
		if g.Category.CustomID != id {
			continue
		}
		g.Category = models.DefaultCategory
		if _, err := s.gifts.Update(ctx, g); err != nil {
			return err
		}
	}
	return s.categories.Delete(ctx, id)
}

// ResolveCategory resolves a gift's category to displayable info, falling
// back to the default category for dangling custom references.
func (s *GiftService) ResolveCategory(c models.Category) models.CategoryInfo {
	return models.ResolveCategory(c, s.categories.All())
}

// GiftSummary is the dashboard aggregate for the gift tracker.
type GiftSummary struct {
	Total         int
	Spent         float64 // prices of gifts past the idea stage
	PlannedSpend  float64 // prices still at the idea stage
	ByStatus      []stats.GroupCount
	TopRecipients []stats.GroupCount
}

// Summary folds the gift collection into dashboard numbers.
func (s *GiftService) Summary() GiftSummary {
	gifts := s.gifts.All()
	return GiftSummary{
		Total: len(gifts),
		Spent: stats.Sum(gifts, func(g models.GiftIdea) (float64, bool) {
			if g.Status == models.GiftStatusIdea {
				return 0, false
			}
			return g.PriceValue()
		}),
		PlannedSpend: stats.Sum(gifts, func(g models.GiftIdea) (float64, bool) {
			if g.Status != models.GiftStatusIdea {
				return 0, false
			}
			return g.PriceValue()
		}),
		ByStatus:      stats.Distribution(gifts, func(g models.GiftIdea) string { return g.Status }),
		TopRecipients: stats.TopN(gifts, func(g models.GiftIdea) string { return g.Recipient }, 5),
	}
}
