// Package series contains the pure business rules for the watchlist.
// Guards are pure functions that evaluate preconditions without side effects.
package series

import (
	"fmt"
	"strings"

	"github.com/example/trove/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// SaveSeriesContext provides context for add/update guards.
type SaveSeriesContext struct {
	Title   string
	Status  string // empty means the default will be applied
	Season  int
	Episode int
	Rating  *float64
}

// CanSaveSeries evaluates whether a series can be added or updated.
// Rules:
// - Title must not be blank
// - Status, if set, must be a known status
// - Season and episode must not be negative
// - Rating, if set, must lie within [0, 10]
func CanSaveSeries(ctx SaveSeriesContext) GuardResult {
	if strings.TrimSpace(ctx.Title) == "" {
		return GuardResult{Allowed: false, Reason: "series title is required"}
	}

	if ctx.Status != "" && !models.IsValidSeriesStatus(ctx.Status) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid series status: %s (valid: %s)", ctx.Status, strings.Join(models.SeriesStatuses, ", ")),
		}
	}

	if ctx.Season < 0 || ctx.Episode < 0 {
		return GuardResult{Allowed: false, Reason: "season and episode must not be negative"}
	}

	if ctx.Rating != nil && (*ctx.Rating < models.RatingMin || *ctx.Rating > models.RatingMax) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("rating must be between %.0f and %.0f (got %.1f)", models.RatingMin, models.RatingMax, *ctx.Rating),
		}
	}

	return GuardResult{Allowed: true}
}

// AdvanceContext provides context for episode-advance guards.
type AdvanceContext struct {
	SeriesID string
	Status   string
}

// CanAdvance evaluates whether watching progress can be advanced.
// Rules:
// - Only planned or watching series can advance (advancing a planned
//   series is allowed and moves it to watching)
func CanAdvance(ctx AdvanceContext) GuardResult {
	if ctx.Status == models.SeriesStatusCompleted || ctx.Status == models.SeriesStatusDropped {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot advance %s series %s", ctx.Status, ctx.SeriesID),
		}
	}
	return GuardResult{Allowed: true}
}
