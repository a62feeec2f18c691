// Package mood contains the pure business rules for the mood journal.
// Guards are pure functions that evaluate preconditions without side effects.
package mood

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

// SaveEntryContext provides context for add/update guards.
type SaveEntryContext struct {
	Mood        int
	Weather     string // optional
	Temperature *float64
}

// CanSaveEntry evaluates whether a mood entry can be added or updated.
// Rules:
// - Mood must be on the 1-5 scale
// - Weather, if set, must be a known condition
// - Temperature, if set, must lie within [-60, 60]
func CanSaveEntry(ctx SaveEntryContext) GuardResult {
	if ctx.Mood < models.MoodMin || ctx.Mood > models.MoodMax {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("mood must be between %d and %d (got %d)", models.MoodMin, models.MoodMax, ctx.Mood),
		}
	}

	if ctx.Weather != "" && !models.IsValidWeather(ctx.Weather) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid weather condition: %s (valid: %s)", ctx.Weather, strings.Join(models.WeatherConditions, ", ")),
		}
	}

	if ctx.Temperature != nil && (*ctx.Temperature < models.TemperatureMin || *ctx.Temperature > models.TemperatureMax) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("temperature must be between %.0f and %.0f (got %.1f)", models.TemperatureMin, models.TemperatureMax, *ctx.Temperature),
		}
	}

	return GuardResult{Allowed: true}
}
