// Package dream contains the pure business rules for the dream journal.
// Guards are pure functions that evaluate preconditions without side effects.
package dream

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

// SaveDreamContext provides context for add/update guards.
type SaveDreamContext struct {
	Title string
	Kind  string // empty means the default will be applied
}

// CanSaveDream evaluates whether a dream can be added or updated.
// Rules:
// - Title must not be blank
// - Kind, if set, must be dream or prediction
func CanSaveDream(ctx SaveDreamContext) GuardResult {
	if strings.TrimSpace(ctx.Title) == "" {
		return GuardResult{Allowed: false, Reason: "dream title is required"}
	}

	if ctx.Kind != "" && !models.IsValidDreamKind(ctx.Kind) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid dream kind: %s (valid: %s, %s)", ctx.Kind, models.DreamKindDream, models.DreamKindPrediction),
		}
	}

	return GuardResult{Allowed: true}
}

// ResolveDreamContext provides context for resolution guards.
type ResolveDreamContext struct {
	DreamID        string
	CurrentOutcome string
	NewOutcome     string
}

// CanResolveDream evaluates whether a dream can be resolved.
// Rules:
// - The new outcome must be terminal (fulfilled or failed)
// - A dream is resolved exactly once
func CanResolveDream(ctx ResolveDreamContext) GuardResult {
	if !models.IsTerminalOutcome(ctx.NewOutcome) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid outcome: %s (valid: %s, %s)", ctx.NewOutcome, models.OutcomeFulfilled, models.OutcomeFailed),
		}
	}

	if models.IsTerminalOutcome(ctx.CurrentOutcome) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("dream %s is already resolved as %s", ctx.DreamID, ctx.CurrentOutcome),
		}
	}

	return GuardResult{Allowed: true}
}
