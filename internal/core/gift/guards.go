// Package gift contains the pure business rules for the gift-idea tracker.
// Guards are pure functions that evaluate preconditions without side effects.
package gift

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

// SaveGiftContext provides context for add/update guards.
type SaveGiftContext struct {
	Title          string
	Price          *float64
	Status         string // empty means the default will be applied
	CustomCategory string // custom category id, empty if builtin
	CategoryExists bool   // only checked if CustomCategory != ""
}

// CanSaveGift evaluates whether a gift can be added or updated.
// Rules:
// - Title must not be blank
// - Price, if set, must not be negative
// - Status, if set, must be a known status
// - Custom category, if referenced, must exist
func CanSaveGift(ctx SaveGiftContext) GuardResult {
	if strings.TrimSpace(ctx.Title) == "" {
		return GuardResult{Allowed: false, Reason: "gift title is required"}
	}

	if ctx.Price != nil && *ctx.Price < 0 {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("price must not be negative (got %.2f)", *ctx.Price),
		}
	}

	if ctx.Status != "" && !models.IsValidGiftStatus(ctx.Status) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid gift status: %s (valid: %s)", ctx.Status, strings.Join(models.GiftStatuses, ", ")),
		}
	}

	if ctx.CustomCategory != "" && !ctx.CategoryExists {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("category %s not found", ctx.CustomCategory),
		}
	}

	return GuardResult{Allowed: true}
}

// MarkGiftContext provides context for status transition guards.
type MarkGiftContext struct {
	GiftID string
	Status string
}

// CanMarkGift evaluates whether a gift can be moved to the given status.
func CanMarkGift(ctx MarkGiftContext) GuardResult {
	if !models.IsValidGiftStatus(ctx.Status) {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("invalid gift status: %s (valid: %s)", ctx.Status, strings.Join(models.GiftStatuses, ", ")),
		}
	}
	return GuardResult{Allowed: true}
}

// SaveCategoryContext provides context for custom category guards.
type SaveCategoryContext struct {
	Name          string
	DuplicateName bool
}

// CanSaveCategory evaluates whether a custom category can be created.
// Rules:
// - Name must not be blank
// - Name must not collide with an existing category
func CanSaveCategory(ctx SaveCategoryContext) GuardResult {
	if strings.TrimSpace(ctx.Name) == "" {
		return GuardResult{Allowed: false, Reason: "category name is required"}
	}
	if ctx.DuplicateName {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("category %q already exists", ctx.Name),
		}
	}
	return GuardResult{Allowed: true}
}
