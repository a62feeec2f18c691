package models

import "time"

// Gift statuses, in lifecycle order.
const (
	GiftStatusIdea    = "idea"
	GiftStatusBought  = "bought"
	GiftStatusWrapped = "wrapped"
	GiftStatusGifted  = "gifted"
)

// GiftStatuses lists the valid statuses in lifecycle order.
var GiftStatuses = []string{GiftStatusIdea, GiftStatusBought, GiftStatusWrapped, GiftStatusGifted}

// IsValidGiftStatus reports whether status is a known gift status.
func IsValidGiftStatus(status string) bool {
	for _, s := range GiftStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// GiftIdea is one gift the user is planning or has given. Price is optional:
// an idea without a price contributes nothing to spend totals.
type GiftIdea struct {
	Meta
	Title     string   `json:"title"`
	Recipient string   `json:"recipient"`
	Occasion  string   `json:"occasion,omitempty"`
	Price     *float64 `json:"price,omitempty"`
	Status    string   `json:"status"`
	Category  Category `json:"category"`
	Notes     string   `json:"notes,omitempty"`
}

func (g GiftIdea) WithIdentity(id string, now time.Time) GiftIdea {
	g.Meta = g.Meta.identified(id, now)
	return g
}

func (g GiftIdea) WithTimestamps(created, modified time.Time) GiftIdea {
	g.Meta = g.Meta.stamped(created, modified)
	return g
}

// PriceValue returns the price and whether one is set.
func (g GiftIdea) PriceValue() (float64, bool) {
	if g.Price == nil {
		return 0, false
	}
	return *g.Price, true
}
