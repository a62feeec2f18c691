package models

import "time"

// Dream kinds.
const (
	DreamKindDream      = "dream"
	DreamKindPrediction = "prediction"
)

// Dream outcomes. Pending is the initial state; fulfilled and failed are
// terminal.
const (
	OutcomePending   = "pending"
	OutcomeFulfilled = "fulfilled"
	OutcomeFailed    = "failed"
)

// IsValidDreamKind reports whether kind is a known dream kind.
func IsValidDreamKind(kind string) bool {
	return kind == DreamKindDream || kind == DreamKindPrediction
}

// IsTerminalOutcome reports whether outcome is a terminal resolution.
func IsTerminalOutcome(outcome string) bool {
	return outcome == OutcomeFulfilled || outcome == OutcomeFailed
}

// Dream is one recorded dream or prediction. Predictions start pending and
// are resolved exactly once, which stamps ResolvedAt.
type Dream struct {
	Meta
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	Kind        string     `json:"kind"`
	Outcome     string     `json:"outcome"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
	Lucid       bool       `json:"lucid,omitempty"`
	Tags        []string   `json:"tags,omitempty"`
}

func (d Dream) WithIdentity(id string, now time.Time) Dream {
	d.Meta = d.Meta.identified(id, now)
	return d
}

func (d Dream) WithTimestamps(created, modified time.Time) Dream {
	d.Meta = d.Meta.stamped(created, modified)
	return d
}

// Resolved reports whether the dream has reached a terminal outcome.
func (d Dream) Resolved() bool {
	return IsTerminalOutcome(d.Outcome)
}
