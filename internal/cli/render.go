package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/example/trove/internal/wire"
)

// flushWarnings prints any background persistence failures to stderr.
// Saves are best-effort; the command's in-memory result already succeeded.
func flushWarnings() {
	for _, err := range wire.Warnings() {
		color.New(color.FgYellow).Fprintf(os.Stderr, "warning: %v\n", err)
	}
}

// shortID trims a uuid down to its leading segment for table display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 && i < len(id)-1 {
		return id[:i]
	}
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func fmtPrice(p *float64) string {
	if p == nil {
		return "-"
	}
	return fmt.Sprintf("%.2f", *p)
}

func fmtRating(r *float64) string {
	if r == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *r)
}

func fmtDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

func fmtTags(tags []string) string {
	if len(tags) == 0 {
		return "-"
	}
	return strings.Join(tags, ",")
}

// splitTags parses a comma-separated tag flag, dropping blanks.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func coloredStatus(status string) string {
	switch status {
	case "idea", "planned", "pending":
		return color.New(color.FgHiBlack).Sprint(status)
	case "bought", "watching":
		return color.New(color.FgHiCyan).Sprint(status)
	case "wrapped":
		return color.New(color.FgHiYellow).Sprint(status)
	case "gifted", "completed", "fulfilled":
		return color.New(color.FgHiGreen).Sprint(status)
	case "dropped", "failed":
		return color.New(color.FgRed).Sprint(status)
	default:
		return status
	}
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// resolveID expands a shortened id to the full stored id when the prefix
// is unambiguous. Exact and ambiguous inputs pass through unchanged.
func resolveID(input string, ids []string) string {
	match := ""
	for _, id := range ids {
		if id == input {
			return id
		}
		if strings.HasPrefix(id, input) {
			if match != "" {
				return input
			}
			match = id
		}
	}
	if match != "" {
		return match
	}
	return input
}

// optionalFloat returns the flag's value only when the user set it.
func optionalFloat(changed bool, v float64) *float64 {
	if !changed {
		return nil
	}
	return &v
}
