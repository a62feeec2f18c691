package app

import (
	"context"
	"testing"

	"github.com/example/trove/internal/models"
)

func newSeriesService(t *testing.T) *SeriesService {
	t.Helper()
	list, _ := newStore[models.Series](t, "series")
	return NewSeriesService(list)
}

func TestAddSeriesDefaultsToPlanned(t *testing.T) {
	svc := newSeriesService(t)

	sr, err := svc.AddSeries(context.Background(), models.Series{Title: "Severance"})
	if err != nil {
		t.Fatalf("AddSeries error: %v", err)
	}
	if sr.Status != models.SeriesStatusPlanned {
		t.Errorf("Status = %q, want planned", sr.Status)
	}
}

func TestAddSeriesRejectsInvalid(t *testing.T) {
	svc := newSeriesService(t)
	ctx := context.Background()

	if _, err := svc.AddSeries(ctx, models.Series{Title: ""}); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := svc.AddSeries(ctx, models.Series{Title: "x", Status: "paused"}); err == nil {
		t.Error("expected error for unknown status")
	}
}

func TestAdvance(t *testing.T) {
	svc := newSeriesService(t)
	ctx := context.Background()

	sr, err := svc.AddSeries(ctx, models.Series{Title: "Dark"})
	if err != nil {
		t.Fatalf("AddSeries error: %v", err)
	}

	// First advance starts season 1 episode 1 and moves planned to watching.
	sr, err = svc.Advance(ctx, sr.ID, false)
	if err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if sr.Status != models.SeriesStatusWatching {
		t.Errorf("Status = %q, want watching", sr.Status)
	}
	if sr.Season != 1 || sr.Episode != 1 {
		t.Errorf("progress = S%dE%d, want S1E1", sr.Season, sr.Episode)
	}

	sr, err = svc.Advance(ctx, sr.ID, false)
	if err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if sr.Season != 1 || sr.Episode != 2 {
		t.Errorf("progress = S%dE%d, want S1E2", sr.Season, sr.Episode)
	}

	// Next season resets the episode counter.
	sr, err = svc.Advance(ctx, sr.ID, true)
	if err != nil {
		t.Fatalf("Advance error: %v", err)
	}
	if sr.Season != 2 || sr.Episode != 1 {
		t.Errorf("progress = S%dE%d, want S2E1", sr.Season, sr.Episode)
	}
}

func TestAdvanceRejectsFinishedSeries(t *testing.T) {
	svc := newSeriesService(t)
	ctx := context.Background()

	sr, err := svc.AddSeries(ctx, models.Series{Title: "Dark", Status: models.SeriesStatusCompleted})
	if err != nil {
		t.Fatalf("AddSeries error: %v", err)
	}
	if _, err := svc.Advance(ctx, sr.ID, false); err == nil {
		t.Error("expected error advancing a completed series")
	}
}

func TestRateAndMarkStatus(t *testing.T) {
	svc := newSeriesService(t)
	ctx := context.Background()

	sr, err := svc.AddSeries(ctx, models.Series{Title: "Dark"})
	if err != nil {
		t.Fatalf("AddSeries error: %v", err)
	}

	sr, err = svc.Rate(ctx, sr.ID, 8.5)
	if err != nil {
		t.Fatalf("Rate error: %v", err)
	}
	if v, ok := sr.RatingValue(); !ok || v != 8.5 {
		t.Errorf("Rating = %v (%v), want 8.5", v, ok)
	}
	if _, err := svc.Rate(ctx, sr.ID, 11); err == nil {
		t.Error("expected error for rating above scale")
	}

	sr, err = svc.MarkStatus(ctx, sr.ID, models.SeriesStatusCompleted)
	if err != nil {
		t.Fatalf("MarkStatus error: %v", err)
	}
	if sr.Status != models.SeriesStatusCompleted {
		t.Errorf("Status = %q, want completed", sr.Status)
	}
}

func TestListSeriesFilters(t *testing.T) {
	svc := newSeriesService(t)
	ctx := context.Background()

	for _, sr := range []models.Series{
		{Title: "Severance", Status: models.SeriesStatusWatching, Genre: "thriller"},
		{Title: "Dark", Status: models.SeriesStatusCompleted, Genre: "thriller", Rating: fprice(9)},
		{Title: "Bluey", Status: models.SeriesStatusWatching, Genre: "family"},
	} {
		if _, err := svc.AddSeries(ctx, sr); err != nil {
			t.Fatalf("AddSeries error: %v", err)
		}
	}

	watching := svc.ListSeries(SeriesFilters{Status: models.SeriesStatusWatching})
	if len(watching) != 2 {
		t.Errorf("status filter: got %d, want 2", len(watching))
	}
	thrillers := svc.ListSeries(SeriesFilters{Genre: "thriller"})
	if len(thrillers) != 2 {
		t.Errorf("genre filter: got %d, want 2", len(thrillers))
	}
	rated := svc.ListSeries(SeriesFilters{MinRating: fprice(8)})
	if len(rated) != 1 || rated[0].Title != "Dark" {
		t.Errorf("rating filter: got %+v", rated)
	}
}

func TestSeriesSummary(t *testing.T) {
	svc := newSeriesService(t)
	ctx := context.Background()

	for _, sr := range []models.Series{
		{Title: "Severance", Status: models.SeriesStatusWatching, Genre: "thriller", Rating: fprice(8)},
		{Title: "Dark", Status: models.SeriesStatusCompleted, Genre: "thriller", Rating: fprice(10)},
		{Title: "Bluey", Status: models.SeriesStatusWatching, Genre: "family"},
	} {
		if _, err := svc.AddSeries(ctx, sr); err != nil {
			t.Fatalf("AddSeries error: %v", err)
		}
	}

	sum := svc.Summary()
	if sum.Total != 3 {
		t.Errorf("Total = %d, want 3", sum.Total)
	}
	// Unrated series do not drag the average down.
	if sum.AverageRating != 9 {
		t.Errorf("AverageRating = %v, want 9", sum.AverageRating)
	}
	if len(sum.TopGenres) != 2 || sum.TopGenres[0].Key != "thriller" {
		t.Errorf("TopGenres = %+v", sum.TopGenres)
	}
}
