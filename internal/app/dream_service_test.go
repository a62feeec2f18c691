package app

import (
	"context"
	"testing"
	"time"

	"github.com/example/trove/internal/models"
)

func newDreamService(t *testing.T) *DreamService {
	t.Helper()
	dreams, _ := newStore[models.Dream](t, "dream")
	svc := NewDreamService(dreams)
	svc.clock = func() time.Time { return appClock }
	return svc
}

func TestAddDreamAppliesDefaults(t *testing.T) {
	svc := newDreamService(t)

	d, err := svc.AddDream(context.Background(), models.Dream{Title: "Flying"})
	if err != nil {
		t.Fatalf("AddDream error: %v", err)
	}
	if d.Kind != models.DreamKindDream {
		t.Errorf("Kind = %q, want dream", d.Kind)
	}
	if d.Outcome != models.OutcomePending {
		t.Errorf("Outcome = %q, want pending", d.Outcome)
	}
}

func TestAddDreamRejectsInvalid(t *testing.T) {
	svc := newDreamService(t)
	ctx := context.Background()

	if _, err := svc.AddDream(ctx, models.Dream{Title: ""}); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := svc.AddDream(ctx, models.Dream{Title: "x", Kind: "vision"}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestResolve(t *testing.T) {
	svc := newDreamService(t)
	ctx := context.Background()

	d, err := svc.AddDream(ctx, models.Dream{Title: "Rain on Friday", Kind: models.DreamKindPrediction})
	if err != nil {
		t.Fatalf("AddDream error: %v", err)
	}

	resolved, err := svc.Resolve(ctx, d.ID, models.OutcomeFulfilled)
	if err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if resolved.Outcome != models.OutcomeFulfilled {
		t.Errorf("Outcome = %q, want fulfilled", resolved.Outcome)
	}
	if resolved.ResolvedAt == nil || !resolved.ResolvedAt.Equal(appClock) {
		t.Errorf("ResolvedAt = %v, want %v", resolved.ResolvedAt, appClock)
	}

	// A dream is resolved exactly once.
	if _, err := svc.Resolve(ctx, d.ID, models.OutcomeFailed); err == nil {
		t.Error("expected error resolving twice")
	}
	if _, err := svc.Resolve(ctx, "missing", models.OutcomeFailed); err == nil {
		t.Error("expected error for unknown dream")
	}
}

func TestResolveRejectsNonTerminalOutcome(t *testing.T) {
	svc := newDreamService(t)
	ctx := context.Background()

	d, err := svc.AddDream(ctx, models.Dream{Title: "Rain"})
	if err != nil {
		t.Fatalf("AddDream error: %v", err)
	}
	if _, err := svc.Resolve(ctx, d.ID, models.OutcomePending); err == nil {
		t.Error("expected error for non-terminal outcome")
	}
}

func TestListDreamsFilters(t *testing.T) {
	svc := newDreamService(t)
	ctx := context.Background()

	seeds := []models.Dream{
		{Title: "Flying", Lucid: true, Tags: []string{"sky"}},
		{Title: "Rain on Friday", Kind: models.DreamKindPrediction},
		{Title: "Falling", Tags: []string{"sky", "fear"}},
	}
	for _, d := range seeds {
		if _, err := svc.AddDream(ctx, d); err != nil {
			t.Fatalf("AddDream error: %v", err)
		}
	}

	lucid := svc.ListDreams(DreamFilters{Lucid: true})
	if len(lucid) != 1 || lucid[0].Title != "Flying" {
		t.Errorf("lucid filter: got %+v", lucid)
	}
	predictions := svc.ListDreams(DreamFilters{Kind: models.DreamKindPrediction})
	if len(predictions) != 1 || predictions[0].Title != "Rain on Friday" {
		t.Errorf("kind filter: got %+v", predictions)
	}
	sky := svc.ListDreams(DreamFilters{Tag: "SKY"})
	if len(sky) != 2 {
		t.Errorf("tag filter: got %d, want 2", len(sky))
	}
}

func TestDreamSummary(t *testing.T) {
	svc := newDreamService(t)
	ctx := context.Background()

	seeds := []models.Dream{
		{Title: "p1", Kind: models.DreamKindPrediction},
		{Title: "p2", Kind: models.DreamKindPrediction},
		{Title: "p3", Kind: models.DreamKindPrediction},
		{Title: "d1", Tags: []string{"sky"}},
		{Title: "d2", Tags: []string{"sky", "sea"}},
	}
	ids := make([]string, 0, len(seeds))
	for _, d := range seeds {
		added, err := svc.AddDream(ctx, d)
		if err != nil {
			t.Fatalf("AddDream error: %v", err)
		}
		ids = append(ids, added.ID)
	}

	if _, err := svc.Resolve(ctx, ids[0], models.OutcomeFulfilled); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}
	if _, err := svc.Resolve(ctx, ids[1], models.OutcomeFailed); err != nil {
		t.Fatalf("Resolve error: %v", err)
	}

	sum := svc.Summary()
	if sum.Total != 5 {
		t.Errorf("Total = %d, want 5", sum.Total)
	}
	// One fulfilled out of two resolved predictions; the pending one is
	// excluded.
	if sum.FulfillmentRate != 0.5 {
		t.Errorf("FulfillmentRate = %v, want 0.5", sum.FulfillmentRate)
	}
	if len(sum.TopTags) == 0 || sum.TopTags[0].Key != "sky" || sum.TopTags[0].Count != 2 {
		t.Errorf("TopTags = %+v", sum.TopTags)
	}
}

func TestDreamSummaryNoResolvedPredictions(t *testing.T) {
	svc := newDreamService(t)

	if _, err := svc.AddDream(context.Background(), models.Dream{Title: "p1", Kind: models.DreamKindPrediction}); err != nil {
		t.Fatalf("AddDream error: %v", err)
	}
	if sum := svc.Summary(); sum.FulfillmentRate != 0 {
		t.Errorf("FulfillmentRate = %v, want 0", sum.FulfillmentRate)
	}
}
