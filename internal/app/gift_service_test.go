package app

import (
	"context"
	"testing"
	"time"

	"github.com/example/trove/internal/models"
)

func newGiftService(t *testing.T) *GiftService {
	t.Helper()
	gifts, _ := newStore[models.GiftIdea](t, "gift")
	categories, _ := newStore[models.CustomCategory](t, "cat")
	svc := NewGiftService(gifts, categories)
	svc.clock = func() time.Time { return appClock }
	return svc
}

func TestAddGiftAppliesDefaults(t *testing.T) {
	svc := newGiftService(t)

	g, err := svc.AddGift(context.Background(), models.GiftIdea{Title: "Socks", Recipient: "mom"})
	if err != nil {
		t.Fatalf("AddGift error: %v", err)
	}
	if g.Status != models.GiftStatusIdea {
		t.Errorf("Status = %q, want %q", g.Status, models.GiftStatusIdea)
	}
	if g.Category != models.DefaultCategory {
		t.Errorf("Category = %+v, want default", g.Category)
	}
	if g.ID == "" {
		t.Error("ID not assigned")
	}
}

func TestAddGiftRejectsInvalid(t *testing.T) {
	svc := newGiftService(t)
	ctx := context.Background()

	if _, err := svc.AddGift(ctx, models.GiftIdea{Title: ""}); err == nil {
		t.Error("expected error for missing title")
	}
	if _, err := svc.AddGift(ctx, models.GiftIdea{Title: "x", Price: fprice(-1)}); err == nil {
		t.Error("expected error for negative price")
	}
	gift := models.GiftIdea{Title: "x", Category: models.CustomCat("missing")}
	if _, err := svc.AddGift(ctx, gift); err == nil {
		t.Error("expected error for dangling custom category")
	}
}

func TestMarkGift(t *testing.T) {
	svc := newGiftService(t)
	ctx := context.Background()

	g, err := svc.AddGift(ctx, models.GiftIdea{Title: "Lego set"})
	if err != nil {
		t.Fatalf("AddGift error: %v", err)
	}

	marked, err := svc.MarkGift(ctx, g.ID, models.GiftStatusBought)
	if err != nil {
		t.Fatalf("MarkGift error: %v", err)
	}
	if marked.Status != models.GiftStatusBought {
		t.Errorf("Status = %q, want bought", marked.Status)
	}

	if _, err := svc.MarkGift(ctx, g.ID, "lost"); err == nil {
		t.Error("expected error for unknown status")
	}
	if _, err := svc.MarkGift(ctx, "missing", models.GiftStatusBought); err == nil {
		t.Error("expected error for unknown gift")
	}
}

func TestListGiftsFiltersAndSorts(t *testing.T) {
	svc := newGiftService(t)
	ctx := context.Background()

	seed := []models.GiftIdea{
		{Title: "Socks", Recipient: "mom", Price: fprice(8), Status: models.GiftStatusBought},
		{Title: "Lego set", Recipient: "timmy", Price: fprice(50)},
		{Title: "Book", Recipient: "mom", Price: fprice(20)},
		{Title: "Mystery box", Recipient: "mom"},
	}
	for _, g := range seed {
		if _, err := svc.AddGift(ctx, g); err != nil {
			t.Fatalf("AddGift(%s) error: %v", g.Title, err)
		}
	}

	forMom := svc.ListGifts(GiftFilters{Recipient: "mom"})
	if len(forMom) != 3 {
		t.Fatalf("recipient filter: got %d gifts, want 3", len(forMom))
	}

	ideas := svc.ListGifts(GiftFilters{Status: models.GiftStatusIdea})
	if len(ideas) != 3 {
		t.Errorf("status filter: got %d gifts, want 3", len(ideas))
	}

	byPrice := svc.ListGifts(GiftFilters{SortBy: "price"})
	wantOrder := []string{"Lego set", "Book", "Socks", "Mystery box"}
	for i, g := range byPrice {
		if g.Title != wantOrder[i] {
			t.Errorf("price sort[%d] = %q, want %q", i, g.Title, wantOrder[i])
		}
	}

	cheap := svc.ListGifts(GiftFilters{MaxPrice: fprice(25)})
	// Bounds exclude gifts without a price.
	if len(cheap) != 2 {
		t.Errorf("price range: got %d gifts, want 2", len(cheap))
	}

	matched := svc.ListGifts(GiftFilters{Text: "lego"})
	if len(matched) != 1 || matched[0].Title != "Lego set" {
		t.Errorf("text filter: got %+v", matched)
	}
}

func TestGiftsByRecipient(t *testing.T) {
	svc := newGiftService(t)
	ctx := context.Background()

	for _, g := range []models.GiftIdea{
		{Title: "Socks", Recipient: "mom"},
		{Title: "Surprise"},
		{Title: "Book", Recipient: "mom"},
	} {
		if _, err := svc.AddGift(ctx, g); err != nil {
			t.Fatalf("AddGift error: %v", err)
		}
	}

	groups := svc.GiftsByRecipient(GiftFilters{})
	if len(groups) != 2 {
		t.Fatalf("got %d groups, want 2", len(groups))
	}
	if groups[0].Key != "mom" || len(groups[0].Records) != 2 {
		t.Errorf("group[0] = %q with %d records", groups[0].Key, len(groups[0].Records))
	}
	if !groups[1].Ungrouped {
		t.Error("gifts without recipient should land in the ungrouped bucket")
	}
}

func TestCategoryLifecycle(t *testing.T) {
	svc := newGiftService(t)
	ctx := context.Background()

	cat, err := svc.AddCategory(ctx, "Graduation", "cap", "blue")
	if err != nil {
		t.Fatalf("AddCategory error: %v", err)
	}
	if _, err := svc.AddCategory(ctx, "Graduation", "", ""); err == nil {
		t.Error("expected error for duplicate category name")
	}

	g, err := svc.AddGift(ctx, models.GiftIdea{Title: "Pen", Category: models.CustomCat(cat.ID)})
	if err != nil {
		t.Fatalf("AddGift error: %v", err)
	}

	info := svc.ResolveCategory(g.Category)
	if info.Name != "Graduation" || info.Icon != "cap" {
		t.Errorf("ResolveCategory = %+v", info)
	}

	// Deleting the category reassigns referencing gifts to the default.
	if err := svc.DeleteCategory(ctx, cat.ID); err != nil {
		t.Fatalf("DeleteCategory error: %v", err)
	}
	g, err = svc.GetGift(g.ID)
	if err != nil {
		t.Fatalf("GetGift error: %v", err)
	}
	if g.Category != models.DefaultCategory {
		t.Errorf("Category after delete = %+v, want default", g.Category)
	}
	if got := len(svc.ListCategories()); got != 0 {
		t.Errorf("ListCategories after delete = %d, want 0", got)
	}
}

func TestResolveCategoryDanglingFallsBack(t *testing.T) {
	svc := newGiftService(t)

	info := svc.ResolveCategory(models.CustomCat("long-gone"))
	if info.Name != string(models.CategoryGeneral) {
		t.Errorf("dangling reference resolved to %+v, want default", info)
	}
}

func TestGiftSummary(t *testing.T) {
	svc := newGiftService(t)
	ctx := context.Background()

	for _, g := range []models.GiftIdea{
		{Title: "Socks", Recipient: "mom", Price: fprice(8), Status: models.GiftStatusGifted},
		{Title: "Book", Recipient: "mom", Price: fprice(20), Status: models.GiftStatusBought},
		{Title: "Lego set", Recipient: "timmy", Price: fprice(50)},
		{Title: "Mystery box", Recipient: "timmy"},
	} {
		if _, err := svc.AddGift(ctx, g); err != nil {
			t.Fatalf("AddGift error: %v", err)
		}
	}

	sum := svc.Summary()
	if sum.Total != 4 {
		t.Errorf("Total = %d, want 4", sum.Total)
	}
	if sum.Spent != 28 {
		t.Errorf("Spent = %v, want 28", sum.Spent)
	}
	if sum.PlannedSpend != 50 {
		t.Errorf("PlannedSpend = %v, want 50", sum.PlannedSpend)
	}
	if len(sum.TopRecipients) != 2 || sum.TopRecipients[0].Key != "mom" {
		t.Errorf("TopRecipients = %+v", sum.TopRecipients)
	}
}
