package expenses

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCreateValidation(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	tests := []struct {
		name string
		req  CreateExpenseRequest
		want error
	}{
		{"no title", CreateExpenseRequest{Amount: 10, Category: "other"}, ErrTitleRequired},
		{"zero amount", CreateExpenseRequest{Title: "Gloves", Category: "supplies"}, ErrInvalidAmount},
		{"bad category", CreateExpenseRequest{Title: "Gloves", Amount: 10, Category: "misc"}, ErrInvalidCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := repo.Create(ctx, &tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("Create = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestCreateAndGet(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	created, err := repo.Create(ctx, &CreateExpenseRequest{
		Title: " Latex Gloves ", Amount: 42.50, Category: "Supplies", Date: "2026-01-15",
	})
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if created.ID == "" || created.Title != "Latex Gloves" || created.Category != "supplies" {
		t.Fatalf("created = %+v", created)
	}

	got, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	if got.Title != "Latex Gloves" {
		t.Fatalf("got = %+v", got)
	}

	if _, err := repo.GetByID(ctx, "missing"); !errors.Is(err, ErrExpenseNotFound) {
		t.Fatalf("missing id = %v", err)
	}
}

func TestListOrdersByDateDescending(t *testing.T) {
	repo := NewInMemoryRepository()
	ctx := context.Background()

	for _, d := range []string{"2026-01-10", "2026-02-01", "2026-01-20"} {
		if _, err := repo.Create(ctx, &CreateExpenseRequest{Title: d, Amount: 1, Category: "other", Date: d}); err != nil {
			t.Fatal(err)
		}
	}

	items, err := repo.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(items) != 3 || items[0].Date != "2026-02-01" || items[2].Date != "2026-01-10" {
		t.Fatalf("order: %+v", items)
	}
}

func TestFilterConjunction(t *testing.T) {
	items := []Expense{
		{ID: "1", Title: "Latex Gloves", Category: "supplies"},
		{ID: "2", Title: "Chair Repair", Category: "equipment"},
		{ID: "3", Title: "Glove Dispenser", Category: "equipment"},
	}

	got := Filter{Search: "glove", Category: "equipment"}.Apply(items)
	if len(got) != 1 || got[0].ID != "3" {
		t.Fatalf("search AND category: %+v", got)
	}

	if got := (Filter{Search: "GLOVE"}).Apply(items); len(got) != 2 {
		t.Fatalf("case-insensitive search: %+v", got)
	}
	if got := (Filter{}).Apply(items); len(got) != 3 {
		t.Fatalf("empty filter: %+v", got)
	}
}

func TestBuildStats(t *testing.T) {
	now := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	items := []Expense{
		{Amount: 100, Date: "2026-02-01"},
		{Amount: 50, Date: "2026-02-09"},
		{Amount: 200, Date: "2026-01-15"},
	}

	stats := BuildStats(items, now)
	if stats.Total != 350 || stats.MonthToDate != 150 || stats.Count != 3 {
		t.Fatalf("stats = %+v", stats)
	}
}
