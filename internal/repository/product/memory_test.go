package product

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"product-catalog/internal/domain"
)

func TestMemory_AddAssignsIdentity(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	p, err := repo.Add(ctx, domain.Product{Name: "Mug", Price: decimal.NewFromInt(5), IsActive: true})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if p.ID == 0 {
		t.Fatalf("expected server-assigned id")
	}
	if !p.CreatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("expected createdAt == updatedAt at creation, got %v / %v", p.CreatedAt, p.UpdatedAt)
	}

	second, err := repo.Add(ctx, domain.Product{Name: "Plate", IsActive: true})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}
	if second.ID == p.ID {
		t.Fatalf("expected unique ids, both got %d", p.ID)
	}
}

func TestMemory_UpdatePreservesCreatedAt(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	current := base
	repo.SetClock(func() time.Time { return current })

	p, err := repo.Add(ctx, domain.Product{Name: "Mug", IsActive: true})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	current = base.Add(time.Minute)
	p.Name = "Big Mug"
	updated, err := repo.Update(ctx, *p)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !updated.CreatedAt.Equal(base) {
		t.Fatalf("expected createdAt preserved, got %v", updated.CreatedAt)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) {
		t.Fatalf("expected updatedAt to advance, got %v", updated.UpdatedAt)
	}
	if updated.Name != "Big Mug" {
		t.Fatalf("expected name updated, got %q", updated.Name)
	}
}

func TestMemory_UpdateAbsentIsNil(t *testing.T) {
	repo := NewMemory()
	updated, err := repo.Update(context.Background(), domain.Product{ID: 99, Name: "Ghost"})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated != nil {
		t.Fatalf("expected nil for absent id, got %+v", updated)
	}
}

func TestMemory_DeleteSemantics(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	removed, err := repo.Delete(ctx, 12345)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if removed {
		t.Fatalf("expected removed=false for absent id")
	}

	p, err := repo.Add(ctx, domain.Product{Name: "Mug", IsActive: true})
	if err != nil {
		t.Fatalf("Add: %v", err)
	}

	removed, err = repo.Delete(ctx, p.ID)
	if err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if !removed {
		t.Fatalf("expected removed=true")
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got != nil {
		t.Fatalf("expected absent after delete, got %+v", got)
	}
}

func TestMemory_SearchIsIdempotentAndCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	cat := "Electronics"
	if _, err := repo.Add(ctx, domain.Product{Name: "Laptop Computer", Category: &cat, IsActive: true}); err != nil {
		t.Fatalf("Add: %v", err)
	}

	first, err := repo.Search(ctx, "laptop")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	second, err := repo.Search(ctx, "LAPTOP")
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(first) != 1 || len(second) != 1 || first[0].ID != second[0].ID {
		t.Fatalf("expected identical result sets, got %+v and %+v", first, second)
	}

	byCat, err := repo.GetByCategory(ctx, "eLeCtRoNiCs")
	if err != nil {
		t.Fatalf("GetByCategory: %v", err)
	}
	if len(byCat) != 1 {
		t.Fatalf("expected case-insensitive category match, got %+v", byCat)
	}
}

func TestMemory_GetAllOrdering(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()

	base := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	current := base
	repo.SetClock(func() time.Time { return current })

	first, _ := repo.Add(ctx, domain.Product{Name: "First", IsActive: true})
	current = base.Add(time.Second)
	second, _ := repo.Add(ctx, domain.Product{Name: "Second", IsActive: true})

	all, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll: %v", err)
	}
	if len(all) != 2 || all[0].ID != second.ID || all[1].ID != first.ID {
		t.Fatalf("expected newest first, got %+v", all)
	}
}
