package product

import (
	"context"

	"product-catalog/internal/domain"
)

// Repository mediates CRUD access to the products store.
//
// Absence is not an error: GetByID returns a nil product and Delete returns
// false when no row matches. Store failures surface as non-nil errors.
type Repository interface {
	GetAll(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id int64) (*domain.Product, error)
	GetByCategory(ctx context.Context, category string) ([]domain.Product, error)
	Search(ctx context.Context, term string) ([]domain.Product, error)
	GetActive(ctx context.Context) ([]domain.Product, error)
	Add(ctx context.Context, p domain.Product) (*domain.Product, error)
	Update(ctx context.Context, p domain.Product) (*domain.Product, error)
	Delete(ctx context.Context, id int64) (bool, error)
	Exists(ctx context.Context, id int64) (bool, error)
}
