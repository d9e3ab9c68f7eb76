package catalog

import (
	"context"

	"product-catalog/internal/repository/product"
)

// UnitOfWork is the save boundary the command handlers write through.
// Every command issues exactly one Save.
type UnitOfWork interface {
	Save(ctx context.Context, fn func(repo product.Repository) error) error
}
