// Package catalog holds the command and query handlers for the product
// catalog. Handlers are stateless: each one validates its input, performs a
// single repository round-trip (writes through one unit-of-work save), and
// returns the stored shape unchanged.
package catalog

import (
	"context"

	"github.com/shopspring/decimal"

	"product-catalog/internal/domain"
	"product-catalog/internal/repository/product"
)

// CreateProduct adds a product to the catalog. IsActive defaults to true
// when omitted.
type CreateProduct struct {
	Name          string
	Description   *string
	Price         decimal.Decimal
	StockQuantity int
	Category      *string
	ImageURL      *string
	SKU           *string
	IsActive      *bool
}

// UpdateProduct replaces every mutable field of an existing product.
// ID and CreatedAt are preserved; UpdatedAt is refreshed by the store.
type UpdateProduct struct {
	ID            int64
	Name          string
	Description   *string
	Price         decimal.Decimal
	StockQuantity int
	Category      *string
	ImageURL      *string
	SKU           *string
	IsActive      bool
}

// DeleteProduct removes a product. Absence is a boolean outcome, not an
// error.
type DeleteProduct struct {
	ID int64
}

type CreateProductHandler struct {
	uow UnitOfWork
}

func NewCreateProductHandler(uow UnitOfWork) *CreateProductHandler {
	return &CreateProductHandler{uow: uow}
}

func (h *CreateProductHandler) Handle(ctx context.Context, cmd CreateProduct) (domain.Product, error) {
	p := domain.Product{
		Name:          cmd.Name,
		Description:   cmd.Description,
		Price:         cmd.Price,
		StockQuantity: cmd.StockQuantity,
		Category:      cmd.Category,
		ImageURL:      cmd.ImageURL,
		SKU:           cmd.SKU,
		IsActive:      true,
	}
	if cmd.IsActive != nil {
		p.IsActive = *cmd.IsActive
	}
	if err := p.Validate(); err != nil {
		return domain.Product{}, err
	}

	var created domain.Product
	err := h.uow.Save(ctx, func(repo product.Repository) error {
		stored, err := repo.Add(ctx, p)
		if err != nil {
			return err
		}
		created = *stored
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return created, nil
}

type UpdateProductHandler struct {
	repo product.Repository
	uow  UnitOfWork
}

func NewUpdateProductHandler(repo product.Repository, uow UnitOfWork) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo, uow: uow}
}

func (h *UpdateProductHandler) Handle(ctx context.Context, cmd UpdateProduct) (domain.Product, error) {
	existing, err := h.repo.GetByID(ctx, cmd.ID)
	if err != nil {
		return domain.Product{}, err
	}
	if existing == nil {
		return domain.Product{}, domain.ErrNotFound
	}

	next := *existing
	next.Name = cmd.Name
	next.Description = cmd.Description
	next.Price = cmd.Price
	next.StockQuantity = cmd.StockQuantity
	next.Category = cmd.Category
	next.ImageURL = cmd.ImageURL
	next.SKU = cmd.SKU
	next.IsActive = cmd.IsActive
	if err := next.Validate(); err != nil {
		return domain.Product{}, err
	}

	var updated domain.Product
	err = h.uow.Save(ctx, func(repo product.Repository) error {
		stored, err := repo.Update(ctx, next)
		if err != nil {
			return err
		}
		if stored == nil {
			// Row vanished between the read and the write.
			return domain.ErrNotFound
		}
		updated = *stored
		return nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return updated, nil
}

type DeleteProductHandler struct {
	repo product.Repository
	uow  UnitOfWork
}

func NewDeleteProductHandler(repo product.Repository, uow UnitOfWork) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo, uow: uow}
}

// Handle reports whether the product existed and was removed.
func (h *DeleteProductHandler) Handle(ctx context.Context, cmd DeleteProduct) (bool, error) {
	exists, err := h.repo.Exists(ctx, cmd.ID)
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}

	removed := false
	err = h.uow.Save(ctx, func(repo product.Repository) error {
		ok, err := repo.Delete(ctx, cmd.ID)
		if err != nil {
			return err
		}
		removed = ok
		return nil
	})
	if err != nil {
		return false, err
	}
	return removed, nil
}
