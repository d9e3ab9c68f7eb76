package catalog

import (
	"context"

	"product-catalog/internal/domain"
	"product-catalog/internal/repository/product"
)

type GetAllProducts struct{}

// GetProductByID resolves to a nullable product; absence is not an error.
type GetProductByID struct {
	ID int64
}

// GetProductsByCategory matches the category case-insensitively.
type GetProductsByCategory struct {
	Category string
}

// SearchProducts matches term as a case-insensitive substring of name or
// description. Empty terms are rejected by the API layer before dispatch.
type SearchProducts struct {
	Term string
}

type GetActiveProducts struct{}

type GetAllProductsHandler struct {
	repo product.Repository
}

func NewGetAllProductsHandler(repo product.Repository) *GetAllProductsHandler {
	return &GetAllProductsHandler{repo: repo}
}

func (h *GetAllProductsHandler) Handle(ctx context.Context, _ GetAllProducts) ([]domain.Product, error) {
	return h.repo.GetAll(ctx)
}

type GetProductByIDHandler struct {
	repo product.Repository
}

func NewGetProductByIDHandler(repo product.Repository) *GetProductByIDHandler {
	return &GetProductByIDHandler{repo: repo}
}

func (h *GetProductByIDHandler) Handle(ctx context.Context, q GetProductByID) (*domain.Product, error) {
	return h.repo.GetByID(ctx, q.ID)
}

type GetProductsByCategoryHandler struct {
	repo product.Repository
}

func NewGetProductsByCategoryHandler(repo product.Repository) *GetProductsByCategoryHandler {
	return &GetProductsByCategoryHandler{repo: repo}
}

func (h *GetProductsByCategoryHandler) Handle(ctx context.Context, q GetProductsByCategory) ([]domain.Product, error) {
	return h.repo.GetByCategory(ctx, q.Category)
}

type SearchProductsHandler struct {
	repo product.Repository
}

func NewSearchProductsHandler(repo product.Repository) *SearchProductsHandler {
	return &SearchProductsHandler{repo: repo}
}

func (h *SearchProductsHandler) Handle(ctx context.Context, q SearchProducts) ([]domain.Product, error) {
	return h.repo.Search(ctx, q.Term)
}

type GetActiveProductsHandler struct {
	repo product.Repository
}

func NewGetActiveProductsHandler(repo product.Repository) *GetActiveProductsHandler {
	return &GetActiveProductsHandler{repo: repo}
}

func (h *GetActiveProductsHandler) Handle(ctx context.Context, _ GetActiveProducts) ([]domain.Product, error) {
	return h.repo.GetActive(ctx)
}
