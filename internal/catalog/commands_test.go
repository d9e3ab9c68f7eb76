package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"product-catalog/internal/domain"
	productrepo "product-catalog/internal/repository/product"
)

type stubRepo struct {
	getByIDResult *domain.Product
	getByIDErr    error
	addResult     *domain.Product
	addErr        error
	updateResult  *domain.Product
	updateErr     error
	deleteResult  bool
	deleteErr     error
	existsResult  bool
	existsErr     error

	lastAdd    *domain.Product
	lastUpdate *domain.Product
	deletedID  int64
}

func (s *stubRepo) GetAll(context.Context) ([]domain.Product, error) { return nil, nil }
func (s *stubRepo) GetByID(context.Context, int64) (*domain.Product, error) {
	return s.getByIDResult, s.getByIDErr
}
func (s *stubRepo) GetByCategory(context.Context, string) ([]domain.Product, error) {
	return nil, nil
}
func (s *stubRepo) Search(context.Context, string) ([]domain.Product, error) { return nil, nil }
func (s *stubRepo) GetActive(context.Context) ([]domain.Product, error)      { return nil, nil }

func (s *stubRepo) Add(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.lastAdd = &p
	return s.addResult, s.addErr
}

func (s *stubRepo) Update(_ context.Context, p domain.Product) (*domain.Product, error) {
	s.lastUpdate = &p
	return s.updateResult, s.updateErr
}

func (s *stubRepo) Delete(_ context.Context, id int64) (bool, error) {
	s.deletedID = id
	return s.deleteResult, s.deleteErr
}

func (s *stubRepo) Exists(context.Context, int64) (bool, error) {
	return s.existsResult, s.existsErr
}

// stubUoW applies the callback to the stub repository and counts saves.
type stubUoW struct {
	repo  productrepo.Repository
	saves int
	err   error
}

func (u *stubUoW) Save(_ context.Context, fn func(productrepo.Repository) error) error {
	if u.err != nil {
		return u.err
	}
	u.saves++
	return fn(u.repo)
}

func TestCreateProduct_DefaultsActive(t *testing.T) {
	repo := &stubRepo{}
	repo.addResult = &domain.Product{ID: 7, Name: "Laptop Computer", IsActive: true}
	u := &stubUoW{repo: repo}
	h := NewCreateProductHandler(u)

	created, err := h.Handle(context.Background(), CreateProduct{
		Name:          "Laptop Computer",
		Price:         decimal.NewFromFloat(999.99),
		StockQuantity: 10,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if created.ID != 7 {
		t.Fatalf("expected stored product returned, got %+v", created)
	}
	if u.saves != 1 {
		t.Fatalf("expected exactly one save, got %d", u.saves)
	}
	if repo.lastAdd == nil || !repo.lastAdd.IsActive {
		t.Fatalf("expected isActive default true, got %+v", repo.lastAdd)
	}
}

func TestCreateProduct_ExplicitInactive(t *testing.T) {
	repo := &stubRepo{addResult: &domain.Product{ID: 1}}
	u := &stubUoW{repo: repo}
	h := NewCreateProductHandler(u)

	inactive := false
	_, err := h.Handle(context.Background(), CreateProduct{
		Name:          "Mug",
		Price:         decimal.NewFromInt(5),
		StockQuantity: 1,
		IsActive:      &inactive,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if repo.lastAdd.IsActive {
		t.Fatalf("expected isActive false, got %+v", repo.lastAdd)
	}
}

func TestCreateProduct_ValidationFailureSkipsSave(t *testing.T) {
	repo := &stubRepo{}
	u := &stubUoW{repo: repo}
	h := NewCreateProductHandler(u)

	_, err := h.Handle(context.Background(), CreateProduct{
		Name:          "",
		Price:         decimal.NewFromInt(-1),
		StockQuantity: 1,
	})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if _, ok := verr.Fields["name"]; !ok {
		t.Fatalf("expected name message, got %v", verr.Fields)
	}
	if _, ok := verr.Fields["price"]; !ok {
		t.Fatalf("expected price message, got %v", verr.Fields)
	}
	if u.saves != 0 {
		t.Fatalf("expected no save on validation failure, got %d", u.saves)
	}
}

func TestUpdateProduct_NotFound(t *testing.T) {
	repo := &stubRepo{}
	u := &stubUoW{repo: repo}
	h := NewUpdateProductHandler(repo, u)

	_, err := h.Handle(context.Background(), UpdateProduct{ID: 42, Name: "X", StockQuantity: 1})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if u.saves != 0 {
		t.Fatalf("expected no save for missing product, got %d", u.saves)
	}
}

func TestUpdateProduct_OverlaysFieldsPreservingIdentity(t *testing.T) {
	created := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sku := "LAP001"
	repo := &stubRepo{
		getByIDResult: &domain.Product{
			ID:            9,
			Name:          "Laptop Computer",
			Price:         decimal.NewFromFloat(999.99),
			StockQuantity: 10,
			SKU:           &sku,
			IsActive:      true,
			CreatedAt:     created,
			UpdatedAt:     created,
		},
	}
	repo.updateResult = &domain.Product{ID: 9, CreatedAt: created, UpdatedAt: created.Add(time.Minute)}
	u := &stubUoW{repo: repo}
	h := NewUpdateProductHandler(repo, u)

	_, err := h.Handle(context.Background(), UpdateProduct{
		ID:            9,
		Name:          "Laptop Computer",
		Price:         decimal.NewFromFloat(899.99),
		StockQuantity: 10,
		IsActive:      true,
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if u.saves != 1 {
		t.Fatalf("expected exactly one save, got %d", u.saves)
	}

	got := repo.lastUpdate
	if got.ID != 9 || !got.CreatedAt.Equal(created) {
		t.Fatalf("expected id and createdAt preserved, got %+v", got)
	}
	if !got.Price.Equal(decimal.NewFromFloat(899.99)) {
		t.Fatalf("expected price overlaid, got %s", got.Price)
	}
	if got.SKU != nil {
		t.Fatalf("expected sku replaced by command value (nil), got %v", *got.SKU)
	}
}

func TestUpdateProduct_ValidationFailure(t *testing.T) {
	repo := &stubRepo{getByIDResult: &domain.Product{ID: 3, Name: "Mug"}}
	u := &stubUoW{repo: repo}
	h := NewUpdateProductHandler(repo, u)

	_, err := h.Handle(context.Background(), UpdateProduct{ID: 3, Name: "Mug", StockQuantity: -1})

	var verr *domain.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if u.saves != 0 {
		t.Fatalf("expected no save, got %d", u.saves)
	}
}

func TestDeleteProduct_AbsentIsNotAnError(t *testing.T) {
	repo := &stubRepo{existsResult: false}
	u := &stubUoW{repo: repo}
	h := NewDeleteProductHandler(repo, u)

	removed, err := h.Handle(context.Background(), DeleteProduct{ID: 999})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if removed {
		t.Fatalf("expected removed=false for absent product")
	}
	if u.saves != 0 {
		t.Fatalf("expected no save, got %d", u.saves)
	}
}

func TestDeleteProduct_RemovesExisting(t *testing.T) {
	repo := &stubRepo{existsResult: true, deleteResult: true}
	u := &stubUoW{repo: repo}
	h := NewDeleteProductHandler(repo, u)

	removed, err := h.Handle(context.Background(), DeleteProduct{ID: 5})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !removed {
		t.Fatalf("expected removed=true")
	}
	if repo.deletedID != 5 {
		t.Fatalf("expected delete for id=5, got %d", repo.deletedID)
	}
	if u.saves != 1 {
		t.Fatalf("expected exactly one save, got %d", u.saves)
	}
}

func TestCreateProduct_SaveFailurePropagates(t *testing.T) {
	boom := errors.New("store unavailable")
	u := &stubUoW{repo: &stubRepo{}, err: boom}
	h := NewCreateProductHandler(u)

	_, err := h.Handle(context.Background(), CreateProduct{
		Name:          "Mug",
		Price:         decimal.NewFromInt(5),
		StockQuantity: 1,
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected store error to propagate, got %v", err)
	}
}
