package product

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"product-catalog/internal/domain"
)

// DB is the subset of pgx execution methods the repository needs. Both
// *pgxpool.Pool and pgx.Tx satisfy it, so the same repository runs against
// the pool for reads and inside a unit-of-work transaction for writes.
type DB interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type postgresRepo struct {
	db     DB
	logger *log.Logger
}

// NewPostgres builds a Repository backed by the products table.
func NewPostgres(db DB, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{db: db, logger: logger}
}

const productColumns = `id, name, description, price, stock_quantity, category, image_url, sku, is_active, created_at, updated_at`

func (r *postgresRepo) GetAll(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
ORDER BY created_at DESC, id DESC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list error=%v", err)
		return nil, err
	}
	return r.collect(rows, "list")
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE id = $1
`
	var p domain.Product
	err := scanProduct(r.db.QueryRow(ctx, q, id), &p)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: get id=%d not found", id)
			return nil, nil
		}
		r.logger.Printf("product repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

func (r *postgresRepo) GetByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE category IS NOT NULL AND lower(category) = lower($1)
ORDER BY created_at DESC, id DESC
`
	rows, err := r.db.Query(ctx, q, category)
	if err != nil {
		r.logger.Printf("product repo: list category=%s error=%v", category, err)
		return nil, err
	}
	return r.collect(rows, "list by category")
}

func (r *postgresRepo) Search(ctx context.Context, term string) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE name ILIKE $1 OR description ILIKE $1
ORDER BY created_at DESC, id DESC
`
	pattern := "%" + escapeLike(term) + "%"
	rows, err := r.db.Query(ctx, q, pattern)
	if err != nil {
		r.logger.Printf("product repo: search term=%q error=%v", term, err)
		return nil, err
	}
	return r.collect(rows, "search")
}

func (r *postgresRepo) GetActive(ctx context.Context) ([]domain.Product, error) {
	const q = `
SELECT ` + productColumns + `
FROM products
WHERE is_active
ORDER BY created_at DESC, id DESC
`
	rows, err := r.db.Query(ctx, q)
	if err != nil {
		r.logger.Printf("product repo: list active error=%v", err)
		return nil, err
	}
	return r.collect(rows, "list active")
}

func (r *postgresRepo) Add(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, price, stock_quantity, category, image_url, sku, is_active)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id, created_at, updated_at
`
	err := r.db.QueryRow(ctx, q,
		p.Name,
		p.Description,
		p.Price,
		p.StockQuantity,
		p.Category,
		p.ImageURL,
		p.SKU,
		p.IsActive,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		r.logger.Printf("product repo: add name=%q error=%v", p.Name, err)
		return nil, err
	}
	r.logger.Printf("product repo: added id=%d name=%q", p.ID, p.Name)
	return &p, nil
}

func (r *postgresRepo) Update(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
UPDATE products
SET name = $2,
    description = $3,
    price = $4,
    stock_quantity = $5,
    category = $6,
    image_url = $7,
    sku = $8,
    is_active = $9,
    updated_at = now()
WHERE id = $1
RETURNING created_at, updated_at
`
	err := r.db.QueryRow(ctx, q,
		p.ID,
		p.Name,
		p.Description,
		p.Price,
		p.StockQuantity,
		p.Category,
		p.ImageURL,
		p.SKU,
		p.IsActive,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("product repo: update id=%d not found", p.ID)
			return nil, nil
		}
		r.logger.Printf("product repo: update id=%d error=%v", p.ID, err)
		return nil, err
	}
	r.logger.Printf("product repo: updated id=%d", p.ID)
	return &p, nil
}

func (r *postgresRepo) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Printf("product repo: delete id=%d error=%v", id, err)
		return false, err
	}
	removed := tag.RowsAffected() > 0
	r.logger.Printf("product repo: delete id=%d removed=%t", id, removed)
	return removed, nil
}

func (r *postgresRepo) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM products WHERE id = $1)`, id).Scan(&exists)
	if err != nil {
		r.logger.Printf("product repo: exists id=%d error=%v", id, err)
		return false, err
	}
	return exists, nil
}

func (r *postgresRepo) collect(rows pgx.Rows, op string) ([]domain.Product, error) {
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := scanProduct(rows, &p); err != nil {
			return nil, err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: %s rows error=%v", op, err)
		return nil, err
	}
	r.logger.Printf("product repo: %s count=%d", op, len(result))
	return result, nil
}

func scanProduct(row pgx.Row, p *domain.Product) error {
	return row.Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Price,
		&p.StockQuantity,
		&p.Category,
		&p.ImageURL,
		&p.SKU,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
}

// escapeLike neutralizes LIKE wildcards so a search term matches literally.
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
