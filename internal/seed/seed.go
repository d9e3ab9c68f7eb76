package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	Description string
	Price       string
	Stock       int
	Category    string
	ImageURL    string
	SKU         string
}

// Apply inserts sample products for manual testing. It is idempotent: a row
// is only inserted when no product with the same SKU exists.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:        "Laptop Computer",
			Description: "15 inch laptop with 16 GB RAM",
			Price:       "999.99",
			Stock:       10,
			Category:    "Electronics",
			ImageURL:    "https://example.com/images/laptop.jpg",
			SKU:         "LAP001",
		},
		{
			Name:        "Mechanical Keyboard",
			Description: "Tenkeyless mechanical keyboard, brown switches",
			Price:       "89.99",
			Stock:       42,
			Category:    "Electronics",
			ImageURL:    "https://example.com/images/keyboard.jpg",
			SKU:         "KEY001",
		},
		{
			Name:        "Ceramic Mug",
			Description: "350 ml ceramic mug",
			Price:       "12.50",
			Stock:       120,
			Category:    "Kitchen",
			ImageURL:    "https://example.com/images/mug.jpg",
			SKU:         "MUG001",
		},
	}

	for _, p := range products {
		if err := insertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("insert product %s: %w", p.SKU, err)
		}
	}

	return nil
}

func insertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, price, stock_quantity, category, image_url, sku)
SELECT $1, $2, $3::numeric, $4, $5, $6, $7
WHERE NOT EXISTS (SELECT 1 FROM products WHERE lower(sku) = lower($7))
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Price, p.Stock, p.Category, p.ImageURL, p.SKU)
	return err
}
