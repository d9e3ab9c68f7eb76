// Package uow provides the save boundary wrapping repository writes. Each
// business operation issues exactly one Save; the callback's repository
// calls run inside a single transaction that commits when the callback
// returns nil and rolls back otherwise.
package uow

import (
	"context"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"product-catalog/internal/repository/product"
)

// Postgres runs each Save in one pgx transaction.
type Postgres struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) *Postgres {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Postgres{pool: pool, logger: logger}
}

func (u *Postgres) Save(ctx context.Context, fn func(repo product.Repository) error) error {
	return pgx.BeginFunc(ctx, u.pool, func(tx pgx.Tx) error {
		return fn(product.NewPostgres(tx, u.logger))
	})
}

// Memory applies the callback directly to a shared repository, standing in
// for the transactional boundary in tests.
type Memory struct {
	Repo product.Repository
}

func (u *Memory) Save(_ context.Context, fn func(repo product.Repository) error) error {
	return fn(u.Repo)
}
