package repository

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/triviahub/trivia-api/internal/trivia"
)

// Store implements trivia.Store on top of a pgx connection pool. Isolation
// between concurrent requests is whatever Postgres provides; the service
// layer adds nothing on top.
type Store struct {
	pool *pgxpool.Pool
}

var _ trivia.Store = (*Store)(nil)

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// storeErr wraps a pgx failure into the service taxonomy, passing row-absence
// through as trivia.ErrNotFound.
func storeErr(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, trivia.ErrNotFound)
	}
	return &trivia.StoreError{Op: op, Err: err}
}
