package repository

import (
	"context"
	"database/sql"
	"errors"

	"storefront/internal/database"

	"github.com/jackc/pgx/v5/pgconn"
)

// Postgres SQLSTATE codes the repositories translate
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// DBTX is satisfied by both *sql.DB and *sql.Tx
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// Store groups the repositories that share one connection or transaction
type Store interface {
	Products() ProductRepository
	Categories() CategoryRepository
	Carts() CartRepository
	Users() UserRepository

	// WithTx runs fn against a Store bound to a single transaction.
	// Calling WithTx on a transactional Store reuses the open transaction.
	WithTx(ctx context.Context, fn func(Store) error) error
}

type sqlStore struct {
	db *sql.DB
	q  DBTX
}

// NewStore creates a Store over the connection pool
func NewStore(db *sql.DB) Store {
	return &sqlStore{db: db, q: db}
}

func (s *sqlStore) Products() ProductRepository   { return NewProductRepository(s.q) }
func (s *sqlStore) Categories() CategoryRepository { return NewCategoryRepository(s.q) }
func (s *sqlStore) Carts() CartRepository         { return NewCartRepository(s.q) }
func (s *sqlStore) Users() UserRepository         { return NewUserRepository(s.q) }

func (s *sqlStore) WithTx(ctx context.Context, fn func(Store) error) error {
	if s.db == nil {
		return fn(s)
	}
	return database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(&sqlStore{q: tx})
	})
}

func pgErrorCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

func isUniqueViolation(err error) bool {
	return pgErrorCode(err) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	return pgErrorCode(err) == pgForeignKeyViolation
}
