// Package postgres provides PostgreSQL persistence using pgx v5.
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cory-johannsen/guildhall/internal/config"
	"github.com/cory-johannsen/guildhall/internal/errors"
)

// SQLSTATE codes mapped to domain errors.
const (
	sqlStateUniqueViolation     = "23505"
	sqlStateForeignKeyViolation = "23503"
	sqlStateCheckViolation      = "23514"
	sqlStateStringTooLong       = "22001"
	sqlStateNumericOutOfRange   = "22003"
)

// Pool wraps a pgx connection pool with health-check and lifecycle methods.
// Every repository operation run through a Pool is bounded by its query timeout.
type Pool struct {
	pool         *pgxpool.Pool
	queryTimeout time.Duration
}

// NewPool creates a new PostgreSQL connection pool from the given configuration.
//
// Precondition: cfg must contain valid database connection parameters.
// Postcondition: Returns a connected Pool or a non-nil error. The pool is ready
// for queries upon successful return.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("parsing database config: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	timeout := cfg.QueryTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Pool{pool: pool, queryTimeout: timeout}, nil
}

// Health checks that the database is reachable within the query timeout.
//
// Precondition: The pool must not be closed.
// Postcondition: Returns nil if the database responds within the timeout.
func (p *Pool) Health(ctx context.Context) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()
	return p.pool.Ping(ctx)
}

// Close releases all pool resources.
//
// Postcondition: The pool is no longer usable after calling Close.
func (p *Pool) Close() {
	p.pool.Close()
}

// DB returns the underlying pgxpool.Pool.
func (p *Pool) DB() *pgxpool.Pool {
	return p.pool
}

// QueryTimeout returns the per-operation deadline applied by repositories.
func (p *Pool) QueryTimeout() time.Duration {
	return p.queryTimeout
}

func (p *Pool) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.queryTimeout)
}

// inTx runs fn inside one READ COMMITTED transaction bounded by the query
// timeout. The transaction commits when fn returns nil and rolls back otherwise.
func (p *Pool) inTx(ctx context.Context, fn func(ctx context.Context, tx pgx.Tx) error) error {
	ctx, cancel := p.bound(ctx)
	defer cancel()
	return pgx.BeginTxFunc(ctx, p.pool, pgx.TxOptions{IsoLevel: pgx.ReadCommitted}, func(tx pgx.Tx) error {
		return fn(ctx, tx)
	})
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// sqlState returns the SQLSTATE of a PostgreSQL error, or "".
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// storeError classifies a driver error. Unique violations become
// ALREADY_EXISTS, foreign key violations FAILED_PRECONDITION, values the
// schema rejects INVALID_ARGUMENT, deadlines DEADLINE_EXCEEDED, and
// everything else INTERNAL. Errors that already carry a code keep it.
func storeError(err error, message string) error {
	if err == nil {
		return nil
	}
	switch sqlState(err) {
	case sqlStateUniqueViolation:
		return errors.WrapWithCode(err, errors.CodeAlreadyExists, message+": name already exists")
	case sqlStateForeignKeyViolation:
		return errors.WrapWithCode(err, errors.CodeFailedPrecondition, message+": still referenced")
	case sqlStateCheckViolation, sqlStateStringTooLong, sqlStateNumericOutOfRange:
		return errors.WrapWithCode(err, errors.CodeInvalidArgument, message+": value out of range")
	}
	return errors.Wrap(err, message)
}
