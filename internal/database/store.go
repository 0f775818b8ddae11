package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fake-auth/internal/database/migrations"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
)

type Store struct {
	pool *pgxpool.Pool
	*Queries
}

func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{
		pool:    pool,
		Queries: New(pool),
	}
}

func (s *Store) ExecTx(ctx context.Context, fn func(Querier) error) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	q := New(tx)
	err = fn(q)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return errors.Join(err, fmt.Errorf("rollback: %w", rbErr))
		}
		return err
	}

	return tx.Commit(ctx)
}

func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

func (s *Store) GetPool() *pgxpool.Pool {
	return s.pool
}

// Migrate applies every pending schema migration.
func (s *Store) Migrate(ctx context.Context) error {
	return s.withGoose(func(db *sql.DB) error {
		return goose.UpContext(ctx, db, ".")
	})
}

// Reset rolls every migration back, dropping the tokens and users tables.
func (s *Store) Reset(ctx context.Context) error {
	return s.withGoose(func(db *sql.DB) error {
		return goose.DownToContext(ctx, db, ".", 0)
	})
}

func (s *Store) withGoose(fn func(*sql.DB) error) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("pgx"); err != nil {
		return err
	}

	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	if err := fn(db); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	return nil
}
