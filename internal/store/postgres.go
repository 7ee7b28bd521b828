package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/serroba/shorturl/internal/shortener"
)

// PostgresStore is a PostgreSQL-backed implementation of
// shortener.Repository using pgx. Uniqueness of both keys is delegated to
// the table constraints; the insert claim uses ON CONFLICT so that
// concurrent adds of one URL admit exactly one row.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const schema = `
CREATE SEQUENCE IF NOT EXISTS short_urls_id_seq;

CREATE TABLE IF NOT EXISTS short_urls (
	id           BIGINT PRIMARY KEY,
	code         TEXT NOT NULL UNIQUE,
	original_url TEXT NOT NULL UNIQUE,
	hits         BIGINT NOT NULL DEFAULT 0,
	created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);
`

// Migrate applies the schema. Safe to call on every startup.
func (p *PostgresStore) Migrate(ctx context.Context) error {
	_, err := p.pool.Exec(ctx, schema)

	return err
}

func (p *PostgresStore) NextID(ctx context.Context) (int64, error) {
	var id int64

	err := p.pool.QueryRow(ctx, `SELECT nextval('short_urls_id_seq')`).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (p *PostgresStore) Add(ctx context.Context, short *shortener.ShortURL) error {
	query := `
		INSERT INTO short_urls (id, code, original_url, hits, created_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`

	tag, err := p.pool.Exec(ctx, query,
		short.ID,
		string(short.Code),
		short.OriginalURL,
		short.Hits,
		short.CreatedAt,
	)
	if err != nil {
		return err
	}

	if tag.RowsAffected() > 0 {
		return nil
	}

	// Some constraint skipped the insert; figure out which one.
	existing, err := p.GetByOriginal(ctx, short.OriginalURL)
	if err != nil {
		if errors.Is(err, shortener.ErrNotFound) {
			return fmt.Errorf("short code %q is already in use", short.Code)
		}

		return err
	}

	if existing.Code == short.Code {
		// same entity added again
		return nil
	}

	return &shortener.DuplicateError{Existing: existing}
}

func (p *PostgresStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	query := `
		SELECT id, code, original_url, hits, created_at
		FROM short_urls
		WHERE code = $1
	`

	return p.scanOne(p.pool.QueryRow(ctx, query, string(code)))
}

func (p *PostgresStore) GetByOriginal(ctx context.Context, original string) (*shortener.ShortURL, error) {
	query := `
		SELECT id, code, original_url, hits, created_at
		FROM short_urls
		WHERE original_url = $1
	`

	return p.scanOne(p.pool.QueryRow(ctx, query, original))
}

func (p *PostgresStore) IncrementHits(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	query := `
		UPDATE short_urls
		SET hits = hits + 1
		WHERE code = $1
		RETURNING id, code, original_url, hits, created_at
	`

	return p.scanOne(p.pool.QueryRow(ctx, query, string(code)))
}

func (p *PostgresStore) scanOne(row pgx.Row) (*shortener.ShortURL, error) {
	var short shortener.ShortURL

	err := row.Scan(
		&short.ID,
		&short.Code,
		&short.OriginalURL,
		&short.Hits,
		&short.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shortener.ErrNotFound
		}

		return nil, err
	}

	return &short, nil
}
