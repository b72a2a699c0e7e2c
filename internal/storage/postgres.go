package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores every collection in the documents table, one JSONB body
// per (collection, id) pair.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

func (p *Postgres) Collection(name string) Collection {
	return &postgresCollection{pool: p.pool, name: name}
}

type postgresCollection struct {
	pool *pgxpool.Pool
	name string
}

func (c *postgresCollection) FindOne(ctx context.Context, id string) ([]byte, error) {
	var body []byte
	err := c.pool.QueryRow(ctx,
		`SELECT body FROM documents WHERE collection = $1 AND id = $2`,
		c.name, id,
	).Scan(&body)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s/%s: %w", c.name, id, err)
	}
	return body, nil
}

func (c *postgresCollection) ReplaceOne(ctx context.Context, id string, doc []byte) error {
	_, err := c.pool.Exec(ctx,
		`INSERT INTO documents (collection, id, body, updated_at)
		 VALUES ($1, $2, $3, NOW())
		 ON CONFLICT (collection, id) DO UPDATE
		   SET body = EXCLUDED.body,
		       updated_at = NOW()`,
		c.name, id, doc,
	)
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", c.name, id, err)
	}
	return nil
}
