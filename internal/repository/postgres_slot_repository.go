package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type postgresSlotRepository struct {
	pool   *pgxpool.Pool
	prefix string
}

// NewPostgresSlotRepository stores slots in the roster_slots table.
func NewPostgresSlotRepository(pool *pgxpool.Pool, prefix string) SlotRepository {
	return &postgresSlotRepository{pool: pool, prefix: prefix}
}

func (r *postgresSlotRepository) Get(ctx context.Context, key string) ([]byte, error) {
	const query = `SELECT value FROM roster_slots WHERE key=$1`
	var value []byte
	if err := r.pool.QueryRow(ctx, query, r.prefix+key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return value, nil
}

func (r *postgresSlotRepository) Put(ctx context.Context, key string, value []byte) error {
	const query = `
        INSERT INTO roster_slots (key, value, updated_at)
        VALUES ($1, $2, NOW())
        ON CONFLICT (key) DO UPDATE SET value=EXCLUDED.value, updated_at=NOW()`
	_, err := r.pool.Exec(ctx, query, r.prefix+key, string(value))
	return err
}

func (r *postgresSlotRepository) Ping(ctx context.Context) error {
	if r.pool == nil {
		return errors.New("postgres pool not configured")
	}
	return r.pool.Ping(ctx)
}
