package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// Repo is a key-value blob store: one serialized blob per logical
// collection (playlists, shortcuts, history, settings) under a stable key.
type Repo struct {
	db *sql.DB
}

func NewRepo(db *sql.DB) *Repo { return &Repo{db: db} }

// GetCollection returns the blob stored under key, or nil when the key has
// never been written.
func (r *Repo) GetCollection(ctx context.Context, key string) ([]byte, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT value FROM collections WHERE key = ?`, key)
	var blob []byte
	if err := row.Scan(&blob); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return blob, nil
}

func (r *Repo) PutCollection(ctx context.Context, key string, blob []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO collections(key, value, updated_at) VALUES (?,?,?)`,
		key, blob, time.Now().Unix())
	return err
}

func (r *Repo) DeleteCollection(ctx context.Context, key string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM collections WHERE key = ?`, key)
	return err
}
