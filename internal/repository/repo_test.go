package repository

import (
	"context"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vplay/vplay/internal/config"
)

func newTestRepo(t *testing.T) *Repo {
	t.Helper()
	db, err := OpenDB(&config.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewRepo(db)
}

func TestGetMissingKeyReturnsNil(t *testing.T) {
	repo := newTestRepo(t)

	blob, err := repo.GetCollection(context.Background(), "nope")
	require.NoError(t, err)
	assert.Nil(t, blob)
}

func TestPutGetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.PutCollection(ctx, "playlists", []byte(`[{"id":1}]`)))

	blob, err := repo.GetCollection(ctx, "playlists")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(blob))
}

func TestPutOverwrites(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.PutCollection(ctx, "k", []byte("old")))
	require.NoError(t, repo.PutCollection(ctx, "k", []byte("new")))

	blob, err := repo.GetCollection(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "new", string(blob))
}

func TestDeleteCollection(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.PutCollection(ctx, "k", []byte("v")))
	require.NoError(t, repo.DeleteCollection(ctx, "k"))

	blob, err := repo.GetCollection(ctx, "k")
	require.NoError(t, err)
	assert.Nil(t, blob)

	// deleting an absent key is not an error
	require.NoError(t, repo.DeleteCollection(ctx, "k"))
}

func TestOpenDBIdempotentMigrations(t *testing.T) {
	dir := t.TempDir()

	db, err := OpenDB(&config.Config{DataDir: dir})
	require.NoError(t, err)
	require.NoError(t, db.Close())

	// reopening the same file must not rerun applied migrations
	db, err = OpenDB(&config.Config{DataDir: dir})
	require.NoError(t, err)
	assert.NoError(t, db.Close())
}
