package history

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vplay/vplay/internal/config"
	"github.com/vplay/vplay/internal/repository"
)

func newTestService(t *testing.T) (*Service, *repository.Repo) {
	t.Helper()
	db, err := repository.OpenDB(&config.Config{DataDir: t.TempDir()})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	repo := repository.NewRepo(db)
	svc := NewService(repo)
	svc.Load(context.Background())
	return svc, repo
}

func TestRecordMostRecentFirst(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	first := uuid.New()
	second := uuid.New()
	svc.Record(ctx, first, "one", "/1.mp4", 10, 100)
	svc.Record(ctx, second, "two", "/2.mp4", 20, 100)

	entries := svc.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, second, entries[0].ItemID)
	assert.Equal(t, first, entries[1].ItemID)
}

func TestRecordDedupesByItem(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	item := uuid.New()
	svc.Record(ctx, item, "clip", "/c.mp4", 10, 100)
	svc.Record(ctx, uuid.New(), "other", "/o.mp4", 5, 100)
	svc.Record(ctx, item, "clip", "/c.mp4", 50, 100)

	entries := svc.Entries()
	require.Len(t, entries, 2)
	assert.Equal(t, item, entries[0].ItemID)
	assert.Equal(t, 50.0, entries[0].WatchedSec)
}

func TestRecordCapped(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for i := 0; i < maxEntries+20; i++ {
		svc.Record(ctx, uuid.New(), fmt.Sprintf("clip %d", i), "/c.mp4", 1, 10)
	}

	entries := svc.Entries()
	assert.Len(t, entries, maxEntries)
	assert.Equal(t, fmt.Sprintf("clip %d", maxEntries+19), entries[0].Title)
}

func TestCompletionThreshold(t *testing.T) {
	e := Entry{WatchedSec: 89, TotalSec: 100}
	assert.False(t, e.Completed())

	e.WatchedSec = 90
	assert.True(t, e.Completed())

	e.WatchedSec = 500
	assert.Equal(t, 1.0, e.Completion())

	unknown := Entry{WatchedSec: 50}
	assert.Zero(t, unknown.Completion())
	assert.False(t, unknown.Completed())
}

func TestProgressLookup(t *testing.T) {
	svc, _ := newTestService(t)
	item := uuid.New()
	svc.Record(context.Background(), item, "clip", "/c.mp4", 33, 100)

	got, ok := svc.Progress(item)
	require.True(t, ok)
	assert.Equal(t, 33.0, got)

	_, ok = svc.Progress(uuid.New())
	assert.False(t, ok)
}

func TestRemoveAndClear(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Record(ctx, uuid.New(), "a", "/a.mp4", 1, 10)
	svc.Record(ctx, uuid.New(), "b", "/b.mp4", 2, 10)

	entries := svc.Entries()
	svc.Remove(ctx, entries[0].ID)
	assert.Len(t, svc.Entries(), 1)

	svc.Clear(ctx)
	assert.Empty(t, svc.Entries())
}

func TestStats(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	svc.Record(ctx, uuid.New(), "done", "/d.mp4", 95, 100)
	svc.Record(ctx, uuid.New(), "partial", "/p.mp4", 10, 100)

	st := svc.Stats()
	assert.Equal(t, 105.0, st.TotalWatchSec)
	assert.Equal(t, 1, st.CompletedCount)
	assert.Equal(t, 2, st.UniqueItems)
}

func TestPersistsAcrossReload(t *testing.T) {
	svc, repo := newTestService(t)
	ctx := context.Background()

	item := uuid.New()
	svc.Record(ctx, item, "clip", "/c.mp4", 42, 100)

	again := NewService(repo)
	again.Load(ctx)
	entries := again.Entries()
	require.Len(t, entries, 1)
	assert.Equal(t, item, entries[0].ItemID)
	assert.Equal(t, 42.0, entries[0].WatchedSec)
}
