package playlist

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vplay/vplay/internal/media"
)

func threeItems() Playlist {
	p := New("test")
	p.AddItems([]media.Item{
		media.NewItem("a", "/media/a.mp4"),
		media.NewItem("b", "/media/b.mp4"),
		media.NewItem("c", "/media/c.mp4"),
	})
	return p
}

func TestNextSequential(t *testing.T) {
	p := threeItems()

	next, ok := Next(&p, p.Items[0].ID)
	require.True(t, ok)
	assert.Equal(t, p.Items[1].ID, next.ID)

	next, ok = Next(&p, p.Items[1].ID)
	require.True(t, ok)
	assert.Equal(t, p.Items[2].ID, next.ID)
}

func TestNextExhaustedWithoutRepeat(t *testing.T) {
	p := threeItems()

	_, ok := Next(&p, p.Items[2].ID)
	assert.False(t, ok, "last item without repeat-all must be exhausted")
}

func TestNextRepeatAllWraps(t *testing.T) {
	p := threeItems()
	p.RepeatMode = RepeatAll

	next, ok := Next(&p, p.Items[2].ID)
	require.True(t, ok)
	assert.Equal(t, p.Items[0].ID, next.ID)
}

func TestNextEmptyPlaylist(t *testing.T) {
	p := New("empty")

	_, ok := Next(&p, uuid.New())
	assert.False(t, ok)
	_, ok = Previous(&p, uuid.New())
	assert.False(t, ok)
}

func TestNextUnknownCurrentStartsFresh(t *testing.T) {
	p := threeItems()

	next, ok := Next(&p, uuid.New())
	require.True(t, ok)
	assert.Equal(t, p.Items[0].ID, next.ID)

	next, ok = Next(&p, uuid.Nil)
	require.True(t, ok)
	assert.Equal(t, p.Items[0].ID, next.ID)
}

func TestNextShuffleStaysInPlaylist(t *testing.T) {
	p := threeItems()
	p.ShuffleEnabled = true

	for i := 0; i < 50; i++ {
		next, ok := Next(&p, p.Items[0].ID)
		require.True(t, ok)
		assert.GreaterOrEqual(t, p.IndexOf(next.ID), 0)
	}
}

func TestNextShuffleMayRepeatCurrent(t *testing.T) {
	// The shuffle draw is uniform over the whole list, so a single-item
	// playlist keeps returning the same item instead of exhausting.
	p := New("solo")
	p.AddItem(media.NewItem("only", "/media/only.mkv"))
	p.ShuffleEnabled = true

	next, ok := Next(&p, p.Items[0].ID)
	require.True(t, ok)
	assert.Equal(t, p.Items[0].ID, next.ID)
}

func TestNextShuffleIgnoresRepeatAll(t *testing.T) {
	p := threeItems()
	p.ShuffleEnabled = true
	p.RepeatMode = RepeatOff

	// shuffle never exhausts, even at the tail without repeat-all
	_, ok := Next(&p, p.Items[2].ID)
	assert.True(t, ok)
}

func TestPreviousSequential(t *testing.T) {
	p := threeItems()

	prev, ok := Previous(&p, p.Items[2].ID)
	require.True(t, ok)
	assert.Equal(t, p.Items[1].ID, prev.ID)
}

func TestPreviousAtHead(t *testing.T) {
	p := threeItems()

	_, ok := Previous(&p, p.Items[0].ID)
	assert.False(t, ok)

	p.RepeatMode = RepeatAll
	prev, ok := Previous(&p, p.Items[0].ID)
	require.True(t, ok)
	assert.Equal(t, p.Items[2].ID, prev.ID)
}

func TestNavigationDoesNotMutate(t *testing.T) {
	p := threeItems()
	before := make([]uuid.UUID, len(p.Items))
	for i, it := range p.Items {
		before[i] = it.ID
	}

	Next(&p, p.Items[0].ID)
	Previous(&p, p.Items[1].ID)

	for i, it := range p.Items {
		assert.Equal(t, before[i], it.ID)
	}
}
