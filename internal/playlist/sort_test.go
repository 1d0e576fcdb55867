package playlist

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vplay/vplay/internal/media"
)

func sortFixture() Playlist {
	p := New("sortable")
	banana := media.NewItem("banana", "/b.mp4")
	banana.DurationSec = 30
	banana.DateAdded = time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	apple := media.NewItem("Apple", "/a.mp4")
	apple.DurationSec = 90
	apple.DateAdded = time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC)
	cherry := media.NewItem("cherry", "/c.mp4")
	cherry.DurationSec = 60
	cherry.DateAdded = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p.Items = []media.Item{banana, apple, cherry}
	return p
}

func titles(p Playlist) []string {
	out := make([]string, len(p.Items))
	for i, it := range p.Items {
		out[i] = it.Title
	}
	return out
}

func TestSortTitleCaseInsensitive(t *testing.T) {
	p := sortFixture()

	Sort(&p, SortTitleAsc)
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles(p))
	assert.Equal(t, SortTitleAsc, p.SortMode)

	Sort(&p, SortTitleDesc)
	assert.Equal(t, []string{"cherry", "banana", "Apple"}, titles(p))
}

func TestSortDateAddedNewestFirst(t *testing.T) {
	p := sortFixture()

	Sort(&p, SortDateAdded)
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles(p))
}

func TestSortDurationLongestFirst(t *testing.T) {
	p := sortFixture()

	Sort(&p, SortDuration)
	assert.Equal(t, []string{"Apple", "cherry", "banana"}, titles(p))
}

func TestSortManualKeepsOrder(t *testing.T) {
	p := sortFixture()
	Sort(&p, SortTitleAsc)

	Sort(&p, SortManual)
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, titles(p))
	assert.Equal(t, SortManual, p.SortMode)
}

func TestSortUnknownModeIgnored(t *testing.T) {
	p := sortFixture()
	before := titles(p)

	Sort(&p, SortMode("bogus"))
	assert.Equal(t, before, titles(p))
	assert.Equal(t, SortManual, p.SortMode)
}

func TestSortStable(t *testing.T) {
	p := New("dupes")
	first := media.NewItem("same", "/1.mp4")
	second := media.NewItem("same", "/2.mp4")
	p.Items = []media.Item{first, second}

	Sort(&p, SortTitleAsc)
	require.Len(t, p.Items, 2)
	assert.Equal(t, first.ID, p.Items[0].ID)
	assert.Equal(t, second.ID, p.Items[1].ID)
}
