package playlist

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/vplay/vplay/internal/media"
)

// Next computes the item that follows currentID under the playlist's
// shuffle and repeat settings. It never mutates the playlist and is safe
// for concurrent readers. An exhausted playlist returns ok=false; that is
// a normal empty result, not an error.
//
// When currentID is absent or not a member, the first item is returned as
// the start-fresh case. With shuffle enabled the draw is uniform over the
// whole list, so the current item can repeat back-to-back.
func Next(p *Playlist, currentID uuid.UUID) (media.Item, bool) {
	if len(p.Items) == 0 {
		return media.Item{}, false
	}
	i := p.IndexOf(currentID)
	if i < 0 {
		return p.Items[0], true
	}

	var next int
	switch {
	case p.ShuffleEnabled:
		next = rand.Intn(len(p.Items))
	case i+1 < len(p.Items):
		next = i + 1
	case p.RepeatMode == RepeatAll:
		next = 0
	default:
		return media.Item{}, false
	}
	return p.Items[next], true
}

// Previous computes the item before currentID. Same start-fresh fallback
// as Next; repeat-all wraps to the last item.
func Previous(p *Playlist, currentID uuid.UUID) (media.Item, bool) {
	if len(p.Items) == 0 {
		return media.Item{}, false
	}
	i := p.IndexOf(currentID)
	if i < 0 {
		return p.Items[0], true
	}

	switch {
	case i > 0:
		return p.Items[i-1], true
	case p.RepeatMode == RepeatAll:
		return p.Items[len(p.Items)-1], true
	default:
		return media.Item{}, false
	}
}
