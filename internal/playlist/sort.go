package playlist

import (
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Sort reorders the playlist's items by the given mode and records the
// mode. The sort is stable; shuffle and repeat settings are untouched.
// Manual mode is a no-op on ordering: insertion order is the canonical
// manual order and is recoverable through each item's DateAdded.
func Sort(p *Playlist, mode SortMode) {
	switch mode {
	case SortManual:
		// keep current order
	case SortTitleAsc, SortTitleDesc:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(p.Items, func(i, j int) bool {
			cmp := c.CompareString(p.Items[i].Title, p.Items[j].Title)
			if mode == SortTitleDesc {
				return cmp > 0
			}
			return cmp < 0
		})
	case SortDateAdded:
		sort.SliceStable(p.Items, func(i, j int) bool {
			return p.Items[i].DateAdded.After(p.Items[j].DateAdded)
		})
	case SortDuration:
		sort.SliceStable(p.Items, func(i, j int) bool {
			return p.Items[i].DurationSec > p.Items[j].DurationSec
		})
	default:
		return
	}
	p.SortMode = mode
	p.UpdatedAt = time.Now()
}
