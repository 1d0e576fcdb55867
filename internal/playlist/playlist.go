package playlist

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/vplay/vplay/internal/media"
)

type SortMode string

const (
	SortManual    SortMode = "manual"
	SortTitleAsc  SortMode = "title_asc"
	SortTitleDesc SortMode = "title_desc"
	SortDateAdded SortMode = "date_added"
	SortDuration  SortMode = "duration"
)

type RepeatMode string

const (
	RepeatOff RepeatMode = "off"
	RepeatOne RepeatMode = "one"
	RepeatAll RepeatMode = "all"
)

var (
	ErrNotFound     = errors.New("playlist not found")
	ErrItemNotFound = errors.New("item not found in playlist")
	ErrBadPosition  = errors.New("position out of range")
)

// Playlist is an ordered collection of media items with traversal settings.
// The playlist owns its item list; removing an item discards membership
// only, never the underlying media file.
type Playlist struct {
	ID             uuid.UUID    `json:"id"`
	Name           string       `json:"name"`
	Items          []media.Item `json:"items"`
	SortMode       SortMode     `json:"sortMode"`
	ShuffleEnabled bool         `json:"shuffleEnabled"`
	RepeatMode     RepeatMode   `json:"repeatMode"`
	CreatedAt      time.Time    `json:"createdAt"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

func New(name string) Playlist {
	now := time.Now()
	return Playlist{
		ID:         uuid.New(),
		Name:       name,
		SortMode:   SortManual,
		RepeatMode: RepeatOff,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

func (p *Playlist) Len() int      { return len(p.Items) }
func (p *Playlist) IsEmpty() bool { return len(p.Items) == 0 }

// IndexOf returns the position of an item id, or -1.
func (p *Playlist) IndexOf(id uuid.UUID) int {
	for i := range p.Items {
		if p.Items[i].ID == id {
			return i
		}
	}
	return -1
}

// Item returns a copy of the member with the given id.
func (p *Playlist) Item(id uuid.UUID) (media.Item, bool) {
	if i := p.IndexOf(id); i >= 0 {
		return p.Items[i], true
	}
	return media.Item{}, false
}

// TotalDurationSec sums the known durations of all members.
func (p *Playlist) TotalDurationSec() float64 {
	var total float64
	for i := range p.Items {
		total += p.Items[i].DurationSec
	}
	return total
}

// AddItem appends an item, resetting its saved position. Ids are unique
// within a playlist; an item already present is ignored.
func (p *Playlist) AddItem(it media.Item) {
	if p.IndexOf(it.ID) >= 0 {
		return
	}
	it.PositionSec = 0
	p.Items = append(p.Items, it)
	p.UpdatedAt = time.Now()
}

func (p *Playlist) AddItems(items []media.Item) {
	for _, it := range items {
		p.AddItem(it)
	}
}

func (p *Playlist) RemoveItem(id uuid.UUID) error {
	i := p.IndexOf(id)
	if i < 0 {
		return ErrItemNotFound
	}
	p.Items = append(p.Items[:i], p.Items[i+1:]...)
	p.UpdatedAt = time.Now()
	return nil
}

// MoveItem relocates the member at index from to index to, shifting the
// rest. Indices address the full item list.
func (p *Playlist) MoveItem(from, to int) error {
	if from < 0 || from >= len(p.Items) || to < 0 || to >= len(p.Items) {
		return ErrBadPosition
	}
	if from == to {
		return nil
	}
	it := p.Items[from]
	p.Items = append(p.Items[:from], p.Items[from+1:]...)
	p.Items = append(p.Items[:to], append([]media.Item{it}, p.Items[to:]...)...)
	p.UpdatedAt = time.Now()
	return nil
}

// UpdateItem replaces the member with a matching id.
func (p *Playlist) UpdateItem(it media.Item) error {
	i := p.IndexOf(it.ID)
	if i < 0 {
		return ErrItemNotFound
	}
	p.Items[i] = it
	p.UpdatedAt = time.Now()
	return nil
}

func (p *Playlist) Clear() {
	p.Items = nil
	p.UpdatedAt = time.Now()
}

// clone deep-copies the playlist so callers can hand out snapshots without
// sharing the item slice.
func (p *Playlist) clone() Playlist {
	cp := *p
	cp.Items = make([]media.Item, len(p.Items))
	copy(cp.Items, p.Items)
	return cp
}
