package media

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Format is the container format tag of a media item.
type Format string

const (
	FormatMP4     Format = "mp4"
	FormatMKV     Format = "mkv"
	FormatAVI     Format = "avi"
	FormatFLV     Format = "flv"
	FormatWebM    Format = "webm"
	FormatMOV     Format = "mov"
	FormatM4V     Format = "m4v"
	FormatTS      Format = "ts"
	FormatM3U8    Format = "m3u8"
	FormatUnknown Format = "unknown"
)

// FormatFromLocator derives the container tag from the locator's extension.
func FormatFromLocator(locator string) Format {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(locator)), ".")
	switch Format(ext) {
	case FormatMP4, FormatMKV, FormatAVI, FormatFLV, FormatWebM,
		FormatMOV, FormatM4V, FormatTS, FormatM3U8:
		return Format(ext)
	}
	return FormatUnknown
}

// IsStream reports whether the format is a streaming container.
func (f Format) IsStream() bool {
	return f == FormatM3U8 || f == FormatTS
}

// Item is a single playable media entry. Items are created on import and
// mutated only through position-save updates; navigation never touches them.
type Item struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Locator string    `json:"locator"` // local path or URL

	// DurationSec is 0 until the engine reports the real duration.
	// PositionSec may exceed DurationSec while the duration is unknown;
	// once known it is clamped into [0, DurationSec].
	DurationSec float64 `json:"durationSec"`
	PositionSec float64 `json:"positionSec"`

	Format    Format    `json:"format"`
	DateAdded time.Time `json:"dateAdded"`
}

// NewItem builds an item for a locator, deriving the title from the path
// when none is given.
func NewItem(title, locator string) Item {
	if title == "" {
		title = filepath.Base(locator)
	}
	return Item{
		ID:        uuid.New(),
		Title:     title,
		Locator:   locator,
		Format:    FormatFromLocator(locator),
		DateAdded: time.Now(),
	}
}

// SetPosition stores a playback position, clamped against the known
// duration. Unknown duration (0) accepts any non-negative position.
func (it *Item) SetPosition(seconds float64) {
	if seconds < 0 {
		seconds = 0
	}
	if it.DurationSec > 0 && seconds > it.DurationSec {
		seconds = it.DurationSec
	}
	it.PositionSec = seconds
}

// Progress returns the watched fraction in [0,1], 0 when duration is unknown.
func (it *Item) Progress() float64 {
	if it.DurationSec <= 0 {
		return 0
	}
	return it.PositionSec / it.DurationSec
}

// Clock renders seconds as m:ss, or h:mm:ss past the hour mark.
func Clock(seconds float64) string {
	sec := int(seconds)
	if sec < 0 {
		sec = 0
	}
	h := sec / 3600
	m := (sec % 3600) / 60
	s := sec % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
