// Package media is the catalog of source files that timeline clips reference.
package media

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// ErrNotFound is returned when a media id is not in the catalog.
var ErrNotFound = errors.New("media not found")

// Catalog maps media ids to their entries.
type Catalog interface {
	Resolve(id string) mo.Option[Media]
}

// VideoStream describes the first video stream of a file.
type VideoStream struct {
	Codec     string `json:"codec"`
	Width     int    `json:"width,omitempty"`
	Height    int    `json:"height,omitempty"`
	FrameRate string `json:"frameRate,omitempty"`
}

// AudioStream describes one audio stream of a file.
type AudioStream struct {
	Codec      string `json:"codec"`
	Channels   int    `json:"channels,omitempty"`
	SampleRate int    `json:"sampleRate,omitempty"`
}

// Metadata is what probing a file reveals about it.
type Metadata struct {
	Path     string        `json:"path"`
	Format   string        `json:"format"`
	Duration float64       `json:"duration"`
	Size     int64         `json:"size"`
	BitRate  int64         `json:"bitRate,omitempty"`
	Video    *VideoStream  `json:"video,omitempty"`
	Audio    []AudioStream `json:"audio,omitempty"`
}

// Resolution returns "WxH" or an empty string for audio-only files.
func (m Metadata) Resolution() string {
	if m.Video == nil || m.Video.Width == 0 || m.Video.Height == 0 {
		return ""
	}
	return fmt.Sprintf("%dx%d", m.Video.Width, m.Video.Height)
}

// Media is a single entry of the library.
type Media struct {
	ID        string    `json:"id"`
	Path      string    `json:"path"`
	Name      string    `json:"name"`
	Metadata  Metadata  `json:"metadata"`
	CreatedAt time.Time `json:"createdAt"`
}

// New builds a library entry for probed metadata.
func New(path string, metadata Metadata) Media {
	return Media{
		ID:        uuid.NewString(),
		Path:      lo.Ternary(metadata.Path != "", metadata.Path, path),
		Name:      ClipName(path),
		Metadata:  metadata,
		CreatedAt: time.Now(),
	}
}

// Duration is the probed length of the media, absent when the prober could not tell.
func (m Media) Duration() mo.Option[float64] {
	if m.Metadata.Duration > 0 {
		return mo.Some(m.Metadata.Duration)
	}
	return mo.None[float64]()
}

func (m Media) String() string {
	return m.Name
}

var separators = regexp.MustCompile(`[\\/]`)

// ClipName returns the last segment of path, accepting both separator styles.
func ClipName(path string) string {
	segments := separators.Split(path, -1)
	if name := segments[len(segments)-1]; name != "" {
		return name
	}
	return path
}

// DedupePaths trims paths, drops empty ones and keeps the first occurrence of each.
func DedupePaths(paths []string) []string {
	trimmed := lo.FilterMap(paths, func(p string, _ int) (string, bool) {
		p = strings.TrimSpace(p)
		return p, p != ""
	})
	return lo.Uniq(trimmed)
}
