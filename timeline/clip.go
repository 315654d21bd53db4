// Package timeline implements the clip placement engine: an ordered collection of clips
// arranged on a fixed set of parallel tracks, each track kept free of overlaps.
package timeline

import (
	"fmt"
	"math"
)

// MinClipDuration is the shortest span, in seconds, any clip may occupy.
const MinClipDuration = 0.1

// Track identifies one of the parallel lanes of the timeline.
type Track string

const (
	Main    Track = "main"
	Overlay Track = "overlay"
)

// Tracks lists every lane in display and resolution priority order.
var Tracks = []Track{Main, Overlay}

// Valid reports whether t is one of the known tracks.
func (t Track) Valid() bool {
	for _, known := range Tracks {
		if t == known {
			return true
		}
	}
	return false
}

// Other returns the neighbouring lane, used when toggling a clip between tracks.
func (t Track) Other() Track {
	if t == Main {
		return Overlay
	}
	return Main
}

func (t Track) String() string {
	return string(t)
}

// ParseTrack converts user input into a Track.
func ParseTrack(s string) (Track, error) {
	t := Track(s)
	if !t.Valid() {
		return "", fmt.Errorf("unknown track %q (expected one of %v)", s, Tracks)
	}
	return t, nil
}

// Clip is a placed reference to a span of some source media.
type Clip struct {
	ID       string  `json:"id"`
	MediaID  string  `json:"mediaId"`
	Track    Track   `json:"track"`
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	InPoint  float64 `json:"inPoint"`
	Name     string  `json:"name"`
}

// End is the timeline position right after the clip's last frame.
func (c Clip) End() float64 {
	return c.Start + c.Duration
}

// Contains reports whether t falls inside the half-open span [Start, End).
func (c Clip) Contains(t float64) bool {
	return t >= c.Start && t < c.End()
}

// SourceEnd is the offset into the source media where the clip's content stops.
func (c Clip) SourceEnd() float64 {
	return c.InPoint + c.Duration
}

func (c Clip) String() string {
	return fmt.Sprintf("%s[%s %.2f+%.2f]", c.Name, c.Track, c.Start, c.Duration)
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
