// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/clipforge-cli/clipforge/timeline"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/mattn/go-runewidth"
)

// pixelsPerColumn converts zoom, expressed in pixels per second, to terminal columns.
const pixelsPerColumn = 20

var (
	clipStyles = map[timeline.Track][2]lipgloss.Style{
		timeline.Main: {
			style.Colored(style.Base, style.MainTrackColors[0]),
			style.Colored(style.Base, style.MainTrackColors[1]),
		},
		timeline.Overlay: {
			style.Colored(style.Base, style.OverlayTrackColors[0]),
			style.Colored(style.Base, style.OverlayTrackColors[1]),
		},
	}
	selectedClipStyle = style.Colored(style.Base, style.SelectionColor).Bold(true)
)

func columnsPerSecond(zoom int) float64 {
	return float64(zoom) / pixelsPerColumn
}

// segment is the visible column range [from, to) of a clip.
type segment struct {
	clip     timeline.Clip
	from, to int
}

// layoutTrack maps the clips of one track, in start order, onto cols columns
// beginning at viewStart. Visible clips always get at least one column and
// never share one.
func layoutTrack(clips []timeline.Clip, viewStart float64, cols int, perSecond float64) []segment {
	var segments []segment
	cursor := 0

	for _, c := range clips {
		if c.End() <= viewStart {
			continue
		}

		from := int(math.Floor((c.Start - viewStart) * perSecond))
		to := int(math.Floor((c.End() - viewStart) * perSecond))
		from = max(from, cursor, 0)
		to = min(to, cols)
		if to <= from {
			to = from + 1
		}
		if to > cols {
			break
		}

		segments = append(segments, segment{clip: c, from: from, to: to})
		cursor = to
	}

	return segments
}

// renderTrack draws segments as labelled blocks padded to cols.
func renderTrack(track timeline.Track, segments []segment, cols int, selected string) string {
	var sb strings.Builder
	cursor := 0

	for i, s := range segments {
		sb.WriteString(strings.Repeat(" ", s.from-cursor))

		width := s.to - s.from
		label := runewidth.FillRight(runewidth.Truncate(clipLabel(s.clip), width, "…"), width)

		blockStyle := clipStyles[track][i%2]
		if s.clip.ID == selected {
			blockStyle = selectedClipStyle
		}
		sb.WriteString(blockStyle.Render(label))
		cursor = s.to
	}

	if cols > cursor {
		sb.WriteString(strings.Repeat(" ", cols-cursor))
	}
	return sb.String()
}

func clipLabel(c timeline.Clip) string {
	if c.Name != "" {
		return c.Name
	}
	return c.MediaID
}

// rulerLine labels the timeline markers that fit in cols columns.
func rulerLine(viewStart float64, cols int, zoom int) string {
	perSecond := columnsPerSecond(zoom)
	visible := float64(cols) / perSecond
	line := []rune(strings.Repeat(" ", cols))
	next := 0

	for _, marker := range timeline.RulerMarkers(viewStart+visible, zoom) {
		if marker < viewStart {
			continue
		}

		col := int(math.Floor((marker - viewStart) * perSecond))
		label := []rune("|" + util.FormatDuration(marker))
		if col < next || col+len(label) > cols {
			continue
		}

		copy(line[col:], label)
		next = col + len(label) + 1
	}

	return string(line)
}

// playheadLine places marker at the playhead column, or returns an empty line
// when the playhead is outside the view.
func playheadLine(viewStart, playhead float64, cols int, perSecond float64, marker string) string {
	col := int(math.Floor((playhead - viewStart) * perSecond))
	if col < 0 || col >= cols {
		return ""
	}
	return strings.Repeat(" ", col) + marker
}

// followPlayhead scrolls the view so the playhead stays inside it.
func followPlayhead(viewStart, playhead, visible float64) float64 {
	if playhead >= viewStart && playhead < viewStart+visible*0.9 {
		return viewStart
	}
	return math.Max(0, playhead-visible*0.1)
}
