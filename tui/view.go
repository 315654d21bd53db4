// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/clipforge-cli/clipforge/color"
	"github.com/clipforge-cli/clipforge/icon"
	"github.com/clipforge-cli/clipforge/key"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/clipforge-cli/clipforge/timeline"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/muesli/reflow/wrap"
	"github.com/spf13/viper"
)

var (
	listExtraPaddingStyle = lipgloss.NewStyle().Padding(1, 2, 1, 0)
	paddingStyle          = lipgloss.NewStyle().Padding(1, 2)
)

// trackLabelWidth is the gutter in front of the ruler and the track rows.
const trackLabelWidth = 9

// defaultColumns is used until the first window size arrives.
const defaultColumns = 80

func (b *statefulBubble) View() string {
	var output string

	switch b.state {
	case editState:
		output = b.viewEdit()
	case pickState:
		output = b.viewPick()
	case errorState:
		output = b.viewError()
	default:
		output = "Unknown state"
	}

	return b.notifier.View(output)
}

func (b *statefulBubble) trackColumns() int {
	width := b.width
	if width <= 0 {
		width = defaultColumns
	}
	return width - trackLabelWidth
}

func (b *statefulBubble) viewEdit() string {
	cols := b.trackColumns()
	zoom := b.timeline.Zoom()
	perSecond := columnsPerSecond(zoom)
	gutter := strings.Repeat(" ", trackLabelWidth)

	lines := []string{
		b.viewHeader(),
		"",
		gutter + style.Faint(rulerLine(b.viewStart, cols, zoom)),
		gutter + style.Fg(style.PlayheadColor)(playheadLine(b.viewStart, b.timeline.Playhead(), cols, perSecond, icon.Get(icon.Playhead))),
	}

	for _, track := range timeline.Tracks {
		segments := layoutTrack(b.timeline.TrackClips(track), b.viewStart, cols, perSecond)
		label := style.Truncate(trackLabelWidth)(util.Capitalize(track.String()))
		lines = append(lines, label+renderTrack(track, segments, cols, b.selected))
	}

	lines = append(lines, "", b.viewSelection(), b.viewPreview())
	if overlaps := b.timeline.Overlaps(); len(overlaps) > 0 {
		lines = append(lines, style.Fg(style.WarningColor)(fmt.Sprintf("%s overlapping clips", icon.Get(icon.Fail))))
	}

	return b.renderLines(viper.GetBool(key.TUIShowHelp), lines)
}

func (b *statefulBubble) viewHeader() string {
	stateIcon := icon.Get(icon.Pause)
	if b.clock.IsPlaying() {
		stateIcon = icon.Get(icon.Play)
	}

	return fmt.Sprintf(
		"%s %s %s / %s %s",
		style.Title(b.projectName()),
		stateIcon,
		style.Bold(util.FormatTimestamp(b.timeline.Playhead())),
		util.FormatDuration(b.timeline.TotalDuration()),
		style.Faint(fmt.Sprintf("%d px/s", b.timeline.Zoom())),
	)
}

func (b *statefulBubble) viewSelection() string {
	clip, ok := b.selectedClip().Get()
	if !ok {
		return style.Faint("No clip selected, press a to add media")
	}

	return fmt.Sprintf(
		"%s %s %s - %s %s",
		style.Fg(style.AccentColor)(clipLabel(clip)),
		style.Faint(clip.Track.String()),
		util.FormatDuration(clip.Start),
		util.FormatDuration(clip.End()),
		style.Faint(fmt.Sprintf("(in %.1fs, %.1fs long)", clip.InPoint, clip.Duration)),
	)
}

func (b *statefulBubble) viewPreview() string {
	status := b.sync.Status()

	active, ok := status.Active.Get()
	switch {
	case status.Err != nil:
		return style.Fg(style.ErrorColor)(icon.Get(icon.Fail) + " " + status.Err.Error())
	case !ok:
		return style.Faint("Preview: gap")
	case status.Loading:
		return style.Fg(style.WarningColor)(fmt.Sprintf("%s Loading %s", icon.Get(icon.Progress), clipLabel(active)))
	default:
		return fmt.Sprintf("Preview: %s @ %.2fs", style.Fg(color.Purple)(clipLabel(active)), status.LocalTime)
	}
}

func (b *statefulBubble) viewPick() string {
	return listExtraPaddingStyle.Render(b.pickerC.View())
}

func (b *statefulBubble) viewError() string {
	errorStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	errorBody := errorStyle.Render(fmt.Sprintf("Editor Failure: %v", b.lastError))
	errorMsg := wrap.String(errorBody, b.width)
	return b.renderLines(
		true,
		append([]string{
			style.ErrorTitle("Error"),
			"",
			icon.Get(icon.Fail) + " An error occurred:",
			"",
		},
			errorMsg,
		),
	)
}

func (b *statefulBubble) renderLines(addHelp bool, lines []string) string {
	h := len(lines)
	l := strings.Join(lines, "\n")
	if addHelp {
		if b.height > h {
			l += strings.Repeat("\n", b.height-h)
		}
		l += b.helpC.View(b.keymap)
	}

	return paddingStyle.Render(l)
}
