// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/bubbles/help"
	bubblesKey "github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/clipforge-cli/clipforge/internal/ui"
	"github.com/clipforge-cli/clipforge/key"
	"github.com/clipforge-cli/clipforge/log"
	"github.com/clipforge-cli/clipforge/media"
	"github.com/clipforge-cli/clipforge/playback"
	"github.com/clipforge-cli/clipforge/player"
	"github.com/clipforge-cli/clipforge/preview"
	"github.com/clipforge-cli/clipforge/project"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/clipforge-cli/clipforge/timeline"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// undoDepth bounds the number of edits that can be undone.
const undoDepth = 100

// statefulBubble encapsulates the comprehensive application state, including component models and workflow tracking.
type statefulBubble struct {
	state         state
	statesHistory util.Stack[state]

	keymap *statefulKeymap

	// components
	helpC   help.Model
	pickerC list.Model

	timeline  *timeline.Timeline
	clock     *playback.Clock
	sync      *preview.Synchronizer
	scheduler *frameScheduler
	library   *media.Library
	player    player.Player

	project     *project.File
	projectPath string

	selected    string
	undo        util.Stack[timeline.State]
	dirty       bool
	confirmQuit bool
	viewStart   float64

	dispatched chan func()
	done       chan struct{}
	closed     bool

	lastError error

	width, height int
	notifier      *ui.Model

	options *Options
}

// raiseError dispatches a terminal error and transitions the application to the failure view.
func (b *statefulBubble) raiseError(err error) {
	b.lastError = err
	b.newState(errorState)
}

// setState performs a synchronous transition of both the application workflow and its associated keymap.
func (b *statefulBubble) setState(s state) {
	b.state = s
	b.keymap.setState(s)
}

// newState transitions to s, recording the previous state in the navigation history.
func (b *statefulBubble) newState(s state) {
	if b.state == s {
		return
	}

	if b.state != 0 {
		b.statesHistory.Push(b.state)
	}
	b.setState(s)
}

// previousState restores the application to its immediate predecessor in the navigation stack.
func (b *statefulBubble) previousState() {
	if s, ok := b.statesHistory.Pop(); ok {
		b.setState(s)
	}
}

// resize propagates terminal dimension changes to all child component models.
func (b *statefulBubble) resize(width, height int) {
	x, y := paddingStyle.GetFrameSize()
	xx, yy := listExtraPaddingStyle.GetFrameSize()

	listWidth := width - xx
	listHeight := height - yy

	b.pickerC.SetSize(listWidth, listHeight)
	b.pickerC.Help.Width = listWidth

	b.width = width - x
	b.height = height - y
	b.helpC.Width = b.width
}

// newBubble wires the editing engine, the clock and the preview synchronizer
// around file.
func newBubble(options *Options, file *project.File, path string, library *media.Library, p player.Player) *statefulBubble {
	keymap := newStatefulKeymap()
	bubble := &statefulBubble{
		statesHistory: util.Stack[state]{},
		keymap:        keymap,
		library:       library,
		player:        p,
		project:       file,
		projectPath:   path,
		undo:          util.Stack[timeline.State]{Limit: undoDepth},
		scheduler:     newFrameScheduler(),
		dispatched:    make(chan func()),
		done:          make(chan struct{}),
		notifier:      &ui.Model{},
		options:       options,
	}

	tl, dropped := file.Timeline(timeline.WithZoom(viper.GetInt(key.TimelineDefaultZoom)))
	if dropped > 0 {
		log.WithField("project", file.Name).Warnf("dropped %s while loading", util.Quantify(dropped, "unusable clip", "unusable clips"))
	}
	bubble.timeline = tl
	bubble.clock = playback.New(tl, bubble.scheduler, playback.WithFPS(viper.GetInt(key.PlaybackFPS)))
	bubble.sync = preview.New(
		tl,
		bubble.clock,
		library,
		media.LocalSources{},
		p,
		bubble.dispatch,
		preview.WithTolerances(
			viper.GetFloat64(key.PreviewTolerancePlaying),
			viper.GetFloat64(key.PreviewTolerancePaused),
		),
	)

	if first, ok := lo.First(tl.Clips()); ok {
		bubble.selected = first.ID
	}

	delegate := list.NewDefaultDelegate()
	delegate.Styles.SelectedTitle = lipgloss.NewStyle().
		Border(lipgloss.ThickBorder(), false, false, false, true).
		BorderForeground(style.AccentColor).
		Foreground(style.AccentColor).
		Padding(0, 0, 0, 1)
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.Foreground(lipgloss.Color("7"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedTitle

	bubble.pickerC = list.New([]list.Item{}, delegate, 0, 0)
	bubble.pickerC.KeyMap = keymap.forList()
	bubble.pickerC.AdditionalShortHelpKeys = keymap.ShortHelp
	bubble.pickerC.AdditionalFullHelpKeys = func() []bubblesKey.Binding {
		return keymap.FullHelp()[0]
	}
	bubble.pickerC.Title = "Media Library"
	bubble.pickerC.Styles.NoItems = paddingStyle
	bubble.pickerC.Filter = fuzzyFilter
	bubble.pickerC.StatusMessageLifetime = time.Hour * 999
	bubble.pickerC.SetShowPagination(false)

	bubble.helpC = help.New()
	bubble.helpC.ShowAll = false

	bubble.setState(editState)
	return bubble
}

// fuzzyFilter ranks picker items with the same matcher as `library find`.
func fuzzyFilter(term string, targets []string) []list.Rank {
	ranks := fuzzy.RankFindNormalizedFold(term, targets)
	sort.Stable(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) list.Rank {
		return list.Rank{Index: r.OriginalIndex}
	})
}

// shutdown stops background work. It is safe to call more than once.
func (b *statefulBubble) shutdown() {
	if b.closed {
		return
	}
	b.closed = true
	b.sync.Close()
	b.clock.Close()
	close(b.done)
}

func (b *statefulBubble) projectName() string {
	name := b.project.Name
	if b.dirty {
		name += "*"
	}
	return name
}

func (b *statefulBubble) savePath() string {
	if b.projectPath != "" {
		return b.projectPath
	}
	return project.Path(b.project.Name)
}

func (b *statefulBubble) saveProject() tea.Cmd {
	path := b.savePath()
	b.project.Capture(b.timeline)
	if err := b.project.Save(path); err != nil {
		b.raiseError(fmt.Errorf("save %s: %w", path, err))
		return nil
	}
	if err := project.Remember(path); err != nil {
		log.Warnf("could not record recent project: %s", err)
	}

	b.projectPath = path
	b.dirty = false
	log.WithField("path", path).Infof("project saved")
	return ui.Notify("Saved " + path)
}
