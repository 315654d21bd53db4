package preview

import (
	"context"
	"fmt"
	"math"

	"github.com/clipforge-cli/clipforge/log"
	"github.com/clipforge-cli/clipforge/media"
	"github.com/clipforge-cli/clipforge/playback"
	"github.com/clipforge-cli/clipforge/timeline"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Default drift tolerances, in seconds, before the player is re-seeked.
const (
	DefaultTolerancePlaying = 0.25
	DefaultTolerancePaused  = 0.02
)

// Player is the presentation surface the synchronizer drives.
type Player interface {
	// SetSource loads url paused at start seconds.
	SetSource(url string, start float64) error
	Play() error
	Pause() error
	Position() (float64, error)
	SetPosition(seconds float64) error
}

// SourceResolver turns a media path into something Player.SetSource accepts.
// It may block and must honour ctx.
type SourceResolver interface {
	ResolvePlayableSource(ctx context.Context, path string) (string, error)
}

// Dispatcher runs fn on the control thread. Resolution results are handed back
// through it so that all state stays single threaded.
type Dispatcher func(fn func())

// Status is the outcome of the latest pass.
type Status struct {
	Active    mo.Option[timeline.Clip]
	Next      mo.Option[timeline.Clip]
	LocalTime float64
	// Loading is set while the active clip's source is still being resolved.
	Loading bool
	Err     error
}

type request struct {
	mediaID string
	cancel  context.CancelFunc
	// active marks a request the latest pass is waiting on to show a clip,
	// as opposed to a preload.
	active bool
}

// Synchronizer re-derives the active clip on every playhead, clip or playing
// flag change and commands the player to match.
type Synchronizer struct {
	timeline *timeline.Timeline
	clock    *playback.Clock
	catalog  media.Catalog
	sources  SourceResolver
	player   Player
	dispatch Dispatcher

	tolerancePlaying float64
	tolerancePaused  float64

	cache    map[string]string
	failed   map[string]error
	inflight map[string]*request
	activeID string
	status   Status
	closed   bool

	unsubscribe []func()
}

// Option customizes a Synchronizer.
type Option func(*Synchronizer)

// WithTolerances overrides the drift tolerances. Zero re-seeks on any drift;
// negative values keep the default.
func WithTolerances(playing, paused float64) Option {
	return func(s *Synchronizer) {
		if playing >= 0 {
			s.tolerancePlaying = playing
		}
		if paused >= 0 {
			s.tolerancePaused = paused
		}
	}
}

// New wires a synchronizer to its state sources and runs a first pass.
func New(
	tl *timeline.Timeline,
	clock *playback.Clock,
	catalog media.Catalog,
	sources SourceResolver,
	player Player,
	dispatch Dispatcher,
	options ...Option,
) *Synchronizer {
	s := &Synchronizer{
		timeline:         tl,
		clock:            clock,
		catalog:          catalog,
		sources:          sources,
		player:           player,
		dispatch:         dispatch,
		tolerancePlaying: DefaultTolerancePlaying,
		tolerancePaused:  DefaultTolerancePaused,
		cache:            make(map[string]string),
		failed:           make(map[string]error),
		inflight:         make(map[string]*request),
	}
	for _, option := range options {
		option(s)
	}

	s.unsubscribe = append(s.unsubscribe,
		tl.Subscribe(func(event timeline.Event) {
			switch event {
			case timeline.ClipsChanged:
				clear(s.failed)
				s.Sync()
			case timeline.PlayheadChanged:
				s.Sync()
			}
		}),
		clock.Subscribe(func(bool) { s.Sync() }),
	)

	s.Sync()
	return s
}

// Status returns the outcome of the latest pass.
func (s *Synchronizer) Status() Status {
	return s.status
}

// Close detaches from the state sources and abandons every pending resolution.
func (s *Synchronizer) Close() {
	if s.closed {
		return
	}
	s.closed = true
	for _, unsubscribe := range s.unsubscribe {
		unsubscribe()
	}
	for id := range s.inflight {
		s.abandon(id)
	}
}

// Sync runs one resolution pass. It is called automatically on every relevant
// change and only needs to be invoked by hand after the catalog changes.
func (s *Synchronizer) Sync() {
	if s.closed {
		return
	}

	playhead := s.timeline.Playhead()
	active, ok := ActiveClip(s.timeline, playhead).Get()
	if !ok {
		s.abandonAllBut()
		if s.activeID != "" {
			s.command("pause", s.player.Pause())
			s.activeID = ""
		}
		s.status = Status{}
		return
	}

	next := NextClip(s.timeline, active)
	wanted := []string{active.MediaID}
	if n, ok := next.Get(); ok {
		wanted = append(wanted, n.MediaID)
	}
	s.abandonAllBut(wanted...)

	entry := s.catalog.Resolve(active.MediaID)
	s.status = Status{
		Active:    mo.Some(active),
		Next:      next,
		LocalTime: LocalTime(active, playhead, entry.OrEmpty().Duration()),
	}

	url, err := s.source(active.MediaID, entry, true)
	switch {
	case err != nil:
		s.status.Err = err
		s.hold()
		return
	case url == "":
		s.status.Loading = true
		s.hold()
		return
	}

	s.apply(active, url)

	if n, ok := next.Get(); ok {
		_, _ = s.source(n.MediaID, s.catalog.Resolve(n.MediaID), false)
	}
}

// source returns the cached URL of mediaID, or starts resolving it and returns
// an empty URL. Failures are remembered until the clips change.
func (s *Synchronizer) source(mediaID string, entry mo.Option[media.Media], active bool) (string, error) {
	if url, ok := s.cache[mediaID]; ok {
		return url, nil
	}
	if err, ok := s.failed[mediaID]; ok {
		return "", err
	}
	if r, ok := s.inflight[mediaID]; ok {
		r.active = r.active || active
		return "", nil
	}

	m, ok := entry.Get()
	if !ok {
		err := fmt.Errorf("%w: %s", media.ErrNotFound, mediaID)
		s.fail(mediaID, err, active)
		return "", err
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &request{mediaID: mediaID, cancel: cancel, active: active}
	s.inflight[mediaID] = r

	go func() {
		url, err := s.sources.ResolvePlayableSource(ctx, m.Path)
		s.dispatch(func() {
			s.finish(r, url, err)
		})
	}()

	return "", nil
}

// finish runs on the control thread once a resolution returns.
func (s *Synchronizer) finish(r *request, url string, err error) {
	if s.closed || s.inflight[r.mediaID] != r {
		log.WithField("media", r.mediaID).Debugf("discarding stale source resolution")
		return
	}
	delete(s.inflight, r.mediaID)
	r.cancel()

	if err != nil {
		s.fail(r.mediaID, err, r.active)
		if r.active {
			s.status.Err = err
			s.status.Loading = false
			s.hold()
		}
		return
	}

	s.cache[r.mediaID] = url
	if r.active {
		s.Sync()
	}
}

func (s *Synchronizer) fail(mediaID string, err error, active bool) {
	s.failed[mediaID] = err
	if active {
		log.WithField("media", mediaID).Warnf("failed to load clip: %s", err)
	} else {
		log.WithField("media", mediaID).Debugf("preload failed: %s", err)
	}
}

// abandonAllBut cancels every pending resolution whose media is not in keep.
func (s *Synchronizer) abandonAllBut(keep ...string) {
	for id, r := range s.inflight {
		if lo.Contains(keep, id) {
			r.active = len(keep) > 0 && keep[0] == id
			continue
		}
		s.abandon(id)
	}
}

func (s *Synchronizer) abandon(mediaID string) {
	if r, ok := s.inflight[mediaID]; ok {
		r.cancel()
		delete(s.inflight, mediaID)
	}
}

// apply points the player at active and corrects its position and state.
func (s *Synchronizer) apply(active timeline.Clip, url string) {
	target := s.status.LocalTime
	if s.activeID != active.ID {
		if err := s.player.SetSource(url, target); err != nil {
			s.command("load", err)
			s.status.Err = err
			s.hold()
			return
		}
		s.activeID = active.ID
	} else {
		tolerance := lo.Ternary(s.clock.IsPlaying(), s.tolerancePlaying, s.tolerancePaused)
		if position, err := s.player.Position(); err != nil || math.Abs(position-target) > tolerance {
			s.command("seek", s.player.SetPosition(target))
		}
	}

	if s.clock.IsPlaying() {
		s.command("play", s.player.Play())
	} else {
		s.command("pause", s.player.Pause())
	}
}

// hold keeps the player paused on its last frame while the active clip has
// nothing to show.
func (s *Synchronizer) hold() {
	if s.activeID != "" {
		s.command("pause", s.player.Pause())
	}
}

func (s *Synchronizer) command(name string, err error) {
	if err != nil {
		log.WithField("command", name).Warnf("player: %s", err)
	}
}
