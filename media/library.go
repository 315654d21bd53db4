package media

import (
	"fmt"
	"sort"
	"sync"

	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
)

// Library is the persistent media catalog. It is safe for concurrent use so a
// folder watcher can add entries while the editor resolves them.
type Library struct {
	mu     sync.RWMutex
	items  []Media
	loaded bool
	cacher *gache.Cache[[]Media]
}

// NewLibrary returns a library persisted at path. Nothing is read until first use.
func NewLibrary(path string) *Library {
	return &Library{
		cacher: gache.New[[]Media](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (l *Library) load() error {
	if l.loaded {
		return nil
	}

	cached, expired, err := l.cacher.Get()
	if err != nil {
		return fmt.Errorf("load media library: %w", err)
	}
	if !expired {
		l.items = cached
	}
	sortNewestFirst(l.items)
	l.loaded = true
	return nil
}

func (l *Library) save() error {
	if err := l.cacher.Set(l.items); err != nil {
		return fmt.Errorf("save media library: %w", err)
	}
	return nil
}

// Add merges items into the library by path; an incoming entry replaces an
// existing entry with the same path.
func (l *Library) Add(items ...Media) error {
	if len(items) == 0 {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.load(); err != nil {
		return err
	}

	incoming := lo.KeyBy(items, func(m Media) string { return m.Path })
	kept := lo.Reject(l.items, func(m Media, _ int) bool {
		_, replaced := incoming[m.Path]
		return replaced
	})
	l.items = append(kept, lo.Values(incoming)...)
	sortNewestFirst(l.items)

	return l.save()
}

// Remove drops the entry with id. Removing an unknown id is not an error.
func (l *Library) Remove(id string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.load(); err != nil {
		return err
	}

	before := len(l.items)
	l.items = lo.Reject(l.items, func(m Media, _ int) bool { return m.ID == id })
	if len(l.items) == before {
		return nil
	}
	return l.save()
}

// Clear empties the library.
func (l *Library) Clear() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.items = nil
	l.loaded = true
	return l.save()
}

// List returns every entry, newest first.
func (l *Library) List() ([]Media, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.load(); err != nil {
		return nil, err
	}
	return append([]Media(nil), l.items...), nil
}

// Get looks up id, reporting ErrNotFound when it is missing.
func (l *Library) Get(id string) (Media, error) {
	if m, ok := l.Resolve(id).Get(); ok {
		return m, nil
	}
	return Media{}, fmt.Errorf("%w: %s", ErrNotFound, id)
}

// Resolve implements Catalog. Load errors resolve to nothing.
func (l *Library) Resolve(id string) mo.Option[Media] {
	l.mu.Lock()
	defer l.mu.Unlock()

	if err := l.load(); err != nil {
		return mo.None[Media]()
	}
	if m, ok := lo.Find(l.items, func(m Media) bool { return m.ID == id }); ok {
		return mo.Some(m)
	}
	return mo.None[Media]()
}

// Find ranks entries whose name fuzzily matches query, best match first.
// An empty query returns the whole library.
func (l *Library) Find(query string) ([]Media, error) {
	items, err := l.List()
	if err != nil || query == "" {
		return items, err
	}

	names := lo.Map(items, func(m Media, _ int) string { return m.Name })
	ranks := fuzzy.RankFindNormalizedFold(query, names)
	sort.Stable(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) Media {
		return items[r.OriginalIndex]
	}), nil
}

func sortNewestFirst(items []Media) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
