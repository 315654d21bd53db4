package project

import (
	"path/filepath"
	"sort"
	"time"

	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

// MaxRecent bounds the recently opened list.
const MaxRecent = 10

type recentRecord struct {
	Path   string    `json:"path"`
	Opened time.Time `json:"opened"`
	Count  int       `json:"count"`
}

var recents = gache.New[map[string]*recentRecord](
	&gache.Options{
		Path:       where.Recent(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Remember records that the project at path was opened.
func Remember(path string) error {
	if absolute, err := filepath.Abs(path); err == nil {
		path = absolute
	}

	cached, expired, err := recents.Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*recentRecord)
	}

	record, ok := cached[path]
	if !ok {
		record = &recentRecord{Path: path}
		cached[path] = record
	}
	record.Count++
	record.Opened = time.Now()

	if len(cached) > MaxRecent {
		oldest := lo.MinBy(lo.Values(cached), func(a, b *recentRecord) bool {
			return a.Opened.Before(b.Opened)
		})
		delete(cached, oldest.Path)
	}

	return recents.Set(cached)
}

// Recent returns remembered project paths, most recently opened first.
// Paths that no longer exist are skipped.
func Recent() []string {
	cached, expired, err := recents.Get()
	if err != nil || expired || cached == nil {
		return nil
	}

	records := lo.Filter(lo.Values(cached), func(r *recentRecord, _ int) bool {
		exists, _ := filesystem.API().Exists(r.Path)
		return exists
	})
	sort.Slice(records, func(i, j int) bool {
		return records[i].Opened.After(records[j].Opened)
	})

	return lo.Map(records, func(r *recentRecord, _ int) string { return r.Path })
}

// Forget clears the recently opened list.
func Forget() error {
	return recents.Set(make(map[string]*recentRecord))
}
