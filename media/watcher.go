package media

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"github.com/clipforge-cli/clipforge/log"
	"github.com/fsnotify/fsnotify"
	"github.com/samber/lo"
)

// SettleDelay is how long a file must stay unmodified before it is imported.
const SettleDelay = 750 * time.Millisecond

// Watcher imports media files as they appear in a directory.
type Watcher struct {
	Importer   *Importer
	Extensions []string
	// OnImport, if set, is called after each batch with the imported entries.
	OnImport func([]Media, error)
}

// Matches reports whether path has one of the watched extensions.
func (w *Watcher) Matches(path string) bool {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return ext != "" && lo.ContainsBy(w.Extensions, func(e string) bool {
		return strings.EqualFold(strings.TrimPrefix(e, "."), ext)
	})
}

// Watch blocks until ctx is done, importing matching files created or
// rewritten in dir once they settle.
func (w *Watcher) Watch(ctx context.Context, dir string) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(dir); err != nil {
		return err
	}
	log.Infof("watching %s for %s", dir, strings.Join(w.Extensions, ", "))

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(SettleDelay / 3)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) != 0 && w.Matches(event.Name) {
				pending[event.Name] = time.Now()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("watch error: %s", err)

		case now := <-ticker.C:
			var ready []string
			for path, touched := range pending {
				if now.Sub(touched) >= SettleDelay {
					ready = append(ready, path)
					delete(pending, path)
				}
			}
			if len(ready) == 0 {
				continue
			}

			imported, err := w.Importer.Import(ctx, ready)
			if w.OnImport != nil {
				w.OnImport(imported, err)
			}
		}
	}
}
