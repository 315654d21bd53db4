package media

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/clipforge-cli/clipforge/log"
	"github.com/samber/lo"
)

// DefaultConcurrency bounds how many files are probed at once.
const DefaultConcurrency = 4

// Importer probes files and adds them to a library.
type Importer struct {
	Prober      Prober
	Library     *Library
	Concurrency int
}

// Import probes every unique path and adds the ones that succeed. The returned
// error joins the failures; a non-nil error does not mean nothing was imported.
func (i *Importer) Import(ctx context.Context, paths []string) ([]Media, error) {
	paths = DedupePaths(paths)
	if len(paths) == 0 {
		return nil, nil
	}

	type result struct {
		media Media
		err   error
	}

	results := make([]result, len(paths))
	limit := make(chan struct{}, lo.Ternary(i.Concurrency > 0, i.Concurrency, DefaultConcurrency))

	var wg sync.WaitGroup
	for index, path := range paths {
		wg.Add(1)
		go func(index int, path string) {
			defer wg.Done()

			select {
			case limit <- struct{}{}:
				defer func() { <-limit }()
			case <-ctx.Done():
				results[index].err = fmt.Errorf("%s: %w", path, ctx.Err())
				return
			}

			log.Infof("fetching metadata for %s", path)
			metadata, err := i.Prober.Probe(ctx, path)
			if err != nil {
				log.Warnf("metadata lookup failed for %s: %s", path, err)
				results[index].err = fmt.Errorf("%s: %w", path, err)
				return
			}
			results[index].media = New(path, metadata)
		}(index, path)
	}
	wg.Wait()

	var (
		imported []Media
		errs     []error
	)
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, r.err)
			continue
		}
		imported = append(imported, r.media)
	}

	if err := i.Library.Add(imported...); err != nil {
		return nil, err
	}

	log.Infof("imported %d of %d files", len(imported), len(paths))
	return imported, errors.Join(errs...)
}
