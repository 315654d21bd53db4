package media

import (
	"context"
	"path/filepath"
	"strconv"
	"time"

	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/internal/cache"
	"github.com/clipforge-cli/clipforge/log"
)

// CachedProber remembers probe results of files whose size and modification time are unchanged.
type CachedProber struct {
	Prober Prober
}

func (c CachedProber) Probe(ctx context.Context, path string) (Metadata, error) {
	absolute, err := filepath.Abs(path)
	if err != nil {
		return c.Prober.Probe(ctx, path)
	}
	info, err := filesystem.API().Stat(absolute)
	if err != nil {
		return c.Prober.Probe(ctx, path)
	}

	key := cache.Key(absolute, strconv.FormatInt(info.Size(), 10), info.ModTime().UTC().Format(time.RFC3339Nano))

	var metadata Metadata
	if cache.Read(key, &metadata) {
		log.WithField("path", absolute).Debugf("probe cache hit")
		return metadata, nil
	}

	metadata, err = c.Prober.Probe(ctx, path)
	if err != nil {
		return metadata, err
	}
	if err := cache.Write(key, metadata); err != nil {
		log.Debugf("could not cache probe of %s: %s", absolute, err)
	}
	return metadata, nil
}
