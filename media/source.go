package media

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"

	"github.com/clipforge-cli/clipforge/filesystem"
)

// LocalSources turns catalog paths into URLs a player can load.
type LocalSources struct{}

// ResolvePlayableSource checks that path is a readable file and returns its file URL.
func (LocalSources) ResolvePlayableSource(ctx context.Context, path string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if path == "" {
		return "", errors.New("a valid file path is required")
	}

	absolute, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	if err := filesystem.Readable(absolute); err != nil {
		return "", err
	}

	return (&url.URL{Scheme: "file", Path: filepath.ToSlash(absolute)}).String(), nil
}
