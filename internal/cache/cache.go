// Package cache provides a filesystem backed store for probe results keyed by file identity.
package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/where"
	"github.com/spf13/afero"
)

// TTL is how long an entry stays valid after it was written.
const TTL = 30 * 24 * time.Hour

// Dir is where probe results are stored.
func Dir() string {
	dir := filepath.Join(where.Cache(), "probe")
	_ = filesystem.API().MkdirAll(dir, 0o755)
	return dir
}

// Key derives a deterministic entry name from parts.
func Key(parts ...string) string {
	hash := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(hash[:])
}

// Read decodes the entry key into target. It reports false for missing,
// expired or undecodable entries.
func Read(key string, target any) bool {
	path := filepath.Join(Dir(), key)
	fs := filesystem.API()

	info, err := fs.Stat(path)
	if err != nil || time.Since(info.ModTime()) > TTL {
		return false
	}

	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return false
	}
	return sonic.Unmarshal(data, target) == nil
}

// Write stores data under key through a temporary file so readers never see a partial entry.
func Write(key string, data any) error {
	encoded, err := sonic.Marshal(data)
	if err != nil {
		return err
	}

	fs := filesystem.API()
	path := filepath.Join(Dir(), key)
	tmpPath := path + ".tmp"

	if err := afero.WriteFile(fs, tmpPath, encoded, 0o644); err != nil {
		return err
	}
	return fs.Rename(tmpPath, path)
}

// CollectGarbage removes expired entries.
func CollectGarbage() {
	fs := filesystem.API()
	_ = afero.Walk(fs, Dir(), func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		if time.Since(info.ModTime()) > TTL {
			_ = fs.Remove(path)
		}
		return nil
	})
}
