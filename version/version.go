// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/network"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/clipforge-cli/clipforge/where"
	"github.com/metafates/gache"
)

// ReleasesURL is the page listing published releases.
const ReleasesURL = "https://github.com/clipforge-cli/clipforge/releases"

const latestReleaseAPI = "https://api.github.com/repos/clipforge-cli/clipforge/releases/latest"

var versionCacher = gache.New[string](&gache.Options{
	Path:       filepath.Join(where.Cache(), "version.json"),
	Lifetime:   time.Hour * 24 * 2,
	FileSystem: &filesystem.GacheFs{},
})

// Latest returns the most recent published version, caching it for two days.
func Latest() (string, error) {
	ver, expired, err := versionCacher.Get()
	if err != nil {
		return "", err
	}

	if !expired && ver != "" {
		return ver, nil
	}

	resp, err := network.Client.Get(latestReleaseAPI)
	if err != nil {
		return "", err
	}
	defer util.Ignore(resp.Body.Close)

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("release check: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	version, err := parseRelease(body)
	if err != nil {
		return "", err
	}

	_ = versionCacher.Set(version)
	return version, nil
}

// parseRelease extracts the version from a GitHub release payload.
func parseRelease(body []byte) (string, error) {
	var release struct {
		TagName string `json:"tag_name"`
	}
	if err := sonic.Unmarshal(body, &release); err != nil {
		return "", fmt.Errorf("decode release: %w", err)
	}

	version := strings.TrimPrefix(release.TagName, "v")
	if version == "" {
		return "", errors.New("empty tag name")
	}
	return version, nil
}
