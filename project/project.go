// Package project saves and loads timelines as JSON project files.
package project

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/clipforge-cli/clipforge/constant"
	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/timeline"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/clipforge-cli/clipforge/where"
	"github.com/invopop/jsonschema"
)

// FormatVersion is written into every saved file. Files with a newer version are refused.
const FormatVersion = 1

// File is the on-disk form of a project.
type File struct {
	Version   int             `json:"version" jsonschema:"description=Project format version."`
	Name      string          `json:"name" jsonschema:"description=Display name of the project."`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Clips     []timeline.Clip `json:"clips" jsonschema:"description=Every clip on every track."`
	Playhead  float64         `json:"playhead" jsonschema:"description=Last playhead position in seconds."`
	Zoom      int             `json:"zoom" jsonschema:"description=Timeline zoom in pixels per second."`
}

// New returns an empty project called name.
func New(name string) *File {
	now := time.Now()
	return &File{
		Version:   FormatVersion,
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Zoom:      constant.DefaultZoom,
	}
}

// Path resolves name to a file path. Names that already look like paths are
// kept, bare names are placed in the projects directory.
func Path(name string) string {
	if strings.ContainsAny(name, `/\`) || filepath.Ext(name) == constant.ProjectExtension {
		return name
	}
	return filepath.Join(where.Projects(), util.SanitizeFilename(name)+constant.ProjectExtension)
}

// Load reads a project file.
func Load(path string) (*File, error) {
	data, err := filesystem.API().ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read project: %w", err)
	}

	var f File
	if err := sonic.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode project %s: %w", path, err)
	}
	if f.Version > FormatVersion {
		return nil, fmt.Errorf("project %s has format version %d, this build supports up to %d", path, f.Version, FormatVersion)
	}
	if f.Name == "" {
		f.Name = util.FileStem(path)
	}

	return &f, nil
}

// Save writes f to path through a temporary file so a crash never leaves half a project.
func (f *File) Save(path string) error {
	f.Version = FormatVersion
	f.UpdatedAt = time.Now()
	if f.CreatedAt.IsZero() {
		f.CreatedAt = f.UpdatedAt
	}

	data, err := sonic.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode project: %w", err)
	}

	fs := filesystem.API()
	if err := fs.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	tmp := path + ".tmp"
	if err := fs.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write project: %w", err)
	}
	return fs.Rename(tmp, path)
}

// Capture copies the timeline state into f.
func (f *File) Capture(tl *timeline.Timeline) {
	state := tl.Snapshot()
	f.Clips = state.Clips
	f.Playhead = state.Playhead
	f.Zoom = state.Zoom
}

// Apply replaces the timeline contents with f and reports how many clips were
// unusable and dropped.
func (f *File) Apply(tl *timeline.Timeline) int {
	return tl.Restore(timeline.State{
		Clips:    f.Clips,
		Playhead: f.Playhead,
		Zoom:     f.Zoom,
	})
}

// Timeline builds a new timeline holding f.
func (f *File) Timeline(options ...timeline.Option) (*timeline.Timeline, int) {
	tl := timeline.New(options...)
	dropped := f.Apply(tl)
	return tl, dropped
}

// Schema returns the JSON schema of the project format.
func Schema() *jsonschema.Schema {
	reflector := new(jsonschema.Reflector)
	reflector.Anonymous = true
	return reflector.Reflect(&File{})
}
