// Package config provides centralized management for application settings, defaults, and the Viper-based configuration engine.
package config

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"text/template"

	"github.com/clipforge-cli/clipforge/color"
	"github.com/clipforge-cli/clipforge/constant"
	"github.com/clipforge-cli/clipforge/key"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

// Field represents a configuration field definition.
type Field struct {
	Key         string
	Value       any
	Description string
}

// Pretty returns a colored string representation of the field for display.
func (f *Field) Pretty() string {
	var b strings.Builder
	lo.Must0(prettyTemplate.Execute(&b, f))
	return b.String()
}

// Env returns the environment variable name for this field.
func (f *Field) Env() string {
	env := strings.ToUpper(EnvKeyReplacer.Replace(f.Key))
	prefix := strings.ToUpper(constant.Clipforge + "_")
	if strings.HasPrefix(env, prefix) {
		return env
	}
	return prefix + env
}

// MarshalJSON customizes JSON output to include current and default values.
func (f *Field) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key         string `json:"key"`
		Value       any    `json:"value"`
		Default     any    `json:"default"`
		Description string `json:"description"`
		Type        string `json:"type"`
	}{
		Key:         f.Key,
		Value:       viper.Get(f.Key),
		Default:     f.Value,
		Description: f.Description,
		Type:        f.typeName(),
	})
}

// typeName returns the string representation of the field's underlying value type.
func (f *Field) typeName() string {
	switch f.Value.(type) {
	case string:
		return "string"
	case int:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string:
		return "[]string"
	case []int:
		return "[]int"
	default:
		return "unknown"
	}
}

// Default holds the map of all configuration fields.
var Default = make(map[string]Field)

// EnvExposed holds keys that are bound to environment variables.
var EnvExposed []string

func init() {
	// register validates and adds a new configuration field to the global registry.
	register := func(k string, v any, desc string) {
		if _, exists := Default[k]; exists {
			panic("Duplicate config key: " + k)
		}
		f := Field{Key: k, Value: v, Description: desc}
		Default[k] = f
		EnvExposed = append(EnvExposed, k)
	}

	register(key.PlaybackFPS, 30, "Playhead updates per second while playing.\nHigher values cost more redraws")
	register(key.PlaybackSeekStep, 1.0, "Seconds moved by a single seek key press")
	register(key.PreviewTolerancePlaying, 0.25, "Drift in seconds tolerated between player and playhead while playing")
	register(key.PreviewTolerancePaused, 0.02, "Drift in seconds tolerated between player and playhead while paused")
	register(key.TimelineDefaultZoom, constant.DefaultZoom, fmt.Sprintf("Initial timeline zoom in pixels per second (%d-%d)", constant.MinZoom, constant.MaxZoom))
	register(key.TimelineZoomStep, 20, "Zoom change per key press in pixels per second")
	register(key.TimelineNudgeStep, 1.0, "Seconds a clip is moved by a single nudge")
	register(key.TimelineTrimStep, 0.5, "Seconds a trim handle is moved by a single key press")
	register(key.Player, "mpv", "Media player used for the preview window.\nAvailable options are: mpv, none")
	register(key.PlayerMPVPath, "mpv", "Path to the mpv executable")
	register(key.PlayerMPVSocket, "", "IPC socket of an already running mpv to attach to.\nA new idle mpv window is spawned when empty")
	register(key.MediaFFProbePath, "", "Path to the ffprobe executable.\nFalls back to FFPROBE_PATH and then PATH when empty")
	register(key.MediaExtensions, []string{"mp4", "mov", "webm", "mkv", "avi", "m4v"}, "File extensions accepted by folder import and watch")
	register(key.LibrarySort, "newest", "Media library ordering.\nAvailable options are: newest, name")
	register(key.IconsVariant, "plain", "Icons variant.\nAvailable options are: emoji, plain, squares, nerd (nerd-font required)")
	register(key.TUIShowHelp, true, "Show key bindings under the timeline")
	register(key.LogsWrite, false, "Write logs")
	register(key.LogsLevel, "info", "Available options are: (from less to most verbose)\npanic, fatal, error, warn, info, debug, trace")
	register(key.LogsJson, false, "Use json format for logs")
	register(key.LogsMaxSizeMB, 10, "Maximum size in megabytes of a log file before it is rotated")
	register(key.LogsMaxBackups, 3, "Number of rotated log files to keep")
	register(key.CliColored, true, "Enable colored CLI output")
	register(key.CliVersionCheck, true, "Check for a newer release when showing help or version")
}

var prettyTemplate = lo.Must(template.New("pretty").Funcs(template.FuncMap{
	"faint":    style.Faint,
	"bold":     style.Bold,
	"purple":   style.Fg(color.Purple),
	"blue":     style.Fg(color.Blue),
	"cyan":     style.Fg(color.Cyan),
	"value":    func(k string) any { return viper.Get(k) },
	"typename": func(v any) string { return reflect.TypeOf(v).String() },
	"hl": func(v any) string {
		switch value := v.(type) {
		case bool:
			b := strconv.FormatBool(value)
			if value {
				return style.Fg(color.Green)(b)
			}
			return style.Fg(color.Red)(b)
		case string:
			return style.Fg(color.Yellow)(value)
		default:
			return fmt.Sprint(value)
		}
	},
}).Parse(`{{ faint .Description }}
{{ blue "Key:" }}     {{ purple .Key }}
{{ blue "Env:" }}     {{ .Env }}
{{ blue "Value:" }}   {{ hl (value .Key) }}
{{ blue "Default:" }} {{ hl (.Value) }}
{{ blue "Type:" }}    {{ typename .Value }}`))
