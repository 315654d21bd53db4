// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Playback Clock - these keys tune the display-paced playhead advance.
const (
	PlaybackFPS      = "playback.fps"
	PlaybackSeekStep = "playback.seek_step"
)

// Preview Synchronization - these keys define the drift tolerances before the player is re-seeked.
const (
	PreviewTolerancePlaying = "preview.tolerance_playing"
	PreviewTolerancePaused  = "preview.tolerance_paused"
)

// Timeline Editing - these keys govern zoom and keyboard edit granularity.
const (
	TimelineDefaultZoom = "timeline.default_zoom"
	TimelineZoomStep    = "timeline.zoom_step"
	TimelineNudgeStep   = "timeline.nudge_step"
	TimelineTrimStep    = "timeline.trim_step"
)

// Media Playback - these keys maintain the configuration for the external preview player.
const (
	Player          = "player.default"
	PlayerMPVPath   = "player.mpv_path"
	PlayerMPVSocket = "player.mpv_socket"
)

// Media Library - these keys configure probing and import.
const (
	MediaFFProbePath = "media.ffprobe_path"
	MediaExtensions  = "media.extensions"
	LibrarySort      = "library.sort"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Terminal User Interface (TUI) - these keys define the editor's presentation.
const (
	TUIShowHelp = "tui.show_help"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics.
const (
	LogsWrite      = "logs.write"
	LogsLevel      = "logs.level"
	LogsJson       = "logs.json"
	LogsMaxSizeMB  = "logs.max_size_mb"
	LogsMaxBackups = "logs.max_backups"
)

// CLI Execution Environment - these flags and settings govern the non-TUI application behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
)
