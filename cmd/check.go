// Package cmd implements the command-line interface for clipforge.
package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/clipforge-cli/clipforge/icon"
	"github.com/clipforge-cli/clipforge/key"
	"github.com/clipforge-cli/clipforge/media"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/spf13/viper"
)

// installHints maps a dependency to its install command per platform.
var installHints = map[string]map[string]string{
	"mpv": {
		"darwin":  "brew install mpv",
		"linux":   "sudo apt install mpv",
		"windows": "scoop install mpv",
	},
	"ffprobe": {
		"darwin":  "brew install ffmpeg",
		"linux":   "sudo apt install ffmpeg",
		"windows": "scoop install ffmpeg",
	},
}

// CheckPlayer verifies that the preview player can be started.
// Attaching to a running mpv needs no binary.
func CheckPlayer(name string) {
	if name != "mpv" || viper.GetString(key.PlayerMPVSocket) != "" {
		return
	}

	if _, err := exec.LookPath(viper.GetString(key.PlayerMPVPath)); err != nil {
		printMissingDependencyError("mpv")
		os.Exit(1)
	}
}

// CheckProber returns the ffprobe used for imports, exiting when none is installed.
func CheckProber() *media.FFProbe {
	probe, err := media.LocateFFProbe()
	if err != nil {
		printMissingDependencyError("ffprobe")
		os.Exit(1)
	}
	return probe
}

func printMissingDependencyError(dep string) {
	installCmd := installHints[dep][runtime.GOOS]

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(style.HiRed).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(style.HiRed).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(style.Text).Render(fmt.Sprintf("The required dependency '%s' was not found in your PATH.", dep))

	suggestion := ""
	if installCmd != "" {
		suggestion = fmt.Sprintf("\n\nTo install it, try running:\n  %s", style.New().Foreground(style.AccentColor).Bold(true).Render(installCmd))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
