// Package cmd implements the command-line interface for clipforge.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/clipforge-cli/clipforge/color"
	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/icon"
	"github.com/clipforge-cli/clipforge/project"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/clipforge-cli/clipforge/timeline"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// fallbackClipDuration is used for media whose duration could not be probed.
const fallbackClipDuration = 5.0

func completionProjects(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
	if len(args) > 0 {
		return nil, cobra.ShellCompDirectiveNoFileComp
	}
	return project.Recent(), cobra.ShellCompDirectiveDefault
}

// loadProject opens ref and builds its timeline.
func loadProject(ref string) (*project.File, string, *timeline.Timeline) {
	path := project.Path(ref)
	file, err := project.Load(path)
	handleErr(err)

	tl, dropped := file.Timeline()
	if dropped > 0 {
		fmt.Printf("%s dropped %s\n", style.Fg(color.Yellow)(icon.Get(icon.Fail)), util.Quantify(dropped, "unusable clip", "unusable clips"))
	}
	return file, path, tl
}

func storeProject(file *project.File, path string, tl *timeline.Timeline) {
	file.Capture(tl)
	handleErr(file.Save(path))
	handleErr(project.Remember(path))
}

// findClip resolves ref as a clip id or a unique id prefix.
func findClip(tl *timeline.Timeline, ref string) timeline.Clip {
	if clip, ok := tl.Clip(ref).Get(); ok {
		return clip
	}

	matches := lo.Filter(tl.Clips(), func(c timeline.Clip, _ int) bool {
		return strings.HasPrefix(c.ID, ref)
	})
	switch len(matches) {
	case 0:
		handleErr(fmt.Errorf("no clip %s", ref))
	case 1:
		return matches[0]
	default:
		handleErr(fmt.Errorf("clip %s is ambiguous, it matches %s", ref, util.Quantify(len(matches), "clip", "clips")))
	}
	return timeline.Clip{}
}

func parseSeconds(s string) float64 {
	seconds, err := strconv.ParseFloat(s, 64)
	if err != nil {
		handleErr(fmt.Errorf("invalid time %q, expected seconds", s))
	}
	return seconds
}

func init() {
	rootCmd.AddCommand(projectCmd)
}

// projectCmd groups the project file commands.
var projectCmd = &cobra.Command{
	Use:     "project",
	Aliases: []string{"p"},
	Short:   "Create, inspect and edit project files",
}

func init() {
	projectCmd.AddCommand(projectNewCmd)
	projectNewCmd.Flags().BoolP("force", "f", false, "Overwrite an existing project")
}

var projectNewCmd = &cobra.Command{
	Use:   "new [name]",
	Short: "Create an empty project",
	Long:  "Create an empty project. Bare names are stored in the projects directory, see `clipforge where --projects`.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := project.Path(args[0])

		exists, err := afero.Exists(filesystem.API(), path)
		handleErr(err)
		if exists && !lo.Must(cmd.Flags().GetBool("force")) {
			handleErr(fmt.Errorf("%s already exists, use --force to overwrite it", path))
		}

		file := project.New(util.FileStem(path))
		handleErr(file.Save(path))
		handleErr(project.Remember(path))
		fmt.Printf("%s created %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(path))
	},
}

func init() {
	projectCmd.AddCommand(projectInfoCmd)
	projectInfoCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	projectInfoCmd.SetOut(os.Stdout)
}

var projectInfoCmd = &cobra.Command{
	Use:               "info [project]",
	Short:             "Display a project and its clips",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionProjects,
	Run: func(cmd *cobra.Command, args []string) {
		file, path, tl := loadProject(args[0])

		if lo.Must(cmd.Flags().GetBool("json")) {
			file.Capture(tl)
			data, err := sonic.MarshalIndent(file, "", "  ")
			handleErr(err)
			cmd.Println(string(data))
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		cmd.Printf("%s %s\n", style.Title(file.Name), style.Faint(path))
		cmd.Printf("%s %s\n", header("Duration"), util.FormatDuration(tl.TotalDuration()))
		cmd.Printf("%s %s\n", header("Playhead"), util.FormatTimestamp(tl.Playhead()))
		cmd.Printf("%s %d px/s\n", header("Zoom"), tl.Zoom())
		cmd.Printf("%s %s\n", header("Updated"), file.UpdatedAt.Format("2006-01-02 15:04"))

		for _, track := range timeline.Tracks {
			clips := tl.TrackClips(track)
			cmd.Println()
			cmd.Printf("%s %s\n", header(util.Capitalize(track.String())), style.Faint(util.Quantify(len(clips), "clip", "clips")))
			for _, c := range clips {
				cmd.Printf(
					"  %s %s %s - %s %s\n",
					style.Faint(c.ID[:min(8, len(c.ID))]),
					style.Fg(color.Purple)(c.Name),
					util.FormatDuration(c.Start),
					util.FormatDuration(c.End()),
					style.Faint(fmt.Sprintf("(in %.2fs)", c.InPoint)),
				)
			}
		}
	},
}

func init() {
	projectCmd.AddCommand(projectSchemaCmd)
	projectSchemaCmd.SetOut(os.Stdout)
}

var projectSchemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the JSON schema of project files",
	Run: func(cmd *cobra.Command, args []string) {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		handleErr(encoder.Encode(project.Schema()))
	},
}

func init() {
	projectCmd.AddCommand(projectAddCmd)
	projectAddCmd.Flags().StringP("track", "t", timeline.Main.String(), "Track to place the clip on (main, overlay)")
	projectAddCmd.Flags().Float64P("at", "a", -1, "Start time in seconds, appended to the end of the track when unset")
	lo.Must0(projectAddCmd.RegisterFlagCompletionFunc("track", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return lo.Map(timeline.Tracks, func(t timeline.Track, _ int) string { return t.String() }), cobra.ShellCompDirectiveNoFileComp
	}))
}

var projectAddCmd = &cobra.Command{
	Use:   "add [project] [media id or name]",
	Short: "Add library media to a project as a clip",
	Args:  cobra.ExactArgs(2),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) == 1 {
			return completionMediaNames(cmd, args, toComplete)
		}
		return completionProjects(cmd, args, toComplete)
	},
	Run: func(cmd *cobra.Command, args []string) {
		track, err := timeline.ParseTrack(lo.Must(cmd.Flags().GetString("track")))
		handleErr(err)

		file, path, tl := loadProject(args[0])
		m, err := findMedia(openLibrary(), args[1])
		handleErr(err)

		clip, ok := tl.AddClip(m.ID, m.Duration().OrElse(fallbackClipDuration), m.Name, track)
		if !ok {
			handleErr(fmt.Errorf("could not add %s", m.Name))
		}
		if at := lo.Must(cmd.Flags().GetFloat64("at")); at >= 0 {
			tl.PositionClip(clip.ID, track, at)
			clip = tl.Clip(clip.ID).MustGet()
		}

		storeProject(file, path, tl)
		fmt.Printf(
			"%s added %s to %s at %s\n",
			icon.Get(icon.Success),
			style.Fg(color.Purple)(clip.Name),
			track,
			util.FormatDuration(clip.Start),
		)
	},
}

func init() {
	projectCmd.AddCommand(projectSplitCmd)
}

var projectSplitCmd = &cobra.Command{
	Use:               "split [project] [clip id] [seconds]",
	Short:             "Split a clip at an absolute timeline time",
	Args:              cobra.ExactArgs(3),
	ValidArgsFunction: completionProjects,
	Run: func(cmd *cobra.Command, args []string) {
		file, path, tl := loadProject(args[0])
		clip := findClip(tl, args[1])
		at := parseSeconds(args[2])

		second, ok := tl.SplitClip(clip.ID, at)
		if !ok {
			handleErr(fmt.Errorf(
				"cannot split %s at %.2fs, both parts must be at least %.1fs long",
				clip.Name, at, timeline.MinClipDuration,
			))
		}

		storeProject(file, path, tl)
		fmt.Printf("%s split %s, new clip %s\n", icon.Get(icon.Success), style.Fg(color.Purple)(clip.Name), style.Faint(second.ID))
	},
}

func init() {
	projectCmd.AddCommand(projectRemoveCmd)
}

var projectRemoveCmd = &cobra.Command{
	Use:               "rm [project] [clip id...]",
	Aliases:           []string{"remove"},
	Short:             "Remove clips from a project",
	Args:              cobra.MinimumNArgs(2),
	ValidArgsFunction: completionProjects,
	Run: func(cmd *cobra.Command, args []string) {
		file, path, tl := loadProject(args[0])

		for _, ref := range args[1:] {
			clip := findClip(tl, ref)
			tl.RemoveClip(clip.ID)
			fmt.Printf("%s removed %s\n", icon.Get(icon.Success), style.Fg(color.Purple)(clip.Name))
		}

		storeProject(file, path, tl)
	},
}

func init() {
	projectCmd.AddCommand(projectRecentCmd)
	projectRecentCmd.Flags().Bool("forget", false, "Clear the list of recent projects")
	projectRecentCmd.SetOut(os.Stdout)
}

var projectRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently opened projects",
	Run: func(cmd *cobra.Command, args []string) {
		if lo.Must(cmd.Flags().GetBool("forget")) {
			handleErr(project.Forget())
			fmt.Printf("%s recent projects forgotten\n", icon.Get(icon.Success))
			return
		}

		for _, path := range project.Recent() {
			cmd.Println(path)
		}
	},
}
