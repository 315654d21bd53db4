// Package cmd implements the command-line interface for clipforge.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/clipforge-cli/clipforge/color"
	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/icon"
	"github.com/clipforge-cli/clipforge/key"
	"github.com/clipforge-cli/clipforge/media"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/clipforge-cli/clipforge/where"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(importCmd)

	importCmd.Flags().StringP("watch", "w", "", "Keep running and import media files as they appear in a directory")
	importCmd.Flags().IntP("jobs", "j", media.DefaultConcurrency, "Number of files probed at once")
}

// importCmd probes media files and adds them to the library.
var importCmd = &cobra.Command{
	Use:   "import [paths...]",
	Short: "Add media files to the library",
	Long: `Probe media files with ffprobe and add them to the library.
Directories are expanded to the files with a configured media extension.
Without arguments the current directory is offered for selection.`,
	Example: "  clipforge import ~/footage/*.mov\n  clipforge import --watch ~/footage",
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		watchDir := lo.Must(cmd.Flags().GetString("watch"))
		extensions := viper.GetStringSlice(key.MediaExtensions)
		watcher := &media.Watcher{Extensions: extensions}

		paths, err := expandPaths(args, watcher.Matches)
		handleErr(err)

		if len(paths) == 0 && watchDir == "" {
			paths, err = askForMedia(watcher.Matches)
			handleErr(err)
		}

		importer := &media.Importer{
			Prober:      media.CachedProber{Prober: CheckProber()},
			Library:     media.NewLibrary(where.Library()),
			Concurrency: lo.Must(cmd.Flags().GetInt("jobs")),
		}

		if len(paths) > 0 {
			items, err := importer.Import(ctx, paths)
			printImported(items, err)
			if len(items) == 0 && watchDir == "" {
				os.Exit(1)
			}
		}

		if watchDir == "" {
			return
		}

		watcher.Importer = importer
		watcher.OnImport = printImported
		fmt.Printf("%s Watching %s, press ctrl+c to stop\n", icon.Get(icon.Progress), style.Fg(color.Yellow)(watchDir))
		handleErr(watcher.Watch(ctx, watchDir))
	},
}

// expandPaths replaces directories with their matching files.
func expandPaths(args []string, matches func(string) bool) ([]string, error) {
	var paths []string
	for _, arg := range args {
		info, err := filesystem.API().Stat(arg)
		if err != nil || !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		files, err := matchingFiles(arg, matches)
		if err != nil {
			return nil, err
		}
		paths = append(paths, files...)
	}
	return paths, nil
}

func matchingFiles(dir string, matches func(string) bool) ([]string, error) {
	entries, err := afero.ReadDir(filesystem.API(), dir)
	if err != nil {
		return nil, err
	}

	return lo.FilterMap(entries, func(entry os.FileInfo, _ int) (string, bool) {
		path := filepath.Join(dir, entry.Name())
		return path, !entry.IsDir() && matches(path)
	}), nil
}

func askForMedia(matches func(string) bool) ([]string, error) {
	candidates, err := matchingFiles(".", matches)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, errors.New("no media files in the current directory, pass paths to import")
	}

	var selected []string
	err = survey.AskOne(&survey.MultiSelect{
		Message: "Select media to import",
		Options: candidates,
	}, &selected)
	return selected, err
}

func printImported(items []media.Media, err error) {
	for _, m := range items {
		fmt.Printf(
			"%s %s %s\n",
			icon.Get(icon.Success),
			style.Fg(color.Purple)(m.Name),
			style.Faint(fmt.Sprintf("%s %s", util.FormatDuration(m.Metadata.Duration), m.Metadata.Resolution())),
		)
	}

	if err == nil {
		return
	}
	for _, line := range strings.Split(err.Error(), "\n") {
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), line)
	}
}
