// Package cmd implements the command-line interface for clipforge.
package cmd

import (
	"fmt"
	"os"

	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/icon"
	"github.com/clipforge-cli/clipforge/internal/cache"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/clipforge-cli/clipforge/where"
	"github.com/samber/lo"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// clearTarget is a directory the clear command can wipe.
type clearTarget struct {
	flag     string
	short    string
	name     string
	location func() string
}

// Project files are never a target. Only artifacts that can be rebuilt or
// re-imported are listed here.
var clearTargets = []clearTarget{
	{"probes", "p", "probe cache", cache.Dir},
	{"cache", "c", "cache directory", where.Cache},
	{"recent", "r", "recent projects", where.Recent},
	{"library", "", "media library", where.Library},
	{"logs", "l", "logs", where.Logs},
}

// diskUsage sums the sizes of all regular files under path.
func diskUsage(path string) int64 {
	var total int64
	_ = afero.Walk(filesystem.API(), path, func(_ string, info os.FileInfo, err error) error {
		if err == nil && !info.IsDir() {
			total += info.Size()
		}
		return nil
	})
	return total
}

func init() {
	rootCmd.AddCommand(clearCmd)

	for _, target := range clearTargets {
		clearCmd.Flags().BoolP(target.flag, target.short, false, "Clear the "+target.name)
	}
	clearCmd.Flags().Bool("all", false, "Clear everything listed above")
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove caches, logs and other rebuildable artifacts",
	Long:  "Remove caches, logs and other rebuildable artifacts. Project files are never touched.",
	Run: func(cmd *cobra.Command, args []string) {
		all := lo.Must(cmd.Flags().GetBool("all"))

		selected := lo.Filter(clearTargets, func(t clearTarget, _ int) bool {
			return all || lo.Must(cmd.Flags().GetBool(t.flag))
		})
		if len(selected) == 0 {
			handleErr(cmd.Help())
			return
		}

		for _, target := range selected {
			path := target.location()
			freed := diskUsage(path)

			erase := util.PrintErasable(fmt.Sprintf("%s Clearing %s...", icon.Get(icon.Progress), target.name))
			err := filesystem.API().RemoveAll(path)
			erase()
			handleErr(err)

			fmt.Printf(
				"%s %s cleared %s\n",
				icon.Get(icon.Success),
				util.Capitalize(target.name),
				style.Faint(fmt.Sprintf("(%s)", util.FormatBytes(freed))),
			)
		}
	},
}
