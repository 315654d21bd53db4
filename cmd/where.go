// Package cmd implements the command-line interface for clipforge.
package cmd

import (
	"fmt"
	"strings"

	"github.com/clipforge-cli/clipforge/color"
	"github.com/clipforge-cli/clipforge/internal/cache"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/clipforge-cli/clipforge/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

type whereTarget struct {
	name   string
	path   func() string
	hidden bool
}

var whereTargets = []whereTarget{
	{"config", where.Config, false},
	{"projects", where.Projects, false},
	{"library", where.Library, false},
	{"logs", where.Logs, false},
	{"cache", where.Cache, true},
	{"probes", cache.Dir, true},
	{"recent", where.Recent, true},
	{"temp", where.Temp, true},
}

func findWhereTarget(name string) (whereTarget, bool) {
	return lo.Find(whereTargets, func(t whereTarget) bool {
		return t.name == name
	})
}

func init() {
	rootCmd.AddCommand(whereCmd)
}

var whereCmd = &cobra.Command{
	Use:   "where [target]",
	Short: "Show where clipforge keeps its files",
	Long: fmt.Sprintf(
		"Show where clipforge keeps its files.\nWith a target only that path is printed, which is handy in scripts.\nTargets: %s",
		strings.Join(lo.Map(whereTargets, func(t whereTarget, _ int) string { return t.name }), ", "),
	),
	Example: "  cd \"$(clipforge where projects)\"",
	Args:    cobra.MaximumNArgs(1),
	ValidArgsFunction: func(_ *cobra.Command, args []string, _ string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return lo.Map(whereTargets, func(t whereTarget, _ int) string { return t.name }), cobra.ShellCompDirectiveNoFileComp
	},
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) == 1 {
			target, ok := findWhereTarget(args[0])
			if !ok {
				handleErr(fmt.Errorf("unknown target %s", style.Fg(color.Red)(args[0])))
			}
			fmt.Println(target.path())
			return
		}

		header := style.New().Bold(true).Foreground(color.HiPurple).Render
		visible := lo.Reject(whereTargets, func(t whereTarget, _ int) bool { return t.hidden })
		for i, target := range visible {
			if i > 0 {
				fmt.Println()
			}
			fmt.Println(header(util.Capitalize(target.name)))
			fmt.Println(target.path())
		}
	},
}
