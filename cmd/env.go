// Package cmd implements the command-line interface for clipforge.
package cmd

import (
	"fmt"
	"os"

	"github.com/clipforge-cli/clipforge/color"
	"github.com/clipforge-cli/clipforge/config"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/clipforge-cli/clipforge/where"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/exp/slices"
)

// envVariable is an environment variable clipforge reads, with its value in this process.
type envVariable struct {
	Name  string `json:"name"`
	Value string `json:"value,omitempty"`
}

func environment() []envVariable {
	names := []string{where.EnvConfigPath}
	for _, k := range config.EnvExposed {
		field := config.Default[k]
		names = append(names, field.Env())
	}
	slices.Sort(names)

	return lo.Map(names, func(name string, _ int) envVariable {
		return envVariable{Name: name, Value: os.Getenv(name)}
	})
}

func init() {
	rootCmd.AddCommand(envCmd)
	envCmd.Flags().BoolP("set-only", "s", false, "Only list variables that are set")
	envCmd.Flags().BoolP("unset-only", "u", false, "Only list variables that are unset")
	envCmd.MarkFlagsMutuallyExclusive("set-only", "unset-only")
}

var envCmd = &cobra.Command{
	Use:   "env",
	Short: "List the environment variables that override settings",
	Long:  "List the environment variables that override settings.\nEvery config key has one, derived from its name.",
	Run: func(cmd *cobra.Command, args []string) {
		setOnly := lo.Must(cmd.Flags().GetBool("set-only"))
		unsetOnly := lo.Must(cmd.Flags().GetBool("unset-only"))

		name := style.New().Bold(true).Foreground(color.Purple).Render
		for _, v := range environment() {
			set := v.Value != ""
			if (setOnly && !set) || (unsetOnly && set) {
				continue
			}

			value := style.Fg(color.Red)("unset")
			if set {
				value = style.Fg(color.Green)(v.Value)
			}
			fmt.Printf("%s=%s\n", name(v.Name), value)
		}
	},
}
