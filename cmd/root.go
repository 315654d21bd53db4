// Package cmd implements the command-line interface for clipforge.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/clipforge-cli/clipforge/color"
	"github.com/clipforge-cli/clipforge/constant"
	"github.com/clipforge-cli/clipforge/icon"
	"github.com/clipforge-cli/clipforge/key"
	"github.com/clipforge-cli/clipforge/log"
	"github.com/clipforge-cli/clipforge/player"
	"github.com/clipforge-cli/clipforge/project"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/clipforge-cli/clipforge/tui"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/clipforge-cli/clipforge/version"
	"github.com/clipforge-cli/clipforge/where"
	cc "github.com/ivanpirog/coloredcobra"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.Flags().BoolP("version", "v", false, "Print the application version")

	rootCmd.PersistentFlags().StringP("icons", "I", "", "Set the visual icon variant (e.g., nerd, emoji, squares)")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("icons", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return icon.AvailableVariants(), cobra.ShellCompDirectiveDefault
	}))
	lo.Must0(viper.BindPFlag(key.IconsVariant, rootCmd.PersistentFlags().Lookup("icons")))

	rootCmd.Flags().StringP("player", "p", "", "Preview player to use for this session")
	lo.Must0(rootCmd.RegisterFlagCompletionFunc("player", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return player.Available, cobra.ShellCompDirectiveNoFileComp
	}))

	rootCmd.Flags().BoolP("recent", "r", false, "Open the most recently used project")
	rootCmd.MarkFlagsMutuallyExclusive("recent", "version")

	helpFunc := rootCmd.HelpFunc()
	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		helpFunc(cmd, args)
		version.Notify()
	})

	// Initialize cleanup of localized temporary files on application startup.
	go func() {
		_ = util.Delete(where.Temp())
	}()
}

// rootCmd defines the entry point for the clipforge application.
var rootCmd = &cobra.Command{
	Use:   constant.Clipforge + " [project]",
	Short: "A terminal timeline editor for arranging and previewing video clips",
	Long: constant.AsciiArtLogo + "\n" +
		style.New().Italic(true).Foreground(color.HiRed).Render("    - A terminal timeline editor for arranging and previewing video clips"),
	Args: cobra.MaximumNArgs(1),
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return project.Recent(), cobra.ShellCompDirectiveDefault
	},
	Run: func(cmd *cobra.Command, args []string) {
		if cmd.Flags().Changed("version") {
			versionCmd.Run(versionCmd, args)
			return
		}

		options := tui.Options{
			Player: lo.Must(cmd.Flags().GetString("player")),
		}
		if len(args) > 0 {
			options.Project = args[0]
		}

		if lo.Must(cmd.Flags().GetBool("recent")) {
			recent, ok := lo.First(project.Recent())
			if !ok {
				handleErr(errors.New("no recent projects"))
			}
			options.Project = recent
		}

		CheckPlayer(lo.Ternary(options.Player != "", options.Player, viper.GetString(key.Player)))
		handleErr(tui.Run(&options))
	},
}

// Execute initializes child command routing and processes the CLI entry point.
func Execute() {
	if viper.GetBool(key.CliColored) {
		cc.Init(&cc.Config{
			RootCmd:       rootCmd,
			Headings:      cc.HiCyan + cc.Bold + cc.Underline,
			Commands:      cc.HiYellow + cc.Bold,
			Example:       cc.Italic,
			ExecName:      cc.Bold,
			Flags:         cc.Bold,
			FlagsDataType: cc.Italic + cc.HiBlue,
		})
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func handleErr(err error) {
	if err != nil {
		log.Error(err)
		_, _ = fmt.Fprintf(os.Stderr, "%s %s\n", icon.Get(icon.Fail), strings.Trim(err.Error(), " \n"))
		os.Exit(1)
	}
}
