// Package cmd implements the command-line interface for clipforge.
package cmd

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/bytedance/sonic"
	"github.com/clipforge-cli/clipforge/color"
	"github.com/clipforge-cli/clipforge/icon"
	"github.com/clipforge-cli/clipforge/key"
	"github.com/clipforge-cli/clipforge/media"
	"github.com/clipforge-cli/clipforge/open"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/clipforge-cli/clipforge/where"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func openLibrary() *media.Library {
	return media.NewLibrary(where.Library())
}

func completionMediaNames(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	items, err := openLibrary().List()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	return lo.Map(items, func(m media.Media, _ int) string { return m.Name }), cobra.ShellCompDirectiveNoFileComp
}

// findMedia resolves ref as an id, a unique id prefix or an exact name.
func findMedia(library *media.Library, ref string) (media.Media, error) {
	if m, err := library.Get(ref); err == nil {
		return m, nil
	}

	items, err := library.List()
	if err != nil {
		return media.Media{}, err
	}

	matches := lo.Filter(items, func(m media.Media, _ int) bool {
		return strings.HasPrefix(m.ID, ref) || m.Name == ref
	})
	switch len(matches) {
	case 0:
		if len(items) == 0 {
			return media.Media{}, fmt.Errorf("%s: %w", ref, media.ErrNotFound)
		}
		closest := lo.MinBy(items, func(a, b media.Media) bool {
			return levenshtein.Distance(ref, a.Name) < levenshtein.Distance(ref, b.Name)
		})
		return media.Media{}, fmt.Errorf("%s: %w, did you mean %s?", ref, media.ErrNotFound, style.Fg(color.Yellow)(closest.Name))
	case 1:
		return matches[0], nil
	default:
		return media.Media{}, fmt.Errorf("%s is ambiguous, it matches %s", ref, util.Quantify(len(matches), "entry", "entries"))
	}
}

// sortMedia applies the library.sort setting. The library already lists newest first.
func sortMedia(items []media.Media, order string) {
	if order == "name" {
		sort.SliceStable(items, func(i, j int) bool {
			return strings.ToLower(items[i].Name) < strings.ToLower(items[j].Name)
		})
	}
}

func printMedia(cmd *cobra.Command, items []media.Media, asJson bool) {
	if asJson {
		data, err := sonic.ConfigStd.Marshal(items)
		handleErr(err)
		cmd.Println(string(data))
		return
	}

	if len(items) == 0 {
		cmd.Println(style.Faint("The library is empty"))
		return
	}

	for _, m := range items {
		meta := m.Metadata
		details := lo.Compact([]string{
			util.FormatDuration(meta.Duration),
			meta.Resolution(),
			util.FormatBytes(meta.Size),
			util.FormatBitrate(meta.BitRate),
		})

		cmd.Printf("%s %s %s\n", icon.Get(icon.Media), style.Fg(color.Purple)(m.Name), style.Faint(m.ID[:min(8, len(m.ID))]))
		cmd.Printf("  %s\n", strings.Join(details, " • "))
		cmd.Printf("  %s\n", style.Faint(m.Path))
	}
}

func init() {
	rootCmd.AddCommand(libraryCmd)
}

// libraryCmd groups the media library commands.
var libraryCmd = &cobra.Command{
	Use:     "library",
	Aliases: []string{"lib"},
	Short:   "Manage the imported media library",
}

func init() {
	libraryCmd.AddCommand(libraryListCmd)
	libraryListCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	libraryListCmd.Flags().StringP("sort", "s", "", "Ordering of the entries (newest, name)")
	lo.Must0(viper.BindPFlag(key.LibrarySort, libraryListCmd.Flags().Lookup("sort")))
	libraryListCmd.SetOut(os.Stdout)
}

var libraryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List the media library",
	Run: func(cmd *cobra.Command, args []string) {
		items, err := openLibrary().List()
		handleErr(err)

		sortMedia(items, viper.GetString(key.LibrarySort))
		printMedia(cmd, items, lo.Must(cmd.Flags().GetBool("json")))
	},
}

func init() {
	libraryCmd.AddCommand(libraryFindCmd)
	libraryFindCmd.Flags().BoolP("json", "j", false, "Format the output as JSON")
	libraryFindCmd.SetOut(os.Stdout)
}

var libraryFindCmd = &cobra.Command{
	Use:   "find [query]",
	Short: "Fuzzy search the media library by name",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		items, err := openLibrary().Find(args[0])
		handleErr(err)
		printMedia(cmd, items, lo.Must(cmd.Flags().GetBool("json")))
	},
}

func init() {
	libraryCmd.AddCommand(libraryRemoveCmd)
}

var libraryRemoveCmd = &cobra.Command{
	Use:               "rm [id or name...]",
	Aliases:           []string{"remove"},
	Short:             "Remove media from the library",
	Long:              "Remove media from the library. The files themselves are left alone.\nWithout arguments the entries to remove are asked for.",
	ValidArgsFunction: completionMediaNames,
	Run: func(cmd *cobra.Command, args []string) {
		library := openLibrary()

		var targets []media.Media
		if len(args) == 0 {
			items, err := library.List()
			handleErr(err)
			if len(items) == 0 {
				handleErr(errors.New("the library is empty"))
			}

			labels := lo.Map(items, func(m media.Media, _ int) string {
				return fmt.Sprintf("%s (%s)", m.Name, m.Path)
			})
			var selected []string
			handleErr(survey.AskOne(&survey.MultiSelect{
				Message: "Select media to remove",
				Options: labels,
			}, &selected))

			targets = lo.Map(selected, func(label string, _ int) media.Media {
				return items[lo.IndexOf(labels, label)]
			})
		} else {
			for _, ref := range args {
				m, err := findMedia(library, ref)
				handleErr(err)
				targets = append(targets, m)
			}
		}

		for _, m := range targets {
			handleErr(library.Remove(m.ID))
			fmt.Printf("%s removed %s\n", icon.Get(icon.Success), style.Fg(color.Yellow)(m.Name))
		}
	},
}

func init() {
	libraryCmd.AddCommand(libraryClearCmd)
	libraryClearCmd.Flags().BoolP("yes", "y", false, "Do not ask for confirmation")
}

var libraryClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every entry from the media library",
	Run: func(cmd *cobra.Command, args []string) {
		if !lo.Must(cmd.Flags().GetBool("yes")) {
			var confirmed bool
			handleErr(survey.AskOne(&survey.Confirm{
				Message: "Remove every entry from the library?",
				Default: false,
			}, &confirmed))
			if !confirmed {
				return
			}
		}

		handleErr(openLibrary().Clear())
		fmt.Printf("%s library cleared\n", icon.Get(icon.Success))
	},
}

func init() {
	libraryCmd.AddCommand(libraryOpenCmd)
	libraryOpenCmd.Flags().StringP("with", "w", "", "Application to open the file with")
}

var libraryOpenCmd = &cobra.Command{
	Use:               "open [id or name]",
	Short:             "Open a library file with the system handler",
	Args:              cobra.ExactArgs(1),
	ValidArgsFunction: completionMediaNames,
	Run: func(cmd *cobra.Command, args []string) {
		m, err := findMedia(openLibrary(), args[0])
		handleErr(err)
		handleErr(open.StartWith(m.Path, lo.Must(cmd.Flags().GetString("with"))))
	},
}
