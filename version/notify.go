// Package version provides unified mechanisms for application version tracking, update discovery, and compatibility validation.
package version

import (
	"fmt"

	"github.com/clipforge-cli/clipforge/color"
	"github.com/clipforge-cli/clipforge/constant"
	"github.com/clipforge-cli/clipforge/icon"
	"github.com/clipforge-cli/clipforge/key"
	"github.com/clipforge-cli/clipforge/log"
	"github.com/clipforge-cli/clipforge/style"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/spf13/viper"
)

// Notify prints a notice when a newer release than the running one exists.
// Failed checks stay silent.
func Notify() {
	if !viper.GetBool(key.CliVersionCheck) {
		return
	}

	erase := util.PrintErasable(fmt.Sprintf("%s Checking if new version is available...", icon.Get(icon.Progress)))
	version, err := Latest()
	erase()
	if err != nil {
		log.Debugf("release check failed: %s", err)
		return
	}

	if newer, err := Compare(version, constant.Version); err != nil || newer <= 0 {
		return
	}

	fmt.Printf(`
%s New version is available %s %s
%s

`,
		style.Fg(color.Green)("▇▇▇"),
		style.Bold(version),
		style.Faint(fmt.Sprintf("(You're on %s)", constant.Version)),
		style.Faint(ReleasesURL+"/tag/v"+version),
	)
}
