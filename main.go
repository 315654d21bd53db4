// Package main is the entry point for the clipforge application.
package main

import (
	"github.com/clipforge-cli/clipforge/cmd"
	"github.com/clipforge-cli/clipforge/config"
	"github.com/clipforge-cli/clipforge/internal/cache"
	"github.com/clipforge-cli/clipforge/log"
	"github.com/samber/lo"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	// Prune expired probe results in the background.
	go cache.CollectGarbage()

	cmd.Execute()
}
