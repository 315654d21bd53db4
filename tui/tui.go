// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/clipforge-cli/clipforge/filesystem"
	"github.com/clipforge-cli/clipforge/key"
	"github.com/clipforge-cli/clipforge/log"
	"github.com/clipforge-cli/clipforge/media"
	"github.com/clipforge-cli/clipforge/player"
	"github.com/clipforge-cli/clipforge/project"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/clipforge-cli/clipforge/where"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Options encapsulates the runtime configuration for the terminal user interface.
type Options struct {
	// Project is a project file path or a bare project name. Empty starts an
	// untitled project.
	Project string
	// Player overrides the player.default setting when set.
	Player string
}

// Run opens the project and executes the editor until the user quits.
func Run(options *Options) error {
	if !util.Interactive() {
		return errors.New("the editor needs an interactive terminal, see clipforge project --help for scripted edits")
	}

	file, path, err := openProject(options.Project)
	if err != nil {
		return err
	}

	name := options.Player
	if name == "" {
		name = viper.GetString(key.Player)
	}
	p, err := player.New(name)
	if err != nil {
		return err
	}
	defer util.Ignore(p.Close)

	bubble := newBubble(options, file, path, media.NewLibrary(where.Library()), p)
	defer bubble.shutdown()

	if path != "" {
		if err := project.Remember(path); err != nil {
			log.Warnf("could not record recent project: %s", err)
		}
	}

	_, err = tea.NewProgram(bubble, tea.WithAltScreen()).Run()
	return err
}

// openProject loads the named project, or starts a new one when nothing is
// stored under that name yet.
func openProject(name string) (*project.File, string, error) {
	if name == "" {
		return project.New("untitled"), "", nil
	}

	path := project.Path(name)
	exists, err := afero.Exists(filesystem.API(), path)
	if err != nil {
		return nil, "", err
	}
	if !exists {
		log.Infof("starting new project at %s", path)
		return project.New(util.FileStem(path)), path, nil
	}

	file, err := project.Load(path)
	if err != nil {
		return nil, "", fmt.Errorf("open project: %w", err)
	}
	return file, path, nil
}
