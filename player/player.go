// Package player drives the external window that shows the preview.
// The primary backend is mpv controlled through its JSON-IPC interface.
package player

import (
	"fmt"
	"strings"

	"github.com/clipforge-cli/clipforge/key"
	"github.com/spf13/viper"
)

// Player is a presentation surface that can be pointed at a source and moved around in it.
type Player interface {
	// SetSource replaces the loaded media. The new source starts paused at start seconds.
	SetSource(url string, start float64) error

	// Play resumes playback of the loaded source.
	Play() error

	// Pause suspends playback of the loaded source.
	Pause() error

	// Position retrieves the current position inside the loaded source in seconds.
	Position() (float64, error)

	// SetPosition moves to an absolute position inside the loaded source.
	SetPosition(seconds float64) error

	// Close terminates the backend and releases its resources.
	Close() error
}

// Available lists the backends New understands.
var Available = []string{"mpv", "none"}

// New builds the backend called name, reading its settings from the configuration.
func New(name string) (Player, error) {
	switch strings.ToLower(name) {
	case "mpv":
		if socket := viper.GetString(key.PlayerMPVSocket); socket != "" {
			return AttachMPV(socket), nil
		}
		return NewMPV(viper.GetString(key.PlayerMPVPath)), nil
	case "none", "":
		return &Null{}, nil
	default:
		return nil, fmt.Errorf("unknown player %q, available: %s", name, strings.Join(Available, ", "))
	}
}

// Null is a player without a window. It only remembers what it was told.
type Null struct {
	Source   string
	Playing  bool
	position float64
}

func (n *Null) SetSource(url string, start float64) error {
	n.Source = url
	n.Playing = false
	n.position = start
	return nil
}

func (n *Null) Play() error {
	n.Playing = true
	return nil
}

func (n *Null) Pause() error {
	n.Playing = false
	return nil
}

func (n *Null) Position() (float64, error) {
	return n.position, nil
}

func (n *Null) SetPosition(seconds float64) error {
	n.position = seconds
	return nil
}

func (n *Null) Close() error {
	return nil
}
