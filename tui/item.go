// Package tui provides the primary terminal user interface implementation.
package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/clipforge-cli/clipforge/icon"
	"github.com/clipforge-cli/clipforge/media"
	"github.com/clipforge-cli/clipforge/util"
	"github.com/samber/lo"
)

// listItem implements the list.Item interface for library media.
type listItem struct {
	internal media.Media
}

// Title retrieves the primary display text for the list item.
func (t *listItem) Title() string {
	return icon.Get(icon.Media) + " " + t.internal.Name
}

// Description summarises the probed metadata.
func (t *listItem) Description() string {
	m := t.internal.Metadata
	parts := []string{
		util.FormatDuration(m.Duration),
		m.Resolution(),
		util.FormatBytes(m.Size),
	}
	return strings.Join(lo.Compact(parts), " • ")
}

// FilterValue returns the string used for real-time list filtering and searching.
func (t *listItem) FilterValue() string {
	return t.internal.Name
}

func toListItems(items []media.Media) []list.Item {
	return lo.Map(items, func(m media.Media, _ int) list.Item {
		return &listItem{internal: m}
	})
}
