package style

import "github.com/charmbracelet/lipgloss"

// Base tones.
var (
	Base    = lipgloss.Color("#1e1e2e")
	Text    = lipgloss.Color("#cdd6f4")
	Overlay = lipgloss.Color("#6c7086")
)

// Accents.
var (
	Mauve    = lipgloss.Color("#cba6f7")
	Red      = lipgloss.Color("#f38ba8")
	Peach    = lipgloss.Color("#fab387")
	Yellow   = lipgloss.Color("#f9e2af")
	Sapphire = lipgloss.Color("#74c7ec")
	Blue     = lipgloss.Color("#89b4fa")
)

// Semantic mappings.
var (
	AccentColor  = Mauve
	WarningColor = Yellow
	ErrorColor   = Red
	HiRed        = Red
)

// Timeline colors. Each track alternates two shades so adjacent clips stay distinguishable.
var (
	MainTrackColors    = [2]lipgloss.Color{Blue, Sapphire}
	OverlayTrackColors = [2]lipgloss.Color{Peach, Yellow}
	PlayheadColor      = Red
	SelectionColor     = AccentColor
)
