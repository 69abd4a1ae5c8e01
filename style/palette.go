package style

import "github.com/charmbracelet/lipgloss"

// Palette used by the grid.
var (
	Text    = lipgloss.Color("#cdd6f4")
	Overlay = lipgloss.Color("#6c7086")
	Surface = lipgloss.Color("#313244")

	Mauve = lipgloss.Color("#cba6f7")
	Red   = lipgloss.Color("#f38ba8")
	Green = lipgloss.Color("#a6e3a1")
)

// Semantic roles.
var (
	AccentColor  = Mauve
	SuccessColor = Green
	HiRed        = Red
	FaintColor   = Overlay

	// BorderColor outlines idle cards, ActiveBorderColor the card under the pointer.
	BorderColor       = Surface
	ActiveBorderColor = AccentColor
)
