// Package icon renders UI symbols in the variant selected by icons.variant.
//
// Icons can be displayed as emoji, nerd-font glyphs, plain ASCII, or Unicode squares.
package icon

import (
	"github.com/peek-cli/peek/key"
	"github.com/spf13/viper"
)

const (
	emoji   = "emoji"
	nerd    = "nerd"
	plain   = "plain"
	squares = "squares"
)

// AvailableVariants returns a slice of all registered icon style identifiers.
func AvailableVariants() []string {
	return []string{emoji, nerd, plain, squares}
}

// Icon identifies a symbol in the registry.
type Icon int

const (
	Fail Icon = iota
	Success
	Progress
	Muted
	Unmuted
	Play
	Avatar
	Search
)

type iconDef struct {
	emoji   string
	nerd    string
	plain   string
	squares string
}

func (d *iconDef) Get() string {
	switch viper.GetString(key.IconsVariant) {
	case emoji:
		return d.emoji
	case nerd:
		return d.nerd
	case plain:
		return d.plain
	case squares:
		return d.squares
	default:
		return ""
	}
}

var icons = map[Icon]*iconDef{
	Fail: {
		emoji:   "💀",
		nerd:    "\uf00d",
		plain:   "x",
		squares: "🟥",
	},
	Success: {
		emoji:   "🎉",
		nerd:    "\uf00c",
		plain:   "+",
		squares: "🟩",
	},
	Progress: {
		emoji:   "⏳",
		nerd:    "\uf252",
		plain:   "~",
		squares: "🟦",
	},
	Muted: {
		emoji:   "🔇",
		nerd:    "\uf6a9",
		plain:   "[m]",
		squares: "⬛",
	},
	Unmuted: {
		emoji:   "🔊",
		nerd:    "\uf028",
		plain:   "[s]",
		squares: "⬜",
	},
	Play: {
		emoji:   "▶️",
		nerd:    "\uf04b",
		plain:   ">",
		squares: "🟧",
	},
	Avatar: {
		emoji:   "👤",
		nerd:    "\uf007",
		plain:   "@",
		squares: "🟪",
	},
	Search: {
		emoji:   "🔍",
		nerd:    "\uf002",
		plain:   "?",
		squares: "🟨",
	},
}

// Get returns the rendered string for i in the configured variant.
func Get(i Icon) string {
	return icons[i].Get()
}
