package ui

import (
	lib "github.com/charmbracelet/charm/ui/common"
	"github.com/charmbracelet/lipgloss"
	te "github.com/muesli/termenv"
)

type StyleFunc func(string) string

const (
	espressoHex = "#3B2418"
	crema       = "#F2E3C6"
)

var (
	// AccentColor is used for cursors and spinners.
	AccentColor = lipgloss.AdaptiveColor{Light: "#6F4E37", Dark: "#C8A27A"}

	Latte    = lib.NewColorPair("#C8A27A", "#6F4E37")
	Mocha    = lib.NewColorPair("#A0522D", "#8B4513")
	Foam     = lib.NewColorPair(crema, espressoHex)
	Grounds  = lib.NewColorPair("#626262", "#909090")
	Pastures = lib.NewColorPair("#04B575", "#04B575")

	TitleStyle  = NewStyle(Foam, Mocha, true)
	CountStyle  = NewFgStyle(Pastures)
	SubtleStyle = NewFgStyle(Grounds)
	PromptStyle = NewFgStyle(Latte)
	ErrorStyle  = NewFgStyle(lib.Red)

	chipStyle       = NewFgStyle(Grounds)
	activeChipStyle = NewStyle(Foam, Latte, true)
)

// Chip renders an inactive filter control.
func Chip(label string) string {
	return chipStyle("[" + label + "]")
}

// ActiveChip renders a filter control that is switched on.
func ActiveChip(label string) string {
	return activeChipStyle("[" + label + "]")
}

// Returns a termenv style with foreground and background options.
func NewStyle(fg, bg lib.ColorPair, bold bool) StyleFunc {
	s := te.Style{}.Foreground(fg.Color()).Background(bg.Color())
	if bold {
		s = s.Bold()
	}
	return s.Styled
}

// Returns a new termenv style with foreground options only.
func NewFgStyle(c lib.ColorPair) StyleFunc {
	return te.Style{}.Foreground(c.Color()).Styled
}
