package tui

import (
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/colornames"
)

// Styles
var (
	baseFg    = lipgloss.Color("#E6E6E6")
	baseDimFg = lipgloss.AdaptiveColor{Light: "#6B7280", Dark: "#6B7280"}
	accentFg  = lipgloss.Color("#7C3AED")
	borderCol = lipgloss.Color("#243141")
	warnFg    = lipgloss.Color("#FFA500")

	appStyle   = lipgloss.NewStyle().Foreground(baseFg)
	boxStyle   = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(borderCol).Padding(0, 1)
	titleStyle = lipgloss.NewStyle().Foreground(accentFg).Bold(true)
	dimStyle   = lipgloss.NewStyle().Foreground(baseDimFg)
	flagStyle  = lipgloss.NewStyle().Foreground(warnFg).Bold(true)
)

// Canvas inks
var (
	inkFallback = colornames.Lime
	currentInk  = colornames.Gold
	windowInk   = colornames.Slategray
	hoverInk    = colornames.Orange
)
