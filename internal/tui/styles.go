package tui

import (
	"media-gallery/internal/theme"

	"github.com/charmbracelet/lipgloss"
)

// palette holds the colors of one theme.
type palette struct {
	text      lipgloss.TerminalColor
	faint     lipgloss.TerminalColor
	accent    lipgloss.TerminalColor
	selection lipgloss.TerminalColor
}

var palettes = map[theme.Theme]palette{
	theme.Light: {
		text:      lipgloss.Color("236"),
		faint:     lipgloss.Color("245"),
		accent:    lipgloss.Color("25"),
		selection: lipgloss.Color("153"),
	},
	theme.Dark: {
		text:      lipgloss.Color("252"),
		faint:     lipgloss.Color("240"),
		accent:    lipgloss.Color("111"),
		selection: lipgloss.Color("57"),
	},
	// System follows the terminal background.
	theme.System: {
		text:      lipgloss.AdaptiveColor{Light: "236", Dark: "252"},
		faint:     lipgloss.AdaptiveColor{Light: "245", Dark: "240"},
		accent:    lipgloss.AdaptiveColor{Light: "25", Dark: "111"},
		selection: lipgloss.AdaptiveColor{Light: "153", Dark: "57"},
	},
}

type styles struct {
	title       lipgloss.Style
	status      lipgloss.Style
	help        lipgloss.Style
	errorText   lipgloss.Style
	cell        lipgloss.Style
	selected    lipgloss.Style
	placeholder lipgloss.Style
	slide       lipgloss.Style
	panel       lipgloss.Style
}

func stylesFor(t theme.Theme) styles {
	p, ok := palettes[t]
	if !ok {
		p = palettes[theme.Default]
	}
	cell := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(p.faint).
		Foreground(p.text).
		Padding(0, 1)
	return styles{
		title:       lipgloss.NewStyle().Bold(true).Foreground(p.accent),
		status:      lipgloss.NewStyle().Foreground(p.text),
		help:        lipgloss.NewStyle().Faint(true).Foreground(p.faint),
		errorText:   lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
		cell:        cell,
		selected:    cell.BorderForeground(p.accent).Background(p.selection),
		placeholder: cell.BorderStyle(lipgloss.NormalBorder()).Italic(true).Foreground(p.faint),
		slide: lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(p.accent).
			Foreground(p.text).
			Padding(1, 3).
			Align(lipgloss.Center),
		panel: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(p.accent).
			Foreground(p.text).
			Padding(1, 2),
	}
}
