// Package tui provides the terminal user interface for timegrid.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/timegrid/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	// Title bar
	TitleStyle lipgloss.Style
	RangeStyle lipgloss.Style

	// Header row
	DayHeaderStyle      lipgloss.Style
	DayHeaderTodayStyle lipgloss.Style

	// Time gutter
	TimeColumnStyle lipgloss.Style

	// Grid cells
	EmptyCellStyle   lipgloss.Style
	HourCellStyle    lipgloss.Style // first line of an hour
	BlockStyle       lipgloss.Style
	BlockAltStyle    lipgloss.Style // adjacent blocks alternate shades
	BlockLockedStyle lipgloss.Style
	BlockPastStyle   lipgloss.Style
	BlockSelected    lipgloss.Style
	GuideStyle       lipgloss.Style
	NowMarkerStyle   lipgloss.Style
	ColumnSeparator  lipgloss.Style
	TodaySeparator   lipgloss.Style

	// Footer
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	HelpStyle        lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	base := lipgloss.NewStyle().Background(p.Bg).Foreground(p.Fg)

	return &Styles{
		TitleStyle: lipgloss.NewStyle().
			Bold(true).
			Foreground(p.TextOnAccent).
			Background(p.Accent).
			Padding(0, 1),
		RangeStyle: base.Foreground(p.FgMuted).Padding(0, 1),

		DayHeaderStyle:      base.Bold(true).Align(lipgloss.Center),
		DayHeaderTodayStyle: base.Bold(true).Align(lipgloss.Center).Foreground(p.Current),

		TimeColumnStyle: base.Foreground(p.FgMuted),

		EmptyCellStyle:   base,
		HourCellStyle:    base.Background(p.BgHighlight),
		BlockStyle:       lipgloss.NewStyle().Background(p.BlockBg).Foreground(p.TextOnBlock),
		BlockAltStyle:    lipgloss.NewStyle().Background(p.BlockBgAlt).Foreground(p.TextOnBlock),
		BlockLockedStyle: lipgloss.NewStyle().Background(p.LockedBg).Foreground(p.TextOnLocked),
		BlockPastStyle:   lipgloss.NewStyle().Background(p.PastBg).Foreground(p.FgMuted),
		BlockSelected:    lipgloss.NewStyle().Background(p.BgSelection).Foreground(p.Fg).Bold(true),
		GuideStyle:       lipgloss.NewStyle().Background(p.GuideBg).Foreground(p.TextOnGuide).Bold(true),
		NowMarkerStyle:   base.Foreground(p.Current).Bold(true),
		ColumnSeparator:  base.Foreground(p.BgSelection),
		TodaySeparator:   base.Foreground(p.Current),

		StatusStyle:      base.Foreground(p.Fg),
		StatusErrorStyle: base.Foreground(p.Warning).Bold(true),
		HelpStyle:        base.Foreground(p.FgMuted),
	}
}
