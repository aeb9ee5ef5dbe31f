// Package styles holds the palette and lipgloss styles of the results browser.
package styles

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
)

// LeadRanks is how many of the best-ranked sections get the lead badge.
const LeadRanks = 3

// Palette is the set of colours the browser draws with.
type Palette struct {
	Accent  lipgloss.Color // titles, lead badges, selection
	Link    lipgloss.Color // document and page references
	Text    lipgloss.Color
	Dim     lipgloss.Color // metadata and key hints
	Surface lipgloss.Color // badge text and status bar background
	Frame   lipgloss.Color // detail pane border
	Error   lipgloss.Color
}

// DefaultPalette returns the dark palette.
func DefaultPalette() Palette {
	return Palette{
		Accent:  lipgloss.Color("#7C3AED"),
		Link:    lipgloss.Color("#06B6D4"),
		Text:    lipgloss.Color("#CDD6F4"),
		Dim:     lipgloss.Color("#6C7086"),
		Surface: lipgloss.Color("#181825"),
		Frame:   lipgloss.Color("#45475A"),
		Error:   lipgloss.Color("#F38BA8"),
	}
}

// Styles are the rendered styles derived from a palette.
type Styles struct {
	palette Palette

	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Normal    lipgloss.Style
	Muted     lipgloss.Style
	Selected  lipgloss.Style
	Error     lipgloss.Style
	Location  lipgloss.Style
	Detail    lipgloss.Style
	StatusBar lipgloss.Style

	// Rank badges: LeadRank for the first LeadRanks positions, Rank for the rest.
	LeadRank lipgloss.Style
	Rank     lipgloss.Style
}

// NewStyles derives styles from p.
func NewStyles(p Palette) *Styles {
	badge := lipgloss.NewStyle().Bold(true).Foreground(p.Surface).Padding(0, 1)

	return &Styles{
		palette: p,

		Title:    lipgloss.NewStyle().Bold(true).Foreground(p.Accent),
		Subtitle: lipgloss.NewStyle().Bold(true).Foreground(p.Link),
		Normal:   lipgloss.NewStyle().Foreground(p.Text),
		Muted:    lipgloss.NewStyle().Foreground(p.Dim),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(p.Text).Background(p.Accent),
		Error:    lipgloss.NewStyle().Foreground(p.Error),
		Location: lipgloss.NewStyle().Italic(true).Foreground(p.Link),

		Detail: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(p.Frame).
			Padding(0, 1),

		StatusBar: lipgloss.NewStyle().
			Foreground(p.Dim).
			Background(p.Surface).
			Padding(0, 1),

		LeadRank: badge.Background(p.Accent),
		Rank:     badge.Background(p.Dim),
	}
}

// DefaultStyles returns styles for the default palette.
func DefaultStyles() *Styles {
	return NewStyles(DefaultPalette())
}

// Palette returns the colours these styles were built from.
func (s *Styles) Palette() Palette {
	return s.palette
}

// RankStyle returns the badge style for an importance rank.
func (s *Styles) RankStyle(rank int) lipgloss.Style {
	if rank >= 1 && rank <= LeadRanks {
		return s.LeadRank
	}
	return s.Rank
}

// RankBadge renders "#rank" in the badge style for rank.
func (s *Styles) RankBadge(rank int) string {
	return s.RankStyle(rank).Render("#" + strconv.Itoa(rank))
}
