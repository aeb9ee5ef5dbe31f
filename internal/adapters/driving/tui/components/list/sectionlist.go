// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/pdfrank/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfrank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

// Entry pairs a ranked section with its refined text.
type Entry struct {
	domain.ExtractedSection

	// RefinedText is the matching subsection_analysis text.
	RefinedText string
}

// EntriesFromResult zips the two parallel output lists by position.
func EntriesFromResult(result *domain.AnalysisResult) []Entry {
	if result == nil {
		return nil
	}
	entries := make([]Entry, 0, len(result.ExtractedSections))
	for i, s := range result.ExtractedSections {
		e := Entry{ExtractedSection: s}
		if i < len(result.SubsectionAnalysis) {
			e.RefinedText = result.SubsectionAnalysis[i].RefinedText
		}
		entries = append(entries, e)
	}
	return entries
}

// SectionList displays ranked sections in a navigable list.
type SectionList struct {
	entries  []Entry
	selected int
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	width    int
	height   int
}

// NewSectionList creates a new section list component.
func NewSectionList(s *styles.Styles, km *keymap.KeyMap) *SectionList {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &SectionList{
		styles: s,
		keymap: km,
		width:  80,
		height: 10,
	}
}

// Init initialises the section list.
func (l *SectionList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (l *SectionList) Update(msg tea.Msg) (*SectionList, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return l, nil
	}
	k := keyMsg.String()
	switch {
	case keymap.Matches(k, l.keymap.Up):
		l.MoveUp()
	case keymap.Matches(k, l.keymap.Down):
		l.MoveDown()
	case keymap.Matches(k, l.keymap.Top):
		l.selected = 0
	case keymap.Matches(k, l.keymap.Bottom):
		if len(l.entries) > 0 {
			l.selected = len(l.entries) - 1
		}
	}
	return l, nil
}

// View renders the section list.
func (l *SectionList) View() string {
	if len(l.entries) == 0 {
		return l.styles.Muted.Render("No sections")
	}

	lines := make([]string, 0, len(l.entries)+2)
	lines = append(lines, l.styles.Subtitle.Render(fmt.Sprintf("Ranked sections (%d)", len(l.entries))), "")

	// Each entry takes two lines.
	visible := (l.height - 2) / 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if l.selected >= visible {
		start = l.selected - visible + 1
	}
	end := start + visible
	if end > len(l.entries) {
		end = len(l.entries)
	}

	for i := start; i < end; i++ {
		lines = append(lines, l.renderEntry(i, &l.entries[i]))
	}
	return strings.Join(lines, "\n")
}

func (l *SectionList) renderEntry(index int, e *Entry) string {
	indicator := "  "
	if index == l.selected {
		indicator = "> "
	}

	title := e.SectionTitle
	if title == "" {
		title = "(Untitled)"
	}
	maxTitle := l.width - 12
	if maxTitle < 10 {
		maxTitle = 10
	}
	title = truncate(title, maxTitle)

	rank := l.styles.RankBadge(e.ImportanceRank)
	var titleLine string
	if index == l.selected {
		titleLine = indicator + rank + " " + l.styles.Selected.Render(title)
	} else {
		titleLine = indicator + rank + " " + l.styles.Normal.Render(title)
	}

	location := l.styles.Location.Render(fmt.Sprintf("    %s, page %d", e.Document, e.PageNumber))
	return titleLine + "\n" + location
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// SetEntries replaces the list contents and resets the selection.
func (l *SectionList) SetEntries(entries []Entry) {
	l.entries = entries
	l.selected = 0
}

// Entries returns the current entries.
func (l *SectionList) Entries() []Entry {
	return l.entries
}

// Selected returns the index of the selected entry.
func (l *SectionList) Selected() int {
	return l.selected
}

// SetSelected sets the selected index.
func (l *SectionList) SetSelected(index int) {
	if index >= 0 && index < len(l.entries) {
		l.selected = index
	}
}

// SelectedEntry returns the currently selected entry, or nil if none.
func (l *SectionList) SelectedEntry() *Entry {
	if len(l.entries) == 0 || l.selected < 0 || l.selected >= len(l.entries) {
		return nil
	}
	return &l.entries[l.selected]
}

// MoveUp moves selection up.
func (l *SectionList) MoveUp() {
	if l.selected > 0 {
		l.selected--
	}
}

// MoveDown moves selection down.
func (l *SectionList) MoveDown() {
	if l.selected < len(l.entries)-1 {
		l.selected++
	}
}

// SetDimensions sets the component dimensions.
func (l *SectionList) SetDimensions(width, height int) {
	l.width = width
	l.height = height
}

// Count returns the number of entries.
func (l *SectionList) Count() int {
	return len(l.entries)
}

// IsEmpty returns whether the list is empty.
func (l *SectionList) IsEmpty() bool {
	return len(l.entries) == 0
}
