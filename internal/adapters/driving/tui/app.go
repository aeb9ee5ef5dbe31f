// Package tui provides a terminal browser for analysis results.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/pdfrank/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/pdfrank/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/pdfrank/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfrank/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/pdfrank/internal/core/domain"
)

// ViewType identifies the active pane.
type ViewType int

const (
	// ViewList shows the ranked section list.
	ViewList ViewType = iota
	// ViewDetail shows the refined text of one section.
	ViewDetail
	// ViewHelp shows all keybindings.
	ViewHelp
)

// headerHeight is the number of lines used by the title and persona header.
const headerHeight = 3

// App is the results browser following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// result is the analysis being browsed.
	result *domain.AnalysisResult

	// ctx is the context for cancellation.
	ctx context.Context

	styles *styles.Styles
	keymap *keymap.KeyMap

	// sections lists the ranked sections.
	sections *list.SectionList

	// detail scrolls the refined text of the selected section.
	detail viewport.Model

	// status renders state and key hints.
	status *status.Bar

	help help.Model

	// currentView tracks which pane is active.
	currentView ViewType

	// previousView is restored when help is closed.
	previousView ViewType

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has received its first window size.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a browser over the given result.
func NewApp(result *domain.AnalysisResult) (*App, error) {
	if result == nil {
		return nil, ErrNoResult
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sections := list.NewSectionList(s, km)
	sections.SetEntries(list.EntriesFromResult(result))

	bar := status.NewBar(s, km)
	bar.SetSectionCount(sections.Count())
	bar.SetMessage(fmt.Sprintf("%s | %d sections", result.Metadata.Persona, sections.Count()))

	return &App{
		result:      result,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		sections:    sections,
		detail:      viewport.New(80, 10),
		status:      bar,
		help:        help.New(),
		currentView: ViewList,
	}, nil
}

// WithContext sets the context for the app.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.SetWindowTitle("pdfrank - " + a.result.Metadata.JobToBeDone)
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	if a.currentView == ViewDetail {
		var cmd tea.Cmd
		a.detail, cmd = a.detail.Update(msg)
		return a, cmd
	}
	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	if keymap.Matches(k, a.keymap.Quit) {
		return a, tea.Quit
	}

	if keymap.Matches(k, a.keymap.Help) {
		if a.currentView == ViewHelp {
			a.setView(a.previousView)
		} else {
			a.previousView = a.currentView
			a.setView(ViewHelp)
		}
		return a, nil
	}

	var cmd tea.Cmd
	switch a.currentView {
	case ViewList:
		if keymap.Matches(k, a.keymap.Open) {
			a.openSelected()
			return a, nil
		}
		a.sections, cmd = a.sections.Update(msg)
	case ViewDetail:
		if keymap.Matches(k, a.keymap.Back) {
			a.setView(ViewList)
			return a, nil
		}
		a.detail, cmd = a.detail.Update(msg)
	case ViewHelp:
		if keymap.Matches(k, a.keymap.Back) {
			a.setView(a.previousView)
		}
	}
	return a, cmd
}

// openSelected loads the selected section into the detail pane.
func (a *App) openSelected() {
	entry := a.sections.SelectedEntry()
	if entry == nil {
		return
	}
	a.detail.SetContent(a.renderDetail(entry))
	a.detail.GotoTop()
	a.setView(ViewDetail)
}

func (a *App) setView(v ViewType) {
	a.currentView = v
	switch v {
	case ViewList:
		a.status.SetState(status.StateList)
	case ViewDetail:
		a.status.SetState(status.StateDetail)
	case ViewHelp:
		a.status.SetState(status.StateHelp)
	}
}

func (a *App) renderDetail(e *list.Entry) string {
	width := a.detail.Width
	if width < 20 {
		width = 20
	}
	text := e.RefinedText
	if text == "" {
		text = a.styles.Muted.Render("(no text)")
	}
	return strings.Join([]string{
		a.styles.RankBadge(e.ImportanceRank) + " " + a.styles.Title.Render(e.SectionTitle),
		a.styles.Location.Render(fmt.Sprintf("%s, page %d", e.Document, e.PageNumber)),
		"",
		lipgloss.NewStyle().Width(width).Render(text),
	}, "\n")
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var body string
	switch a.currentView {
	case ViewList:
		body = a.sections.View()
	case ViewDetail:
		body = a.styles.Detail.Render(a.detail.View())
	case ViewHelp:
		a.help.ShowAll = true
		body = a.styles.Subtitle.Render("Help") + "\n\n" + a.help.View(a.keymap)
	}

	return lipgloss.JoinVertical(lipgloss.Left, a.header(), body, a.status.View())
}

func (a *App) header() string {
	meta := a.result.Metadata
	return a.styles.Title.Render(meta.JobToBeDone) + "\n" +
		a.styles.Muted.Render(fmt.Sprintf("%s | %d documents | %s",
			meta.Persona, len(meta.InputDocuments), meta.ProcessingTimestamp)) + "\n"
}

// Run starts the TUI application.
func (a *App) Run(opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(a.ctx)}, opts...)
	_, err := tea.NewProgram(a, opts...).Run()
	return err
}

// CurrentView returns the active pane.
func (a *App) CurrentView() ViewType {
	return a.currentView
}

// Selected returns the index of the selected section.
func (a *App) Selected() int {
	return a.sections.Selected()
}

// Ready returns whether the app has been sized.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	bodyHeight := height - headerHeight - 1
	if bodyHeight < 3 {
		bodyHeight = 3
	}
	a.sections.SetDimensions(width, bodyHeight)
	// Detail border and padding take two rows and four columns.
	a.detail.Width = width - 4
	a.detail.Height = bodyHeight - 2
	a.status.SetWidth(width)
	a.help.Width = width
}
