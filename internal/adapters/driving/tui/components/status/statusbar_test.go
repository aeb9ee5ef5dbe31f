package status

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/pdfrank/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/pdfrank/internal/adapters/driving/tui/styles"
)

func TestNewBar(t *testing.T) {
	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()
	bar := NewBar(s, km)

	require.NotNil(t, bar)
	assert.Equal(t, StateList, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.SectionCount())
	assert.Equal(t, 80, bar.Width())
}

func TestNewBar_NilStyles(t *testing.T) {
	bar := NewBar(nil, nil)

	require.NotNil(t, bar)
	assert.NotNil(t, bar.styles)
	assert.NotNil(t, bar.keymap)
	assert.Nil(t, bar.Init())
}

func TestStatusBar_Update(t *testing.T) {
	bar := NewBar(nil, nil)

	updated, cmd := bar.Update(tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, bar, updated)
	assert.Nil(t, cmd)
}

func TestStatusBar_Setters(t *testing.T) {
	bar := NewBar(nil, nil)

	bar.SetState(StateDetail)
	bar.SetMessage("Travel Planner")
	bar.SetSectionCount(5)
	bar.SetWidth(120)

	assert.Equal(t, StateDetail, bar.State())
	assert.Equal(t, "Travel Planner", bar.Message())
	assert.Equal(t, 5, bar.SectionCount())
	assert.Equal(t, 120, bar.Width())
}

func TestStatusBar_Clear(t *testing.T) {
	bar := NewBar(nil, nil)
	bar.SetState(StateError)
	bar.SetMessage("error message")
	bar.SetSectionCount(10)

	bar.Clear()

	assert.Equal(t, StateList, bar.State())
	assert.Equal(t, "", bar.Message())
	assert.Equal(t, 0, bar.SectionCount())
}

func TestStatusBar_View(t *testing.T) {
	tests := []struct {
		name     string
		state    State
		message  string
		count    int
		contains []string
	}{
		{"empty list", StateList, "", 0, []string{"No sections", "open"}},
		{"list with sections", StateList, "", 5, []string{"5 sections", "down"}},
		{"list with message", StateList, "Travel Planner", 5, []string{"Travel Planner"}},
		{"detail", StateDetail, "", 3, []string{"3 sections", "back"}},
		{"help", StateHelp, "", 0, []string{"Help", "quit"}},
		{"error", StateError, "", 0, []string{"Error"}},
		{"error with message", StateError, "bad file", 0, []string{"Error", "bad file"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bar := NewBar(nil, nil)
			bar.SetWidth(120)
			bar.SetState(tt.state)
			bar.SetMessage(tt.message)
			bar.SetSectionCount(tt.count)

			view := bar.View()

			for _, want := range tt.contains {
				assert.Contains(t, view, want)
			}
		})
	}
}

func TestState_Constants(t *testing.T) {
	assert.Equal(t, State("list"), StateList)
	assert.Equal(t, State("detail"), StateDetail)
	assert.Equal(t, State("help"), StateHelp)
	assert.Equal(t, State("error"), StateError)
}
