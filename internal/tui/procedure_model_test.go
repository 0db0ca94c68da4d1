package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m ProcedureModel, msg tea.Msg) ProcedureModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(ProcedureModel)
	require.True(t, ok)
	return pm
}

func TestProcedureModelLoadsOnWindowSize(t *testing.T) {
	m := NewProcedureModel(sampleSteps(), plain)
	assert.Equal(t, ViewStateLoading, m.State())
	assert.Contains(t, m.View(), "Loading")

	m = send(t, m, tea.WindowSizeMsg{Width: 100, Height: 30})
	assert.Equal(t, ViewStateStep, m.State())
	assert.Contains(t, m.View(), "Step 1 of 3")
	assert.Contains(t, m.View(), "1. Boil")
}

func TestProcedureModelNavigation(t *testing.T) {
	m := send(t, NewProcedureModel(sampleSteps(), plain), tea.WindowSizeMsg{Width: 100, Height: 30})

	m = send(t, m, tea.KeyMsg{Type: tea.KeyRight})
	assert.Equal(t, 1, m.Current())
	assert.Contains(t, m.View(), "2. Cooling")

	m = send(t, m, keyRunes("n"))
	assert.Equal(t, 2, m.Current())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewStateDone, m.State())
	assert.Contains(t, m.View(), "Brew day complete")
	assert.Contains(t, m.View(), "1 h 30 min")

	m = send(t, m, keyRunes("n"))
	assert.Equal(t, ViewStateDone, m.State())

	m = send(t, m, keyRunes("p"))
	assert.Equal(t, ViewStateStep, m.State())
	assert.Equal(t, 2, m.Current())

	m = send(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 1, m.Current())

	m = send(t, m, keyRunes("g"))
	assert.Equal(t, 0, m.Current())

	m = send(t, m, keyRunes("p"))
	assert.Equal(t, 0, m.Current())
}

func TestProcedureModelQuit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
	}{
		{"q", keyRunes("q")},
		{"esc", tea.KeyMsg{Type: tea.KeyEsc}},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewProcedureModel(sampleSteps(), plain)
			next, cmd := m.Update(tt.msg)
			require.NotNil(t, cmd)
			assert.IsType(t, tea.QuitMsg{}, cmd())
			assert.Empty(t, next.View())
		})
	}
}

func TestProcedureModelEmpty(t *testing.T) {
	m := NewProcedureModel(nil, plain)
	assert.Equal(t, ViewStateDone, m.State())
	assert.Contains(t, m.View(), "Brew day complete")

	m = send(t, m, keyRunes("p"))
	assert.Equal(t, ViewStateDone, m.State())
	m = send(t, m, keyRunes("g"))
	assert.Equal(t, ViewStateDone, m.State())
}
