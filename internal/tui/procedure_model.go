package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/guerrinflorian/ConcepteurBiere/internal/procedure"
)

// ViewState is the stepper's display state.
type ViewState int

const (
	// ViewStateLoading waits for the first window size.
	ViewStateLoading ViewState = iota
	// ViewStateStep shows the current step.
	ViewStateStep
	// ViewStateDone is shown after the last step.
	ViewStateDone
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	chromeLines   = 4
)

type keyMap struct {
	Next key.Binding
	Prev key.Binding
	Top  key.Binding
	Quit key.Binding
}

func (k keyMap) ShortHelp() []key.Binding { return []key.Binding{k.Prev, k.Next, k.Top, k.Quit} }

func (k keyMap) FullHelp() [][]key.Binding { return [][]key.Binding{k.ShortHelp()} }

func defaultKeyMap() keyMap {
	return keyMap{
		Next: key.NewBinding(key.WithKeys("right", "n", "l", "enter"), key.WithHelp("→/n", "next step")),
		Prev: key.NewBinding(key.WithKeys("left", "p", "h"), key.WithHelp("←/p", "previous step")),
		Top:  key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "first step")),
		Quit: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ProcedureModel walks through the brew day one step at a time.
type ProcedureModel struct {
	steps    []procedure.Step
	current  int
	state    ViewState
	opts     Options
	keys     keyMap
	help     help.Model
	viewport viewport.Model
	width    int
	height   int
	quitting bool
}

// NewProcedureModel creates a stepper over steps.
func NewProcedureModel(steps []procedure.Step, opts Options) ProcedureModel {
	m := ProcedureModel{
		steps:    steps,
		state:    ViewStateLoading,
		opts:     opts,
		keys:     defaultKeyMap(),
		help:     help.New(),
		viewport: viewport.New(defaultWidth, defaultHeight-chromeLines),
		width:    defaultWidth,
		height:   defaultHeight,
	}
	if len(steps) == 0 {
		m.state = ViewStateDone
	}
	m.refresh()
	return m
}

// Init implements tea.Model.
func (m ProcedureModel) Init() tea.Cmd {
	return nil
}

// Current returns the index of the displayed step.
func (m ProcedureModel) Current() int {
	return m.current
}

// State returns the display state.
func (m ProcedureModel) State() ViewState {
	return m.state
}

// Update implements tea.Model.
func (m ProcedureModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width
		m.viewport.Height = max(1, msg.Height-chromeLines)
		if m.state == ViewStateLoading {
			m.state = ViewStateStep
		}
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m ProcedureModel) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Next):
		if m.state == ViewStateDone {
			return m, nil
		}
		if m.current == len(m.steps)-1 {
			m.state = ViewStateDone
		} else {
			m.current++
			m.state = ViewStateStep
		}
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Prev):
		if m.state == ViewStateDone && len(m.steps) > 0 {
			m.state = ViewStateStep
		} else if m.current > 0 {
			m.current--
		}
		m.refresh()
		return m, nil
	case key.Matches(msg, m.keys.Top):
		if len(m.steps) > 0 {
			m.current = 0
			m.state = ViewStateStep
			m.refresh()
		}
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *ProcedureModel) refresh() {
	if len(m.steps) == 0 {
		m.viewport.SetContent("")
		return
	}
	m.viewport.SetContent(RenderStep(m.current, m.steps[m.current], m.opts))
	m.viewport.GotoTop()
}

// View implements tea.Model.
func (m ProcedureModel) View() string {
	if m.quitting {
		return ""
	}
	th := newTheme(m.opts)

	//nolint:exhaustive // loading and step share the default view
	switch m.state {
	case ViewStateLoading:
		return "Loading procedure..."
	case ViewStateDone:
		total := Duration(procedure.TotalDurationMin(m.steps))
		return th.title.Render("Brew day complete") + "\n" +
			th.row("Steps", fmt.Sprintf("%d", len(m.steps))) + "\n" +
			th.row("Total duration", total) + "\n\n" +
			m.help.View(m.keys)
	}

	progress := th.muted.Render(fmt.Sprintf("Step %d of %d", m.current+1, len(m.steps)))
	return lipgloss.JoinVertical(lipgloss.Left,
		progress,
		m.viewport.View(),
		"",
		m.help.View(m.keys),
	)
}
