// Package tui implements the interactive curriculum grid.
package tui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/malla-dev/malla/internal/core/curriculum"
	"github.com/malla-dev/malla/internal/core/logging"
)

// toggleResultMsg carries the engine's response to a toggle request.
type toggleResultMsg struct {
	result curriculum.ToggleResult
}

// Model is the bubbletea model for the curriculum grid.
//
// The model never mutates state itself: every toggle goes through the
// engine, and the view is restyled from the fresh snapshot the engine
// returns.
type Model struct {
	engine   *curriculum.Engine
	snapshot curriculum.Snapshot
	cursor   int
	notice   string

	keys keyMap
	help help.Model

	width  int
	height int
}

// New creates the TUI model with an initial snapshot from the engine.
func New(engine *curriculum.Engine) Model {
	return Model{
		engine:   engine,
		snapshot: engine.Snapshot(context.Background()),
		keys:     defaultKeyMap(),
		help:     help.New(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case toggleResultMsg:
		return m.applyToggle(msg.result), nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.snapshot)-1 {
			m.cursor++
		}
		m.notice = ""
		return m, nil

	case key.Matches(msg, m.keys.Toggle):
		if len(m.snapshot) == 0 {
			return m, nil
		}
		return m, m.requestToggle(m.snapshot[m.cursor].Course.ID)

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

// requestToggle runs the engine's toggle as a command so the UI loop
// stays free of direct state mutation.
func (m Model) requestToggle(id string) tea.Cmd {
	engine := m.engine
	return func() tea.Msg {
		return toggleResultMsg{result: engine.RequestToggle(context.Background(), id)}
	}
}

func (m Model) applyToggle(result curriculum.ToggleResult) Model {
	m.snapshot = result.Snapshot

	if result.Rejected {
		labels := make([]string, 0, len(result.Missing))
		for _, req := range result.Missing {
			labels = append(labels, req.Label)
		}
		m.notice = "Locked — requires: " + strings.Join(labels, ", ")
		logger := logging.Component("tui")
		logger.Debug().
			Str("course", result.Course.ID).
			Msg("toggle rejected")
		return m
	}

	m.notice = ""
	return m
}
