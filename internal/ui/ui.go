// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-starfield/internal/host"
	"github.com/litescript/ls-starfield/internal/logging"
)

// frameMsg drives the engine's frame queue.
type frameMsg time.Time

func frameCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

// Model is the root Bubble Tea model. Bubble Tea delivers every message on
// one goroutine, which is the engine's event loop.
type Model struct {
	term     *host.Terminal
	interval time.Duration
	log      *logging.Logger

	keys       keyMap
	help       help.Model
	showStatus bool

	width   int
	height  int
	ready   bool
	ticking bool
	err     error
}

// New creates a root model around an idle terminal host.
func New(term *host.Terminal, interval time.Duration, log *logging.Logger) Model {
	if log == nil {
		log = logging.Discard()
	}
	return Model{
		term:       term,
		interval:   interval,
		log:        log,
		keys:       newKeyMap(),
		help:       help.New(),
		showStatus: true,
	}
}

// Init implements tea.Model. The engine starts on the first WindowSizeMsg.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.term.Close()
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			if cmd := m.layout(false); cmd != nil {
				return m, cmd
			}
		case key.Matches(msg, m.keys.Status):
			m.showStatus = !m.showStatus
			if cmd := m.layout(false); cmd != nil {
				return m, cmd
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if cmd := m.layout(true); cmd != nil {
			return m, cmd
		}
		m.ready = true

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionMotion {
			m.term.PointerCell(msg.X, msg.Y)
		}

	case frameMsg:
		m.ticking = false
		m.term.Frame(time.Time(msg))
	}

	return m, m.ensureTicking()
}

// layout gives the starfield every row the footer leaves free. Footer toggles
// only resize when the grid shape changes; window resizes always do.
func (m *Model) layout(force bool) tea.Cmd {
	if m.width == 0 && m.height == 0 {
		return nil
	}
	rows := max(m.height-lipgloss.Height(m.renderFooter()), 0)
	if !force && rows == m.term.Viewport.Rows && m.width == m.term.Viewport.Cols {
		return nil
	}
	if err := m.term.Resize(m.width, rows); err != nil {
		m.err = err
		m.log.Error("resize: %v", err)
		return tea.Quit
	}
	return nil
}

// ensureTicking keeps exactly one frame tick in flight while the engine has
// a frame pending.
func (m *Model) ensureTicking() tea.Cmd {
	if m.ticking || !m.term.Frames.Pending() {
		return nil
	}
	m.ticking = true
	return frameCmd(m.interval)
}

// Err returns the error that stopped the program, if any.
func (m Model) Err() error {
	return m.err
}

// Run starts the Bubble Tea program and blocks until it exits or ctx is done.
func Run(ctx context.Context, term *host.Terminal, interval time.Duration, log *logging.Logger) error {
	defer term.Close()

	p := tea.NewProgram(
		New(term, interval, log),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		if errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("run tui: %w", err)
	}
	if fm, ok := final.(Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
