package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/pyrelens/app"
)

// DefaultTickInterval is the delay between view refresh ticks. Each tick
// drains at most one parsed graph from the ingestion mailbox.
const DefaultTickInterval = 100 * time.Millisecond

// tickMsg drives one [app.App.Tick] per rendered frame.
type tickMsg time.Time

// promptKind identifies which input prompt, if any, owns keystrokes.
type promptKind int

const (
	promptNone promptKind = iota
	promptSearch
	promptFilter
	promptLogSearch
)

const defaultWidth = 80

// model is the Bubble Tea model for the viewer.
type model struct {
	app           *app.App
	input         textinput.Model
	prompt        promptKind
	interval      time.Duration
	width         int
	height        int
	caseSensitive bool
	quitting      bool
	err           error
}

// Option applies a configuration option to the UI model.
type Option func(model) model

// WithTickInterval overrides the refresh tick interval.
func WithTickInterval(d time.Duration) Option {
	return func(m model) model {
		if d > 0 {
			m.interval = d
		}

		return m
	}
}

// WithCaseSensitive sets case sensitivity for manually entered search
// patterns.
func WithCaseSensitive(enable bool) Option {
	return func(m model) model {
		m.caseSensitive = enable

		return m
	}
}

// Run drives the interactive viewer until the operator quits or the
// sampler fails. A sampler failure is returned as the program error.
func Run(ctx context.Context, a *app.App, opts ...Option) error {
	m := newModel(a, opts...)

	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return err
	}

	if fm, ok := final.(model); ok && fm.err != nil {
		return fm.err
	}

	return nil
}

func newModel(a *app.App, opts ...Option) model {
	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = defaultWidth

	m := model{
		app:      a,
		input:    ti,
		interval: DefaultTickInterval,
		width:    defaultWidth,
		height:   24,
	}

	for _, opt := range opts {
		m = opt(m)
	}

	return m
}

func (m model) Init() tea.Cmd {
	return tea.Batch(m.tick(), textinput.Blink)
}

func (m model) tick() tea.Cmd {
	return tea.Tick(m.interval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.app.Log.SetVisible(logPanelLines(msg.Height))

		return m, nil

	case tickMsg:
		if err := m.app.Tick(); err != nil {
			m.err = err
			m.quitting = true

			return m, tea.Quit
		}

		return m, m.tick()
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

// logPanelLines returns the number of log lines shown for a terminal of
// the given height.
func logPanelLines(height int) int {
	n := height / 3
	if n > 10 {
		n = 10
	}

	if n < 2 {
		n = 2
	}

	return n
}
