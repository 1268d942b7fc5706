package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/pyrelens/flame"
	"github.com/ardnew/pyrelens/view"
)

// Prompt markers shown while a text prompt owns the keyboard.
const (
	searchPrompt = "/"
	filterPrompt = "filter: "
	logPrompt    = "log/"
)

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.prompt != promptNone {
		return m.handlePromptKey(msg)
	}

	// Transient status messages live until the next keypress.
	m.app.ClearTransient()

	switch msg.String() {
	case "ctrl+c", "q":
		m.quitting = true

		return m, tea.Quit

	case "k", "up":
		m.app.View.Select(view.DirUp)

	case "j", "down":
		m.app.View.Select(view.DirDown)

	case "h", "left":
		m.app.View.Select(view.DirLeft)

	case "l", "right":
		m.app.View.Select(view.DirRight)

	case "z":
		m.app.View.ZoomIn()

	case "Z":
		m.app.View.ZoomOut()

	case "t":
		m.app.View.ToggleKind()

	case "f":
		if m.app.View.State.ToggleFreeze() {
			m.app.SetTransient("frozen (f to resume)")
		}

	case "s":
		if m.app.View.State.Kind == view.KindTable {
			m.app.SearchSelectedRow()
		} else {
			m.app.SearchSelected()
		}

	case "/":
		return m.openPrompt(promptSearch, searchPrompt)

	case "F":
		return m.openPrompt(promptFilter, filterPrompt)

	case "?":
		if m.app.ShowLogPanel {
			return m.openPrompt(promptLogSearch, logPrompt)
		}

	case "n":
		if m.app.ShowLogPanel {
			m.app.Log.NextMatch()
		}

	case "N":
		if m.app.ShowLogPanel {
			m.app.Log.PrevMatch()
		}

	case "ctrl+u":
		if m.app.ShowLogPanel {
			m.app.Log.ScrollUp(m.app.Log.Visible() / 2)
		}

	case "ctrl+d":
		if m.app.ShowLogPanel {
			m.app.Log.ScrollDown(m.app.Log.Visible() / 2)
		}

	case "G":
		if m.app.ShowLogPanel {
			m.app.Log.ScrollToBottom()
		}

	case "esc":
		if m.app.ShowLogPanel && m.app.Log.PatternText() != "" {
			m.app.Log.ClearSearch()
		} else {
			m.app.View.ClearSearch()
		}

	case "r":
		m.app.View.Reset()

	case "L":
		m.app.ToggleLogPanel()

	case "D":
		m.app.ToggleDebug()
	}

	return m, nil
}

func (m model) openPrompt(kind promptKind, marker string) (tea.Model, tea.Cmd) {
	m.prompt = kind
	m.input.Prompt = marker
	m.input.SetValue("")
	m.input.Focus()

	return m, textinput.Blink
}

func (m model) closePrompt() model {
	m.prompt = promptNone
	m.input.Blur()
	m.input.SetValue("")

	return m
}

func (m model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		return m.closePrompt(), nil

	case "enter":
		kind, text := m.prompt, m.input.Value()
		m = m.closePrompt()
		m.commitPrompt(kind, text)

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) commitPrompt(kind promptKind, text string) {
	switch kind {
	case promptSearch:
		if text == "" {
			m.app.View.ClearSearch()

			return
		}

		mode := flame.ModeRegex

		switch {
		case strings.HasPrefix(text, "~"):
			mode = flame.ModeFuzzy
			text = text[1:]
		case strings.HasPrefix(text, "="):
			mode = flame.ModeLiteral
			text = text[1:]
		}

		m.app.SetManualSearch(text, mode, m.caseSensitive)

	case promptFilter:
		m.app.SetRowFilter(text)

	case promptLogSearch:
		if text == "" {
			m.app.Log.ClearSearch()

			return
		}

		if err := m.app.Log.Search(text); err != nil {
			m.app.SetTransient("invalid log pattern: %s", text)
		}
	}
}
