package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/pyrelens/app"
	"github.com/ardnew/pyrelens/flame"
	"github.com/ardnew/pyrelens/pkg"
	"github.com/ardnew/pyrelens/view"
)

func newTestModel(t *testing.T) model {
	t.Helper()

	a := app.New(
		app.Input{Kind: app.InputFile, Path: "test.folded"},
		flame.ParseString("a;b 3\na;c 1\nd 2\n"),
	)

	m := newModel(a)
	m.width = 40
	m.height = 20

	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func press(m model, keys ...string) model {
	for _, k := range keys {
		next, _ := m.Update(key(k))
		m = next.(model)
	}

	return m
}

func TestModel_ToggleKind(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	m = press(m, "t")

	if m.app.View.State.Kind != view.KindTable {
		t.Fatalf("kind = %v after t, want table", m.app.View.State.Kind)
	}

	m = press(m, "t")

	if m.app.View.State.Kind != view.KindFlame {
		t.Fatalf("kind = %v after second t, want flame", m.app.View.State.Kind)
	}
}

func TestModel_NavigationFollowsHottestChild(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	m = press(m, "j")

	if got := m.app.View.State.Selected; !got.Equal(flame.Stack{"a"}) {
		t.Fatalf("selection after j = %v, want [a]", got)
	}

	m = press(m, "j")

	if got := m.app.View.State.Selected; !got.Equal(flame.Stack{"a", "b"}) {
		t.Fatalf("selection after jj = %v, want [a b]", got)
	}
}

func TestModel_FreezeSetsTransient(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	m = press(m, "f")

	if !m.app.View.State.Freeze {
		t.Fatal("freeze flag not set after f")
	}

	if _, ok := m.app.Transient(); !ok {
		t.Fatal("no transient message after freeze")
	}

	// Any later keypress clears the transient.
	m = press(m, "j")

	if msg, ok := m.app.Transient(); ok {
		t.Fatalf("transient %q survived a keypress", msg)
	}
}

func TestModel_SearchPromptModes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		text string
		mode flame.MatchMode
		want string
	}{
		{name: "regex default", text: "b.*", mode: flame.ModeRegex, want: "b.*"},
		{name: "fuzzy prefix", text: "~ab", mode: flame.ModeFuzzy, want: "ab"},
		{name: "literal prefix", text: "=a", mode: flame.ModeLiteral, want: "a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			m := newTestModel(t)

			m.commitPrompt(promptSearch, tt.text)

			p := m.app.View.State.Search
			if p == nil {
				t.Fatal("no search pattern installed")
			}

			if p.Mode != tt.mode || p.Text != tt.want {
				t.Fatalf("pattern = %v %q, want %v %q", p.Mode, p.Text, tt.mode, tt.want)
			}
		})
	}
}

func TestModel_InvalidSearchPatternSetsTransient(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	m.commitPrompt(promptSearch, "(")

	if m.app.View.State.Search != nil {
		t.Fatal("invalid pattern installed")
	}

	if _, ok := m.app.Transient(); !ok {
		t.Fatal("no transient message for invalid pattern")
	}
}

func TestModel_EmptySearchClears(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	m.commitPrompt(promptSearch, "=b")

	if m.app.View.State.Search == nil {
		t.Fatal("no search pattern installed")
	}

	m.commitPrompt(promptSearch, "")

	if m.app.View.State.Search != nil {
		t.Fatal("empty commit did not clear search")
	}
}

func TestModel_PromptOpenAndCancel(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	m = press(m, "/")

	if m.prompt != promptSearch {
		t.Fatalf("prompt = %v after /, want search", m.prompt)
	}

	// Navigation keys go to the prompt, not the view.
	m = press(m, "j")

	if !m.app.View.State.Selected.IsRoot() {
		t.Fatal("navigation leaked through active prompt")
	}

	m = press(m, "esc")

	if m.prompt != promptNone {
		t.Fatalf("prompt = %v after esc, want none", m.prompt)
	}
}

func TestModel_TickQuitsOnSamplerError(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	m.app.SamplerState().SetError("permission denied")

	next, cmd := m.Update(tickMsg{})
	m = next.(model)

	if !errors.Is(m.err, pkg.ErrSamplerExited) {
		t.Fatalf("err = %v, want ErrSamplerExited", m.err)
	}

	if cmd == nil {
		t.Fatal("no quit command returned")
	}

	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("returned command is not tea.Quit")
	}
}

func TestModel_LogPanelRequiresSink(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	m = press(m, "L")

	if m.app.ShowLogPanel {
		t.Fatal("log panel opened without a sink")
	}

	m.app.EnableLogSink()
	m = press(m, "L")

	if !m.app.ShowLogPanel {
		t.Fatal("log panel did not open with a sink")
	}
}

func TestModel_ViewShowsHeaderAndStatus(t *testing.T) {
	t.Parallel()

	m := newTestModel(t)

	out := m.View()

	if !strings.Contains(out, "test.folded") {
		t.Errorf("view missing input path:\n%s", out)
	}

	if !strings.Contains(out, "6 samples") {
		t.Errorf("view missing sample count:\n%s", out)
	}
}

func TestModel_ViewEmptyGraph(t *testing.T) {
	t.Parallel()

	a := app.New(app.Input{Kind: app.InputPid, Pid: 42}, nil)

	m := newModel(a)
	m.width = 40
	m.height = 12

	if out := m.View(); !strings.Contains(out, "waiting for samples") {
		t.Errorf("empty graph view missing placeholder:\n%s", out)
	}
}
