// Package app ties one viewer session together: the flamegraph view, the
// ingestion mailbox it drains, the sampler health record, the diagnostic
// log panel, and the small session toggles (debug overlay, transient
// status messages, timing measurements).
package app

import (
	"fmt"
	"sync"
	"time"

	"github.com/ardnew/pyrelens/flame"
	"github.com/ardnew/pyrelens/logbuf"
	"github.com/ardnew/pyrelens/sampler"
	"github.com/ardnew/pyrelens/view"
)

// InputKind discriminates the viewer's data source.
type InputKind int

const (
	// InputFile reads folded stacks from a file (optionally watched).
	InputFile InputKind = iota
	// InputPid samples a live process through the external profiler.
	InputPid
)

// Input identifies the viewer's data source for the header line. The core
// view, search, and navigation logic never branches on it; only ingestion
// setup differs between the variants.
type Input struct {
	// Kind discriminates the variant.
	Kind InputKind
	// Path is the folded-stack file path (InputFile).
	Path string
	// Pid is the sampled process id (InputPid).
	Pid int
	// Cmdline is the sampled process's command line, best-effort
	// (InputPid, may be empty).
	Cmdline string
}

// String renders the input description shown in the header.
func (in Input) String() string {
	if in.Kind == InputPid {
		if in.Cmdline != "" {
			return fmt.Sprintf("pid %d (%s)", in.Pid, in.Cmdline)
		}

		return fmt.Sprintf("pid %d", in.Pid)
	}

	return in.Path
}

// App is the application session: one input source, one view, one log
// panel. All methods run on the UI loop; the mailbox, the sampler state,
// and the log line queue are the only members shared with background
// goroutines.
type App struct {
	// View is the flamegraph view under navigation.
	View *view.View
	// Input describes the data source for the header.
	Input Input
	// Elapsed holds named timing measurements for the debug overlay.
	Elapsed map[string]time.Duration
	// Log is the diagnostic log panel.
	Log *logbuf.Buffer
	// ShowLogPanel reports whether the log panel is expanded.
	ShowLogPanel bool
	// HasLogSink reports whether a logging collaborator feeds the panel;
	// without one the panel cannot be toggled open.
	HasLogSink bool
	// Debug enables the timing/stats overlay.
	Debug bool

	transient string

	// Queued log lines, fed by [App.PushLog] from whichever goroutine
	// logs and drained onto the panel by [App.Tick] on the UI loop.
	logmu sync.Mutex
	logq  []string

	next  *sampler.Mailbox[sampler.Parsed]
	state *sampler.State
}

// New creates a session over an initial (possibly empty) graph. The
// returned App owns the parsed-graph mailbox that ingestion publishes to;
// wire producers with [App.Mailbox] and [App.SamplerState].
func New(in Input, g *flame.Graph) *App {
	if g == nil {
		g = flame.ParseString("")
	}

	return &App{
		View:    view.New(g),
		Input:   in,
		Elapsed: make(map[string]time.Duration),
		Log:     logbuf.New(logbuf.DefaultCapacity),
		next:    &sampler.Mailbox[sampler.Parsed]{},
		state:   &sampler.State{},
	}
}

// Mailbox returns the single-slot mailbox the ingestion pipeline publishes
// parsed graphs to.
func (a *App) Mailbox() *sampler.Mailbox[sampler.Parsed] {
	return a.next
}

// SamplerState returns the shared sampler health record.
func (a *App) SamplerState() *sampler.State {
	return a.state
}

// Tick runs once per UI frame. It moves queued log lines onto the panel,
// then drains at most one pending graph from the mailbox (none while
// frozen, so snapshots keep accumulating and overwriting invisibly) and
// swaps it into the view, recording parse and replacement timings. At most
// one swap per tick bounds per-frame work no matter how many snapshots
// arrived while frozen or busy.
//
// A failed sampler is returned as a terminal error: a live view backed by
// a dead data source must stop rather than masquerade as idle.
func (a *App) Tick() error {
	a.drainLog()

	if !a.View.State.Freeze {
		if parsed, ok := a.next.Take(); ok {
			a.Elapsed["parse"] = parsed.Elapsed

			tic := time.Now()
			a.View.Replace(parsed.Graph)
			a.Elapsed["replace"] = time.Since(tic)
		}
	}

	return a.state.Err()
}

// AddElapsed records a named timing measurement for the debug overlay.
func (a *App) AddElapsed(name string, elapsed time.Duration) {
	a.Elapsed[name] = elapsed
}

// Transient returns the current transient status message, if any.
func (a *App) Transient() (string, bool) {
	return a.transient, a.transient != ""
}

// SetTransient installs a one-line status message shown until the next
// keypress.
func (a *App) SetTransient(format string, args ...any) {
	a.transient = fmt.Sprintf(format, args...)
}

// ClearTransient removes the transient status message.
func (a *App) ClearTransient() {
	a.transient = ""
}

// ToggleDebug flips the timing/stats overlay.
func (a *App) ToggleDebug() {
	a.Debug = !a.Debug
}

// SetManualSearch compiles a user-entered pattern and installs it on the
// view. Compile failure surfaces as a transient message and preserves the
// previous pattern.
func (a *App) SetManualSearch(
	text string,
	mode flame.MatchMode,
	caseSensitive bool,
) {
	p, err := flame.NewSearchPattern(text, mode, caseSensitive, true)
	if err != nil {
		a.SetTransient("invalid %s pattern: %s", mode, text)

		return
	}

	a.View.SetSearch(p)
}

// SearchSelected installs a literal search for the selected frame's short
// name. Selecting the root is a no-op: highlighting every frame tells the
// operator nothing.
func (a *App) SearchSelected() {
	if a.View.IsRootSelected() {
		return
	}

	f, ok := a.View.SelectedFrame()
	if !ok {
		return
	}

	// Short names are plain text, valid by construction in literal mode.
	p, err := flame.NewSearchPattern(
		flame.ShortName(f.Name), flame.ModeLiteral, true, false,
	)
	if err != nil {
		return
	}

	a.View.SetSearch(p)
}

// SearchSelectedRow installs a literal search for the selected table row's
// name, then flips back to the flame view to show where it burns.
func (a *App) SearchSelectedRow() {
	name, ok := a.View.SelectedRowName()
	if ok {
		p, err := flame.NewSearchPattern(
			name, flame.ModeLiteral, true, false,
		)
		if err == nil {
			a.View.SetSearch(p)
		}
	}

	a.View.ToggleKind()
}

// SetRowFilter compiles a user-entered filter expression for the table
// view. An empty expression clears the filter; compile failure surfaces as
// a transient message and preserves the previous filter.
func (a *App) SetRowFilter(text string) {
	if text == "" {
		a.View.ClearFilter()

		return
	}

	f, err := flame.NewRowFilter(text)
	if err != nil {
		a.SetTransient("invalid filter: %s", text)

		return
	}

	a.View.SetFilter(f)
}

// PushLog queues one line from the logging collaborator for the log
// panel. Safe to call from any goroutine at any time; the line appears in
// the panel after the next [App.Tick] drains the queue. The panel itself
// is never touched here, so its single-loop discipline holds even though
// logging happens wherever work happens.
func (a *App) PushLog(line string) {
	a.logmu.Lock()
	defer a.logmu.Unlock()

	a.logq = append(a.logq, line)
}

// drainLog moves queued log lines onto the panel.
func (a *App) drainLog() {
	a.logmu.Lock()
	lines := a.logq
	a.logq = nil
	a.logmu.Unlock()

	for _, line := range lines {
		a.Log.Push(line)
	}
}

// EnableLogSink marks that a logging collaborator is attached, allowing
// the log panel to be toggled open.
func (a *App) EnableLogSink() {
	a.HasLogSink = true
}

// ToggleLogPanel expands or collapses the log panel. Without an attached
// log sink the panel stays hidden.
func (a *App) ToggleLogPanel() {
	if a.HasLogSink {
		a.ShowLogPanel = !a.ShowLogPanel
	}
}
