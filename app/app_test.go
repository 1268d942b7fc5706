package app

import (
	"errors"
	"sync"
	"testing"

	"github.com/ardnew/pyrelens/flame"
	"github.com/ardnew/pyrelens/pkg"
	"github.com/ardnew/pyrelens/sampler"
)

func newTestApp() *App {
	return New(Input{Kind: InputFile, Path: "test.folded"},
		flame.ParseString("a;b 2\na;c 3\n"))
}

func TestApp_TickSwapsPendingGraph(t *testing.T) {
	a := newTestApp()

	a.Mailbox().Put(sampler.Parsed{Graph: flame.ParseString("x 7\n")})

	if err := a.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if got := a.View.Graph.Samples(); got != 7 {
		t.Errorf("Samples = %d, want 7 (graph swapped)", got)
	}

	if _, ok := a.Elapsed["replace"]; !ok {
		t.Error("replacement timing not recorded")
	}
}

func TestApp_TickFrozenLeavesMailbox(t *testing.T) {
	a := newTestApp()
	a.View.State.Freeze = true

	a.Mailbox().Put(sampler.Parsed{Graph: flame.ParseString("x 7\n")})

	if err := a.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if got := a.View.Graph.Samples(); got != 5 {
		t.Errorf("Samples = %d, want 5 (frozen view keeps its graph)", got)
	}

	// The snapshot stays pending for pickup after unfreezing.
	if !a.Mailbox().Pending() {
		t.Fatal("frozen tick consumed the mailbox")
	}

	a.View.State.Freeze = false

	if err := a.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if got := a.View.Graph.Samples(); got != 7 {
		t.Errorf("Samples = %d, want 7 after unfreezing", got)
	}
}

func TestApp_TickAtMostOneSwap(t *testing.T) {
	a := newTestApp()

	// Two publications between ticks: the mailbox keeps only the latest.
	a.Mailbox().Put(sampler.Parsed{Graph: flame.ParseString("x 1\n")})
	a.Mailbox().Put(sampler.Parsed{Graph: flame.ParseString("x 2\n")})

	if err := a.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if got := a.View.Graph.Samples(); got != 2 {
		t.Errorf("Samples = %d, want 2 (only latest snapshot observed)", got)
	}
}

func TestApp_TickFatalOnSamplerError(t *testing.T) {
	a := newTestApp()
	a.SamplerState().SetError("permission denied")

	err := a.Tick()
	if err == nil {
		t.Fatal("Tick must surface sampler failure")
	}

	if !errors.Is(err, pkg.ErrSamplerExited) {
		t.Errorf("error = %v, want wrapping pkg.ErrSamplerExited", err)
	}
}

func TestApp_PushLogQueuesUntilTick(t *testing.T) {
	a := newTestApp()

	a.PushLog("INFO snapshot parsed")

	if got := a.Log.Len(); got != 0 {
		t.Errorf("Len = %d before tick, want 0 (lines queue until drained)",
			got)
	}

	if err := a.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if got := a.Log.Len(); got != 1 {
		t.Fatalf("Len = %d after tick, want 1", got)
	}

	if got := a.Log.At(0); got != "INFO snapshot parsed" {
		t.Errorf("At(0) = %q", got)
	}
}

func TestApp_PushLogConcurrentWithTicks(t *testing.T) {
	a := newTestApp()

	const writers, lines = 4, 50

	done := make(chan struct{})

	go func() {
		defer close(done)

		var wg sync.WaitGroup

		for range writers {
			wg.Add(1)

			go func() {
				defer wg.Done()

				for range lines {
					a.PushLog("INFO snapshot parsed")
				}
			}()
		}

		wg.Wait()
	}()

	// Drain and read while the writers are still publishing, the way the
	// UI loop does between frames.
	for draining := true; draining; {
		select {
		case <-done:
			draining = false
		default:
		}

		if err := a.Tick(); err != nil {
			t.Fatalf("Tick: %v", err)
		}

		_, _ = a.Log.Window()
	}

	if err := a.Tick(); err != nil {
		t.Fatalf("Tick: %v", err)
	}

	if got := a.Log.Len(); got != writers*lines {
		t.Errorf("Len = %d, want %d (lines lost or duplicated)",
			got, writers*lines)
	}
}

func TestApp_SearchSelected(t *testing.T) {
	a := newTestApp()

	// Root selected: no-op.
	a.SearchSelected()

	if a.View.State.Search != nil {
		t.Fatal("search-selected on root must be a no-op")
	}

	a.View.State.Selected = flame.Stack{"a", "b"}
	a.SearchSelected()

	p := a.View.State.Search
	if p == nil {
		t.Fatal("search-selected installed no pattern")
	}

	if p.Manual {
		t.Error("search-selected pattern must be programmatic")
	}

	if !p.Match("b") || p.Match("c") {
		t.Errorf("pattern %q matches wrong frames", p.Text)
	}
}

func TestApp_SearchSelectedRow(t *testing.T) {
	a := newTestApp()
	a.View.ToggleKind()

	a.SearchSelectedRow()

	if a.View.State.Search == nil {
		t.Fatal("search-selected-row installed no pattern")
	}

	if a.View.State.Kind.String() != "flame" {
		t.Error("search-selected-row must flip back to the flame view")
	}
}

func TestApp_SetManualSearch_InvalidSurfacesTransient(t *testing.T) {
	a := newTestApp()
	a.SetManualSearch("b", flame.ModeLiteral, true)

	previous := a.View.State.Search
	if previous == nil {
		t.Fatal("literal pattern failed to install")
	}

	a.SetManualSearch("(", flame.ModeRegex, true)

	if a.View.State.Search != previous {
		t.Error("invalid pattern must preserve the previous search")
	}

	if _, ok := a.Transient(); !ok {
		t.Error("invalid pattern must surface a transient message")
	}

	a.ClearTransient()

	if _, ok := a.Transient(); ok {
		t.Error("transient message not cleared")
	}
}

func TestApp_SetRowFilter(t *testing.T) {
	a := newTestApp()

	a.SetRowFilter("self > 2")

	if a.View.State.Filter == nil {
		t.Fatal("filter failed to install")
	}

	rows := a.View.Rows()
	if len(rows) != 1 || rows[0].Name != "c" {
		t.Errorf("filtered rows = %v, want just c", rows)
	}

	// Invalid expression keeps the previous filter.
	previous := a.View.State.Filter
	a.SetRowFilter("self >")

	if a.View.State.Filter != previous {
		t.Error("invalid filter must preserve the previous filter")
	}

	// Empty expression clears.
	a.SetRowFilter("")

	if a.View.State.Filter != nil {
		t.Error("empty expression must clear the filter")
	}
}

func TestApp_LogPanelRequiresSink(t *testing.T) {
	a := newTestApp()

	a.ToggleLogPanel()

	if a.ShowLogPanel {
		t.Error("log panel opened without a log sink")
	}

	a.EnableLogSink()
	a.ToggleLogPanel()

	if !a.ShowLogPanel {
		t.Error("log panel failed to open with a sink attached")
	}
}
