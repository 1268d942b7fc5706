package view

import (
	"testing"

	"github.com/ardnew/pyrelens/flame"
)

const folded = `a;b;c 4
a;b;d 2
a;e 3
f 1
`

func newTestView(t *testing.T) *View {
	t.Helper()

	return New(flame.ParseString(folded))
}

func TestView_SelectChild_FollowsHottestFrame(t *testing.T) {
	v := newTestView(t)

	// Root -> a (total 9 beats f's 1), a -> b (6 beats e's 3), b -> c (4).
	want := []flame.Stack{
		{"a"},
		{"a", "b"},
		{"a", "b", "c"},
	}

	for _, w := range want {
		v.Select(DirDown)

		if !v.State.Selected.Equal(w) {
			t.Fatalf("Selected = %v, want %v", v.State.Selected, w)
		}
	}

	// c is a leaf: further descent is clamped.
	v.Select(DirDown)

	if !v.State.Selected.Equal(flame.Stack{"a", "b", "c"}) {
		t.Errorf("descent past leaf moved selection to %v", v.State.Selected)
	}
}

func TestView_SelectSibling_Clamped(t *testing.T) {
	v := newTestView(t)
	v.State.Selected = flame.Stack{"a", "b"}

	v.Select(DirRight)

	if !v.State.Selected.Equal(flame.Stack{"a", "e"}) {
		t.Fatalf("Selected = %v, want [a e]", v.State.Selected)
	}

	// e is the last sibling: clamped.
	v.Select(DirRight)

	if !v.State.Selected.Equal(flame.Stack{"a", "e"}) {
		t.Errorf("Selected = %v, want [a e] (clamped)", v.State.Selected)
	}

	v.Select(DirLeft)
	v.Select(DirLeft)

	if !v.State.Selected.Equal(flame.Stack{"a", "b"}) {
		t.Errorf("Selected = %v, want [a b] (clamped)", v.State.Selected)
	}
}

func TestView_SelectParent_ClampedAtRoot(t *testing.T) {
	v := newTestView(t)
	v.State.Selected = flame.Stack{"a"}

	v.Select(DirUp)

	if !v.IsRootSelected() {
		t.Fatal("expected root selected after moving up from depth 1")
	}

	v.Select(DirUp)

	if !v.IsRootSelected() {
		t.Error("moving up at root must be a no-op")
	}
}

func TestView_Zoom(t *testing.T) {
	v := newTestView(t)
	v.State.Selected = flame.Stack{"a", "b"}

	v.ZoomIn()

	if !v.DisplayRoot().Equal(flame.Stack{"a", "b"}) {
		t.Fatalf("DisplayRoot = %v, want [a b]", v.DisplayRoot())
	}

	// Zoom root selected means root-selected within the zoomed view.
	if !v.IsRootSelected() {
		t.Error("selection at zoom root should report root selected")
	}

	v.ZoomOut()

	if !v.DisplayRoot().Equal(flame.Stack{"a"}) {
		t.Fatalf("DisplayRoot = %v, want [a]", v.DisplayRoot())
	}

	v.ZoomOut()

	if v.State.Zoom != nil {
		t.Error("zooming out past the top must clear zoom entirely")
	}

	v.ZoomOut() // no-op without zoom

	if v.State.Zoom != nil {
		t.Error("ZoomOut without zoom must be a no-op")
	}
}

func TestView_ZoomIn_RootNoop(t *testing.T) {
	v := newTestView(t)

	v.ZoomIn()

	if v.State.Zoom != nil {
		t.Error("zooming on the root must be a no-op")
	}
}

func TestView_Replace_TruncatesToSurvivingAncestor(t *testing.T) {
	v := newTestView(t)
	v.State.Selected = flame.Stack{"a", "b", "c"}

	// New tree has a and b but not c.
	v.Replace(flame.ParseString("a;b;x 5\n"))

	if !v.State.Selected.Equal(flame.Stack{"a", "b"}) {
		t.Errorf("Selected = %v, want [a b]", v.State.Selected)
	}
}

func TestView_Replace_FallsBackToRoot(t *testing.T) {
	v := newTestView(t)
	v.State.Selected = flame.Stack{"f"}

	v.Replace(flame.ParseString("z 5\n"))

	if !v.IsRootSelected() {
		t.Errorf("Selected = %v, want root", v.State.Selected)
	}
}

func TestView_Replace_ReconcilesZoom(t *testing.T) {
	v := newTestView(t)
	v.State.Selected = flame.Stack{"a", "b", "c"}
	v.ZoomIn()

	// b vanished: zoom truncates to [a], selection follows into the zoom
	// subtree.
	v.Replace(flame.ParseString("a;e 3\n"))

	if !v.DisplayRoot().Equal(flame.Stack{"a"}) {
		t.Fatalf("DisplayRoot = %v, want [a]", v.DisplayRoot())
	}

	if !v.State.Selected.HasPrefix(v.State.Zoom) {
		t.Errorf("Selected %v escaped zoom subtree %v",
			v.State.Selected, v.State.Zoom)
	}
}

func TestView_Replace_FrozenIsNoop(t *testing.T) {
	v := newTestView(t)
	old := v.Graph
	v.State.Freeze = true

	v.Replace(flame.ParseString("z 1\n"))

	if v.Graph != old {
		t.Error("Replace while frozen must keep the displayed graph")
	}
}

func TestView_TableSelection(t *testing.T) {
	v := newTestView(t)
	v.ToggleKind()

	if v.State.Kind != KindTable {
		t.Fatal("ToggleKind did not switch to table")
	}

	rows := v.Rows()
	if len(rows) == 0 {
		t.Fatal("expected table rows")
	}

	v.Select(DirUp) // clamped at first row

	if v.State.Row != 0 {
		t.Errorf("Row = %d, want 0", v.State.Row)
	}

	for range len(rows) + 3 {
		v.Select(DirDown)
	}

	if v.State.Row != len(rows)-1 {
		t.Errorf("Row = %d, want %d (clamped)", v.State.Row, len(rows)-1)
	}

	name, ok := v.SelectedRowName()
	if !ok || name != rows[len(rows)-1].Name {
		t.Errorf("SelectedRowName = %q/%v, want %q",
			name, ok, rows[len(rows)-1].Name)
	}
}

func TestView_RowFilterAppliesToSelection(t *testing.T) {
	v := newTestView(t)
	v.ToggleKind()

	f, err := flame.NewRowFilter(`name == "e"`)
	if err != nil {
		t.Fatalf("NewRowFilter: %v", err)
	}

	v.SetFilter(f)

	rows := v.Rows()
	if len(rows) != 1 || rows[0].Name != "e" {
		t.Fatalf("filtered rows = %v, want just e", rows)
	}

	name, ok := v.SelectedRowName()
	if !ok || name != "e" {
		t.Errorf("SelectedRowName = %q/%v, want e", name, ok)
	}
}

func TestView_SelectedStack(t *testing.T) {
	v := newTestView(t)

	if _, ok := v.SelectedStack(); ok {
		t.Error("root selection must not yield a stack reference")
	}

	v.State.Selected = flame.Stack{"a", "e"}

	s, ok := v.SelectedStack()
	if !ok || !s.Equal(flame.Stack{"a", "e"}) {
		t.Errorf("SelectedStack = %v/%v, want [a e]", s, ok)
	}
}

func TestView_Reset(t *testing.T) {
	v := newTestView(t)
	v.State.Selected = flame.Stack{"a", "b"}
	v.ZoomIn()

	p, err := flame.NewSearchPattern("b", flame.ModeLiteral, true, true)
	if err != nil {
		t.Fatalf("NewSearchPattern: %v", err)
	}

	v.SetSearch(p)
	v.Reset()

	if v.State.Zoom != nil || v.State.Search != nil || !v.IsRootSelected() {
		t.Errorf("Reset left state: %+v", v.State)
	}
}
