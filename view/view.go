// Package view holds the presentation state of one flamegraph session: the
// current graph, a selection cursor, a zoom root, the view kind, and the
// active search and filter. It exposes the navigation and query operations
// driven by the input collaborator, and reconciles all positional state
// whenever the underlying graph is replaced by the ingestion pipeline.
package view

import (
	"slices"

	"github.com/ardnew/pyrelens/flame"
)

// View combines a graph with its presentation state.
type View struct {
	// Graph is the currently displayed graph. Never nil; an empty graph
	// stands in until the first sample arrives.
	Graph *flame.Graph
	// State is the session's cursor and toggle state.
	State State
}

// New creates a View over the given (possibly empty) graph with the root
// selected and no zoom.
func New(g *flame.Graph) *View {
	return &View{Graph: g}
}

// Replace installs a new graph and reconciles positional state against it.
// No-op while frozen.
//
// Selection and zoom are re-resolved by name-walk; paths that no longer
// exist are truncated to their deepest surviving ancestor, falling back to
// the root. This keeps the operator's vantage point stable under normal
// sampling turbulence instead of snapping to the root on every refresh.
func (v *View) Replace(g *flame.Graph) {
	if v.State.Freeze || g == nil {
		return
	}

	v.Graph = g
	v.State.Selected = g.Resolve(v.State.Selected)

	if v.State.Zoom != nil {
		zoom := g.Resolve(v.State.Zoom)
		if zoom.IsRoot() {
			v.State.Zoom = nil
		} else {
			v.State.Zoom = zoom
		}
	}

	// A truncated selection can land outside the zoom subtree.
	if v.State.Zoom != nil && !v.State.Selected.HasPrefix(v.State.Zoom) {
		v.State.Selected = slices.Clone(v.State.Zoom)
	}

	if rows := len(v.Rows()); v.State.Row >= rows && rows > 0 {
		v.State.Row = rows - 1
	}
}

// DisplayRoot returns the stack whose subtree is currently shown: the zoom
// root if zoomed, otherwise the synthetic root.
func (v *View) DisplayRoot() flame.Stack {
	if v.State.Zoom != nil {
		return v.State.Zoom
	}

	return flame.Root
}

// IsRootSelected reports whether the selection sits on the display root
// (synthetic root, or zoom root while zoomed) with no deeper selection.
// Used to suppress no-op search-selected commands.
func (v *View) IsRootSelected() bool {
	return v.State.Selected.Equal(v.DisplayRoot())
}

// SelectedStack returns the selection as a stack reference, or false when
// the root is selected (hierarchical addressing, flame kind).
func (v *View) SelectedStack() (flame.Stack, bool) {
	if v.IsRootSelected() {
		return nil, false
	}

	return v.State.Selected, true
}

// SelectedFrame returns the frame under the selection cursor.
func (v *View) SelectedFrame() (*flame.Frame, bool) {
	return v.Graph.Lookup(v.State.Selected)
}

// SelectedRowName returns the short name of the selected table row, or
// false when the table is empty (name addressing, table kind).
func (v *View) SelectedRowName() (string, bool) {
	rows := v.Rows()
	if len(rows) == 0 {
		return "", false
	}

	i := min(v.State.Row, len(rows)-1)

	return rows[i].Name, true
}

// Rows returns the aggregated table rows with the active filter applied.
func (v *View) Rows() []flame.Row {
	return flame.FilterRows(v.Graph.Rows(), v.State.Filter)
}

// Select moves the selection cursor. Movement is clamped at every edge:
// navigating past a boundary is a no-op, never an error.
func (v *View) Select(d Direction) {
	if v.State.Kind == KindTable {
		v.selectRow(d)

		return
	}

	switch d {
	case DirUp:
		v.selectParent()
	case DirDown:
		v.selectChild()
	case DirLeft:
		v.selectSibling(-1)
	case DirRight:
		v.selectSibling(+1)
	}
}

// selectParent moves to the caller, clamped at the display root.
func (v *View) selectParent() {
	if v.IsRootSelected() {
		return
	}

	v.State.Selected = slices.Clone(v.State.Selected.Parent())
}

// selectChild moves into the callee with the highest total count, which is
// the widest (leftmost-hot) frame on the next level.
func (v *View) selectChild() {
	f, ok := v.SelectedFrame()
	if !ok || len(f.Children) == 0 {
		return
	}

	hot := f.Children[0]

	for _, c := range f.Children[1:] {
		if c.Total > hot.Total {
			hot = c
		}
	}

	v.State.Selected = v.State.Selected.Push(hot.Name)
}

// selectSibling moves to the previous or next sibling, clamped at both
// ends of the parent's child list.
func (v *View) selectSibling(step int) {
	if v.IsRootSelected() {
		return
	}

	parent, ok := v.Graph.Lookup(v.State.Selected.Parent())
	if !ok {
		return
	}

	at := -1

	for i, c := range parent.Children {
		if c.Name == v.State.Selected.Leaf() {
			at = i

			break
		}
	}

	next := at + step
	if at < 0 || next < 0 || next >= len(parent.Children) {
		return
	}

	v.State.Selected = v.State.Selected.Parent().
		Push(parent.Children[next].Name)
}

// selectRow moves the table cursor, clamped to the filtered row count.
func (v *View) selectRow(d Direction) {
	rows := len(v.Rows())
	if rows == 0 {
		return
	}

	switch d {
	case DirUp:
		if v.State.Row > 0 {
			v.State.Row--
		}
	case DirDown:
		if v.State.Row < rows-1 {
			v.State.Row++
		}
	case DirLeft, DirRight:
		// No horizontal movement between rows.
	}
}

// ZoomIn makes the selected frame the display root. Zooming on the root is
// a no-op.
func (v *View) ZoomIn() {
	if v.IsRootSelected() {
		return
	}

	v.State.Zoom = slices.Clone(v.State.Selected)
}

// ZoomOut raises the zoom root to its parent; zooming out past the top
// clears zoom entirely.
func (v *View) ZoomOut() {
	if v.State.Zoom == nil {
		return
	}

	parent := v.State.Zoom.Parent()
	if parent.IsRoot() {
		v.State.Zoom = nil

		return
	}

	v.State.Zoom = slices.Clone(parent)
}

// ToggleKind flips between flame and table presentation of the same graph.
func (v *View) ToggleKind() {
	v.State.ToggleKind()
}

// SetSearch installs a new search pattern, invalidating the previous one.
func (v *View) SetSearch(p *flame.SearchPattern) {
	v.State.Search = p
}

// ClearSearch removes the active search pattern.
func (v *View) ClearSearch() {
	v.State.Search = nil
}

// SetFilter installs a new table row filter and resets the row cursor.
func (v *View) SetFilter(f *flame.RowFilter) {
	v.State.Filter = f
	v.State.Row = 0
}

// ClearFilter removes the active table row filter.
func (v *View) ClearFilter() {
	v.State.Filter = nil
	v.State.Row = 0
}

// Reset clears zoom, selection, search, and filter in one step.
func (v *View) Reset() {
	v.State.Selected = nil
	v.State.Zoom = nil
	v.State.Search = nil
	v.State.Filter = nil
	v.State.Row = 0
}
