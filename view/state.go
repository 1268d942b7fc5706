package view

import (
	"github.com/ardnew/pyrelens/flame"
)

// Kind selects how the current graph is presented.
type Kind int

const (
	// KindFlame presents the hierarchical graph of frames.
	KindFlame Kind = iota
	// KindTable presents aggregated per-function rows.
	KindTable
)

// String returns the kind name as shown in the status line.
func (k Kind) String() string {
	if k == KindTable {
		return "table"
	}

	return "flame"
}

// Direction is a navigation command from the input collaborator.
type Direction int

const (
	// DirUp moves to the caller (flame) or the previous row (table).
	DirUp Direction = iota
	// DirDown moves into the hottest callee (flame) or the next row (table).
	DirDown
	// DirLeft moves to the previous sibling frame.
	DirLeft
	// DirRight moves to the next sibling frame.
	DirRight
)

// State holds the long-lived toggle and cursor state of the viewer session.
// It survives graph replacement: selection and zoom are [flame.Stack]
// logical addresses, re-resolved against each new graph.
type State struct {
	// Selected addresses the selection cursor. The empty stack means the
	// root (or zoom root) is selected.
	Selected flame.Stack
	// Zoom addresses the frame whose subtree is the display root.
	// Nil means no zoom: the whole graph is shown.
	Zoom flame.Stack
	// Kind selects flame or table presentation.
	Kind Kind
	// Freeze suspends graph replacement while set, letting the operator
	// inspect a snapshot. Sampling continues invisibly in the background.
	Freeze bool
	// Search is the active name-match predicate, or nil.
	Search *flame.SearchPattern
	// Filter is the active table row filter, or nil.
	Filter *flame.RowFilter
	// Row is the selection index into the filtered table rows.
	Row int
}

// ToggleFreeze flips the freeze flag and returns the new value.
func (s *State) ToggleFreeze() bool {
	s.Freeze = !s.Freeze

	return s.Freeze
}

// ToggleKind flips between flame and table presentation.
func (s *State) ToggleKind() {
	if s.Kind == KindFlame {
		s.Kind = KindTable
	} else {
		s.Kind = KindFlame
	}
}
