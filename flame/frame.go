package flame

import (
	"slices"
	"sort"
	"strings"
)

// RootName is the name of the synthetic root frame representing all stacks.
const RootName = "all"

// Frame is one call-stack position in the aggregated tree.
//
// Children are ordered by first appearance in the input and are unique by
// name: repeated identical stacks increment the existing child's self count
// rather than creating a duplicate sibling.
type Frame struct {
	// Name is the full frame identifier as it appeared in the folded input,
	// including any module or file decoration.
	Name string
	// Self is the number of samples observed with execution stopped exactly
	// at this frame.
	Self uint64
	// Total is Self plus the sum of all children's totals.
	Total uint64
	// Children holds this frame's callees in input order.
	Children []*Frame

	index map[string]int // child name -> position in Children
}

// Child returns the child frame with the given name, if present.
func (f *Frame) Child(name string) (*Frame, bool) {
	i, ok := f.index[name]
	if !ok {
		return nil, false
	}

	return f.Children[i], true
}

// ensureChild returns the child frame with the given name, creating and
// appending it first if necessary.
func (f *Frame) ensureChild(name string) *Frame {
	if c, ok := f.Child(name); ok {
		return c
	}

	if f.index == nil {
		f.index = make(map[string]int)
	}

	c := &Frame{Name: name}
	f.index[name] = len(f.Children)
	f.Children = append(f.Children, c)

	return c
}

// aggregate computes Total for this frame and every descendant.
func (f *Frame) aggregate() uint64 {
	total := f.Self

	for _, c := range f.Children {
		total += c.aggregate()
	}

	f.Total = total

	return total
}

// Stack is a logical address of one frame within a graph: the path of frame
// names from (but excluding) the synthetic root. The empty stack addresses
// the root itself.
//
// Stacks survive whole-graph replacement: they are re-resolved by name
// against the new graph instead of holding node references into the old one.
type Stack []string

// Root is the empty stack addressing the synthetic root frame.
var Root = Stack{}

// IsRoot reports whether the stack addresses the synthetic root.
func (s Stack) IsRoot() bool { return len(s) == 0 }

// Parent returns the stack addressing this frame's caller.
// The root's parent is the root.
func (s Stack) Parent() Stack {
	if len(s) == 0 {
		return s
	}

	return s[:len(s)-1]
}

// Push returns a new stack extended with the given frame name.
// The receiver is not modified.
func (s Stack) Push(name string) Stack {
	return append(slices.Clone(s), name)
}

// Leaf returns the name of the addressed frame, or [RootName] for the root.
func (s Stack) Leaf() string {
	if len(s) == 0 {
		return RootName
	}

	return s[len(s)-1]
}

// Equal reports whether two stacks address the same logical position.
func (s Stack) Equal(t Stack) bool { return slices.Equal(s, t) }

// HasPrefix reports whether t is an ancestor-or-self of s.
func (s Stack) HasPrefix(t Stack) bool {
	if len(t) > len(s) {
		return false
	}

	return slices.Equal(s[:len(t)], t)
}

// Graph is an immutable aggregated tree of call frames built from
// folded-stack text. The zero-sample graph (from empty input) is valid and
// renders as a bare root.
type Graph struct {
	root   *Frame
	frames int
	depth  int
}

// Root returns the synthetic root frame.
func (g *Graph) Root() *Frame { return g.root }

// Samples returns the total number of samples in the graph, which equals
// the sum of all input line counts.
func (g *Graph) Samples() uint64 { return g.root.Total }

// Frames returns the number of frames in the graph, excluding the root.
func (g *Graph) Frames() int { return g.frames }

// Depth returns the length of the longest stack in the graph.
func (g *Graph) Depth() int { return g.depth }

// Lookup returns the frame addressed by the given stack, if every name on
// the path resolves.
func (g *Graph) Lookup(s Stack) (*Frame, bool) {
	f := g.root

	for _, name := range s {
		c, ok := f.Child(name)
		if !ok {
			return nil, false
		}

		f = c
	}

	return f, true
}

// Resolve returns the deepest prefix of the given stack that resolves in
// this graph. It falls back to the root when nothing resolves, so the
// result is always a valid address.
func (g *Graph) Resolve(s Stack) Stack {
	f := g.root

	for i, name := range s {
		c, ok := f.Child(name)
		if !ok {
			return slices.Clone(s[:i])
		}

		f = c
	}

	return s
}

// Walk visits every frame below (and excluding) the root in depth-first
// input order. The callback receives the frame, its stack address, and its
// depth (1 for direct children of the root). Returning false prunes the
// frame's subtree.
func (g *Graph) Walk(fn func(f *Frame, s Stack, depth int) bool) {
	var walk func(f *Frame, s Stack)

	walk = func(f *Frame, s Stack) {
		for _, c := range f.Children {
			cs := s.Push(c.Name)
			if fn(c, cs, len(cs)) {
				walk(c, cs)
			}
		}
	}

	walk(g.root, Root)
}

// Row is one aggregated table entry: all frames sharing a short name,
// summed across the graph.
type Row struct {
	// Name is the short (undecorated) function name.
	Name string
	// Self is the summed self count of all frames with this name.
	Self uint64
	// Total is the summed total count of all frames with this name.
	Total uint64
	// Ratio is Total relative to the graph's sample count, in [0, 1].
	Ratio float64
}

// Rows aggregates the graph into per-function table rows keyed by short
// name, sorted by total count descending, then by name for stability.
func (g *Graph) Rows() []Row {
	byName := make(map[string]*Row)

	g.Walk(func(f *Frame, _ Stack, _ int) bool {
		name := ShortName(f.Name)

		r, ok := byName[name]
		if !ok {
			r = &Row{Name: name}
			byName[name] = r
		}

		r.Self += f.Self
		r.Total += f.Total

		return true
	})

	rows := make([]Row, 0, len(byName))
	samples := g.Samples()

	for _, r := range byName {
		if samples > 0 {
			r.Ratio = float64(r.Total) / float64(samples)
		}

		rows = append(rows, *r)
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Total != rows[j].Total {
			return rows[i].Total > rows[j].Total
		}

		return rows[i].Name < rows[j].Name
	})

	return rows
}

// ShortName strips the location decoration from a full frame identifier,
// yielding the display-friendly function name used for row labels and
// search-from-selection.
//
// The fixed convention: everything from the last " (" onward is location
// decoration (for example "readline (codecs.py:319)" becomes "readline").
// Names without decoration are returned unchanged.
func ShortName(name string) string {
	if i := strings.LastIndex(name, " ("); i >= 0 {
		return name[:i]
	}

	return name
}
