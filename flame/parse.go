package flame

import (
	"bufio"
	"io"
	"sort"
	"strconv"
	"strings"
)

// Parse builds a [Graph] from folded-stack text read from r: one call path
// per line in the form "frame_1;frame_2;...;frame_n count" with a trailing
// integer sample count.
//
// Malformed lines (missing or non-numeric count, empty path) are skipped,
// never fatal: live profiler output is occasionally truncated mid-write and
// the rest of the sample must survive.
func Parse(r io.Reader) *Graph {
	g := &Graph{root: &Frame{Name: RootName}}

	scanner := bufio.NewScanner(r)
	// Folded lines from deep recursion can exceed the default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	for scanner.Scan() {
		g.addLine(scanner.Text())
	}

	g.root.aggregate()
	g.frames = g.countFrames()

	return g
}

// ParseString builds a [Graph] from folded-stack text held in memory.
func ParseString(s string) *Graph {
	return Parse(strings.NewReader(s))
}

// addLine parses one folded line into the tree, or skips it if malformed.
func (g *Graph) addLine(line string) {
	line = strings.TrimRight(line, " \t\r")

	// The count is the final whitespace-separated field. Frame names may
	// themselves contain spaces (for example "process 123 (python)"), so
	// split from the right.
	cut := strings.LastIndexAny(line, " \t")
	if cut < 0 {
		return
	}

	count, err := strconv.ParseUint(line[cut+1:], 10, 64)
	if err != nil {
		return
	}

	path := line[:cut]
	if strings.TrimSpace(path) == "" {
		return
	}

	f := g.root
	depth := 0

	for name := range strings.SplitSeq(path, ";") {
		if name == "" {
			continue
		}

		f = f.ensureChild(name)
		depth++
	}

	if f == g.root {
		return
	}

	f.Self += count

	if depth > g.depth {
		g.depth = depth
	}
}

// countFrames returns the number of frames below the root.
func (g *Graph) countFrames() int {
	n := 0

	g.Walk(func(*Frame, Stack, int) bool {
		n++

		return true
	})

	return n
}

// String serializes the graph to canonical folded-stack text: one line per
// frame with a nonzero self count, paths joined with ";", lines sorted
// lexicographically. Parsing the result reproduces the graph's aggregate
// counts exactly.
func (g *Graph) String() string {
	var lines []string

	g.Walk(func(f *Frame, s Stack, _ int) bool {
		if f.Self > 0 {
			lines = append(lines,
				strings.Join(s, ";")+" "+strconv.FormatUint(f.Self, 10))
		}

		return true
	})

	sort.Strings(lines)

	var sb strings.Builder

	for _, line := range lines {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}

	return sb.String()
}
