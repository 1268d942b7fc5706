package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/ardnew/pyrelens/flame"
	"github.com/ardnew/pyrelens/pkg"
	"github.com/ardnew/pyrelens/view"
)

func (m model) View() string {
	if m.quitting {
		if m.err != nil {
			return errorStyle.Render(m.err.Error()) + "\n"
		}

		return ""
	}

	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteByte('\n')

	body := m.height - 2 // header and status
	if m.app.ShowLogPanel {
		body -= m.app.Log.Visible() + 1
	}

	if m.app.Debug {
		body--
	}

	if body < 1 {
		body = 1
	}

	if m.app.View.State.Kind == view.KindTable {
		b.WriteString(m.renderTable(body))
	} else {
		b.WriteString(m.renderFlame(body))
	}

	if m.app.ShowLogPanel {
		b.WriteString(m.renderLogPanel())
	}

	if m.app.Debug {
		b.WriteString(m.renderDebug())
		b.WriteByte('\n')
	}

	b.WriteString(m.renderStatus())

	return b.String()
}

func (m model) renderHeader() string {
	g := m.app.View.Graph

	header := fmt.Sprintf("%s: %s | %d samples",
		pkg.Name, m.app.Input, g.Samples())

	if m.app.View.State.Freeze {
		header += " [frozen]"
	}

	if m.app.View.State.Zoom != nil {
		header += fmt.Sprintf(" [zoom: %s]", m.app.View.State.Zoom.Leaf())
	}

	return headerStyle.Render(truncate(header, m.width))
}

// cell is one positioned frame box on a flame row.
type cell struct {
	label string
	style lipgloss.Style
	start int
	width int
}

// renderFlame paints the zoom subtree as rows of proportional cells, one
// row per call depth, root at the top.
func (m model) renderFlame(height int) string {
	v := m.app.View

	root, ok := v.Graph.Lookup(v.DisplayRoot())
	if !ok || root.Total == 0 {
		return statusStyle.Render("waiting for samples...") +
			strings.Repeat("\n", height)
	}

	rows := make([][]cell, 0, height)

	rootLabel := fmt.Sprintf("%s (%d samples)", root.Name, root.Total)
	rows = append(rows, []cell{{
		label: rootLabel,
		style: m.cellStyle(root, v.DisplayRoot(), 0),
		start: 0,
		width: m.width,
	}})

	// Columns tile exactly: each boundary is an independently rounded
	// cumulative sample position, so sibling widths can never overlap and
	// always sum to the parent's width.
	scale := float64(m.width) / float64(root.Total)
	col := func(cum uint64) int { return int(float64(cum)*scale + 0.5) }

	var layout func(f *flame.Frame, s flame.Stack, depth int, cum uint64)

	layout = func(f *flame.Frame, s flame.Stack, depth int, cum uint64) {
		if depth >= height {
			return
		}

		for _, c := range f.Children {
			start, end := col(cum), col(cum+c.Total)
			if end > start {
				for len(rows) <= depth {
					rows = append(rows, nil)
				}

				child := s.Push(c.Name)
				rows[depth] = append(rows[depth], cell{
					label: c.Name,
					style: m.cellStyle(c, child, depth),
					start: start,
					width: end - start,
				})
				layout(c, child, depth+1, cum)
			}

			cum += c.Total
		}
	}

	layout(root, v.DisplayRoot(), 1, 0)

	var b strings.Builder

	for i := 0; i < height; i++ {
		if i < len(rows) {
			b.WriteString(renderRow(rows[i]))
		}

		b.WriteByte('\n')
	}

	return b.String()
}

func (m model) cellStyle(f *flame.Frame, s flame.Stack, depth int) lipgloss.Style {
	v := m.app.View

	switch {
	case s.Equal(v.State.Selected):
		return selectedStyle

	case v.State.Search != nil && v.State.Search.Match(f.Name):
		return matchStyle

	case v.State.Search != nil:
		return dimStyle

	case depth == 0:
		return rootStyle

	case depth%2 == 0:
		return frameAltStyle

	default:
		return frameStyle
	}
}

// renderRow rasterizes positioned cells into one styled line, padding
// gaps between cells with spaces.
func renderRow(cells []cell) string {
	sort.Slice(cells, func(i, j int) bool {
		return cells[i].start < cells[j].start
	})

	var (
		b   strings.Builder
		pos int
	)

	for _, c := range cells {
		if c.start > pos {
			b.WriteString(strings.Repeat(" ", c.start-pos))
		}

		b.WriteString(c.style.Render(pad(c.label, c.width)))
		pos = c.start + c.width
	}

	return b.String()
}

func (m model) renderTable(height int) string {
	rows := m.app.View.Rows()

	nameW := m.width - 32
	if nameW < 8 {
		nameW = 8
	}

	var b strings.Builder

	b.WriteString(tableHeadStyle.Render(fmt.Sprintf(
		"%-*s %10s %10s %8s", nameW, "NAME", "SELF", "TOTAL", "%TOTAL",
	)))
	b.WriteByte('\n')

	avail := height - 1
	if avail < 1 {
		avail = 1
	}

	// Keep the selected row inside the visible window.
	offset := 0
	if m.app.View.State.Row >= avail {
		offset = m.app.View.State.Row - avail + 1
	}

	for i := 0; i < avail; i++ {
		idx := offset + i
		if idx < len(rows) {
			r := rows[idx]
			line := fmt.Sprintf("%-*s %10d %10d %7.2f%%",
				nameW, truncate(r.Name, nameW), r.Self, r.Total, r.Ratio*100)

			if idx == m.app.View.State.Row {
				b.WriteString(tableSelectedStyle.Render(line))
			} else {
				b.WriteString(tableRowStyle.Render(line))
			}
		}

		b.WriteByte('\n')
	}

	return b.String()
}

func (m model) renderLogPanel() string {
	var b strings.Builder

	buf := m.app.Log

	title := "log"
	if buf.PatternText() != "" {
		title += fmt.Sprintf(" /%s/", buf.PatternText())

		if match, ok := buf.Match(); ok {
			title += fmt.Sprintf(" line %d of %d", match+1, buf.Len())
		} else {
			title += " no match"
		}
	}

	b.WriteString(logTitleStyle.Render(truncate(title, m.width)))
	b.WriteByte('\n')

	start, end := buf.Window()
	match, hasMatch := buf.Match()

	for i := 0; i < buf.Visible(); i++ {
		idx := start + i
		if idx < end {
			line := truncate(buf.At(idx), m.width)

			switch {
			case hasMatch && idx == match:
				b.WriteString(logSelectedStyle.Render(line))

			case buf.Pattern() != nil && buf.Pattern().MatchString(buf.At(idx)):
				b.WriteString(logMatchStyle.Render(line))

			default:
				b.WriteString(logLineStyle.Render(line))
			}
		}

		b.WriteByte('\n')
	}

	return b.String()
}

func (m model) renderDebug() string {
	g := m.app.View.Graph

	parts := []string{fmt.Sprintf(
		"frames=%d depth=%d", g.Frames(), g.Depth(),
	)}

	names := make([]string, 0, len(m.app.Elapsed))
	for name := range m.app.Elapsed {
		names = append(names, name)
	}

	sort.Strings(names)

	for _, name := range names {
		parts = append(parts, fmt.Sprintf("%s=%s", name, m.app.Elapsed[name]))
	}

	return debugStyle.Render(truncate(strings.Join(parts, " "), m.width))
}

func (m model) renderStatus() string {
	if m.prompt != promptNone {
		return m.input.View()
	}

	if msg, ok := m.app.Transient(); ok {
		return transientStyle.Render(truncate(msg, m.width))
	}

	v := m.app.View

	parts := []string{v.State.Kind.String()}

	if p := v.State.Search; p != nil {
		frames, total := p.CountMatches(v.Graph)
		parts = append(parts, fmt.Sprintf(
			"search[%s] %q: %d frames, %d samples", p.Mode, p.Text, frames, total,
		))
	}

	if f := v.State.Filter; f != nil {
		parts = append(parts, fmt.Sprintf("filter %q", f.Text))
	}

	parts = append(parts, "/:search t:kind z:zoom f:freeze q:quit")

	return statusStyle.Render(truncate(strings.Join(parts, " | "), m.width))
}

// truncate clips s to at most width runes.
func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}

	r := []rune(s)
	if len(r) <= width {
		return s
	}

	return string(r[:width])
}

// pad clips or right-pads s to exactly width runes.
func pad(s string, width int) string {
	s = truncate(s, width)

	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}

	return s
}
