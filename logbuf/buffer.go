// Package logbuf implements the viewer's diagnostic log panel: a bounded
// ring buffer of text lines with an independent scroll position, an
// auto-scroll mode, and regex search with match navigation.
//
// Scroll offset counts lines hidden below the viewport bottom, so offset 0
// always shows the newest lines. The buffer goes to some trouble to keep
// the operator's viewport visually pinned while lines keep arriving: new
// pushes and evictions adjust the offset in lockstep so the content on
// screen does not shift unless auto-scroll is engaged.
package logbuf

import (
	"regexp"

	"github.com/ardnew/pyrelens/pkg"
)

// DefaultCapacity bounds the buffer when no capacity is configured.
const DefaultCapacity = 1000

// DefaultVisible is the initial viewport height in lines.
const DefaultVisible = 8

// Buffer is a bounded ring of log lines with scroll and search state.
// It is not safe for concurrent use; all access happens on the UI loop.
type Buffer struct {
	entries []string
	head    int // ring index of the oldest line
	count   int

	offset     int // lines hidden below the viewport bottom
	autoScroll bool
	visible    int

	pattern     *regexp.Regexp
	patternText string
	match       int // logical index of current match, -1 when none
}

// New creates an empty buffer holding at most capacity lines.
// Non-positive capacities use [DefaultCapacity].
func New(capacity int) *Buffer {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}

	return &Buffer{
		entries:    make([]string, capacity),
		autoScroll: true,
		visible:    DefaultVisible,
		match:      -1,
	}
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int { return b.count }

// Cap returns the buffer capacity.
func (b *Buffer) Cap() int { return len(b.entries) }

// At returns the line at logical index i, oldest first.
func (b *Buffer) At(i int) string {
	return b.entries[(b.head+i)%len(b.entries)]
}

// AutoScroll reports whether the viewport follows new lines.
func (b *Buffer) AutoScroll() bool { return b.autoScroll }

// Offset returns the number of lines hidden below the viewport bottom.
func (b *Buffer) Offset() int { return b.offset }

// Visible returns the viewport height in lines.
func (b *Buffer) Visible() int { return b.visible }

// SetVisible updates the viewport height, re-clamping the scroll offset.
func (b *Buffer) SetVisible(n int) {
	if n < 1 {
		n = 1
	}

	b.visible = n
	b.offset = min(b.offset, b.maxOffset())
}

// Push appends a line to the tail, evicting the oldest line once capacity
// is exceeded. When auto-scroll is off, the scroll offset tracks the
// arrival so the viewport content the operator is reading stays put.
func (b *Buffer) Push(line string) {
	if b.count == len(b.entries) {
		// Evict the oldest line. Any current match shifts down one logical
		// index with it. The offset is left alone here: the evicted line
		// lies above the viewport, so the distance to the bottom is
		// unchanged. The clamp below decrements it in lockstep once the
		// viewport reaches the top and eviction starts eating into it.
		b.head = (b.head + 1) % len(b.entries)
		b.count--

		if b.match >= 0 {
			b.match--
			if b.match < 0 {
				// The matched line itself was evicted.
				b.match = -1
			}
		}
	}

	b.entries[(b.head+b.count)%len(b.entries)] = line
	b.count++

	if !b.autoScroll {
		b.offset++
	}

	b.offset = min(b.offset, b.maxOffset())
}

// ScrollUp moves the viewport n lines toward older entries and disengages
// auto-scroll.
func (b *Buffer) ScrollUp(n int) {
	b.offset = min(b.offset+n, b.maxOffset())
	b.autoScroll = false
}

// ScrollDown moves the viewport n lines toward newer entries. Reaching the
// bottom re-engages auto-scroll.
func (b *Buffer) ScrollDown(n int) {
	b.offset = max(b.offset-n, 0)

	if b.offset == 0 {
		b.autoScroll = true
	}
}

// ScrollToBottom jumps to the newest lines and re-engages auto-scroll.
func (b *Buffer) ScrollToBottom() {
	b.offset = 0
	b.autoScroll = true
}

// Window returns the logical index range [start, end) of lines inside the
// current viewport.
func (b *Buffer) Window() (start, end int) {
	end = b.count - b.offset
	start = max(end-b.visible, 0)

	return start, end
}

// Search compiles the pattern and selects the most recent matching line,
// scanning backward from the tail: operators searching logs almost always
// want the latest relevant event first. An invalid pattern returns an
// error wrapping [pkg.ErrInvalidPattern] and leaves any previous search
// untouched.
func (b *Buffer) Search(pattern string) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return pkg.ErrInvalidPattern.Wrap(err)
	}

	b.pattern = re
	b.patternText = pattern
	b.match = -1

	for i := b.count - 1; i >= 0; i-- {
		if re.MatchString(b.At(i)) {
			b.match = i
			b.CenterOn(i)

			break
		}
	}

	return nil
}

// ClearSearch removes the active pattern and match.
func (b *Buffer) ClearSearch() {
	b.pattern = nil
	b.patternText = ""
	b.match = -1
}

// Pattern returns the active search pattern, or nil.
func (b *Buffer) Pattern() *regexp.Regexp { return b.pattern }

// PatternText returns the active pattern source text.
func (b *Buffer) PatternText() string { return b.patternText }

// Match returns the logical index of the current match.
func (b *Buffer) Match() (int, bool) {
	if b.match < 0 {
		return 0, false
	}

	return b.match, true
}

// NextMatch advances to the next matching line toward the tail. The scan
// does not wrap: with no later match, the current match is unchanged.
func (b *Buffer) NextMatch() {
	if b.pattern == nil || b.count == 0 {
		return
	}

	for i := b.match + 1; i < b.count; i++ {
		if b.pattern.MatchString(b.At(i)) {
			b.match = i
			b.CenterOn(i)

			return
		}
	}
}

// PrevMatch moves to the previous matching line toward the head. The scan
// does not wrap: with no earlier match, the current match is unchanged.
func (b *Buffer) PrevMatch() {
	if b.pattern == nil || b.count == 0 {
		return
	}

	start := b.count
	if b.match >= 0 {
		start = b.match
	}

	for i := start - 1; i >= 0; i-- {
		if b.pattern.MatchString(b.At(i)) {
			b.match = i
			b.CenterOn(i)

			return
		}
	}
}

// CenterOn scrolls so that the given logical line sits at the viewport's
// vertical midpoint. Lines already inside the viewport do not move it.
// Auto-scroll is re-derived from the resulting offset.
func (b *Buffer) CenterOn(line int) {
	start, end := b.Window()
	if line >= start && line < end {
		return
	}

	half := b.visible / 2
	b.offset = max(b.count-(line+half+1), 0)
	b.offset = min(b.offset, b.maxOffset())
	b.autoScroll = b.offset == 0
}

// maxOffset returns the largest valid scroll offset: all lines above the
// viewport except one screenful.
func (b *Buffer) maxOffset() int {
	return max(b.count-b.visible, 0)
}
