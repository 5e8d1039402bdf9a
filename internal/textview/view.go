// Package textview is the search consumer: a scrollable text buffer that
// runs the currently compiled matcher forward or backward from the active
// match, honoring the wrap-around preference at the buffer boundaries.
package textview

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"

	"findbar/internal/engine"
)

// View holds the buffer and the active match position
type View struct {
	content string
	lines   []string
	starts  []int // byte offset of each line start within content

	matcher engine.Matcher
	wrap    bool

	curBegin int // byte range of the active match, curBegin == -1 when none
	curEnd   int

	top    int // first visible line
	width  int
	height int
}

// New creates an empty view
func New() *View {
	return &View{curBegin: -1}
}

// SetContent replaces the buffer and resets scroll and match state
func (v *View) SetContent(content string) {
	v.content = content
	v.lines = strings.Split(content, "\n")

	v.starts = make([]int, len(v.lines))
	offset := 0
	for i, line := range v.lines {
		v.starts[i] = offset
		offset += len(line) + 1 // trailing newline
	}

	v.top = 0
	v.curBegin, v.curEnd = -1, 0
}

// SetMatcher installs the compiled matcher to search with. The previous
// match position is discarded since it belongs to the old pattern; nil
// clears highlighting entirely.
func (v *View) SetMatcher(m engine.Matcher) {
	v.matcher = m
	v.curBegin, v.curEnd = -1, 0
}

// SetWrapAround controls whether searches continue from the opposite end of
// the buffer when they run out of matches.
func (v *View) SetWrapAround(on bool) {
	v.wrap = on
}

// SetSize sets the viewport dimensions in cells
func (v *View) SetSize(width, height int) {
	v.width = width
	v.height = height
	v.clampScroll()
}

// FindNext advances to the next match, wrapping to the top if enabled.
// Returns false when no further match exists; the active match is kept.
func (v *View) FindNext() bool {
	if v.matcher == nil {
		return false
	}

	start := 0
	if v.curBegin >= 0 {
		start = v.advance(v.curBegin, v.curEnd)
	}

	begin, end, ok := v.matcher.FindIndex(v.content, start)
	if !ok && v.wrap && start > 0 {
		begin, end, ok = v.matcher.FindIndex(v.content, 0)
	}
	if !ok {
		return false
	}

	v.setMatch(begin, end)
	return true
}

// FindPrevious moves to the previous match, wrapping to the bottom if enabled
func (v *View) FindPrevious() bool {
	if v.matcher == nil {
		return false
	}

	before := len(v.content) + 1
	if v.curBegin >= 0 {
		before = v.curBegin
	}

	begin, end, ok := v.matcher.FindLastIndex(v.content, before)
	if !ok && v.wrap && before <= len(v.content) {
		begin, end, ok = v.matcher.FindLastIndex(v.content, len(v.content)+1)
	}
	if !ok {
		return false
	}

	v.setMatch(begin, end)
	return true
}

// CurrentMatch returns the byte range of the active match
func (v *View) CurrentMatch() (begin, end int, ok bool) {
	if v.curBegin < 0 {
		return 0, 0, false
	}
	return v.curBegin, v.curEnd, true
}

// CurrentLine returns the 1-based line of the active match, 0 when none
func (v *View) CurrentLine() int {
	if v.curBegin < 0 {
		return 0
	}
	return v.lineOf(v.curBegin) + 1
}

// LineCount returns the number of lines in the buffer
func (v *View) LineCount() int {
	return len(v.lines)
}

// ScrollBy moves the viewport by delta lines
func (v *View) ScrollBy(delta int) {
	v.top += delta
	v.clampScroll()
}

// ScrollToTop jumps to the beginning of the buffer
func (v *View) ScrollToTop() {
	v.top = 0
}

// ScrollToBottom jumps to the end of the buffer
func (v *View) ScrollToBottom() {
	v.top = len(v.lines) - v.height
	v.clampScroll()
}

// Render draws the visible window, styling every match on screen and the
// active match with its own style.
func (v *View) Render(matchStyle, currentStyle lipgloss.Style) string {
	if v.height <= 0 || len(v.lines) == 0 {
		return ""
	}

	bottom := v.top + v.height
	if bottom > len(v.lines) {
		bottom = len(v.lines)
	}

	rendered := make([]string, 0, bottom-v.top)
	for i := v.top; i < bottom; i++ {
		rendered = append(rendered, v.renderLine(i, matchStyle, currentStyle))
	}
	return strings.Join(rendered, "\n")
}

func (v *View) renderLine(i int, matchStyle, currentStyle lipgloss.Style) string {
	line := v.lines[i]
	if v.matcher == nil || line == "" {
		return line
	}

	lineStart := v.starts[i]
	lineEnd := lineStart + len(line)

	var b strings.Builder
	pos := lineStart
	at := lineStart
	for at < lineEnd {
		mb, me, ok := v.matcher.FindIndex(v.content, at)
		if !ok || mb >= lineEnd {
			break
		}
		if me > lineEnd {
			me = lineEnd
		}
		if mb > pos {
			b.WriteString(v.content[pos:mb])
		}
		style := matchStyle
		if mb == v.curBegin {
			style = currentStyle
		}
		b.WriteString(style.Render(v.content[mb:me]))
		pos = me
		at = v.advance(mb, me)
	}
	b.WriteString(v.content[pos:lineEnd])
	return b.String()
}

func (v *View) setMatch(begin, end int) {
	v.curBegin, v.curEnd = begin, end
	v.scrollToMatch()
}

func (v *View) scrollToMatch() {
	line := v.lineOf(v.curBegin)
	if line < v.top {
		v.top = line
	} else if v.height > 0 && line >= v.top+v.height {
		v.top = line - v.height + 1
	}
	v.clampScroll()
}

func (v *View) lineOf(offset int) int {
	return sort.Search(len(v.starts), func(i int) bool {
		return v.starts[i] > offset
	}) - 1
}

// advance returns the next search start after a match, stepping over one
// rune for zero-width matches.
func (v *View) advance(begin, end int) int {
	if end > begin {
		return end
	}
	_, size := utf8.DecodeRuneInString(v.content[begin:])
	if size == 0 {
		return begin + 1
	}
	return begin + size
}

func (v *View) clampScroll() {
	max := len(v.lines) - v.height
	if max < 0 {
		max = 0
	}
	if v.top > max {
		v.top = max
	}
	if v.top < 0 {
		v.top = 0
	}
}
