package editline

import (
	"slices"

	"github.com/mattn/go-runewidth"
)

// Complete completes the text between start and the edit point against
// matches, usually from a handler bound to Tab.
//
// The longest prefix shared by all matches is inserted in place of what was
// typed after start. Complete reports true when the completion is final:
// there is a single match, or allowPrefix is set and the shared prefix is
// itself one of the matches. When nothing could be inserted and several
// matches remain, they are listed below the line.
//
//	e.Bind('\t', editline.HandlerFunc(func(s *editline.Session, _ []byte) editline.Outcome {
//		start := strings.LastIndexByte(s.Line()[:s.Point()], ' ') + 1
//		word := s.Line()[start:s.Point()]
//		if s.Complete(start, lookupCommands(word), false) {
//			s.Insert(" ")
//		}
//		return editline.Handled
//	}))
func (s *Session) Complete(start int, matches []string, allowPrefix bool) bool {
	if len(matches) == 0 {
		return false
	}

	prefix := s.commonPrefix(matches)
	typed := max(s.state.pos-start, 0)
	progressed := false
	if len(prefix) > typed {
		s.Insert(prefix[typed:])
		progressed = true
	}

	if len(matches) == 1 {
		return true
	}
	if allowPrefix && slices.Contains(matches, prefix) {
		return true
	}
	if !progressed {
		s.DisplayMatches(matches)
	}
	return false
}

// commonPrefix returns the longest prefix of all matches that ends on a
// character boundary.
func (s *Session) commonPrefix(matches []string) string {
	first := matches[0]
	n := len(first)
	for _, m := range matches[1:] {
		i := 0
		for i < n && i < len(m) && m[i] == first[i] {
			i++
		}
		n = i
	}
	for n > 0 && !isUnitBoundary(s.editor.cm, []byte(first), n) {
		n--
	}
	return first[:n]
}

// DisplayMatches lists matches in columns below the line, then draws the
// line again underneath.
func (s *Session) DisplayMatches(matches []string) {
	if len(matches) == 0 {
		return
	}
	r := s.editor.renderer
	l := &s.state

	// Start below the last row of the line, not below the cursor.
	if down := l.maxRows - 1 - l.prevCursor.row; down > 0 {
		r.cursorDown(down)
	}

	width := 0
	for _, m := range matches {
		width = max(width, runewidth.StringWidth(m))
	}
	columns := max(s.TerminalWidth()/(width+1), 1)

	r.newline()
	for i, m := range matches {
		r.writeMatch(runewidth.FillRight(m, width))
		if (i+1)%columns == 0 || i == len(matches)-1 {
			r.newline()
		} else {
			r.buf.WriteByte(' ')
		}
	}
	s.ResetLineState()
}
