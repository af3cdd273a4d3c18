package editline

import (
	"errors"
	"fmt"
	"io"
)

// Outcome tells the editor what to do once a handler returns. Values
// combine with |.
type Outcome uint8

const (
	// OutcomeDone ends the session; Readline returns the line.
	OutcomeDone Outcome = 1 << iota
	// OutcomeRefresh redraws the prompt and the whole line.
	OutcomeRefresh
	// OutcomeCursorRefresh only moves the cursor to the edit point.
	OutcomeCursorRefresh
	// OutcomeError ends the session with the error given to Session.Fail,
	// or ErrHandler.
	OutcomeError
)

// Handled is returned by a handler that needs nothing further.
const Handled Outcome = 0

// Handler handles a bound key. key holds every byte read for it, so a
// handler bound to many keys can tell them apart.
//
// Session methods that change the line or the edit point request the
// matching refresh themselves; the returned outcome is combined with those
// requests.
type Handler interface {
	HandleKey(s *Session, key []byte) Outcome
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(s *Session, key []byte) Outcome

// HandleKey calls f(s, key).
func (f HandlerFunc) HandleKey(s *Session, key []byte) Outcome {
	return f(s, key)
}

// Session is the line being edited by one Readline call. Handlers receive
// it to inspect and change the line. It must not be kept after the handler
// returns.
//
// Positions are byte offsets into the line and must fall on character
// boundaries.
type Session struct {
	editor *Editor
	state  editState
	flags  Outcome // Requested by Session methods during the current dispatch
	err    error
}

func newSession(e *Editor, prompt string) *Session {
	s := &Session{
		editor: e,
		state:  newEditState(prompt, e.terminal.Width()),
	}
	l := &s.state
	l.prevCursor = positionOf(e.cm, prompt, nil, l.termWidth, 0)
	l.prevLineEnd = l.prevCursor
	return s
}

// Editor returns the editor running the session.
func (s *Session) Editor() *Editor { return s.editor }

// Line returns the current contents of the line.
func (s *Session) Line() string { return s.state.buf.String() }

// Prompt returns the prompt of the session.
func (s *Session) Prompt() string { return s.state.prompt }

// Point returns the edit point.
func (s *Session) Point() int { return s.state.pos }

// End returns the length of the line in bytes.
func (s *Session) End() int { return s.state.len() }

// SetPoint moves the edit point. It reports false and leaves the point
// alone if p is out of range or inside a character.
func (s *Session) SetPoint(p int) bool {
	l := &s.state
	if p < 0 || p > l.len() || !isUnitBoundary(s.editor.cm, l.line(), p) {
		return false
	}
	if p != l.pos {
		l.pos = p
		s.flags |= OutcomeCursorRefresh
	}
	return true
}

// Insert inserts text at the edit point and moves the point past it.
func (s *Session) Insert(text string) {
	s.InsertBytes([]byte(text))
}

// InsertBytes is Insert for a byte slice.
//
// A single character typed at the end of the line is drawn right away when
// it fits on the current row; anything else requests a full refresh.
func (s *Session) InsertBytes(text []byte) {
	if len(text) == 0 {
		return
	}
	l := &s.state
	atEnd := l.pos == l.len()
	l.insert(text)
	if atEnd && s.appendFast(text) {
		return
	}
	s.flags |= OutcomeRefresh
}

func (s *Session) appendFast(text []byte) bool {
	e := s.editor
	l := &s.state
	if s.flags&OutcomeRefresh != 0 || l.prevCursor != l.prevLineEnd {
		return false
	}
	if e.cm.NextUnit(text, 0) != len(text) {
		return false
	}
	if e.echo.disabled && e.echo.substitute == 0 {
		return true
	}

	view := s.view()
	end := positionOf(e.cm, l.prompt, view.text, l.termWidth, len(view.text))
	if end.row != l.prevLineEnd.row || end.col <= l.prevLineEnd.col {
		return false
	}

	drawn := text
	if e.echo.disabled {
		drawn = []byte{e.echo.substitute}
	}
	e.renderer.appendText(l, drawn, end)
	return true
}

// Delete removes the bytes in [start, end). The range is clipped to the
// line; the edit point stays on the same character, or moves to start if
// that character was deleted.
func (s *Session) Delete(start, end int) {
	if s.state.deleteRange(start, end) {
		s.flags |= OutcomeRefresh
	}
}

// Replace swaps the whole line for text and moves the point to its end.
func (s *Session) Replace(text string) {
	s.state.replace(text)
	s.flags |= OutcomeRefresh
}

// RequestRefresh asks for the whole line to be redrawn after the handler.
func (s *Session) RequestRefresh() { s.flags |= OutcomeRefresh }

// RequestCursorRefresh asks for the cursor to be moved to the edit point
// after the handler.
func (s *Session) RequestCursorRefresh() { s.flags |= OutcomeCursorRefresh }

// ResetLineState forgets what was drawn before. Call it after writing
// output that moved the cursor away from the line, so the next refresh
// draws the prompt again on the current row instead of clearing rows
// above it.
func (s *Session) ResetLineState() {
	s.state.maxRows = 1
	s.flags |= OutcomeRefresh
}

// Fail records err as the reason for the session to end and returns
// OutcomeError, so handlers can write
//
//	return s.Fail(err)
func (s *Session) Fail(err error) Outcome {
	if err == nil {
		err = ErrHandler
	}
	s.err = err
	return OutcomeError
}

// Printf writes formatted output to the terminal along with the rest of the
// output of this key. Newlines must be written as "\r\n" while the terminal
// is in raw mode. Follow with ResetLineState when the output leaves the
// line.
func (s *Session) Printf(format string, args ...any) {
	fmt.Fprintf(&s.editor.renderer.buf, format, args...)
}

// ClearScreen clears the terminal and draws the line again at the top.
func (s *Session) ClearScreen() {
	s.editor.renderer.clearScreen()
	s.ResetLineState()
}

// TerminalWidth returns the number of columns of the terminal.
func (s *Session) TerminalWidth() int {
	return s.editor.terminal.Width()
}

// HistoryMove replaces the line with the history entry delta steps away
// from the current one. Positive delta goes to older entries. It reports
// false at either end of the history.
func (s *Session) HistoryMove(delta int) bool {
	l := &s.state
	index, line, ok := s.editor.history.navigate(l.historyIndex, l.buf.String(), delta)
	if !ok {
		return false
	}
	l.historyIndex = index
	s.Replace(line)
	return true
}

func (s *Session) view() renderedLine {
	return renderLine(s.editor.cm, s.state.line(), s.state.pos, s.editor.echo)
}

// refreshLine redraws everything, picking up a changed terminal width.
func (s *Session) refreshLine() {
	e := s.editor
	l := &s.state
	l.termWidth = e.terminal.Width()

	view := s.view()
	current := positionOf(e.cm, l.prompt, view.text, l.termWidth, view.point)
	end := positionOf(e.cm, l.prompt, view.text, l.termWidth, len(view.text))
	e.renderer.refreshLine(l, e.cm, view, current, end)
}

func (s *Session) refreshCursor() bool {
	e := s.editor
	l := &s.state
	view := s.view()
	current := positionOf(e.cm, l.prompt, view.text, l.termWidth, view.point)
	return e.renderer.refreshCursor(l, current)
}

// dispatch runs h and performs the refresh it asked for. done reports
// that the session is over and the line is final.
func (s *Session) dispatch(h Handler, key []byte) (done bool, err error) {
	s.flags, s.err = 0, nil
	out := h.HandleKey(s, key) | s.flags

	if out&OutcomeError != 0 {
		if s.err == nil {
			s.err = ErrHandler
		}
		return false, s.err
	}
	if out&OutcomeDone != 0 {
		if out&OutcomeRefresh != 0 {
			s.refreshLine()
		}
		s.finish()
		return true, nil
	}

	if out&OutcomeRefresh == 0 && out&OutcomeCursorRefresh != 0 && !s.refreshCursor() {
		out |= OutcomeRefresh
	}
	if out&OutcomeRefresh != 0 {
		s.refreshLine()
	}
	if err := s.editor.renderer.flush(); err != nil {
		return false, fmt.Errorf("failed to write output: %w", err)
	}
	return false, nil
}

// finish puts the cursor after the last character so that output following
// the session starts below the line.
func (s *Session) finish() {
	s.state.moveEnd()
	if !s.refreshCursor() {
		s.refreshLine()
	}
}

// endOfInput decides how a session ends when reading a key fails.
func (s *Session) endOfInput(err error) (string, error) {
	if errors.Is(err, io.EOF) {
		if s.state.len() > 0 {
			s.finish()
			return s.Line(), nil
		}
		return "", io.EOF
	}
	return "", fmt.Errorf("failed to read input: %w", err)
}
