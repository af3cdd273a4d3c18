package editline

import (
	"bytes"
	"io"
	"strconv"
)

// renderer turns edit state changes into ANSI escape sequences.
//
// Nothing is written while a key is being handled. Output is collected in
// buf and sent with a single Write by flush once the dispatch is complete,
// so the terminal never shows a half-drawn line.
//
// Two refresh levels exist:
//   - cursor: only the cursor moves, using relative up/down/left/right
//   - line: every row drawn so far is cleared bottom-up and the prompt and
//     line are drawn again
type renderer struct {
	output      io.Writer    // Target writer (colorable on Windows)
	colorScheme *ColorScheme // nil draws the prompt uncolored
	buf         bytes.Buffer // Pending output for the current dispatch
}

func newRenderer(output io.Writer, colorScheme *ColorScheme) *renderer {
	return &renderer{
		output:      output,
		colorScheme: colorScheme,
	}
}

// flush writes all pending output in one call.
func (r *renderer) flush() error {
	if r.buf.Len() == 0 {
		return nil
	}
	_, err := r.output.Write(r.buf.Bytes())
	r.buf.Reset()
	return err
}

func (r *renderer) csi(n int, final byte) {
	r.buf.WriteString("\x1b[")
	r.buf.WriteString(strconv.Itoa(n))
	r.buf.WriteByte(final)
}

func (r *renderer) cursorUp(n int)    { r.csi(n, 'A') }
func (r *renderer) cursorDown(n int)  { r.csi(n, 'B') }
func (r *renderer) cursorRight(n int) { r.csi(n, 'C') }
func (r *renderer) cursorLeft(n int)  { r.csi(n, 'D') }

// setColumn moves to a 1-based column on the current row.
func (r *renderer) setColumn(col int) { r.csi(col, 'G') }

// clearRow also returns the cursor to column 0.
func (r *renderer) clearRow() {
	r.buf.WriteString("\r\x1b[0K")
}

func (r *renderer) clearScreen() {
	r.buf.WriteString("\x1b[H\x1b[2J")
}

func (r *renderer) newline() {
	r.buf.WriteString("\r\n")
}

func (r *renderer) writePrompt(prompt string) {
	if r.colorScheme == nil || prompt == "" {
		r.buf.WriteString(prompt)
		return
	}
	r.buf.WriteString(r.colorScheme.Prompt.ToANSI())
	r.buf.WriteString(prompt)
	r.buf.WriteString(Reset())
}

func (r *renderer) writeMatch(match string) {
	if r.colorScheme == nil {
		r.buf.WriteString(match)
		return
	}
	r.buf.WriteString(r.colorScheme.Match.ToANSI())
	r.buf.WriteString(match)
	r.buf.WriteString(Reset())
}

// writeText copies line content. Output post-processing is off in raw mode,
// so a bare '\n' would not return to column 0.
func (r *renderer) writeText(text []byte) {
	for len(text) > 0 {
		i := bytes.IndexByte(text, '\n')
		if i < 0 {
			r.buf.Write(text)
			return
		}
		r.buf.Write(text[:i])
		r.newline()
		text = text[i+1:]
	}
}

// refreshCursor moves the cursor from where it was last drawn to current.
// It returns false, emitting nothing, when current is on a row that has
// never been drawn; only a full refresh can reach such a row.
func (r *renderer) refreshCursor(l *editState, current cursorPos) bool {
	if current == l.prevCursor {
		return true
	}
	if current.row >= l.maxRows {
		return false
	}

	switch {
	case current.row < l.prevCursor.row:
		r.cursorUp(l.prevCursor.row - current.row)
	case current.row > l.prevCursor.row:
		r.cursorDown(current.row - l.prevCursor.row)
	}
	switch {
	case current.col > l.prevCursor.col:
		r.cursorRight(current.col - l.prevCursor.col)
	case current.col < l.prevCursor.col:
		r.cursorLeft(l.prevCursor.col - current.col)
	}

	l.prevCursor = current
	return true
}

// refreshLine redraws the prompt and view from scratch. current is the
// position of the edit point and end the position after the last grapheme.
func (r *renderer) refreshLine(l *editState, cm CharModel, view renderedLine, current, end cursorPos) {
	// Clear every row used so far, starting from the bottom one.
	if l.maxRows > 1 {
		if down := l.maxRows - l.prevCursor.row - 1; down > 0 {
			r.cursorDown(down)
		}
		for range l.maxRows - 1 {
			r.clearRow()
			r.cursorUp(1)
		}
	}
	r.clearRow()

	r.writePrompt(l.prompt)
	r.writeText(view.text)

	// A row filled to the last column leaves the cursor parked on that row;
	// move it down so it agrees with end. A trailing '\n' already did, even
	// when zero-width graphemes follow it.
	if end.row > 0 && end.col == 0 && !endsWithNewline(cm, l.prompt, view.text) {
		r.newline()
	}

	if end.row > current.row {
		r.cursorUp(end.row - current.row)
	}
	r.setColumn(current.col + 1)

	l.prevCursor = current
	l.prevLineEnd = end
	if rows := max(current.row, end.row) + 1; rows > l.maxRows {
		l.maxRows = rows
	}
}

// appendText draws a unit that was added at the end of the line without a
// redraw. The caller has checked that it stays on the current row.
func (r *renderer) appendText(l *editState, text []byte, end cursorPos) {
	r.buf.Write(text)
	l.prevCursor = end
	l.prevLineEnd = end
	if l.maxRows < end.row+1 {
		l.maxRows = end.row + 1
	}
}
