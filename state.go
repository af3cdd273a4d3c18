package editline

// editState is the state of one Readline call: the line being edited, the
// insertion point, and what the renderer believes is currently on screen.
//
// Invariants: 0 <= pos <= buf.Len() <= buf.capacity(), pos is a unit
// boundary, maxRows >= 1.
type editState struct {
	buf    lineBuffer
	pos    int
	prompt string

	termWidth    int
	maxRows      int // rows drawn so far; never shrinks within a session
	historyIndex int // 0 is the line being edited, larger is older

	prevCursor  cursorPos
	prevLineEnd cursorPos
}

func newEditState(prompt string, width int) editState {
	return editState{
		buf:       newLineBuffer(0),
		prompt:    prompt,
		termWidth: width,
		maxRows:   1,
	}
}

func (l *editState) line() []byte { return l.buf.Bytes() }

func (l *editState) len() int { return l.buf.Len() }

func (l *editState) insert(text []byte) {
	l.buf.insert(l.pos, text)
	l.pos += len(text)
}

// deleteRange removes [start, end) and pulls pos back so it stays on the
// same character: to start if it was inside the span, by the span length
// if it was after it.
func (l *editState) deleteRange(start, end int) bool {
	if start < 0 {
		start = 0
	}
	if end > l.len() {
		end = l.len()
	}
	if end <= start {
		return false
	}
	l.buf.remove(start, end)
	delta := end - start
	if l.pos > end {
		l.pos -= delta
	} else if l.pos > start {
		l.pos = start
	}
	return true
}

// replace swaps the whole line for text and puts pos at its end.
func (l *editState) replace(text string) {
	l.buf.set([]byte(text))
	l.pos = l.len()
}

func (l *editState) moveLeft(cm CharModel) bool {
	if l.pos == 0 {
		return false
	}
	l.pos = cm.PrevGrapheme(l.line(), l.pos)
	return true
}

func (l *editState) moveRight(cm CharModel) bool {
	if l.pos >= l.len() {
		return false
	}
	l.pos = cm.NextGrapheme(l.line(), l.pos)
	return true
}

func (l *editState) moveStart() bool {
	if l.pos == 0 {
		return false
	}
	l.pos = 0
	return true
}

func (l *editState) moveEnd() bool {
	if l.pos >= l.len() {
		return false
	}
	l.pos = l.len()
	return true
}

func (l *editState) deleteRight(cm CharModel) bool {
	if l.pos >= l.len() {
		return false
	}
	return l.deleteRange(l.pos, cm.NextGrapheme(l.line(), l.pos))
}

func (l *editState) deleteLeft(cm CharModel) bool {
	if l.pos == 0 {
		return false
	}
	end := l.pos
	return l.deleteRange(cm.PrevGrapheme(l.line(), l.pos), end)
}

func (l *editState) deleteToStart() bool {
	return l.deleteRange(0, l.pos)
}

func (l *editState) deleteToEnd() bool {
	if l.pos >= l.len() {
		return false
	}
	l.buf.truncate(l.pos)
	return true
}

func (l *editState) deleteLine() bool {
	if l.len() == 0 {
		return false
	}
	l.buf.truncate(0)
	l.pos = 0
	return true
}

// deletePrevWord deletes back over any spaces and then over the word before
// them, leaving pos where the word started.
func (l *editState) deletePrevWord() bool {
	line := l.line()
	start := l.pos
	for start > 0 && line[start-1] == ' ' {
		start--
	}
	for start > 0 && line[start-1] != ' ' {
		start--
	}
	return l.deleteRange(start, l.pos)
}

// transpose swaps the grapheme before pos with the one at pos. Afterwards
// pos moves past both unless the pair sits at the end of the line, where
// another transpose would have nothing to its right.
func (l *editState) transpose(cm CharModel) bool {
	if l.pos == 0 || l.pos >= l.len() {
		return false
	}
	line := l.line()
	prev := cm.PrevGrapheme(line, l.pos)
	next := cm.NextGrapheme(line, l.pos)
	l.buf.swap(prev, l.pos, next)

	l.pos = prev + (next - l.pos)
	if next < l.len() {
		l.pos = next
	}
	return true
}
