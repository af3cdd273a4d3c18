package editline

// cursorPos is a screen position relative to the row the prompt starts on.
type cursorPos struct {
	row int
	col int
}

// echoConfig controls what is drawn for the characters of the line.
// With echo disabled each grapheme is drawn as substitute, or not at all
// when substitute is 0.
type echoConfig struct {
	disabled   bool
	substitute byte
}

// renderedLine is the text actually drawn for the line and the offset in
// that text which corresponds to the edit point.
type renderedLine struct {
	text  []byte
	point int
}

// renderLine applies the echo configuration to line. Because one
// substitute byte replaces a whole grapheme, the edit point of the result
// can differ from pos.
func renderLine(cm CharModel, line []byte, pos int, echo echoConfig) renderedLine {
	if !echo.disabled {
		return renderedLine{text: line, point: pos}
	}
	if echo.substitute == 0 {
		return renderedLine{}
	}

	var r renderedLine
	for i := 0; ; {
		if i <= pos {
			r.point = len(r.text)
		}
		if i >= len(line) {
			break
		}
		r.text = append(r.text, echo.substitute)
		next := cm.NextGrapheme(line, i)
		if next <= i {
			next = i + 1
		}
		i = next
	}
	return r
}

// wrap advances c over s the way a terminal does: a grapheme that does not
// fit on the current row starts the next one, and '\n' starts a new row at
// column 0.
func wrap(cm CharModel, s []byte, width int, c *cursorPos) {
	for p := 0; p < len(s); {
		w, next := cm.GraphemeWidth(s, p)
		if w > 0 {
			c.col += w
			if c.col > width {
				c.row++
				c.col = w
			}
		} else if s[p] == '\n' {
			c.row++
			c.col = 0
		}
		if next <= p {
			next = p + 1
		}
		p = next
	}
}

// endsWithNewline reports whether the last thing moving the cursor when
// prompt and text are drawn is a '\n'. Zero-width graphemes do not move it.
func endsWithNewline(cm CharModel, prompt string, text []byte) bool {
	return lastBreak(cm, text, lastBreak(cm, []byte(prompt), false))
}

func lastBreak(cm CharModel, s []byte, newline bool) bool {
	for p := 0; p < len(s); {
		w, next := cm.GraphemeWidth(s, p)
		if w > 0 {
			newline = false
		} else if s[p] == '\n' {
			newline = true
		}
		if next <= p {
			next = p + 1
		}
		p = next
	}
	return newline
}

// positionOf returns where the terminal cursor sits when it is placed
// before offset target of text, with prompt drawn first.
// It has no side effects.
func positionOf(cm CharModel, prompt string, text []byte, width, target int) cursorPos {
	if width <= 0 {
		width = defaultWidth
	}
	if target > len(text) {
		target = len(text)
	}

	var c cursorPos
	wrap(cm, []byte(prompt), width, &c)
	wrap(cm, text[:target], width, &c)

	// At the right margin, or the next grapheme will not fit: the cursor
	// belongs at the start of the next row.
	if c.col >= width {
		c.row++
		c.col = 0
	} else if target < len(text) {
		if w, _ := cm.GraphemeWidth(text, target); c.col+w > width {
			c.row++
			c.col = 0
		}
	}
	return c
}
