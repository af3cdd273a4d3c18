package editline

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// ErrMalformedInput is returned when the input stream contains a byte
// sequence that does not decode to a character unit.
var ErrMalformedInput = errors.New("malformed input")

// CharModel decides what a character unit is and how wide it is on screen.
//
// Two models are provided:
//   - UTF8: a unit is one UTF-8 encoded code point; code points are grouped
//     into grapheme clusters for cursor movement and width measurement.
//   - ASCII: a unit is a single byte; printable ASCII is one column wide and
//     everything else is zero columns wide.
//
// All offsets are byte offsets into s. Implementations never panic on
// malformed data inside s; they step over it one byte at a time.
type CharModel interface {
	// UnitLen returns the number of bytes in the unit starting with lead,
	// or 0 if lead cannot start a unit.
	UnitLen(lead byte) int
	// Decode decodes the unit at the start of p. ok is false if p does not
	// start with a well-formed unit.
	Decode(p []byte) (r rune, size int, ok bool)
	// NextUnit returns the offset of the unit following the one at pos.
	NextUnit(s []byte, pos int) int
	// PrevUnit returns the offset of the unit preceding pos.
	PrevUnit(s []byte, pos int) int
	// NextGrapheme returns the offset of the grapheme cluster following
	// the one at pos.
	NextGrapheme(s []byte, pos int) int
	// PrevGrapheme returns the offset of the grapheme cluster preceding pos.
	PrevGrapheme(s []byte, pos int) int
	// GraphemeWidth returns the column width of the grapheme cluster at pos
	// and the offset of the cluster following it.
	GraphemeWidth(s []byte, pos int) (width, next int)
}

var (
	// UTF8 is the grapheme-aware character model. It is the default.
	UTF8 CharModel = utf8Model{}
	// ASCII is the byte-oriented character model.
	ASCII CharModel = asciiModel{}
)

type asciiModel struct{}

func (asciiModel) UnitLen(byte) int { return 1 }

func (asciiModel) Decode(p []byte) (rune, int, bool) {
	if len(p) == 0 {
		return 0, 0, false
	}
	return rune(p[0]), 1, true
}

func (asciiModel) NextUnit(s []byte, pos int) int {
	if pos >= len(s) {
		return len(s)
	}
	return pos + 1
}

func (asciiModel) PrevUnit(_ []byte, pos int) int {
	if pos <= 0 {
		return 0
	}
	return pos - 1
}

func (m asciiModel) NextGrapheme(s []byte, pos int) int { return m.NextUnit(s, pos) }

func (m asciiModel) PrevGrapheme(s []byte, pos int) int { return m.PrevUnit(s, pos) }

func (m asciiModel) GraphemeWidth(s []byte, pos int) (int, int) {
	if pos >= len(s) {
		return 0, len(s)
	}
	if isPrintableASCII(s[pos]) {
		return 1, pos + 1
	}
	return 0, pos + 1
}

type utf8Model struct{}

func (utf8Model) UnitLen(lead byte) int {
	switch {
	case lead < utf8.RuneSelf:
		return 1
	case lead >= 0xc2 && lead <= 0xdf:
		return 2
	case lead >= 0xe0 && lead <= 0xef:
		return 3
	case lead >= 0xf0 && lead <= 0xf4:
		return 4
	}
	return 0
}

func (utf8Model) Decode(p []byte) (rune, int, bool) {
	if len(p) == 0 {
		return 0, 0, false
	}
	r, size := utf8.DecodeRune(p)
	if r == utf8.RuneError && size <= 1 {
		return r, size, false
	}
	return r, size, true
}

func (utf8Model) NextUnit(s []byte, pos int) int {
	if pos >= len(s) {
		return len(s)
	}
	_, size := utf8.DecodeRune(s[pos:])
	return pos + size
}

func (utf8Model) PrevUnit(s []byte, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(s) {
		pos = len(s)
	}
	_, size := utf8.DecodeLastRune(s[:pos])
	return pos - size
}

func (utf8Model) NextGrapheme(s []byte, pos int) int {
	if pos >= len(s) {
		return len(s)
	}
	cluster, _, _, _ := uniseg.FirstGraphemeCluster(s[pos:], -1)
	if len(cluster) == 0 {
		return pos + 1
	}
	return pos + len(cluster)
}

// PrevGrapheme walks forward because cluster boundaries can only be found
// reliably in that direction. The walk starts at the nearest known boundary
// before pos, so on mostly ASCII lines it covers a few bytes, and at worst
// the whole line.
func (m utf8Model) PrevGrapheme(s []byte, pos int) int {
	if pos <= 0 {
		return 0
	}
	if pos > len(s) {
		pos = len(s)
	}
	prev := 0
	for i := graphemeRestart(s, pos); i < pos; {
		prev = i
		i = m.NextGrapheme(s, i)
	}
	return prev
}

func (utf8Model) GraphemeWidth(s []byte, pos int) (int, int) {
	if pos >= len(s) {
		return 0, len(s)
	}
	cluster, _, width, _ := uniseg.FirstGraphemeCluster(s[pos:], -1)
	if len(cluster) == 0 {
		return 0, pos + 1
	}
	if isControl(cluster[0]) {
		width = 0
	}
	return width, pos + len(cluster)
}

// graphemeRestart returns an offset before pos where a cluster starts:
// two ASCII bytes other than CR LF are never joined. 0 if there is none.
func graphemeRestart(s []byte, pos int) int {
	for q := pos - 1; q > 0; q-- {
		if s[q] < utf8.RuneSelf && s[q-1] < utf8.RuneSelf && (s[q-1] != '\r' || s[q] != '\n') {
			return q
		}
	}
	return 0
}

func isPrintableASCII(b byte) bool {
	return b >= 0x20 && b < 0x7f
}

func isControl(b byte) bool {
	return b < 0x20 || b == 0x7f
}

// readUnit reads exactly one character unit from r. A stream that ends in
// the middle of a unit is reported as malformed, not as io.EOF.
func readUnit(r io.ByteReader, cm CharModel) ([]byte, error) {
	lead, err := r.ReadByte()
	if err != nil {
		return nil, err
	}
	n := cm.UnitLen(lead)
	if n == 0 {
		return nil, fmt.Errorf("%w: invalid lead byte 0x%02x", ErrMalformedInput, lead)
	}

	unit := make([]byte, 1, n)
	unit[0] = lead
	for len(unit) < n {
		b, err := r.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: truncated sequence", ErrMalformedInput)
			}
			return nil, err
		}
		unit = append(unit, b)
	}

	if _, size, ok := cm.Decode(unit); !ok || size != n {
		return nil, fmt.Errorf("%w: invalid sequence % x", ErrMalformedInput, unit)
	}
	return unit, nil
}

// isUnitBoundary reports whether pos falls between two units of s.
func isUnitBoundary(cm CharModel, s []byte, pos int) bool {
	if pos < 0 || pos > len(s) {
		return false
	}
	for i := 0; i < pos; {
		next := cm.NextUnit(s, i)
		if next <= i {
			return false
		}
		i = next
		if i == pos {
			return true
		}
		if i > pos {
			return false
		}
	}
	return true
}
