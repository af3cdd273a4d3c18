package editline

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUTF8UnitLen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		lead byte
		want int
	}{
		{lead: 'a', want: 1},
		{lead: 0x1b, want: 1},
		{lead: 0x7f, want: 1},
		{lead: 0x80, want: 0},
		{lead: 0xbf, want: 0},
		{lead: 0xc0, want: 0},
		{lead: 0xc1, want: 0},
		{lead: 0xc3, want: 2},
		{lead: 0xe3, want: 3},
		{lead: 0xf0, want: 4},
		{lead: 0xf4, want: 4},
		{lead: 0xf5, want: 0},
		{lead: 0xff, want: 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, UTF8.UnitLen(tt.lead), "lead byte 0x%02x", tt.lead)
		assert.Equal(t, 1, ASCII.UnitLen(tt.lead), "lead byte 0x%02x", tt.lead)
	}
}

func TestReadUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		model   CharModel
		input   string
		want    []string
		wantErr error
	}{
		{name: "ascii", model: UTF8, input: "ab", want: []string{"a", "b"}, wantErr: io.EOF},
		{name: "code points", model: UTF8, input: "\u00e9日😀", want: []string{"\u00e9", "日", "😀"}, wantErr: io.EOF},
		{name: "combining mark is its own unit", model: UTF8, input: "e\u0301", want: []string{"e", "\u0301"}, wantErr: io.EOF},
		{name: "invalid lead", model: UTF8, input: "a\xff", want: []string{"a"}, wantErr: ErrMalformedInput},
		{name: "truncated", model: UTF8, input: "\xe6\x97", wantErr: ErrMalformedInput},
		{name: "overlong", model: UTF8, input: "\xe0\x80\x80", wantErr: ErrMalformedInput},
		{name: "surrogate", model: UTF8, input: "\xed\xa0\x80", wantErr: ErrMalformedInput},
		{name: "bytes", model: ASCII, input: "\u00e9", want: []string{"\xc3", "\xa9"}, wantErr: io.EOF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := bytes.NewReader([]byte(tt.input))
			var got []string
			var err error
			for {
				var unit []byte
				unit, err = readUnit(r, tt.model)
				if err != nil {
					break
				}
				got = append(got, string(unit))
			}
			assert.Equal(t, tt.want, got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestUTF8Graphemes(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		// Offsets where grapheme clusters start, plus the end.
		boundaries []int
		widths     []int
	}{
		{name: "ascii", input: "ab", boundaries: []int{0, 1, 2}, widths: []int{1, 1}},
		{name: "combining mark", input: "e\u0301x", boundaries: []int{0, 3, 4}, widths: []int{1, 1}},
		{name: "wide", input: "日本", boundaries: []int{0, 3, 6}, widths: []int{2, 2}},
		{name: "zwj emoji", input: "\U0001F468\u200d\U0001F469\u200d\U0001F467a", boundaries: []int{0, 18, 19}, widths: []int{2, 1}},
		{name: "flag", input: "\U0001F1EF\U0001F1F5", boundaries: []int{0, 8}, widths: []int{2}},
		{name: "control", input: "a\tb", boundaries: []int{0, 1, 2, 3}, widths: []int{1, 0, 1}},
		{name: "newline", input: "a\nb", boundaries: []int{0, 1, 2, 3}, widths: []int{1, 0, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := []byte(tt.input)
			for i := 0; i+1 < len(tt.boundaries); i++ {
				pos, next := tt.boundaries[i], tt.boundaries[i+1]
				assert.Equal(t, next, UTF8.NextGrapheme(s, pos), "next from %d", pos)
				assert.Equal(t, pos, UTF8.PrevGrapheme(s, next), "prev from %d", next)

				width, after := UTF8.GraphemeWidth(s, pos)
				assert.Equal(t, tt.widths[i], width, "width at %d", pos)
				assert.Equal(t, next, after)
			}
			assert.Equal(t, len(s), UTF8.NextGrapheme(s, len(s)))
			assert.Zero(t, UTF8.PrevGrapheme(s, 0))
		})
	}
}

func TestUTF8PrevGraphemeMatchesForwardScan(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"hello world",
		"ab\r\ncd",
		"x\u0301y",
		"ab\U0001F468\u200d\U0001F469cd",
		"\u65e5\u672c\u8a9e",
		"a\U0001F1EF\U0001F1F5\U0001F1FA\U0001F1F8b",
	}

	for _, input := range inputs {
		s := []byte(input)
		for pos := 0; pos <= len(s); pos++ {
			if !isUnitBoundary(UTF8, s, pos) {
				continue
			}
			// Cluster start found by walking from the beginning of the line.
			want := 0
			for i := 0; i < pos; i = UTF8.NextGrapheme(s, i) {
				want = i
			}
			assert.Equal(t, want, UTF8.PrevGrapheme(s, pos), "%q at %d", input, pos)
		}
	}
}

func TestASCIIModel(t *testing.T) {
	t.Parallel()

	s := []byte("a\x01\xe9~")
	assert.Equal(t, 1, ASCII.NextGrapheme(s, 0))
	assert.Equal(t, 2, ASCII.PrevGrapheme(s, 3))

	widths := []int{1, 0, 0, 1}
	for pos, want := range widths {
		width, next := ASCII.GraphemeWidth(s, pos)
		assert.Equal(t, want, width, "width at %d", pos)
		assert.Equal(t, pos+1, next)
	}

	r, size, ok := ASCII.Decode([]byte{0xe9})
	assert.True(t, ok)
	assert.Equal(t, 1, size)
	assert.Equal(t, rune(0xe9), r)
}

func TestUTF8Units(t *testing.T) {
	t.Parallel()

	s := []byte("a\u00e9日")
	assert.Equal(t, 1, UTF8.NextUnit(s, 0))
	assert.Equal(t, 3, UTF8.NextUnit(s, 1))
	assert.Equal(t, 6, UTF8.NextUnit(s, 3))
	assert.Equal(t, 3, UTF8.PrevUnit(s, 6))
	assert.Equal(t, 1, UTF8.PrevUnit(s, 3))
	assert.Equal(t, 0, UTF8.PrevUnit(s, 1))

	_, _, ok := UTF8.Decode([]byte{0xc3})
	assert.False(t, ok)
	r, size, ok := UTF8.Decode([]byte("日"))
	require.True(t, ok)
	assert.Equal(t, 3, size)
	assert.Equal(t, '日', r)
}

func TestIsUnitBoundary(t *testing.T) {
	t.Parallel()

	s := []byte("a\u00e9日")
	for pos, want := range []bool{true, true, false, true, false, false, true} {
		assert.Equal(t, want, isUnitBoundary(UTF8, s, pos), "offset %d", pos)
		assert.True(t, isUnitBoundary(ASCII, s, pos), "offset %d", pos)
	}
	assert.False(t, isUnitBoundary(UTF8, s, -1))
	assert.False(t, isUnitBoundary(UTF8, s, len(s)+1))
}

