package editline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// bindCompleter binds Tab to complete the word before the cursor against
// candidates and records what Complete returned.
func bindCompleter(t *testing.T, e *Editor, candidates []string, allowPrefix bool) *[]bool {
	t.Helper()

	var results []bool
	require.NoError(t, e.Bind('\t', HandlerFunc(func(s *Session, _ []byte) Outcome {
		start := strings.LastIndexByte(s.Line()[:s.Point()], ' ') + 1
		results = append(results, s.Complete(start, candidates, allowPrefix))
		return Handled
	})))
	return &results
}

func TestComplete(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		input       string
		candidates  []string
		allowPrefix bool
		want        string
		wantResults []bool
		wantTable   bool
	}{
		{
			name:        "common prefix that is a candidate",
			input:       "fo\t\r",
			candidates:  []string{"foo", "foobar"},
			allowPrefix: true,
			want:        "foo",
			wantResults: []bool{true},
		},
		{
			name:        "common prefix not accepted as final",
			input:       "fo\t\r",
			candidates:  []string{"foo", "foobar"},
			want:        "foo",
			wantResults: []bool{false},
		},
		{
			name:        "no progress lists the candidates",
			input:       "fo\t\t\r",
			candidates:  []string{"foo", "foobar"},
			want:        "foo",
			wantResults: []bool{false, false},
			wantTable:   true,
		},
		{
			name:        "single candidate",
			input:       "he\t\r",
			candidates:  []string{"hello"},
			want:        "hello",
			wantResults: []bool{true},
		},
		{
			name:        "single candidate already typed",
			input:       "hello\t\r",
			candidates:  []string{"hello"},
			want:        "hello",
			wantResults: []bool{true},
		},
		{
			name:        "no candidates",
			input:       "x\t\r",
			candidates:  nil,
			want:        "x",
			wantResults: []bool{false},
		},
		{
			name:        "completes the last word",
			input:       "git ch\t\r",
			candidates:  []string{"checkout", "cherry-pick"},
			want:        "git che",
			wantResults: []bool{false},
		},
		{
			name:        "prefix ends on a character boundary",
			input:       "\t\r",
			candidates:  []string{"日本", "日曜"},
			want:        "日",
			wantResults: []bool{false},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, _, output := newForTesting(t, tt.input, 80)
			results := bindCompleter(t, e, tt.candidates, tt.allowPrefix)

			line, err := e.Readline("> ")
			require.NoError(t, err)
			assert.Equal(t, tt.want, line)
			assert.Equal(t, tt.wantResults, *results)

			hasTable := len(tt.candidates) > 1 && strings.Contains(output.String(), tt.candidates[len(tt.candidates)-1]+"\r\n")
			assert.Equal(t, tt.wantTable, hasTable)
		})
	}
}

func TestDisplayMatches(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		matches []string
		width   int
		want    string
	}{
		{
			name:    "columns fill the row",
			matches: []string{"a", "bb", "ccc", "dddd", "eeeee"},
			width:   20,
			want:    "\r\na     bb    ccc  \r\ndddd  eeeee\r\n",
		},
		{
			name:    "one per row when too wide",
			matches: []string{"alpha", "beta"},
			width:   5,
			want:    "\r\nalpha\r\nbeta \r\n",
		},
		{
			name:    "wide characters take two columns",
			matches: []string{"日本", "abc"},
			width:   80,
			want:    "\r\n日本 abc \r\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			e, _, output := newForTesting(t, "\t\r", tt.width)
			require.NoError(t, e.Bind('\t', HandlerFunc(func(s *Session, _ []byte) Outcome {
				s.DisplayMatches(tt.matches)
				return Handled
			})))

			_, err := e.Readline("> ")
			require.NoError(t, err)
			// The prompt is drawn again below the table.
			assert.Contains(t, output.String(), tt.want+"\r\x1b[0K> ")
		})
	}
}

func TestDisplayMatchesBelowWrappedLine(t *testing.T) {
	t.Parallel()

	// Two rows at width 10 with the cursor moved back to the first one.
	e, _, output := newForTesting(t, "abcdefghij\x01\t\r", 10)
	require.NoError(t, e.Bind('\t', HandlerFunc(func(s *Session, _ []byte) Outcome {
		s.DisplayMatches([]string{"x", "y"})
		return Handled
	})))

	_, err := e.Readline("> ")
	require.NoError(t, err)
	assert.Contains(t, output.String(), "\x1b[1B\r\nx y\r\n")
}

func TestDisplayMatchesColor(t *testing.T) {
	t.Parallel()

	e, _, output := newForTesting(t, "fo\t\t\r", 80, WithColorScheme(ThemeDark))
	bindCompleter(t, e, []string{"foo", "foobar"}, false)

	_, err := e.Readline("> ")
	require.NoError(t, err)
	assert.Contains(t, output.String(), ThemeDark.Match.ToANSI()+"foobar"+Reset())
}
