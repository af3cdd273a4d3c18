package editline

import (
	"bufio"
	"errors"
	"fmt"
	"io"
)

// DefaultHistoryMaxLen is the history capacity of a new Editor.
const DefaultHistoryMaxLen = 100

// ErrInvalidHistoryLength is returned when the history capacity is set to 0.
var ErrInvalidHistoryLength = errors.New("history length must be at least 1")

// history is a bounded list of past lines, oldest first. When full, adding
// a line drops the oldest one.
//
// While a session is active the newest entry is the line being edited. It
// is pushed when the session starts and popped when it ends, and navigating
// away from an entry writes the edited text back into its slot.
type history struct {
	entries []string
	maxLen  int
}

func newHistory(maxLen int) *history {
	return &history{maxLen: maxLen}
}

// add appends line unless it repeats the newest entry. It reports whether
// the line was stored.
func (h *history) add(line string) bool {
	if h.maxLen == 0 {
		return false
	}
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return false
	}
	h.push(line)
	return true
}

// push appends line without the duplicate check.
func (h *history) push(line string) {
	if h.maxLen == 0 {
		return
	}
	if len(h.entries) >= h.maxLen {
		copy(h.entries, h.entries[1:])
		h.entries = h.entries[:len(h.entries)-1]
	}
	h.entries = append(h.entries, line)
}

// pushPlaceholder appends the empty entry standing for the line being
// edited. It never drops the oldest entry, so the history may hold one
// entry more than maxLen until the placeholder is popped.
func (h *history) pushPlaceholder() {
	h.entries = append(h.entries, "")
}

// pop removes the newest entry.
func (h *history) pop() {
	if n := len(h.entries); n > 0 {
		h.entries[n-1] = ""
		h.entries = h.entries[:n-1]
	}
}

// setMaxLen changes the capacity, keeping the newest entries.
func (h *history) setMaxLen(n int) error {
	if n < 1 {
		return ErrInvalidHistoryLength
	}
	if len(h.entries) > n {
		h.entries = append([]string(nil), h.entries[len(h.entries)-n:]...)
	}
	h.maxLen = n
	return nil
}

func (h *history) len() int { return len(h.entries) }

// snapshot returns a copy of the entries, oldest first.
func (h *history) snapshot() []string {
	return append([]string{}, h.entries...)
}

func (h *history) clear() {
	h.entries = nil
}

// navigate stores current in the slot for index, counting back from the
// newest entry, and returns the entry delta steps away. ok is false when
// that would move past either end; index is then unchanged.
func (h *history) navigate(index int, current string, delta int) (newIndex int, line string, ok bool) {
	n := len(h.entries)
	if n <= 1 || index < 0 || index >= n {
		return index, "", false
	}
	h.entries[n-1-index] = current

	next := index + delta
	if next < 0 || next >= n {
		return index, "", false
	}
	return next, h.entries[n-1-next], true
}

// AddHistory appends line to the history. Empty lines and a repeat of the
// newest entry are ignored. It reports whether the line was stored.
func (e *Editor) AddHistory(line string) bool {
	if line == "" {
		return false
	}
	return e.history.add(line)
}

// SetHistoryMaxLen changes the number of lines kept in the history.
// Shrinking it drops the oldest entries. 0 is rejected with
// ErrInvalidHistoryLength.
func (e *Editor) SetHistoryMaxLen(n int) error {
	return e.history.setMaxLen(n)
}

// History returns a copy of the history, oldest first.
func (e *Editor) History() []string {
	return e.history.snapshot()
}

// ClearHistory removes all history entries.
func (e *Editor) ClearHistory() {
	e.history.clear()
}

// ReadHistory adds one entry per line of r, as AddHistory does, and returns
// the number of lines read. Where the lines come from is up to the caller.
func (e *Editor) ReadHistory(r io.Reader) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), 1024*1024)

	num := 0
	for scanner.Scan() {
		num++
		e.AddHistory(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return num, fmt.Errorf("failed to read history: %w", err)
	}
	return num, nil
}

// WriteHistory writes the history to w, one entry per line, oldest first,
// and returns the number of entries written.
func (e *Editor) WriteHistory(w io.Writer) (int, error) {
	num := 0
	for _, entry := range e.history.entries {
		if _, err := fmt.Fprintln(w, entry); err != nil {
			return num, fmt.Errorf("failed to write history entry: %w", err)
		}
		num++
	}
	return num, nil
}
