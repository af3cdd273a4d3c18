package editline

import (
	"github.com/mattn/go-isatty"
	"github.com/mattn/go-tty"
	"golang.org/x/term"
)

// defaultWidth is used whenever the terminal size cannot be read.
const defaultWidth = 80

// terminalInterface abstracts the terminal the editor is attached to.
//
// The editor itself only reads bytes and writes escape sequences; this
// interface covers what it needs from the device around them: whether it
// is interactive at all, switching raw mode on and off, and its width.
//
// Implementations:
//   - streamTerminal: file descriptors behind the reader and writer given to New
//   - ttyTerminal: the controlling terminal opened by NewTTY through go-tty
//   - mockTerminal: a deterministic double used in tests
type terminalInterface interface {
	IsTerminal() bool // Report whether the input is an interactive terminal
	SetRaw() error    // Enter raw mode for immediate key processing
	Restore() error   // Restore the settings saved by SetRaw
	Width() int       // Columns, falling back to 80
	Close() error     // Release resources; safe to call twice
}

// fder is implemented by *os.File.
type fder interface {
	Fd() uintptr
}

// streamTerminal uses the file descriptors of the streams passed to New.
// Streams without a descriptor (pipes wrapped in readers, buffers) are
// never interactive.
type streamTerminal struct {
	inFd, outFd   uintptr
	hasIn, hasOut bool
	originalState *term.State // Saved by SetRaw, cleared by Restore
}

func newStreamTerminal(in, out any) *streamTerminal {
	t := &streamTerminal{}
	if f, ok := in.(fder); ok {
		t.inFd, t.hasIn = f.Fd(), true
	}
	if f, ok := out.(fder); ok {
		t.outFd, t.hasOut = f.Fd(), true
	}
	return t
}

func (t *streamTerminal) IsTerminal() bool {
	if !t.hasIn {
		return false
	}
	return isatty.IsTerminal(t.inFd) || isatty.IsCygwinTerminal(t.inFd)
}

func (t *streamTerminal) SetRaw() error {
	if !t.hasIn || !term.IsTerminal(int(t.inFd)) {
		return nil
	}
	state, err := term.MakeRaw(int(t.inFd))
	if err != nil {
		return err
	}
	t.originalState = state
	return nil
}

func (t *streamTerminal) Restore() error {
	if t.originalState == nil {
		return nil
	}
	err := term.Restore(int(t.inFd), t.originalState)
	// Reset the state so that SetRaw can capture a fresh baseline next time
	t.originalState = nil
	return err
}

func (t *streamTerminal) Width() int {
	for _, fd := range t.fds() {
		if w, _, err := term.GetSize(int(fd)); err == nil && w > 0 {
			return w
		}
	}
	return defaultWidth
}

func (t *streamTerminal) fds() []uintptr {
	var fds []uintptr
	if t.hasOut {
		fds = append(fds, t.outFd)
	}
	if t.hasIn {
		fds = append(fds, t.inFd)
	}
	return fds
}

func (t *streamTerminal) Close() error {
	return t.Restore()
}

// ttyTerminal wraps a go-tty handle on the controlling terminal. go-tty
// opens the device and reports its size; raw mode is managed with
// golang.org/x/term on the input descriptor so it can be entered and left
// around every Readline call.
type ttyTerminal struct {
	tty           *tty.TTY
	closed        bool // Prevent double close, which panics on Windows
	originalState *term.State
}

func newTTYTerminal(t *tty.TTY) *ttyTerminal {
	return &ttyTerminal{tty: t}
}

func (t *ttyTerminal) IsTerminal() bool { return true }

func (t *ttyTerminal) SetRaw() error {
	fd := int(t.tty.Input().Fd())
	state, err := term.MakeRaw(fd)
	if err != nil {
		return err
	}
	t.originalState = state
	return nil
}

func (t *ttyTerminal) Restore() error {
	if t.originalState == nil {
		return nil
	}
	err := term.Restore(int(t.tty.Input().Fd()), t.originalState)
	t.originalState = nil
	return err
}

func (t *ttyTerminal) Width() int {
	w, _, err := t.tty.Size()
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func (t *ttyTerminal) Close() error {
	if t.closed {
		return nil
	}
	restoreErr := t.Restore()
	err := t.tty.Close()
	t.closed = true
	if err != nil {
		return err
	}
	return restoreErr
}
