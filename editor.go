package editline

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-tty"
)

// Common errors
var (
	// ErrClosed is returned by Readline after Close has been called.
	ErrClosed = errors.New("editor closed")
	// ErrHandler is returned when a key handler reports OutcomeError
	// without saying why through Session.Fail.
	ErrHandler = errors.New("key handler failed")
)

// Editor reads lines from a terminal with line editing, history and
// configurable key bindings.
//
// An Editor owns its key bindings and history; both persist across
// Readline calls. It is not safe for concurrent use.
type Editor struct {
	config   Config
	in       *bufio.Reader
	output   io.Writer
	terminal terminalInterface
	keys     *keyMap
	history  *history
	echo     echoConfig
	cm       CharModel
	renderer *renderer
	session  *Session // Active while Readline is running
	closed   bool
}

// Config holds the configuration for an Editor.
type Config struct {
	CharModel     CharModel    // Character model (nil for UTF8)
	HistoryMaxLen int          // History capacity (0 for DefaultHistoryMaxLen)
	ForceTTY      bool         // Edit even when the input is not a terminal
	EchoDisabled  bool         // Draw EchoChar instead of the typed characters
	EchoChar      byte         // Substitute when echo is disabled, 0 draws nothing
	ColorScheme   *ColorScheme // Prompt and candidate colors (nil for none)

	terminal terminalInterface // Overrides terminal detection
}

// Option represents a configuration option for an Editor
type Option func(*Config)

// WithCharModel selects how input bytes are grouped into characters.
func WithCharModel(cm CharModel) Option {
	return func(c *Config) {
		c.CharModel = cm
	}
}

// WithHistoryMaxLen sets the number of history entries kept.
func WithHistoryMaxLen(n int) Option {
	return func(c *Config) {
		c.HistoryMaxLen = n
	}
}

// WithForceTTY makes Readline edit interactively even when the input is
// not a terminal. Useful when the input is a pipe driven by a program that
// sends key strokes.
func WithForceTTY() Option {
	return func(c *Config) {
		c.ForceTTY = true
	}
}

// WithEchoDisabled starts the editor with echo disabled, drawing
// substitute for each character, or nothing if substitute is 0.
func WithEchoDisabled(substitute byte) Option {
	return func(c *Config) {
		c.EchoDisabled = true
		c.EchoChar = substitute
	}
}

// WithColorScheme sets the color scheme
func WithColorScheme(colorScheme *ColorScheme) Option {
	return func(c *Config) {
		c.ColorScheme = colorScheme
	}
}

// New creates an editor reading key strokes from in and drawing on out.
//
// When in is an interactive terminal (an *os.File attached to a tty),
// Readline puts it in raw mode for the duration of each call. Otherwise
// Readline reads plain lines unless WithForceTTY is given, in which case
// in must already deliver bytes as they are typed.
//
// Example:
//
//	e, err := editline.New(os.Stdin, os.Stdout, editline.WithHistoryMaxLen(500))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer e.Close()
//
//	line, err := e.Readline("> ")
func New(in io.Reader, out io.Writer, options ...Option) (*Editor, error) {
	config := Config{}
	for _, option := range options {
		option(&config)
	}
	return newFromConfig(in, out, config)
}

// NewTTY creates an editor on the controlling terminal, opened with go-tty.
// Input is read from the terminal even when standard input is redirected.
func NewTTY(options ...Option) (*Editor, error) {
	t, err := tty.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open terminal: %w", err)
	}

	config := Config{}
	for _, option := range options {
		option(&config)
	}
	config.terminal = newTTYTerminal(t)

	e, err := newFromConfig(t.Input(), t.Output(), config)
	if err != nil {
		t.Close()
		return nil, err
	}
	return e, nil
}

func newFromConfig(in io.Reader, out io.Writer, config Config) (*Editor, error) {
	if in == nil || out == nil {
		return nil, errors.New("input and output streams are required")
	}
	if config.CharModel == nil {
		config.CharModel = UTF8
	}
	if config.HistoryMaxLen == 0 {
		config.HistoryMaxLen = DefaultHistoryMaxLen
	}
	if config.HistoryMaxLen < 0 {
		return nil, ErrInvalidHistoryLength
	}
	if config.terminal == nil {
		config.terminal = newStreamTerminal(in, out)
	}

	output := out
	if f, ok := out.(*os.File); ok && runtime.GOOS == "windows" {
		// Use colorable for Windows ANSI escape sequence support
		output = colorable.NewColorable(f)
	}

	e := &Editor{
		config:   config,
		in:       bufio.NewReader(in),
		output:   output,
		terminal: config.terminal,
		keys:     newKeyMap(),
		history:  newHistory(config.HistoryMaxLen),
		echo:     echoConfig{disabled: config.EchoDisabled, substitute: config.EchoChar},
		cm:       config.CharModel,
		renderer: newRenderer(output, config.ColorScheme),
	}
	if err := e.bindDefaults(); err != nil {
		return nil, fmt.Errorf("failed to bind default keys: %w", err)
	}
	return e, nil
}

// Bind binds a handler to a single byte. KeyAction values are handlers, so
// default operations can be rebound:
//
//	e.Bind('\t', editline.HandlerFunc(complete))
//	e.Bind(0x0f, editline.ActionSubmit) // Ctrl+O
func (e *Editor) Bind(key byte, h Handler) error {
	return e.keys.bind([]byte{key}, h)
}

// BindSequence binds a handler to a sequence of bytes, typically an escape
// sequence sent by a special key. The whole sequence, ESC included, is
// given:
//
//	e.BindSequence("\x1b[5~", editline.ActionHistoryPrev) // Page Up
//
// When one bound sequence is a prefix of another, the longer one wins if
// it is typed.
func (e *Editor) BindSequence(seq string, h Handler) error {
	return e.keys.bind([]byte(seq), h)
}

// EnableEcho draws typed characters as they are. This is the default.
func (e *Editor) EnableEcho() {
	e.setEcho(echoConfig{})
}

// DisableEcho draws substitute in place of every typed character, or
// nothing if substitute is 0. Use it for passwords.
func (e *Editor) DisableEcho(substitute byte) {
	e.setEcho(echoConfig{disabled: true, substitute: substitute})
}

func (e *Editor) setEcho(echo echoConfig) {
	if e.echo == echo {
		return
	}
	e.echo = echo
	if e.session != nil {
		e.session.RequestRefresh()
	}
}

// Readline displays prompt and returns the line typed once Enter is
// pressed, without the line terminator.
//
// io.EOF is returned when Ctrl+D is pressed on an empty line or the input
// ends before anything was typed; if the input ends after some text was
// typed, that text is returned. Ctrl+C clears the line and returns it
// empty.
func (e *Editor) Readline(prompt string) (string, error) {
	return e.ReadlineWithContext(context.Background(), prompt)
}

// ReadlineWithContext is Readline with cancellation. The context is checked
// between key strokes; a read that is already blocked returns only when
// input arrives.
func (e *Editor) ReadlineWithContext(ctx context.Context, prompt string) (string, error) {
	if e.closed {
		return "", ErrClosed
	}
	if !e.config.ForceTTY && !e.terminal.IsTerminal() {
		return e.readNoTTY()
	}

	if err := e.terminal.SetRaw(); err != nil {
		return "", fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() {
		if err := e.terminal.Restore(); err != nil {
			// Log error but don't return it as we're in defer
			fmt.Fprintf(os.Stderr, "Warning: failed to restore terminal state: %v\n", err)
		}
	}()

	return e.edit(ctx, prompt)
}

// edit runs one session. The terminal is already in raw mode.
func (e *Editor) edit(ctx context.Context, prompt string) (line string, err error) {
	s := newSession(e, prompt)
	e.session = s

	// The newest history entry stands for the line being edited.
	e.history.pushPlaceholder()
	defer func() {
		e.history.pop()
		e.session = nil

		// Leave the cursor on a fresh row for whatever is printed next.
		e.renderer.newline()
		if flushErr := e.renderer.flush(); flushErr != nil && err == nil {
			line, err = "", fmt.Errorf("failed to write output: %w", flushErr)
		}
	}()

	s.refreshLine()
	if err := e.renderer.flush(); err != nil {
		return "", fmt.Errorf("failed to render prompt: %w", err)
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		unit, err := e.readUnit()
		if err != nil {
			return s.endOfInput(err)
		}
		h, key, err := e.keys.lookup(unit, e.readUnit)
		if err != nil {
			return s.endOfInput(err)
		}
		if h == nil {
			continue
		}

		done, err := s.dispatch(h, key)
		if err != nil {
			return "", err
		}
		if done {
			return s.Line(), nil
		}
	}
}

func (e *Editor) readUnit() ([]byte, error) {
	return readUnit(e.in, e.cm)
}

// readNoTTY reads one line with no length limit. A final line without a
// newline is returned as is; io.EOF only when nothing was left.
func (e *Editor) readNoTTY() (string, error) {
	line, err := e.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if line == "" {
				return "", io.EOF
			}
			return line, nil
		}
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSuffix(line, "\n"), nil
}

// TerminalWidth returns the number of columns of the terminal, or 80 if it
// cannot be determined.
func (e *Editor) TerminalWidth() int {
	return e.terminal.Width()
}

// Close restores the terminal and releases it.
//
// It's safe to call Close multiple times. Readline fails with ErrClosed
// afterwards.
func (e *Editor) Close() error {
	if e.closed {
		return nil
	}
	e.closed = true
	if e.terminal != nil {
		return e.terminal.Close()
	}
	return nil
}
