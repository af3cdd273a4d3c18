package editline

import "io"

// KeyAction is a built-in editing operation. Every KeyAction is a Handler,
// so the defaults can be bound to other keys with Bind and BindSequence.
type KeyAction int

const (
	ActionNone KeyAction = iota // Consume the key and do nothing
	ActionInsert                // Insert the key bytes at the edit point
	ActionSubmit                // Accept the line
	ActionCancel                // Clear the line and accept it empty
	ActionDeleteCharOrEOF       // Delete at the edit point, or end input on an empty line
	ActionMoveLeft
	ActionMoveRight
	ActionMoveHome
	ActionMoveEnd
	ActionDeleteChar // Delete the character at the edit point
	ActionBackspace  // Delete the character before the edit point
	ActionDeleteToEnd
	ActionDeleteToStart
	ActionDeleteWordBack
	ActionTranspose
	ActionClearScreen
	ActionHistoryPrev
	ActionHistoryNext
)

// HandleKey performs the action on the session.
func (a KeyAction) HandleKey(s *Session, key []byte) Outcome {
	l := &s.state
	cm := s.editor.cm

	switch a {
	case ActionInsert:
		s.InsertBytes(key)
	case ActionSubmit:
		return OutcomeDone
	case ActionCancel:
		return refreshIf(l.deleteLine()) | OutcomeDone
	case ActionDeleteCharOrEOF:
		if l.len() == 0 {
			return s.Fail(io.EOF)
		}
		return refreshIf(l.deleteRight(cm))
	case ActionMoveLeft:
		return cursorRefreshIf(l.moveLeft(cm))
	case ActionMoveRight:
		return cursorRefreshIf(l.moveRight(cm))
	case ActionMoveHome:
		return cursorRefreshIf(l.moveStart())
	case ActionMoveEnd:
		return cursorRefreshIf(l.moveEnd())
	case ActionDeleteChar:
		return refreshIf(l.deleteRight(cm))
	case ActionBackspace:
		return refreshIf(l.deleteLeft(cm))
	case ActionDeleteToEnd:
		return refreshIf(l.deleteToEnd())
	case ActionDeleteToStart:
		return refreshIf(l.deleteToStart())
	case ActionDeleteWordBack:
		return refreshIf(l.deletePrevWord())
	case ActionTranspose:
		return refreshIf(l.transpose(cm))
	case ActionClearScreen:
		s.ClearScreen()
	case ActionHistoryPrev:
		s.HistoryMove(1)
	case ActionHistoryNext:
		s.HistoryMove(-1)
	}
	return Handled
}

func refreshIf(changed bool) Outcome {
	if changed {
		return OutcomeRefresh
	}
	return Handled
}

func cursorRefreshIf(moved bool) Outcome {
	if moved {
		return OutcomeCursorRefresh
	}
	return Handled
}

// defaultBindings are the keys bound by New on top of ActionInsert for
// bytes 32 to 255.
var defaultBindings = []struct {
	seq    string
	action KeyAction
}{
	{"\x01", ActionMoveHome},        // Ctrl+A
	{"\x02", ActionMoveLeft},        // Ctrl+B
	{"\x03", ActionCancel},          // Ctrl+C
	{"\x04", ActionDeleteCharOrEOF}, // Ctrl+D
	{"\x05", ActionMoveEnd},         // Ctrl+E
	{"\x06", ActionMoveRight},       // Ctrl+F
	{"\x08", ActionBackspace},       // Ctrl+H
	{"\x0b", ActionDeleteToEnd},     // Ctrl+K
	{"\x0c", ActionClearScreen},     // Ctrl+L
	{"\r", ActionSubmit},            // Enter
	{"\x0e", ActionHistoryNext},     // Ctrl+N
	{"\x10", ActionHistoryPrev},     // Ctrl+P
	{"\x14", ActionTranspose},       // Ctrl+T
	{"\x15", ActionDeleteToStart},   // Ctrl+U
	{"\x17", ActionDeleteWordBack},  // Ctrl+W
	{"\x7f", ActionBackspace},       // Backspace

	{"\x1b[A", ActionHistoryPrev},  // Up
	{"\x1b[B", ActionHistoryNext},  // Down
	{"\x1b[C", ActionMoveRight},    // Right
	{"\x1b[D", ActionMoveLeft},     // Left
	{"\x1b[H", ActionMoveHome},     // Home
	{"\x1b[F", ActionMoveEnd},      // End
	{"\x1bOH", ActionMoveHome},     // Home, application mode
	{"\x1bOF", ActionMoveEnd},      // End, application mode
	{"\x1b[1~", ActionMoveHome},    // Home, vt220
	{"\x1b[4~", ActionMoveEnd},     // End, vt220
	{"\x1b[3~", ActionDeleteChar},  // Delete
	{"\x1b[2~", ActionNone},        // Insert
	{"\x1b[5~", ActionNone},        // Page Up
	{"\x1b[6~", ActionNone},        // Page Down
	{"\x1b[1;5C", ActionMoveRight}, // Ctrl+Right
	{"\x1b[1;5D", ActionMoveLeft},  // Ctrl+Left
}

func (e *Editor) bindDefaults() error {
	for b := 32; b < keymapSize; b++ {
		if err := e.keys.bind([]byte{byte(b)}, ActionInsert); err != nil {
			return err
		}
	}
	for _, binding := range defaultBindings {
		if err := e.keys.bind([]byte(binding.seq), binding.action); err != nil {
			return err
		}
	}
	return nil
}
