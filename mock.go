package editline

// mockTerminal implements terminalInterface for testing.
//
// Key strokes are not read from the terminal, so tests feed them through
// the input reader given to New; the mock only answers the questions the
// editor asks about the device. Raw mode is tracked so that tests can check
// it is always restored.
type mockTerminal struct {
	interactive bool  // Reported by IsTerminal
	width       int   // Reported by Width; 0 means the size is unknown
	rawMode     bool  // Track raw mode state for test verification
	rawCount    int   // Number of SetRaw calls
	setRawErr   error // Returned by SetRaw when set
	closed      bool
}

func newMockTerminal(width int) *mockTerminal {
	return &mockTerminal{
		interactive: true,
		width:       width,
	}
}

func (m *mockTerminal) IsTerminal() bool {
	return m.interactive
}

func (m *mockTerminal) SetRaw() error {
	if m.setRawErr != nil {
		return m.setRawErr
	}
	m.rawMode = true
	m.rawCount++
	return nil
}

func (m *mockTerminal) Restore() error {
	m.rawMode = false
	return nil
}

func (m *mockTerminal) Width() int {
	if m.width <= 0 {
		return defaultWidth
	}
	return m.width
}

func (m *mockTerminal) Close() error {
	m.closed = true
	m.rawMode = false
	return nil
}
