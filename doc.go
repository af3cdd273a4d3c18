// Package editline is an embeddable line editor for terminal programs, a
// small replacement for GNU readline.
//
// It reads one line at a time with editing, history and key bindings, and
// redraws lines that wrap over several terminal rows. Characters are
// grouped as UTF-8 by default, with grapheme clusters and wide characters
// measured through github.com/rivo/uniseg; a single-byte ASCII model is
// available for terminals that need it.
//
// Quick Start:
//
//	package main
//
//	import (
//		"errors"
//		"fmt"
//		"io"
//		"log"
//		"os"
//
//		"github.com/nao1215/editline"
//	)
//
//	func main() {
//		e, err := editline.New(os.Stdin, os.Stdout)
//		if err != nil {
//			log.Fatal(err)
//		}
//		defer e.Close()
//
//		for {
//			line, err := e.Readline("> ")
//			if errors.Is(err, io.EOF) {
//				return
//			}
//			if err != nil {
//				log.Fatal(err)
//			}
//			e.AddHistory(line)
//			fmt.Printf("You entered: %s\n", line)
//		}
//	}
//
// When standard input is not a terminal, Readline reads plain lines with no
// editing, so programs work unchanged with piped input.
//
// Key Bindings:
//
//   - Enter: Accept the line
//   - Ctrl+C: Clear the line and accept it empty
//   - Ctrl+D: Delete at the cursor; io.EOF on an empty line
//   - Left/Right, Ctrl+B/Ctrl+F: Move by one character
//   - Home/End, Ctrl+A/Ctrl+E: Move to the start or end of the line
//   - Up/Down, Ctrl+P/Ctrl+N: Previous and next history entry
//   - Backspace, Ctrl+H: Delete before the cursor
//   - Delete: Delete at the cursor
//   - Ctrl+K: Delete to the end of the line
//   - Ctrl+U: Delete to the start of the line
//   - Ctrl+W: Delete the previous word
//   - Ctrl+T: Swap the two characters around the cursor
//   - Ctrl+L: Clear the screen
//
// Custom Key Bindings:
//
// Any byte or byte sequence can be bound to a Handler. The built-in
// operations are KeyAction values and can be bound elsewhere; custom
// handlers edit the line through the Session they receive:
//
//	e.BindSequence("\x1bOP", editline.HandlerFunc(func(s *editline.Session, _ []byte) editline.Outcome {
//		s.Printf("\r\nhelp: type a command\r\n")
//		s.ResetLineState()
//		return editline.Handled
//	}))
//
// Completion:
//
// The editor does not generate candidates. A handler bound to Tab works out
// what to offer and passes it to Session.Complete, which inserts the common
// prefix or lists the candidates below the line.
//
// History:
//
// History lives in memory and is limited to DefaultHistoryMaxLen entries
// unless changed with WithHistoryMaxLen or SetHistoryMaxLen. ReadHistory and
// WriteHistory load and save it from any reader or writer; choosing the file
// is left to the program.
//
// Thread Safety:
//
// An Editor is not safe for concurrent use. Readline blocks until a line is
// complete; ReadlineWithContext checks its context between key strokes.
//
// Resource Management:
//
// Always call Close() when done with an editor. It restores the terminal
// and is safe to call multiple times.
package editline
