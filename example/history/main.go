// Package main demonstrates history management features of the editline library.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/nao1215/editline"
)

// historyFile returns where this example keeps its history. The library
// itself never touches the file system.
func historyFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".editline_history"
	}
	return filepath.Join(dir, "editline", "history")
}

func loadHistory(e *editline.Editor, path string) {
	f, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Warning: failed to open history file: %v\n", err)
		}
		return
	}
	defer f.Close()

	if _, err := e.ReadHistory(f); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
}

func saveHistory(e *editline.Editor, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create history directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return fmt.Errorf("failed to create history file: %w", err)
	}
	defer f.Close()

	_, err = e.WriteHistory(f)
	return err
}

func main() {
	path := historyFile()

	fmt.Println("History Example with File Persistence")
	fmt.Println("Use Up/Down arrow keys to navigate history")
	fmt.Println("Type 'history' to see command history")
	fmt.Println("Type 'clear' to clear history")
	fmt.Println("Type 'exit' or 'quit' to exit")
	fmt.Printf("History is saved to %s\n", path)
	fmt.Println()

	e, err := editline.New(os.Stdin, os.Stdout, editline.WithHistoryMaxLen(1000))
	if err != nil {
		log.Fatal(err)
	}
	defer e.Close()

	loadHistory(e, path)
	defer func() {
		if err := saveHistory(e, path); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		}
	}()

	for {
		result, err := e.Readline("history> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println("Goodbye!")
				break
			}
			log.Printf("Error: %v\n", err)
			continue
		}

		// Trim whitespace
		result = strings.TrimSpace(result)
		if result == "" {
			continue
		}

		// Handle special commands
		switch result {
		case "exit", "quit":
			fmt.Println("Goodbye!")
			return
		case "history":
			fmt.Println("Command History:")
			for i, cmd := range e.History() {
				fmt.Printf("  %3d: %s\n", i+1, cmd)
			}
		case "clear":
			e.ClearHistory()
			fmt.Println("History cleared")
		default:
			e.AddHistory(result)
			fmt.Printf("Executed: %s\n", result)
		}
	}
}
