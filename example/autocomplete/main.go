// Package main demonstrates Tab completion using only public APIs.
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

// Available commands
var commands = []string{"help", "list", "create", "delete", "update", "status", "exit"}

// completeCommand returns the commands starting with prefix.
func completeCommand(prefix string) []string {
	var matches []string
	for _, cmd := range commands {
		if strings.HasPrefix(cmd, strings.ToLower(prefix)) {
			matches = append(matches, cmd)
		}
	}
	return matches
}

// completeFilePath returns file and directory names for path. Directories
// end with a separator so completion can continue inside them.
func completeFilePath(path string) []string {
	dir, base := filepath.Split(path)
	readDir := dir
	if readDir == "" {
		readDir = "."
	}

	entries, err := os.ReadDir(readDir)
	if err != nil {
		return nil
	}

	matches := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()

		// Skip hidden files unless explicitly requested
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if !strings.HasPrefix(name, base) {
			continue
		}

		match := dir + name
		if entry.IsDir() {
			match += string(filepath.Separator)
		}
		matches = append(matches, match)
	}
	return matches
}

// complete completes the word before the cursor: a command for the first
// word, a file path for the others.
func complete(s *editline.Session, _ []byte) editline.Outcome {
	before := s.Line()[:s.Point()]
	start := strings.LastIndexByte(before, ' ') + 1
	word := before[start:]

	var matches []string
	if strings.TrimSpace(before[:start]) == "" {
		matches = completeCommand(word)
	} else {
		matches = completeFilePath(word)
	}

	if s.Complete(start, matches, false) {
		// A finished directory name keeps completing inside it.
		if line := s.Line()[:s.Point()]; !strings.HasSuffix(line, string(filepath.Separator)) {
			s.Insert(" ")
		}
	}
	return editline.Handled
}

// help prints the commands above the line when F1 is pressed.
func help(s *editline.Session, _ []byte) editline.Outcome {
	s.Printf("\r\ncommands: %s\r\n", strings.Join(commands, ", "))
	s.ResetLineState()
	return editline.Handled
}

func main() {
	fmt.Println("Autocomplete Example")
	fmt.Println("Press Tab to complete commands and file names, F1 for help")
	fmt.Println("Type 'exit' to quit")
	fmt.Println()

	e, err := editline.New(os.Stdin, os.Stdout, editline.WithColorScheme(editline.ThemeDark))
	if err != nil {
		log.Fatal(err)
	}
	defer e.Close()

	if err := e.Bind('\t', editline.HandlerFunc(complete)); err != nil {
		log.Fatal(err)
	}
	if err := e.BindSequence("\x1bOP", editline.HandlerFunc(help)); err != nil {
		log.Fatal(err)
	}

	for {
		result, err := e.Readline("> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println("Goodbye!")
				return
			}
			log.Printf("Error: %v\n", err)
			continue
		}

		fields := strings.Fields(result)
		if len(fields) == 0 {
			continue
		}
		e.AddHistory(result)

		switch fields[0] {
		case "exit":
			fmt.Println("Goodbye!")
			return
		case "help":
			fmt.Printf("commands: %s\n", strings.Join(commands, ", "))
		default:
			fmt.Printf("Executing: %s\n", result)
		}
	}
}
