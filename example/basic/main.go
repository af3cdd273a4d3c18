// Package main demonstrates basic usage of the editline library.
package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/nao1215/editline"
)

func main() {
	// Create an editor on standard input and output with default settings
	e, err := editline.New(os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	defer e.Close()

	fmt.Println("Basic Editline Example")
	fmt.Println("Type 'exit' or 'quit' to exit")
	fmt.Println("Press Ctrl+D to exit")
	fmt.Println()

	for {
		// Read a line with editing enabled
		result, err := e.Readline(">>> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Println("Goodbye!")
				break
			}
			log.Printf("Error: %v\n", err)
			continue
		}

		// Handle exit commands
		if result == "exit" || result == "quit" {
			fmt.Println("Goodbye!")
			break
		}

		// Echo the input back
		fmt.Printf("You typed: %s\n", result)
	}
}
