// Package main demonstrates reading a password with echo disabled.
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
	e, err := editline.New(os.Stdin, os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	defer e.Close()

	user, err := e.Readline("user: ")
	if err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		log.Fatal(err)
	}

	// Draw '*' for every character typed. Use DisableEcho(0) to draw nothing.
	e.DisableEcho('*')
	password, err := e.Readline("password: ")
	e.EnableEcho()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return
		}
		log.Fatal(err)
	}

	fmt.Printf("Logged in as %s (%d characters of password)\n", user, len([]rune(password)))
}
