package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/Marco012/cito/internal/compiler/parser"
)

// runRepl reads CI declarations line by line and dumps what they parse to.
// A line ending in `\` continues on the next line, so whole classes can be
// typed interactively.
func runRepl() {
	rl, err := readline.New("ci> ")
	if err != nil {
		errColor.Printf("cito: %v\n", err)
		return
	}
	defer rl.Close()

	infoColor.Println("cito repl — type CI declarations, :q to quit")
	var pending strings.Builder
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			pending.Reset()
			rl.SetPrompt("ci> ")
			continue
		}
		if err == io.EOF || strings.TrimSpace(line) == ":q" {
			return
		}
		if strings.HasSuffix(line, "\\") {
			pending.WriteString(strings.TrimSuffix(line, "\\"))
			pending.WriteString("\n")
			rl.SetPrompt("... ")
			continue
		}
		pending.WriteString(line)
		input := pending.String()
		pending.Reset()
		rl.SetPrompt("ci> ")
		if strings.TrimSpace(input) == "" {
			continue
		}

		p := parser.New()
		if err := p.Parse("<repl>", strings.NewReader(input)); err != nil {
			errColor.Printf("%v\n", err)
			continue
		}
		fmt.Print(dumpProgram(p.Program()))
	}
}
