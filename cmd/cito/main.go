package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/fatih/color"

	"github.com/Marco012/cito/internal/compiler/generator"
	"github.com/Marco012/cito/internal/compiler/parser"
	"github.com/Marco012/cito/internal/compiler/resolver"
)

var (
	errColor  = color.New(color.FgRed)
	infoColor = color.New(color.FgCyan)
	okColor   = color.New(color.FgGreen)
)

func main() {
	var (
		outputFile  = flag.String("o", "out.js", "output file path")
		dump        = flag.Bool("d", false, "dump the parsed AST instead of generating code")
		interactive = flag.Bool("i", false, "interactive REPL mode")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: cito [-o output.js] [-d] [-i] <input.ci>...\n\nFlags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *interactive {
		runRepl()
		return
	}
	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	// 1. Parsing: one program accumulates all input files
	p := parser.New()
	for _, inputFile := range flag.Args() {
		infoColor.Fprintf(os.Stderr, "parsing %s\n", inputFile)
		f, err := os.Open(inputFile)
		if err != nil {
			errColor.Fprintf(os.Stderr, "cito: %v\n", err)
			os.Exit(1)
		}
		err = p.Parse(inputFile, f)
		f.Close()
		if err != nil {
			errColor.Fprintf(os.Stderr, "cito: %v\n", err)
			os.Exit(1)
		}
	}

	// 2. Resolution
	if err := resolver.New(p.Program()).Resolve(); err != nil {
		errColor.Fprintf(os.Stderr, "cito: %v\n", err)
		os.Exit(1)
	}

	if *dump {
		fmt.Print(dumpProgram(p.Program()))
		return
	}

	// 3. Generation
	code, err := generator.New().Generate(p.Program())
	if err != nil {
		errColor.Fprintf(os.Stderr, "cito: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outputFile, []byte(code), 0644); err != nil {
		errColor.Fprintf(os.Stderr, "cito: %v\n", err)
		os.Exit(1)
	}
	okColor.Fprintf(os.Stderr, "wrote %s\n", *outputFile)
}
