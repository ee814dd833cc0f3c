// Command rox is the CLI front end for the language: a REPL when invoked
// with no arguments, a one-shot file runner otherwise. Everything in this
// package is an external collaborator per the specification — the
// compiler and VM it drives are where the interesting work happens.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"rox/internal/compiler"
	"rox/internal/vm"
)

func main() {
	disassemble := flag.Bool("disassemble", false, "print the compiled chunk before running it")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		runREPL(*disassemble)
		return
	}

	source, err := os.ReadFile(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "rox: %s\n", err)
		os.Exit(1)
	}

	if !runSource(string(source), args[0], *disassemble) {
		os.Exit(1)
	}
}

// runSource compiles and runs one unit of source against a fresh VM. It
// returns false if compilation or execution failed, so cmd/rox can pick
// an exit code.
func runSource(source, name string, disassemble bool) bool {
	return interpretWith(vm.New(), source, name, disassemble)
}

func interpretWith(machine *vm.VM, source, name string, disassemble bool) bool {
	c, ok := compiler.Compile(source, name)
	if !ok {
		return false
	}
	if disassemble {
		c.Disassemble(name)
	}
	if err := machine.Interpret(c); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return false
	}
	return true
}

// runREPL reads one line at a time, compiling and running each against a
// shared VM so that globals persist across lines (spec §6, §9). Compile
// and runtime errors are reported but never exit the process here; only
// EOF on stdin ends the session.
func runREPL(disassemble bool) {
	machine := vm.New()
	interactive := isatty.IsTerminal(os.Stdin.Fd())

	scanner := bufio.NewScanner(os.Stdin)
	for {
		if interactive {
			fmt.Print("> ")
		}
		if !scanner.Scan() {
			break
		}
		line := scanner.Text()
		if line == "" {
			continue
		}
		interpretWith(machine, line, "repl", disassemble)
	}
}
