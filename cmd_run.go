package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"nilan/compiler"
	"nilan/vm"

	"github.com/google/subcommands"
)

// runCmd implements `nilan run <path>`: compile a source file to a chunk
// and execute it in a fresh VM.
type runCmd struct{}

func (*runCmd) Name() string     { return "run" }
func (*runCmd) Synopsis() string { return "Execute Nilan code from a source file" }
func (*runCmd) Usage() string {
	return `run <file>:
  Compile and execute Nilan code.
`
}
func (r *runCmd) SetFlags(f *flag.FlagSet) {}

func (r *runCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "💥 Expected exactly one file argument\n")
		return exitUsageError
	}
	filename := args[0]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file: %v\n", err)
		return exitUsageError
	}

	chunk, err := compiler.Compile(string(data))
	if err != nil {
		return exitCompileError
	}

	machine := vm.New()
	if err := machine.Run(chunk); err != nil {
		return exitRuntimeError
	}

	return subcommands.ExitSuccess
}
