package main

import (
	"context"
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strings"

	"nilan/bytecode"
	"nilan/compiler"

	"github.com/google/subcommands"
)

// emitBytecodeCmd implements `nilan emit <file>`: compile a source file
// and print its disassembly, optionally also dumping the raw bytecode as
// hex to a .nic file alongside it.
type emitBytecodeCmd struct {
	disassemble bool
	dump        bool
}

func (*emitBytecodeCmd) Name() string { return "emit" }
func (*emitBytecodeCmd) Synopsis() string {
	return "Emit the bytecode representation from a source file"
}
func (*emitBytecodeCmd) Usage() string {
	return `nilan emit <file> [-disassemble] [-dump]`
}

func (cmd *emitBytecodeCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&cmd.disassemble, "disassemble", true, "print the disassembled bytecode to stdout.")
	f.BoolVar(&cmd.dump, "dump", false, "write the encoded bytecode as hexadecimal to a .nic file")
}

func (cmd *emitBytecodeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	args := f.Args()
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "💥 Expected exactly one file argument\n")
		return exitUsageError
	}
	nilanFile := args[0]
	data, err := os.ReadFile(nilanFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "💥 Failed to read file:\n\t%v\n", err.Error())
		return exitUsageError
	}

	chunk, err := compiler.Compile(string(data))
	if err != nil {
		return exitCompileError
	}

	if cmd.disassemble {
		fmt.Println(bytecode.Disassemble(chunk, nilanFile))
	}

	if cmd.dump {
		parts := strings.SplitN(nilanFile, ".", 2)
		outPath := parts[0] + ".nic"
		if err := os.WriteFile(outPath, []byte(hex.EncodeToString(chunk.Code)), 0644); err != nil {
			fmt.Fprintf(os.Stderr, "💥 Dump bytecode error:\n\t%s\n", err.Error())
			return exitUsageError
		}
	}

	return subcommands.ExitSuccess
}
