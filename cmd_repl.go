package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"nilan/compiler"
	"nilan/lexer"
	"nilan/token"
	"nilan/vm"

	"github.com/chzyer/readline"
	"github.com/google/subcommands"
)

// replCmd implements the REPL command. Globals and the instruction
// pointer live in one VM for the whole session, so a variable declared on
// one line is visible on the next.
type replCmd struct{}

func (*replCmd) Name() string     { return "repl" }
func (*replCmd) Synopsis() string { return "Start interactive REPL session" }
func (*replCmd) Usage() string {
	return `repl:
  Start interactive REPL session.
`
}
func (r *replCmd) SetFlags(f *flag.FlagSet) {}

func (r *replCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	fmt.Println("\nWelcome to Nilan!")

	rl, err := readline.New(">>> ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return exitUsageError
	}
	defer rl.Close()

	runREPL(rl)
	return subcommands.ExitSuccess
}

func runREPL(rl *readline.Instance) {
	machine := vm.New()
	var buffer strings.Builder

	for {
		if buffer.Len() == 0 {
			rl.SetPrompt(">>> ")
		} else {
			rl.SetPrompt("... ")
		}

		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			if buffer.Len() == 0 {
				continue
			}
			buffer.Reset()
			continue
		}
		if err == io.EOF {
			return
		}
		if err != nil {
			fmt.Fprintln(rl.Stderr(), err.Error())
			return
		}

		if strings.TrimSpace(line) == "exit" && buffer.Len() == 0 {
			return
		}

		if buffer.Len() > 0 {
			buffer.WriteString("\n")
		}
		buffer.WriteString(line)
		source := buffer.String()

		if !isInputReady(source) {
			continue
		}

		chunk, err := compiler.Compile(source)
		if err != nil {
			buffer.Reset()
			continue
		}

		machine.Run(chunk)
		buffer.Reset()
	}
}

// isInputReady scans source and reports whether it looks complete enough
// to compile: braces are balanced, and the last non-EOF token isn't an
// operator or keyword that obviously expects a continuation. This lets
// the REPL accept a multi-line if/while/block before trying to compile it.
func isInputReady(source string) bool {
	lex := lexer.New(source)

	braceBalance := 0
	var last token.Token
	for {
		tok := lex.NextToken()
		if tok.TokenType == token.EOF {
			break
		}
		if tok.TokenType == token.ERROR {
			return true
		}
		switch tok.TokenType {
		case token.LCUR:
			braceBalance++
		case token.RCUR:
			braceBalance--
		}
		last = tok
	}

	if braceBalance > 0 {
		return false
	}

	if last.TokenType == "" {
		return true
	}

	switch last.TokenType {
	case token.ASSIGN, token.ADD, token.SUB, token.MULT, token.DIV,
		token.BANG, token.EQUAL_EQUAL, token.NOT_EQUAL,
		token.LESS, token.LESS_EQUAL, token.LARGER, token.LARGER_EQUAL,
		token.COMMA, token.LPA, token.LCUR,
		token.IF, token.ELSE, token.WHILE, token.FOR, token.FUN, token.RETURN,
		token.VAR, token.AND, token.OR, token.PRINT:
		return false
	}

	return true
}
