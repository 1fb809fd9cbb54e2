package compiler

import (
	"fmt"
	"os"

	"nilan/bytecode"
	"nilan/lexer"
	"nilan/token"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"
)

// maxLocals is the cap on simultaneously-live locals in one scope chain,
// matching the one-byte short local-index encoding.
const maxLocals = 256

// Local is a lexically scoped variable binding: a name and the scope depth
// at which it became visible. depth == -1 marks "declared but not yet
// initialized", used to reject `var x = x;`.
type Local struct {
	Name  string
	Depth int
}

// Parser drives the scanner one token at a time and emits directly into a
// bytecode.Chunk — there is no intermediate AST.
type Parser struct {
	lexer *lexer.Lexer

	current  token.Token
	previous token.Token

	hadError  bool
	panicMode bool
	errors    *multierror.Error

	chunk *bytecode.Chunk

	locals     []Local
	scopeDepth int

	log *logrus.Logger
}

func newParser(source string, log *logrus.Logger) *Parser {
	return &Parser{
		lexer: lexer.New(source),
		chunk: bytecode.New(),
		log:   log,
	}
}

func (p *Parser) advance() {
	p.previous = p.current
	for {
		p.current = p.lexer.NextToken()
		if p.current.TokenType != token.ERROR {
			break
		}
		p.errorAtCurrent(p.current.Lexeme)
	}
}

func (p *Parser) check(tt token.TokenType) bool {
	return p.current.TokenType == tt
}

func (p *Parser) match(tt token.TokenType) bool {
	if !p.check(tt) {
		return false
	}
	p.advance()
	return true
}

func (p *Parser) consume(tt token.TokenType, message string) {
	if p.current.TokenType == tt {
		p.advance()
		return
	}
	p.errorAtCurrent(message)
}

func (p *Parser) errorAtCurrent(message string) {
	p.errorAt(p.current, message)
}

func (p *Parser) error(message string) {
	p.errorAt(p.previous, message)
}

// errorAt records one compile error, suppressing further errors until the
// next synchronize() — the panic-mode recovery policy.
func (p *Parser) errorAt(tok token.Token, message string) {
	if p.panicMode {
		return
	}
	p.panicMode = true
	p.hadError = true

	var where string
	switch tok.TokenType {
	case token.EOF:
		where = "at end"
	case token.ERROR:
		where = ""
	default:
		where = fmt.Sprintf("at '%s'", tok.Lexeme)
	}

	var formatted string
	if where == "" {
		formatted = fmt.Sprintf("[line %d] Error: %s", tok.Line, message)
	} else {
		formatted = fmt.Sprintf("[line %d] Error %s: %s", tok.Line, where, message)
	}

	p.errors = multierror.Append(p.errors, fmt.Errorf("%s", formatted))

	if os.Getenv("NILAN_DEBUG") != "" {
		p.log.Debugln("panic-mode recovery:", formatted)
	}
}

// synchronize advances tokens until just past a statement boundary: a ';'
// or one of the statement-start keywords, or EOF.
func (p *Parser) synchronize() {
	p.panicMode = false

	for p.current.TokenType != token.EOF {
		if p.previous.TokenType == token.SEMICOLON {
			return
		}
		if token.SynchronizePoints[p.current.TokenType] {
			return
		}
		p.advance()
	}
}
