// Package compiler implements Nilan's single-pass Pratt-style compiler: a
// Parser drives the lexer token-by-token, resolves lexical scopes through
// a flat Locals stack, and emits directly into a bytecode.Chunk with no
// intermediate AST.
package compiler

import (
	"os"

	"nilan/bytecode"
	"nilan/token"

	"github.com/sirupsen/logrus"
	easy "github.com/t-tomalak/logrus-easy-formatter"
)

func newLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&easy.Formatter{
		LogFormat: "[%lvl%] %msg%\n",
	})
	if os.Getenv("NILAN_DEBUG") != "" {
		log.SetLevel(logrus.DebugLevel)
	} else {
		log.SetLevel(logrus.ErrorLevel)
	}
	return log
}

// Compile drives the whole pipeline in one pass over source: declaration*
// EOF. On success it returns a ready-to-execute chunk; on any compile
// error, the chunk is discarded and a *CompileError accumulating every
// distinct failure is returned, after being logged once through the same
// logger used for debug tracing.
func Compile(source string) (*bytecode.Chunk, error) {
	log := newLogger()
	parser := newParser(source, log)

	parser.advance()
	for !parser.match(token.EOF) {
		parser.declaration()
	}

	parser.emitByte(opReturn)

	if parser.hadError {
		err := &CompileError{Errors: parser.errors}
		log.Error(err.Error())
		return nil, err
	}

	if os.Getenv("NILAN_DEBUG") != "" {
		log.Debugln(bytecode.Disassemble(parser.chunk, "compiled chunk"))
	}

	return parser.chunk, nil
}
