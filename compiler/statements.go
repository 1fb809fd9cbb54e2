package compiler

import (
	"nilan/token"
)

// declaration parses a single top-level-or-block item and synchronizes on
// error, so one bad statement does not hide errors in later ones.
func (p *Parser) declaration() {
	if p.match(token.VAR) {
		p.varDeclaration()
	} else {
		p.statement()
	}

	if p.panicMode {
		p.synchronize()
	}
}

// varDeclaration implements: 'var' IDENT ('=' expression)? ';'
func (p *Parser) varDeclaration() {
	global := p.parseVariable("Expect variable name.")

	if p.match(token.ASSIGN) {
		p.expression()
	} else {
		p.emitByte(opNil)
	}
	p.consume(token.SEMICOLON, "Expect ';' after variable declaration.")

	p.defineVariable(global)
}

// parseVariable consumes the variable name, declares it if local, and
// returns the identifier-constant index to use for defineVariable if
// global (ignored for locals).
func (p *Parser) parseVariable(message string) int {
	p.consume(token.IDENTIFIER, message)

	name := p.previous.Lexeme
	p.declareLocal(name)
	if p.scopeDepth > 0 {
		return 0
	}
	return p.identifierConstant(name)
}

// defineVariable marks a local as initialized, or emits DEFINE_GLOBAL[_LONG]
// for a global.
func (p *Parser) defineVariable(global int) {
	if p.scopeDepth > 0 {
		p.markInitialized()
		return
	}
	p.emitIndexedOp(opDefineGlobal, opDefineGlobalLong, global)
}

func (p *Parser) statement() {
	switch {
	case p.match(token.PRINT):
		p.printStatement()
	case p.match(token.IF):
		p.ifStatement()
	case p.match(token.WHILE):
		p.whileStatement()
	case p.match(token.FOR):
		p.forStatement()
	case p.match(token.LCUR):
		p.beginScope()
		p.block()
		p.endScope()
	default:
		p.expressionStatement()
	}
}

func (p *Parser) printStatement() {
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after value.")
	p.emitByte(opPrint)
}

func (p *Parser) expressionStatement() {
	p.expression()
	p.consume(token.SEMICOLON, "Expect ';' after expression.")
	p.emitByte(opPop)
}

func (p *Parser) block() {
	for !p.check(token.RCUR) && !p.check(token.EOF) {
		p.declaration()
	}
	p.consume(token.RCUR, "Expect '}' after block.")
}

// ifStatement implements the jump-patching lowering:
//
//	compile C; j1 = emitJump(JUMP_IF_FALSE); POP; compile T
//	j2 = emitJump(JUMP); patch(j1); POP; compile E; patch(j2)
func (p *Parser) ifStatement() {
	p.consume(token.LPA, "Expect '(' after 'if'.")
	p.expression()
	p.consume(token.RPA, "Expect ')' after condition.")

	thenJump := p.emitJump(opJumpIfFalse)
	p.emitByte(opPop)
	p.statement()

	elseJump := p.emitJump(opJump)
	p.patchJump(thenJump)
	p.emitByte(opPop)

	if p.match(token.ELSE) {
		p.statement()
	}
	p.patchJump(elseJump)
}

// whileStatement implements:
//
//	start = code_len; compile C; j = emitJump(JUMP_IF_FALSE); POP
//	compile B; emitLoop(start); patch(j); POP
func (p *Parser) whileStatement() {
	loopStart := len(p.chunk.Code)

	p.consume(token.LPA, "Expect '(' after 'while'.")
	p.expression()
	p.consume(token.RPA, "Expect ')' after condition.")

	exitJump := p.emitJump(opJumpIfFalse)
	p.emitByte(opPop)
	p.statement()
	p.emitLoop(loopStart)

	p.patchJump(exitJump)
	p.emitByte(opPop)
}

// forStatement implements the desugaring to a while loop:
//
//	beginScope; compile I (or nothing)
//	start = code_len
//	if C present: compile C; jExit = emitJump(JUMP_IF_FALSE); POP
//	if U present: jBody = emitJump(JUMP); uStart = code_len
//	              compile U; POP; emitLoop(start); start = uStart; patch(jBody)
//	compile B; emitLoop(start)
//	if jExit defined: patch(jExit); POP
//	endScope
func (p *Parser) forStatement() {
	p.beginScope()
	p.consume(token.LPA, "Expect '(' after 'for'.")

	switch {
	case p.match(token.SEMICOLON):
		// no initializer
	case p.match(token.VAR):
		p.varDeclaration()
	default:
		p.expressionStatement()
	}

	loopStart := len(p.chunk.Code)
	exitJump := -1
	if !p.check(token.SEMICOLON) {
		p.expression()
		exitJump = p.emitJump(opJumpIfFalse)
		p.emitByte(opPop)
	}
	p.consume(token.SEMICOLON, "Expect ';' after loop condition.")

	if !p.check(token.RPA) {
		bodyJump := p.emitJump(opJump)
		incrementStart := len(p.chunk.Code)
		p.expression()
		p.emitByte(opPop)
		p.consume(token.RPA, "Expect ')' after for clauses.")

		p.emitLoop(loopStart)
		loopStart = incrementStart
		p.patchJump(bodyJump)
	} else {
		p.consume(token.RPA, "Expect ')' after for clauses.")
	}

	p.statement()
	p.emitLoop(loopStart)

	if exitJump != -1 {
		p.patchJump(exitJump)
		p.emitByte(opPop)
	}

	p.endScope()
}
