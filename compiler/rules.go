package compiler

import (
	"strconv"

	"nilan/bytecode"
	"nilan/token"
	"nilan/value"
)

// Precedence levels, ascending.
type Precedence int

const (
	PrecNone Precedence = iota
	PrecAssignment
	PrecOr
	PrecAnd
	PrecEquality
	PrecComparison
	PrecTerm
	PrecFactor
	PrecUnary
	PrecCall
	PrecPrimary
)

type parseFn func(p *Parser, canAssign bool)

type parseRule struct {
	prefix     parseFn
	infix      parseFn
	precedence Precedence
}

var parseRules map[token.TokenType]parseRule

func init() {
	parseRules = map[token.TokenType]parseRule{
		token.LPA:          {(*Parser).grouping, nil, PrecNone},
		token.MULT:         {nil, (*Parser).binary, PrecFactor},
		token.DIV:          {nil, (*Parser).binary, PrecFactor},
		token.ADD:          {nil, (*Parser).binary, PrecTerm},
		token.SUB:          {(*Parser).unary, (*Parser).binary, PrecTerm},
		token.BANG:         {(*Parser).unary, nil, PrecNone},
		token.NOT_EQUAL:    {nil, (*Parser).binary, PrecEquality},
		token.EQUAL_EQUAL:  {nil, (*Parser).binary, PrecEquality},
		token.LESS:         {nil, (*Parser).binary, PrecComparison},
		token.LESS_EQUAL:   {nil, (*Parser).binary, PrecComparison},
		token.LARGER:       {nil, (*Parser).binary, PrecComparison},
		token.LARGER_EQUAL: {nil, (*Parser).binary, PrecComparison},
		token.IDENTIFIER:   {(*Parser).variable, nil, PrecNone},
		token.STRING:       {(*Parser).string_, nil, PrecNone},
		token.NUMBER:       {(*Parser).number, nil, PrecNone},
		token.TRUE:         {(*Parser).literal, nil, PrecNone},
		token.FALSE:        {(*Parser).literal, nil, PrecNone},
		token.NIL:          {(*Parser).literal, nil, PrecNone},
		token.AND:          {nil, (*Parser).and_, PrecAnd},
		token.OR:           {nil, (*Parser).or_, PrecOr},
	}
}

func getRule(tt token.TokenType) parseRule {
	rule, ok := parseRules[tt]
	if !ok {
		return parseRule{}
	}
	return rule
}

// parsePrecedence is the Pratt core: parse a prefix expression, then keep
// consuming infix operators whose precedence is at least precedence.
func (p *Parser) parsePrecedence(precedence Precedence) {
	p.advance()
	prefixRule := getRule(p.previous.TokenType).prefix
	if prefixRule == nil {
		p.error("Expect expression.")
		return
	}

	canAssign := precedence <= PrecAssignment
	prefixRule(p, canAssign)

	for precedence <= getRule(p.current.TokenType).precedence {
		p.advance()
		infixRule := getRule(p.previous.TokenType).infix
		infixRule(p, canAssign)
	}

	if canAssign && p.match(token.ASSIGN) {
		p.error("Invalid assignment target.")
	}
}

func (p *Parser) expression() {
	p.parsePrecedence(PrecAssignment)
}

func (p *Parser) number(_ bool) {
	n, err := strconv.ParseInt(p.previous.Lexeme, 10, 64)
	if err != nil {
		p.error("Invalid number literal.")
		return
	}
	p.emitConstant(value.Num(n))
}

func (p *Parser) string_(_ bool) {
	p.emitConstant(value.Str(p.previous.Lexeme))
}

func (p *Parser) literal(_ bool) {
	switch p.previous.TokenType {
	case token.TRUE:
		p.emitByte(opTrue)
	case token.FALSE:
		p.emitByte(opFalse)
	case token.NIL:
		p.emitByte(opNil)
	}
}

func (p *Parser) grouping(_ bool) {
	p.expression()
	p.consume(token.RPA, "Expect ')' after expression.")
}

func (p *Parser) unary(_ bool) {
	operatorType := p.previous.TokenType
	p.parsePrecedence(PrecUnary)

	switch operatorType {
	case token.SUB:
		p.emitByte(opNegate)
	case token.BANG:
		p.emitByte(opNot)
	}
}

func (p *Parser) binary(_ bool) {
	operatorType := p.previous.TokenType
	rule := getRule(operatorType)
	p.parsePrecedence(rule.precedence + 1)

	switch operatorType {
	case token.NOT_EQUAL:
		p.emitBytes(opEqual, opNot)
	case token.EQUAL_EQUAL:
		p.emitByte(opEqual)
	case token.LARGER:
		p.emitByte(opGreater)
	case token.LARGER_EQUAL:
		p.emitBytes(opLess, opNot)
	case token.LESS:
		p.emitByte(opLess)
	case token.LESS_EQUAL:
		p.emitBytes(opGreater, opNot)
	case token.ADD:
		p.emitByte(opAdd)
	case token.SUB:
		p.emitByte(opSubtract)
	case token.MULT:
		p.emitByte(opMultiply)
	case token.DIV:
		p.emitByte(opDivide)
	}
}

func (p *Parser) and_(_ bool) {
	endJump := p.emitJump(opJumpIfFalse)
	p.emitByte(opPop)
	p.parsePrecedence(PrecAnd)
	p.patchJump(endJump)
}

func (p *Parser) or_(_ bool) {
	elseJump := p.emitJump(opJumpIfFalse)
	endJump := p.emitJump(opJump)

	p.patchJump(elseJump)
	p.emitByte(opPop)

	p.parsePrecedence(PrecOr)
	p.patchJump(endJump)
}

func (p *Parser) variable(canAssign bool) {
	p.namedVariable(p.previous.Lexeme, canAssign)
}

// namedVariable resolves name as a local or global and emits the
// appropriate GET/SET instruction.
func (p *Parser) namedVariable(name string, canAssign bool) {
	slot := p.resolveLocal(name)

	var getShort, getLong, setShort, setLong bytecode.Opcode
	var index int
	isLocal := slot != -1

	if isLocal {
		index = slot
		getShort, getLong = opGetLocal, opGetLocalLong
		setShort, setLong = opSetLocal, opSetLocalLong
	} else {
		index = p.identifierConstant(name)
		getShort, getLong = opGetGlobal, opGetGlobalLong
		setShort, setLong = opSetGlobal, opSetGlobalLong
	}

	if canAssign && p.match(token.ASSIGN) {
		p.expression()
		p.emitIndexedOp(setShort, setLong, index)
		return
	}
	p.emitIndexedOp(getShort, getLong, index)
}

// identifierConstant adds name as a string constant and returns its index,
// for use as the operand of a GET/SET/DEFINE_GLOBAL instruction.
func (p *Parser) identifierConstant(name string) int {
	return p.chunk.AddConstant(value.Str(name))
}
