package compiler

import (
	"nilan/bytecode"
	"nilan/value"
)

// Local aliases keep the statement/expression-handling code in this
// package readable without a bytecode. prefix on every opcode reference.
const (
	opReturn            = bytecode.OP_RETURN
	opConstant          = bytecode.OP_CONSTANT
	opAdd               = bytecode.OP_ADD
	opSubtract          = bytecode.OP_SUBTRACT
	opMultiply          = bytecode.OP_MULTIPLY
	opDivide            = bytecode.OP_DIVIDE
	opNegate            = bytecode.OP_NEGATE
	opNil               = bytecode.OP_NIL
	opTrue              = bytecode.OP_TRUE
	opFalse             = bytecode.OP_FALSE
	opNot               = bytecode.OP_NOT
	opEqual             = bytecode.OP_EQUAL
	opGreater           = bytecode.OP_GREATER
	opLess              = bytecode.OP_LESS
	opPrint             = bytecode.OP_PRINT
	opPop               = bytecode.OP_POP
	opDefineGlobal      = bytecode.OP_DEFINE_GLOBAL
	opDefineGlobalLong  = bytecode.OP_DEFINE_GLOBAL_LONG
	opGetGlobal         = bytecode.OP_GET_GLOBAL
	opGetGlobalLong     = bytecode.OP_GET_GLOBAL_LONG
	opSetGlobal         = bytecode.OP_SET_GLOBAL
	opSetGlobalLong     = bytecode.OP_SET_GLOBAL_LONG
	opGetLocal          = bytecode.OP_GET_LOCAL
	opGetLocalLong      = bytecode.OP_GET_LOCAL_LONG
	opSetLocal          = bytecode.OP_SET_LOCAL
	opSetLocalLong      = bytecode.OP_SET_LOCAL_LONG
	opJumpIfFalse       = bytecode.OP_JUMP_IF_FALSE
	opJump              = bytecode.OP_JUMP
)

func (p *Parser) emitByte(op bytecode.Opcode) {
	p.chunk.Write(byte(op), p.previous.Line)
}

func (p *Parser) emitBytes(ops ...bytecode.Opcode) {
	for _, op := range ops {
		p.emitByte(op)
	}
}

func (p *Parser) emitConstant(v value.Value) {
	p.chunk.WriteConstant(v, p.previous.Line)
}

func (p *Parser) emitJump(op bytecode.Opcode) int {
	return p.chunk.EmitJump(op, p.previous.Line)
}

func (p *Parser) patchJump(offset int) {
	if err := p.chunk.PatchJump(offset); err != nil {
		p.error(err.Error())
	}
}

func (p *Parser) emitLoop(loopStart int) {
	if err := p.chunk.EmitLoop(loopStart, p.previous.Line); err != nil {
		p.error(err.Error())
	}
}

// emitIndexedOp emits the short (1-byte) form of op if index fits, or the
// long (3-byte) form if not.
func (p *Parser) emitIndexedOp(short, long bytecode.Opcode, index int) {
	if index < 256 {
		p.emitByte(short)
		p.chunk.Write(byte(index), p.previous.Line)
		return
	}
	p.emitByte(long)
	buf := []byte{byte(index), byte(index >> 8), byte(index >> 16)}
	p.chunk.Write(buf[0], p.previous.Line)
	p.chunk.Write(buf[1], p.previous.Line)
	p.chunk.Write(buf[2], p.previous.Line)
}
