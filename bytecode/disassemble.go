package bytecode

import (
	"fmt"
	"strings"
)

// Disassemble renders every instruction in chunk as human-readable text,
// one line per instruction, prefixed with the chunk's name.
func Disassemble(chunk *Chunk, name string) string {
	var builder strings.Builder
	fmt.Fprintf(&builder, "== %s ==\n", name)
	offset := 0
	for offset < len(chunk.Code) {
		line, next := DisassembleInstruction(chunk, offset)
		builder.WriteString(line)
		builder.WriteString("\n")
		offset = next
	}
	return builder.String()
}

// DisassembleInstruction formats the single instruction at offset and
// returns it alongside the offset of the next instruction. On an unknown
// opcode it prints a warning line and advances by one byte, so malformed
// input still produces output instead of stopping the disassembler.
func DisassembleInstruction(chunk *Chunk, offset int) (string, int) {
	var builder strings.Builder
	fmt.Fprintf(&builder, "%04d ", offset)

	if offset > 0 && chunk.Lines[offset] == chunk.Lines[offset-1] {
		builder.WriteString("   | ")
	} else {
		fmt.Fprintf(&builder, "%4d ", chunk.Lines[offset])
	}

	op := Opcode(chunk.Code[offset])
	if _, ok := names[op]; !ok {
		fmt.Fprintf(&builder, "Unknown opcode %d\n", op)
		return builder.String(), offset + 1
	}

	switch op {
	case OP_RETURN, OP_ADD, OP_SUBTRACT, OP_MULTIPLY, OP_DIVIDE, OP_NEGATE,
		OP_NIL, OP_TRUE, OP_FALSE, OP_NOT, OP_EQUAL, OP_GREATER, OP_LESS,
		OP_PRINT, OP_POP:
		builder.WriteString(op.Name())
		return builder.String(), offset + 1

	case OP_CONSTANT, OP_CONSTANT_LONG, OP_DEFINE_GLOBAL, OP_DEFINE_GLOBAL_LONG,
		OP_GET_GLOBAL, OP_GET_GLOBAL_LONG, OP_SET_GLOBAL, OP_SET_GLOBAL_LONG:
		index, length := chunk.ReadConstantIndex(offset)
		fmt.Fprintf(&builder, "%-20s %4d '%s'", op.Name(), index, chunk.Constants[index].String())
		return builder.String(), offset + length

	case OP_GET_LOCAL, OP_GET_LOCAL_LONG, OP_SET_LOCAL, OP_SET_LOCAL_LONG:
		slot, length := chunk.ReadConstantIndex(offset)
		fmt.Fprintf(&builder, "%-20s %4d", op.Name(), slot)
		return builder.String(), offset + length

	case OP_JUMP_IF_FALSE, OP_JUMP:
		distance, length := chunk.ReadJumpOffset(offset)
		target := offset + length + distance
		fmt.Fprintf(&builder, "%-20s %4d -> %d", op.Name(), offset, target)
		return builder.String(), offset + length

	case OP_LOOP:
		distance, length := chunk.ReadJumpOffset(offset)
		target := offset + length - distance
		fmt.Fprintf(&builder, "%-20s %4d -> %d", op.Name(), offset, target)
		return builder.String(), offset + length
	}

	fmt.Fprintf(&builder, "Unhandled opcode %s\n", op.Name())
	return builder.String(), offset + 1
}
