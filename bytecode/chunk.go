package bytecode

import (
	"encoding/binary"
	"fmt"

	"nilan/value"
)

// maxJumpDistance is the largest offset a 16-bit big-endian jump operand
// can encode.
const maxJumpDistance = 65535

// maxConstants8 is the number of constant-pool slots addressable by the
// 1-byte short form before the compiler must fall back to the 3-byte long
// form.
const maxConstants8 = 256

// Chunk is an executable bytecode unit: a byte stream of instructions and
// inline operands, a parallel line-number table, and a constant pool.
type Chunk struct {
	Code      []byte
	Lines     []int
	Constants []value.Value
}

// New returns an empty Chunk.
func New() *Chunk {
	return &Chunk{}
}

// Write appends a single raw byte to the chunk, recording line as the
// source line that produced it.
func (c *Chunk) Write(b byte, line int) {
	c.Code = append(c.Code, b)
	c.Lines = append(c.Lines, line)
}

// AddConstant appends v to the constant pool and returns its index.
func (c *Chunk) AddConstant(v value.Value) int {
	c.Constants = append(c.Constants, v)
	return len(c.Constants) - 1
}

// WriteConstant emits a CONSTANT (or CONSTANT_LONG, if the pool has grown
// past maxConstants8) instruction that pushes v, returning the byte offset
// of the opcode.
func (c *Chunk) WriteConstant(v value.Value, line int) int {
	index := c.AddConstant(v)
	offset := len(c.Code)
	if index < maxConstants8 {
		c.Write(byte(OP_CONSTANT), line)
		c.Write(byte(index), line)
	} else {
		c.Write(byte(OP_CONSTANT_LONG), line)
		c.write24(index, line)
	}
	return offset
}

func (c *Chunk) write24(index int, line int) {
	buf := make([]byte, 4)
	binary.LittleEndian.PutUint32(buf, uint32(index))
	c.Write(buf[0], line)
	c.Write(buf[1], line)
	c.Write(buf[2], line)
}

// EmitJump writes op followed by two placeholder 0xFF bytes and returns
// the offset of the first placeholder byte, to be patched later via
// PatchJump.
func (c *Chunk) EmitJump(op Opcode, line int) int {
	c.Write(byte(op), line)
	c.Write(0xFF, line)
	c.Write(0xFF, line)
	return len(c.Code) - 2
}

// PatchJump overwrites the placeholder operand at offset with the distance
// from the end of that operand to the current end of the chunk. Returns an
// error if the distance exceeds the 16-bit operand's range.
func (c *Chunk) PatchJump(offset int) error {
	jump := len(c.Code) - offset - 2
	if jump > maxJumpDistance {
		return fmt.Errorf("Too much code to jump over.")
	}
	binary.BigEndian.PutUint16(c.Code[offset:offset+2], uint16(jump))
	return nil
}

// EmitLoop writes OP_LOOP followed by the big-endian distance back to
// loopStart.
func (c *Chunk) EmitLoop(loopStart int, line int) error {
	c.Write(byte(OP_LOOP), line)
	jump := len(c.Code) - loopStart + 2
	if jump > maxJumpDistance {
		return fmt.Errorf("Too much code to jump over.")
	}
	c.Write(0xFF, line)
	c.Write(0xFF, line)
	binary.BigEndian.PutUint16(c.Code[len(c.Code)-2:], uint16(jump))
	return nil
}

// ReadConstantIndex decodes the operand of a CONSTANT/CONSTANT_LONG (or any
// other 1-or-3-byte-operand) instruction located at offset, returning the
// decoded index and the total instruction length (opcode + operand).
func (c *Chunk) ReadConstantIndex(offset int) (index int, length int) {
	op := Opcode(c.Code[offset])
	switch operandWidth(op) {
	case 1:
		return int(c.Code[offset+1]), 2
	case 3:
		buf := make([]byte, 4)
		copy(buf, c.Code[offset+1:offset+4])
		return int(binary.LittleEndian.Uint32(buf)), 4
	default:
		panic(fmt.Sprintf("opcode %s does not carry a constant/local index operand", op.Name()))
	}
}

// ReadJumpOffset decodes the 16-bit big-endian operand of a jump
// instruction located at offset, returning the decoded distance and the
// total instruction length (3: opcode + 2 operand bytes).
func (c *Chunk) ReadJumpOffset(offset int) (distance int, length int) {
	return int(binary.BigEndian.Uint16(c.Code[offset+1 : offset+3])), 3
}

// InstructionLength returns the total byte length (opcode + operands) of
// the instruction at offset, without interpreting its operand value.
func (c *Chunk) InstructionLength(offset int) int {
	op := Opcode(c.Code[offset])
	return 1 + operandWidth(op)
}
