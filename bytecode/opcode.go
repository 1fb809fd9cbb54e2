// Package bytecode owns the compiled representation the compiler emits and
// the VM executes: the Opcode set, the Chunk container, instruction
// encode/decode helpers, and the disassembler.
package bytecode

// Opcode is a single-byte instruction tag. Numeric order is fixed so the
// disassembler and the decoder agree on layout.
type Opcode byte

const (
	OP_RETURN Opcode = iota
	OP_CONSTANT
	OP_CONSTANT_LONG
	OP_ADD
	OP_SUBTRACT
	OP_MULTIPLY
	OP_DIVIDE
	OP_NEGATE
	OP_NIL
	OP_TRUE
	OP_FALSE
	OP_NOT
	OP_EQUAL
	OP_GREATER
	OP_LESS
	OP_PRINT
	OP_POP
	OP_DEFINE_GLOBAL
	OP_DEFINE_GLOBAL_LONG
	OP_GET_GLOBAL
	OP_GET_GLOBAL_LONG
	OP_SET_GLOBAL
	OP_SET_GLOBAL_LONG
	OP_GET_LOCAL
	OP_GET_LOCAL_LONG
	OP_SET_LOCAL
	OP_SET_LOCAL_LONG
	OP_JUMP_IF_FALSE
	OP_JUMP
	OP_LOOP
)

// operandWidth returns the number of operand bytes that follow op in the
// instruction stream. Short (8-bit) and long (24-bit little-endian) forms
// of the constant/local-index opcodes are distinguished here; jump opcodes
// are the only 2-byte (big-endian) operands.
func operandWidth(op Opcode) int {
	switch op {
	case OP_CONSTANT, OP_DEFINE_GLOBAL, OP_GET_GLOBAL, OP_SET_GLOBAL,
		OP_GET_LOCAL, OP_SET_LOCAL:
		return 1
	case OP_CONSTANT_LONG, OP_DEFINE_GLOBAL_LONG, OP_GET_GLOBAL_LONG,
		OP_SET_GLOBAL_LONG, OP_GET_LOCAL_LONG, OP_SET_LOCAL_LONG:
		return 3
	case OP_JUMP_IF_FALSE, OP_JUMP, OP_LOOP:
		return 2
	default:
		return 0
	}
}

var names = map[Opcode]string{
	OP_RETURN:             "OP_RETURN",
	OP_CONSTANT:           "OP_CONSTANT",
	OP_CONSTANT_LONG:      "OP_CONSTANT_LONG",
	OP_ADD:                "OP_ADD",
	OP_SUBTRACT:           "OP_SUBTRACT",
	OP_MULTIPLY:           "OP_MULTIPLY",
	OP_DIVIDE:             "OP_DIVIDE",
	OP_NEGATE:             "OP_NEGATE",
	OP_NIL:                "OP_NIL",
	OP_TRUE:               "OP_TRUE",
	OP_FALSE:              "OP_FALSE",
	OP_NOT:                "OP_NOT",
	OP_EQUAL:              "OP_EQUAL",
	OP_GREATER:            "OP_GREATER",
	OP_LESS:               "OP_LESS",
	OP_PRINT:              "OP_PRINT",
	OP_POP:                "OP_POP",
	OP_DEFINE_GLOBAL:      "OP_DEFINE_GLOBAL",
	OP_DEFINE_GLOBAL_LONG: "OP_DEFINE_GLOBAL_LONG",
	OP_GET_GLOBAL:         "OP_GET_GLOBAL",
	OP_GET_GLOBAL_LONG:    "OP_GET_GLOBAL_LONG",
	OP_SET_GLOBAL:         "OP_SET_GLOBAL",
	OP_SET_GLOBAL_LONG:    "OP_SET_GLOBAL_LONG",
	OP_GET_LOCAL:          "OP_GET_LOCAL",
	OP_GET_LOCAL_LONG:     "OP_GET_LOCAL_LONG",
	OP_SET_LOCAL:          "OP_SET_LOCAL",
	OP_SET_LOCAL_LONG:     "OP_SET_LOCAL_LONG",
	OP_JUMP_IF_FALSE:      "OP_JUMP_IF_FALSE",
	OP_JUMP:               "OP_JUMP",
	OP_LOOP:               "OP_LOOP",
}

// Name returns the mnemonic for op, or "OP_UNKNOWN" if op is not a valid
// opcode (a malformed chunk — see Disassemble).
func (op Opcode) Name() string {
	if name, ok := names[op]; ok {
		return name
	}
	return "OP_UNKNOWN"
}

func (op Opcode) String() string {
	return op.Name()
}
