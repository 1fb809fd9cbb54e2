// Package vm implements the stack-based virtual machine that executes a
// compiled bytecode.Chunk: it owns the value stack and the globals table,
// reads bytecode via a moving instruction pointer, and dispatches one
// opcode at a time until OP_RETURN or a runtime error.
package vm

import (
	"fmt"
	"io"
	"os"

	"nilan/bytecode"
	"nilan/value"

	"github.com/sirupsen/logrus"
)

// VM is the runtime environment where Nilan bytecode executes. One chunk
// is in effect at a time; a VM is not safe for concurrent use.
type VM struct {
	stack   Stack
	globals map[string]value.Value
	ip      int
	out     io.Writer
	log     *logrus.Logger
}

// New returns a VM ready to Run a chunk. Output defaults to os.Stdout for
// PRINT.
func New() *VM {
	log := logrus.New()
	log.SetLevel(logrus.ErrorLevel)
	return &VM{
		stack:   newStack(),
		globals: make(map[string]value.Value),
		out:     os.Stdout,
		log:     log,
	}
}

// SetOutput redirects PRINT output, primarily for tests.
func (vm *VM) SetOutput(w io.Writer) {
	vm.out = w
}

func (vm *VM) currentLine(chunk *bytecode.Chunk) int {
	if vm.ip < len(chunk.Lines) {
		return chunk.Lines[vm.ip]
	}
	if len(chunk.Lines) > 0 {
		return chunk.Lines[len(chunk.Lines)-1]
	}
	return 0
}

func (vm *VM) runtimeError(chunk *bytecode.Chunk, message string) error {
	err := RuntimeError{Message: message, Line: vm.currentLine(chunk)}
	vm.log.Error(err.Error())
	return err
}

// Run executes chunk from instruction pointer 0 until OP_RETURN or a
// runtime error. An unrecognized opcode or an operand that fails a decode
// invariant is a programming bug — a chunk a correct compiler could never
// produce — so it panics rather than returning an error.
func (vm *VM) Run(chunk *bytecode.Chunk) error {
	vm.ip = 0
	vm.stack = vm.stack[:0]

	for {
		op := bytecode.Opcode(chunk.Code[vm.ip])

		switch op {
		case bytecode.OP_RETURN:
			return nil

		case bytecode.OP_CONSTANT, bytecode.OP_CONSTANT_LONG:
			index, length := chunk.ReadConstantIndex(vm.ip)
			vm.stack.Push(chunk.Constants[index])
			vm.ip += length
			continue

		case bytecode.OP_NIL:
			vm.stack.Push(value.Nil)
		case bytecode.OP_TRUE:
			vm.stack.Push(value.Bool(true))
		case bytecode.OP_FALSE:
			vm.stack.Push(value.Bool(false))

		case bytecode.OP_POP:
			vm.stack.Pop()

		case bytecode.OP_EQUAL:
			b := vm.stack.Pop()
			a := vm.stack.Pop()
			vm.stack.Push(value.Bool(a.Equal(b)))

		case bytecode.OP_GREATER, bytecode.OP_LESS:
			if err := vm.binaryComparison(chunk, op); err != nil {
				return err
			}

		case bytecode.OP_ADD:
			if err := vm.add(chunk); err != nil {
				return err
			}

		case bytecode.OP_SUBTRACT, bytecode.OP_MULTIPLY, bytecode.OP_DIVIDE:
			if err := vm.binaryArithmetic(chunk, op); err != nil {
				return err
			}

		case bytecode.OP_NOT:
			v := vm.stack.Pop()
			vm.stack.Push(value.Bool(v.Falsey()))

		case bytecode.OP_NEGATE:
			v := vm.stack.Peek(0)
			if !v.IsNumber() {
				return vm.runtimeError(chunk, "Operand must be a number.")
			}
			vm.stack.Pop()
			vm.stack.Push(value.Num(-v.Number))

		case bytecode.OP_PRINT:
			v := vm.stack.Pop()
			fmt.Fprintln(vm.out, v.String())

		case bytecode.OP_DEFINE_GLOBAL, bytecode.OP_DEFINE_GLOBAL_LONG:
			index, length := chunk.ReadConstantIndex(vm.ip)
			name := chunk.Constants[index].String()
			vm.globals[name] = vm.stack.Peek(0)
			vm.stack.Pop()
			vm.ip += length
			continue

		case bytecode.OP_GET_GLOBAL, bytecode.OP_GET_GLOBAL_LONG:
			index, length := chunk.ReadConstantIndex(vm.ip)
			name := chunk.Constants[index].String()
			v, ok := vm.globals[name]
			if !ok {
				return vm.runtimeError(chunk, fmt.Sprintf("Undefined variable '%s'.", name))
			}
			vm.stack.Push(v)
			vm.ip += length
			continue

		case bytecode.OP_SET_GLOBAL, bytecode.OP_SET_GLOBAL_LONG:
			index, length := chunk.ReadConstantIndex(vm.ip)
			name := chunk.Constants[index].String()
			if _, ok := vm.globals[name]; !ok {
				return vm.runtimeError(chunk, fmt.Sprintf("Undefined variable '%s'.", name))
			}
			vm.globals[name] = vm.stack.Peek(0)
			vm.ip += length
			continue

		case bytecode.OP_GET_LOCAL, bytecode.OP_GET_LOCAL_LONG:
			slot, length := chunk.ReadConstantIndex(vm.ip)
			vm.stack.Push(vm.stack[slot])
			vm.ip += length
			continue

		case bytecode.OP_SET_LOCAL, bytecode.OP_SET_LOCAL_LONG:
			slot, length := chunk.ReadConstantIndex(vm.ip)
			vm.stack[slot] = vm.stack.Peek(0)
			vm.ip += length
			continue

		case bytecode.OP_JUMP_IF_FALSE:
			distance, length := chunk.ReadJumpOffset(vm.ip)
			if vm.stack.Peek(0).Falsey() {
				vm.ip += length + distance
			} else {
				vm.ip += length
			}
			continue

		case bytecode.OP_JUMP:
			distance, length := chunk.ReadJumpOffset(vm.ip)
			vm.ip += length + distance
			continue

		case bytecode.OP_LOOP:
			distance, length := chunk.ReadJumpOffset(vm.ip)
			vm.ip += length - distance
			continue

		default:
			message := fmt.Sprintf("unknown opcode %d at ip %d", op, vm.ip)
			vm.log.Error(message)
			panic(message)
		}

		vm.ip += chunk.InstructionLength(vm.ip)
	}
}

// add implements ADD's dual contract: string concatenation if both
// operands are strings, else numeric addition, else a runtime error.
// Operands are not popped on error — runtime errors abort execution, so
// the stack is unwound by termination, not by the opcode.
func (vm *VM) add(chunk *bytecode.Chunk) error {
	b := vm.stack.Peek(0)
	a := vm.stack.Peek(1)

	switch {
	case a.IsString() && b.IsString():
		vm.stack.Pop()
		vm.stack.Pop()
		vm.stack.Push(value.Str(a.Obj.Str + b.Obj.Str))
	case a.IsNumber() && b.IsNumber():
		vm.stack.Pop()
		vm.stack.Pop()
		vm.stack.Push(value.Num(a.Number + b.Number))
	default:
		return vm.runtimeError(chunk, "Operands must be numbers.")
	}
	return nil
}

func (vm *VM) binaryArithmetic(chunk *bytecode.Chunk, op bytecode.Opcode) error {
	b := vm.stack.Peek(0)
	a := vm.stack.Peek(1)
	if !a.IsNumber() || !b.IsNumber() {
		return vm.runtimeError(chunk, "Operands must be numbers.")
	}
	vm.stack.Pop()
	vm.stack.Pop()

	switch op {
	case bytecode.OP_SUBTRACT:
		vm.stack.Push(value.Num(a.Number - b.Number))
	case bytecode.OP_MULTIPLY:
		vm.stack.Push(value.Num(a.Number * b.Number))
	case bytecode.OP_DIVIDE:
		if b.Number == 0 {
			return vm.runtimeError(chunk, "Division by zero.")
		}
		vm.stack.Push(value.Num(a.Number / b.Number))
	}
	return nil
}

func (vm *VM) binaryComparison(chunk *bytecode.Chunk, op bytecode.Opcode) error {
	b := vm.stack.Peek(0)
	a := vm.stack.Peek(1)
	if !a.IsNumber() || !b.IsNumber() {
		return vm.runtimeError(chunk, "Operands must be numbers.")
	}
	vm.stack.Pop()
	vm.stack.Pop()

	switch op {
	case bytecode.OP_GREATER:
		vm.stack.Push(value.Bool(a.Number > b.Number))
	case bytecode.OP_LESS:
		vm.stack.Push(value.Bool(a.Number < b.Number))
	}
	return nil
}
