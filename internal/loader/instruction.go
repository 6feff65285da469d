package loader

import (
	"fmt"

	"gs2dc/internal/opcode"
)

// Instruction is the immutable `(opcode, address, operand?)` tuple
// instructions are loaded into, per §3's Data Model. Address is a
// zero-based instruction index, never a byte offset.
type Instruction struct {
	Opcode  opcode.Opcode
	Address int
	Operand *opcode.Operand
}

// String renders "Opcode operand" or "Opcode" matching the original
// bytecode disassembly's textual form.
func (i Instruction) String() string {
	if i.Operand == nil {
		return i.Opcode.String()
	}
	return fmt.Sprintf("%s %s", i.Opcode, i.Operand.Display())
}
