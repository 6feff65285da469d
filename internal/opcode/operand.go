package opcode

import "fmt"

// OperandKind distinguishes the three operand shapes an instruction can
// carry, per §3's Data Model.
type OperandKind int

const (
	KindString OperandKind = iota
	KindNumber
	KindFloat
)

// Operand is the sum `{ String(text), Number(i32), Float(text) }`. Float is
// carried as text to preserve the source's original formatting.
type Operand struct {
	kind   OperandKind
	text   string
	number int32
}

// String constructs a string operand.
func String(text string) Operand { return Operand{kind: KindString, text: text} }

// Number constructs a numeric operand.
func Number(n int32) Operand { return Operand{kind: KindNumber, number: n} }

// Float constructs a float operand, carried as text.
func Float(text string) Operand { return Operand{kind: KindFloat, text: text} }

// Kind reports which variant this operand holds.
func (o Operand) Kind() OperandKind { return o.kind }

// IsString reports whether this operand is the String variant.
func (o Operand) IsString() bool { return o.kind == KindString }

// Text returns the carried text for String or Float operands; it panics for
// Number, mirroring a tagged union's unchecked accessor.
func (o Operand) Text() string {
	if o.kind != KindString && o.kind != KindFloat {
		panic(fmt.Sprintf("opcode: Text() called on operand kind %d", o.kind))
	}
	return o.text
}

// Int returns the carried value for a Number operand; it panics otherwise.
func (o Operand) Int() int32 {
	if o.kind != KindNumber {
		panic(fmt.Sprintf("opcode: Int() called on operand kind %d", o.kind))
	}
	return o.number
}

// Display renders the operand the way Instruction.String does: hex for
// numbers, raw text for floats, quoted text for strings.
func (o Operand) Display() string {
	switch o.kind {
	case KindString:
		return fmt.Sprintf("%q", o.text)
	case KindFloat:
		return o.text
	default:
		return fmt.Sprintf("0x%x", o.number)
	}
}
