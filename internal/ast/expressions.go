package ast

import (
	"errors"
	"fmt"

	"gs2dc/internal/opcode"
)

// Sentinel construction errors for §4.E's kind-only validation. Handlers
// wrap these into gs2err.AstNodeError, attaching (function, block, opcode)
// context the ast package itself does not have.
var (
	ErrStringOperand   = errors.New("ast: string literal is not a valid arithmetic operand")
	ErrNotAssignable   = errors.New("ast: member access operands must be Identifier or MemberAccess")
)

type exprBase struct{ Meta Meta }

func (e *exprBase) meta() *Meta     { return &e.Meta }
func (e *exprBase) isExpression()   {}

type assignableBase struct{ exprBase }

func (a *assignableBase) isAssignable() {}

// Identifier is a bare name, either an opcode-derived builtin (player,
// temp, this, ...) or the string operand of PushVariable.
type Identifier struct {
	assignableBase
	Name       string
	SSAVersion *int
}

func NewIdentifier(name string) *Identifier { return &Identifier{Name: name} }

func (n *Identifier) Accept(v Visitor) (string, []string) { return v.VisitIdentifier(n) }

func (n *Identifier) Equal(other Node) bool {
	o, ok := other.(*Identifier)
	return ok && o.Name == n.Name && eqIntPtr(o.SSAVersion, n.SSAVersion)
}

// LiteralString, LiteralNumber, LiteralFloat, LiteralBool, LiteralNull are
// the five literal-producer shapes (§4.G).
type LiteralString struct {
	exprBase
	Value string
}

func NewLiteralString(v string) *LiteralString { return &LiteralString{Value: v} }
func (n *LiteralString) Accept(v Visitor) (string, []string) { return v.VisitLiteralString(n) }
func (n *LiteralString) Equal(other Node) bool {
	o, ok := other.(*LiteralString)
	return ok && o.Value == n.Value
}

type LiteralNumber struct {
	exprBase
	Value int32
}

func NewLiteralNumber(v int32) *LiteralNumber { return &LiteralNumber{Value: v} }
func (n *LiteralNumber) Accept(v Visitor) (string, []string) { return v.VisitLiteralNumber(n) }
func (n *LiteralNumber) Equal(other Node) bool {
	o, ok := other.(*LiteralNumber)
	return ok && o.Value == n.Value
}

type LiteralFloat struct {
	exprBase
	Text string
}

func NewLiteralFloat(text string) *LiteralFloat { return &LiteralFloat{Text: text} }
func (n *LiteralFloat) Accept(v Visitor) (string, []string) { return v.VisitLiteralFloat(n) }
func (n *LiteralFloat) Equal(other Node) bool {
	o, ok := other.(*LiteralFloat)
	return ok && o.Text == n.Text
}

type LiteralBool struct {
	exprBase
	Value bool
}

func NewLiteralBool(v bool) *LiteralBool { return &LiteralBool{Value: v} }
func (n *LiteralBool) Accept(v Visitor) (string, []string) { return v.VisitLiteralBool(n) }
func (n *LiteralBool) Equal(other Node) bool {
	o, ok := other.(*LiteralBool)
	return ok && o.Value == n.Value
}

type LiteralNull struct{ exprBase }

func NewLiteralNull() *LiteralNull { return &LiteralNull{} }
func (n *LiteralNull) Accept(v Visitor) (string, []string) { return v.VisitLiteralNull(n) }
func (n *LiteralNull) Equal(other Node) bool {
	_, ok := other.(*LiteralNull)
	return ok
}

// isStringLiteral reports whether e is a string literal, the one kind
// BinaryOperation/UnaryOperation constructors reject.
func isStringLiteral(e Expression) bool {
	_, ok := e.(*LiteralString)
	return ok
}

// MemberAccess is `lhs.rhs`; both sides must themselves be assignable
// (Identifier or MemberAccess).
type MemberAccess struct {
	assignableBase
	LHS, RHS   Assignable
	SSAVersion *int
}

func NewMemberAccess(lhs, rhs Assignable) (*MemberAccess, error) {
	if !isIdentifierOrMemberAccess(lhs) || !isIdentifierOrMemberAccess(rhs) {
		return nil, ErrNotAssignable
	}
	return &MemberAccess{LHS: lhs, RHS: rhs}, nil
}

func isIdentifierOrMemberAccess(a Assignable) bool {
	switch a.(type) {
	case *Identifier, *MemberAccess:
		return true
	default:
		return false
	}
}

func (n *MemberAccess) Accept(v Visitor) (string, []string) { return v.VisitMemberAccess(n) }
func (n *MemberAccess) Equal(other Node) bool {
	o, ok := other.(*MemberAccess)
	return ok && n.LHS.Equal(o.LHS) && n.RHS.Equal(o.RHS)
}

// ArrayAccess is `array[index]`.
type ArrayAccess struct {
	assignableBase
	Array, Index Expression
}

func NewArrayAccess(array, index Expression) *ArrayAccess {
	return &ArrayAccess{Array: array, Index: index}
}

func (n *ArrayAccess) Accept(v Visitor) (string, []string) { return v.VisitArrayAccess(n) }
func (n *ArrayAccess) Equal(other Node) bool {
	o, ok := other.(*ArrayAccess)
	return ok && n.Array.Equal(o.Array) && n.Index.Equal(o.Index)
}

// Phi is an SSA merge placeholder; it never appears in emitted output from
// a reducible CFG but is retained for structurally-irreducible regions.
type Phi struct {
	assignableBase
	Operands   []Assignable
	SSAVersion *int
}

func NewPhi(operands []Assignable) *Phi { return &Phi{Operands: operands} }
func (n *Phi) Accept(v Visitor) (string, []string) { return v.VisitPhi(n) }
func (n *Phi) Equal(other Node) bool {
	o, ok := other.(*Phi)
	if !ok || len(o.Operands) != len(n.Operands) {
		return false
	}
	for i := range n.Operands {
		if !n.Operands[i].Equal(o.Operands[i]) {
			return false
		}
	}
	return true
}

// BinOp is a binary operation; neither operand may be a string literal.
type BinOp struct {
	exprBase
	LHS, RHS Expression
	Op       opcode.Opcode
}

func NewBinOp(lhs, rhs Expression, op opcode.Opcode) (*BinOp, error) {
	if isStringLiteral(lhs) || isStringLiteral(rhs) {
		return nil, ErrStringOperand
	}
	return &BinOp{LHS: lhs, RHS: rhs, Op: op}, nil
}

func (n *BinOp) Accept(v Visitor) (string, []string) { return v.VisitBinOp(n) }
func (n *BinOp) Equal(other Node) bool {
	o, ok := other.(*BinOp)
	return ok && n.Op == o.Op && n.LHS.Equal(o.LHS) && n.RHS.Equal(o.RHS)
}

// UnaryOp is a unary operation; the operand may not be a string literal.
type UnaryOp struct {
	exprBase
	Operand Expression
	Op      opcode.Opcode
}

func NewUnaryOp(operand Expression, op opcode.Opcode) (*UnaryOp, error) {
	if isStringLiteral(operand) {
		return nil, ErrStringOperand
	}
	return &UnaryOp{Operand: operand, Op: op}, nil
}

func (n *UnaryOp) Accept(v Visitor) (string, []string) { return v.VisitUnaryOp(n) }
func (n *UnaryOp) Equal(other Node) bool {
	o, ok := other.(*UnaryOp)
	return ok && n.Op == o.Op && n.Operand.Equal(o.Operand)
}

// FunctionCall is `callee(args...)`; callee is an Assignable (a plain
// identifier or a member access).
type FunctionCall struct {
	exprBase
	Callee Assignable
	Args   []Expression
}

func NewFunctionCall(callee Assignable, args []Expression) *FunctionCall {
	return &FunctionCall{Callee: callee, Args: args}
}

func (n *FunctionCall) Accept(v Visitor) (string, []string) { return v.VisitFunctionCall(n) }
func (n *FunctionCall) Equal(other Node) bool {
	o, ok := other.(*FunctionCall)
	if !ok || !n.Callee.Equal(o.Callee) || len(n.Args) != len(o.Args) {
		return false
	}
	for i := range n.Args {
		if !n.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

// Array is an array literal.
type Array struct {
	exprBase
	Elements []Expression
}

func NewArray(elements []Expression) *Array { return &Array{Elements: elements} }
func (n *Array) Accept(v Visitor) (string, []string) { return v.VisitArray(n) }
func (n *Array) Equal(other Node) bool {
	o, ok := other.(*Array)
	if !ok || len(n.Elements) != len(o.Elements) {
		return false
	}
	for i := range n.Elements {
		if !n.Elements[i].Equal(o.Elements[i]) {
			return false
		}
	}
	return true
}

// New is object construction (the New/NewObject opcode family).
type New struct {
	exprBase
	ClassName string
	Args      []Expression
}

func NewNewExpr(className string, args []Expression) *New {
	return &New{ClassName: className, Args: args}
}

func (n *New) Accept(v Visitor) (string, []string) { return v.VisitNew(n) }
func (n *New) Equal(other Node) bool {
	o, ok := other.(*New)
	if !ok || n.ClassName != o.ClassName || len(n.Args) != len(o.Args) {
		return false
	}
	for i := range n.Args {
		if !n.Args[i].Equal(o.Args[i]) {
			return false
		}
	}
	return true
}

func eqIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func mustAssignable(e Expression) Assignable {
	a, ok := e.(Assignable)
	if !ok {
		panic(fmt.Sprintf("ast: %T is not Assignable", e))
	}
	return a
}
