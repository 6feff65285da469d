// Package ast implements the closed, tagged AST hierarchy described in
// §4.E: expression, statement, block, control-flow, and function nodes,
// with structural equality that ignores metadata and a double-dispatch
// visitor contract. The shape follows the teacher's own
// internal/parser.Expr/ExprVisitor pair — one interface method per concrete
// node kind — generalized from an expression-only AST to the full
// statement/block/control-flow/function hierarchy this domain needs.
package ast

import "gs2dc/internal/opcode"

// Meta carries the optional, equality-irrelevant decoration every node may
// hold: comments printed immediately before it, the bytecode address it was
// produced from, and free-form properties future passes may attach.
type Meta struct {
	Comments      []string
	SourceAddress *int
	Properties    map[string]string
}

// AddComment appends a rendering-time comment.
func (m *Meta) AddComment(c string) {
	m.Comments = append(m.Comments, c)
}

// Node is the root of the tagged AST union. Every concrete node kind
// implements Accept for double dispatch and Equal for structural,
// metadata-ignoring equality.
type Node interface {
	Accept(v Visitor) (string, []string)
	Equal(other Node) bool
	meta() *Meta
}

// NodeMeta exposes a node's metadata for callers that need to attach comments
// or inspect source addresses without a type switch.
func NodeMeta(n Node) *Meta { return n.meta() }

// Expression is any Node usable as a value-producing subtree.
type Expression interface {
	Node
	isExpression()
}

// Assignable is an Expression that may also appear as an assignment target.
type Assignable interface {
	Expression
	isAssignable()
}

// Statement is any Node usable directly inside a block's statement list.
type Statement interface {
	Node
	isStatement()
}

// Visitor is the sole dispatch contract for walking the AST; the emitter is
// the one in-tree implementation. Every method returns (rendered_text,
// accumulated_comments) so comments attached deep in a subtree bubble up to
// whichever block renders it, per §4.E.
type Visitor interface {
	VisitIdentifier(*Identifier) (string, []string)
	VisitLiteralString(*LiteralString) (string, []string)
	VisitLiteralNumber(*LiteralNumber) (string, []string)
	VisitLiteralFloat(*LiteralFloat) (string, []string)
	VisitLiteralBool(*LiteralBool) (string, []string)
	VisitLiteralNull(*LiteralNull) (string, []string)
	VisitMemberAccess(*MemberAccess) (string, []string)
	VisitArrayAccess(*ArrayAccess) (string, []string)
	VisitPhi(*Phi) (string, []string)
	VisitBinOp(*BinOp) (string, []string)
	VisitUnaryOp(*UnaryOp) (string, []string)
	VisitFunctionCall(*FunctionCall) (string, []string)
	VisitArray(*Array) (string, []string)
	VisitNew(*New) (string, []string)
	VisitAssignment(*Assignment) (string, []string)
	VisitReturn(*Return) (string, []string)
	VisitVirtualBranch(*VirtualBranch) (string, []string)
	VisitBlock(*Block) (string, []string)
	VisitControlFlow(*ControlFlow) (string, []string)
	VisitFunction(*Function) (string, []string)
}

// BinaryOperator and UnaryOperator re-export the opcode package's operator
// tags so callers of this package never need to import opcode directly for
// AST construction.
type BinaryOperator = opcode.Opcode
type UnaryOperator = opcode.Opcode
