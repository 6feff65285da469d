// Package emitter implements §4.J: the single ast.Visitor that renders a
// reduced function AST as readable, C-like source text. Grounded on the
// original Rust emitter.rs (read during this transform's research phase)
// and, for the visitor-as-renderer shape, the teacher's own
// internal/parser pretty-printer.
package emitter

import (
	"fmt"
	"strconv"
	"strings"

	"gs2dc/internal/ast"
	"gs2dc/internal/opcode"
)

// Context configures a single render: indentation, brace placement, and
// whether every literal number renders in hex.
type Context struct {
	IndentWidth    int
	IndentChar     string
	BraceOnNewLine bool
	HexLiterals    bool
}

// DefaultContext matches the reference emitter's own defaults: four-space
// indents, braces on the same line as the construct that opens them.
func DefaultContext() Context {
	return Context{IndentWidth: 4, IndentChar: " ", BraceOnNewLine: false}
}

// String renders ctx as a stable, comparable tag. Callers that cache
// emitted output (internal/store) fold this into their cache key so a
// change in render settings can never be served from a row rendered under
// different ones.
func (ctx Context) String() string {
	return fmt.Sprintf("indent=%d%q brace_newline=%v hex=%v", ctx.IndentWidth, ctx.IndentChar, ctx.BraceOnNewLine, ctx.HexLiterals)
}

// Emitter is the ast.Visitor implementation. depth tracks the current
// indent level; exprRoot governs parenthesization of binary operations. It
// is true while a statement or control-flow node is visited and visitExpr
// clears it for every expression those render, so a binary operation is
// parenthesized wherever it appears, including an assignment's right-hand
// side, a return value and a condition (`if ((a < b))`).
type Emitter struct {
	ctx      Context
	depth    int
	exprRoot bool
}

// New returns an Emitter ready to render at the top level.
func New(ctx Context) *Emitter {
	return &Emitter{ctx: ctx, exprRoot: true}
}

// EmitFunction renders a whole function, returning the rendered text; any
// comments attached directly to the function node itself are prefixed
// above its signature.
func (e *Emitter) EmitFunction(fn *ast.Function) string {
	text, comments := fn.Accept(e)
	comments = append(append([]string(nil), fn.Meta.Comments...), comments...)
	var b strings.Builder
	for _, c := range comments {
		b.WriteString("// ")
		b.WriteString(c)
		b.WriteString("\n")
	}
	b.WriteString(text)
	return b.String()
}

func (e *Emitter) indent() string {
	return strings.Repeat(e.ctx.IndentChar, e.ctx.IndentWidth*e.depth)
}

// visitExpr renders a nested Expression, always in non-root mode so any
// operator that needs parentheses around it gets them.
func (e *Emitter) visitExpr(n ast.Expression) (string, []string) {
	wasRoot := e.exprRoot
	e.exprRoot = false
	text, comments := n.Accept(e)
	e.exprRoot = wasRoot
	return text, comments
}

func (e *Emitter) VisitIdentifier(n *ast.Identifier) (string, []string) {
	return n.Name, nil
}

func (e *Emitter) VisitLiteralString(n *ast.LiteralString) (string, []string) {
	return strconv.Quote(n.Value), nil
}

func (e *Emitter) VisitLiteralNumber(n *ast.LiteralNumber) (string, []string) {
	if e.ctx.HexLiterals {
		return fmt.Sprintf("0x%X", n.Value), nil
	}
	return strconv.Itoa(int(n.Value)), nil
}

func (e *Emitter) VisitLiteralFloat(n *ast.LiteralFloat) (string, []string) {
	return n.Text, nil
}

func (e *Emitter) VisitLiteralBool(n *ast.LiteralBool) (string, []string) {
	if n.Value {
		return "true", nil
	}
	return "false", nil
}

func (e *Emitter) VisitLiteralNull(n *ast.LiteralNull) (string, []string) {
	return "null", nil
}

func (e *Emitter) VisitMemberAccess(n *ast.MemberAccess) (string, []string) {
	lhs, c1 := e.visitExpr(n.LHS)
	rhs, c2 := e.visitExpr(n.RHS)
	return lhs + "." + rhs, append(c1, c2...)
}

func (e *Emitter) VisitArrayAccess(n *ast.ArrayAccess) (string, []string) {
	arr, c1 := e.visitExpr(n.Array)
	idx, c2 := e.visitExpr(n.Index)
	return arr + "[" + idx + "]", append(c1, c2...)
}

func (e *Emitter) VisitPhi(n *ast.Phi) (string, []string) {
	parts := make([]string, len(n.Operands))
	var comments []string
	for i, op := range n.Operands {
		text, c := e.visitExpr(op)
		parts[i] = text
		comments = append(comments, c...)
	}
	return "phi(" + strings.Join(parts, ", ") + ")", comments
}

func (e *Emitter) VisitBinOp(n *ast.BinOp) (string, []string) {
	sym, _ := opcode.BinaryOperator(n.Op)
	wasRoot := e.exprRoot
	lhs, c1 := e.visitExpr(n.LHS)
	rhs, c2 := e.visitExpr(n.RHS)
	text := lhs + " " + sym + " " + rhs
	if !wasRoot {
		text = "(" + text + ")"
	}
	return text, append(c1, c2...)
}

func (e *Emitter) VisitUnaryOp(n *ast.UnaryOp) (string, []string) {
	sym, _ := opcode.UnaryOperator(n.Op)
	operand, comments := e.visitExpr(n.Operand)
	return sym + operand, comments
}

func (e *Emitter) VisitFunctionCall(n *ast.FunctionCall) (string, []string) {
	callee, comments := e.visitExpr(n.Callee)
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		text, c := e.visitExpr(a)
		args[i] = text
		comments = append(comments, c...)
	}
	return callee + "(" + strings.Join(args, ", ") + ")", comments
}

func (e *Emitter) VisitArray(n *ast.Array) (string, []string) {
	elems := make([]string, len(n.Elements))
	var comments []string
	for i, el := range n.Elements {
		text, c := e.visitExpr(el)
		elems[i] = text
		comments = append(comments, c...)
	}
	return "[" + strings.Join(elems, ", ") + "]", comments
}

func (e *Emitter) VisitNew(n *ast.New) (string, []string) {
	args := make([]string, len(n.Args))
	var comments []string
	for i, a := range n.Args {
		text, c := e.visitExpr(a)
		args[i] = text
		comments = append(comments, c...)
	}
	return "new " + n.ClassName + "(" + strings.Join(args, ", ") + ")", comments
}

// compoundSymbol detects the three compound-assignment shapes this emitter
// recognizes: lhs++ / lhs-- / lhs OP= n, when rhs is a BinOp whose LHS
// equals the assignment's own target and whose RHS is a LiteralNumber.
func compoundSymbol(lhs ast.Assignable, rhs ast.Expression) (string, bool) {
	bin, ok := rhs.(*ast.BinOp)
	if !ok || !bin.LHS.Equal(lhs) {
		return "", false
	}
	num, ok := bin.RHS.(*ast.LiteralNumber)
	if !ok {
		return "", false
	}
	switch bin.Op {
	case opcode.Add:
		if num.Value == 1 {
			return "++", true
		}
		return fmt.Sprintf(" += %d", num.Value), true
	case opcode.Subtract:
		if num.Value == 1 {
			return "--", true
		}
		return fmt.Sprintf(" -= %d", num.Value), true
	}
	return "", false
}

func (e *Emitter) VisitAssignment(n *ast.Assignment) (string, []string) {
	lhs, c1 := e.visitExpr(n.LHS)
	if sym, ok := compoundSymbol(n.LHS, n.RHS); ok {
		return e.indent() + lhs + sym + ";", c1
	}
	rhs, c2 := e.visitExpr(n.RHS)
	return e.indent() + lhs + " = " + rhs + ";", append(c1, c2...)
}

func (e *Emitter) VisitReturn(n *ast.Return) (string, []string) {
	if n.Value == nil {
		return e.indent() + "return;", nil
	}
	value, comments := e.visitExpr(n.Value)
	return e.indent() + "return " + value + ";", comments
}

func (e *Emitter) VisitVirtualBranch(n *ast.VirtualBranch) (string, []string) {
	return e.indent() + "goto " + n.RegionID + ";", nil
}

func (e *Emitter) VisitBlock(n *ast.Block) (string, []string) {
	e.depth++
	var lines []string
	var comments []string
	for _, stmt := range n.Nodes {
		for _, c := range ast.NodeMeta(stmt).Comments {
			lines = append(lines, e.indent()+"// "+c)
		}
		text, c := stmt.Accept(e)
		lines = append(lines, text)
		comments = append(comments, c...)
	}
	e.depth--
	return strings.Join(lines, "\n"), comments
}

func (e *Emitter) braceOpen() string {
	if e.ctx.BraceOnNewLine {
		return "\n" + e.indent() + "{"
	}
	return " {"
}

func (e *Emitter) VisitControlFlow(n *ast.ControlFlow) (string, []string) {
	var head string
	var condComments []string
	switch n.Kind {
	case ast.If:
		cond, c := e.visitExpr(n.Condition)
		condComments = c
		head = e.indent() + "if (" + cond + ")"
	case ast.ElseIf:
		cond, c := e.visitExpr(n.Condition)
		condComments = c
		head = e.indent() + "else if (" + cond + ")"
	case ast.Else:
		head = e.indent() + "else"
	case ast.With:
		cond, c := e.visitExpr(n.Condition)
		condComments = c
		head = e.indent() + "with (" + cond + ")"
	case ast.While:
		cond, c := e.visitExpr(n.Condition)
		condComments = c
		head = e.indent() + "while (" + cond + ")"
	case ast.DoWhile:
		head = e.indent() + "do"
	}

	body, bodyComments := n.Body.Accept(e)
	comments := append(condComments, bodyComments...)

	if n.Kind == ast.DoWhile {
		cond, c := e.visitExpr(n.Condition)
		comments = append(comments, c...)
		return head + e.braceOpen() + "\n" + body + "\n" + e.indent() + "} while (" + cond + ");", comments
	}

	return head + e.braceOpen() + "\n" + body + "\n" + e.indent() + "}", comments
}

func (e *Emitter) VisitFunction(n *ast.Function) (string, []string) {
	name := n.Name
	if !n.HasName {
		name = "anonymous"
	}
	params := make([]string, len(n.Parameters))
	var comments []string
	for i, p := range n.Parameters {
		text, c := e.visitExpr(p)
		params[i] = text
		comments = append(comments, c...)
	}
	body, bodyComments := n.Body.Accept(e)
	comments = append(comments, bodyComments...)
	sig := "function " + name + "(" + strings.Join(params, ", ") + ")"
	return sig + e.braceOpen() + "\n" + body + "\n}", comments
}
