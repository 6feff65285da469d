package emitter

import (
	"strings"
	"testing"

	"gs2dc/internal/ast"
	"gs2dc/internal/opcode"
)

func TestEmitIfElse(t *testing.T) {
	cond := ast.NewIdentifier("cond")
	ifStmt := ast.NewControlFlow(ast.If, cond, ast.NewBlock([]ast.Node{ast.NewReturn(ast.NewLiteralNumber(2))}))
	elseStmt := ast.NewControlFlow(ast.Else, nil, ast.NewBlock([]ast.Node{ast.NewReturn(ast.NewLiteralNumber(1))}))
	fn := ast.NewFunction("f", true, nil, ast.NewBlock([]ast.Node{ifStmt, elseStmt}))

	out := New(DefaultContext()).EmitFunction(fn)
	for _, want := range []string{"function f()", "if (cond)", "return 2;", "else", "return 1;"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q, got:\n%s", want, out)
		}
	}
}

func TestEmitCompoundAssignment(t *testing.T) {
	lhs := ast.NewIdentifier("i")
	bin, err := ast.NewBinOp(lhs, ast.NewLiteralNumber(1), opcode.Add)
	if err != nil {
		t.Fatalf("NewBinOp: %v", err)
	}
	assign := ast.NewAssignment(lhs, bin)
	fn := ast.NewFunction("f", true, nil, ast.NewBlock([]ast.Node{assign}))

	out := New(DefaultContext()).EmitFunction(fn)
	if !strings.Contains(out, "i++;") {
		t.Errorf("expected compound increment, got:\n%s", out)
	}
}
