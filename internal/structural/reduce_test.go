package structural

import (
	"testing"

	"gs2dc/internal/ast"
	"gs2dc/internal/graph"
	"gs2dc/internal/region"
)

// buildS3 mirrors spec.md's S3 scenario: a ControlFlow region B0 branching
// to B1 (return 1) or falling through to B2 (return 2), both Tail regions
// with no other predecessor. Expected rendering shape: `if (cond) { return
// 2; } else { return 1; }`.
func buildS3(t *testing.T) (*region.Set, region.ID) {
	t.Helper()
	regions := region.New()

	b0 := regions.AddRegion(region.ControlFlow)
	b0.JumpExpression = ast.NewIdentifier("cond")
	b1 := regions.AddRegion(region.Tail)
	b1.Push(ast.NewReturn(ast.NewLiteralNumber(1)))
	b2 := regions.AddRegion(region.Tail)
	b2.Push(ast.NewReturn(ast.NewLiteralNumber(2)))

	regions.SetEntry(b0.ID)
	regions.ConnectRegions(b0.ID, b1.ID, graph.LabelBranch)
	regions.ConnectRegions(b0.ID, b2.ID, graph.LabelFallthrough)

	return regions, b0.ID
}

func TestReduceTailMergeIfElse(t *testing.T) {
	regions, entry := buildS3(t)

	if err := Reduce(regions, DefaultOptions()); err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if regions.Len() != 1 {
		t.Fatalf("expected 1 region, got %d", regions.Len())
	}

	r, err := regions.GetRegion(entry)
	if err != nil {
		t.Fatalf("GetRegion: %v", err)
	}
	if r.Type != region.Tail {
		t.Fatalf("expected Tail region, got %s", r.Type)
	}
	if len(r.Nodes) != 2 {
		t.Fatalf("expected 2 statements (if, else), got %d", len(r.Nodes))
	}

	ifNode, ok := r.Nodes[0].(*ast.ControlFlow)
	if !ok || ifNode.Kind != ast.If {
		t.Fatalf("expected If node first, got %#v", r.Nodes[0])
	}
	wantIfBody := ast.NewBlock([]ast.Node{ast.NewReturn(ast.NewLiteralNumber(2))})
	if !ifNode.Body.Equal(wantIfBody) {
		t.Fatalf("if body = %#v, want return 2", ifNode.Body)
	}

	elseNode, ok := r.Nodes[1].(*ast.ControlFlow)
	if !ok || elseNode.Kind != ast.Else {
		t.Fatalf("expected Else node second, got %#v", r.Nodes[1])
	}
	wantElseBody := ast.NewBlock([]ast.Node{ast.NewReturn(ast.NewLiteralNumber(1))})
	if !elseNode.Body.Equal(wantElseBody) {
		t.Fatalf("else body = %#v, want return 1", elseNode.Body)
	}
}

// buildDoWhile builds a single ControlFlow region that loops to itself: a
// self-assignment `i = i` guarded by its own condition, with a Tail region
// as its fallthrough exit.
func buildDoWhile(t *testing.T) (*region.Set, region.ID) {
	t.Helper()
	regions := region.New()

	b0 := regions.AddRegion(region.ControlFlow)
	b0.JumpExpression = ast.NewIdentifier("cond")
	b0.Push(ast.NewAssignment(ast.NewIdentifier("i"), ast.NewIdentifier("i")))
	regions.SetEntry(b0.ID)
	regions.ConnectRegions(b0.ID, b0.ID, graph.LabelBranch)

	tail := regions.AddRegion(region.Tail)
	tail.Push(ast.NewReturn(nil))
	regions.ConnectRegions(b0.ID, tail.ID, graph.LabelFallthrough)

	return regions, b0.ID
}

func TestReduceDoWhile(t *testing.T) {
	regions, entry := buildDoWhile(t)

	if err := Reduce(regions, DefaultOptions()); err != nil {
		t.Fatalf("Reduce: %v", err)
	}
	if regions.Len() != 1 {
		t.Fatalf("expected 1 region, got %d", regions.Len())
	}

	r, err := regions.GetRegion(entry)
	if err != nil {
		t.Fatalf("GetRegion: %v", err)
	}
	if len(r.Nodes) == 0 {
		t.Fatalf("expected at least one statement")
	}
	doWhile, ok := r.Nodes[0].(*ast.ControlFlow)
	if !ok || doWhile.Kind != ast.DoWhile {
		t.Fatalf("expected DoWhile node first, got %#v", r.Nodes[0])
	}
}
