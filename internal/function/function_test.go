package function

import "testing"

func TestNewCreatesEntryBlock(t *testing.T) {
	fn := New(ID{Index: 0, Address: 0})
	entry, ok := fn.GetBasicBlockByID(fn.EntryBlock())
	if !ok || entry.Type != Entry || entry.StartAddress != 0 {
		t.Fatalf("New() entry block = %+v, ok=%v", entry, ok)
	}
}

func TestCreateBlockRejectsSecondEntry(t *testing.T) {
	fn := New(ID{Address: 0})
	if _, err := fn.CreateBlock(Entry, 5); err == nil {
		t.Fatal("expected error creating a second Entry block")
	}
}

func TestGetBasicBlockByStartAddress(t *testing.T) {
	fn := New(ID{Address: 0})
	b, _ := fn.CreateBlock(Normal, 10)
	got, ok := fn.GetBasicBlockByStartAddress(10)
	if !ok || got.ID != b.ID {
		t.Fatalf("GetBasicBlockByStartAddress(10) = %+v, ok=%v", got, ok)
	}
	if _, ok := fn.GetBasicBlockByStartAddress(999); ok {
		t.Fatal("expected no block at an unregistered address")
	}
}

func TestPredecessorsAndSuccessors(t *testing.T) {
	fn := New(ID{Address: 0})
	entry := fn.EntryBlock()
	b, _ := fn.CreateBlock(Normal, 1)
	c, _ := fn.CreateBlock(Normal, 2)
	fn.AddEdge(entry, b.ID)
	fn.AddEdge(entry, c.ID)

	succ := fn.Successors(entry)
	if len(succ) != 2 || succ[0] != b.ID || succ[1] != c.ID {
		t.Fatalf("Successors(entry) = %v", succ)
	}
	pred := fn.Predecessors(b.ID)
	if len(pred) != 1 || pred[0] != entry {
		t.Fatalf("Predecessors(b) = %v, want [entry]", pred)
	}
}

// TestGetReversePostOrderVisitsBothBranchesOfADiamond exercises the DFS
// post-order traversal a diamond-shaped if/else CFG produces: entry is
// visited last, after both of its successors.
func TestGetReversePostOrderVisitsBothBranchesOfADiamond(t *testing.T) {
	fn := New(ID{Address: 0})
	entry := fn.EntryBlock()
	thenBlk, _ := fn.CreateBlock(Normal, 1)
	elseBlk, _ := fn.CreateBlock(Normal, 2)
	join, _ := fn.CreateBlock(ModuleEnd, 3)
	fn.AddEdge(entry, thenBlk.ID)
	fn.AddEdge(entry, elseBlk.ID)
	fn.AddEdge(thenBlk.ID, join.ID)
	fn.AddEdge(elseBlk.ID, join.ID)

	order := fn.GetReversePostOrder()
	if len(order) != 4 {
		t.Fatalf("GetReversePostOrder = %v, want 4 blocks", order)
	}
	if order[len(order)-1] != entry {
		t.Fatalf("GetReversePostOrder = %v, want entry last", order)
	}
}

func TestBlocksReturnsEveryOwnedBlock(t *testing.T) {
	fn := New(ID{Address: 0})
	fn.CreateBlock(Normal, 1)
	fn.CreateBlock(ModuleEnd, 2)
	if got := len(fn.Blocks()); got != 3 {
		t.Fatalf("Blocks() returned %d blocks, want 3 (entry + 2 created)", got)
	}
}

func TestIDStringPrefersDeclaredName(t *testing.T) {
	named := ID{Name: "main", HasName: true, Address: 0}
	if named.String() != "main" {
		t.Fatalf("ID.String() = %q, want main", named.String())
	}
	anon := ID{HasName: false, Address: 7}
	if anon.String() != "<anonymous@7>" {
		t.Fatalf("ID.String() = %q, want <anonymous@7>", anon.String())
	}
}
