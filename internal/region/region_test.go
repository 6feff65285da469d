package region

import (
	"testing"

	"gs2dc/internal/ast"
	"gs2dc/internal/graph"
)

func TestAddRegionAndPush(t *testing.T) {
	s := New()
	r := s.AddRegion(Linear)
	r.Push(ast.NewReturn(ast.NewLiteralNumber(1)))
	if len(r.Nodes) != 1 {
		t.Fatalf("Region.Nodes = %v, want 1 entry", r.Nodes)
	}
	if r.Type != Linear {
		t.Fatalf("Region.Type = %v, want Linear", r.Type)
	}
}

func TestEntryRegionRoundTrip(t *testing.T) {
	s := New()
	r := s.AddRegion(Linear)
	if _, err := s.GetEntryRegion(); err == nil {
		t.Fatal("expected EntryRegionNotFound before SetEntry is called")
	}
	s.SetEntry(r.ID)
	got, err := s.GetEntryRegion()
	if err != nil || got != r.ID {
		t.Fatalf("GetEntryRegion = %v, %v, want %v", got, err, r.ID)
	}
}

func TestGetRegionFailsForUnknownID(t *testing.T) {
	s := New()
	if _, err := s.GetRegion(ID(999)); err == nil {
		t.Fatal("expected RegionNotFound for an unregistered id")
	}
}

func TestConnectRegionsWithLabels(t *testing.T) {
	s := New()
	a := s.AddRegion(ControlFlow)
	b := s.AddRegion(Tail)
	c := s.AddRegion(Tail)
	s.ConnectRegions(a.ID, b.ID, graph.LabelBranch)
	s.ConnectRegions(a.ID, c.ID, graph.LabelFallthrough)

	if got := s.SuccessorsWithLabel(a.ID, graph.LabelBranch); len(got) != 1 || got[0] != b.ID {
		t.Fatalf("SuccessorsWithLabel(Branch) = %v, want [%v]", got, b.ID)
	}
	if got := s.SuccessorsWithLabel(a.ID, graph.LabelFallthrough); len(got) != 1 || got[0] != c.ID {
		t.Fatalf("SuccessorsWithLabel(Fallthrough) = %v, want [%v]", got, c.ID)
	}
}

func TestRemoveRegionDropsItFromSuccessors(t *testing.T) {
	s := New()
	a := s.AddRegion(Linear)
	b := s.AddRegion(Linear)
	s.ConnectRegions(a.ID, b.ID, graph.LabelNone)
	s.RemoveRegion(b.ID)

	if got := s.Successors(a.ID); len(got) != 0 {
		t.Fatalf("Successors(a) after removing b = %v, want empty", got)
	}
	if _, err := s.GetRegion(b.ID); err == nil {
		t.Fatal("expected RegionNotFound after RemoveRegion")
	}
}

func TestTypeStringNames(t *testing.T) {
	cases := map[Type]string{Linear: "Linear", ControlFlow: "ControlFlow", Tail: "Tail", Inactive: "Inactive"}
	for typ, want := range cases {
		if got := typ.String(); got != want {
			t.Errorf("Type(%d).String() = %q, want %q", typ, got, want)
		}
	}
}
