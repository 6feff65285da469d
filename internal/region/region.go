// Package region implements the Region Model of §4.H: a per-function
// region graph mirroring the block graph after per-block symbolic
// execution, where each region owns an ordered list of AST statements plus
// an optional jump expression.
package region

import (
	"fmt"

	"gs2dc/internal/ast"
	"gs2dc/internal/gs2err"
	"gs2dc/internal/graph"
	"gs2dc/internal/opcode"
)

// ID names a region within its owning Set. The zero value is never issued
// by AddRegion, so an unset ID reliably compares unequal to any real one.
type ID int

func (id ID) String() string { return fmt.Sprintf("R_%d", id) }

// Type is `region_type ∈ {Linear, ControlFlow, Tail, Inactive}`.
type Type int

const (
	Linear Type = iota
	ControlFlow
	Tail
	Inactive
)

func (t Type) String() string {
	switch t {
	case ControlFlow:
		return "ControlFlow"
	case Tail:
		return "Tail"
	case Inactive:
		return "Inactive"
	default:
		return "Linear"
	}
}

// Region is `(region_id, region_type, nodes, jump_expression?,
// originating_branch_opcode?)`.
type Region struct {
	ID                ID
	Type              Type
	Nodes             []ast.Node
	JumpExpression    ast.Expression
	OriginatingOpcode *opcode.Opcode
}

// Push appends a node to the region's statement list.
func (r *Region) Push(n ast.Node) { r.Nodes = append(r.Nodes, n) }

// Set owns every region of one function plus the graph mirroring its
// block predecessor relation, with Branch/Fallthrough edge labels as
// §4.I's acyclic-conditional reducer requires.
type Set struct {
	regions map[ID]*Region
	g       *graph.Graph

	regionToNode map[ID]graph.NodeID
	nodeToRegion map[graph.NodeID]ID

	nextID ID
	entry  ID
	hasEntry bool
}

// New returns an empty region set.
func New() *Set {
	return &Set{
		regions:      make(map[ID]*Region),
		g:            graph.New(),
		regionToNode: make(map[ID]graph.NodeID),
		nodeToRegion: make(map[graph.NodeID]ID),
	}
}

// AddRegion allocates a new region of the given type.
func (s *Set) AddRegion(t Type) *Region {
	s.nextID++
	id := s.nextID
	r := &Region{ID: id, Type: t}
	s.regions[id] = r
	node := s.g.AddNode()
	s.regionToNode[id] = node
	s.nodeToRegion[node] = id
	return r
}

// SetEntry marks id as the function's entry region.
func (s *Set) SetEntry(id ID) {
	s.entry = id
	s.hasEntry = true
}

// GetEntryRegion returns the entry region id, failing EntryRegionNotFound
// if none was set.
func (s *Set) GetEntryRegion() (ID, error) {
	if !s.hasEntry {
		return 0, gs2err.NewStructureAnalysisError(gs2err.SubEntryRegionNotFound, "no entry region set")
	}
	return s.entry, nil
}

// GetRegion looks up a region by id, failing RegionNotFound if absent.
func (s *Set) GetRegion(id ID) (*Region, error) {
	r, ok := s.regions[id]
	if !ok {
		return nil, gs2err.NewStructureAnalysisError(gs2err.SubRegionNotFound, fmt.Sprintf("region %s not found", id))
	}
	return r, nil
}

// ConnectRegions adds a labelled edge from -> to.
func (s *Set) ConnectRegions(from, to ID, label graph.EdgeLabel) {
	s.g.AddLabelledEdge(s.regionToNode[from], s.regionToNode[to], label)
}

// RemoveEdge removes the edge from -> to, regardless of label.
func (s *Set) RemoveEdge(from, to ID) {
	s.g.RemoveEdge(s.regionToNode[from], s.regionToNode[to])
}

// RemoveRegion deletes a region and every edge touching it.
func (s *Set) RemoveRegion(id ID) {
	node := s.regionToNode[id]
	s.g.RemoveNode(node)
	delete(s.regionToNode, id)
	delete(s.nodeToRegion, node)
	delete(s.regions, id)
}

// Successors returns every region id reachable by one outgoing edge.
func (s *Set) Successors(id ID) []ID {
	return s.mapNodes(s.g.Successors(s.regionToNode[id]))
}

// SuccessorsWithLabel returns only the successors reached via label.
func (s *Set) SuccessorsWithLabel(id ID, label graph.EdgeLabel) []ID {
	return s.mapNodes(s.g.SuccessorsWithLabel(s.regionToNode[id], label))
}

// Predecessors returns every region id with an outgoing edge into id.
func (s *Set) Predecessors(id ID) []ID {
	return s.mapNodes(s.g.Predecessors(s.regionToNode[id]))
}

func (s *Set) mapNodes(nodes []graph.NodeID) []ID {
	out := make([]ID, len(nodes))
	for i, n := range nodes {
		out[i] = s.nodeToRegion[n]
	}
	return out
}

// Len returns the number of live regions.
func (s *Set) Len() int { return s.g.Len() }

// DFSPostOrder walks the region graph from start in post-order.
func (s *Set) DFSPostOrder(start ID) []ID {
	return s.mapNodes(s.g.DFSPostOrder(s.regionToNode[start]))
}

// AllRegions returns every live region id.
func (s *Set) AllRegions() []ID {
	return s.mapNodes(s.g.Nodes())
}
