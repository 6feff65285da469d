// Package graph implements the small directed-graph abstraction shared by
// the module loader's raw block graph, the function model's CFG, and the
// structural analyzer's region graph: stable integer node ids, per-direction
// neighbor enumeration, and a DFS traversal. No third-party graph library
// appears anywhere in the corpus this module was grown from (the teacher's
// own CFG-shaped code, e.g. internal/compiler's basic-block linking, rolls
// its own adjacency lists rather than reaching for one); this package
// follows that same precedent deliberately, see DESIGN.md.
package graph

// NodeID is a stable identifier for a graph node, independent of any
// insertion or traversal order.
type NodeID int

// EdgeLabel optionally tags an edge; the region graph uses this to
// distinguish Branch from Fallthrough successors per §4.I. Unlabelled
// graphs (the raw block graph, the CFG) leave it at LabelNone.
type EdgeLabel int

const (
	LabelNone EdgeLabel = iota
	LabelBranch
	LabelFallthrough
)

type edge struct {
	to    NodeID
	label EdgeLabel
}

// Graph is a directed graph with insertion-ordered adjacency lists.
type Graph struct {
	nodes   map[NodeID]bool
	out     map[NodeID][]edge
	in      map[NodeID][]edge
	nextID  NodeID
	ordered []NodeID
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		nodes: make(map[NodeID]bool),
		out:   make(map[NodeID][]edge),
		in:    make(map[NodeID][]edge),
	}
}

// AddNode allocates and returns a new node id.
func (g *Graph) AddNode() NodeID {
	id := g.nextID
	g.nextID++
	g.nodes[id] = true
	g.ordered = append(g.ordered, id)
	return id
}

// HasNode reports whether id was returned by a previous AddNode call and has
// not been removed.
func (g *Graph) HasNode(id NodeID) bool {
	return g.nodes[id]
}

// AddEdge adds an unlabelled edge from -> to. Duplicate edges are allowed;
// callers that need a simple graph dedupe before calling.
func (g *Graph) AddEdge(from, to NodeID) {
	g.AddLabelledEdge(from, to, LabelNone)
}

// AddLabelledEdge adds from -> to carrying label.
func (g *Graph) AddLabelledEdge(from, to NodeID, label EdgeLabel) {
	g.out[from] = append(g.out[from], edge{to: to, label: label})
	g.in[to] = append(g.in[to], edge{to: from, label: label})
}

// RemoveEdge removes the first from -> to edge found, regardless of label.
func (g *Graph) RemoveEdge(from, to NodeID) {
	g.out[from] = removeFirst(g.out[from], to)
	g.in[to] = removeFirst(g.in[to], from)
}

func removeFirst(edges []edge, target NodeID) []edge {
	for i, e := range edges {
		if e.to == target {
			return append(edges[:i:i], edges[i+1:]...)
		}
	}
	return edges
}

// RemoveNode deletes id and every edge touching it.
func (g *Graph) RemoveNode(id NodeID) {
	for _, e := range g.out[id] {
		g.in[e.to] = removeFirst(g.in[e.to], id)
	}
	for _, e := range g.in[id] {
		g.out[e.to] = removeFirst(g.out[e.to], id)
	}
	delete(g.out, id)
	delete(g.in, id)
	delete(g.nodes, id)
	for i, n := range g.ordered {
		if n == id {
			g.ordered = append(g.ordered[:i:i], g.ordered[i+1:]...)
			break
		}
	}
}

// Successors returns the nodes id has outgoing edges to, insertion order.
func (g *Graph) Successors(id NodeID) []NodeID {
	var out []NodeID
	for _, e := range g.out[id] {
		out = append(out, e.to)
	}
	return out
}

// SuccessorsWithLabel returns only the successors reached via an edge
// carrying label.
func (g *Graph) SuccessorsWithLabel(id NodeID, label EdgeLabel) []NodeID {
	var out []NodeID
	for _, e := range g.out[id] {
		if e.label == label {
			out = append(out, e.to)
		}
	}
	return out
}

// Predecessors returns the nodes with an outgoing edge into id.
func (g *Graph) Predecessors(id NodeID) []NodeID {
	var out []NodeID
	for _, e := range g.in[id] {
		out = append(out, e.to)
	}
	return out
}

// OutDegree and InDegree count edges without allocating.
func (g *Graph) OutDegree(id NodeID) int { return len(g.out[id]) }
func (g *Graph) InDegree(id NodeID) int  { return len(g.in[id]) }

// Nodes returns every live node id in insertion order.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, 0, len(g.ordered))
	for _, id := range g.ordered {
		if g.nodes[id] {
			out = append(out, id)
		}
	}
	return out
}

// Len returns the number of live nodes.
func (g *Graph) Len() int { return len(g.nodes) }

// DFSPostOrder walks from start and returns nodes in post-order: a node is
// appended only after all of its (forward-reachable, unvisited) successors
// have been appended. This is the exact traversal the function model's
// "reverse post order" is named after and built from — see function.go.
func (g *Graph) DFSPostOrder(start NodeID) []NodeID {
	visited := make(map[NodeID]bool)
	var order []NodeID
	var visit func(NodeID)
	visit = func(n NodeID) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, s := range g.Successors(n) {
			visit(s)
		}
		order = append(order, n)
	}
	visit(start)
	return order
}

// ReachableFrom returns the set of nodes reachable from start (including
// start itself) via forward edges.
func (g *Graph) ReachableFrom(start NodeID) map[NodeID]bool {
	visited := make(map[NodeID]bool)
	var visit func(NodeID)
	visit = func(n NodeID) {
		if visited[n] {
			return
		}
		visited[n] = true
		for _, s := range g.Successors(n) {
			visit(s)
		}
	}
	visit(start)
	return visited
}
