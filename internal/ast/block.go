package ast

// Block owns an ordered list of statement-level nodes: Statement,
// ControlFlow, or a nested Block.
type Block struct {
	Meta  Meta
	Nodes []Node
}

func NewBlock(nodes []Node) *Block { return &Block{Nodes: nodes} }

func (n *Block) meta() *Meta { return &n.Meta }
func (n *Block) Accept(v Visitor) (string, []string) { return v.VisitBlock(n) }

func (n *Block) Equal(other Node) bool {
	o, ok := other.(*Block)
	if !ok || len(n.Nodes) != len(o.Nodes) {
		return false
	}
	for i := range n.Nodes {
		if !n.Nodes[i].Equal(o.Nodes[i]) {
			return false
		}
	}
	return true
}

// Append adds a node to the end of the block.
func (n *Block) Append(node Node) { n.Nodes = append(n.Nodes, node) }
