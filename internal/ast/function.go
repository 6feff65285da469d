package ast

// Function owns `(optional name, parameter list, body block)`.
type Function struct {
	Meta       Meta
	Name       string
	HasName    bool
	Parameters []Assignable
	Body       *Block
}

func NewFunction(name string, hasName bool, parameters []Assignable, body *Block) *Function {
	return &Function{Name: name, HasName: hasName, Parameters: parameters, Body: body}
}

func (n *Function) meta() *Meta { return &n.Meta }
func (n *Function) Accept(v Visitor) (string, []string) { return v.VisitFunction(n) }

func (n *Function) Equal(other Node) bool {
	o, ok := other.(*Function)
	if !ok || n.Name != o.Name || n.HasName != o.HasName || len(n.Parameters) != len(o.Parameters) {
		return false
	}
	for i := range n.Parameters {
		if !n.Parameters[i].Equal(o.Parameters[i]) {
			return false
		}
	}
	return n.Body.Equal(o.Body)
}
