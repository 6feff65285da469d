package ast

type stmtBase struct{ Meta Meta }

func (s *stmtBase) meta() *Meta   { return &s.Meta }
func (s *stmtBase) isStatement()  {}

// Assignment is `lhs = rhs;` (or a compound form the emitter detects from
// rhs's shape, per §4.J).
type Assignment struct {
	stmtBase
	LHS Assignable
	RHS Expression
}

func NewAssignment(lhs Assignable, rhs Expression) *Assignment {
	return &Assignment{LHS: lhs, RHS: rhs}
}

func (n *Assignment) Accept(v Visitor) (string, []string) { return v.VisitAssignment(n) }
func (n *Assignment) Equal(other Node) bool {
	o, ok := other.(*Assignment)
	return ok && n.LHS.Equal(o.LHS) && n.RHS.Equal(o.RHS)
}

// Return is `return expr;`.
type Return struct {
	stmtBase
	Value Expression
}

func NewReturn(value Expression) *Return { return &Return{Value: value} }
func (n *Return) Accept(v Visitor) (string, []string) { return v.VisitReturn(n) }
func (n *Return) Equal(other Node) bool {
	o, ok := other.(*Return)
	if !ok {
		return false
	}
	if n.Value == nil || o.Value == nil {
		return n.Value == nil && o.Value == nil
	}
	return n.Value.Equal(o.Value)
}

// VirtualBranch is a placeholder for a branch to an unreduced region; the
// emitter renders it as `goto R_n;`. Structural analysis does not create
// it: a region graph that stops reducing fails with a
// StructureAnalysisError instead.
type VirtualBranch struct {
	stmtBase
	RegionID string
}

func NewVirtualBranch(regionID string) *VirtualBranch { return &VirtualBranch{RegionID: regionID} }
func (n *VirtualBranch) Accept(v Visitor) (string, []string) { return v.VisitVirtualBranch(n) }
func (n *VirtualBranch) Equal(other Node) bool {
	o, ok := other.(*VirtualBranch)
	return ok && n.RegionID == o.RegionID
}
