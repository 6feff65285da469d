package region

import "github.com/kr/pretty"

// Snapshot is a serializable capture of a region graph's shape, taken
// before a reduction attempt so a caller can persist it for post-mortem
// inspection (§4.I's "debug snapshots").
type Snapshot struct {
	Regions []RegionSnapshot
}

// RegionSnapshot mirrors one Region, omitting the AST nodes themselves
// (only their count, not their rendered form, is useful for a structural
// diff across iterations).
type RegionSnapshot struct {
	ID         ID
	Type       string
	NodeCount  int
	Successors []ID
	HasJump    bool
}

// BeforeReduce captures s's current shape. Callers that enable debug mode
// persist the returned string (e.g. one file per outer iteration) for
// later inspection; nothing inside this package does that persistence
// itself.
func (s *Set) BeforeReduce() string {
	snap := Snapshot{}
	for _, id := range s.AllRegions() {
		r := s.regions[id]
		snap.Regions = append(snap.Regions, RegionSnapshot{
			ID:         id,
			Type:       r.Type.String(),
			NodeCount:  len(r.Nodes),
			Successors: s.Successors(id),
			HasJump:    r.JumpExpression != nil,
		})
	}
	return pretty.Sprint(snap)
}
