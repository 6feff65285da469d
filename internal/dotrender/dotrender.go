// Package dotrender satisfies §6's render_dot surface: a Graphviz DOT
// rendering of a function's basic-block CFG, for eyeballing control flow
// that structural analysis couldn't fully reduce. It does not attempt
// Graphviz-fidelity layout, styling, or subgraph clustering; it emits the
// smallest DOT a function's graph needs to be legible in `dot -Tsvg`.
package dotrender

import (
	"fmt"
	"sort"
	"strings"

	"gs2dc/internal/function"
)

// Function renders fn's basic-block CFG as a DOT digraph.
func Function(fn *function.Function) string {
	var b strings.Builder
	fmt.Fprintf(&b, "digraph %q {\n", fn.ID.String())

	blocks := fn.Blocks()
	sort.Slice(blocks, func(i, j int) bool { return blocks[i] < blocks[j] })

	for _, id := range blocks {
		block, ok := fn.GetBasicBlockByID(id)
		if !ok {
			continue
		}
		label := fmt.Sprintf("block %d\\n%d instrs", id, len(block.Instructions))
		shape := "box"
		if id == fn.EntryBlock() {
			shape = "box,style=bold"
		}
		fmt.Fprintf(&b, "  n%d [label=%q, shape=%s];\n", id, label, shape)
	}
	for _, id := range blocks {
		for _, succ := range fn.Successors(id) {
			fmt.Fprintf(&b, "  n%d -> n%d;\n", id, succ)
		}
	}

	b.WriteString("}\n")
	return b.String()
}
