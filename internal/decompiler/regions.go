package decompiler

import (
	"gs2dc/internal/function"
	"gs2dc/internal/graph"
	"gs2dc/internal/region"
)

// buildRegionSet allocates one region per block, preserving each block's
// semantic class (a ModuleEnd block becomes a Tail region; every other
// block starts out Linear, see applyProcessed for how a Ret promotes it to
// Tail later), then mirrors the block CFG's edges onto the region graph,
// labelling each by the terminating instruction's own semantics: a jump
// target is a Branch edge, falling into the next address is a Fallthrough
// edge. A block can carry both (a conditional jump) or just one.
func buildRegionSet(fn *function.Function) (*region.Set, map[function.BasicBlockID]region.ID) {
	regions := region.New()
	blockToRegion := make(map[function.BasicBlockID]region.ID)

	for _, blockID := range fn.Blocks() {
		block, _ := fn.GetBasicBlockByID(blockID)
		t := region.Linear
		if block.Type == function.ModuleEnd {
			t = region.Tail
		}
		r := regions.AddRegion(t)
		blockToRegion[blockID] = r.ID
	}
	regions.SetEntry(blockToRegion[fn.EntryBlock()])

	for _, blockID := range fn.Blocks() {
		block, _ := fn.GetBasicBlockByID(blockID)
		if len(block.Instructions) == 0 {
			continue
		}
		last := block.Instructions[len(block.Instructions)-1]
		from := blockToRegion[blockID]

		if last.Opcode.HasJumpTarget() && last.Operand != nil {
			target := int(last.Operand.Int())
			if toBlock, ok := fn.GetBasicBlockByStartAddress(target); ok {
				regions.ConnectRegions(from, blockToRegion[toBlock.ID], graph.LabelBranch)
			}
		}
		if last.Opcode.ConnectsToNextBlock() {
			next := last.Address + 1
			if toBlock, ok := fn.GetBasicBlockByStartAddress(next); ok {
				regions.ConnectRegions(from, blockToRegion[toBlock.ID], graph.LabelFallthrough)
			}
		}
	}

	return regions, blockToRegion
}
