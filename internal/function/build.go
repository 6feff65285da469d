package function

import (
	"sort"

	"gs2dc/internal/loader"
)

// BuildFunctions partitions a loaded Module's instructions into one
// Function per declared entry (plus the anonymous entry at address 0),
// slicing blocks at the module's block-breaks and wiring each function's
// own CFG edges. Blocks the module's DFS attribution assigned to a
// different function, or to none, are not included.
func BuildFunctions(m *loader.Module) map[string]*Function {
	ownedBlocksByFunction := make(map[string][]int)
	for addr, name := range m.BlockAddressToFunction {
		ownedBlocksByFunction[name] = append(ownedBlocksByFunction[name], addr)
	}
	for name := range ownedBlocksByFunction {
		sort.Ints(ownedBlocksByFunction[name])
	}

	result := make(map[string]*Function, len(m.Functions))
	for index, entry := range m.Functions {
		id := ID{Index: index, Name: entry.Name, HasName: entry.HasName, Address: entry.Address}
		fn := New(id)

		for _, addr := range ownedBlocksByFunction[entry.Name] {
			if addr == entry.Address {
				continue
			}
			blockType := Normal
			if addr == len(m.Instructions) {
				blockType = ModuleEnd
			}
			fn.CreateBlock(blockType, addr)
		}
		populateInstructions(fn, m)
		wireEdges(fn, m)

		result[entry.Name] = fn
	}
	return result
}

// populateInstructions slices m.Instructions at each block's start address
// up to the next higher block-break belonging to this function (or to the
// module's full block-break set, whichever comes first — a block's extent
// never crosses into a block owned by another function because function
// attribution runs over the same block-break partition).
func populateInstructions(fn *Function, m *loader.Module) {
	for _, id := range fn.Blocks() {
		block := fn.blocks[id]
		if block.Type == ModuleEnd {
			continue
		}
		end := len(m.Instructions)
		for _, b := range m.BlockBreaks {
			if b > block.StartAddress && b < end {
				end = b
			}
		}
		if block.StartAddress < len(m.Instructions) {
			block.Instructions = append([]loader.Instruction(nil), m.Instructions[block.StartAddress:end]...)
		}
	}
}

func wireEdges(fn *Function, m *loader.Module) {
	for _, id := range fn.Blocks() {
		block := fn.blocks[id]
		for _, instr := range block.Instructions {
			if instr.Opcode.HasJumpTarget() && instr.Operand != nil {
				target := int(instr.Operand.Int())
				if toID, ok := fn.addrToBlock[target]; ok {
					fn.AddEdge(id, toID)
				}
			}
		}
		if len(block.Instructions) == 0 {
			continue
		}
		last := block.Instructions[len(block.Instructions)-1]
		next := last.Address + 1
		if last.Opcode.ConnectsToNextBlock() {
			if toID, ok := fn.addrToBlock[next]; ok {
				fn.AddEdge(id, toID)
			}
		}
	}
}
