// Package function implements the per-function container of basic blocks
// described in §4.D: bidirectional block-id/graph-node maps, predecessor
// and successor queries, and the reverse-post-order traversal §4.F drives
// symbolic execution with.
package function

import (
	"fmt"

	"gs2dc/internal/gs2err"
	"gs2dc/internal/graph"
	"gs2dc/internal/loader"
)

// BlockType classifies a basic block's role, per §3's Data Model.
type BlockType int

const (
	Normal BlockType = iota
	Entry
	ModuleEnd
)

func (t BlockType) String() string {
	switch t {
	case Entry:
		return "Entry"
	case ModuleEnd:
		return "ModuleEnd"
	default:
		return "Normal"
	}
}

// BasicBlockID is a stable identifier for a block within its owning
// Function, independent of the backing graph's node numbering.
type BasicBlockID int

// BasicBlock is `(id, type, start_address, instructions)`.
type BasicBlock struct {
	ID           BasicBlockID
	Type         BlockType
	StartAddress int
	Instructions []loader.Instruction
}

// ID is `(index, optional_name, entry_address)`.
type ID struct {
	Index   int
	Name    string
	HasName bool
	Address int
}

func (id ID) String() string {
	if id.HasName {
		return id.Name
	}
	return fmt.Sprintf("<anonymous@%d>", id.Address)
}

// Function is the per-function container described in §4.D.
type Function struct {
	ID ID

	blocks      map[BasicBlockID]*BasicBlock
	nextBlockID BasicBlockID

	cfg         *graph.Graph
	blockToNode map[BasicBlockID]graph.NodeID
	nodeToBlock map[graph.NodeID]BasicBlockID
	addrToBlock map[int]BasicBlockID

	entryBlock BasicBlockID
}

// New constructs a Function, implicitly creating its entry block at
// id.Address.
func New(id ID) *Function {
	f := &Function{
		ID:          id,
		blocks:      make(map[BasicBlockID]*BasicBlock),
		cfg:         graph.New(),
		blockToNode: make(map[BasicBlockID]graph.NodeID),
		nodeToBlock: make(map[graph.NodeID]BasicBlockID),
		addrToBlock: make(map[int]BasicBlockID),
	}
	entry, _ := f.CreateBlock(Entry, id.Address)
	f.entryBlock = entry.ID
	return f
}

// CreateBlock allocates a new basic block. Only one Entry block may exist
// per function.
func (f *Function) CreateBlock(blockType BlockType, startAddress int) (*BasicBlock, error) {
	if blockType == Entry {
		for _, b := range f.blocks {
			if b.Type == Entry {
				return nil, gs2err.NewOther(gs2err.ErrorContext{FunctionName: f.ID.String()},
					"function already has an entry block")
			}
		}
	}
	id := f.nextBlockID
	f.nextBlockID++
	block := &BasicBlock{ID: id, Type: blockType, StartAddress: startAddress}
	f.blocks[id] = block
	node := f.cfg.AddNode()
	f.blockToNode[id] = node
	f.nodeToBlock[node] = id
	f.addrToBlock[startAddress] = id
	return block, nil
}

// GetBasicBlockByID returns the block with the given id.
func (f *Function) GetBasicBlockByID(id BasicBlockID) (*BasicBlock, bool) {
	b, ok := f.blocks[id]
	return b, ok
}

// GetBasicBlockByStartAddress returns the block starting at addr.
func (f *Function) GetBasicBlockByStartAddress(addr int) (*BasicBlock, bool) {
	id, ok := f.addrToBlock[addr]
	if !ok {
		return nil, false
	}
	return f.blocks[id], true
}

// EntryBlock returns the function's (unique) entry block id.
func (f *Function) EntryBlock() BasicBlockID { return f.entryBlock }

// AddEdge adds a CFG edge between two blocks owned by this function.
func (f *Function) AddEdge(from, to BasicBlockID) {
	f.cfg.AddEdge(f.blockToNode[from], f.blockToNode[to])
}

// Predecessors returns the blocks with an edge into id.
func (f *Function) Predecessors(id BasicBlockID) []BasicBlockID {
	nodes := f.cfg.Predecessors(f.blockToNode[id])
	out := make([]BasicBlockID, len(nodes))
	for i, n := range nodes {
		out[i] = f.nodeToBlock[n]
	}
	return out
}

// Successors returns the blocks id has an edge to.
func (f *Function) Successors(id BasicBlockID) []BasicBlockID {
	nodes := f.cfg.Successors(f.blockToNode[id])
	out := make([]BasicBlockID, len(nodes))
	for i, n := range nodes {
		out[i] = f.nodeToBlock[n]
	}
	return out
}

// Blocks returns every block id owned by this function, in creation order.
func (f *Function) Blocks() []BasicBlockID {
	out := make([]BasicBlockID, 0, len(f.blocks))
	for _, n := range f.cfg.Nodes() {
		out = append(out, f.nodeToBlock[n])
	}
	return out
}

// GetReversePostOrder returns the traversal §4.F walks blocks in. This is,
// deliberately, a DFS post-order collection from the entry block with no
// subsequent reversal: the name is inherited from the source this package
// is grounded on, which implements it the same way.
func (f *Function) GetReversePostOrder() []BasicBlockID {
	nodes := f.cfg.DFSPostOrder(f.blockToNode[f.entryBlock])
	out := make([]BasicBlockID, len(nodes))
	for i, n := range nodes {
		out[i] = f.nodeToBlock[n]
	}
	return out
}
