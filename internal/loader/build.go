package loader

import (
	"fmt"
	"io"

	"gs2dc/internal/gs2err"
	"gs2dc/internal/graph"
	"gs2dc/internal/opcode"
	"gs2dc/internal/wire"
)

func errNotImmediate(op opcode.Opcode) error {
	return fmt.Errorf("loader: opcode %s is not an immediate opcode", op)
}

func errMissingOperand(instr Instruction) error {
	return fmt.Errorf("loader: instruction %s at address %d has a jump target but no operand", instr.Opcode, instr.Address)
}

// Section tags, in the fixed order §4.C and §6 require.
const (
	sectionGs1Flags    uint32 = 1
	sectionFunctions   uint32 = 2
	sectionStrings     uint32 = 3
	sectionInstructions uint32 = 4
)

// BuildModule reads one GS2 bytecode module from r: four fixed sections,
// disassembly with inline-immediate attachment, basic-block discovery, the
// raw block graph, and per-block function attribution. Any failure is fatal
// to loading — BuildModule never returns a partial Module.
func BuildModule(r io.Reader) (*Module, error) {
	wr := wire.NewReader(r)

	if err := readGs1Flags(wr); err != nil {
		return nil, err
	}

	functions, err := readFunctions(wr)
	if err != nil {
		return nil, err
	}

	strings, err := readStrings(wr)
	if err != nil {
		return nil, err
	}

	instructions, blockBreaks, err := readInstructions(wr, strings)
	if err != nil {
		return nil, err
	}

	m := &Module{
		Strings:      strings,
		Functions:    functions,
		Instructions: instructions,
		BlockBreaks:  blockBreaks,
	}
	for _, b := range blockBreaks {
		m.registerBlockBreak(b)
	}
	for _, f := range functions {
		m.registerBlockBreak(f.Address)
	}

	if err := m.registerJumpTargets(); err != nil {
		return nil, err
	}
	m.sortBlockBreaks()
	m.buildRawBlockGraph()
	m.attributeFunctions()

	return m, nil
}

func readSection(wr *wire.Reader, expected uint32) ([]byte, error) {
	tag, err := wr.ReadU32()
	if err != nil {
		return nil, gs2err.NewGraalIo(err)
	}
	if tag != expected {
		return nil, gs2err.NewInvalidSectionType(tag)
	}
	length, err := wr.ReadU32()
	if err != nil {
		return nil, gs2err.NewGraalIo(err)
	}
	payload, err := wr.ReadExact(int(length))
	if err != nil {
		return nil, gs2err.NewGraalIo(err)
	}
	return payload, nil
}

func readGs1Flags(wr *wire.Reader) error {
	payload, err := readSection(wr, sectionGs1Flags)
	if err != nil {
		return err
	}
	if len(payload) != 4 {
		return gs2err.NewInvalidSectionLength("Gs1Flags", uint32(len(payload)))
	}
	return nil
}

func readFunctions(wr *wire.Reader) ([]FunctionEntry, error) {
	payload, err := readSection(wr, sectionFunctions)
	if err != nil {
		return nil, err
	}
	entries := []FunctionEntry{{HasName: false, Address: 0}}
	c := newCursor(payload)
	for c.remaining() > 0 {
		addr, err := c.u32()
		if err != nil {
			return nil, gs2err.NewInvalidSectionLength("Functions", uint32(len(payload)))
		}
		name, err := c.cstring()
		if err != nil {
			return nil, gs2err.NewInvalidSectionLength("Functions", uint32(len(payload)))
		}
		entries = append(entries, FunctionEntry{Name: name, HasName: true, Address: int(addr)})
	}
	return entries, nil
}

func readStrings(wr *wire.Reader) ([]string, error) {
	payload, err := readSection(wr, sectionStrings)
	if err != nil {
		return nil, err
	}
	var out []string
	c := newCursor(payload)
	for c.remaining() > 0 {
		s, err := c.cstring()
		if err != nil {
			return nil, gs2err.NewInvalidSectionLength("Strings", uint32(len(payload)))
		}
		out = append(out, s)
	}
	return out, nil
}

// readInstructions disassembles the Instructions payload, attaching inline
// immediates to the previously emitted instruction and discovering the
// block-breaks implied purely by is_block_end (jump-target breaks are
// registered in a later pass, once operands are known to be valid indices).
func readInstructions(wr *wire.Reader, strTable []string) ([]Instruction, []int, error) {
	payload, err := readSection(wr, sectionInstructions)
	if err != nil {
		return nil, nil, err
	}
	c := newCursor(payload)

	var instructions []Instruction
	blockBreaks := []int{0}

	for c.remaining() > 0 {
		b, err := c.u8()
		if err != nil {
			return nil, nil, gs2err.NewGraalIo(err)
		}
		op, err := opcode.FromByte(b)
		if err != nil {
			return nil, nil, gs2err.NewOpcodeError(err)
		}

		if op.IsImmediate() {
			operand, err := readImmediateOperand(op, c, strTable)
			if err != nil {
				return nil, nil, err
			}
			if len(instructions) == 0 {
				return nil, nil, gs2err.NewNoPreviousInstruction()
			}
			instructions[len(instructions)-1].Operand = &operand
			continue
		}

		address := len(instructions)
		instructions = append(instructions, Instruction{Opcode: op, Address: address})
		if op.IsBlockEnd() {
			blockBreaks = append(blockBreaks, address+1)
		}
	}

	return instructions, blockBreaks, nil
}

func readImmediateOperand(op opcode.Opcode, c *cursor, strTable []string) (opcode.Operand, error) {
	stringAt := func(index int) (opcode.Operand, error) {
		if index < 0 || index >= len(strTable) {
			return opcode.Operand{}, gs2err.NewStringIndexOutOfBounds(index, len(strTable))
		}
		return opcode.String(strTable[index]), nil
	}

	switch op {
	case opcode.ImmStringByte:
		v, err := c.u8()
		if err != nil {
			return opcode.Operand{}, gs2err.NewGraalIo(err)
		}
		return stringAt(int(v))
	case opcode.ImmStringShort:
		v, err := c.u16()
		if err != nil {
			return opcode.Operand{}, gs2err.NewGraalIo(err)
		}
		return stringAt(int(v))
	case opcode.ImmStringInt:
		v, err := c.u32()
		if err != nil {
			return opcode.Operand{}, gs2err.NewGraalIo(err)
		}
		return stringAt(int(v))
	case opcode.ImmByte:
		v, err := c.u8()
		if err != nil {
			return opcode.Operand{}, gs2err.NewGraalIo(err)
		}
		return opcode.Number(int32(v)), nil
	case opcode.ImmShort:
		v, err := c.u16()
		if err != nil {
			return opcode.Operand{}, gs2err.NewGraalIo(err)
		}
		return opcode.Number(int32(v)), nil
	case opcode.ImmInt:
		v, err := c.u32()
		if err != nil {
			return opcode.Operand{}, gs2err.NewGraalIo(err)
		}
		return opcode.Number(int32(v)), nil
	case opcode.ImmFloat:
		s, err := c.cstring()
		if err != nil {
			return opcode.Operand{}, gs2err.NewGraalIo(err)
		}
		return opcode.Float(s), nil
	default:
		return opcode.Operand{}, gs2err.NewOpcodeError(errNotImmediate(op))
	}
}

// registerJumpTargets is §4.C CFG construction step 1: every jump-target
// opcode's operand becomes a registered block-break, rejecting any target
// past the end of the instruction stream.
func (m *Module) registerJumpTargets() error {
	for _, instr := range m.Instructions {
		if !instr.Opcode.HasJumpTarget() {
			continue
		}
		if instr.Operand == nil {
			return gs2err.NewInvalidOperand(errMissingOperand(instr))
		}
		target := int(instr.Operand.Int())
		if target > len(m.Instructions) {
			return gs2err.NewInvalidJumpTarget(target)
		}
		m.registerBlockBreak(target)
	}
	return nil
}

// buildRawBlockGraph is §4.C CFG construction steps 2-3.
func (m *Module) buildRawBlockGraph() {
	m.RawBlockGraph = graph.New()
	m.blockAddressToNode = make(map[int]graph.NodeID, len(m.BlockBreaks))
	m.nodeToBlockAddress = make(map[graph.NodeID]int, len(m.BlockBreaks))

	for _, addr := range m.BlockBreaks {
		id := m.RawBlockGraph.AddNode()
		m.blockAddressToNode[addr] = id
		m.nodeToBlockAddress[id] = addr
	}

	breakSet := make(map[int]bool, len(m.BlockBreaks))
	for _, b := range m.BlockBreaks {
		breakSet[b] = true
	}

	currentBlockStart := 0
	for _, instr := range m.Instructions {
		if breakSet[instr.Address] {
			currentBlockStart = instr.Address
		}
		from := m.blockAddressToNode[currentBlockStart]

		if instr.Opcode.HasJumpTarget() {
			target := int(instr.Operand.Int())
			if to, ok := m.blockAddressToNode[target]; ok {
				m.RawBlockGraph.AddEdge(from, to)
			}
		}

		next := instr.Address + 1
		if breakSet[next] && instr.Opcode.ConnectsToNextBlock() {
			if to, ok := m.blockAddressToNode[next]; ok {
				m.RawBlockGraph.AddEdge(from, to)
			}
		}
	}
}

// attributeFunctions is §4.C CFG construction step 4: DFS from each
// declared function entry, stamping every reached block with that
// function's name ("" for the anonymous entry function) unless an earlier
// entry in m.Functions already stamped it; the first stamp is kept.
func (m *Module) attributeFunctions() {
	m.BlockAddressToFunction = make(map[int]string)
	for _, fn := range m.Functions {
		entryNode, ok := m.blockAddressToNode[fn.Address]
		if !ok {
			continue
		}
		for node := range m.RawBlockGraph.ReachableFrom(entryNode) {
			addr := m.nodeToBlockAddress[node]
			if _, already := m.BlockAddressToFunction[addr]; !already {
				m.BlockAddressToFunction[addr] = fn.Name
			}
		}
	}
}
