package loader

import (
	"bytes"
	"testing"

	"gs2dc/internal/opcode"
)

func u32be(n uint32) []byte {
	return []byte{byte(n >> 24), byte(n >> 16), byte(n >> 8), byte(n)}
}

func section(tag uint32, payload []byte) []byte {
	var b bytes.Buffer
	b.Write(u32be(tag))
	b.Write(u32be(uint32(len(payload))))
	b.Write(payload)
	return b.Bytes()
}

// minimalModule builds the smallest well-formed GS2 byte stream: empty
// Functions and Strings sections (so only the anonymous entry function
// exists), and an Instructions section of "push 1; return".
func minimalModule() []byte {
	var buf bytes.Buffer
	buf.Write(section(sectionGs1Flags, []byte{0, 0, 0, 0}))
	buf.Write(section(sectionFunctions, nil))
	buf.Write(section(sectionStrings, nil))
	buf.Write(section(sectionInstructions, []byte{
		byte(opcode.PushNumber), byte(opcode.ImmByte), 0x01,
		byte(opcode.Ret),
	}))
	return buf.Bytes()
}

func TestBuildModuleParsesMinimalProgram(t *testing.T) {
	m, err := BuildModule(bytes.NewReader(minimalModule()))
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	if len(m.Functions) != 1 || m.Functions[0].HasName || m.Functions[0].Address != 0 {
		t.Fatalf("Functions = %+v, want single anonymous entry at 0", m.Functions)
	}
	if len(m.Instructions) != 2 {
		t.Fatalf("Instructions = %+v, want 2 (PushNumber with attached immediate, Ret)", m.Instructions)
	}
	if m.Instructions[0].Opcode != opcode.PushNumber || m.Instructions[0].Operand == nil || m.Instructions[0].Operand.Int() != 1 {
		t.Fatalf("Instructions[0] = %+v, want PushNumber with immediate operand 1", m.Instructions[0])
	}
	if m.Instructions[1].Opcode != opcode.Ret || m.Instructions[1].Operand != nil {
		t.Fatalf("Instructions[1] = %+v, want bare Ret", m.Instructions[1])
	}
}

func TestBuildModuleDiscoversBlockBreaksFromBlockEndOpcodes(t *testing.T) {
	m, err := BuildModule(bytes.NewReader(minimalModule()))
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	want := []int{0, 2}
	if len(m.BlockBreaks) != len(want) {
		t.Fatalf("BlockBreaks = %v, want %v", m.BlockBreaks, want)
	}
	for i, b := range want {
		if m.BlockBreaks[i] != b {
			t.Fatalf("BlockBreaks = %v, want %v", m.BlockBreaks, want)
		}
	}
}

func TestBuildModuleAttributesReachableBlockToEntryFunction(t *testing.T) {
	m, err := BuildModule(bytes.NewReader(minimalModule()))
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	name, err := m.FunctionNameForAddress(0)
	if err != nil || name != "" {
		t.Fatalf("FunctionNameForAddress(0) = %q, %v, want the anonymous entry (\"\")", name, err)
	}
}

func TestBuildModuleRejectsUnreachableBlockLookup(t *testing.T) {
	m, err := BuildModule(bytes.NewReader(minimalModule()))
	if err != nil {
		t.Fatalf("BuildModule: %v", err)
	}
	// Block at address 2 (past the Ret, which does not connect to the
	// next block and carries no jump) is never reached by the entry
	// function's DFS attribution.
	if _, err := m.FunctionNameForAddress(2); err == nil {
		t.Fatal("expected UnreachableBlock for the block past an unconditional Ret")
	}
}

func TestBuildModuleRejectsWrongSectionTag(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(section(sectionFunctions, nil)) // Gs1Flags expected first
	if _, err := BuildModule(bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatal("expected InvalidSectionType when section order is wrong")
	}
}

func TestBuildModuleRejectsBadGs1FlagsLength(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(section(sectionGs1Flags, []byte{1, 2, 3})) // must be exactly 4 bytes
	if _, err := BuildModule(bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatal("expected InvalidSectionLength for a 3-byte Gs1Flags payload")
	}
}

func TestBuildModuleRejectsJumpTargetPastEndOfStream(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(section(sectionGs1Flags, []byte{0, 0, 0, 0}))
	buf.Write(section(sectionFunctions, nil))
	buf.Write(section(sectionStrings, nil))
	buf.Write(section(sectionInstructions, []byte{
		byte(opcode.Jmp), byte(opcode.ImmInt), 0x00, 0x00, 0x00, 0x63, // jump to address 99
	}))
	if _, err := BuildModule(bytes.NewReader(buf.Bytes())); err == nil {
		t.Fatal("expected InvalidJumpTarget for a jump past the end of the instruction stream")
	}
}

func TestFindBlockStartAddress(t *testing.T) {
	m := &Module{BlockBreaks: []int{0, 5, 10}}
	cases := map[int]int{0: 0, 3: 0, 5: 5, 7: 5, 10: 10, 99: 10}
	for addr, want := range cases {
		if got := m.FindBlockStartAddress(addr); got != want {
			t.Errorf("FindBlockStartAddress(%d) = %d, want %d", addr, got, want)
		}
	}
}
