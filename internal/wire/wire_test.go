package wire

import (
	"bytes"
	"errors"
	"testing"
)

func TestReadU8U16U32(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x7f, 0x01, 0x02, 0x00, 0x00, 0x01, 0x00}))
	b, err := r.ReadU8()
	if err != nil || b != 0x7f {
		t.Fatalf("ReadU8 = %x, %v", b, err)
	}
	u16, err := r.ReadU16()
	if err != nil || u16 != 0x0102 {
		t.Fatalf("ReadU16 = %x, %v", u16, err)
	}
	u32, err := r.ReadU32()
	if err != nil || u32 != 0x00000100 {
		t.Fatalf("ReadU32 = %x, %v", u32, err)
	}
}

func TestReadStringNullTerminated(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("hello\x00world")))
	s, err := r.ReadString()
	if err != nil || s != "hello" {
		t.Fatalf("ReadString = %q, %v", s, err)
	}
}

func TestReadStringMissingTerminator(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte("no terminator")))
	if _, err := r.ReadString(); !errors.Is(err, ErrNoNullTerminator) {
		t.Fatalf("expected ErrNoNullTerminator, got %v", err)
	}
}

func TestDecodeGraalBits(t *testing.T) {
	// Single byte: value 32 (0x20) decodes to 0.
	if v := DecodeGraalBits([]byte{32}); v != 0 {
		t.Fatalf("DecodeGraalBits single byte = %d, want 0", v)
	}
	// Two bytes, each contributing 7 bits: {33, 32} = (1<<7)+0 = 128.
	if v := DecodeGraalBits([]byte{33, 32}); v != 128 {
		t.Fatalf("DecodeGraalBits two bytes = %d, want 128", v)
	}
}

func TestReadGraalUintAcceptsWidthMaximum(t *testing.T) {
	// Width 1 max is GU8Max (0xDF); decoded value from byte 0xff is 0xff-32=223=0xDF, within range.
	r := NewReader(bytes.NewReader([]byte{0xff}))
	v, err := r.ReadGraalUint(1)
	if err != nil || v != uint64(GU8Max) {
		t.Fatalf("ReadGraalUint(1) = %d, %v, want %d", v, err, GU8Max)
	}
}

func TestReadExactShortRead(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{1, 2}))
	if _, err := r.ReadExact(5); err == nil {
		t.Fatal("expected error reading past end of buffer")
	}
}
