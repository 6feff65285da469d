// Package wire implements the big-endian primitive I/O and the "Graal"
// variable-length integer encoding the GS2 bytecode format is built on.
package wire

import (
	"bufio"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
)

// Per-width maximum values for the Graal variable-length integer encoding:
// n bytes each contribute 7 data bits with a printable-ASCII offset of 32.
const (
	GU8Max  uint32 = 0xDF
	GU16Max uint32 = 0x705F
	GU24Max uint32 = 0x38305F
	GU32Max uint32 = 0x1C18305F
	GU40Max uint32 = 0xFFFFFFFF
)

// Reader decodes the big-endian primitives and Graal integers a GS2 module
// is built from.
type Reader struct {
	r *bufio.Reader
}

// NewReader wraps an io.Reader for bytecode decoding.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: bufio.NewReader(r)}
}

// ReadU8 reads one big-endian byte.
func (r *Reader) ReadU8() (byte, error) {
	b, err := r.r.ReadByte()
	if err != nil {
		return 0, fmt.Errorf("wire: read u8: %w", err)
	}
	return b, nil
}

// ReadU16 reads a big-endian 16-bit unsigned integer.
func (r *Reader) ReadU16() (uint16, error) {
	var buf [2]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, fmt.Errorf("wire: read u16: %w", err)
	}
	return uint16(buf[0])<<8 | uint16(buf[1]), nil
}

// ReadU32 reads a big-endian 32-bit unsigned integer.
func (r *Reader) ReadU32() (uint32, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r.r, buf[:]); err != nil {
		return 0, fmt.Errorf("wire: read u32 (%s into stream): %w", humanize.Bytes(4), err)
	}
	return uint32(buf[0])<<24 | uint32(buf[1])<<16 | uint32(buf[2])<<8 | uint32(buf[3]), nil
}

// ReadString reads a null-terminated UTF-8 string.
func (r *Reader) ReadString() (string, error) {
	buf, err := r.r.ReadBytes(0x00)
	if err != nil {
		return "", fmt.Errorf("wire: %w: %v", ErrNoNullTerminator, err)
	}
	return string(buf[:len(buf)-1]), nil
}

// ReadExact reads exactly n bytes.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		return nil, fmt.Errorf("wire: read %s: %w", humanize.Bytes(uint64(n)), err)
	}
	return buf, nil
}

// Sentinel errors for the wire codec's own failure modes. internal/loader
// wraps the errors of the wire reads it makes (ReadU32, ReadExact) into
// gs2err.LoaderError via gs2err.NewGraalIo.
var (
	ErrNoNullTerminator   = fmt.Errorf("no null terminator found")
	ErrValueExceedsMaximum = fmt.Errorf("value exceeds maximum for Graal-encoded integer")
)

// DecodeGraalBits decodes a fixed-width slice of Graal-encoded bytes into an
// integer: each byte contributes 7 bits after removing the +32 offset, most
// significant byte first.
func DecodeGraalBits(slice []byte) uint64 {
	var value uint64
	for i, b := range slice {
		chunk := uint64(b - 32)
		shift := uint(7 * (len(slice) - 1 - i))
		value += chunk << shift
	}
	return value
}

// maxForWidth returns the documented maximum value representable in width
// Graal-encoded bytes (1..=5), per §4.A.
func maxForWidth(width int) uint64 {
	switch width {
	case 1:
		return uint64(GU8Max)
	case 2:
		return uint64(GU16Max)
	case 3:
		return uint64(GU24Max)
	case 4:
		return uint64(GU32Max)
	default:
		return uint64(GU40Max)
	}
}

// ReadGraalUint reads a Graal variable-length integer of the given byte
// width (1..=5), returning ErrValueExceedsMaximum if the decoded value
// exceeds that width's documented maximum.
func (r *Reader) ReadGraalUint(width int) (uint64, error) {
	buf, err := r.ReadExact(width)
	if err != nil {
		return 0, err
	}
	value := DecodeGraalBits(buf)
	if max := maxForWidth(width); value > max {
		return 0, fmt.Errorf("wire: %w: value %d, max %d", ErrValueExceedsMaximum, value, max)
	}
	return value, nil
}

// ReadGraalString reads a length-prefixed string where the length is a
// one-byte Graal-encoded integer, as used for string-length prefixes
// elsewhere in the Graal ecosystem.
func (r *Reader) ReadGraalString() (string, error) {
	length, err := r.ReadGraalUint(1)
	if err != nil {
		return "", err
	}
	buf, err := r.ReadExact(int(length))
	if err != nil {
		return "", err
	}
	return string(buf), nil
}
