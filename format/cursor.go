package format

import (
	"encoding/binary"
	"strings"
)

// MagicSize is the length of the NUL-padded ASCII magic at the start of every Leaf file.
const MagicSize = 8

// Cursor reads little-endian values from an immutable buffer.
// Reads past the end yield zero bytes and are counted in Overrun.
type Cursor struct {
	buf     []byte
	pos     int
	Overrun int
}

// NewCursor returns a cursor over buf positioned at off.
func NewCursor(buf []byte, off int) *Cursor {
	return &Cursor{buf: buf, pos: off}
}

// Pos returns the current offset.
func (c *Cursor) Pos() int { return c.pos }

// Byte reads one byte and advances.
func (c *Cursor) Byte() byte {
	var b byte
	if c.pos >= 0 && c.pos < len(c.buf) {
		b = c.buf[c.pos]
	} else {
		c.Overrun++
	}
	c.pos++
	return b
}

// Uint16 reads a little-endian uint16 and advances.
func (c *Cursor) Uint16() uint16 {
	if c.pos >= 0 && c.pos+2 <= len(c.buf) {
		v := binary.LittleEndian.Uint16(c.buf[c.pos:])
		c.pos += 2
		return v
	}
	lo := c.Byte()
	hi := c.Byte()
	return uint16(lo) | uint16(hi)<<8
}

// Uint16At reads a little-endian uint16 at off without moving the cursor.
// The caller must have checked bounds.
func Uint16At(buf []byte, off int) uint16 {
	return binary.LittleEndian.Uint16(buf[off : off+2])
}

// Magic returns the first MagicSize bytes of buf as ASCII with NUL bytes removed.
// ok is false when buf is shorter than MagicSize.
func Magic(buf []byte) (magic string, ok bool) {
	if len(buf) < MagicSize {
		return "", false
	}
	return strings.ReplaceAll(string(buf[:MagicSize]), "\x00", ""), true
}
