// Package leaftest builds synthetic LEAFPACK archives and LF2 images for tests.
package leaftest

import (
	"encoding/binary"
	"fmt"
	"image/color"
)

// File is one archive member.
type File struct {
	Name, Ext string
	Data      []byte
	Length    uint32 // overrides len(Data) in the directory when non-zero
}

// Archive lays files out the way the shipped archives are: data packed
// right after the 10-byte header, each slot's next offset pointing at the
// following file, directory at the end. Every byte is stored as plain+key.
func Archive(keys [11]byte, files []File) []byte {
	buf := []byte("LEAFPACK")
	buf = binary.LittleEndian.AppendUint16(buf, uint16(len(files)))

	dir := make([]byte, 0, len(files)*24)
	for _, f := range files {
		offset := uint32(len(buf))
		length := uint32(len(f.Data))
		if f.Length != 0 {
			length = f.Length
		}

		for i, b := range f.Data {
			buf = append(buf, b+keys[i%len(keys)])
		}

		dir = append(dir, fmt.Sprintf("%-8s%-3s\x00", f.Name, f.Ext)...)
		dir = binary.LittleEndian.AppendUint32(dir, offset)
		dir = binary.LittleEndian.AppendUint32(dir, length)
		dir = binary.LittleEndian.AppendUint32(dir, offset+uint32(len(f.Data)))
	}

	for i := range dir {
		dir[i] += keys[i%len(keys)]
	}
	return append(buf, dir...)
}

// Symbol is one token of an LF2 pixel stream: a literal index, or a ring
// back-reference when Length is non-zero.
type Symbol struct {
	Lit    byte
	Pos    int
	Length int
}

// Lit is a literal palette index.
func Lit(b byte) Symbol { return Symbol{Lit: b} }

// Ref copies length (3..18) indices from ring position pos.
func Ref(pos, length int) Symbol { return Symbol{Pos: pos, Length: length} }

// Stream writes symbols in the on-disk form: one inverted flag byte per
// eight symbols (MSB first, 1 = literal), inverted literals and inverted
// little-endian references.
func Stream(syms ...Symbol) []byte {
	var out []byte
	for len(syms) > 0 {
		group := syms[:min(8, len(syms))]
		syms = syms[len(group):]

		var flag byte
		var body []byte
		for i, s := range group {
			if s.Length == 0 {
				flag |= 0x80 >> i
				body = append(body, s.Lit^0xff)
				continue
			}
			v := uint16(s.Pos<<4|(s.Length-3)) ^ 0xffff
			body = binary.LittleEndian.AppendUint16(body, v)
		}
		out = append(out, flag^0xff)
		out = append(out, body...)
	}
	return out
}

// Image builds an LF2 file placed at (5, 7). Palette alpha is ignored.
func Image(width, height uint16, transparent byte, palette []color.RGBA, stream []byte) []byte {
	buf := make([]byte, 24, 24+3*len(palette)+len(stream))
	copy(buf, "LEAF256")
	binary.LittleEndian.PutUint16(buf[8:], 5)
	binary.LittleEndian.PutUint16(buf[10:], 7)
	binary.LittleEndian.PutUint16(buf[12:], width)
	binary.LittleEndian.PutUint16(buf[14:], height)
	buf[18] = transparent
	buf[22] = byte(len(palette))
	for _, c := range palette {
		buf = append(buf, c.B, c.G, c.R)
	}
	return append(buf, stream...)
}
