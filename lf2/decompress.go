package lf2

import (
	"LeafTools/format"
)

const (
	ringSize  = 0x1000
	ringMask  = ringSize - 1
	ringStart = 0x0fee

	minMatch = 3
	maxMatch = 0x0f + minMatch
)

// Decompress expands an LF2 pixel stream until at least width*height palette
// indices have been produced. Rows come out in storage order (bottom row
// first). The last back-reference may run past width*height; the extra
// indices are returned too since the legacy row order places them.
//
// Bytes missing from a short src read as zero; overrun counts them.
func Decompress(src []byte, width, height int) (pixels []byte, overrun int) {
	n := width * height
	pixels = make([]byte, 0, n+maxMatch)
	if n == 0 {
		return pixels, 0
	}

	var ring [ringSize]byte
	w := ringStart
	c := format.NewCursor(src, 0)

	var flag, mask byte
	for len(pixels) < n {
		mask >>= 1
		if mask == 0 {
			mask = 0x80
			flag = c.Byte() ^ 0xff
		}

		if flag&mask != 0 {
			p := c.Byte() ^ 0xff
			pixels = append(pixels, p)
			ring[w] = p
			w = (w + 1) & ringMask
			continue
		}

		ref := c.Uint16() ^ 0xffff
		r := int(ref >> 4)
		length := int(ref&0x0f) + minMatch
		for range length {
			p := ring[r]
			r = (r + 1) & ringMask
			pixels = append(pixels, p)
			ring[w] = p
			w = (w + 1) & ringMask
		}
	}
	return pixels, c.Overrun
}
