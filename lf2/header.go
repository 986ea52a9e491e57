package lf2

import (
	"LeafTools/format"
)

// Magic identifies an LF2 image (NUL-padded to 8 bytes on disk).
const Magic = "LEAF256"

const headerSize = 24

// Rect is the placement of the image on the game screen. Only Width and
// Height matter for decoding.
type Rect struct {
	X, Y          uint16
	Width, Height uint16
}

// Color is a palette entry. It is stored on disk as B, G, R.
type Color struct {
	R, G, B uint8
}

// Header is the fixed part of an LF2 file.
type Header struct {
	Rect             Rect
	TransparentIndex uint8
	Palette          []Color
}

// DataOffset is where the compressed pixel stream starts.
func (h *Header) DataOffset() int {
	return headerSize + 3*len(h.Palette)
}

// ParseHeader reads the geometry, transparency index and palette of an LF2 file.
func ParseHeader(buf []byte) (*Header, error) {
	magic, ok := format.Magic(buf)
	if !ok {
		return nil, format.Errorf(Magic, format.ErrTruncated, "%d bytes", len(buf))
	}
	if magic != Magic {
		return nil, format.Errorf(Magic, format.ErrBadMagic, "%q", magic)
	}
	if len(buf) < headerSize {
		return nil, format.Errorf(Magic, format.ErrTruncated, "header needs %d bytes, have %d", headerSize, len(buf))
	}

	h := &Header{
		Rect: Rect{
			X:      format.Uint16At(buf, 8),
			Y:      format.Uint16At(buf, 10),
			Width:  format.Uint16At(buf, 12),
			Height: format.Uint16At(buf, 14),
		},
		TransparentIndex: buf[18],
	}

	colorCount := int(buf[22])
	if end := headerSize + 3*colorCount; len(buf) < end {
		return nil, format.Errorf(Magic, format.ErrTruncated, "palette of %d colors needs %d bytes, have %d", colorCount, end, len(buf))
	}
	h.Palette = make([]Color, colorCount)
	for i := range h.Palette {
		p := buf[headerSize+3*i:]
		h.Palette[i] = Color{R: p[2], G: p[1], B: p[0]}
	}
	return h, nil
}
