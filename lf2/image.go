package lf2

import (
	"image"
	"image/color"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
)

type options struct {
	order  RowOrder
	logger log.Interface
}

// Option configures Decode.
type Option func(*options)

// WithRowOrder selects the stored-to-output row mapping. Default RowOrderLegacy.
func WithRowOrder(order RowOrder) Option {
	return func(o *options) { o.order = order }
}

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l log.Interface) Option {
	return func(o *options) { o.logger = l }
}

// Image is a decoded LF2 picture: palette indices in top-first row-major order.
type Image struct {
	Header
	Pixels []byte
}

// Decode parses and decompresses an LF2 file.
func Decode(buf []byte, opts ...Option) (*Image, error) {
	o := options{
		order:  RowOrderLegacy,
		logger: &log.Logger{Handler: discard.Default, Level: log.FatalLevel},
	}
	for _, opt := range opts {
		opt(&o)
	}

	h, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}

	width, height := int(h.Rect.Width), int(h.Rect.Height)
	stored, overrun := Decompress(buf[h.DataOffset():], width, height)
	if overrun > 0 {
		o.logger.WithFields(log.Fields{
			"width":   width,
			"height":  height,
			"missing": overrun,
		}).Warn("pixel stream ends early")
	}

	return &Image{
		Header: *h,
		Pixels: Reorder(stored, width, height, o.order, h.TransparentIndex),
	}, nil
}

// At returns the color of palette index p. The transparent index and
// indices outside the palette are transparent black.
func (img *Image) At(p byte) color.NRGBA {
	if p == img.TransparentIndex || int(p) >= len(img.Palette) {
		return color.NRGBA{}
	}
	c := img.Palette[p]
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// RGBA maps every pixel through the palette.
func (img *Image) RGBA() []color.NRGBA {
	out := make([]color.NRGBA, len(img.Pixels))
	for i, p := range img.Pixels {
		out[i] = img.At(p)
	}
	return out
}

// NRGBA renders the image for an image encoder.
func (img *Image) NRGBA() *image.NRGBA {
	width, height := int(img.Rect.Width), int(img.Rect.Height)
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, p := range img.Pixels {
		c := img.At(p)
		off := dst.PixOffset(i%width, i/width)
		dst.Pix[off+0] = c.R
		dst.Pix[off+1] = c.G
		dst.Pix[off+2] = c.B
		dst.Pix[off+3] = c.A
	}
	return dst
}
