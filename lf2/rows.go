package lf2

// RowOrder selects how stored rows (bottom first) map to output rows.
type RowOrder int

const (
	// RowOrderLegacy sends stored row y to output row height-y, matching
	// existing LF2 converters. Stored row 0 falls off the image and the
	// indices past width*height land in output row 0; whatever is left of
	// row 0 is filled with the transparent index.
	RowOrderLegacy RowOrder = iota
	// RowOrderExact sends stored row y to output row height-1-y.
	RowOrderExact
)

func (o RowOrder) String() string {
	switch o {
	case RowOrderLegacy:
		return "legacy"
	case RowOrderExact:
		return "exact"
	}
	return "unknown"
}

// ParseRowOrder parses "legacy" or "exact"; anything else is legacy.
func ParseRowOrder(s string) RowOrder {
	if s == "exact" {
		return RowOrderExact
	}
	return RowOrderLegacy
}

// rowBias is subtracted from height-y.
func (o RowOrder) rowBias() int {
	if o == RowOrderExact {
		return 1
	}
	return 0
}

// Reorder flips stored pixels into top-first order. The result has exactly
// width*height entries; destinations nothing maps to hold fill.
func Reorder(stored []byte, width, height int, order RowOrder, fill byte) []byte {
	n := width * height
	out := make([]byte, n)
	if n == 0 {
		return out
	}
	for i := range out {
		out[i] = fill
	}

	bias := order.rowBias()
	for i, p := range stored {
		x, y := i%width, i/width
		dst := (height-y-bias)*width + x
		if dst < 0 || dst >= n {
			continue
		}
		out[dst] = p
	}
	return out
}
