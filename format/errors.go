package format

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic is returned when the leading magic bytes do not name the expected format.
	ErrBadMagic = errors.New("bad magic")
	// ErrUnsupportedVariant is returned when a structural field fails a known-variant check.
	ErrUnsupportedVariant = errors.New("unsupported variant")
	// ErrTruncated is returned when a buffer is too short to hold its own header.
	ErrTruncated = errors.New("truncated header")
)

// Error is a file-local decoding failure. Kind is one of the sentinel errors above.
type Error struct {
	Format string // "LEAFPACK", "LEAF256"
	Kind   error
	Detail string
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Format, e.Kind)
	}
	return fmt.Sprintf("%s: %v: %s", e.Format, e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Kind
}

// Errorf builds an *Error of the given kind.
func Errorf(formatName string, kind error, detail string, args ...any) *Error {
	return &Error{Format: formatName, Kind: kind, Detail: fmt.Sprintf(detail, args...)}
}
