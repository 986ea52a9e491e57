package leafpack

import (
	"io"
	"strings"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/transform"
)

const nameLen = 12

// decodeName turns a decoded 12-byte name field like "C0101   LF2\x00"
// into "C0101.LF2".
func decodeName(field []byte) string {
	name := string(field[:8]) + "." + string(field[8:])
	name = strings.ReplaceAll(name, "\x00", "")
	name = strings.ReplaceAll(name, " ", "")

	// Names are Shift-JIS; plain ASCII passes through untouched.
	r := transform.NewReader(strings.NewReader(name), japanese.ShiftJIS.NewDecoder())
	decoded, err := io.ReadAll(r)
	if err != nil {
		return name
	}
	return string(decoded)
}
