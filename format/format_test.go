package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMagic(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want string
		ok   bool
	}{
		{"pack", []byte("LEAFPACK\x48\x02"), "LEAFPACK", true},
		{"image", []byte("LEAF256\x00rest"), "LEAF256", true},
		{"embedded nul", []byte("LE\x00AF256\x00"), "LEAF256", true},
		{"short", []byte("LEAF"), "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Magic(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCursorReadsPastEndAsZero(t *testing.T) {
	c := NewCursor([]byte{0x01, 0x02, 0x03}, 1)
	assert.Equal(t, uint16(0x0302), c.Uint16())
	assert.Equal(t, 0, c.Overrun)

	assert.Equal(t, byte(0), c.Byte())
	assert.Equal(t, uint16(0), c.Uint16())
	assert.Equal(t, 3, c.Overrun)
	assert.Equal(t, 6, c.Pos())
}

func TestCursorUint16StraddlesEnd(t *testing.T) {
	c := NewCursor([]byte{0xAA, 0xBB}, 1)
	assert.Equal(t, uint16(0x00BB), c.Uint16())
	assert.Equal(t, 1, c.Overrun)
}

func TestErrorIs(t *testing.T) {
	err := Errorf("LEAFPACK", ErrUnsupportedVariant, "file count %d", 3)
	require.True(t, errors.Is(err, ErrUnsupportedVariant))
	assert.False(t, errors.Is(err, ErrBadMagic))
	assert.Equal(t, "LEAFPACK: unsupported variant: file count 3", err.Error())

	var fe *Error
	require.True(t, errors.As(error(err), &fe))
	assert.Equal(t, "LEAFPACK", fe.Format)
}
