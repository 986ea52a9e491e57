package leafpack

import "fmt"

// KeyLen is the length of the rolling archive key.
const KeyLen = 11

// SampleSize is the number of directory bytes (three slots) the key is derived from.
const SampleSize = 3 * EntrySize

// KeySchedule is the 11-byte key of one archive.
type KeySchedule [KeyLen]byte

func (ks KeySchedule) String() string {
	return fmt.Sprintf("% X", ks[:])
}

// DeriveKeySchedule recovers the key from the first three encoded directory slots.
//
// The derivation relies on plaintext that every archive shares: slot 0's
// name ends in NUL, the first file starts at offset 10 right after the
// header, and each slot's next offset equals the following slot's offset.
// sample must hold at least SampleSize bytes.
func DeriveKeySchedule(sample []byte) KeySchedule {
	_ = sample[SampleSize-1]

	var k KeySchedule
	k[0] = sample[11]
	k[1] = sample[12] - 0x0a
	k[2] = sample[13]
	k[3] = sample[14]
	k[4] = sample[15]

	k[5] = sample[38] - sample[22] + k[0]
	k[6] = sample[39] - sample[23] + k[1]

	k[7] = sample[62] - sample[46] + k[2]
	k[8] = sample[63] - sample[47] + k[3]

	k[9] = sample[20] - sample[36] + k[3]
	k[10] = sample[21] - sample[37] + k[4]
	return k
}

// Stream decodes bytes with a KeySchedule. The key index starts at zero and
// advances by one per decoded byte; a Stream lives for exactly one decode
// scope (the whole directory, or one file's content).
type Stream struct {
	keys *KeySchedule
	k    int
}

// NewStream returns a stream positioned at key index 0.
func (ks *KeySchedule) NewStream() *Stream {
	return &Stream{keys: ks}
}

// Next decodes one raw byte.
func (s *Stream) Next(raw byte) byte {
	b := raw - s.keys[s.k]
	s.k++
	if s.k == KeyLen {
		s.k = 0
	}
	return b
}

// Uint32 decodes four raw bytes as a little-endian uint32.
func (s *Stream) Uint32(raw []byte) uint32 {
	b0 := s.Next(raw[0])
	b1 := s.Next(raw[1])
	b2 := s.Next(raw[2])
	b3 := s.Next(raw[3])
	return uint32(b3)<<24 | uint32(b2)<<16 | uint32(b1)<<8 | uint32(b0)
}

// Decode decodes src into dst, which must be at least as long as src.
func (s *Stream) Decode(dst, src []byte) {
	for i, b := range src {
		dst[i] = s.Next(b)
	}
}
