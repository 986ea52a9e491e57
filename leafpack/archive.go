package leafpack

import (
	"LeafTools/format"

	"github.com/apex/log"
	"github.com/apex/log/handlers/discard"
)

const (
	// Magic identifies a LEAFPACK archive.
	Magic = "LEAFPACK"
	// EntrySize is the size of one directory slot.
	EntrySize = 24

	headerSize = format.MagicSize + 2
)

// DefaultFileCounts are the file counts of the two known archives:
// LVNS3DAT.PAK (0x0248) and LVNS3SCN.PAK (0x03E1).
var DefaultFileCounts = []int{0x0248, 0x03e1}

// VariantFunc reports whether an archive with fileCount entries is a variant
// this package should decode.
type VariantFunc func(fileCount int) bool

// KnownFileCounts accepts exactly the given file counts.
func KnownFileCounts(counts ...int) VariantFunc {
	set := make(map[int]struct{}, len(counts))
	for _, c := range counts {
		set[c] = struct{}{}
	}
	return func(fileCount int) bool {
		_, ok := set[fileCount]
		return ok
	}
}

// AnyFileCount accepts every file count.
func AnyFileCount(int) bool { return true }

type options struct {
	variant VariantFunc
	logger  log.Interface
}

// Option configures Open.
type Option func(*options)

// WithVariant replaces the default file-count allow-list.
func WithVariant(fn VariantFunc) Option {
	return func(o *options) { o.variant = fn }
}

// WithLogger sets the diagnostic logger. The default discards everything.
func WithLogger(l log.Interface) Option {
	return func(o *options) { o.logger = l }
}

// Entry is one decoded directory slot.
type Entry struct {
	Index      int
	Name       string
	Offset     uint32
	Length     uint32
	NextOffset uint32
	// Truncated is set when [Offset, Offset+Length) runs past the archive.
	Truncated bool

	payload []byte // still encoded
}

// Payload returns the encoded bytes of the entry, possibly shorter than Length.
func (e *Entry) Payload() []byte {
	return e.payload
}

// Archive is an opened LEAFPACK buffer.
type Archive struct {
	Entries []*Entry
	Keys    KeySchedule

	logger log.Interface
}

// Open parses the directory of a LEAFPACK archive held in buf. buf is
// retained; entry payloads alias it.
func Open(buf []byte, opts ...Option) (*Archive, error) {
	o := options{
		variant: KnownFileCounts(DefaultFileCounts...),
		logger:  &log.Logger{Handler: discard.Default, Level: log.FatalLevel},
	}
	for _, opt := range opts {
		opt(&o)
	}

	magic, ok := format.Magic(buf)
	if !ok {
		return nil, format.Errorf(Magic, format.ErrTruncated, "%d bytes", len(buf))
	}
	if magic != Magic {
		return nil, format.Errorf(Magic, format.ErrBadMagic, "%q", magic)
	}
	if len(buf) < headerSize {
		return nil, format.Errorf(Magic, format.ErrTruncated, "no file count")
	}

	fileCount := int(format.Uint16At(buf, format.MagicSize))
	if !o.variant(fileCount) {
		return nil, format.Errorf(Magic, format.ErrUnsupportedVariant, "file count %d (0x%04x)", fileCount, fileCount)
	}
	if fileCount < 3 {
		return nil, format.Errorf(Magic, format.ErrTruncated, "%d entries, key needs 3", fileCount)
	}

	dirPos := len(buf) - fileCount*EntrySize
	if dirPos < headerSize {
		return nil, format.Errorf(Magic, format.ErrTruncated, "directory of %d entries does not fit in %d bytes", fileCount, len(buf))
	}

	keys := DeriveKeySchedule(buf[dirPos : dirPos+SampleSize])
	o.logger.WithFields(log.Fields{
		"files":     fileCount,
		"directory": dirPos,
		"keys":      keys,
	}).Debug("leafpack directory")

	a := &Archive{
		Entries: make([]*Entry, 0, fileCount),
		Keys:    keys,
		logger:  o.logger,
	}

	s := a.Keys.NewStream()
	var name [nameLen]byte
	for i := range fileCount {
		slot := buf[dirPos+i*EntrySize : dirPos+(i+1)*EntrySize]

		s.Decode(name[:], slot[:nameLen])
		e := &Entry{
			Index:      i,
			Name:       decodeName(name[:]),
			Offset:     s.Uint32(slot[12:16]),
			Length:     s.Uint32(slot[16:20]),
			NextOffset: s.Uint32(slot[20:24]),
		}

		start, end := uint64(e.Offset), uint64(e.Offset)+uint64(e.Length)
		if end > uint64(len(buf)) {
			e.Truncated = true
			end = uint64(len(buf))
			if start > end {
				start = end
			}
			o.logger.WithFields(log.Fields{
				"name":   e.Name,
				"offset": e.Offset,
				"length": e.Length,
			}).Warn("entry runs past end of archive")
		}
		e.payload = buf[start:end]

		a.Entries = append(a.Entries, e)
	}

	return a, nil
}
