package leafpack

// File is the decoded content of one entry.
type File struct {
	Entry *Entry
	Data  []byte
}

// Decode decodes the entry's payload with keys. The result is always
// exactly e.Length bytes; bytes missing from a truncated payload are zero.
func (e *Entry) Decode(keys *KeySchedule) []byte {
	data := make([]byte, e.Length)
	keys.NewStream().Decode(data, e.payload)
	return data
}

// Extract decodes one entry of the archive.
func (a *Archive) Extract(e *Entry) File {
	return File{Entry: e, Data: e.Decode(&a.Keys)}
}
