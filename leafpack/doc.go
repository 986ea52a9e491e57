/*
Package leafpack reads LEAFPACK archives, the keyed container used by the
Leaf visual-novel engine for its LVNS3DAT.PAK and LVNS3SCN.PAK files.

An archive is laid out as

	magic "LEAFPACK" (8 bytes) | file count (u16LE) | file data ... | directory

where the directory is fileCount 24-byte slots at the very end of the
file. Every directory byte and every content byte is stored as
plain+key[k] (mod 256) over an 11-byte key that is never written to the
file: it is recovered from known-plaintext positions in the first three
directory slots.

Reading an archive:

	arc, err := leafpack.Open(buf)
	if err != nil {
		return err
	}
	for _, e := range arc.Entries {
		f := arc.Extract(e)
		os.WriteFile(e.Name, f.Data, 0644)
	}

The key index runs continuously across the whole directory but restarts
at zero for every file's content, see [Stream].
*/
package leafpack
