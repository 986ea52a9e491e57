package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"LeafTools/leafpack"

	"github.com/apex/log"
	"github.com/cespare/xxhash/v2"
)

// openBundle reads an archive from disk and decodes its file table.
func openBundle(bundlePath string, cfg *Config) (*leafpack.Archive, error) {
	buf, err := os.ReadFile(bundlePath)
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", bundlePath, err)
	}

	archive, err := leafpack.Open(buf,
		leafpack.WithVariant(cfg.variant()),
		leafpack.WithLogger(log.WithField("archive", filepath.Base(bundlePath))),
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", bundlePath, err)
	}
	return archive, nil
}

// printFileTable writes the file table with a checksum of each decoded entry.
func printFileTable(w io.Writer, archive *leafpack.Archive) {
	fmt.Fprintf(w, "%d files.\n", len(archive.Entries))
	fmt.Fprintln(w, "FileName\tPosition\tLength\tNextPosition\tXXH64")
	fmt.Fprintln(w, strings.Repeat("-", 42))

	for _, entry := range archive.Entries {
		sum := xxhash.Sum64(archive.Extract(entry).Data)
		mark := ""
		if entry.Truncated {
			mark = "\t(truncated)"
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%016x%s\n",
			entry.Name, entry.Offset, entry.Length, entry.NextOffset, sum, mark)
	}
}

// safeName keeps a decoded entry name inside the output folder.
func safeName(entry *leafpack.Entry) string {
	name := entry.Name
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\:`) {
		return fmt.Sprintf("%04d.bin", entry.Index)
	}
	return name
}
