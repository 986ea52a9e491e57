// Package lf2 decodes LEAF256 (.LF2) images: 8-bit palettized pictures
// compressed with an LZSS variant over a 4 KiB ring buffer, rows stored
// bottom first.
package lf2
