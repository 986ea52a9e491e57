package main

import (
	"bytes"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"LeafTools/internal/leaftest"
	"LeafTools/leafpack"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKeys = [11]byte{0x21, 0x9F, 0x03, 0xE0, 0x47, 0x11, 0xC2, 0x5D, 0x80, 0x0B, 0xFE}

// testImage is a 2x2 image, stored rows (bottom first) 1 2 / 3 0.
func testImage() []byte {
	palette := []color.RGBA{{}, {R: 255}, {G: 255}, {B: 255}}
	stream := leaftest.Stream(leaftest.Lit(1), leaftest.Lit(2), leaftest.Lit(3), leaftest.Lit(0))
	return leaftest.Image(2, 2, 0, palette, stream)
}

func writeTestArchive(t *testing.T) string {
	t.Helper()
	buf := leaftest.Archive(testKeys, []leaftest.File{
		{Name: "C0101", Ext: "LF2", Data: testImage()},
		{Name: "START", Ext: "SCN", Data: []byte("scenario text")},
		{Name: "BROKEN", Ext: "LF2", Data: []byte("not an image")},
		{Name: "COPY", Ext: "SCN", Data: []byte("scenario text")},
	})
	path := filepath.Join(t.TempDir(), "LVNS3TST.PAK")
	require.NoError(t, os.WriteFile(path, buf, 0644))
	return path
}

func testConfig() *Config {
	cfg := defaultConfig()
	cfg.FileCounts = nil
	cfg.Workers = 2
	return cfg
}

func TestListBundle(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, listBundle(writeTestArchive(t), testConfig(), &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 7)
	assert.Equal(t, "4 files.", lines[0])
	assert.Equal(t, "FileName\tPosition\tLength\tNextPosition\tXXH64", lines[1])
	assert.True(t, strings.HasPrefix(lines[3], "C0101.LF2\t10\t"))
	assert.True(t, strings.HasPrefix(lines[4], "START.SCN\t"))

	// identical content, identical checksum
	sum := func(line string) string { f := strings.Split(line, "\t"); return f[len(f)-1] }
	assert.Equal(t, sum(lines[4]), sum(lines[6]))
}

func TestListBundleRejectsUnknownVariant(t *testing.T) {
	cfg := testConfig()
	cfg.FileCounts = []int{584, 993}
	err := listBundle(writeTestArchive(t), cfg, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported variant")
}

func TestExtractBundle(t *testing.T) {
	out := t.TempDir()
	cfg := testConfig()
	require.NoError(t, extractBundle(writeTestArchive(t), out, `\.SCN$`, cfg))

	data, err := os.ReadFile(filepath.Join(out, "START.SCN"))
	require.NoError(t, err)
	assert.Equal(t, "scenario text", string(data))

	_, err = os.Stat(filepath.Join(out, "C0101.LF2"))
	assert.True(t, os.IsNotExist(err))
}

func TestExtractBundleConvert(t *testing.T) {
	out := t.TempDir()
	cfg := testConfig()
	cfg.ConvertImages = true
	cfg.RowOrder = "exact"

	err := extractBundle(writeTestArchive(t), out, "", cfg)
	require.Error(t, err, "BROKEN.LF2 is not an image")
	assert.Contains(t, err.Error(), "1 images")

	raw, err := os.ReadFile(filepath.Join(out, "C0101.LF2"))
	require.NoError(t, err)
	assert.Equal(t, testImage(), raw)

	img, err := imgio.Open(filepath.Join(out, "C0101.png"))
	require.NoError(t, err)
	assert.Equal(t, 2, img.Bounds().Dx())
	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, [4]uint32{0, 0, 0xffff, 0xffff}, [4]uint32{r, g, b, a})
	_, _, _, a = img.At(1, 0).RGBA()
	assert.Zero(t, a)

	_, err = os.Stat(filepath.Join(out, "BROKEN.LF2"))
	assert.NoError(t, err)
}

func TestExtractSingleFile(t *testing.T) {
	archive := writeTestArchive(t)
	out := t.TempDir()
	cfg := testConfig()

	require.NoError(t, extractSingleFile(archive, 1, filepath.Join(out, "a", "start.scn"), cfg))
	data, err := os.ReadFile(filepath.Join(out, "a", "start.scn"))
	require.NoError(t, err)
	assert.Equal(t, "scenario text", string(data))

	require.NoError(t, extractSingleFile(archive, 0, filepath.Join(out, "c0101.png"), cfg))
	_, err = imgio.Open(filepath.Join(out, "c0101.png"))
	assert.NoError(t, err)

	assert.Error(t, extractSingleFile(archive, 4, filepath.Join(out, "x"), cfg))
	assert.Error(t, extractSingleFile(archive, 2, filepath.Join(out, "broken.png"), cfg))
}

func TestSafeName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"C0101.LF2", "C0101.LF2"},
		{"..", "0007.bin"},
		{"", "0007.bin"},
		{`A\B.LF2`, "0007.bin"},
		{"A/B.LF2", "0007.bin"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, safeName(&leafpack.Entry{Index: 7, Name: tt.name}))
	}
}
