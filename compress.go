package linguist

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

var (
	gzipMagic = []byte{0x1f, 0x8b}
	zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}
)

// compressedSuffixes are probed, in order, when a catalog path does not
// exist as given.
var compressedSuffixes = []string{".gz", ".zst"}

// openCompressed returns a reader over data, transparently
// decompressing gzip and zstd payloads.
func openCompressed(data []byte) (io.ReadCloser, error) {
	switch {
	case bytes.HasPrefix(data, gzipMagic):
		r, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("cannot open gzip stream: %w", err)
		}
		return r, nil
	case bytes.HasPrefix(data, zstdMagic):
		d, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("cannot open zstd stream: %w", err)
		}
		return d.IOReadCloser(), nil
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

// openCatalogFile opens path, or the first compressed variant of it
// that exists.
func openCatalogFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if err == nil || !os.IsNotExist(err) {
		return f, err
	}
	for _, suffix := range compressedSuffixes {
		f, serr := os.Open(path + suffix)
		if serr == nil {
			return f, nil
		}
		if !os.IsNotExist(serr) {
			return nil, serr
		}
	}
	return nil, err
}

// ReadFile loads and parses a catalog from disk. Compressed catalogs
// (.ts.gz, .ts.zst) are detected by their magic number.
func ReadFile(path string) (*File, error) {
	f, err := openCatalogFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := openMapping(f)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer m.Close()

	r, err := openCompressed(m.data)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}
	defer r.Close()

	file, err := ParseTS(r)
	if err != nil {
		return nil, fmt.Errorf("cannot parse %s: %w", path, err)
	}
	return file, nil
}
