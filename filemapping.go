package linguist

import (
	"io"
	"os"
	"runtime"
)

// fileMapping holds the raw bytes of a catalog file, either mapped into
// memory or read in full. Parsed catalogs copy what they keep, so a
// mapping is released as soon as parsing finishes.
type fileMapping struct {
	data []byte

	isMapped bool
}

func (m *fileMapping) Close() error {
	runtime.SetFinalizer(m, nil)
	if !m.isMapped {
		return nil
	}
	m.isMapped = false
	return m.closeMapping()
}

func openMapping(f *os.File) (*fileMapping, error) {
	m := new(fileMapping)

	if err := m.tryMap(f); err == nil && m.isMapped {
		runtime.SetFinalizer(m, (*fileMapping).Close)
		return m, nil
	}
	// Pipes, empty files and platforms without mmap are read into
	// memory instead. tryMap never consumes f.
	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	m.data = data
	return m, nil
}
