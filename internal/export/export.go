// Package export converts catalogs to formats other tools consume.
package export

import (
	"errors"
	"fmt"
	"sort"

	"github.com/cdmanager/go-linguist"
)

var ErrUnknownFormat = errors.New("unknown export format")

// Exporter serialises a catalog in one format. Retired messages are
// not exported.
type Exporter interface {
	Format() string
	Export(f *linguist.File) ([]byte, error)
}

type Registry struct{ byFormat map[string]Exporter }

func New() *Registry { return &Registry{byFormat: map[string]Exporter{}} }

func (r *Registry) Register(e Exporter) { r.byFormat[e.Format()] = e }

func (r *Registry) Get(format string) (Exporter, bool) { e, ok := r.byFormat[format]; return e, ok }

// Formats lists the registered format names, sorted.
func (r *Registry) Formats() []string {
	formats := make([]string, 0, len(r.byFormat))
	for format := range r.byFormat {
		formats = append(formats, format)
	}
	sort.Strings(formats)
	return formats
}

// Export runs the exporter registered for format.
func (r *Registry) Export(format string, f *linguist.File) ([]byte, error) {
	e, ok := r.Get(format)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownFormat, format)
	}
	return e.Export(f)
}
