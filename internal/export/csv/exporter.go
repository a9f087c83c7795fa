package csv

import (
	"bytes"
	"encoding/csv"
	"strings"

	"github.com/cdmanager/go-linguist"
)

// Exporter writes one row per message: context, source, comment,
// translation and status. Numerus forms are joined with '|'.
type Exporter struct {
	// Comma is the field separator, ',' when zero.
	Comma rune
}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "csv" }

func (e *Exporter) Export(f *linguist.File) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if e.Comma != 0 {
		w.Comma = e.Comma
	}
	_ = w.Write([]string{"context", "source", "comment", "translation", "status"})
	for _, c := range f.Contexts {
		for _, m := range c.Messages {
			if m.Status.Retired() {
				continue
			}
			v := m.Translation
			if m.Numerus {
				v = strings.Join(m.NumerusForms, "|")
			}
			_ = w.Write([]string{c.Name, m.Source, m.Comment, v, m.Status.String()})
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}
