package yaml

import (
	"github.com/goccy/go-yaml"

	"github.com/cdmanager/go-linguist"
)

// Exporter writes a context → source → translation mapping, keeping
// catalog order. A disambiguated source is keyed "source|comment";
// numerus messages map to the list of their forms. Untranslated
// messages map to null.
type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "yaml" }

func (e *Exporter) Export(f *linguist.File) ([]byte, error) {
	doc := yaml.MapSlice{}
	for _, c := range f.Contexts {
		messages := yaml.MapSlice{}
		for _, m := range c.Messages {
			if m.Status.Retired() {
				continue
			}
			key := m.Source
			if m.Comment != "" {
				key += "|" + m.Comment
			}
			var value interface{}
			switch {
			case m.Status != linguist.Finished:
			case m.Numerus:
				value = m.NumerusForms
			case m.Translation != "":
				value = m.Translation
			}
			messages = append(messages, yaml.MapItem{Key: key, Value: value})
		}
		if len(messages) == 0 {
			continue
		}
		doc = append(doc, yaml.MapItem{Key: c.Name, Value: messages})
	}
	return yaml.Marshal(doc)
}
