package po

import (
	"fmt"

	"github.com/leonelquinteros/gotext"

	"github.com/cdmanager/go-linguist"
	"github.com/cdmanager/go-linguist/pluralforms"
)

// Exporter writes a GNU gettext PO file. The context becomes msgctxt
// and the disambiguation comment is appended to it after '|', as
// gettext has no separate field for it. Unfinished messages are
// exported untranslated.
type Exporter struct{}

func New() *Exporter { return &Exporter{} }

func (e *Exporter) Format() string { return "po" }

func msgctxt(context, comment string) string {
	if comment == "" {
		return context
	}
	return context + "|" + comment
}

func (e *Exporter) Export(f *linguist.File) ([]byte, error) {
	po := gotext.NewPo()
	domain := po.GetDomain()
	rule := pluralforms.ForLanguage(f.Language)
	if domain.Headers == nil {
		domain.Headers = make(gotext.HeaderMap)
	}
	domain.Headers.Set("Content-Type", "text/plain; charset=UTF-8")
	domain.Headers.Set("Language", f.Language)
	domain.Headers.Set("Plural-Forms", fmt.Sprintf("nplurals=%d; plural=%s;", rule.Forms, rule.Expr))
	domain.Language = f.Language

	for _, c := range f.Contexts {
		for _, m := range c.Messages {
			if m.Status.Retired() {
				continue
			}
			ctx := msgctxt(c.Name, m.Comment)
			if !m.Numerus {
				text := m.Translation
				if m.Status == linguist.Unfinished {
					text = ""
				}
				po.SetC(m.Source, ctx, text)
				continue
			}
			for i := 0; i < rule.Forms; i++ {
				text := ""
				if i < len(m.NumerusForms) && m.Status == linguist.Finished {
					text = m.NumerusForms[i]
				}
				po.SetNC(m.Source, m.Source, ctx, i, text)
			}
		}
	}
	return po.MarshalText()
}
