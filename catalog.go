package linguist

import (
	"strconv"
	"strings"
	"sync"

	"github.com/cdmanager/go-linguist/pluralforms"
)

type msgKey struct {
	context string
	source  string
	comment string
}

type entry struct {
	text  string
	forms []string
}

// tscatalog is the runtime lookup table built from one File.
type tscatalog struct {
	language string
	rule     pluralforms.Rule
	messages map[msgKey]entry
}

// newTSCatalog indexes the usable translations of f. Retired messages
// and empty translations are left out so lookups fall through to the
// next catalog or the source text. The first of several entries for a
// key wins.
func newTSCatalog(f *File, includeUnfinished bool) *tscatalog {
	cat := &tscatalog{
		language: f.Language,
		rule:     pluralforms.ForLanguage(f.Language),
		messages: make(map[msgKey]entry),
	}
	for _, c := range f.Contexts {
		for _, m := range c.Messages {
			if m.Status.Retired() || (m.Status == Unfinished && !includeUnfinished) {
				continue
			}
			e := entry{text: m.Text()}
			if m.Numerus {
				e.forms = m.NumerusForms
			}
			if e.text == "" {
				continue
			}
			key := msgKey{c.Name, m.Source, m.Comment}
			if prev, ok := cat.messages[key]; ok {
				if prev.text != e.text {
					Logger.Debug().
						Str("locale", f.Language).
						Str("context", c.Name).
						Str("source", m.Source).
						Msg("Ignoring conflicting duplicate translation")
				}
				continue
			}
			cat.messages[key] = e
		}
	}
	return cat
}

func (cat *tscatalog) size() int {
	return len(cat.messages)
}

// Catalog of translations for a list of locales, most preferred first.
// A Catalog is immutable and safe for concurrent use.
type Catalog struct {
	cats []*tscatalog

	// missing is non-nil in strict mode and deduplicates warnings.
	missing *sync.Map
}

func (c Catalog) find(context, source, comment string) (entry, *tscatalog, bool) {
	key := msgKey{context, source, comment}
	for _, cat := range c.cats {
		if e, ok := cat.messages[key]; ok {
			return e, cat, true
		}
	}
	return entry{}, nil, false
}

// Language returns the language of the most preferred loaded catalog,
// or "" when no catalog is loaded.
func (c Catalog) Language() string {
	if len(c.cats) == 0 {
		return ""
	}
	return c.cats[0].language
}

// Languages returns the languages of the chained catalogs in lookup order.
func (c Catalog) Languages() []string {
	langs := make([]string, 0, len(c.cats))
	for _, cat := range c.cats {
		langs = append(langs, cat.language)
	}
	return langs
}

// Lookup returns the raw translation of source in context, without
// placeholder substitution.
func (c Catalog) Lookup(context, source, disambiguation string) (string, bool) {
	e, _, ok := c.find(context, source, disambiguation)
	return e.text, ok
}

// Tr translates source within context and substitutes positional
// placeholders with args. A missing translation falls back to source.
func (c Catalog) Tr(context, source string, args ...interface{}) string {
	return c.TrD(context, source, "", args...)
}

// TrD is Tr for a message disambiguated by a comment, for identical
// source strings used with different meanings in one context.
func (c Catalog) TrD(context, source, disambiguation string, args ...interface{}) string {
	e, _, ok := c.find(context, source, disambiguation)
	if !ok {
		return Format(c.missed(context, source, disambiguation), args...)
	}
	return Format(e.text, args...)
}

// TrN translates a numerus message. The plural form is chosen by the
// plural rule of the catalog that holds the translation, and "%n" is
// replaced by n before placeholders are substituted.
func (c Catalog) TrN(context, source, disambiguation string, n int, args ...interface{}) string {
	text := ""
	if e, cat, ok := c.find(context, source, disambiguation); ok {
		text = e.text
		if len(e.forms) > 0 {
			idx := cat.rule.Index(n)
			if idx >= len(e.forms) {
				idx = len(e.forms) - 1
			}
			text = e.forms[idx]
		}
	}
	if text == "" {
		text = c.missed(context, source, disambiguation)
	}
	text = strings.ReplaceAll(text, "%n", strconv.Itoa(n))
	return Format(text, args...)
}

// missed returns the fallback text for a missing translation.
func (c Catalog) missed(context, source, disambiguation string) string {
	if c.missing == nil {
		return source
	}
	logMissingOnce(c.missing, c.Language(), buildLogKey(context, source, disambiguation))
	return "⟦" + source + "⟧"
}
