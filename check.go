package linguist

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cdmanager/go-linguist/pluralforms"
)

// ProblemKind classifies a catalog problem found by Check.
type ProblemKind string

const (
	PlaceholderMismatch  ProblemKind = "placeholders"
	ConflictingDuplicate ProblemKind = "duplicate"
	NumerusFormCount     ProblemKind = "numerus"
	EmptyTranslation     ProblemKind = "empty"
)

// Problem is a data quality issue in one message.
type Problem struct {
	Kind    ProblemKind
	Context string
	Source  string
	Detail  string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s: %q: %s", p.Kind, p.Context, p.Source, p.Detail)
}

func formatIndexes(set map[int]bool) string {
	idx := make([]int, 0, len(set))
	for i := range set {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	parts := make([]string, len(idx))
	for i, n := range idx {
		parts[i] = fmt.Sprintf("{%d}", n)
	}
	return "[" + strings.Join(parts, " ") + "]"
}

func sameIndexes(a, b map[int]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !b[i] {
			return false
		}
	}
	return true
}

// Check reports problems the catalog format itself does not prevent:
// translations whose placeholders differ from the source's, conflicting
// duplicate entries, numerus messages with the wrong number of forms for
// the catalog language, and finished messages without a translation.
// Retired messages are not checked.
func Check(f *File) []Problem {
	var problems []Problem
	rule := pluralforms.ForLanguage(f.Language)

	for _, c := range f.Contexts {
		first := make(map[msgKey]*Message)
		for _, m := range c.Messages {
			if m.Status.Retired() {
				continue
			}
			report := func(kind ProblemKind, format string, args ...interface{}) {
				problems = append(problems, Problem{
					Kind:    kind,
					Context: c.Name,
					Source:  m.Source,
					Detail:  fmt.Sprintf(format, args...),
				})
			}

			key := msgKey{c.Name, m.Source, m.Comment}
			if prev, ok := first[key]; ok {
				if prev.Text() != m.Text() {
					report(ConflictingDuplicate, "translated both %q and %q", prev.Text(), m.Text())
				}
				continue
			}
			first[key] = m

			texts := []string{m.Translation}
			if m.Numerus {
				texts = m.NumerusForms
				if m.Status == Finished && len(m.NumerusForms) != rule.Forms {
					report(NumerusFormCount, "has %d forms, %s needs %d", len(m.NumerusForms), f.Language, rule.Forms)
				}
			}
			if m.Status == Finished && m.Text() == "" {
				report(EmptyTranslation, "finished without a translation")
				continue
			}

			want := placeholders(m.Source)
			for _, text := range texts {
				if text == "" {
					continue
				}
				if got := placeholders(text); !sameIndexes(want, got) {
					report(PlaceholderMismatch, "source uses %s, translation uses %s", formatIndexes(want), formatIndexes(got))
					break
				}
			}
		}
	}
	return problems
}

// Stats counts the messages of a catalog by status.
type Stats struct {
	Contexts   int
	Messages   int
	Finished   int
	Unfinished int
	Obsolete   int
	Vanished   int
}

// Stats counts the messages of f by status.
func (f *File) Stats() Stats {
	s := Stats{Contexts: len(f.Contexts)}
	for _, c := range f.Contexts {
		for _, m := range c.Messages {
			s.Messages++
			switch m.Status {
			case Finished:
				s.Finished++
			case Unfinished:
				s.Unfinished++
			case Obsolete:
				s.Obsolete++
			case Vanished:
				s.Vanished++
			}
		}
	}
	return s
}
