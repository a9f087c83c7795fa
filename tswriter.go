package linguist

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

const indent = "    "

var textEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"'", "&apos;",
	"\"", "&quot;",
)

// escapeText escapes s for element content the way lupdate does.
// Control characters other than tab and newline are written as
// character references, so a carriage return survives parsing.
func escapeText(s string) string {
	return escapeControls(textEscaper.Replace(s), func(r rune) bool {
		return r < 0x20 && r != '\t' && r != '\n'
	})
}

// escapeAttr escapes s for an attribute value, where every control
// character would otherwise be normalised away.
func escapeAttr(s string) string {
	return escapeControls(textEscaper.Replace(s), func(r rune) bool {
		return r < 0x20
	})
}

func escapeControls(s string, isControl func(rune) bool) string {
	if strings.IndexFunc(s, isControl) < 0 {
		return s
	}
	var b strings.Builder
	for _, r := range s {
		if isControl(r) {
			fmt.Fprintf(&b, "&#x%x;", r)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func writeElement(b *strings.Builder, depth int, name, content string) {
	fmt.Fprintf(b, "%s<%s>%s</%s>\n", strings.Repeat(indent, depth), name, escapeText(content), name)
}

func typeAttr(s Status) string {
	if s == Finished {
		return ""
	}
	return fmt.Sprintf(" type=%q", s.String())
}

func writeMessage(b *strings.Builder, m *Message) {
	b.WriteString(indent + "<message")
	if m.ID != "" {
		fmt.Fprintf(b, " id=\"%s\"", escapeAttr(m.ID))
	}
	if m.Numerus {
		b.WriteString(" numerus=\"yes\"")
	}
	b.WriteString(">\n")

	for _, loc := range m.Locations {
		b.WriteString(indent + indent + "<location")
		if loc.Filename != "" {
			fmt.Fprintf(b, " filename=\"%s\"", escapeAttr(loc.Filename))
		}
		if loc.Line != "" {
			fmt.Fprintf(b, " line=\"%s\"", escapeAttr(loc.Line))
		}
		b.WriteString("/>\n")
	}
	writeElement(b, 2, "source", m.Source)
	if m.OldSource != "" {
		writeElement(b, 2, "oldsource", m.OldSource)
	}
	if m.Comment != "" {
		writeElement(b, 2, "comment", m.Comment)
	}
	if m.ExtraComment != "" {
		writeElement(b, 2, "extracomment", m.ExtraComment)
	}
	if m.TranslatorComment != "" {
		writeElement(b, 2, "translatorcomment", m.TranslatorComment)
	}

	if m.Numerus {
		fmt.Fprintf(b, "%s<translation%s>\n", indent+indent, typeAttr(m.Status))
		for _, form := range m.NumerusForms {
			writeElement(b, 3, "numerusform", form)
		}
		b.WriteString(indent + indent + "</translation>\n")
	} else {
		fmt.Fprintf(b, "%s<translation%s>%s</translation>\n", indent+indent, typeAttr(m.Status), escapeText(m.Translation))
	}
	b.WriteString(indent + "</message>\n")
}

// WriteTo serialises f in the layout lupdate produces.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	b.WriteString("<?xml version=\"1.0\" encoding=\"utf-8\"?>\n<!DOCTYPE TS>\n")

	version := f.Version
	if version == "" {
		version = "2.1"
	}
	fmt.Fprintf(&b, "<TS version=\"%s\"", escapeAttr(version))
	if f.Language != "" {
		fmt.Fprintf(&b, " language=\"%s\"", escapeAttr(f.Language))
	}
	if f.SourceLanguage != "" {
		fmt.Fprintf(&b, " sourcelanguage=\"%s\"", escapeAttr(f.SourceLanguage))
	}
	b.WriteString(">\n")

	for _, c := range f.Contexts {
		b.WriteString("<context>\n")
		writeElement(&b, 1, "name", c.Name)
		if c.Comment != "" {
			writeElement(&b, 1, "comment", c.Comment)
		}
		for _, m := range c.Messages {
			writeMessage(&b, m)
		}
		b.WriteString("</context>\n")
	}
	b.WriteString("</TS>\n")

	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

// Sort orders contexts by name and messages by source, then
// disambiguation comment. Relative order of equal messages is kept.
func (f *File) Sort() {
	sort.SliceStable(f.Contexts, func(i, j int) bool {
		return f.Contexts[i].Name < f.Contexts[j].Name
	})
	for _, c := range f.Contexts {
		msgs := c.Messages
		sort.SliceStable(msgs, func(i, j int) bool {
			if msgs[i].Source != msgs[j].Source {
				return msgs[i].Source < msgs[j].Source
			}
			return msgs[i].Comment < msgs[j].Comment
		})
	}
}
