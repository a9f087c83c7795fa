package linguist

import (
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// ErrNotTS is returned when a document's root element is not <TS>.
var ErrNotTS = errors.New("not a TS document")

// Status of a translation in a catalog.
type Status int

const (
	// Finished translations carry no type attribute.
	Finished Status = iota
	Unfinished
	Obsolete
	// Vanished is the Qt 5 spelling for a removed unfinished message.
	Vanished
)

func (s Status) String() string {
	switch s {
	case Unfinished:
		return "unfinished"
	case Obsolete:
		return "obsolete"
	case Vanished:
		return "vanished"
	}
	return "finished"
}

func parseStatus(typ string) (Status, error) {
	switch typ {
	case "":
		return Finished, nil
	case "unfinished":
		return Unfinished, nil
	case "obsolete":
		return Obsolete, nil
	case "vanished":
		return Vanished, nil
	}
	return Finished, fmt.Errorf("unknown translation type %q", typ)
}

// Retired reports whether the message is no longer referenced by the
// application.
func (s Status) Retired() bool {
	return s == Obsolete || s == Vanished
}

// Location records where a message was found in the application sources.
type Location struct {
	Filename string
	Line     string
}

// Message is one source string and its translation.
type Message struct {
	ID                string
	Source            string
	OldSource         string
	Comment           string
	ExtraComment      string
	TranslatorComment string
	Numerus           bool
	Translation       string
	NumerusForms      []string
	Status            Status
	Locations         []Location
}

// Text returns the translation, or the first numerus form of a numerus
// message.
func (m *Message) Text() string {
	if m.Numerus {
		if len(m.NumerusForms) == 0 {
			return ""
		}
		return m.NumerusForms[0]
	}
	return m.Translation
}

// Context groups the messages of one UI component.
type Context struct {
	Name     string
	Comment  string
	Messages []*Message
}

// File is a parsed .ts catalog.
type File struct {
	Version        string
	Language       string
	SourceLanguage string
	Contexts       []*Context
}

// Context returns the named context, or nil.
func (f *File) Context(name string) *Context {
	for _, c := range f.Contexts {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// xml mapping of the TS schema

type xmlLocation struct {
	Filename string `xml:"filename,attr"`
	Line     string `xml:"line,attr"`
}

type xmlTranslation struct {
	Type  string   `xml:"type,attr"`
	Text  string   `xml:",chardata"`
	Forms []string `xml:"numerusform"`
}

type xmlMessage struct {
	ID                string         `xml:"id,attr"`
	Numerus           string         `xml:"numerus,attr"`
	Locations         []xmlLocation  `xml:"location"`
	Source            string         `xml:"source"`
	OldSource         string         `xml:"oldsource"`
	Comment           string         `xml:"comment"`
	ExtraComment      string         `xml:"extracomment"`
	TranslatorComment string         `xml:"translatorcomment"`
	Translation       xmlTranslation `xml:"translation"`
}

type xmlContext struct {
	Name     string       `xml:"name"`
	Comment  string       `xml:"comment"`
	Messages []xmlMessage `xml:"message"`
}

type xmlTS struct {
	XMLName        xml.Name     `xml:"TS"`
	Version        string       `xml:"version,attr"`
	Language       string       `xml:"language,attr"`
	SourceLanguage string       `xml:"sourcelanguage,attr"`
	Contexts       []xmlContext `xml:"context"`
}

// ParseTS parses a Qt Linguist .ts document.
//
// String content is kept verbatim: escape sequences such as a literal
// backslash-n are not interpreted.
func ParseTS(r io.Reader) (*File, error) {
	dec := xml.NewDecoder(r)
	dec.CharsetReader = charset.NewReaderLabel

	var doc xmlTS
	if err := dec.Decode(&doc); err != nil {
		var unexpected xml.UnmarshalError
		if errors.As(err, &unexpected) && strings.Contains(string(unexpected), "expected element type <TS>") {
			return nil, fmt.Errorf("%w: %v", ErrNotTS, err)
		}
		if err == io.EOF {
			return nil, fmt.Errorf("%w: empty document", ErrNotTS)
		}
		return nil, fmt.Errorf("cannot decode catalog: %w", err)
	}
	if err := checkTrailing(dec); err != nil {
		return nil, fmt.Errorf("cannot decode catalog: %w", err)
	}

	f := &File{
		Version:        doc.Version,
		Language:       doc.Language,
		SourceLanguage: doc.SourceLanguage,
		Contexts:       make([]*Context, 0, len(doc.Contexts)),
	}
	for _, xc := range doc.Contexts {
		c := &Context{
			Name:     xc.Name,
			Comment:  xc.Comment,
			Messages: make([]*Message, 0, len(xc.Messages)),
		}
		for i, xm := range xc.Messages {
			status, err := parseStatus(xm.Translation.Type)
			if err != nil {
				return nil, fmt.Errorf("context %q message %d: %w", xc.Name, i, err)
			}
			m := &Message{
				ID:                xm.ID,
				Source:            xm.Source,
				OldSource:         xm.OldSource,
				Comment:           xm.Comment,
				ExtraComment:      xm.ExtraComment,
				TranslatorComment: xm.TranslatorComment,
				Numerus:           xm.Numerus == "yes",
				Status:            status,
			}
			if m.Numerus {
				m.NumerusForms = xm.Translation.Forms
			} else {
				m.Translation = xm.Translation.Text
			}
			for _, loc := range xm.Locations {
				m.Locations = append(m.Locations, Location(loc))
			}
			c.Messages = append(c.Messages, m)
		}
		f.Contexts = append(f.Contexts, c)
	}
	return f, nil
}

// checkTrailing reads the rest of the document after the root element.
// Only whitespace, comments and processing instructions may follow it.
func checkTrailing(dec *xml.Decoder) error {
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		switch tok := tok.(type) {
		case xml.Comment, xml.ProcInst:
		case xml.CharData:
			if len(bytes.TrimSpace(tok)) != 0 {
				return fmt.Errorf("text after </TS> at offset %d", dec.InputOffset())
			}
		default:
			return fmt.Errorf("content after </TS> at offset %d", dec.InputOffset())
		}
	}
}

// ParseTSBytes is ParseTS over an in-memory document.
func ParseTSBytes(data []byte) (*File, error) {
	return ParseTS(bytes.NewReader(data))
}
