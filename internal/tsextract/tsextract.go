// Package tsextract collects translatable strings from Go sources into
// a Qt Linguist catalog template.
package tsextract

import (
	"errors"
	"go/ast"
	"go/parser"
	"go/token"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/cdmanager/go-linguist"
)

var (
	ErrNotString  = errors.New("not a string constant")
	ErrBadKeyword = errors.New("bad keyword")
	ErrOutOfRange = errors.New("argument index out of range")
)

// stringConstant evaluates an ast.Expr representing a string constant
//
// Concatenations and parenthesised constants are folded.
func stringConstant(expr ast.Expr) (string, error) {
	switch val := expr.(type) {
	case *ast.BasicLit:
		if val.Kind != token.STRING {
			return "", ErrNotString
		}
		s, err := strconv.Unquote(val.Value)
		if err != nil {
			return "", err
		}
		return s, nil
	// Support simple string concatenation
	case *ast.BinaryExpr:
		// we only support string concat
		if val.Op != token.ADD {
			return "", ErrNotString
		}
		left, err := stringConstant(val.X)
		if err != nil {
			return "", err
		}
		right, err := stringConstant(val.Y)
		if err != nil {
			return "", err
		}
		return left + right, nil
	// Support parenthesised expressions
	case *ast.ParenExpr:
		return stringConstant(val.X)
	}
	return "", ErrNotString
}

// Keyword describes a translation function: which call arguments hold
// the context, the source text and the disambiguation comment, and
// whether the call takes a count.
type Keyword struct {
	name, pkg                       string
	source, context, comment, count int
}

// ParseKeyword parses a keyword spec of the form [PKG.]FUNC[:ARG,...].
// Each ARG is a 1-based argument position: plain for the source text,
// suffixed with 'c' for the context, 'd' for the disambiguation comment
// and 'n' for the count of a numerus message.
func ParseKeyword(spec string) (*Keyword, error) {
	idx := strings.IndexByte(spec, ':')
	var function, pkg string
	var args []string
	if idx >= 0 {
		function = spec[:idx]
		args = strings.Split(spec[idx+1:], ",")
	} else {
		function = spec
	}
	if function == "" {
		return nil, ErrBadKeyword
	}

	idx = strings.IndexByte(function, '.')
	if idx >= 0 {
		pkg = function[:idx]
		function = function[idx+1:]
		if strings.IndexByte(function, '.') >= 0 {
			return nil, ErrBadKeyword
		}
	}

	k := &Keyword{
		name:    function,
		pkg:     pkg,
		source:  0,
		context: -1,
		comment: -1,
		count:   -1,
	}

	sources := 0
	for _, arg := range args {
		if arg == "" {
			return nil, ErrBadKeyword
		}
		var target *int
		switch arg[len(arg)-1] {
		case 'c':
			target = &k.context
		case 'd':
			target = &k.comment
		case 'n':
			target = &k.count
		}
		if target != nil {
			arg = arg[:len(arg)-1]
		} else {
			if sources > 0 {
				return nil, ErrBadKeyword
			}
			sources++
			target = &k.source
		}

		val, err := strconv.Atoi(arg)
		if err != nil {
			return nil, err
		}
		if val < 1 {
			return nil, ErrBadKeyword
		}
		*target = val - 1
	}

	return k, nil
}

func (k *Keyword) Match(call *ast.CallExpr) bool {
	var pkg, name string

	switch e := call.Fun.(type) {
	case *ast.Ident:
		name = e.Name
	case *ast.SelectorExpr:
		name = e.Sel.Name
		if ident, ok := e.X.(*ast.Ident); ok {
			pkg = ident.Name
		}
	default:
		return false
	}

	if name != k.name {
		return false
	}
	// If the keyword includes a package qualifier, make sure it matches
	return k.pkg == "" || k.pkg == pkg
}

func (k *Keyword) argument(call *ast.CallExpr, idx int) (string, error) {
	if idx < 0 {
		return "", nil
	}
	if idx >= len(call.Args) {
		return "", ErrOutOfRange
	}
	return stringConstant(call.Args[idx])
}

// Extract reads the message of a matching call. A context or comment
// that is not a string constant makes the call unusable.
func (k *Keyword) Extract(call *ast.CallExpr) (msg Message, err error) {
	if msg.source, err = k.argument(call, k.source); err != nil {
		return Message{}, err
	}
	if msg.context, err = k.argument(call, k.context); err != nil {
		return Message{}, err
	}
	if msg.comment, err = k.argument(call, k.comment); err != nil {
		return Message{}, err
	}
	if k.count >= 0 {
		if k.count >= len(call.Args) {
			return Message{}, ErrOutOfRange
		}
		msg.numerus = true
	}
	return msg, nil
}

// Message identifies an extracted string.
type Message struct {
	context string
	source  string
	comment string
	numerus bool
}

func (m *Message) Less(other *Message) bool {
	if m.context != other.context {
		return m.context < other.context
	}
	if m.source != other.source {
		return m.source < other.source
	}
	return m.comment < other.comment
}

type Location struct {
	file     string
	line     int
	comments string
}

type visitor struct {
	*Extractor

	fset *token.FileSet
	file *ast.File
}

func commentGroupContent(cg *ast.CommentGroup) string {
	var lines []string
	for _, comment := range cg.List {
		for _, line := range strings.Split(comment.Text, "\n") {
			line = strings.TrimPrefix(line, "//")
			line = strings.TrimPrefix(line, "/*")
			line = strings.TrimSuffix(line, "*/")
			line = strings.TrimSpace(line)
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return strings.Join(lines, "\n")
}

func (v *visitor) findCommentsBefore(pos token.Position) string {
	for i := len(v.file.Comments) - 1; i >= 0; i-- {
		cg := v.file.Comments[i]
		cgPos := v.fset.Position(cg.End())
		if cgPos.Line+1 == pos.Line {
			return commentGroupContent(cg)
		}
	}
	return ""
}

func (v *visitor) Visit(node ast.Node) ast.Visitor {
	// We're only interested in calls
	call, ok := node.(*ast.CallExpr)
	if !ok {
		return v
	}

	for _, k := range v.Keywords {
		if !k.Match(call) {
			continue
		}

		msg, err := k.Extract(call)
		if err != nil {
			break
		}
		if k.context < 0 {
			msg.context = v.DefaultContext
		}

		pos := v.fset.Position(node.Pos())
		var comments string
		if len(v.CommentTags) != 0 {
			comments = v.findCommentsBefore(pos)
			keep := false
			for _, tag := range v.CommentTags {
				if strings.HasPrefix(comments, tag) {
					keep = true
					break
				}
			}
			if !keep {
				comments = ""
			}
		}

		if _, seen := v.Messages[msg]; !seen {
			v.order = append(v.order, msg)
		}
		v.Messages[msg] = append(v.Messages[msg], Location{
			file:     pos.Filename,
			line:     pos.Line,
			comments: comments,
		})
		break
	}
	return v
}

// Extractor accumulates the messages of the parsed files.
type Extractor struct {
	Messages    map[Message][]Location
	Keywords    []*Keyword
	CommentTags []string
	Directories []string
	SortOutput  bool
	NoLocation  bool

	// DefaultContext is used for keywords without a context argument.
	DefaultContext string
	// SourceLanguage and Language are written to the template header.
	SourceLanguage string
	Language       string

	order []Message
}

func (e *Extractor) AddDefaultKeywords() {
	for _, spec := range []string{
		"Tr:1c,2",
		"TrD:1c,2,3d",
		"TrN:1c,2,3d,4n",
	} {
		kw, err := ParseKeyword(spec)
		if err != nil {
			panic(err)
		}
		e.Keywords = append(e.Keywords, kw)
	}
}

func (e *Extractor) openFile(filename string) (f *os.File, err error) {
	if len(e.Directories) == 0 || filepath.IsAbs(filename) {
		return os.Open(filename)
	}
	for _, dir := range e.Directories {
		f, err = os.Open(filepath.Join(dir, filename))
		if !os.IsNotExist(err) {
			break
		}
	}
	return f, err
}

func (e *Extractor) parseStream(filename string, r io.Reader) (err error) {
	var v visitor
	v.Extractor = e
	v.fset = token.NewFileSet()
	v.file, err = parser.ParseFile(v.fset, filename, r, parser.ParseComments)
	if err != nil {
		return err
	}

	if e.Messages == nil {
		e.Messages = make(map[Message][]Location)
	}
	ast.Walk(&v, v.file)
	return nil
}

func (e *Extractor) ParseFile(filename string) error {
	f, err := e.openFile(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	return e.parseStream(filename, f)
}

func (e *Extractor) messageOrder() []Message {
	msgs := make([]Message, 0, len(e.Messages))
	listed := make(map[Message]bool, len(e.order))
	for _, msg := range e.order {
		if _, ok := e.Messages[msg]; ok && !listed[msg] {
			listed[msg] = true
			msgs = append(msgs, msg)
		}
	}
	// messages set directly on the map have no recorded order
	var rest []Message
	for msg := range e.Messages {
		if !listed[msg] {
			rest = append(rest, msg)
		}
	}
	sort.Slice(rest, func(i, j int) bool { return rest[i].Less(&rest[j]) })
	msgs = append(msgs, rest...)

	if e.SortOutput {
		sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].Less(&msgs[j]) })
	}
	return msgs
}

// Template builds an untranslated catalog of the extracted messages.
// Contexts and messages appear in extraction order, or sorted with
// SortOutput.
func (e *Extractor) Template() *linguist.File {
	f := &linguist.File{
		Version:        "2.1",
		Language:       e.Language,
		SourceLanguage: e.SourceLanguage,
	}
	contexts := make(map[string]*linguist.Context)
	for _, msg := range e.messageOrder() {
		locs := e.Messages[msg]
		if e.SortOutput {
			sort.Slice(locs, func(i, j int) bool {
				return locs[i].file < locs[j].file || locs[i].file == locs[j].file && locs[i].line < locs[j].line
			})
		}

		m := &linguist.Message{
			Source:  msg.source,
			Comment: msg.comment,
			Numerus: msg.numerus,
			Status:  linguist.Unfinished,
		}
		var comments []string
		seen := make(map[string]bool)
		for _, loc := range locs {
			if loc.comments != "" && !seen[loc.comments] {
				seen[loc.comments] = true
				comments = append(comments, loc.comments)
			}
			if !e.NoLocation {
				m.Locations = append(m.Locations, linguist.Location{
					Filename: loc.file,
					Line:     strconv.Itoa(loc.line),
				})
			}
		}
		m.ExtraComment = strings.Join(comments, "\n")

		c, ok := contexts[msg.context]
		if !ok {
			c = &linguist.Context{Name: msg.context}
			contexts[msg.context] = c
			f.Contexts = append(f.Contexts, c)
		}
		c.Messages = append(c.Messages, m)
	}
	return f
}

// Write writes the template catalog to w.
func (e *Extractor) Write(w io.Writer) error {
	_, err := e.Template().WriteTo(w)
	return err
}
