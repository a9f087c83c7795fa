package pluralforms

import (
	"fmt"
	"strconv"
)

type token int

const (
	eofTok token = iota
	invalidTok
	numTok
	varTok
	orTok
	andTok
	eqTok
	neTok
	ltTok
	lteTok
	gtTok
	gteTok
	notTok
	questionTok
	colonTok
	lparenTok
	rparenTok
	addTok
	subTok
	mulTok
	divTok
	modTok
)

type lexer struct {
	data string
	pos  int

	// current token
	tok token
	num int
}

func (l *lexer) next() {
	for l.pos < len(l.data) && (l.data[l.pos] == ' ' || l.data[l.pos] == '\t') {
		l.pos += 1
	}
	if l.pos >= len(l.data) {
		l.tok = eofTok
		return
	}

	pos := l.pos
	c := l.data[pos]
	l.pos += 1

	// two character operators
	peek := func(b byte) bool {
		if l.pos < len(l.data) && l.data[l.pos] == b {
			l.pos += 1
			return true
		}
		return false
	}

	switch c {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		for l.pos < len(l.data) && l.data[l.pos] >= '0' && l.data[l.pos] <= '9' {
			l.pos += 1
		}
		num, err := strconv.ParseInt(l.data[pos:l.pos], 10, 32)
		if err != nil {
			l.tok = invalidTok
			return
		}
		l.tok, l.num = numTok, int(num)
	case 'n':
		l.tok = varTok
	case '=':
		if peek('=') {
			l.tok = eqTok
		} else {
			l.tok = invalidTok
		}
	case '!':
		if peek('=') {
			l.tok = neTok
		} else {
			l.tok = notTok
		}
	case '&':
		if peek('&') {
			l.tok = andTok
		} else {
			l.tok = invalidTok
		}
	case '|':
		if peek('|') {
			l.tok = orTok
		} else {
			l.tok = invalidTok
		}
	case '<':
		if peek('=') {
			l.tok = lteTok
		} else {
			l.tok = ltTok
		}
	case '>':
		if peek('=') {
			l.tok = gteTok
		} else {
			l.tok = gtTok
		}
	case '?':
		l.tok = questionTok
	case ':':
		l.tok = colonTok
	case '(':
		l.tok = lparenTok
	case ')':
		l.tok = rparenTok
	case '+':
		l.tok = addTok
	case '-':
		l.tok = subTok
	case '*':
		l.tok = mulTok
	case '/':
		l.tok = divTok
	case '%':
		l.tok = modTok
	case ';', '\n':
		// end of the plural= clause in a header
		l.pos = len(l.data)
		l.tok = eofTok
	default:
		l.tok = invalidTok
	}
}

type parser struct {
	lexer
}

func (p *parser) errorf(format string, args ...interface{}) error {
	return fmt.Errorf("cannot parse expression at offset %d: %s", p.pos, fmt.Sprintf(format, args...))
}

// ternary := or [ '?' ternary ':' ternary ]
func (p *parser) ternary() (Expression, error) {
	test, err := p.or()
	if err != nil {
		return nil, err
	}
	if p.tok != questionTok {
		return test, nil
	}
	p.next()
	ifTrue, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if p.tok != colonTok {
		return nil, p.errorf("expected ':'")
	}
	p.next()
	ifFalse, err := p.ternary()
	if err != nil {
		return nil, err
	}
	return ternaryExpr{test: test, ifTrue: ifTrue, ifFalse: ifFalse}, nil
}

// binary parses one left associative precedence level.
func (p *parser) binary(operand func() (Expression, error), build func(tok token, l, r Expression) Expression, ops ...token) (Expression, error) {
	left, err := operand()
	if err != nil {
		return nil, err
	}
	for {
		matched := false
		for _, op := range ops {
			if p.tok == op {
				matched = true
				break
			}
		}
		if !matched {
			return left, nil
		}
		op := p.tok
		p.next()
		right, err := operand()
		if err != nil {
			return nil, err
		}
		left = build(op, left, right)
	}
}

func (p *parser) or() (Expression, error) {
	return p.binary(p.and, func(_ token, l, r Expression) Expression {
		return orExpr{l, r}
	}, orTok)
}

func (p *parser) and() (Expression, error) {
	return p.binary(p.equality, func(_ token, l, r Expression) Expression {
		return andExpr{l, r}
	}, andTok)
}

func (p *parser) equality() (Expression, error) {
	return p.binary(p.relational, func(tok token, l, r Expression) Expression {
		if tok == eqTok {
			return eqExpr{l, r}
		}
		return neExpr{l, r}
	}, eqTok, neTok)
}

func (p *parser) relational() (Expression, error) {
	return p.binary(p.additive, func(tok token, l, r Expression) Expression {
		switch tok {
		case ltTok:
			return ltExpr{l, r}
		case lteTok:
			return lteExpr{l, r}
		case gtTok:
			return gtExpr{l, r}
		default:
			return gteExpr{l, r}
		}
	}, ltTok, lteTok, gtTok, gteTok)
}

func (p *parser) additive() (Expression, error) {
	return p.binary(p.multiplicative, func(tok token, l, r Expression) Expression {
		if tok == addTok {
			return addExpr{l, r}
		}
		return subExpr{l, r}
	}, addTok, subTok)
}

func (p *parser) multiplicative() (Expression, error) {
	return p.binary(p.unary, func(tok token, l, r Expression) Expression {
		switch tok {
		case mulTok:
			return mulExpr{l, r}
		case divTok:
			return divExpr{l, r}
		default:
			return modExpr{l, r}
		}
	}, mulTok, divTok, modTok)
}

func (p *parser) unary() (Expression, error) {
	if p.tok == notTok {
		p.next()
		sub, err := p.unary()
		if err != nil {
			return nil, err
		}
		return notExpr{sub}, nil
	}
	return p.primary()
}

func (p *parser) primary() (Expression, error) {
	switch p.tok {
	case numTok:
		e := numberExpr{p.num}
		p.next()
		return e, nil
	case varTok:
		p.next()
		return varExpr{}, nil
	case lparenTok:
		p.next()
		e, err := p.ternary()
		if err != nil {
			return nil, err
		}
		if p.tok != rparenTok {
			return nil, p.errorf("expected ')'")
		}
		p.next()
		return e, nil
	case eofTok:
		return nil, p.errorf("unexpected end of expression")
	default:
		return nil, p.errorf("unexpected token")
	}
}

// Compile a string containing a plural form expression to a Expression object.
func Compile(expr string) (Expression, error) {
	p := parser{lexer{data: expr}}
	p.next()
	e, err := p.ternary()
	if err != nil {
		return nil, err
	}
	if p.tok != eofTok {
		return nil, p.errorf("trailing input")
	}
	return e, nil
}
