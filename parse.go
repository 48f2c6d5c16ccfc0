package expressivo

import (
	"errors"
	"io"
	"strconv"
	"strings"
)

// Sum     = Product { '+' Product }
// Product = Primary { '*' Primary }
// Primary = num | name | '(' Sum ')'
// num     = digit { digit } [ '.' digit { digit } ]
// name    = letter { letter }

// Parse parses an expression. The given options are applied in order. Invalid
// input produces a *SyntaxError and no expression; other errors come only
// from reading src.
func Parse(src io.RuneScanner, opts ...ParseOption) (*Expr, error) {
	scan := lex(src)
	p := parsectx{maxdepth: DefaultMaxDepth}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	e, err := parsesum(scan, &p)
	if err != nil {
		return nil, err
	}
	switch tok := scan.must(); tok.kind {
	case tokenEOF:
	case tokenClose:
		return nil, syntaxerr(tok, "close bracket with no open bracket")
	default:
		// E.g. "3 x", which is not an implicit multiplication.
		return nil, syntaxerr(tok, "expected operator or end of input, found")
	}
	return e, nil
}

// ParseString is a shortcut to parse an expression from a string.
func ParseString(src string, opts ...ParseOption) (*Expr, error) {
	return Parse(strings.NewReader(src), opts...)
}

// MustParse is like ParseString but panics if the expression is invalid.
func MustParse(src string, opts ...ParseOption) *Expr {
	e, err := ParseString(src, opts...)
	if err != nil {
		panic("expressivo: MustParse(" + strconv.Quote(src) + "): " + err.Error())
	}
	return e
}

// parsesum parses a left-associative chain of products. If there is no error,
// then parsesum pushes the last token it scans, including EOF.
func parsesum(scan *lexer, p *parsectx) (*Expr, error) {
	return parsechain(scan, p, "+", KindAdd, parseproduct)
}

// parseproduct parses a left-associative chain of primaries. If there is no
// error, then parseproduct pushes the last token it scans.
func parseproduct(scan *lexer, p *parsectx) (*Expr, error) {
	return parsechain(scan, p, "*", KindMul, parseprimary)
}

// parsechain parses operands separated by op and folds them to the left.
func parsechain(scan *lexer, p *parsectx, op string, k Kind, operand func(*lexer, *parsectx) (*Expr, error)) (*Expr, error) {
	e, err := operand(scan, p)
	if err != nil {
		return nil, err
	}
	for {
		// The token after an operand may end the expression, so respect
		// whitespace EOF here, unless we're inside parentheses.
		wseof := p.wseof
		if p.depth > 0 {
			wseof = ""
		}
		tok, err := scan.next(wseof)
		if err != nil {
			return nil, err
		}
		if tok.kind != tokenOp || tok.text != op {
			scan.push(tok)
			return e, nil
		}
		rhs, err := operand(scan, p)
		if err != nil {
			return nil, err
		}
		e = &Expr{kind: k, left: e, right: rhs}
	}
}

// parseprimary parses a number, a variable, or a parenthesized sum. Any
// encountered token must be valid as the start of a term, and whitespace
// normally lexed as EOF is ignored.
func parseprimary(scan *lexer, p *parsectx) (*Expr, error) {
	tok, err := scan.next("")
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil {
			if errors.Is(err, strconv.ErrRange) {
				return nil, syntaxerr(tok, "number out of range")
			}
			// The lexer only produces well-formed numbers.
			panic("expressivo: invalid number: " + tok.text + " (" + err.Error() + ")")
		}
		return Number(v), nil
	case tokenIdent:
		return &Expr{kind: KindVariable, name: tok.text}, nil
	case tokenOpen:
		p.depth++
		if p.maxdepth > 0 && p.depth > p.maxdepth {
			return nil, syntaxerr(tok, "parentheses nested deeper than "+strconv.Itoa(p.maxdepth)+" at")
		}
		e, err := parsesum(scan, p)
		if err != nil {
			return nil, err
		}
		switch end := scan.must(); end.kind {
		case tokenClose:
		case tokenEOF:
			return nil, &SyntaxError{Col: end.pos, Reason: "open bracket with no close bracket"}
		default:
			return nil, syntaxerr(end, "expected operator or close bracket, found")
		}
		p.depth--
		return e, nil
	case tokenOp:
		return nil, syntaxerr(tok, "expected term, found operator")
	case tokenClose:
		return nil, syntaxerr(tok, "no expression up to")
	case tokenEOF:
		if tok.pos <= 1 {
			return nil, &SyntaxError{Col: tok.pos, Reason: "no expression"}
		}
		return nil, &SyntaxError{Col: tok.pos, Reason: "no expression at end"}
	default:
		panic("expressivo: unknown token: " + tok.String())
	}
}
