package expressivo

import (
	"strconv"
	"unicode"
)

// DefaultMaxDepth is the parenthesis nesting depth Parse allows unless the
// MaxDepth option says otherwise. It is zero, meaning no limit, so that Parse
// accepts the printed form of any expression, including long chains whose
// canonical form nests one parenthesis per operator.
const DefaultMaxDepth = 0

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

type (
	depthopt int
	eofopt   string
)

// parsectx holds general data for parsing.
type parsectx struct {
	// depth is the current parenthesis nesting depth.
	depth int
	// maxdepth is the maximum allowed nesting depth. Zero means no limit.
	maxdepth int
	// wseof is a string containing the whitespace characters that trigger an
	// EOF token from the lexer.
	wseof string
}

// MaxDepth limits how deeply parentheses may nest. Deeper input is a syntax
// error. Zero removes the limit, so the parser's recursion is bounded only by
// the length of the input. A limit guards against pathological input, but
// String on a chain of more than n+1 operands produces text that the limited
// parser rejects. Panics if n is negative.
func MaxDepth(n int) ParseOption {
	if n < 0 {
		panic("expressivo: negative max depth " + strconv.Itoa(n))
	}
	return depthopt(n)
}

func (o depthopt) parseOption(p parsectx) parsectx {
	p.maxdepth = int(o)
	return p
}

// StopOn tells the parser to treat a list of whitespace characters as ending
// the expression. Whitespace does not end an expression where a term is
// expected, e.g. at the beginning of an expression or following an operator,
// nor anywhere inside parentheses. This allows reading several expressions
// from one source, such as one per line with StopOn('\n').
//
// StopOn overrides the effect of any previous StopOn in the parsing options.
// With no arguments, StopOn produces the default termination behavior, which
// is to parse to EOF. Panics if any rune is not whitespace.
func StopOn(chars ...rune) ParseOption {
	v := make([]rune, 0, len(chars))
	have := func(r rune) bool {
		for _, c := range v {
			if r == c {
				return true
			}
		}
		return false
	}
	for _, r := range chars {
		if !unicode.IsSpace(r) {
			panic("expressivo: cannot stop on " + strconv.QuoteRune(r))
		}
		if have(r) {
			continue
		}
		v = append(v, r)
	}
	return eofopt(v)
}

func (o eofopt) parseOption(p parsectx) parsectx {
	p.wseof = string(o)
	return p
}
