package expressivo

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"
	"unicode"
)

// Expr is a node in the tree of a polynomial expression. An Expr is never
// modified after it is constructed, so expressions may be shared freely,
// including between goroutines. Create expressions with Parse, Number,
// Variable, Add, and Multiply; the zero Expr is not a valid expression.
type Expr struct {
	kind Kind

	num  float64
	name string

	left  *Expr
	right *Expr
}

// Kind identifies the variant of an expression.
type Kind int8

const (
	// KindNone is the kind of the zero Expr, which is not a valid expression.
	KindNone Kind = iota

	KindNumber   // nonnegative literal
	KindVariable // named variable
	KindAdd      // left + right
	KindMul      // left * right
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNumber:
		return "Number"
	case KindVariable:
		return "Variable"
	case KindAdd:
		return "Add"
	case KindMul:
		return "Mul"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Number creates a numeric literal. Panics if v is negative, NaN, or infinite.
func Number(v float64) *Expr {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		panic("expressivo: invalid number " + strconv.FormatFloat(v, 'g', -1, 64))
	}
	if v == 0 {
		// Drop the sign of -0 so that it prints as a parsable literal.
		v = 0
	}
	return &Expr{kind: KindNumber, num: v}
}

// Variable creates a reference to a variable. Panics if name is empty or
// contains anything other than letters.
func Variable(name string) *Expr {
	if !isName(name) {
		panic("expressivo: invalid variable name " + strconv.Quote(name))
	}
	return &Expr{kind: KindVariable, name: name}
}

// Add creates the sum a + b.
func Add(a, b *Expr) *Expr {
	return newbinary(KindAdd, a, b)
}

// Multiply creates the product a * b.
func Multiply(a, b *Expr) *Expr {
	return newbinary(KindMul, a, b)
}

func newbinary(k Kind, a, b *Expr) *Expr {
	if a == nil || b == nil {
		panic("expressivo: nil operand to " + k.String())
	}
	return &Expr{kind: k, left: a, right: b}
}

// Sum folds terms into a left-leaning chain of additions, the same shape the
// parser produces for "a + b + c". Panics if there are no terms.
func Sum(terms ...*Expr) *Expr {
	return fold(KindAdd, terms)
}

// Product folds factors into a left-leaning chain of multiplications.
// Panics if there are no factors.
func Product(factors ...*Expr) *Expr {
	return fold(KindMul, factors)
}

func fold(k Kind, v []*Expr) *Expr {
	if len(v) == 0 {
		panic("expressivo: empty " + k.String())
	}
	e := v[0]
	for _, x := range v[1:] {
		e = newbinary(k, e, x)
	}
	return e
}

func isName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}

// Kind returns the variant of the expression, or KindNone for nil.
func (e *Expr) Kind() Kind {
	if e == nil {
		return KindNone
	}
	return e.kind
}

// Value returns the value of a number. It is 0 for other kinds and for nil.
func (e *Expr) Value() float64 {
	if e == nil {
		return 0
	}
	return e.num
}

// Name returns the name of a variable. It is empty for other kinds and for nil.
func (e *Expr) Name() string {
	if e == nil {
		return ""
	}
	return e.name
}

// Left returns the left operand of an addition or multiplication, or nil.
func (e *Expr) Left() *Expr {
	if e == nil {
		return nil
	}
	return e.left
}

// Right returns the right operand of an addition or multiplication, or nil.
func (e *Expr) Right() *Expr {
	if e == nil {
		return nil
	}
	return e.right
}

// IsPrimitive reports whether e is a number or variable. Primitive operands
// are never parenthesized when printed.
func (e *Expr) IsPrimitive() bool {
	switch e.kind {
	case KindNumber, KindVariable:
		return true
	case KindAdd, KindMul:
		return false
	default:
		panic("expressivo: invalid expression kind " + e.kind.String())
	}
}

// Equal reports whether e and f are structurally equal: the same kind with
// equal fields and equal operands in the same order. Addition and
// multiplication are not commutative under Equal. A non-nil expression is
// never equal to nil.
func (e *Expr) Equal(f *Expr) bool {
	if e == f {
		return true
	}
	if e == nil || f == nil || e.kind != f.kind {
		return false
	}
	switch e.kind {
	case KindNumber:
		return e.num == f.num
	case KindVariable:
		return e.name == f.name
	case KindAdd, KindMul:
		return e.left.Equal(f.left) && e.right.Equal(f.right)
	default:
		panic("expressivo: invalid expression kind " + e.kind.String())
	}
}

// Vars returns the sorted names of the variables used in the expression.
func (e *Expr) Vars() []string {
	seen := make(map[string]bool)
	e.vars(seen)
	names := make([]string, 0, len(seen))
	for k := range seen {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

func (e *Expr) vars(seen map[string]bool) {
	switch e.kind {
	case KindNumber:
	case KindVariable:
		seen[e.name] = true
	case KindAdd, KindMul:
		e.left.vars(seen)
		e.right.vars(seen)
	default:
		panic("expressivo: invalid expression kind " + e.kind.String())
	}
}

// Size returns the number of nodes in the expression.
func (e *Expr) Size() int {
	switch e.kind {
	case KindNumber, KindVariable:
		return 1
	case KindAdd, KindMul:
		return 1 + e.left.Size() + e.right.Size()
	default:
		panic("expressivo: invalid expression kind " + e.kind.String())
	}
}

// Depth returns the number of nodes on the longest path from e to a leaf.
func (e *Expr) Depth() int {
	switch e.kind {
	case KindNumber, KindVariable:
		return 1
	case KindAdd, KindMul:
		l, r := e.left.Depth(), e.right.Depth()
		if r > l {
			l = r
		}
		return 1 + l
	default:
		panic("expressivo: invalid expression kind " + e.kind.String())
	}
}

// String returns the canonical form of the expression, which parses back to
// an equal expression. Operators are written without surrounding spaces and
// non-primitive operands are parenthesized, e.g. "1.0+(2.0*x)".
func (e *Expr) String() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	e.fmt(&b, false)
	return b.String()
}

// Format implements fmt.Formatter. The verbs %v and %s write the canonical
// form. The + flag, as in %+v, puts a space on each side of each operator.
// %q writes the canonical form as a quoted string.
func (e *Expr) Format(f fmt.State, verb rune) {
	if e == nil {
		io.WriteString(f, "<nil>")
		return
	}
	var b strings.Builder
	switch verb {
	case 'v', 's':
		e.fmt(&b, f.Flag('+'))
		io.WriteString(f, b.String())
	case 'q':
		e.fmt(&b, f.Flag('+'))
		io.WriteString(f, strconv.Quote(b.String()))
	default:
		e.fmt(&b, false)
		fmt.Fprintf(f, "%%!%c(*expressivo.Expr=%s)", verb, b.String())
	}
}

// MarshalText implements encoding.TextMarshaler with the canonical form.
func (e *Expr) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Expr) fmt(b *strings.Builder, spaced bool) {
	switch e.kind {
	case KindNumber:
		fmtnum(b, e.num)
	case KindVariable:
		b.WriteString(e.name)
	case KindAdd:
		e.left.fmtoperand(b, spaced)
		fmtop(b, '+', spaced)
		e.right.fmtoperand(b, spaced)
	case KindMul:
		e.left.fmtoperand(b, spaced)
		fmtop(b, '*', spaced)
		e.right.fmtoperand(b, spaced)
	default:
		panic("expressivo: invalid expression kind " + e.kind.String() + " after writing " + b.String())
	}
}

func (e *Expr) fmtoperand(b *strings.Builder, spaced bool) {
	if e.IsPrimitive() {
		e.fmt(b, spaced)
		return
	}
	b.WriteByte('(')
	e.fmt(b, spaced)
	b.WriteByte(')')
}

func fmtop(b *strings.Builder, op byte, spaced bool) {
	if spaced {
		b.WriteByte(' ')
		b.WriteByte(op)
		b.WriteByte(' ')
		return
	}
	b.WriteByte(op)
}

// fmtnum writes the shortest decimal that parses back to v. The grammar has
// no exponents, so large and small values are written out in full. Integral
// values get a ".0" suffix.
func fmtnum(b *strings.Builder, v float64) {
	var buf [32]byte
	s := strconv.AppendFloat(buf[:0], v, 'f', -1, 64)
	b.Write(s)
	for _, c := range s {
		if c == '.' {
			return
		}
	}
	b.WriteString(".0")
}
