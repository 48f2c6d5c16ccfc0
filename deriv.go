package expressivo

// Differentiate returns the derivative of e with respect to the named
// variable. The result follows the sum and product rules exactly and is not
// simplified, so the derivative of x*1 is (1*1)+(x*0).
func (e *Expr) Differentiate(variable string) *Expr {
	switch e.kind {
	case KindNumber:
		return Number(0)
	case KindVariable:
		if e.name == variable {
			return Number(1)
		}
		return Number(0)
	case KindAdd:
		return Add(e.left.Differentiate(variable), e.right.Differentiate(variable))
	case KindMul:
		// d(uv) = du v + u dv
		du := e.left.Differentiate(variable)
		dv := e.right.Differentiate(variable)
		return Add(Multiply(du, e.right), Multiply(e.left, dv))
	default:
		panic("expressivo: invalid expression kind " + e.kind.String())
	}
}

// DifferentiateN returns the n-th derivative of e with respect to the named
// variable. The zeroth derivative is e itself. Each product in e roughly
// doubles in size per derivative, so the result grows quickly with n.
// Panics if n is negative.
func (e *Expr) DifferentiateN(variable string, n int) *Expr {
	if n < 0 {
		panic("expressivo: negative derivative order")
	}
	for i := 0; i < n; i++ {
		e = e.Differentiate(variable)
	}
	return e
}
