package expressivo

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
)

// Hash returns a hash of the expression's structure. Equal expressions have
// equal hashes. The hash covers the kind of every node, so a+b and a*b
// hash differently, and operand order matters, so a+b and b+a usually do too.
// The hash of nil is 0.
func (e *Expr) Hash() uint64 {
	if e == nil {
		return 0
	}
	var buf [17]byte
	buf[0] = byte(e.kind)
	switch e.kind {
	case KindNumber:
		// Number never holds -0 or NaN, so equal values have equal bits.
		binary.LittleEndian.PutUint64(buf[1:], math.Float64bits(e.num))
		return xxhash.Sum64(buf[:9])
	case KindVariable:
		d := xxhash.New()
		d.Write(buf[:1])
		d.WriteString(e.name)
		return d.Sum64()
	case KindAdd, KindMul:
		binary.LittleEndian.PutUint64(buf[1:], e.left.Hash())
		binary.LittleEndian.PutUint64(buf[9:], e.right.Hash())
		return xxhash.Sum64(buf[:])
	default:
		panic("expressivo: invalid expression kind " + e.kind.String())
	}
}
