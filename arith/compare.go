package arith

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// UnsignedLessThan returns a single wire that is 1 iff a < b as unsigned
// n-bit integers: the borrow-out of a - b, per §4.2.
func UnsignedLessThan(sink circuit.GateSink, a, b []circuit.Wire) circuit.Wire {
	return Sub(sink, a, b).BorrowOut
}

// SignedLessThan returns a single wire that is 1 iff a < b as two's
// complement n-bit integers. Per §4.2: if the sign bits differ, the result
// is a's sign bit (a negative, b non-negative ⇒ a < b); otherwise it is the
// unsigned comparison (same-signed operands compare the same way signed or
// unsigned).
func SignedLessThan(sink circuit.GateSink, a, b []circuit.Wire) circuit.Wire {
	n := len(a)
	signA := a[n-1]
	signB := b[n-1]
	signsDiffer := sink.Xor(signA, signB)
	unsignedLT := UnsignedLessThan(sink, a, b)
	return Mux(sink, signsDiffer, unsignedLT, signA)
}

// Equal returns a single wire that is 1 iff a == b bit-for-bit: the
// AND-reduction of bit-wise ¬(a_i ⊕ b_i).
func Equal(sink circuit.GateSink, a, b []circuit.Wire) circuit.Wire {
	return EqualReduce(sink, a, b)
}
