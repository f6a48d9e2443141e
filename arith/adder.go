package arith

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// AddResult bundles an adder's sum bits with its carry-out wire.
type AddResult struct {
	Sum      []circuit.Wire
	CarryOut circuit.Wire
}

// KoggeStoneAdd computes a + b + carryIn as an n-bit sum with carry-out,
// using the O(log n)-depth parallel-prefix construction from §4.2: compute
// bit-wise generate/propagate, then fold in log2(n) doubling steps before
// reading the sum off the prefix generate signals. This is the default
// adder for ADD/SUB/ADDI/address calculation.
func KoggeStoneAdd(sink circuit.GateSink, a, b []circuit.Wire, carryIn circuit.Wire) AddResult {
	n := len(a)
	g := make([]circuit.Wire, n)
	p := make([]circuit.Wire, n)
	for i := 0; i < n; i++ {
		g[i] = sink.And(a[i], b[i])
		p[i] = sink.Xor(a[i], b[i])
	}

	// Fold the carry-in into bit 0 before the prefix network: bit 0's
	// generate becomes g0 ∨ (p0 ∧ carryIn).
	g[0] = Or(sink, g[0], sink.And(p[0], carryIn))

	// pOrig holds the bitwise propagate a_i ⊕ b_i: the sum needs this, not
	// the group propagate the prefix loop below folds p into.
	pOrig := append([]circuit.Wire(nil), p...)

	for step := 1; step < n; step *= 2 {
		ng := make([]circuit.Wire, n)
		np := make([]circuit.Wire, n)
		copy(ng, g)
		copy(np, p)
		for i := step; i < n; i++ {
			ng[i] = Or(sink, g[i], sink.And(p[i], g[i-step]))
			np[i] = sink.And(p[i], p[i-step])
		}
		g, p = ng, np
	}

	sum := make([]circuit.Wire, n)
	sum[0] = sink.Xor(pOrig[0], carryIn)
	for i := 1; i < n; i++ {
		sum[i] = sink.Xor(pOrig[i], g[i-1])
	}

	return AddResult{Sum: sum, CarryOut: g[n-1]}
}

// RippleCarryAdd computes a + b + carryIn with a straightforward chain of
// full adders. §4.2 marks this optional: it exists for gate-count
// comparison and as a second, independently derived adder that this
// package's tests cross-validate against Kogge-Stone.
func RippleCarryAdd(sink circuit.GateSink, a, b []circuit.Wire, carryIn circuit.Wire) AddResult {
	n := len(a)
	sum := make([]circuit.Wire, n)
	carry := carryIn
	for i := 0; i < n; i++ {
		axb := sink.Xor(a[i], b[i])
		sum[i] = sink.Xor(axb, carry)
		carry = Or(sink, sink.And(a[i], b[i]), sink.And(axb, carry))
	}
	return AddResult{Sum: sum, CarryOut: carry}
}
