// Package arith implements the bit-sliced arithmetic primitives every
// instruction emitter builds on: the Kogge-Stone adder, a ripple-carry
// adder kept for cross-validation, a subtractor, signed/unsigned
// comparators, a barrel shifter, a radix-4 Booth multiplier, and a
// shift-subtract divider. Every operation is a pure function of a
// circuit.GateSink and wire arrays; nothing here retains state across
// calls.
//
// Wire arrays are little-endian: index 0 is the least significant bit,
// matching the bit layout contract the state codec uses for registers and
// memory words.
package arith

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// Not returns ¬a, synthesized as a ⊕ 1.
func Not(sink circuit.GateSink, a circuit.Wire) circuit.Wire {
	return sink.Xor(a, circuit.Const1)
}

// Or returns a ∨ b, synthesized as (a ⊕ b) ⊕ (a ∧ b).
func Or(sink circuit.GateSink, a, b circuit.Wire) circuit.Wire {
	return sink.Xor(sink.Xor(a, b), sink.And(a, b))
}

// Mux returns a 2:1 multiplexer: sel=0 selects in0, sel=1 selects in1.
// Synthesized as in0 ⊕ (sel ∧ (in0 ⊕ in1)), per §4.2's barrel-shifter stage
// formula (the same building block every conditional bit selection in this
// package reuses).
func Mux(sink circuit.GateSink, sel, in0, in1 circuit.Wire) circuit.Wire {
	return sink.Xor(in0, sink.And(sel, sink.Xor(in0, in1)))
}

// NotArray applies Not bit-wise.
func NotArray(sink circuit.GateSink, a []circuit.Wire) []circuit.Wire {
	out := make([]circuit.Wire, len(a))
	for i, w := range a {
		out[i] = Not(sink, w)
	}
	return out
}

// AndArray applies And bit-wise. a and b must have equal length.
func AndArray(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
	out := make([]circuit.Wire, len(a))
	for i := range a {
		out[i] = sink.And(a[i], b[i])
	}
	return out
}

// XorArray applies Xor bit-wise. a and b must have equal length.
func XorArray(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
	out := make([]circuit.Wire, len(a))
	for i := range a {
		out[i] = sink.Xor(a[i], b[i])
	}
	return out
}

// OrArray applies Or bit-wise. a and b must have equal length.
func OrArray(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
	out := make([]circuit.Wire, len(a))
	for i := range a {
		out[i] = Or(sink, a[i], b[i])
	}
	return out
}

// MuxArray applies Mux bit-wise with a shared select wire.
func MuxArray(sink circuit.GateSink, sel circuit.Wire, in0, in1 []circuit.Wire) []circuit.Wire {
	out := make([]circuit.Wire, len(in0))
	for i := range in0 {
		out[i] = Mux(sink, sel, in0[i], in1[i])
	}
	return out
}

// Constant returns an n-wide wire array of universal constants matching
// the bits of v, little-endian.
func Constant(n int, v uint64) []circuit.Wire {
	out := make([]circuit.Wire, n)
	for i := range out {
		if v&(1<<uint(i)) != 0 {
			out[i] = circuit.Const1
		} else {
			out[i] = circuit.Const0
		}
	}
	return out
}

// SignExtend returns an n-wide array equal to a, with every bit above
// len(a) set to a's sign bit (the highest bit of a).
func SignExtend(a []circuit.Wire, n int) []circuit.Wire {
	out := make([]circuit.Wire, n)
	copy(out, a)
	sign := a[len(a)-1]
	for i := len(a); i < n; i++ {
		out[i] = sign
	}
	return out
}

// ZeroExtend returns an n-wide array equal to a, with every bit above
// len(a) set to the universal constant 0.
func ZeroExtend(a []circuit.Wire, n int) []circuit.Wire {
	out := make([]circuit.Wire, n)
	copy(out, a)
	for i := len(a); i < n; i++ {
		out[i] = circuit.Const0
	}
	return out
}

// EqualReduce returns the AND-reduction of n 1-bit equality checks, i.e. a
// single wire that is 1 iff a == b bit-for-bit.
func EqualReduce(sink circuit.GateSink, a, b []circuit.Wire) circuit.Wire {
	acc := Not(sink, sink.Xor(a[0], b[0]))
	for i := 1; i < len(a); i++ {
		acc = sink.And(acc, Not(sink, sink.Xor(a[i], b[i])))
	}
	return acc
}
