// Package eval provides the host-side reference implementations used only
// by differential tests: a gate-list evaluator that sweeps a circuit's
// gates in emission order, and a plain RV32IM emulator that executes
// instructions concretely. Neither is used in the compiler's normal
// compile path — they exist purely as ground truth for cross-checking the
// circuit/arith/hash/memory/riscv packages bit-for-bit.
package eval

import (
	"errors"

	"github.com/eth2030/riscv-circuit-compiler/circuit"
)

// ErrWireCountMismatch is returned when the supplied input bit vector does
// not match the circuit's declared input width.
var ErrWireCountMismatch = errors.New("eval: input bit count does not match circuit input width")

// Evaluate sweeps a sealed circuit's gates in order given a full
// assignment of its input wires (including the two leading constant
// wires, which the caller must set to false and true respectively) and
// returns the bit value of every wire in the circuit.
func Evaluate(c *circuit.Circuit, inputBits []bool) ([]bool, error) {
	if len(inputBits) != c.NumInputs() {
		return nil, ErrWireCountMismatch
	}

	values := make([]bool, c.NumWires())
	copy(values, inputBits)

	for _, g := range c.Gates() {
		l := values[g.Left]
		r := values[g.Right]
		switch g.Type {
		case circuit.AND:
			values[g.Output] = l && r
		case circuit.XOR:
			values[g.Output] = l != r
		}
	}
	return values, nil
}

// EvaluateOutputs runs Evaluate and projects the result onto the circuit's
// sealed output wires, in order.
func EvaluateOutputs(c *circuit.Circuit, inputBits []bool) ([]bool, error) {
	values, err := Evaluate(c, inputBits)
	if err != nil {
		return nil, err
	}
	outputs := c.Outputs()
	out := make([]bool, len(outputs))
	for i, w := range outputs {
		out[i] = values[w]
	}
	return out, nil
}

// BitsFromUint32LE decodes v into an n-wide little-endian bit slice.
func BitsFromUint32LE(v uint32, n int) []bool {
	out := make([]bool, n)
	for i := 0; i < n; i++ {
		out[i] = (v>>uint(i))&1 != 0
	}
	return out
}

// Uint32FromBitsLE encodes a little-endian bit slice (at most 32 bits) back
// into a uint32.
func Uint32FromBitsLE(bits []bool) uint32 {
	var v uint32
	for i, b := range bits {
		if b {
			v |= 1 << uint(i)
		}
	}
	return v
}
