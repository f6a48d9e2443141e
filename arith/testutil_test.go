package arith_test

import (
	"testing"

	"github.com/eth2030/riscv-circuit-compiler/circuit"
	"github.com/eth2030/riscv-circuit-compiler/eval"
)

// binaryOpCircuit builds a circuit with two 32-bit inputs a, b and seals
// whatever wire array build returns as the output, then evaluates it on
// the given operand values and decodes the result back to a uint32. Used
// throughout this package's tests to concretely verify an arith primitive
// against plain Go arithmetic without hand-rolling a second bit evaluator
// per test file.
func binaryOpCircuit(t *testing.T, av, bv uint32, build func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire) uint32 {
	t.Helper()

	c, err := circuit.Create(2+64, 32)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	a := make([]circuit.Wire, 32)
	b := make([]circuit.Wire, 32)
	for i := 0; i < 32; i++ {
		a[i] = circuit.Wire(2 + i)
		b[i] = circuit.Wire(2 + 32 + i)
	}

	result := build(c, a, b)
	if err := c.Seal(result); err != nil {
		t.Fatalf("Seal: %v", err)
	}

	inputBits := make([]bool, c.NumInputs())
	inputBits[0] = false
	inputBits[1] = true
	copy(inputBits[2:34], eval.BitsFromUint32LE(av, 32))
	copy(inputBits[34:66], eval.BitsFromUint32LE(bv, 32))

	outBits, err := eval.EvaluateOutputs(c, inputBits)
	if err != nil {
		t.Fatalf("EvaluateOutputs: %v", err)
	}
	return eval.Uint32FromBitsLE(outBits)
}

// wideOpCircuit is like binaryOpCircuit but seals an outWidth-wide output
// and returns the raw output bits instead of decoding them to a uint32, for
// operations whose result is not a 32-bit word (e.g. a single
// comparison or borrow wire).
func wideOpCircuit(t *testing.T, av, bv uint32, build func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire, outWidth int) []bool {
	t.Helper()

	c, err := circuit.Create(2+64, outWidth)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	a := make([]circuit.Wire, 32)
	b := make([]circuit.Wire, 32)
	for i := 0; i < 32; i++ {
		a[i] = circuit.Wire(2 + i)
		b[i] = circuit.Wire(2 + 32 + i)
	}

	result := build(c, a, b)
	if err := c.Seal(result); err != nil {
		t.Fatalf("Seal: %v", err)
	}

	inputBits := make([]bool, c.NumInputs())
	inputBits[1] = true
	copy(inputBits[2:34], eval.BitsFromUint32LE(av, 32))
	copy(inputBits[34:66], eval.BitsFromUint32LE(bv, 32))

	outBits, err := eval.EvaluateOutputs(c, inputBits)
	if err != nil {
		t.Fatalf("EvaluateOutputs: %v", err)
	}
	return outBits
}
