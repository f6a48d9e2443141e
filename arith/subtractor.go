package arith

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// SubResult bundles a subtractor's difference bits with its borrow-out
// wire.
type SubResult struct {
	Diff      []circuit.Wire
	BorrowOut circuit.Wire
}

// Sub computes a - b as A + ¬B + 1 using the Kogge-Stone adder with
// carry-in 1, per §4.2. Borrow-out is the complement of the adder's
// carry-out.
func Sub(sink circuit.GateSink, a, b []circuit.Wire) SubResult {
	nb := NotArray(sink, b)
	r := KoggeStoneAdd(sink, a, nb, circuit.Const1)
	return SubResult{Diff: r.Sum, BorrowOut: Not(sink, r.CarryOut)}
}
