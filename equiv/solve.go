package equiv

import (
	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"

	"github.com/eth2030/riscv-circuit-compiler/circuit"
	"github.com/eth2030/riscv-circuit-compiler/metrics"
)

// CheckEquivalence builds the miter for a and b and hands it to gini. A
// Divergent result's Counterexample holds one bit per input wire of a
// (equivalently b, since BuildMiter requires matching layouts), in the
// same order riscv.Codec uses to seed a circuit's inputs.
func CheckEquivalence(a, b *circuit.Circuit) (Result, error) {
	m, err := BuildMiter(a, b)
	if err != nil {
		return Result{}, err
	}
	metrics.EquivClausesTotal.Set(int64(len(m.CNF.Clauses)))

	solver := gini.New()
	for _, clause := range m.CNF.Clauses {
		for _, lit := range clause {
			solver.Add(toGiniLit(lit))
		}
		solver.Add(0)
	}

	switch solver.Solve() {
	case 1:
		inputs := make([]bool, a.NumInputs())
		for i := range inputs {
			inputs[i] = solver.Value(toGiniLit(m.VarOfA[i]))
		}
		return Result{Verdict: Divergent, Counterexample: inputs}, nil
	case -1:
		return Result{Verdict: Equivalent}, nil
	default:
		return Result{Verdict: Unknown}, nil
	}
}

// toGiniLit converts a CNF Literal (DIMACS-style signed int) to a gini
// z.Lit, matching the Var(v).Pos()/Neg() construction the vendored
// logic.C.ToCnf uses.
func toGiniLit(l Literal) z.Lit {
	if l < 0 {
		return z.Var(-int(l)).Neg()
	}
	return z.Var(int(l)).Pos()
}
