package equiv

import (
	"errors"

	"github.com/eth2030/riscv-circuit-compiler/circuit"
)

// ErrLayoutMismatch is returned when the two circuits being compared do not
// share the same input or output width, and so can't be compared bit for
// bit.
var ErrLayoutMismatch = errors.New("equiv: circuits have different input or output width")

// Miter is the combined CNF formula for two circuits: each circuit's gates
// Tseitinized onto disjoint variables, their inputs forced identical, and
// a clause forcing at least one output pair to differ. The miter is
// satisfiable iff some input makes the two circuits disagree.
type Miter struct {
	CNF *CNF
	// VarOfA and VarOfB map each circuit's wire ID to its miter variable.
	VarOfA []Literal
	VarOfB []Literal
}

// BuildMiter renumbers a and b's wires onto one CNF's variable space,
// Tseitinizes every gate, pins both circuits' constant wires, bi-implicates
// every input position across the two circuits, and adds the final
// "some output differs" clause over a fresh per-output XOR indicator.
func BuildMiter(a, b *circuit.Circuit) (*Miter, error) {
	if a.NumInputs() != b.NumInputs() || a.NumOutputs() != b.NumOutputs() {
		return nil, ErrLayoutMismatch
	}

	cnf := &CNF{}
	varOfA := tseitinize(cnf, a)
	varOfB := tseitinize(cnf, b)

	cnf.AddClause(varOfA[circuit.Const0].Not())
	cnf.AddClause(varOfA[circuit.Const1])
	cnf.AddClause(varOfB[circuit.Const0].Not())
	cnf.AddClause(varOfB[circuit.Const1])

	for i := 0; i < a.NumInputs(); i++ {
		biImply(cnf, varOfA[i], varOfB[i])
	}

	outA := a.Outputs()
	outB := b.Outputs()
	diffVars := make([]Literal, len(outA))
	for i := range outA {
		diffVars[i] = xorGate(cnf, varOfA[outA[i]], varOfB[outB[i]])
	}
	cnf.AddClause(diffVars...)

	return &Miter{CNF: cnf, VarOfA: varOfA, VarOfB: varOfB}, nil
}

// tseitinize walks c's gates in emission order, allocating one miter
// variable per wire (inputs get fresh variables directly; a gate's output
// variable is the Tseitin variable constraining it to equal its gate's
// operation over its operands' variables).
func tseitinize(cnf *CNF, c *circuit.Circuit) []Literal {
	vars := make([]Literal, c.NumWires())
	for i := 0; i < c.NumInputs(); i++ {
		vars[i] = cnf.NewVar()
	}
	for _, g := range c.Gates() {
		l, r := vars[g.Left], vars[g.Right]
		switch g.Type {
		case circuit.AND:
			vars[g.Output] = andGate(cnf, l, r)
		case circuit.XOR:
			vars[g.Output] = xorGate(cnf, l, r)
		}
	}
	return vars
}

// andGate allocates a fresh variable g, adds the three Tseitin clauses
// constraining g == a ∧ b, and returns g. Grounded on the vendored gini
// logic.C.addAnd helper's (¬g∨a)∧(¬g∨b)∧(g∨¬a∨¬b) clause pattern.
func andGate(cnf *CNF, a, b Literal) Literal {
	g := cnf.NewVar()
	cnf.AddClause(g.Not(), a)
	cnf.AddClause(g.Not(), b)
	cnf.AddClause(g, a.Not(), b.Not())
	return g
}

// xorGate allocates a fresh variable g, adds the four Tseitin clauses
// constraining g == a ⊕ b, and returns g.
func xorGate(cnf *CNF, a, b Literal) Literal {
	g := cnf.NewVar()
	cnf.AddClause(g.Not(), a.Not(), b.Not())
	cnf.AddClause(g.Not(), a, b)
	cnf.AddClause(g, a.Not(), b)
	cnf.AddClause(g, a, b.Not())
	return g
}

// biImply adds the two clauses forcing a and b to the same truth value.
func biImply(cnf *CNF, a, b Literal) {
	cnf.AddClause(a.Not(), b)
	cnf.AddClause(a, b.Not())
}
