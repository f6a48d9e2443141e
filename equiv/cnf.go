// Package equiv checks two sealed circuits for combinational equivalence:
// same input layout implies same output on every possible input. It builds
// a miter (Tseitin CNF for both circuits plus a clause forcing some output
// to differ), hands the formula to a SAT solver, and reports the miter's
// satisfiability as a Verdict. Satisfiable means the two circuits diverge,
// and the satisfying assignment is a counterexample input.
package equiv

import (
	"bufio"
	"fmt"
	"io"
)

// Literal is a DIMACS-style signed variable reference: a positive integer
// names a variable, its negation names the variable's complement. Variable
// numbering starts at 1.
type Literal int32

// Not returns the negation of l.
func (l Literal) Not() Literal { return -l }

// Var returns the variable l refers to, stripping any negation.
func (l Literal) Var() int {
	if l < 0 {
		return int(-l)
	}
	return int(l)
}

// CNF accumulates a conjunctive normal form formula: a variable count and a
// flat list of clauses, each clause a disjunction of literals, the whole
// formula their conjunction.
type CNF struct {
	NumVars int
	Clauses [][]Literal
}

// NewVar allocates a fresh variable and returns its positive literal.
func (c *CNF) NewVar() Literal {
	c.NumVars++
	return Literal(c.NumVars)
}

// AddClause appends one clause over the given literals.
func (c *CNF) AddClause(lits ...Literal) {
	clause := make([]Literal, len(lits))
	copy(clause, lits)
	c.Clauses = append(c.Clauses, clause)
}

// WriteDIMACS serializes cnf as `p cnf <vars> <clauses>` followed by one
// zero-terminated clause per line, per the external file contract.
func WriteDIMACS(cnf *CNF, w io.Writer) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "p cnf %d %d\n", cnf.NumVars, len(cnf.Clauses)); err != nil {
		return err
	}
	for _, clause := range cnf.Clauses {
		for _, lit := range clause {
			if _, err := fmt.Fprintf(bw, "%d ", lit); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("0\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}
