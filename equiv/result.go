package equiv

// Verdict classifies the outcome of an equivalence check.
type Verdict int

const (
	// Equivalent means the miter is UNSAT: no input makes the two circuits
	// disagree on any output.
	Equivalent Verdict = iota
	// Divergent means the miter is SAT: Counterexample holds an input on
	// which the two circuits disagree.
	Divergent
	// Unknown means the solver could not decide satisfiability within its
	// budget.
	Unknown
)

func (v Verdict) String() string {
	switch v {
	case Equivalent:
		return "equivalent"
	case Divergent:
		return "divergent"
	case Unknown:
		return "unknown"
	default:
		return "invalid"
	}
}

// Result is the outcome of CheckEquivalence.
type Result struct {
	Verdict Verdict
	// Counterexample holds one bit per input wire (including the two
	// leading constant wires) when Verdict is Divergent; nil otherwise.
	Counterexample []bool
}
