package arith

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// DivRemResult bundles a division's quotient and remainder.
type DivRemResult struct {
	Quotient  []circuit.Wire
	Remainder []circuit.Wire
}

// Negate returns the two's complement negation of a: ¬a + 1.
func Negate(sink circuit.GateSink, a []circuit.Wire) []circuit.Wire {
	return KoggeStoneAdd(sink, NotArray(sink, a), Constant(len(a), 0), circuit.Const1).Sum
}

// UnsignedDivRem implements the restoring shift-subtract sequential
// divider from §4.2, unrolled into n combinational iterations of
// (conditional subtract, shift). The restoring structure naturally
// reproduces the RV32M division-by-zero contract with no special case:
// subtracting an all-zero divisor never borrows, so every quotient bit
// comes out 1 (all-ones) and the remainder accumulates the dividend
// untouched.
func UnsignedDivRem(sink circuit.GateSink, dividend, divisor []circuit.Wire) DivRemResult {
	n := len(dividend)
	remainder := Constant(n+1, 0)
	divisorExt := ZeroExtend(divisor, n+1)
	quotient := make([]circuit.Wire, n)

	for i := n - 1; i >= 0; i-- {
		shifted := make([]circuit.Wire, n+1)
		shifted[0] = dividend[i]
		copy(shifted[1:], remainder[:n])

		trial := Sub(sink, shifted, divisorExt)
		noBorrow := Not(sink, trial.BorrowOut)

		remainder = MuxArray(sink, noBorrow, shifted, trial.Diff)
		quotient[i] = noBorrow
	}

	return DivRemResult{Quotient: quotient, Remainder: remainder[:n]}
}

// SignedDivRem implements signed DIV/REM by reducing to UnsignedDivRem on
// operand magnitudes and restoring signs: quotient sign is signA ⊕ signB,
// remainder takes the dividend's sign, matching RV32M's truncating
// division. The only case this sign-restoration gets wrong on its own is
// division by zero (restoring the dividend's sign would flip the required
// all-ones quotient for a negative dividend), so that case is detected and
// forced to the RV32M-mandated result afterward. The MIN_INT / -1 overflow
// case needs no such override: negating MIN_INT saturates back to MIN_INT,
// so the generic sign logic already produces quotient = MIN_INT, remainder
// = 0.
func SignedDivRem(sink circuit.GateSink, dividend, divisor []circuit.Wire) DivRemResult {
	n := len(dividend)
	signA := dividend[n-1]
	signB := divisor[n-1]

	absA := MuxArray(sink, signA, dividend, Negate(sink, dividend))
	absB := MuxArray(sink, signB, divisor, Negate(sink, divisor))

	u := UnsignedDivRem(sink, absA, absB)

	quotientSign := sink.Xor(signA, signB)
	quotient := MuxArray(sink, quotientSign, u.Quotient, Negate(sink, u.Quotient))
	remainder := MuxArray(sink, signA, u.Remainder, Negate(sink, u.Remainder))

	isZeroDivisor := Equal(sink, divisor, Constant(n, 0))
	allOnes := Constant(n, (1<<uint(n))-1)

	quotient = MuxArray(sink, isZeroDivisor, quotient, allOnes)
	remainder = MuxArray(sink, isZeroDivisor, remainder, dividend)

	return DivRemResult{Quotient: quotient, Remainder: remainder}
}
