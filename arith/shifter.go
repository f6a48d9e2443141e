package arith

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// ShiftDirection selects which way BarrelShift moves bits.
type ShiftDirection int

const (
	ShiftLeft ShiftDirection = iota
	ShiftRightLogical
	ShiftRightArithmetic
)

// BarrelShift implements the log-depth variable-amount shifter from §4.2:
// a 5-stage network over a 32-bit operand where stage k conditionally
// shifts by 2^k based on bit k of amount. Each conditional stage is a 2:1
// MUX per output bit. SRA reuses the SRL network but fills vacated high
// bits with the sign bit instead of 0.
//
// amount is taken as the low log2(len(a)) bits; RV32I only ever shifts by
// 0..31 so callers pass a 5-wide amount array for 32-bit operands.
func BarrelShift(sink circuit.GateSink, a []circuit.Wire, amount []circuit.Wire, dir ShiftDirection) []circuit.Wire {
	n := len(a)
	cur := make([]circuit.Wire, n)
	copy(cur, a)

	fill := circuit.Const0
	if dir == ShiftRightArithmetic {
		fill = a[n-1]
	}

	stages := 0
	for (1 << uint(stages)) < n {
		stages++
	}

	for k := 0; k < stages && k < len(amount); k++ {
		shiftAmt := 1 << uint(k)
		sel := amount[k]
		next := make([]circuit.Wire, n)

		switch dir {
		case ShiftLeft:
			for i := 0; i < n; i++ {
				var shifted circuit.Wire
				if i < shiftAmt {
					shifted = circuit.Const0
				} else {
					shifted = cur[i-shiftAmt]
				}
				next[i] = Mux(sink, sel, cur[i], shifted)
			}
		case ShiftRightLogical, ShiftRightArithmetic:
			for i := 0; i < n; i++ {
				var shifted circuit.Wire
				if i+shiftAmt < n {
					shifted = cur[i+shiftAmt]
				} else {
					shifted = fill
				}
				next[i] = Mux(sink, sel, cur[i], shifted)
			}
		}
		cur = next
	}
	return cur
}

// ConstantShift performs a compile-time-known-amount shift by rewiring
// alone — zero gates, per §4.2's "constant-amount shifts degenerate to
// rewiring" note. Used for SLLI/SRLI/SRAI.
func ConstantShift(a []circuit.Wire, amount int, dir ShiftDirection) []circuit.Wire {
	n := len(a)
	out := make([]circuit.Wire, n)

	fill := circuit.Const0
	if dir == ShiftRightArithmetic {
		fill = a[n-1]
	}

	switch dir {
	case ShiftLeft:
		for i := 0; i < n; i++ {
			if i < amount {
				out[i] = circuit.Const0
			} else {
				out[i] = a[i-amount]
			}
		}
	case ShiftRightLogical, ShiftRightArithmetic:
		for i := 0; i < n; i++ {
			if i+amount < n {
				out[i] = a[i+amount]
			} else {
				out[i] = fill
			}
		}
	}
	return out
}
