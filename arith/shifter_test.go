package arith_test

import (
	"testing"

	"github.com/eth2030/riscv-circuit-compiler/arith"
	"github.com/eth2030/riscv-circuit-compiler/circuit"
)

func TestBarrelShiftLeft(t *testing.T) {
	cases := []struct{ v, amt uint32 }{
		{1, 0}, // B2: shift by 0
		{1, 31},
		{0x1, 4},
		{0xffffffff, 1},
	}
	for _, tc := range cases {
		got := binaryOpCircuit(t, tc.v, tc.amt, func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
			return arith.BarrelShift(sink, a, b[:5], arith.ShiftLeft)
		})
		want := tc.v << tc.amt
		if got != want {
			t.Errorf("BarrelShift(%#x,%d,left) = %#x, want %#x", tc.v, tc.amt, got, want)
		}
	}
}

func TestBarrelShiftRightLogical(t *testing.T) {
	cases := []struct{ v, amt uint32 }{
		{0x80000000, 0}, // B2
		{0x80000000, 31},
		{0xffffffff, 4},
	}
	for _, tc := range cases {
		got := binaryOpCircuit(t, tc.v, tc.amt, func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
			return arith.BarrelShift(sink, a, b[:5], arith.ShiftRightLogical)
		})
		want := tc.v >> tc.amt
		if got != want {
			t.Errorf("BarrelShift(%#x,%d,right-logical) = %#x, want %#x", tc.v, tc.amt, got, want)
		}
	}
}

func TestBarrelShiftRightArithmetic(t *testing.T) {
	cases := []struct{ v, amt uint32 }{
		{0x80000000, 1},
		{0x80000000, 31},
		{0x7fffffff, 4},
	}
	for _, tc := range cases {
		got := binaryOpCircuit(t, tc.v, tc.amt, func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
			return arith.BarrelShift(sink, a, b[:5], arith.ShiftRightArithmetic)
		})
		want := uint32(int32(tc.v) >> tc.amt)
		if got != want {
			t.Errorf("BarrelShift(%#x,%d,right-arithmetic) = %#x, want %#x", tc.v, tc.amt, got, want)
		}
	}
}

func TestConstantShift(t *testing.T) {
	a := make([]circuit.Wire, 32)
	for i := range a {
		if (0x80000001>>uint(i))&1 != 0 {
			a[i] = circuit.Const1
		} else {
			a[i] = circuit.Const0
		}
	}

	left := arith.ConstantShift(a, 1, arith.ShiftLeft)
	if wireArrayUint32(left) != 0x00000002 {
		t.Errorf("ConstantShift left = %#x", wireArrayUint32(left))
	}

	right := arith.ConstantShift(a, 1, arith.ShiftRightArithmetic)
	if wireArrayUint32(right) != 0xc0000000 {
		t.Errorf("ConstantShift arithmetic right = %#x", wireArrayUint32(right))
	}
}

func wireArrayUint32(w []circuit.Wire) uint32 {
	var v uint32
	for i, wire := range w {
		if wire == circuit.Const1 {
			v |= 1 << uint(i)
		}
	}
	return v
}
