package arith_test

import (
	"math/rand"
	"testing"

	"github.com/eth2030/riscv-circuit-compiler/arith"
	"github.com/eth2030/riscv-circuit-compiler/circuit"
)

func TestMultiplyLow(t *testing.T) {
	cases := []struct{ a, b uint32 }{
		{0, 0},
		{1, 1},
		{3, 7},
		{0xffffffff, 2},
		{0x12345678, 0x9abcdef0},
	}
	for _, tc := range cases {
		got := binaryOpCircuit(t, tc.a, tc.b, func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
			return arith.Multiply(sink, a, b, true, true).Low
		})
		want := tc.a * tc.b
		if got != want {
			t.Errorf("MUL(%#x,%#x) low = %#x, want %#x", tc.a, tc.b, got, want)
		}
	}
}

func TestMultiplyHighSigned(t *testing.T) {
	// MULH: high 32 bits of the signed*signed 64-bit product.
	cases := []struct{ a, b int32 }{
		{-1, -1},
		{-1, 1},
		{1000000, 1000000},
		{-2000000000, 2000000000},
	}
	for _, tc := range cases {
		got := binaryOpCircuit(t, uint32(tc.a), uint32(tc.b), func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
			return arith.Multiply(sink, a, b, true, true).High
		})
		want := uint32((int64(tc.a) * int64(tc.b)) >> 32)
		if got != want {
			t.Errorf("MULH(%d,%d) = %#x, want %#x", tc.a, tc.b, got, want)
		}
	}
}

func TestMultiplyHighUnsigned(t *testing.T) {
	cases := []struct{ a, b uint32 }{
		{0xffffffff, 0xffffffff},
		{0x80000000, 2},
	}
	for _, tc := range cases {
		got := binaryOpCircuit(t, tc.a, tc.b, func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
			return arith.Multiply(sink, a, b, false, false).High
		})
		want := uint32((uint64(tc.a) * uint64(tc.b)) >> 32)
		if got != want {
			t.Errorf("MULHU(%#x,%#x) = %#x, want %#x", tc.a, tc.b, got, want)
		}
	}
}

func TestMultiplyHighSignedUnsigned(t *testing.T) {
	// MULHSU: a signed, b unsigned.
	cases := []struct {
		a int32
		b uint32
	}{
		{-1, 0xffffffff},
		{5, 0xffffffff},
		{-1000, 1000000},
	}
	for _, tc := range cases {
		got := binaryOpCircuit(t, uint32(tc.a), tc.b, func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
			return arith.Multiply(sink, a, b, true, false).High
		})
		want := uint32((int64(tc.a) * int64(int64(tc.b))) >> 32)
		if got != want {
			t.Errorf("MULHSU(%d,%#x) = %#x, want %#x", tc.a, tc.b, got, want)
		}
	}
}

func TestMultiplyRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 30; i++ {
		a := rng.Uint32()
		b := rng.Uint32()
		gotLow := binaryOpCircuit(t, a, b, func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
			return arith.Multiply(sink, a, b, false, false).Low
		})
		gotHigh := binaryOpCircuit(t, a, b, func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
			return arith.Multiply(sink, a, b, false, false).High
		})
		want := uint64(a) * uint64(b)
		if uint64(gotHigh)<<32|uint64(gotLow) != want {
			t.Fatalf("MULU(%#x,%#x) = %#x:%#x, want %#x", a, b, gotHigh, gotLow, want)
		}
	}
}
