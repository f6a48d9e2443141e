package arith_test

import (
	"testing"

	"github.com/eth2030/riscv-circuit-compiler/arith"
	"github.com/eth2030/riscv-circuit-compiler/circuit"
)

func TestSub(t *testing.T) {
	cases := []struct{ a, b uint32 }{
		{10, 3},
		{0, 1}, // underflow
		{5, 5},
		{0xffffffff, 0xffffffff},
	}
	for _, tc := range cases {
		got := binaryOpCircuit(t, tc.a, tc.b, func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
			return arith.Sub(sink, a, b).Diff
		})
		want := tc.a - tc.b
		if got != want {
			t.Errorf("Sub(%d,%d) = %d, want %d", tc.a, tc.b, got, want)
		}
	}
}

func TestSubBorrowOut(t *testing.T) {
	out := wideOpCircuit(t, 0, 1, func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
		return []circuit.Wire{arith.Sub(sink, a, b).BorrowOut}
	}, 1)
	if !out[0] {
		t.Errorf("Sub(0,1).BorrowOut = false, want true")
	}

	out = wideOpCircuit(t, 5, 3, func(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
		return []circuit.Wire{arith.Sub(sink, a, b).BorrowOut}
	}, 1)
	if out[0] {
		t.Errorf("Sub(5,3).BorrowOut = true, want false")
	}
}
