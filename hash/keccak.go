// Package hash implements the Keccak-f[1600] permutation and the
// SHA3-256 sponge construction as a combinational circuit, per §4.3: θ and
// ι are pure XOR networks, ρ and π are pure lane rewiring (zero gates),
// and χ is the only non-linear step (a ⊕ ((¬b) ∧ c) per lane bit),
// accounting for the construction's entire AND-gate cost.
package hash

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// laneWidth is the width in bits of one of the 25 lanes making up the
// 1600-bit Keccak state.
const laneWidth = 64

// stateWidth is the total width of the Keccak-f[1600] state.
const stateWidth = 25 * laneWidth

// rounds is the number of Keccak-f[1600] rounds.
const rounds = 24

// rhoOffsets is the per-lane rotation amount applied during ρ, indexed
// [x][y].
var rhoOffsets = [5][5]int{
	{0, 36, 3, 41, 18},
	{1, 44, 10, 45, 2},
	{62, 6, 43, 15, 61},
	{28, 55, 25, 21, 56},
	{27, 20, 39, 8, 14},
}

// roundConstants is ι's per-round XOR mask applied to lane(0,0), standard
// Keccak-f[1600] values.
var roundConstants = [rounds]uint64{
	0x0000000000000001, 0x0000000000008082, 0x800000000000808a, 0x8000000080008000,
	0x000000000000808b, 0x0000000080000001, 0x8000000080008081, 0x8000000000008009,
	0x000000000000008a, 0x0000000000000088, 0x0000000080008009, 0x000000008000000a,
	0x000000008000808b, 0x800000000000008b, 0x8000000000008089, 0x8000000000008003,
	0x8000000000008002, 0x8000000000000080, 0x000000000000800a, 0x800000008000000a,
	0x8000000080008081, 0x8000000000008080, 0x0000000080000001, 0x8000000080008008,
}

// state is the 1600-bit Keccak state, held as 5x5 lanes of laneWidth wires
// each, lane(x,y) least-significant-bit first.
type state [5][5][]circuit.Wire

func newStateFromWires(wires []circuit.Wire) state {
	var s state
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			off := laneWidth * (5*y + x)
			s[x][y] = append([]circuit.Wire(nil), wires[off:off+laneWidth]...)
		}
	}
	return s
}

func (s state) toWires() []circuit.Wire {
	out := make([]circuit.Wire, stateWidth)
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			off := laneWidth * (5*y + x)
			copy(out[off:off+laneWidth], s[x][y])
		}
	}
	return out
}

// permute applies the 24-round Keccak-f[1600] permutation to a 1600-wire
// state array and returns the result.
func permute(sink circuit.GateSink, input []circuit.Wire) []circuit.Wire {
	s := newStateFromWires(input)
	for r := 0; r < rounds; r++ {
		s = theta(sink, s)
		s = rhoPi(s)
		s = chi(sink, s)
		s = iota_(sink, s, r)
	}
	return s.toWires()
}

func theta(sink circuit.GateSink, s state) state {
	var c [5][]circuit.Wire
	for x := 0; x < 5; x++ {
		c[x] = xorLane(sink, xorLane(sink, xorLane(sink, s[x][0], s[x][1]), xorLane(sink, s[x][2], s[x][3])), s[x][4])
	}

	var d [5][]circuit.Wire
	for x := 0; x < 5; x++ {
		left := c[(x+4)%5]
		right := rotateLane(c[(x+1)%5], 1)
		d[x] = xorLane(sink, left, right)
	}

	var out state
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			out[x][y] = xorLane(sink, s[x][y], d[x])
		}
	}
	return out
}

// rhoPi applies ρ (per-lane rotation) and π (lane rearrangement) together.
// Both are pure rewiring: rotation permutes bit positions within a lane,
// and rearrangement permutes which (x,y) slot holds which lane — neither
// touches a gate.
func rhoPi(s state) state {
	var out state
	for x := 0; x < 5; x++ {
		for y := 0; y < 5; y++ {
			rotated := rotateLane(s[x][y], rhoOffsets[x][y])
			nx, ny := y, (2*x+3*y)%5
			out[nx][ny] = rotated
		}
	}
	return out
}

func chi(sink circuit.GateSink, s state) state {
	var out state
	for y := 0; y < 5; y++ {
		for x := 0; x < 5; x++ {
			notNext := notLane(sink, s[(x+1)%5][y])
			andNext := andLane(sink, notNext, s[(x+2)%5][y])
			out[x][y] = xorLane(sink, s[x][y], andNext)
		}
	}
	return out
}

func iota_(sink circuit.GateSink, s state, round int) state {
	rc := roundConstants[round]
	lane := s[0][0]
	out := s
	newLane := make([]circuit.Wire, laneWidth)
	for z := 0; z < laneWidth; z++ {
		if (rc>>uint(z))&1 != 0 {
			newLane[z] = sink.Xor(lane[z], circuit.Const1)
		} else {
			newLane[z] = lane[z]
		}
	}
	out[0][0] = newLane
	return out
}

// rotateLane cyclically rotates a lane left by n bits; pure rewiring.
func rotateLane(lane []circuit.Wire, n int) []circuit.Wire {
	w := len(lane)
	n = ((n % w) + w) % w
	if n == 0 {
		return lane
	}
	out := make([]circuit.Wire, w)
	for z := 0; z < w; z++ {
		out[(z+n)%w] = lane[z]
	}
	return out
}

func xorLane(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
	out := make([]circuit.Wire, len(a))
	for i := range a {
		out[i] = sink.Xor(a[i], b[i])
	}
	return out
}

func andLane(sink circuit.GateSink, a, b []circuit.Wire) []circuit.Wire {
	out := make([]circuit.Wire, len(a))
	for i := range a {
		out[i] = sink.And(a[i], b[i])
	}
	return out
}

func notLane(sink circuit.GateSink, a []circuit.Wire) []circuit.Wire {
	out := make([]circuit.Wire, len(a))
	for i := range a {
		out[i] = sink.Xor(a[i], circuit.Const1)
	}
	return out
}
