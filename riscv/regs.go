package riscv

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// RegisterMap holds the current wire array for each of the 32 general
// registers during translation. It is owned exclusively by the translator
// and borrowed non-concurrently by emitters — never aliased or shared
// across compilations.
type RegisterMap struct {
	regs [32][]circuit.Wire
}

// NewRegisterMap seeds the map from a codec's input layout: register r's
// initial wire array is the codec's input bits for r, for every register
// including x0 (whose value is fixed at 0 by the input encoding but is
// still read through the same path so Read's x0 special case is the only
// x0 rule the translator needs).
func NewRegisterMap(codec Codec) *RegisterMap {
	rm := &RegisterMap{}
	for r := 0; r < 32; r++ {
		rm.regs[r] = codec.RegisterBits(r)
	}
	return rm
}

// Read returns register r's current 32-wide wire array. x0 always reads as
// the all-constant-0 array, regardless of what was last written to slot 0 —
// per the x0 policy, writes to x0 are discarded so this is actually
// redundant with the stored state, but Read enforces it directly so the
// invariant holds even if a caller bypasses Write.
func (rm *RegisterMap) Read(r uint32) []circuit.Wire {
	if r == 0 {
		return zeroRegister[:]
	}
	return rm.regs[r]
}

// Write installs value as register r's new wire array. Writes to x0 are
// silently discarded, matching the x0 policy: x0's slot is never rebound.
func (rm *RegisterMap) Write(r uint32, value []circuit.Wire) {
	if r == 0 {
		return
	}
	rm.regs[r] = value
}

// Snapshot returns the current wire array for every register, x0..x31, for
// use building the circuit's final output designators.
func (rm *RegisterMap) Snapshot() [32][]circuit.Wire {
	return rm.regs
}

var zeroRegister = [32]circuit.Wire{
	circuit.Const0, circuit.Const0, circuit.Const0, circuit.Const0,
	circuit.Const0, circuit.Const0, circuit.Const0, circuit.Const0,
	circuit.Const0, circuit.Const0, circuit.Const0, circuit.Const0,
	circuit.Const0, circuit.Const0, circuit.Const0, circuit.Const0,
	circuit.Const0, circuit.Const0, circuit.Const0, circuit.Const0,
	circuit.Const0, circuit.Const0, circuit.Const0, circuit.Const0,
	circuit.Const0, circuit.Const0, circuit.Const0, circuit.Const0,
	circuit.Const0, circuit.Const0, circuit.Const0, circuit.Const0,
}
