// Package memory implements the three interchangeable memory tiers behind
// a single access contract: Ultra (direct 8-word fan-out, no
// authentication), Simple (256-word fan-out, no authentication), and
// Secure (Merkle-authenticated, arbitrary size). The translator is
// parameterized over Port and never branches on which tier it holds.
package memory

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// Port is the common memory-access contract every tier implements:
// access(addr, write_data, write_enable) -> read_data, per §4.4. A read-only
// access passes circuit.Const0 for writeEnable; the returned wires are the
// word observed at addr before any write this access performs.
type Port interface {
	Access(sink circuit.GateSink, addr, writeData []circuit.Wire, writeEnable circuit.Wire) []circuit.Wire
}
