package hash

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// rateBits is SHA3-256's sponge rate (capacity 512 = 2*256, per FIPS 202).
const rateBits = 1600 - 2*256

// inputBits and outputBits are the fixed sizes the compiler ever needs
// from this primitive: hashing a 512-bit value (two concatenated 256-bit
// Merkle node values) down to a 256-bit digest. Since inputBits plus NIST
// padding always fits within one rateBits block, Sha3_256 never needs a
// multi-block absorb loop.
const (
	inputBits  = 512
	outputBits = 256
)

// Sha3_256 hashes a 512-wire input down to a 256-wire digest using a
// single-block SHA3-256 sponge: NIST multi-rate padding (0x06 ... 0x80)
// fills the rate to 1088 bits, capacity 512 bits starts at all-zero, one
// Keccak-f[1600] permutation runs, and the digest is the first 256 bits of
// the resulting state. Appends a constant ~190-200k gates regardless of
// input values, per §4.3.
func Sha3_256(sink circuit.GateSink, input []circuit.Wire) []circuit.Wire {
	if len(input) != inputBits {
		panic("hash: Sha3_256 requires exactly 512 input wires")
	}

	block := padBlock(input)

	initial := make([]circuit.Wire, stateWidth)
	copy(initial, block)
	for i := rateBits; i < stateWidth; i++ {
		initial[i] = circuit.Const0
	}

	out := permute(sink, initial)
	return append([]circuit.Wire(nil), out[:outputBits]...)
}

// padBlock builds the rateBits-wide absorbed block for a single-block
// SHA3-256 message: the message bits followed by NIST padding 0x06 at the
// byte immediately after the message, zero bytes, and a final 0x80 byte
// ending the block.
func padBlock(input []circuit.Wire) []circuit.Wire {
	block := make([]circuit.Wire, rateBits)
	copy(block, input)
	for i := len(input); i < rateBits; i++ {
		block[i] = circuit.Const0
	}

	// 0x06 = bits 1,2 set (LSB-first within the byte), placed at the byte
	// immediately following the message.
	block[len(input)+1] = circuit.Const1
	block[len(input)+2] = circuit.Const1

	// 0x80 = bit 7 set, placed at the block's final byte.
	block[rateBits-1] = circuit.Const1

	return block
}
