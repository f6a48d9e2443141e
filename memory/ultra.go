package memory

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// ultraWords is the word capacity of the Ultra tier: up to 8 words
// addressed by the 3 word-address bits [2,5) of the byte address.
const ultraWords = 8

// Ultra is a direct fan-out memory with no cryptographic authentication,
// sized for demos and small differential tests: up to 8 32-bit words,
// addressed by bits [2,5) of the byte address (word-aligned).
type Ultra struct {
	words [ultraWords][]circuit.Wire
}

// NewUltra builds an Ultra memory whose initial word contents are supplied
// as input wire arrays, one per word slot (nil entries default to
// all-constant-0).
func NewUltra(initial [ultraWords][]circuit.Wire) *Ultra {
	u := &Ultra{}
	for i := range u.words {
		if initial[i] != nil {
			u.words[i] = initial[i]
		} else {
			u.words[i] = make([]circuit.Wire, 32)
			for j := range u.words[i] {
				u.words[i][j] = circuit.Const0
			}
		}
	}
	return u
}

// Access implements Port: bits 2..4 of addr choose one of the 8 word
// banks; the read is a balanced MUX tree over the banks, and a write
// updates only the bank whose one-hot decode matches, passing the others
// through unchanged.
func (u *Ultra) Access(sink circuit.GateSink, addr, writeData []circuit.Wire, writeEnable circuit.Wire) []circuit.Wire {
	sel := addr[2:5]
	readData := oneHotSelect(sink, sel, u.words[:])

	for i := range u.words {
		isSelected := oneHotEquals(sink, sel, i)
		writeThis := sink.And(isSelected, writeEnable)
		u.words[i] = muxWords(sink, writeThis, u.words[i], writeData)
	}

	return readData
}

// oneHotSelect builds a balanced MUX tree reading bank[idx] where idx is
// encoded little-endian across sel.
func oneHotSelect(sink circuit.GateSink, sel []circuit.Wire, banks [][]circuit.Wire) []circuit.Wire {
	cur := make([][]circuit.Wire, len(banks))
	copy(cur, banks)

	for _, s := range sel {
		var next [][]circuit.Wire
		for i := 0; i+1 < len(cur); i += 2 {
			next = append(next, muxWords(sink, s, cur[i], cur[i+1]))
		}
		if len(cur)%2 == 1 {
			next = append(next, cur[len(cur)-1])
		}
		cur = next
	}
	return cur[0]
}

func muxWords(sink circuit.GateSink, sel circuit.Wire, in0, in1 []circuit.Wire) []circuit.Wire {
	out := make([]circuit.Wire, len(in0))
	for i := range in0 {
		out[i] = muxBit(sink, sel, in0[i], in1[i])
	}
	return out
}

func muxBit(sink circuit.GateSink, sel, in0, in1 circuit.Wire) circuit.Wire {
	return sink.Xor(in0, sink.And(sel, sink.Xor(in0, in1)))
}

// oneHotEquals returns a wire that is 1 iff the integer encoded
// little-endian across sel equals idx.
func oneHotEquals(sink circuit.GateSink, sel []circuit.Wire, idx int) circuit.Wire {
	acc := circuit.Const1
	for i, s := range sel {
		bit := (idx >> uint(i)) & 1
		var match circuit.Wire
		if bit == 1 {
			match = s
		} else {
			match = sink.Xor(s, circuit.Const1)
		}
		acc = sink.And(acc, match)
	}
	return acc
}

// Words returns the tier's current word contents, in bank order, for
// splicing into a circuit's output layout.
func (u *Ultra) Words() [ultraWords][]circuit.Wire { return u.words }

var _ Port = (*Ultra)(nil)
