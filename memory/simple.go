package memory

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// simpleWords is the word capacity of the Simple tier: up to 256 words
// addressed by bits [2,10) of the byte address.
const simpleWords = 256

// Simple is the same direct fan-out shape as Ultra scaled up to 256 words,
// still with no authentication.
type Simple struct {
	words [simpleWords][]circuit.Wire
}

// NewSimple builds a Simple memory whose initial word contents are
// supplied as input wire arrays, one per word slot (nil entries default to
// all-constant-0).
func NewSimple(initial [simpleWords][]circuit.Wire) *Simple {
	s := &Simple{}
	for i := range s.words {
		if initial[i] != nil {
			s.words[i] = initial[i]
		} else {
			s.words[i] = make([]circuit.Wire, 32)
			for j := range s.words[i] {
				s.words[i][j] = circuit.Const0
			}
		}
	}
	return s
}

// Access implements Port, identically to Ultra but over 8 address bits.
func (s *Simple) Access(sink circuit.GateSink, addr, writeData []circuit.Wire, writeEnable circuit.Wire) []circuit.Wire {
	sel := addr[2:10]
	readData := oneHotSelect(sink, sel, s.words[:])

	for i := range s.words {
		isSelected := oneHotEquals(sink, sel, i)
		writeThis := sink.And(isSelected, writeEnable)
		s.words[i] = muxWords(sink, writeThis, s.words[i], writeData)
	}

	return readData
}

// Words returns the tier's current word contents, in bank order, for
// splicing into a circuit's output layout.
func (s *Simple) Words() [simpleWords][]circuit.Wire { return s.words }

var _ Port = (*Simple)(nil)
