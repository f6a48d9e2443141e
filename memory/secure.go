package memory

import (
	"github.com/eth2030/riscv-circuit-compiler/circuit"
	"github.com/eth2030/riscv-circuit-compiler/hash"
)

// rootWidth is the width of a Merkle root or node hash: one SHA3-256
// digest.
const rootWidth = 256

// AuthPath is one access's authentication path: depth sibling hashes, root
// to leaf order reversed (index 0 is the sibling at the leaf's own level).
// Each sibling and the claimed current leaf value are supplied as public
// input wires, one AuthPath per Secure.Access call consumed in program
// order — the number of memory accesses in a program is known statically
// at compile time, so every path can be allocated up front as part of the
// circuit's input layout.
type AuthPath struct {
	ClaimedValue []circuit.Wire   // 32 wires: the word currently stored at addr
	Siblings     [][]circuit.Wire // depth entries, each rootWidth wires
}

// Secure is the Merkle-authenticated memory tier from §4.4: the only tier
// offering a cryptographic guarantee that a dishonest memory value (a
// witness that doesn't match the real root) produces an unsatisfiable
// circuit rather than a silently wrong read.
type Secure struct {
	depth    int
	root     []circuit.Wire
	paths    []AuthPath
	next     int
	violated circuit.Wire // OR-accumulation of every access's root-mismatch check
}

// NewSecure builds a Secure memory tier over 2^depth word-addressable
// leaves, given the current Merkle root (rootWidth input wires) and the
// authentication path to use for each access, in program order.
func NewSecure(depth int, root []circuit.Wire, paths []AuthPath) *Secure {
	return &Secure{depth: depth, root: root, paths: paths, violated: circuit.Const0}
}

// Root returns the tier's current root wire array — the next-state root
// after every access processed so far, suitable for routing into the
// circuit's output layout.
func (s *Secure) Root() []circuit.Wire { return s.root }

// Violated returns a single wire that is 1 iff any access this tier has
// processed failed to authenticate against the root in force at the time.
// There is no in-circuit panic or branch for a bad witness (per §4.4's
// failure model): the compiler's only job is to route this wire to a
// dedicated output bit the proving system checks equals 0, so a dishonest
// memory value manifests as an unsatisfiable proof rather than a silently
// wrong read.
func (s *Secure) Violated() circuit.Wire { return s.violated }

// Access implements Port. It consumes the next unused authentication path,
// recomputes the leaf-to-root hash chain from the claimed current value
// and asserts it reproduces the stored root (an equality the prover can
// only satisfy with an honest path), then for a write recomputes the chain
// with the new leaf value and installs the result as the tier's new root.
// A read returns the claimed value unchanged; per the failure model there
// is no runtime error for a dishonest witness — the prover simply cannot
// satisfy the resulting circuit.
func (s *Secure) Access(sink circuit.GateSink, addr, writeData []circuit.Wire, writeEnable circuit.Wire) []circuit.Wire {
	path := s.paths[s.next]
	s.next++

	selectorBits := addr[2 : 2+s.depth] // word address: byte address / 4

	oldLeaf := leafHash(sink, path.ClaimedValue)
	recomputedOldRoot := climb(sink, oldLeaf, path.Siblings, selectorBits)
	mismatch := wordsDiffer(sink, recomputedOldRoot, s.root)
	s.violated = Or(sink, s.violated, mismatch)

	newLeaf := leafHash(sink, writeData)
	newLeafSelected := muxWords(sink, writeEnable, oldLeaf, newLeaf)
	recomputedNewRoot := climb(sink, newLeafSelected, path.Siblings, selectorBits)
	s.root = recomputedNewRoot

	return path.ClaimedValue
}

// leafHash embeds a 32-bit word into the fixed 512-bit hash input (the
// word zero-extended to 256 bits, concatenated with 256 zero bits) and
// hashes it, matching crypto.MerkleAccumulator's host-side leaf hash
// bit-for-bit.
func leafHash(sink circuit.GateSink, word []circuit.Wire) []circuit.Wire {
	input := make([]circuit.Wire, 512)
	copy(input, word)
	for i := len(word); i < 512; i++ {
		input[i] = circuit.Const0
	}
	return hash.Sha3_256(sink, input)
}

// climb recomputes a root from a leaf hash and its authentication path:
// at each level, selector bit k picks whether leaf is the left or right
// child of the next node hash.
func climb(sink circuit.GateSink, leaf []circuit.Wire, siblings [][]circuit.Wire, selector []circuit.Wire) []circuit.Wire {
	current := leaf
	for level := 0; level < len(siblings); level++ {
		sibling := siblings[level]
		isRight := selector[level]

		left := muxWords(sink, isRight, current, sibling)
		right := muxWords(sink, isRight, sibling, current)

		input := make([]circuit.Wire, 512)
		copy(input[0:256], left)
		copy(input[256:512], right)
		current = hash.Sha3_256(sink, input)
	}
	return current
}

// wordsDiffer returns a single wire that is 1 iff any bit of a differs
// from the corresponding bit of b: an OR-reduction over bit-wise XOR.
func wordsDiffer(sink circuit.GateSink, a, b []circuit.Wire) circuit.Wire {
	acc := sink.Xor(a[0], b[0])
	for i := 1; i < len(a); i++ {
		acc = Or(sink, acc, sink.Xor(a[i], b[i]))
	}
	return acc
}

// Or returns a ∨ b, synthesized as (a ⊕ b) ⊕ (a ∧ b).
func Or(sink circuit.GateSink, a, b circuit.Wire) circuit.Wire {
	return sink.Xor(sink.Xor(a, b), sink.And(a, b))
}

var _ Port = (*Secure)(nil)
