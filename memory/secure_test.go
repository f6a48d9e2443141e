package memory_test

import (
	"testing"

	"github.com/eth2030/riscv-circuit-compiler/circuit"
	"github.com/eth2030/riscv-circuit-compiler/crypto"
	"github.com/eth2030/riscv-circuit-compiler/eval"
	"github.com/eth2030/riscv-circuit-compiler/memory"
)

func hashToWires(h crypto.Hash) []circuit.Wire {
	out := make([]circuit.Wire, 256)
	for byteIdx, b := range h {
		for bit := 0; bit < 8; bit++ {
			if (b>>uint(bit))&1 != 0 {
				out[byteIdx*8+bit] = circuit.Const1
			} else {
				out[byteIdx*8+bit] = circuit.Const0
			}
		}
	}
	return out
}

func wordToHash(v uint32) crypto.Hash {
	var h crypto.Hash
	h[0] = byte(v)
	h[1] = byte(v >> 8)
	h[2] = byte(v >> 16)
	h[3] = byte(v >> 24)
	return h
}

var zero32Bytes [32]byte

// leafHash and nodeHash mirror the memory package's in-circuit hash
// contract exactly (leaf = SHA3-256(word || 32 zero bytes), node =
// SHA3-256(left || right)), used here to build a small host-side tree to
// generate authentication paths against.
func leafHash(word uint32) crypto.Hash {
	return crypto.Sha3_256Hash(wordToHash(word)[:], zero32Bytes[:])
}

func nodeHash(left, right crypto.Hash) crypto.Hash {
	return crypto.Sha3_256Hash(left[:], right[:])
}

// buildTree returns the root and, for each leaf, its per-level sibling
// path (leaf-to-root order) over a depth-3 (8-leaf) tree.
func buildTree(leaves [8]uint32) (root crypto.Hash, paths [8][3]crypto.Hash) {
	var level0 [8]crypto.Hash
	for i, w := range leaves {
		level0[i] = leafHash(w)
	}
	for i := 0; i < 8; i++ {
		paths[i][0] = level0[i^1]
	}

	var level1 [4]crypto.Hash
	for i := 0; i < 4; i++ {
		level1[i] = nodeHash(level0[2*i], level0[2*i+1])
	}
	for i := 0; i < 8; i++ {
		paths[i][1] = level1[(i/2)^1]
	}

	var level2 [2]crypto.Hash
	for i := 0; i < 2; i++ {
		level2[i] = nodeHash(level1[2*i], level1[2*i+1])
	}
	for i := 0; i < 8; i++ {
		paths[i][2] = level2[(i/4)^1]
	}

	root = nodeHash(level2[0], level2[1])
	return root, paths
}

// TestSecureWriteThenRead is R2: write(addr, v); read(addr) == v holds
// when both operations consume authentication paths generated by the
// host-side tree, and no access flags a root-mismatch violation.
func TestSecureWriteThenRead(t *testing.T) {
	const depth = 3
	const targetIndex = 5

	var leaves [8]uint32
	rootBeforeWrite, pathsBeforeWrite := buildTree(leaves)

	newValue := uint32(0xcafef00d)
	leaves[targetIndex] = newValue
	_, pathsAfterWrite := buildTree(leaves)

	writePath := memory.AuthPath{
		ClaimedValue: constWord(0),
		Siblings:     siblingsToWires(pathsBeforeWrite[targetIndex][:]),
	}
	readPath := memory.AuthPath{
		ClaimedValue: constWord(newValue),
		Siblings:     siblingsToWires(pathsAfterWrite[targetIndex][:]),
	}

	c, err := circuit.Create(2+64, 32+1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	addr := make([]circuit.Wire, 32)
	writeData := make([]circuit.Wire, 32)
	for i := 0; i < 32; i++ {
		addr[i] = circuit.Wire(2 + i)
		writeData[i] = circuit.Wire(2 + 32 + i)
	}

	root := hashToWires(rootBeforeWrite)
	sec := memory.NewSecure(depth, root, []memory.AuthPath{writePath, readPath})

	sec.Access(c, addr, writeData, circuit.Const1)
	readOut := sec.Access(c, addr, constWord(0), circuit.Const0)

	outputs := append(append([]circuit.Wire(nil), readOut...), sec.Violated())
	if err := c.Seal(outputs); err != nil {
		t.Fatalf("Seal: %v", err)
	}

	inputBits := make([]bool, c.NumInputs())
	inputBits[1] = true
	copy(inputBits[2:34], eval.BitsFromUint32LE(uint32(targetIndex<<2), 32))
	copy(inputBits[34:66], eval.BitsFromUint32LE(newValue, 32))

	outBits, err := eval.EvaluateOutputs(c, inputBits)
	if err != nil {
		t.Fatalf("EvaluateOutputs: %v", err)
	}
	if got := eval.Uint32FromBitsLE(outBits[0:32]); got != newValue {
		t.Errorf("Secure write-then-read = %#x, want %#x", got, newValue)
	}
	if outBits[32] {
		t.Errorf("Secure memory flagged a violation on an honest witness")
	}
}

// TestSecureDetectsDishonestWitness confirms a claimed value that doesn't
// match the real tree content flags Violated, per §4.4's failure model.
func TestSecureDetectsDishonestWitness(t *testing.T) {
	const depth = 3
	const targetIndex = 2

	var leaves [8]uint32
	leaves[targetIndex] = 0x11111111
	root, paths := buildTree(leaves)

	badPath := memory.AuthPath{
		ClaimedValue: constWord(0x22222222), // wrong: real value is 0x11111111
		Siblings:     siblingsToWires(paths[targetIndex][:]),
	}

	c, err := circuit.Create(2+64, 1)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	addr := make([]circuit.Wire, 32)
	for i := range addr {
		addr[i] = circuit.Wire(2 + i)
	}
	writeData := constWord(0)

	sec := memory.NewSecure(depth, hashToWires(root), []memory.AuthPath{badPath})
	sec.Access(c, addr, writeData, circuit.Const0)

	if err := c.Seal([]circuit.Wire{sec.Violated()}); err != nil {
		t.Fatalf("Seal: %v", err)
	}

	inputBits := make([]bool, c.NumInputs())
	inputBits[1] = true
	copy(inputBits[2:34], eval.BitsFromUint32LE(uint32(targetIndex<<2), 32))

	outBits, err := eval.EvaluateOutputs(c, inputBits)
	if err != nil {
		t.Fatalf("EvaluateOutputs: %v", err)
	}
	if !outBits[0] {
		t.Errorf("Secure memory did not flag a dishonest witness")
	}
}

func siblingsToWires(siblings []crypto.Hash) [][]circuit.Wire {
	out := make([][]circuit.Wire, len(siblings))
	for i, s := range siblings {
		out[i] = hashToWires(s)
	}
	return out
}
