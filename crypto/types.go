package crypto

import "encoding/hex"

// Hash is a 32-byte digest, the output width of SHA3-256 and legacy
// Keccak-256 alike.
type Hash [32]byte

// BytesToHash truncates or zero-extends b to fit in a Hash.
func BytesToHash(b []byte) Hash {
	var h Hash
	if len(b) > len(h) {
		b = b[len(b)-len(h):]
	}
	copy(h[len(h)-len(b):], b)
	return h
}

// HexToHash parses a hex string (with or without a leading "0x") into a Hash.
func HexToHash(s string) Hash {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	b, _ := hex.DecodeString(s)
	return BytesToHash(b)
}

// String returns the 0x-prefixed hex encoding of h.
func (h Hash) String() string {
	return "0x" + hex.EncodeToString(h[:])
}
