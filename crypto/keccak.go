package crypto

import "golang.org/x/crypto/sha3"

// Keccak256 calculates the legacy Keccak-256 hash (0x01 padding) of the
// given data. Kept for differential testing of padding edge cases against
// the in-circuit permutation; Sha3_256 is the primitive the memory and
// instruction-translator packages actually build on.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates Keccak-256 and returns it as a Hash.
func Keccak256Hash(data ...[]byte) Hash {
	return BytesToHash(Keccak256(data...))
}

// Sha3_256 calculates the NIST SHA3-256 hash (0x06 padding, FIPS 202) of
// the given data. This is the host-side ground truth for the in-circuit
// hash primitive.
func Sha3_256(data ...[]byte) []byte {
	d := sha3.New256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Sha3_256Hash calculates SHA3-256 and returns it as a Hash.
func Sha3_256Hash(data ...[]byte) Hash {
	return BytesToHash(Sha3_256(data...))
}
