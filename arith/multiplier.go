package arith

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// boothContainerWidth is the width each 32-bit operand is sign/zero
// extended to before Booth decoding. Two guard bits above the operand's
// natural sign position give enough headroom for the ±2A partial product
// magnitude and for mixed signed/unsigned operand extension (MULHSU) to
// stay correct: extending each operand independently, by its own
// signedness, into this wider two's-complement container and then running
// an ordinary signed radix-4 Booth decode on the container is the standard
// technique for building a signed/unsigned/mixed multiplier from one
// signed core.
const boothContainerWidth = 34

// boothGroups is the number of overlapping 3-bit windows scanned over the
// container width (ceil(34/2) = 17, one more than the 16 a bare 32-bit
// operand would need, to fully cover the two guard bits).
const boothGroups = 17

// productWidth is wide enough to hold every partial product's sign
// extension without truncation: the last group shifts by 2*16=32 bits and
// contributes a 34-bit row, reaching bit 65.
const productWidth = 66

// MultiplyResult holds the full 64-bit product of two 32-bit operands,
// split into low and high halves matching MUL and MULH*.
type MultiplyResult struct {
	Low  []circuit.Wire // bits [0,32) of the product — MUL
	High []circuit.Wire // bits [32,64) of the product — MULH/MULHU/MULHSU
}

// Multiply computes the signed-or-unsigned product of a and b (32-bit wire
// arrays each) using radix-4 Booth encoding and a carry-save reduction
// tree, per §4.2. aSigned/bSigned select two's-complement vs. zero
// extension for each operand independently, which is all MULHSU needs on
// top of MUL/MULH/MULHU.
func Multiply(sink circuit.GateSink, a, b []circuit.Wire, aSigned, bSigned bool) MultiplyResult {
	aExt := extendOperand(a, aSigned)
	bExt := extendOperand(b, bSigned)

	rows := make([][]circuit.Wire, boothGroups)
	var prevBit circuit.Wire = circuit.Const0
	for i := 0; i < boothGroups; i++ {
		b0 := prevBit
		b1 := boothBit(bExt, 2*i)
		b2 := boothBit(bExt, 2*i+1)
		prevBit = b2

		row34 := boothPartialProduct(sink, aExt, b0, b1, b2)
		rows[i] = embedRow(row34, 2*i)
	}

	sum := reduceRows(sink, rows)
	return MultiplyResult{Low: sum[0:32], High: sum[32:64]}
}

func extendOperand(a []circuit.Wire, signed bool) []circuit.Wire {
	if signed {
		return SignExtend(a, boothContainerWidth)
	}
	return ZeroExtend(a, boothContainerWidth)
}

// boothBit returns bit i of a Booth-extended operand, or its sign bit if i
// runs past the container width. With boothGroups = 17 the highest index
// Multiply reads is 33 = boothContainerWidth-1, so the fallback is never
// taken; a bit past the container would equal the sign in any case.
func boothBit(a []circuit.Wire, i int) circuit.Wire {
	if i < len(a) {
		return a[i]
	}
	return a[len(a)-1]
}

// boothPartialProduct decodes one radix-4 Booth window (b2,b1,b0) =
// (y_{2i+1}, y_{2i}, y_{2i-1}) into the signed multiple of a it selects:
// 0, ±a, or ±2a. Returns a boothContainerWidth-wide two's-complement row.
func boothPartialProduct(sink circuit.GateSink, a []circuit.Wire, b0, b1, b2 circuit.Wire) []circuit.Wire {
	n := boothContainerWidth

	one := sink.Xor(b0, b1)
	two := Or(sink,
		sink.And(b1, sink.And(b0, Not(sink, b2))),
		sink.And(Not(sink, b1), sink.And(Not(sink, b0), b2)),
	)
	neg := b2

	zero := Constant(n, 0)
	twoA := ConstantShift(a, 1, ShiftLeft)

	magnitude := MuxArray(sink, two, MuxArray(sink, one, zero, a), twoA)

	negated := KoggeStoneAdd(sink, NotArray(sink, magnitude), zero, circuit.Const1).Sum
	return MuxArray(sink, neg, magnitude, negated)
}

// embedRow places a boothContainerWidth-wide signed row into a
// productWidth-wide two's-complement container shifted left by offset,
// zero-filling below the shift and sign-extending above the row's natural
// span so the carry-save sum below still reads as ordinary two's
// complement addition.
func embedRow(row []circuit.Wire, offset int) []circuit.Wire {
	out := make([]circuit.Wire, productWidth)
	sign := row[len(row)-1]
	for j := 0; j < productWidth; j++ {
		switch {
		case j < offset:
			out[j] = circuit.Const0
		case j < offset+len(row):
			out[j] = row[j-offset]
		default:
			out[j] = sign
		}
	}
	return out
}

// reduceRows sums the partial product rows with a carry-save adder tree
// (3:2 compressors built from XOR/AND, per §4.2) down to two rows, then
// finishes with a single Kogge-Stone addition.
func reduceRows(sink circuit.GateSink, rows [][]circuit.Wire) []circuit.Wire {
	for len(rows) > 2 {
		var next [][]circuit.Wire
		i := 0
		for ; i+3 <= len(rows); i += 3 {
			sum, carry := carrySaveReduce(sink, rows[i], rows[i+1], rows[i+2])
			next = append(next, sum, carry)
		}
		for ; i < len(rows); i++ {
			next = append(next, rows[i])
		}
		rows = next
	}
	return KoggeStoneAdd(sink, rows[0], rows[1], circuit.Const0).Sum
}

// carrySaveReduce compresses three equal-width rows into a sum row and a
// carry row (shifted left one bit, as a full adder's carry output feeds
// the next bit position), preserving the total value x+y+z.
func carrySaveReduce(sink circuit.GateSink, x, y, z []circuit.Wire) (sum, carry []circuit.Wire) {
	n := len(x)
	sum = make([]circuit.Wire, n)
	carry = make([]circuit.Wire, n)
	carry[0] = circuit.Const0
	for j := 0; j < n; j++ {
		xy := sink.Xor(x[j], y[j])
		sum[j] = sink.Xor(xy, z[j])
		c := Or(sink, sink.And(x[j], y[j]), sink.And(xy, z[j]))
		if j+1 < n {
			carry[j+1] = c
		}
	}
	return sum, carry
}
