package riscv

import "github.com/eth2030/riscv-circuit-compiler/circuit"

// Codec is a pure function of a memory size N (in bytes): it maps logical
// machine-state positions (PC, the 32 general registers, memory bytes) onto
// the input wire layout: bits [0,1] constants; [2,34) PC; [34,1058)
// registers x0..x31; [1058, 1058+8N) memory bytes, as specified by the
// bit-layout contract. The output layout uses the identical bit positions,
// but output wires are designated at Seal time from whatever wire in the
// circuit currently holds each state element's final value — BuildOutputs
// assembles that designator slice in the same order the input layout uses.
// The codec has no runtime state beyond N.
type Codec struct {
	MemBytes int
}

// NewCodec returns the codec for a circuit with memBytes bytes of simulated
// memory.
func NewCodec(memBytes int) Codec {
	return Codec{MemBytes: memBytes}
}

const (
	pcWidth  = 32
	regCount = 32
	regWidth = 32
)

// pcBase is the wire offset of PC's least significant bit.
const pcBase = 2

// regsBase is the wire offset of register x0's least significant bit.
const regsBase = pcBase + pcWidth

// memBase is the wire offset of memory byte 0's least significant bit.
const memBase = regsBase + regCount*regWidth

// NumInputs returns 2 + 32 + 32*32 + 8*MemBytes, the circuit's total input
// (and output) bit count for this memory size.
func (c Codec) NumInputs() int {
	return memBase + 8*c.MemBytes
}

// PCBit returns the wire index of bit i (0 = least significant) of PC.
func (c Codec) PCBit(i int) circuit.Wire {
	return circuit.Wire(pcBase + i)
}

// PCBits returns the 32-wide little-endian wire array for PC.
func (c Codec) PCBits() []circuit.Wire {
	return c.span(pcBase, pcWidth)
}

// RegisterBit returns the wire index of bit i of register r (0..31).
func (c Codec) RegisterBit(r, i int) circuit.Wire {
	return circuit.Wire(regsBase + r*regWidth + i)
}

// RegisterBits returns the 32-wide little-endian wire array for register r.
func (c Codec) RegisterBits(r int) []circuit.Wire {
	return c.span(regsBase+r*regWidth, regWidth)
}

// MemoryBit returns the wire index of bit i of the byte at byteAddr.
func (c Codec) MemoryBit(byteAddr, i int) circuit.Wire {
	return circuit.Wire(memBase + byteAddr*8 + i)
}

// MemoryByteBits returns the 8-wide little-endian wire array for the byte at
// byteAddr.
func (c Codec) MemoryByteBits(byteAddr int) []circuit.Wire {
	return c.span(memBase+byteAddr*8, 8)
}

func (c Codec) span(base, width int) []circuit.Wire {
	out := make([]circuit.Wire, width)
	for i := range out {
		out[i] = circuit.Wire(base + i)
	}
	return out
}

// BuildOutputs concatenates a final PC wire array, all 32 final register
// wire arrays (in x0..x31 order), and memBytes final memory-byte wire
// arrays into the single output designator slice Seal expects, matching the
// input layout's bit order exactly.
func (c Codec) BuildOutputs(pc []circuit.Wire, regs [regCount][]circuit.Wire, mem [][]circuit.Wire) []circuit.Wire {
	out := make([]circuit.Wire, 0, c.NumInputs())
	out = append(out, circuit.Const0, circuit.Const1)
	out = append(out, pc...)
	for r := 0; r < regCount; r++ {
		out = append(out, regs[r]...)
	}
	for b := 0; b < c.MemBytes; b++ {
		out = append(out, mem[b]...)
	}
	return out
}
