package riscv_test

import (
	"testing"

	"github.com/eth2030/riscv-circuit-compiler/riscv"
)

func TestCodecNumInputs(t *testing.T) {
	c := riscv.NewCodec(16)
	// 2 constants + 32 PC + 32*32 registers + 8*16 memory bits.
	want := 2 + 32 + 32*32 + 8*16
	if got := c.NumInputs(); got != want {
		t.Errorf("NumInputs() = %d, want %d", got, want)
	}
}

func TestCodecPCBits(t *testing.T) {
	c := riscv.NewCodec(0)
	bits := c.PCBits()
	if len(bits) != 32 {
		t.Fatalf("PCBits() len = %d, want 32", len(bits))
	}
	if bits[0] != c.PCBit(0) || bits[31] != c.PCBit(31) {
		t.Errorf("PCBits() does not agree with PCBit()")
	}
	if int(bits[0]) != 2 {
		t.Errorf("PC base wire = %d, want 2", bits[0])
	}
}

func TestCodecRegisterLayout(t *testing.T) {
	c := riscv.NewCodec(0)
	x0 := c.RegisterBits(0)
	x1 := c.RegisterBits(1)
	if int(x0[0]) != 34 {
		t.Errorf("x0 base wire = %d, want 34", x0[0])
	}
	if int(x1[0]) != 34+32 {
		t.Errorf("x1 base wire = %d, want %d", x1[0], 34+32)
	}
}

func TestCodecMemoryLayout(t *testing.T) {
	c := riscv.NewCodec(4)
	memBase := 34 + 32*32
	b0 := c.MemoryByteBits(0)
	if int(b0[0]) != memBase {
		t.Errorf("memory byte 0 base wire = %d, want %d", b0[0], memBase)
	}
	b3 := c.MemoryByteBits(3)
	if int(b3[0]) != memBase+3*8 {
		t.Errorf("memory byte 3 base wire = %d, want %d", b3[0], memBase+3*8)
	}
}
