package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/eth2030/riscv-circuit-compiler/circuit"
)

// encodeAddReg encodes "ADD rd, rs1, rs2" (R-type, opcode 0x33, funct3=0,
// funct7=0).
func encodeAddReg(rd, rs1, rs2 uint32) uint32 {
	return rs2<<20 | rs1<<15 | rd<<7 | 0x33
}

// encodeAddImm encodes "ADDI rd, rs1, imm" (I-type, opcode 0x13, funct3=0).
func encodeAddImm(rd, rs1 uint32, imm int32) uint32 {
	return uint32(imm)<<20 | rs1<<15 | rd<<7 | 0x13
}

func writeProgramFile(t *testing.T, dir string, words ...uint32) string {
	t.Helper()
	path := filepath.Join(dir, "prog.hex")
	var buf bytes.Buffer
	for _, w := range words {
		buf.WriteString(strconv.FormatUint(uint64(w), 16))
		buf.WriteByte('\n')
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestRunNoArgsPrintsUsage(t *testing.T) {
	if code := run(nil); code != 1 {
		t.Fatalf("run(nil) = %d, want 1", code)
	}
}

func TestRunUnknownCommand(t *testing.T) {
	if code := run([]string{"bogus"}); code != 1 {
		t.Fatalf("run([bogus]) = %d, want 1", code)
	}
}

func TestCompileAddRegWithinGateBudget(t *testing.T) {
	dir := t.TempDir()
	progPath := writeProgramFile(t, dir, encodeAddReg(3, 1, 2))
	outPath := filepath.Join(dir, "out.circuit")

	code := run([]string{"compile", "-m", "ultra", "-o", outPath, progPath})
	if code != 0 {
		t.Fatalf("compile exit = %d, want 0", code)
	}

	f, err := os.Open(outPath)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()

	c, err := circuit.Parse(f)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if c.NumGates() > 250 {
		t.Errorf("gate count = %d, want <= 250", c.NumGates())
	}
}

func TestCompileRejectsUnknownTier(t *testing.T) {
	dir := t.TempDir()
	progPath := writeProgramFile(t, dir, encodeAddReg(3, 1, 2))

	if code := run([]string{"compile", "-m", "bogus", progPath}); code != 1 {
		t.Fatalf("compile exit = %d, want 1", code)
	}
}

func TestEquivSameProgramIsEquivalent(t *testing.T) {
	dir := t.TempDir()
	progPath := writeProgramFile(t, dir, encodeAddReg(3, 1, 2))
	aPath := filepath.Join(dir, "a.circuit")
	bPath := filepath.Join(dir, "b.circuit")

	if code := run([]string{"compile", "-o", aPath, progPath}); code != 0 {
		t.Fatalf("compile a: exit %d", code)
	}
	if code := run([]string{"compile", "--dedup", "-o", bPath, progPath}); code != 0 {
		t.Fatalf("compile b: exit %d", code)
	}

	if code := run([]string{"equiv", aPath, bPath}); code != 0 {
		t.Fatalf("equiv exit = %d, want 0 (equivalent)", code)
	}
}

func TestEquivDifferentProgramsAreDivergent(t *testing.T) {
	dir := t.TempDir()
	addPath := writeProgramFile(t, dir, encodeAddReg(3, 1, 2))
	addiPath := writeProgramFile(t, dir, encodeAddImm(3, 1, 7))
	// writeProgramFile reuses the same file name; compile sequentially to
	// distinct output paths before they'd otherwise collide.
	aPath := filepath.Join(dir, "add.circuit")
	if code := run([]string{"compile", "-o", aPath, addPath}); code != 0 {
		t.Fatalf("compile add: exit %d", code)
	}
	bPath := filepath.Join(dir, "addi.circuit")
	if code := run([]string{"compile", "-o", bPath, addiPath}); code != 0 {
		t.Fatalf("compile addi: exit %d", code)
	}

	if code := run([]string{"equiv", aPath, bPath}); code != 2 {
		t.Fatalf("equiv exit = %d, want 2 (divergent)", code)
	}
}
