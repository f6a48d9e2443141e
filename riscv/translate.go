package riscv

import (
	"fmt"

	"github.com/eth2030/riscv-circuit-compiler/arith"
	"github.com/eth2030/riscv-circuit-compiler/circuit"
	"github.com/eth2030/riscv-circuit-compiler/memory"
)

// TranslateError reports that an emitter encountered an instruction class
// or field combination it does not support.
type TranslateError struct {
	PC  uint32
	Raw uint32
	Msg string
}

func (e *TranslateError) Error() string {
	return fmt.Sprintf("riscv: translate error at pc=0x%08x word=0x%08x: %s", e.PC, e.Raw, e.Msg)
}

// Translator holds the per-compilation state an emitter reads and mutates:
// the register map, the memory port, and the current PC wire array. It is
// owned exclusively by the caller driving compilation; nothing here is
// safe for concurrent use.
type Translator struct {
	Regs   *RegisterMap
	Mem    memory.Port
	PC     []circuit.Wire
	halted bool
}

// NewTranslator builds a translator whose initial register and PC state
// come from codec's input layout.
func NewTranslator(codec Codec, mem memory.Port) *Translator {
	return &Translator{
		Regs: NewRegisterMap(codec),
		Mem:  mem,
		PC:   codec.PCBits(),
	}
}

// Halted reports whether the translator has processed an ECALL/EBREAK and
// is freezing PC. Once set, Translate must not be called again for this
// compilation.
func (t *Translator) Halted() bool { return t.halted }

// Translate reads all source operands from the register map before writing
// any result, so e.g. ADD x3, x3, x3 observes x3's pre-instruction value on
// both operands, and installs the next PC. It dispatches to the emitter for
// instr.Class.
func (t *Translator) Translate(sink circuit.GateSink, pc uint32, instr *Instruction) error {
	if t.halted {
		return &TranslateError{PC: pc, Raw: instr.Raw, Msg: "translate called after halt"}
	}

	switch instr.Class {
	case ClassAluReg:
		return t.emitAluReg(sink, pc, instr)
	case ClassAluImm:
		return t.emitAluImm(sink, pc, instr)
	case ClassLoad:
		return t.emitLoad(sink, pc, instr)
	case ClassStore:
		return t.emitStore(sink, pc, instr)
	case ClassBranch:
		return t.emitBranch(sink, pc, instr)
	case ClassJAL:
		return t.emitJAL(sink, pc, instr)
	case ClassJALR:
		return t.emitJALR(sink, pc, instr)
	case ClassLUI:
		return t.emitLUI(sink, instr)
	case ClassAUIPC:
		return t.emitAUIPC(sink, pc, instr)
	case ClassFence:
		t.advancePC(sink)
		return nil
	case ClassSystem:
		t.halted = true
		return nil
	default:
		return &TranslateError{PC: pc, Raw: instr.Raw, Msg: "unsupported instruction class"}
	}
}

func (t *Translator) advancePC(sink circuit.GateSink) {
	four := arith.Constant(32, 4)
	t.PC = arith.KoggeStoneAdd(sink, t.PC, four, circuit.Const0).Sum
}

func (t *Translator) emitAluReg(sink circuit.GateSink, pc uint32, instr *Instruction) error {
	a := t.Regs.Read(instr.Rs1)
	b := t.Regs.Read(instr.Rs2)

	var result []circuit.Wire
	switch {
	case instr.Funct7 == 0x01:
		result = emitMulDiv(sink, instr.Funct3, a, b)
	case instr.Funct3 == 0x0 && instr.Funct7 == 0x00:
		result = arith.KoggeStoneAdd(sink, a, b, circuit.Const0).Sum
	case instr.Funct3 == 0x0 && instr.Funct7 == 0x20:
		result = arith.Sub(sink, a, b).Diff
	case instr.Funct3 == 0x1:
		result = arith.BarrelShift(sink, a, b[:5], arith.ShiftLeft)
	case instr.Funct3 == 0x2:
		result = boolTo32(sink, arith.SignedLessThan(sink, a, b))
	case instr.Funct3 == 0x3:
		result = boolTo32(sink, arith.UnsignedLessThan(sink, a, b))
	case instr.Funct3 == 0x4:
		result = arith.XorArray(sink, a, b)
	case instr.Funct3 == 0x5 && instr.Funct7 == 0x00:
		result = arith.BarrelShift(sink, a, b[:5], arith.ShiftRightLogical)
	case instr.Funct3 == 0x5 && instr.Funct7 == 0x20:
		result = arith.BarrelShift(sink, a, b[:5], arith.ShiftRightArithmetic)
	case instr.Funct3 == 0x6:
		result = arith.OrArray(sink, a, b)
	case instr.Funct3 == 0x7:
		result = arith.AndArray(sink, a, b)
	default:
		return &TranslateError{PC: pc, Raw: instr.Raw, Msg: "unsupported R-type funct3/funct7"}
	}

	t.Regs.Write(instr.Rd, result)
	t.advancePC(sink)
	return nil
}

// emitMulDiv handles the RV32M register-register instructions, selected by
// funct3 within the M-extension's shared funct7==1 encoding.
func emitMulDiv(sink circuit.GateSink, funct3 uint32, a, b []circuit.Wire) []circuit.Wire {
	switch funct3 {
	case 0x0: // MUL
		return arith.Multiply(sink, a, b, true, true).Low
	case 0x1: // MULH
		return arith.Multiply(sink, a, b, true, true).High
	case 0x2: // MULHSU
		return arith.Multiply(sink, a, b, true, false).High
	case 0x3: // MULHU
		return arith.Multiply(sink, a, b, false, false).High
	case 0x4: // DIV
		return arith.SignedDivRem(sink, a, b).Quotient
	case 0x5: // DIVU
		return arith.UnsignedDivRem(sink, a, b).Quotient
	case 0x6: // REM
		return arith.SignedDivRem(sink, a, b).Remainder
	case 0x7: // REMU
		return arith.UnsignedDivRem(sink, a, b).Remainder
	}
	return nil
}

func (t *Translator) emitAluImm(sink circuit.GateSink, pc uint32, instr *Instruction) error {
	a := t.Regs.Read(instr.Rs1)
	imm32 := arith.Constant(32, uint64(uint32(instr.Imm)))

	var result []circuit.Wire
	switch instr.Funct3 {
	case 0x0: // ADDI
		result = arith.KoggeStoneAdd(sink, a, imm32, circuit.Const0).Sum
	case 0x1: // SLLI
		shamt := int(instr.Raw>>20) & 0x1f
		result = arith.ConstantShift(a, shamt, arith.ShiftLeft)
	case 0x2: // SLTI
		result = boolTo32(sink, arith.SignedLessThan(sink, a, imm32))
	case 0x3: // SLTIU
		result = boolTo32(sink, arith.UnsignedLessThan(sink, a, imm32))
	case 0x4: // XORI
		result = arith.XorArray(sink, a, imm32)
	case 0x5: // SRLI/SRAI, distinguished by bit 30 of the raw word
		shamt := int(instr.Raw>>20) & 0x1f
		if instr.Funct7 == 0x20 {
			result = arith.ConstantShift(a, shamt, arith.ShiftRightArithmetic)
		} else {
			result = arith.ConstantShift(a, shamt, arith.ShiftRightLogical)
		}
	case 0x6: // ORI
		result = arith.OrArray(sink, a, imm32)
	case 0x7: // ANDI
		result = arith.AndArray(sink, a, imm32)
	default:
		return &TranslateError{PC: pc, Raw: instr.Raw, Msg: "unsupported I-type funct3"}
	}

	t.Regs.Write(instr.Rd, result)
	t.advancePC(sink)
	return nil
}

func (t *Translator) emitLoad(sink circuit.GateSink, pc uint32, instr *Instruction) error {
	addr := t.effectiveAddress(sink, instr)
	raw := t.Mem.Access(sink, addr, arith.Constant(32, 0), circuit.Const0)

	var result []circuit.Wire
	switch instr.Funct3 {
	case 0x0: // LB
		result = arith.SignExtend(selectByte(sink, raw, addr), 32)
	case 0x1: // LH
		result = arith.SignExtend(selectHalf(sink, raw, addr), 32)
	case 0x2: // LW
		result = raw
	case 0x4: // LBU
		result = arith.ZeroExtend(selectByte(sink, raw, addr), 32)
	case 0x5: // LHU
		result = arith.ZeroExtend(selectHalf(sink, raw, addr), 32)
	default:
		return &TranslateError{PC: pc, Raw: instr.Raw, Msg: "unsupported load width"}
	}

	t.Regs.Write(instr.Rd, result)
	t.advancePC(sink)
	return nil
}

// emitStore handles SB/SH/SW. The memory port is word-granular (Access
// always reads and writes a full 32-bit word), so a sub-word store must
// first read the word currently at addr and merge the new byte/halfword
// into it — writing a zero-extended sub-word directly would clobber the
// surrounding bytes RV32I requires SB/SH to preserve.
func (t *Translator) emitStore(sink circuit.GateSink, pc uint32, instr *Instruction) error {
	addr := t.effectiveAddress(sink, instr)
	value := t.Regs.Read(instr.Rs2)

	switch instr.Funct3 {
	case 0x0: // SB
		old := t.Mem.Access(sink, addr, arith.Constant(32, 0), circuit.Const0)
		merged := mergeByte(sink, old, value[0:8], addr)
		t.Mem.Access(sink, addr, merged, circuit.Const1)
	case 0x1: // SH
		old := t.Mem.Access(sink, addr, arith.Constant(32, 0), circuit.Const0)
		merged := mergeHalf(sink, old, value[0:16], addr)
		t.Mem.Access(sink, addr, merged, circuit.Const1)
	case 0x2: // SW
		t.Mem.Access(sink, addr, value, circuit.Const1)
	default:
		return &TranslateError{PC: pc, Raw: instr.Raw, Msg: "unsupported store width"}
	}

	t.advancePC(sink)
	return nil
}

// selectByte picks the byte of word addressed by addr's two low bits
// (little-endian: byte 0 is word[0:8]).
func selectByte(sink circuit.GateSink, word, addr []circuit.Wire) []circuit.Wire {
	lo, hi := addr[0], addr[1]
	pair01 := arith.MuxArray(sink, lo, word[0:8], word[8:16])
	pair23 := arith.MuxArray(sink, lo, word[16:24], word[24:32])
	return arith.MuxArray(sink, hi, pair01, pair23)
}

// selectHalf picks the halfword of word addressed by addr's bit 1
// (little-endian: halfword 0 is word[0:16]); bit 0 is ignored, matching
// natural halfword alignment.
func selectHalf(sink circuit.GateSink, word, addr []circuit.Wire) []circuit.Wire {
	return arith.MuxArray(sink, addr[1], word[0:16], word[16:32])
}

// mergeByte returns word with the byte addressed by addr's two low bits
// replaced by value (an 8-wire array); the other three bytes pass through
// unchanged.
func mergeByte(sink circuit.GateSink, word, value, addr []circuit.Wire) []circuit.Wire {
	lo, hi := addr[0], addr[1]
	sel0 := sink.And(arith.Not(sink, lo), arith.Not(sink, hi))
	sel1 := sink.And(lo, arith.Not(sink, hi))
	sel2 := sink.And(arith.Not(sink, lo), hi)
	sel3 := sink.And(lo, hi)

	out := make([]circuit.Wire, 32)
	copy(out[0:8], arith.MuxArray(sink, sel0, word[0:8], value))
	copy(out[8:16], arith.MuxArray(sink, sel1, word[8:16], value))
	copy(out[16:24], arith.MuxArray(sink, sel2, word[16:24], value))
	copy(out[24:32], arith.MuxArray(sink, sel3, word[24:32], value))
	return out
}

// mergeHalf returns word with the halfword addressed by addr's bit 1
// replaced by value (a 16-wire array); the other halfword passes through
// unchanged.
func mergeHalf(sink circuit.GateSink, word, value, addr []circuit.Wire) []circuit.Wire {
	hi := addr[1]
	out := make([]circuit.Wire, 32)
	copy(out[0:16], arith.MuxArray(sink, arith.Not(sink, hi), word[0:16], value))
	copy(out[16:32], arith.MuxArray(sink, hi, word[16:32], value))
	return out
}

// effectiveAddress computes rs1 + imm, the common load/store address
// calculation.
func (t *Translator) effectiveAddress(sink circuit.GateSink, instr *Instruction) []circuit.Wire {
	base := t.Regs.Read(instr.Rs1)
	imm32 := arith.Constant(32, uint64(uint32(instr.Imm)))
	return arith.KoggeStoneAdd(sink, base, imm32, circuit.Const0).Sum
}

func (t *Translator) emitBranch(sink circuit.GateSink, pc uint32, instr *Instruction) error {
	a := t.Regs.Read(instr.Rs1)
	b := t.Regs.Read(instr.Rs2)

	var cond circuit.Wire
	switch instr.Funct3 {
	case 0x0: // BEQ
		cond = arith.Equal(sink, a, b)
	case 0x1: // BNE
		cond = arith.Not(sink, arith.Equal(sink, a, b))
	case 0x4: // BLT
		cond = arith.SignedLessThan(sink, a, b)
	case 0x5: // BGE
		cond = arith.Not(sink, arith.SignedLessThan(sink, a, b))
	case 0x6: // BLTU
		cond = arith.UnsignedLessThan(sink, a, b)
	case 0x7: // BGEU
		cond = arith.Not(sink, arith.UnsignedLessThan(sink, a, b))
	default:
		return &TranslateError{PC: pc, Raw: instr.Raw, Msg: "unsupported branch condition"}
	}

	imm32 := arith.Constant(32, uint64(uint32(instr.Imm)))
	target := arith.KoggeStoneAdd(sink, t.PC, imm32, circuit.Const0).Sum
	four := arith.Constant(32, 4)
	fallthroughPC := arith.KoggeStoneAdd(sink, t.PC, four, circuit.Const0).Sum

	t.PC = arith.MuxArray(sink, cond, fallthroughPC, target)
	return nil
}

func (t *Translator) emitJAL(sink circuit.GateSink, pc uint32, instr *Instruction) error {
	four := arith.Constant(32, 4)
	link := arith.KoggeStoneAdd(sink, t.PC, four, circuit.Const0).Sum
	t.Regs.Write(instr.Rd, link)

	imm32 := arith.Constant(32, uint64(uint32(instr.Imm)))
	t.PC = arith.KoggeStoneAdd(sink, t.PC, imm32, circuit.Const0).Sum
	return nil
}

func (t *Translator) emitJALR(sink circuit.GateSink, pc uint32, instr *Instruction) error {
	four := arith.Constant(32, 4)
	link := arith.KoggeStoneAdd(sink, t.PC, four, circuit.Const0).Sum

	base := t.Regs.Read(instr.Rs1)
	imm32 := arith.Constant(32, uint64(uint32(instr.Imm)))
	sum := arith.KoggeStoneAdd(sink, base, imm32, circuit.Const0).Sum
	target := append([]circuit.Wire(nil), sum...)
	target[0] = circuit.Const0 // clear bit 0, per the JALR target rule

	t.Regs.Write(instr.Rd, link)
	t.PC = target
	return nil
}

func (t *Translator) emitLUI(sink circuit.GateSink, instr *Instruction) error {
	t.Regs.Write(instr.Rd, arith.Constant(32, uint64(uint32(instr.Imm))))
	t.advancePC(sink)
	return nil
}

func (t *Translator) emitAUIPC(sink circuit.GateSink, pc uint32, instr *Instruction) error {
	imm32 := arith.Constant(32, uint64(uint32(instr.Imm)))
	t.Regs.Write(instr.Rd, arith.KoggeStoneAdd(sink, t.PC, imm32, circuit.Const0).Sum)
	t.advancePC(sink)
	return nil
}

// boolTo32 widens a single condition wire into a 32-bit zero/one register
// value, as SLT/SLTU/SLTI/SLTIU require.
func boolTo32(sink circuit.GateSink, cond circuit.Wire) []circuit.Wire {
	return arith.ZeroExtend([]circuit.Wire{cond}, 32)
}
