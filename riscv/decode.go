// Package riscv implements the RV32IM instruction decoder, the per-class
// gate emitters that translate decoded instructions into circuit.GateSink
// calls, and the state codec mapping machine state onto the circuit's
// input/output bit layout.
package riscv

import "fmt"

// Opcode is the 7-bit RISC-V base opcode field (instr[6:0]).
type Opcode uint32

const (
	OpLoad    Opcode = 0x03
	OpMiscMem Opcode = 0x0f
	OpImm     Opcode = 0x13
	OpAUIPC   Opcode = 0x17
	OpStore   Opcode = 0x23
	OpOp      Opcode = 0x33
	OpLUI     Opcode = 0x37
	OpBranch  Opcode = 0x63
	OpJALR    Opcode = 0x67
	OpJAL     Opcode = 0x6f
	OpSystem  Opcode = 0x73
)

// Class categorizes a decoded instruction by the emitter that handles it.
type Class int

const (
	ClassAluReg Class = iota // R-type ALU/M-extension
	ClassAluImm              // I-type ALU
	ClassLoad
	ClassStore
	ClassBranch
	ClassJAL
	ClassJALR
	ClassLUI
	ClassAUIPC
	ClassFence
	ClassSystem
)

// Instruction is the host-side decode of one 32-bit RV32IM word. Decoding
// never emits gates — only the emitter for Class does.
type Instruction struct {
	Raw    uint32
	Class  Class
	Opcode Opcode
	Rd     uint32
	Rs1    uint32
	Rs2    uint32
	Funct3 uint32
	Funct7 uint32
	Imm    int32
}

// DecodeError reports a malformed or unsupported instruction word. Per the
// compiler's error taxonomy this is non-fatal: the caller skips the
// instruction and may continue.
type DecodeError struct {
	PC  uint32
	Raw uint32
	Msg string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("riscv: decode error at pc=0x%08x word=0x%08x: %s", e.PC, e.Raw, e.Msg)
}

// Decode splits a 32-bit RV32IM instruction word into its fields and
// classifies it. Compressed (16-bit) instructions and privileged
// extensions are out of scope and always return a DecodeError.
func Decode(pc, word uint32) (*Instruction, error) {
	if word&0x3 != 0x3 {
		return nil, &DecodeError{PC: pc, Raw: word, Msg: "compressed instructions are not supported"}
	}

	opcode := Opcode(word & 0x7f)
	rd := (word >> 7) & 0x1f
	funct3 := (word >> 12) & 0x7
	rs1 := (word >> 15) & 0x1f
	rs2 := (word >> 20) & 0x1f
	funct7 := (word >> 25) & 0x7f

	instr := &Instruction{Raw: word, Opcode: opcode, Rd: rd, Rs1: rs1, Rs2: rs2, Funct3: funct3, Funct7: funct7}

	switch opcode {
	case OpOp:
		instr.Class = ClassAluReg
	case OpImm:
		instr.Class = ClassAluImm
		instr.Imm = signExtend(word>>20, 12)
	case OpLoad:
		instr.Class = ClassLoad
		instr.Imm = signExtend(word>>20, 12)
	case OpStore:
		instr.Class = ClassStore
		imm := ((word >> 25) << 5) | ((word >> 7) & 0x1f)
		instr.Imm = signExtend(imm, 12)
	case OpBranch:
		instr.Class = ClassBranch
		imm := ((word >> 31) << 12) | (((word >> 7) & 0x1) << 11) | (((word >> 25) & 0x3f) << 5) | (((word >> 8) & 0xf) << 1)
		instr.Imm = signExtend(imm, 13)
	case OpJAL:
		instr.Class = ClassJAL
		imm := ((word >> 31) << 20) | (((word >> 12) & 0xff) << 12) | (((word >> 20) & 0x1) << 11) | (((word >> 21) & 0x3ff) << 1)
		instr.Imm = signExtend(imm, 21)
	case OpJALR:
		instr.Class = ClassJALR
		instr.Imm = signExtend(word>>20, 12)
	case OpLUI:
		instr.Class = ClassLUI
		instr.Imm = int32(word & 0xfffff000)
	case OpAUIPC:
		instr.Class = ClassAUIPC
		instr.Imm = int32(word & 0xfffff000)
	case OpMiscMem:
		instr.Class = ClassFence
	case OpSystem:
		// Only ECALL and EBREAK; CSR and other privileged SYSTEM encodings
		// are rejected.
		if word != 0x00000073 && word != 0x00100073 {
			return nil, &DecodeError{PC: pc, Raw: word, Msg: "unsupported SYSTEM instruction (only ECALL/EBREAK)"}
		}
		instr.Class = ClassSystem
	default:
		return nil, &DecodeError{PC: pc, Raw: word, Msg: fmt.Sprintf("unsupported opcode 0x%02x", uint32(opcode))}
	}

	return instr, nil
}

// signExtend sign-extends the low `bits` bits of v (already shifted into
// place by the caller) to a full int32.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}
