package eval

import (
	"errors"

	"github.com/eth2030/riscv-circuit-compiler/riscv"
)

// ErrOutOfBounds is returned when an emulated load/store addresses memory
// outside the configured region.
var ErrOutOfBounds = errors.New("eval: memory access out of bounds")

// Machine is a plain, concrete RV32IM interpreter used only to produce
// ground-truth state for differential tests against the compiled circuit.
// It shares riscv.Decode with the real translator so the two never drift
// on instruction classification, but every operation below is ordinary Go
// arithmetic — nothing here emits or touches a gate.
type Machine struct {
	PC     uint32
	Regs   [32]uint32
	Memory []byte
	Halted bool
}

// NewMachine builds a machine with memSize bytes of zeroed memory.
func NewMachine(memSize int) *Machine {
	return &Machine{Memory: make([]byte, memSize)}
}

// Step decodes and executes exactly one instruction word at the machine's
// current PC, advancing state in place.
func (m *Machine) Step(word uint32) error {
	if m.Halted {
		return nil
	}
	instr, err := riscv.Decode(m.PC, word)
	if err != nil {
		return err
	}
	return m.execute(instr)
}

// Run executes prog from the machine's current PC until a System
// instruction halts it or the program is exhausted.
func (m *Machine) Run(prog riscv.Program) error {
	for _, word := range prog {
		if m.Halted {
			return nil
		}
		if err := m.Step(word); err != nil {
			return err
		}
	}
	return nil
}

func (m *Machine) reg(i uint32) uint32 {
	if i == 0 {
		return 0
	}
	return m.Regs[i]
}

func (m *Machine) setReg(i uint32, v uint32) {
	if i == 0 {
		return
	}
	m.Regs[i] = v
}

func (m *Machine) execute(instr *riscv.Instruction) error {
	switch instr.Class {
	case riscv.ClassAluReg:
		return m.execAluReg(instr)
	case riscv.ClassAluImm:
		return m.execAluImm(instr)
	case riscv.ClassLoad:
		return m.execLoad(instr)
	case riscv.ClassStore:
		return m.execStore(instr)
	case riscv.ClassBranch:
		return m.execBranch(instr)
	case riscv.ClassJAL:
		m.setReg(instr.Rd, m.PC+4)
		m.PC = uint32(int32(m.PC) + instr.Imm)
		return nil
	case riscv.ClassJALR:
		link := m.PC + 4
		target := (m.reg(instr.Rs1) + uint32(instr.Imm)) &^ 1
		m.setReg(instr.Rd, link)
		m.PC = target
		return nil
	case riscv.ClassLUI:
		m.setReg(instr.Rd, uint32(instr.Imm))
		m.PC += 4
		return nil
	case riscv.ClassAUIPC:
		m.setReg(instr.Rd, m.PC+uint32(instr.Imm))
		m.PC += 4
		return nil
	case riscv.ClassFence:
		m.PC += 4
		return nil
	case riscv.ClassSystem:
		m.Halted = true
		return nil
	}
	return nil
}

func (m *Machine) execAluReg(instr *riscv.Instruction) error {
	a := m.reg(instr.Rs1)
	b := m.reg(instr.Rs2)
	var result uint32

	if instr.Funct7 == 0x01 {
		result = mulDiv(instr.Funct3, a, b)
	} else {
		switch {
		case instr.Funct3 == 0x0 && instr.Funct7 == 0x00:
			result = a + b
		case instr.Funct3 == 0x0 && instr.Funct7 == 0x20:
			result = a - b
		case instr.Funct3 == 0x1:
			result = a << (b & 0x1f)
		case instr.Funct3 == 0x2:
			result = boolU32(int32(a) < int32(b))
		case instr.Funct3 == 0x3:
			result = boolU32(a < b)
		case instr.Funct3 == 0x4:
			result = a ^ b
		case instr.Funct3 == 0x5 && instr.Funct7 == 0x00:
			result = a >> (b & 0x1f)
		case instr.Funct3 == 0x5 && instr.Funct7 == 0x20:
			result = uint32(int32(a) >> (b & 0x1f))
		case instr.Funct3 == 0x6:
			result = a | b
		case instr.Funct3 == 0x7:
			result = a & b
		}
	}

	m.setReg(instr.Rd, result)
	m.PC += 4
	return nil
}

func mulDiv(funct3 uint32, a, b uint32) uint32 {
	switch funct3 {
	case 0x0:
		return a * b
	case 0x1:
		return uint32((int64(int32(a)) * int64(int32(b))) >> 32)
	case 0x2:
		return uint32((int64(int32(a)) * int64(uint64(b))) >> 32)
	case 0x3:
		return uint32((uint64(a) * uint64(b)) >> 32)
	case 0x4:
		return divSigned(a, b)
	case 0x5:
		return divUnsigned(a, b)
	case 0x6:
		return remSigned(a, b)
	case 0x7:
		return remUnsigned(a, b)
	}
	return 0
}

func divUnsigned(a, b uint32) uint32 {
	if b == 0 {
		return 0xffffffff
	}
	return a / b
}

func remUnsigned(a, b uint32) uint32 {
	if b == 0 {
		return a
	}
	return a % b
}

func divSigned(a, b uint32) uint32 {
	sa, sb := int32(a), int32(b)
	if sb == 0 {
		return 0xffffffff
	}
	if sa == -2147483648 && sb == -1 {
		return a
	}
	return uint32(sa / sb)
}

func remSigned(a, b uint32) uint32 {
	sa, sb := int32(a), int32(b)
	if sb == 0 {
		return a
	}
	if sa == -2147483648 && sb == -1 {
		return 0
	}
	return uint32(sa % sb)
}

func boolU32(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

func (m *Machine) execAluImm(instr *riscv.Instruction) error {
	a := m.reg(instr.Rs1)
	imm := uint32(instr.Imm)
	var result uint32

	switch instr.Funct3 {
	case 0x0:
		result = a + imm
	case 0x1:
		result = a << (uint32(instr.Raw>>20) & 0x1f)
	case 0x2:
		result = boolU32(int32(a) < instr.Imm)
	case 0x3:
		result = boolU32(a < imm)
	case 0x4:
		result = a ^ imm
	case 0x5:
		shamt := uint32(instr.Raw>>20) & 0x1f
		if instr.Funct7 == 0x20 {
			result = uint32(int32(a) >> shamt)
		} else {
			result = a >> shamt
		}
	case 0x6:
		result = a | imm
	case 0x7:
		result = a & imm
	}

	m.setReg(instr.Rd, result)
	m.PC += 4
	return nil
}

func (m *Machine) effectiveAddress(instr *riscv.Instruction) uint32 {
	return m.reg(instr.Rs1) + uint32(instr.Imm)
}

func (m *Machine) execLoad(instr *riscv.Instruction) error {
	addr := m.effectiveAddress(instr)
	var result uint32
	switch instr.Funct3 {
	case 0x0:
		v, err := m.readByte(addr)
		if err != nil {
			return err
		}
		result = uint32(int32(int8(v)))
	case 0x1:
		v, err := m.readHalf(addr)
		if err != nil {
			return err
		}
		result = uint32(int32(int16(v)))
	case 0x2:
		v, err := m.readWord(addr)
		if err != nil {
			return err
		}
		result = v
	case 0x4:
		v, err := m.readByte(addr)
		if err != nil {
			return err
		}
		result = uint32(v)
	case 0x5:
		v, err := m.readHalf(addr)
		if err != nil {
			return err
		}
		result = uint32(v)
	}
	m.setReg(instr.Rd, result)
	m.PC += 4
	return nil
}

func (m *Machine) execStore(instr *riscv.Instruction) error {
	addr := m.effectiveAddress(instr)
	value := m.reg(instr.Rs2)
	var err error
	switch instr.Funct3 {
	case 0x0:
		err = m.writeByte(addr, byte(value))
	case 0x1:
		err = m.writeHalf(addr, uint16(value))
	case 0x2:
		err = m.writeWord(addr, value)
	}
	if err != nil {
		return err
	}
	m.PC += 4
	return nil
}

func (m *Machine) execBranch(instr *riscv.Instruction) error {
	a := m.reg(instr.Rs1)
	b := m.reg(instr.Rs2)
	var taken bool
	switch instr.Funct3 {
	case 0x0:
		taken = a == b
	case 0x1:
		taken = a != b
	case 0x4:
		taken = int32(a) < int32(b)
	case 0x5:
		taken = int32(a) >= int32(b)
	case 0x6:
		taken = a < b
	case 0x7:
		taken = a >= b
	}
	if taken {
		m.PC = uint32(int32(m.PC) + instr.Imm)
	} else {
		m.PC += 4
	}
	return nil
}

func (m *Machine) readByte(addr uint32) (byte, error) {
	if int(addr) >= len(m.Memory) {
		return 0, ErrOutOfBounds
	}
	return m.Memory[addr], nil
}

func (m *Machine) readHalf(addr uint32) (uint16, error) {
	if int(addr)+2 > len(m.Memory) {
		return 0, ErrOutOfBounds
	}
	return uint16(m.Memory[addr]) | uint16(m.Memory[addr+1])<<8, nil
}

func (m *Machine) readWord(addr uint32) (uint32, error) {
	if int(addr)+4 > len(m.Memory) {
		return 0, ErrOutOfBounds
	}
	return uint32(m.Memory[addr]) | uint32(m.Memory[addr+1])<<8 |
		uint32(m.Memory[addr+2])<<16 | uint32(m.Memory[addr+3])<<24, nil
}

func (m *Machine) writeByte(addr uint32, v byte) error {
	if int(addr) >= len(m.Memory) {
		return ErrOutOfBounds
	}
	m.Memory[addr] = v
	return nil
}

func (m *Machine) writeHalf(addr uint32, v uint16) error {
	if int(addr)+2 > len(m.Memory) {
		return ErrOutOfBounds
	}
	m.Memory[addr] = byte(v)
	m.Memory[addr+1] = byte(v >> 8)
	return nil
}

func (m *Machine) writeWord(addr uint32, v uint32) error {
	if int(addr)+4 > len(m.Memory) {
		return ErrOutOfBounds
	}
	m.Memory[addr] = byte(v)
	m.Memory[addr+1] = byte(v >> 8)
	m.Memory[addr+2] = byte(v >> 16)
	m.Memory[addr+3] = byte(v >> 24)
	return nil
}
