package riscv

import (
	"github.com/eth2030/riscv-circuit-compiler/circuit"
	"github.com/eth2030/riscv-circuit-compiler/memory"
	"github.com/eth2030/riscv-circuit-compiler/metrics"
)

// Program is a fixed, statically known sequence of RV32IM instruction
// words compiled in order. Unlike a running processor the compiler never
// fetches through PC: control flow is unrolled entirely at compile time,
// and the PC wire array is carried purely as symbolic state mirroring what
// a real processor would compute, never used to select which instruction
// comes next.
type Program []uint32

// Compile decodes and translates every instruction in prog against sink,
// in order, starting from a fresh Translator seeded by codec and mem.
// startPC only labels decode/translate errors with a concrete program
// counter; it has no effect on the circuit emitted. Once an ECALL/EBREAK is
// translated the translator halts and any remaining instructions in prog
// are skipped, per the system-class emitter's halt semantics.
func Compile(sink circuit.GateSink, codec Codec, mem memory.Port, prog Program, startPC uint32) (*Translator, error) {
	t := NewTranslator(codec, mem)
	pc := startPC
	for _, word := range prog {
		if t.Halted() {
			break
		}
		instr, err := Decode(pc, word)
		if err != nil {
			return nil, err
		}
		if err := t.Translate(sink, pc, instr); err != nil {
			return nil, err
		}
		metrics.InstructionsTranslated.Inc()
		pc += 4
	}
	return t, nil
}
