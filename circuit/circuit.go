package circuit

// MaxIOBits bounds total input bits and total output bits independently, per
// the 10 MiB contract. The bound is expressed directly in bits (not bytes):
// for a typical compilation the memory region dominates the input layout
// (8 bits per byte of simulated RAM), so this caps simulated memory at a
// little over 1 MiB.
const MaxIOBits = 10 * 1024 * 1024

// MaxGates is the implementation-chosen hard bound on circuit size. A
// secure-memory access already costs on the order of 32 * ~200k gates for
// its Merkle path, so this leaves headroom for programs with thousands of
// instructions while still catching runaway compilations early.
const MaxGates = 200_000_000

// GateSink is the interface every emitter (arith, hash, memory, riscv)
// builds against. Circuit implements it directly; Dedup wraps a GateSink to
// interpose structural hashing without changing any caller.
type GateSink interface {
	// And appends (or reuses) a gate computing left ∧ right and returns its
	// output wire.
	And(left, right Wire) Wire
	// Xor appends (or reuses) a gate computing left ⊕ right and returns its
	// output wire.
	Xor(left, right Wire) Wire
	// AllocWire reserves a single fresh wire ID.
	AllocWire() Wire
	// AllocWireArray reserves n fresh, contiguous wire IDs.
	AllocWireArray(n int) []Wire
}

// Circuit is an append-only sequence of gates over a bounded input and
// output layout. It is grown by gate insertion, then sealed once output
// wires are designated; there is no mutation after sealing.
type Circuit struct {
	gates      []Gate
	defined    []bool
	numInputs  int
	numOutputs int
	outputs    []Wire
	sealed     bool
}

// Create allocates a new circuit with numInputs input wires (the first two
// of which are the universal constants 0 and 1) and numOutputs output
// wires to be designated later via Seal. It returns ErrConfig when
// numInputs is fewer than 2 or numOutputs is negative, and a *BudgetError
// when either bound exceeds MaxIOBits.
func Create(numInputs, numOutputs int) (*Circuit, error) {
	if numInputs < 2 {
		return nil, ErrConfig
	}
	if numOutputs < 0 {
		return nil, ErrConfig
	}
	if uint64(numInputs) > MaxIOBits {
		return nil, &BudgetError{Budget: "input_bits", Limit: MaxIOBits, Requested: uint64(numInputs)}
	}
	if uint64(numOutputs) > MaxIOBits {
		return nil, &BudgetError{Budget: "output_bits", Limit: MaxIOBits, Requested: uint64(numOutputs)}
	}

	defined := make([]bool, numInputs)
	for i := range defined {
		defined[i] = true
	}

	return &Circuit{
		defined:    defined,
		numInputs:  numInputs,
		numOutputs: numOutputs,
	}, nil
}

// NumInputs returns the circuit's input bit count, including the two
// leading constant wires.
func (c *Circuit) NumInputs() int { return c.numInputs }

// NumOutputs returns the circuit's output bit count.
func (c *Circuit) NumOutputs() int { return c.numOutputs }

// NumWires returns the number of wires allocated so far (inputs plus gate
// outputs).
func (c *Circuit) NumWires() int { return len(c.defined) }

// NumGates returns the number of gates appended so far.
func (c *Circuit) NumGates() int { return len(c.gates) }

// Gates returns the circuit's gate list in emission order. Callers must not
// mutate the returned slice.
func (c *Circuit) Gates() []Gate { return c.gates }

// Sealed reports whether Seal has been called.
func (c *Circuit) Sealed() bool { return c.sealed }

// Outputs returns the sealed output wire designators. It panics if the
// circuit has not been sealed.
func (c *Circuit) Outputs() []Wire {
	if !c.sealed {
		invariantViolation("Outputs called before Seal")
	}
	return c.outputs
}

// AllocWire reserves a single fresh wire ID. The returned wire has no
// defining gate until AddGate (or And/Xor) binds it as an output.
func (c *Circuit) AllocWire() Wire {
	if c.sealed {
		invariantViolation("AllocWire called on a sealed circuit")
	}
	if uint64(len(c.defined))+1 > MaxGates+MaxIOBits {
		panic(&BudgetError{Budget: "wires", Limit: MaxGates + MaxIOBits, Requested: uint64(len(c.defined)) + 1})
	}
	w := Wire(len(c.defined))
	c.defined = append(c.defined, false)
	return w
}

// AllocWireArray reserves n fresh, contiguous wire IDs.
func (c *Circuit) AllocWireArray(n int) []Wire {
	out := make([]Wire, n)
	for i := range out {
		out[i] = c.AllocWire()
	}
	return out
}

// AddGate appends a gate of the given type computing left op right into
// output, where output must have been returned by a prior AllocWire call
// and not yet bound. It is the literal form of the circuit-builder contract
// (§4.1); And/Xor are the ergonomic wrapper every emitter actually calls.
func (c *Circuit) AddGate(left, right, output Wire, typ GateType) {
	if c.sealed {
		invariantViolation("AddGate called on a sealed circuit")
	}
	if uint64(left) >= uint64(len(c.defined)) || !c.defined[left] {
		invariantViolation("gate input %d (left) is not a defined wire", left)
	}
	if uint64(right) >= uint64(len(c.defined)) || !c.defined[right] {
		invariantViolation("gate input %d (right) is not a defined wire", right)
	}
	if uint64(output) >= uint64(len(c.defined)) {
		invariantViolation("gate output %d was never allocated", output)
	}
	if c.defined[output] {
		invariantViolation("gate output %d already has a defining gate", output)
	}
	if len(c.gates) >= MaxGates {
		panic(&BudgetError{Budget: "gates", Limit: MaxGates, Requested: uint64(len(c.gates)) + 1})
	}

	c.gates = append(c.gates, Gate{Type: typ, Left: left, Right: right, Output: output})
	c.defined[output] = true
}

// And allocates a fresh output wire, appends an AND gate, and returns the
// new wire. This is the entry point every arithmetic/hash/memory emitter
// uses; GateSink implementations route through it (directly or via Dedup).
func (c *Circuit) And(left, right Wire) Wire {
	out := c.AllocWire()
	c.AddGate(left, right, out, AND)
	return out
}

// Xor allocates a fresh output wire, appends an XOR gate, and returns the
// new wire.
func (c *Circuit) Xor(left, right Wire) Wire {
	out := c.AllocWire()
	c.AddGate(left, right, out, XOR)
	return out
}

// Seal designates the circuit's output wires and forbids further mutation.
// len(outputs) must equal NumOutputs, and every wire in outputs must
// already be defined.
func (c *Circuit) Seal(outputs []Wire) error {
	if c.sealed {
		return ErrSealed
	}
	if len(outputs) != c.numOutputs {
		return &BudgetError{Budget: "output_count", Limit: uint64(c.numOutputs), Requested: uint64(len(outputs))}
	}
	for i, w := range outputs {
		if uint64(w) >= uint64(len(c.defined)) || !c.defined[w] {
			invariantViolation("output %d designates undefined wire %d", i, w)
		}
	}
	c.outputs = append([]Wire(nil), outputs...)
	c.sealed = true
	return nil
}

var _ GateSink = (*Circuit)(nil)
