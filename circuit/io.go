package circuit

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Serialize writes the circuit in the stable text format: a header line
// `<num_gates> <num_wires> <num_inputs> <num_outputs>`, one line per gate
// `<left> <right> <output> <type>` (type 0 = AND, 1 = XOR), then a final
// line listing the sealed output wire IDs in order. It is an error to
// serialize an unsealed circuit, since an unsealed circuit has no output
// layout to persist.
func (c *Circuit) Serialize(w io.Writer) error {
	if !c.sealed {
		return ErrNotSealed
	}

	bw := bufio.NewWriter(w)

	if _, err := fmt.Fprintf(bw, "%d %d %d %d\n", len(c.gates), len(c.defined), c.numInputs, c.numOutputs); err != nil {
		return err
	}
	for _, g := range c.gates {
		if _, err := fmt.Fprintf(bw, "%d %d %d %d\n", g.Left, g.Right, g.Output, g.Type); err != nil {
			return err
		}
	}
	for i, o := range c.outputs {
		if i > 0 {
			if _, err := bw.WriteString(" "); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(bw, "%d", o); err != nil {
			return err
		}
	}
	if _, err := bw.WriteString("\n"); err != nil {
		return err
	}
	return bw.Flush()
}

// Parse reads a circuit previously written by Serialize. The resulting
// circuit is already sealed; Parse reconstructs it by validating every
// invariant AddGate would have enforced during original construction, so a
// corrupted file is rejected rather than silently accepted.
func Parse(r io.Reader) (*Circuit, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<30)

	if !sc.Scan() {
		return nil, fmt.Errorf("%w: empty file", ErrMalformedFile)
	}
	header := strings.Fields(sc.Text())
	if len(header) != 4 {
		return nil, fmt.Errorf("%w: header has %d fields, want 4", ErrMalformedFile, len(header))
	}
	numGates, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, fmt.Errorf("%w: bad num_gates: %v", ErrMalformedFile, err)
	}
	numWires, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, fmt.Errorf("%w: bad num_wires: %v", ErrMalformedFile, err)
	}
	numInputs, err := strconv.Atoi(header[2])
	if err != nil {
		return nil, fmt.Errorf("%w: bad num_inputs: %v", ErrMalformedFile, err)
	}
	numOutputs, err := strconv.Atoi(header[3])
	if err != nil {
		return nil, fmt.Errorf("%w: bad num_outputs: %v", ErrMalformedFile, err)
	}
	if numInputs < 2 || numWires < numInputs || numGates < 0 {
		return nil, fmt.Errorf("%w: inconsistent header", ErrMalformedFile)
	}

	defined := make([]bool, numWires)
	for i := 0; i < numInputs; i++ {
		defined[i] = true
	}

	gates := make([]Gate, 0, numGates)
	for i := 0; i < numGates; i++ {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: expected %d gate lines, got %d", ErrMalformedFile, numGates, i)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != 4 {
			return nil, fmt.Errorf("%w: gate line %d has %d fields, want 4", ErrMalformedFile, i, len(fields))
		}
		left, err1 := strconv.ParseUint(fields[0], 10, 64)
		right, err2 := strconv.ParseUint(fields[1], 10, 64)
		output, err3 := strconv.ParseUint(fields[2], 10, 64)
		typ, err4 := strconv.Atoi(fields[3])
		if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
			return nil, fmt.Errorf("%w: gate line %d has non-numeric field", ErrMalformedFile, i)
		}
		if typ != int(AND) && typ != int(XOR) {
			return nil, fmt.Errorf("%w: gate line %d has invalid type %d", ErrMalformedFile, i, typ)
		}

		if left >= uint64(numWires) || !defined[left] {
			return nil, fmt.Errorf("%w: gate %d left input %d undefined", ErrMalformedFile, i, left)
		}
		if right >= uint64(numWires) || !defined[right] {
			return nil, fmt.Errorf("%w: gate %d right input %d undefined", ErrMalformedFile, i, right)
		}
		if output >= uint64(numWires) {
			return nil, fmt.Errorf("%w: gate %d output %d out of range", ErrMalformedFile, i, output)
		}
		if defined[output] {
			return nil, fmt.Errorf("%w: gate %d output %d already defined", ErrMalformedFile, i, output)
		}
		defined[output] = true

		gates = append(gates, Gate{Type: GateType(typ), Left: Wire(left), Right: Wire(right), Output: Wire(output)})
	}

	outputs := make([]Wire, 0, numOutputs)
	if numOutputs > 0 {
		if !sc.Scan() {
			return nil, fmt.Errorf("%w: missing output line", ErrMalformedFile)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != numOutputs {
			return nil, fmt.Errorf("%w: output line has %d fields, want %d", ErrMalformedFile, len(fields), numOutputs)
		}
		for _, f := range fields {
			w, err := strconv.ParseUint(f, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("%w: non-numeric output wire %q", ErrMalformedFile, f)
			}
			if w >= uint64(numWires) || !defined[Wire(w)] {
				return nil, fmt.Errorf("%w: output wire %d undefined", ErrMalformedFile, w)
			}
			outputs = append(outputs, Wire(w))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedFile, err)
	}

	return &Circuit{
		gates:      gates,
		defined:    defined,
		numInputs:  numInputs,
		numOutputs: numOutputs,
		outputs:    outputs,
		sealed:     true,
	}, nil
}
