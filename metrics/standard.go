package metrics

// Pre-defined metrics for the circuit compiler. All metrics live in
// DefaultRegistry so they are globally accessible without passing a
// registry around.

var (
	// ---- Circuit construction metrics ----

	// CircuitGatesTotal counts gates in circuits built across the process
	// lifetime; `circuitc compile` adds each compiled circuit's gate count.
	CircuitGatesTotal = DefaultRegistry.Counter("circuit.gates_total")
	// CircuitWiresTotal counts wires in circuits built across the process
	// lifetime; `circuitc compile` adds each compiled circuit's wire count.
	CircuitWiresTotal = DefaultRegistry.Counter("circuit.wires_total")
	// CircuitGateCount tracks the gate count of the circuit currently being
	// assembled.
	CircuitGateCount = DefaultRegistry.Gauge("circuit.gate_count")

	// ---- Dedup metrics ----

	// DedupHitsTotal counts structural-hashing cache hits (a gate request
	// resolved to an already-existing wire instead of a new gate).
	DedupHitsTotal = DefaultRegistry.Counter("dedup.hits_total")
	// DedupMissesTotal counts gate requests that allocated a new gate.
	DedupMissesTotal = DefaultRegistry.Counter("dedup.misses_total")

	// ---- Compile pipeline metrics ----

	// CompileDurationSeconds records end-to-end compile time, in seconds.
	CompileDurationSeconds = DefaultRegistry.Histogram("compile.duration_seconds")
	// InstructionsTranslated counts RV32IM instructions translated into
	// gates by riscv.Compile.
	InstructionsTranslated = DefaultRegistry.Counter("riscv.instructions_translated")
	// MemoryAccessesTotal is registered for Port.Access calls across all
	// memory tiers; no code in this module increments it, so it reads 0.
	MemoryAccessesTotal = DefaultRegistry.Counter("memory.accesses_total")

	// ---- Equivalence checker metrics ----

	// EquivCheckDurationSeconds records miter construction plus SAT solve
	// time for one equivalence check, in seconds.
	EquivCheckDurationSeconds = DefaultRegistry.Histogram("equiv.check_duration_seconds")
	// EquivClausesTotal counts CNF clauses emitted for the most recent
	// miter.
	EquivClausesTotal = DefaultRegistry.Gauge("equiv.clauses_total")
)
