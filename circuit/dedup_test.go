package circuit

import "testing"

func TestDedupPeepholeAndZero(t *testing.T) {
	c, _ := Create(2, 0)
	d := NewDedup(c)
	a := c.AllocWire()
	if got := d.And(a, Const0); got != Const0 {
		t.Fatalf("a∧0 = %d, want Const0", got)
	}
	if c.NumGates() != 0 {
		t.Fatalf("peephole should not emit a gate, got %d gates", c.NumGates())
	}
}

func TestDedupPeepholeAndOne(t *testing.T) {
	c, _ := Create(2, 0)
	d := NewDedup(c)
	a := c.AllocWire()
	if got := d.And(a, Const1); got != a {
		t.Fatalf("a∧1 = %d, want %d", got, a)
	}
	if c.NumGates() != 0 {
		t.Fatalf("peephole should not emit a gate, got %d gates", c.NumGates())
	}
}

func TestDedupPeepholeAndSelf(t *testing.T) {
	c, _ := Create(2, 0)
	d := NewDedup(c)
	a := c.AllocWire()
	if got := d.And(a, a); got != a {
		t.Fatalf("a∧a = %d, want %d", got, a)
	}
}

func TestDedupPeepholeXorZero(t *testing.T) {
	c, _ := Create(2, 0)
	d := NewDedup(c)
	a := c.AllocWire()
	if got := d.Xor(a, Const0); got != a {
		t.Fatalf("a⊕0 = %d, want %d", got, a)
	}
}

func TestDedupPeepholeXorSelf(t *testing.T) {
	c, _ := Create(2, 0)
	d := NewDedup(c)
	a := c.AllocWire()
	if got := d.Xor(a, a); got != Const0 {
		t.Fatalf("a⊕a = %d, want Const0", got)
	}
}

func TestDedupCachesRepeatedGate(t *testing.T) {
	c, _ := Create(4, 0)
	d := NewDedup(c)
	a := Wire(2)
	b := Wire(3)

	out1 := d.And(a, b)
	out2 := d.And(a, b)
	if out1 != out2 {
		t.Fatalf("repeated AND should return the same wire: %d != %d", out1, out2)
	}
	if c.NumGates() != 1 {
		t.Fatalf("expected exactly 1 gate emitted, got %d", c.NumGates())
	}
	if d.Hits() != 1 || d.Misses() != 1 {
		t.Fatalf("hits=%d misses=%d, want 1 and 1", d.Hits(), d.Misses())
	}
}

func TestDedupCanonicalizesCommutativeOperands(t *testing.T) {
	c, _ := Create(4, 0)
	d := NewDedup(c)
	a := Wire(2)
	b := Wire(3)

	out1 := d.And(a, b)
	out2 := d.And(b, a)
	if out1 != out2 {
		t.Fatalf("AND is commutative, expected same cached wire: %d != %d", out1, out2)
	}
	if c.NumGates() != 1 {
		t.Fatalf("expected exactly 1 gate emitted, got %d", c.NumGates())
	}
}

func TestDedupRepeatedInstructionBoundsGateGrowth(t *testing.T) {
	// S6: compiling the same ADD ten times with dedup enabled must keep
	// total gate count under 2x a single ADD's gate count.
	c, _ := Create(4, 0)
	d := NewDedup(c)
	a := Wire(2)
	b := Wire(3)

	addOnce := func() Wire {
		return d.Xor(d.And(a, b), d.Xor(a, b))
	}

	addOnce()
	singleGateCount := c.NumGates()

	for i := 0; i < 9; i++ {
		addOnce()
	}

	if c.NumGates() >= 2*singleGateCount {
		t.Fatalf("gate count grew to %d after 10 identical ops, want < %d", c.NumGates(), 2*singleGateCount)
	}
}
