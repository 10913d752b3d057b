package main

import "slices"

// Kind identifies one of the four reversible gate primitives.
// The set is closed: the simulator dispatches on it with a plain switch.
type Kind byte

const (
	KindX     Kind = iota // unconditional flip of the target
	KindCX                // flip if the control bit is set
	KindCCX               // flip if both control bits are set
	KindECA57             // flip if ctrl1 is set OR ctrl2 is clear
)

// String returns the display name for a gate kind.
func (k Kind) String() string {
	switch k {
	case KindX:
		return "X"
	case KindCX:
		return "CX"
	case KindCCX:
		return "CCX"
	case KindECA57:
		return "ECA57"
	}
	return "?"
}

// NumControls returns the control arity for a gate kind.
func (k Kind) NumControls() int {
	switch k {
	case KindX:
		return 0
	case KindCX:
		return 1
	}
	return 2
}

// Gate is one reversible operation placed on the circuit: it conditionally
// flips Target based on the bits of its Controls. For ECA57 the control order
// matters: Controls[0] is the positive-sense control, Controls[1] the
// negative-sense one.
type Gate struct {
	Kind     Kind
	Target   int
	Controls []int
	Step     int // position in circuit timeline
}

// Apply returns the state reached from s through this gate. Only bitwise
// integer ops; a gate whose target appears among its own controls is
// evaluated literally against the incoming bits, not special-cased.
func (g Gate) Apply(s int) int {
	t := 1 << g.Target
	switch g.Kind {
	case KindX:
		return s ^ t
	case KindCX:
		if s&(1<<g.Controls[0]) != 0 {
			return s ^ t
		}
	case KindCCX:
		if s&(1<<g.Controls[0]) != 0 && s&(1<<g.Controls[1]) != 0 {
			return s ^ t
		}
	case KindECA57:
		// The asymmetry between the two controls is the point: ctrl1 is
		// tested set, ctrl2 is tested clear.
		if s&(1<<g.Controls[0]) != 0 || s&(1<<g.Controls[1]) == 0 {
			return s ^ t
		}
	}
	return s
}

// References reports whether the gate touches the given wire.
func (g Gate) References(wire int) bool {
	return g.Target == wire || slices.Contains(g.Controls, wire)
}

// MaxWire returns the highest wire index the gate references.
func (g Gate) MaxWire() int {
	m := g.Target
	for _, c := range g.Controls {
		m = max(m, c)
	}
	return m
}

// Circuit holds an ordered gate sequence over a fixed-width register.
// The sequence, not any derived graph, is the ground truth of behavior.
type Circuit struct {
	Width int
	Gates []Gate
}

// AddGate appends a gate, growing Width to cover any referenced wire.
func (c *Circuit) AddGate(kind Kind, target, step int, controls ...int) {
	g := Gate{Kind: kind, Target: target, Controls: controls, Step: step}
	c.Gates = append(c.Gates, g)
	if w := g.MaxWire() + 1; w > c.Width {
		c.Width = w
	}
}

// RemoveGateAt removes any gate at the given step touching the given wire.
func (c *Circuit) RemoveGateAt(step, wire int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.Step == step && g.References(wire)
	})
}

// RemoveGatesOnWire removes all gates that reference the given wire.
func (c *Circuit) RemoveGatesOnWire(wire int) {
	c.Gates = slices.DeleteFunc(c.Gates, func(g Gate) bool {
		return g.References(wire)
	})
}

// GateAt returns the gate at the given step and wire, or nil.
func (c *Circuit) GateAt(step, wire int) *Gate {
	for i := range c.Gates {
		g := &c.Gates[i]
		if g.Step == step && g.References(wire) {
			return g
		}
	}
	return nil
}

// MaxSteps returns 1 + the highest step index in use (0 when empty).
func (c *Circuit) MaxSteps() int {
	n := 0
	for _, g := range c.Gates {
		if g.Step+1 > n {
			n = g.Step + 1
		}
	}
	return n
}

// gatesByStep returns the gates sorted ascending by step. The returned
// slice is a copy; positions in it are the "original sequence positions"
// that collision edges and reorderings refer to.
func (c *Circuit) gatesByStep() []Gate {
	gates := make([]Gate, len(c.Gates))
	copy(gates, c.Gates)
	slices.SortStableFunc(gates, func(a, b Gate) int {
		return a.Step - b.Step
	})
	return gates
}

// Clone returns a deep copy of the circuit.
func (c *Circuit) Clone() *Circuit {
	out := &Circuit{Width: c.Width, Gates: make([]Gate, len(c.Gates))}
	for i, g := range c.Gates {
		g.Controls = slices.Clone(g.Controls)
		out.Gates[i] = g
	}
	return out
}
