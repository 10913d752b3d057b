package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bits-and-blooms/bitset"
)

// MaxSimulateWidth bounds the register width Simulate will materialize:
// 2^24 states is around 134 MB of permutation array, past which the full
// state-space walk stops being interactive. Call sites should impose their
// own lower bound before invoking Simulate.
const MaxSimulateWidth = 24

// ErrWidthTooLarge is returned when a circuit is too wide to materialize
// its state space. Resource exhaustion, not a logic error.
var ErrWidthTooLarge = errors.New("state space too large to materialize")

// Simulation is the result of running a circuit over its full state space.
// Cycles lists the disjoint cycles of the permutation, fixed points
// excluded, in ascending order of each cycle's first-encountered state.
type Simulation struct {
	Perm     []int
	Identity bool
	Cycles   [][]int
}

// Simulate applies the gate sequence, in step order, to the full
// 2^Width-element state space and decomposes the result into cycles.
// Each gate pass writes a fresh array keyed on the bits of the evolving
// state, so gates compose left-to-right.
func (c *Circuit) Simulate() (*Simulation, error) {
	if c.Width > MaxSimulateWidth {
		return nil, fmt.Errorf("%w: width %d exceeds %d", ErrWidthTooLarge, c.Width, MaxSimulateWidth)
	}
	start := time.Now()

	n := 1 << c.Width
	perm := make([]int, n)
	for s := range perm {
		perm[s] = s
	}
	for _, g := range c.gatesByStep() {
		next := make([]int, n)
		for s := 0; s < n; s++ {
			next[s] = g.Apply(perm[s])
		}
		perm = next
	}

	sim := &Simulation{Perm: perm, Identity: true}
	visited := bitset.New(uint(n))
	for s := 0; s < n; s++ {
		if visited.Test(uint(s)) || perm[s] == s {
			continue
		}
		cycle := []int{s}
		visited.Set(uint(s))
		for t := perm[s]; t != s && !visited.Test(uint(t)); t = perm[t] {
			visited.Set(uint(t))
			cycle = append(cycle, t)
		}
		sim.Cycles = append(sim.Cycles, cycle)
		sim.Identity = false
	}

	log := Logger()
	log.Debug().
		Int("width", c.Width).
		Int("gates", len(c.Gates)).
		Dur("took", time.Since(start)).
		Msg("simulated circuit")
	return sim, nil
}

// Notation renders the cycle decomposition in standard cycle notation:
// "()" for the identity, otherwise one "(s0 s1 ...)" group per cycle.
func (s *Simulation) Notation() string {
	if len(s.Cycles) == 0 {
		return "()"
	}
	var sb strings.Builder
	for _, cyc := range s.Cycles {
		sb.WriteByte('(')
		for i, st := range cyc {
			if i > 0 {
				sb.WriteByte(' ')
			}
			sb.WriteString(strconv.Itoa(st))
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

// ComplexityWalk returns, for each prefix of the gate sequence, the number
// of states the prefix permutation moves. One entry per gate; the data
// behind the inspector's complexity sparkline.
func (c *Circuit) ComplexityWalk() ([]int, error) {
	if c.Width > MaxSimulateWidth {
		return nil, fmt.Errorf("%w: width %d exceeds %d", ErrWidthTooLarge, c.Width, MaxSimulateWidth)
	}
	n := 1 << c.Width
	perm := make([]int, n)
	for s := range perm {
		perm[s] = s
	}
	gates := c.gatesByStep()
	walk := make([]int, 0, len(gates))
	for _, g := range gates {
		next := make([]int, n)
		moved := 0
		for s := 0; s < n; s++ {
			next[s] = g.Apply(perm[s])
			if next[s] != s {
				moved++
			}
		}
		perm = next
		walk = append(walk, moved)
	}
	return walk, nil
}
