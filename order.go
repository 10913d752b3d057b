package main

// CanonicalOrder returns the push-left reordering of the gate sequence:
// Kahn's algorithm over the collision graph, selecting among ready gates
// the one with the numerically largest target wire, ties broken by
// ascending original position. Steps are reassigned 0..n-1 in emission
// order. Swapping any two adjacent emitted gates that did not collide
// leaves the circuit's permutation unchanged, so the canonical order is
// safe for display.
//
// Edges always point from lower to higher original position, so the graph
// is a DAG; should "no ready gate" ever happen anyway, the remainder is
// flushed in position order rather than hanging.
func (c *Circuit) CanonicalOrder() []Gate {
	gates := c.gatesByStep()
	n := len(gates)
	indeg, succ := collisionDegrees(gates)

	emitted := make([]bool, n)
	out := make([]Gate, 0, n)
	for len(out) < n {
		best := -1
		for i := 0; i < n; i++ {
			if emitted[i] || indeg[i] != 0 {
				continue
			}
			if best == -1 || gates[i].Target > gates[best].Target {
				best = i
			}
		}
		if best == -1 {
			for i := 0; i < n; i++ {
				if !emitted[i] {
					emitted[i] = true
					g := gates[i]
					g.Step = len(out)
					out = append(out, g)
				}
			}
			break
		}
		emitted[best] = true
		g := gates[best]
		g.Step = len(out)
		out = append(out, g)
		for _, j := range succ[best] {
			indeg[j]--
		}
	}
	return out
}

// Levels partitions the gate sequence into topological levels: each pass
// takes the whole ready set as one level, positions ascending within it.
// Every gate lands in exactly one level, and every collision edge points
// into a later level. An empty ready pass (cannot happen with edges built
// forward, but defended anyway) dumps all remaining gates into one final
// level.
func (c *Circuit) Levels() [][]int {
	gates := c.gatesByStep()
	n := len(gates)
	indeg, succ := collisionDegrees(gates)

	assigned := make([]bool, n)
	placed := 0
	var levels [][]int
	for placed < n {
		var ready []int
		for i := 0; i < n; i++ {
			if !assigned[i] && indeg[i] == 0 {
				ready = append(ready, i)
			}
		}
		if len(ready) == 0 {
			var rest []int
			for i := 0; i < n; i++ {
				if !assigned[i] {
					rest = append(rest, i)
				}
			}
			levels = append(levels, rest)
			break
		}
		for _, i := range ready {
			assigned[i] = true
			for _, j := range succ[i] {
				indeg[j]--
			}
		}
		levels = append(levels, ready)
		placed += len(ready)
	}
	return levels
}

// collisionDegrees computes per-gate in-degrees and successor lists from
// the collision graph.
func collisionDegrees(gates []Gate) (indeg []int, succ [][]int) {
	n := len(gates)
	indeg = make([]int, n)
	succ = make([][]int, n)
	for _, e := range collisionEdges(gates) {
		succ[e.From] = append(succ[e.From], e.To)
		indeg[e.To]++
	}
	return indeg, succ
}
