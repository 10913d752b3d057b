package main

import (
	"slices"

	"github.com/bits-and-blooms/bitset"
)

// ReduceWires renumbers a gate list onto its minimal contiguous wire
// range: the distinct wires referenced, sorted ascending, become the dense
// indices 0..k-1. Returns the remapped gates, the reduced width k, and the
// old-to-new wire map. Empty input yields width 0 and no gates. Used to
// shrink an extracted fragment to its own namespace before re-serializing
// it independently.
func ReduceWires(gates []Gate) ([]Gate, int, map[int]int) {
	wireMap := make(map[int]int)
	if len(gates) == 0 {
		return nil, 0, wireMap
	}

	maxWire := 0
	for _, g := range gates {
		maxWire = max(maxWire, g.MaxWire())
	}
	used := bitset.New(uint(maxWire + 1))
	for _, g := range gates {
		used.Set(uint(g.Target))
		for _, c := range g.Controls {
			used.Set(uint(c))
		}
	}

	// bitset iteration is ascending, which is exactly the dense assignment.
	next := 0
	for w, ok := used.NextSet(0); ok; w, ok = used.NextSet(w + 1) {
		wireMap[int(w)] = next
		next++
	}

	out := make([]Gate, len(gates))
	for i, g := range gates {
		g.Target = wireMap[g.Target]
		g.Controls = slices.Clone(g.Controls)
		for j, c := range g.Controls {
			g.Controls[j] = wireMap[c]
		}
		out[i] = g
	}
	return out, next, wireMap
}
