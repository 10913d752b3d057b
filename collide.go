package main

import "slices"

// CollisionEdge is a derived ordering constraint between two gates: the
// gate at sequence position From must stay before the one at position To.
// From < To always; edges are recomputed whenever the sequence changes.
type CollisionEdge struct {
	From, To int
}

// Collides reports whether two gates do not commute: either one's target
// is among the other's controls. Two gates sharing the same target but
// disjoint from each other's controls do NOT collide, since XOR onto the
// same wire commutes. Symmetric by construction.
func Collides(a, b Gate) bool {
	return slices.Contains(b.Controls, a.Target) || slices.Contains(a.Controls, b.Target)
}

// CollisionEdges builds the full collision graph over the gate sequence by
// testing every pair in step order. O(n²) in the gate count, which is fine
// at the tens-of-gates circuits this explorer handles; no transitive
// closure is computed.
func (c *Circuit) CollisionEdges() []CollisionEdge {
	return collisionEdges(c.gatesByStep())
}

func collisionEdges(gates []Gate) []CollisionEdge {
	var edges []CollisionEdge
	for i := 0; i < len(gates); i++ {
		for j := i + 1; j < len(gates); j++ {
			if Collides(gates[i], gates[j]) {
				edges = append(edges, CollisionEdge{From: i, To: j})
			}
		}
	}
	return edges
}
