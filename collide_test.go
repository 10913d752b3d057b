package main

import "testing"

func TestCollides(t *testing.T) {
	tests := []struct {
		name string
		a, b Gate
		want bool
	}{
		{
			name: "target into control",
			a:    Gate{Kind: KindX, Target: 0},
			b:    Gate{Kind: KindCX, Target: 1, Controls: []int{0}},
			want: true,
		},
		{
			name: "control into target",
			a:    Gate{Kind: KindCX, Target: 1, Controls: []int{2}},
			b:    Gate{Kind: KindX, Target: 2},
			want: true,
		},
		{
			name: "same target, disjoint controls",
			a:    Gate{Kind: KindCX, Target: 0, Controls: []int{1}},
			b:    Gate{Kind: KindCX, Target: 0, Controls: []int{2}},
			want: false,
		},
		{
			name: "same target, no controls",
			a:    Gate{Kind: KindX, Target: 3},
			b:    Gate{Kind: KindX, Target: 3},
			want: false,
		},
		{
			name: "disjoint wires",
			a:    Gate{Kind: KindECA57, Target: 0, Controls: []int{1, 2}},
			b:    Gate{Kind: KindECA57, Target: 3, Controls: []int{4, 5}},
			want: false,
		},
		{
			name: "shared control only",
			a:    Gate{Kind: KindCX, Target: 0, Controls: []int{2}},
			b:    Gate{Kind: KindCX, Target: 1, Controls: []int{2}},
			want: false,
		},
		{
			name: "eca57 negated control still collides",
			a:    Gate{Kind: KindX, Target: 2},
			b:    Gate{Kind: KindECA57, Target: 0, Controls: []int{1, 2}},
			want: true,
		},
	}

	for _, tt := range tests {
		if got := Collides(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Collides = %v, want %v", tt.name, got, tt.want)
		}
		// Symmetric by construction
		if got := Collides(tt.b, tt.a); got != tt.want {
			t.Errorf("%s (flipped): Collides = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestCollisionEdges(t *testing.T) {
	c := &Circuit{}
	c.AddGate(KindX, 0, 0)                // writes w0
	c.AddGate(KindCX, 1, 1, 0)            // reads w0 -> collides with gate 0
	c.AddGate(KindX, 2, 2)                // independent
	c.AddGate(KindECA57, 0, 3, 1, 2)      // reads w1, w2 and writes w0

	edges := c.CollisionEdges()

	want := map[CollisionEdge]bool{
		{From: 0, To: 1}: true, // X(0) vs CX ctrl 0
		{From: 0, To: 3}: false,
		{From: 1, To: 3}: true, // CX writes w1, ECA57 reads w1; CX reads w0, ECA57 writes w0
		{From: 2, To: 3}: true, // X writes w2, ECA57 reads w2
	}
	got := map[CollisionEdge]bool{}
	for _, e := range edges {
		if e.From >= e.To {
			t.Errorf("edge %+v: From must be < To", e)
		}
		got[e] = true
	}
	for e, present := range want {
		if got[e] != present {
			t.Errorf("edge %+v: present=%v, want %v", e, got[e], present)
		}
	}
	if len(edges) != 3 {
		t.Errorf("got %d edges, want 3", len(edges))
	}
}

func TestCollisionEdgesFollowStepOrder(t *testing.T) {
	// Positions refer to step order, not insertion order.
	c := &Circuit{}
	c.AddGate(KindCX, 1, 1, 0) // second in step order
	c.AddGate(KindX, 0, 0)     // first in step order

	edges := c.CollisionEdges()
	if len(edges) != 1 || edges[0] != (CollisionEdge{From: 0, To: 1}) {
		t.Errorf("edges = %+v, want [{0 1}]", edges)
	}
}

func TestCollisionEdgesEmpty(t *testing.T) {
	c := &Circuit{Width: 4}
	if edges := c.CollisionEdges(); len(edges) != 0 {
		t.Errorf("empty circuit: got %d edges, want 0", len(edges))
	}
}
