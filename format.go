package main

import (
	"fmt"
	"strings"
)

// The compact text format is the interchange form for ECA57 circuits: one
// gate per token, three characters (target, ctrl1, ctrl2) through the wire
// alphabet, a ';' after every gate including the last.

// ParseCompact parses compact text into a circuit, leniently: empty and
// too-short tokens are skipped without error (step indices count valid
// tokens only) and out-of-alphabet characters decode as wire 0. Detected
// width is 1 + the highest wire referenced, 0 when no gate parses.
func ParseCompact(text string) *Circuit {
	c := &Circuit{}
	skipped := 0
	step := 0
	for _, tok := range strings.Split(text, ";") {
		if tok == "" {
			continue
		}
		if len(tok) < 3 {
			skipped++
			continue
		}
		g := Gate{
			Kind:     KindECA57,
			Target:   CharWire(tok[0]),
			Controls: []int{CharWire(tok[1]), CharWire(tok[2])},
			Step:     step,
		}
		step++
		c.Gates = append(c.Gates, g)
		if w := g.MaxWire() + 1; w > c.Width {
			c.Width = w
		}
	}
	if skipped > 0 {
		log := Logger()
		log.Debug().Int("skipped", skipped).Int("parsed", step).Msg("compact parse dropped short tokens")
	}
	return c
}

// ParseCompactStrict parses the same grammar but treats malformed tokens
// and out-of-alphabet characters as errors. This is the profile to hold an
// external producer to; the lenient parser is for in-progress user input.
func ParseCompactStrict(text string) (*Circuit, error) {
	c := &Circuit{}
	step := 0
	for i, tok := range strings.Split(text, ";") {
		if tok == "" {
			continue
		}
		if len(tok) != 3 {
			return nil, fmt.Errorf("token %d: want 3 characters, got %q", i, tok)
		}
		wires := make([]int, 3)
		for j := 0; j < 3; j++ {
			w, err := CharWireStrict(tok[j])
			if err != nil {
				return nil, fmt.Errorf("token %d: %w", i, err)
			}
			wires[j] = w
		}
		g := Gate{Kind: KindECA57, Target: wires[0], Controls: wires[1:], Step: step}
		step++
		c.Gates = append(c.Gates, g)
		if w := g.MaxWire() + 1; w > c.Width {
			c.Width = w
		}
	}
	return c, nil
}

// ToCompact serializes the circuit's ECA57 gates, sorted by step, to the
// compact form. Gates of other kinds have no compact spelling and are
// omitted.
func (c *Circuit) ToCompact() string {
	var sb strings.Builder
	for _, g := range c.gatesByStep() {
		if g.Kind != KindECA57 {
			continue
		}
		sb.WriteByte(WireChar(g.Target))
		sb.WriteByte(WireChar(g.Controls[0]))
		sb.WriteByte(WireChar(g.Controls[1]))
		sb.WriteByte(';')
	}
	return sb.String()
}
