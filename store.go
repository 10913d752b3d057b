package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/sync/errgroup"
)

// A circuit library is a .rdk file: a CBOR-encoded header (magic +
// version) followed by the record list. Derived fields in a record are
// optional; anything missing is recomputed locally on load.

const (
	libraryMagic   = "RDK"
	libraryVersion = 1
)

var errBadMagic = errors.New("not a circuit library file")

// Record is one stored circuit: its width and ECA57 gate triplets
// (target, ctrl1, ctrl2), plus optionally precomputed derived fields.
type Record struct {
	Name           string   `cbor:"name,omitempty"`
	Width          int      `cbor:"width"`
	GateCount      int      `cbor:"gate_count"`
	Gates          [][3]int `cbor:"gates"`
	SkeletonEdges  [][2]int `cbor:"skeleton_edges,omitempty"`
	ComplexityWalk []int    `cbor:"complexity_walk,omitempty"`
	Permutation    []int    `cbor:"permutation,omitempty"`
	CycleNotation  string   `cbor:"cycle_notation,omitempty"`
}

// libraryHeader is the first CBOR value in a .rdk file.
type libraryHeader struct {
	Magic   string `cbor:"magic"`
	Version int    `cbor:"version"`
}

// Library is an on-disk collection of circuit records.
type Library struct {
	Records []Record
}

// Circuit rebuilds the gate sequence a record stores.
func (r *Record) Circuit() *Circuit {
	c := &Circuit{Width: r.Width}
	for step, t := range r.Gates {
		c.AddGate(KindECA57, t[0], step, t[1], t[2])
	}
	return c
}

// RecordFromCircuit stores a circuit's ECA57 gates as a record, derived
// fields left empty for Refresh to fill.
func RecordFromCircuit(name string, c *Circuit) Record {
	r := Record{Name: name, Width: c.Width}
	for _, g := range c.gatesByStep() {
		if g.Kind != KindECA57 {
			continue
		}
		r.Gates = append(r.Gates, [3]int{g.Target, g.Controls[0], g.Controls[1]})
	}
	r.GateCount = len(r.Gates)
	return r
}

// refresh recomputes any missing derived fields of the record. Widths past
// MaxSimulateWidth keep their permutation fields empty rather than erroring
// the whole load.
func (r *Record) refresh() error {
	c := r.Circuit()
	r.GateCount = len(r.Gates)
	if r.SkeletonEdges == nil {
		edges := c.CollisionEdges()
		r.SkeletonEdges = make([][2]int, len(edges))
		for i, e := range edges {
			r.SkeletonEdges[i] = [2]int{e.From, e.To}
		}
	}
	if c.Width > MaxSimulateWidth {
		return nil
	}
	if r.Permutation == nil || r.CycleNotation == "" {
		sim, err := c.Simulate()
		if err != nil {
			return err
		}
		r.Permutation = sim.Perm
		r.CycleNotation = sim.Notation()
	}
	if r.ComplexityWalk == nil {
		walk, err := c.ComplexityWalk()
		if err != nil {
			return err
		}
		r.ComplexityWalk = walk
	}
	return nil
}

// Refresh fills in missing derived fields across all records, one
// goroutine per record; independent simulations share no state.
func (lib *Library) Refresh() error {
	var g errgroup.Group
	for i := range lib.Records {
		rec := &lib.Records[i]
		g.Go(rec.refresh)
	}
	return g.Wait()
}

// SerializeLibrary writes the header and records to w.
func SerializeLibrary(w io.Writer, lib *Library) error {
	enc := cbor.NewEncoder(w)
	if err := enc.Encode(libraryHeader{Magic: libraryMagic, Version: libraryVersion}); err != nil {
		return err
	}
	return enc.Encode(lib.Records)
}

// DeserializeLibrary reads a library from r, validating the header first.
func DeserializeLibrary(r io.Reader) (*Library, error) {
	dec := cbor.NewDecoder(r)
	var h libraryHeader
	if err := dec.Decode(&h); err != nil {
		return nil, err
	}
	if h.Magic != libraryMagic {
		return nil, errBadMagic
	}
	if h.Version != libraryVersion {
		return nil, fmt.Errorf("unsupported library version %d", h.Version)
	}
	lib := &Library{}
	if err := dec.Decode(&lib.Records); err != nil {
		return nil, err
	}
	return lib, nil
}

// WriteLibrary serializes the library into a file.
func WriteLibrary(path string, lib *Library) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return SerializeLibrary(f, lib)
}

// ReadLibrary reads a library file and refreshes missing derived fields.
func ReadLibrary(path string) (*Library, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	lib, err := DeserializeLibrary(f)
	if err != nil {
		return nil, err
	}
	if err := lib.Refresh(); err != nil {
		return nil, err
	}
	log := Logger()
	log.Debug().Int("records", len(lib.Records)).Str("path", path).Msg("loaded circuit library")
	return lib, nil
}
