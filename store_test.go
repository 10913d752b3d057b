package main

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLibraryRoundTrip(t *testing.T) {
	lib := &Library{Records: []Record{
		{Name: "swap-pair", Width: 3, GateCount: 1, Gates: [][3]int{{2, 0, 1}}},
		{Name: "empty", Width: 2, GateCount: 0},
	}}

	var buf bytes.Buffer
	require.NoError(t, SerializeLibrary(&buf, lib))

	got, err := DeserializeLibrary(&buf)
	require.NoError(t, err)
	assert.Equal(t, lib.Records, got.Records)
}

func TestDeserializeBadMagic(t *testing.T) {
	var buf bytes.Buffer
	enc := cbor.NewEncoder(&buf)
	require.NoError(t, enc.Encode(libraryHeader{Magic: "NOP", Version: libraryVersion}))

	_, err := DeserializeLibrary(&buf)
	assert.ErrorIs(t, err, errBadMagic)
}

func TestDeserializeBadVersion(t *testing.T) {
	var buf bytes.Buffer
	enc := cbor.NewEncoder(&buf)
	require.NoError(t, enc.Encode(libraryHeader{Magic: libraryMagic, Version: 99}))

	_, err := DeserializeLibrary(&buf)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "version")
}

func TestDeserializeGarbage(t *testing.T) {
	_, err := DeserializeLibrary(bytes.NewReader([]byte{0xff, 0x00, 0x13}))
	assert.Error(t, err)
}

func TestRecordRefreshFillsDerivedFields(t *testing.T) {
	c := &Circuit{Width: 3}
	c.AddGate(KindECA57, 2, 0, 0, 1)

	rec := RecordFromCircuit("scenario", c)
	require.Nil(t, rec.Permutation)
	require.NoError(t, rec.refresh())

	sim, err := c.Simulate()
	require.NoError(t, err)
	walk, err := c.ComplexityWalk()
	require.NoError(t, err)

	assert.Equal(t, sim.Perm, rec.Permutation)
	assert.Equal(t, sim.Notation(), rec.CycleNotation)
	assert.Equal(t, walk, rec.ComplexityWalk)
	edges := c.CollisionEdges()
	require.Len(t, rec.SkeletonEdges, len(edges))
	for i, e := range edges {
		assert.Equal(t, [2]int{e.From, e.To}, rec.SkeletonEdges[i])
	}
}

func TestRecordRefreshKeepsPrecomputedFields(t *testing.T) {
	rec := Record{
		Width:         2,
		Gates:         [][3]int{{1, 0, 0}},
		Permutation:   []int{9, 9, 9, 9}, // deliberately wrong, must survive
		CycleNotation: "(sentinel)",
	}
	require.NoError(t, rec.refresh())
	assert.Equal(t, []int{9, 9, 9, 9}, rec.Permutation)
	assert.Equal(t, "(sentinel)", rec.CycleNotation)
}

func TestRecordRefreshSkipsWideCircuits(t *testing.T) {
	rec := Record{
		Width: MaxSimulateWidth + 1,
		Gates: [][3]int{{0, 1, 2}},
	}
	require.NoError(t, rec.refresh())
	assert.NotNil(t, rec.SkeletonEdges)
	assert.Nil(t, rec.Permutation)
	assert.Empty(t, rec.CycleNotation)
}

func TestRecordCircuitRoundTrip(t *testing.T) {
	c := &Circuit{Width: 4}
	c.AddGate(KindECA57, 3, 0, 0, 1)
	c.AddGate(KindECA57, 0, 1, 2, 3)

	rec := RecordFromCircuit("pair", c)
	assert.Equal(t, 2, rec.GateCount)

	back := rec.Circuit()
	assert.Equal(t, c.Width, back.Width)
	require.Len(t, back.Gates, 2)
	assert.Equal(t, c.Gates[0].Target, back.Gates[0].Target)
	assert.Equal(t, c.Gates[0].Controls, back.Gates[0].Controls)
	assert.Equal(t, c.Gates[1].Target, back.Gates[1].Target)
	assert.Equal(t, c.Gates[1].Controls, back.Gates[1].Controls)
}

func TestRecordFromCircuitSkipsNonPrimitive(t *testing.T) {
	c := &Circuit{Width: 3}
	c.AddGate(KindX, 0, 0)
	c.AddGate(KindECA57, 2, 1, 0, 1)

	rec := RecordFromCircuit("mixed", c)
	assert.Equal(t, 1, rec.GateCount)
	assert.Equal(t, [][3]int{{2, 0, 1}}, rec.Gates)
}

func TestWriteReadLibrary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lib.rdk")

	c := &Circuit{Width: 3}
	c.AddGate(KindECA57, 2, 0, 0, 1)
	lib := &Library{Records: []Record{RecordFromCircuit("scenario", c)}}
	require.NoError(t, WriteLibrary(path, lib))

	got, err := ReadLibrary(path)
	require.NoError(t, err)
	require.Len(t, got.Records, 1)
	// ReadLibrary refreshes, so derived fields come back filled.
	assert.Equal(t, []int{4, 5, 2, 7, 0, 1, 6, 3}, got.Records[0].Permutation)
	assert.Equal(t, "(0 4)(1 5)(3 7)", got.Records[0].CycleNotation)
}
