package scheduler

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/cairnfs/cairn/pkg/topology"
	"github.com/cairnfs/cairn/pkg/types"
)

func TestIsMigrationAllowedUnknownTarget(t *testing.T) {
	snap, c1 := singleCopySetSnapshot()

	assert.False(t, IsMigrationAllowed(snap, "no-such-server", "C", c1, 2, 0.2),
		"unknown target must fail closed")
}

func TestIsMigrationAllowedBadZoneConfig(t *testing.T) {
	c1 := types.CopySet{PoolID: "pool-broken", ID: "1", Peers: []types.Peer{
		peer("A", "z1"), peer("B", "z2"), peer("C", "z3"),
	}}
	snap := topology.NewSnapshot(
		[]types.ChunkServer{
			{ID: "A", ZoneID: "z1", PoolID: "pool-broken", State: types.ChunkServerOnline},
			{ID: "B", ZoneID: "z2", PoolID: "pool-broken", State: types.ChunkServerOnline},
			{ID: "C", ZoneID: "z3", PoolID: "pool-broken", State: types.ChunkServerOnline},
			{ID: "D", ZoneID: "z3", PoolID: "pool-broken", State: types.ChunkServerOnline},
		},
		[]types.LogicalPool{{ID: "pool-broken", StandardZoneNum: 0, MinScatterWidth: 2}},
		[]types.CopySet{c1},
	)

	assert.False(t, IsMigrationAllowed(snap, "D", "C", c1, 2, 0.2),
		"non-positive standard zone count is a configuration error")
}

// TestIsMigrationAllowedZoneSpread: shrinking the distinct-zone count
// below the pool standard rejects regardless of scatter-width outcome.
func TestIsMigrationAllowedZoneSpread(t *testing.T) {
	c1 := types.CopySet{PoolID: "pool-1", ID: "1", Peers: []types.Peer{
		peer("A", "z1"), peer("A2", "z1"), peer("B", "z2"),
	}}
	snap := topology.NewSnapshot(
		[]types.ChunkServer{
			server("A", "z1", types.ChunkServerOnline),
			server("A2", "z1", types.ChunkServerOnline),
			server("B", "z2", types.ChunkServerOnline),
			server("T", "z2", types.ChunkServerOnline),
		},
		[]types.LogicalPool{testPool},
		[]types.CopySet{c1},
	)

	// Moving the A replica (z1) to T (z2) leaves zones {z1, z2}:
	// two distinct zones against a standard of three.
	assert.False(t, IsMigrationAllowed(snap, "T", "A", c1, 0, 10.0),
		"zone check must reject before scatter-width is consulted")
}

// TestIsMigrationAllowedScatterWidth: the zone check passing is not
// enough; a scatter-width violation on any touched node rejects.
func TestIsMigrationAllowedScatterWidth(t *testing.T) {
	snap, c1 := singleCopySetSnapshot()

	// D is in C's zone, so the spread holds at three zones, but the
	// departing C falls from 2 to 0, below the floor and decreasing.
	assert.False(t, IsMigrationAllowed(snap, "D", "C", c1, 2, 0.2))
}

// TestIsMigrationAllowedEndToEnd: pool standard zone count 3,
// scatter-width band [2, 2] (min 2, tolerance 0.2 truncates). Copyset
// {A,B,C} across three zones migrates C to D in C's own zone. C keeps
// an in-band width through its second copyset, A and B trade their C
// edge for a D edge, and D lands exactly on the floor.
func TestIsMigrationAllowedEndToEnd(t *testing.T) {
	c1 := types.CopySet{PoolID: "pool-1", ID: "1", Peers: []types.Peer{
		peer("A", "z1"), peer("B", "z2"), peer("C", "z3"),
	}}
	c2 := types.CopySet{PoolID: "pool-1", ID: "2", Peers: []types.Peer{
		peer("C", "z3"), peer("E", "z1"), peer("F", "z2"),
	}}
	snap := topology.NewSnapshot(
		[]types.ChunkServer{
			server("A", "z1", types.ChunkServerOnline),
			server("B", "z2", types.ChunkServerOnline),
			server("C", "z3", types.ChunkServerOnline),
			server("D", "z3", types.ChunkServerOnline),
			server("E", "z1", types.ChunkServerOnline),
			server("F", "z2", types.ChunkServerOnline),
		},
		[]types.LogicalPool{testPool},
		[]types.CopySet{c1, c2},
	)

	assert.True(t, IsMigrationAllowed(snap, "D", "C", c1, 2, 0.2))

	// The diagnostic surface reports the same verdict with its score.
	ok, affected := EvaluateFeasibility(snap, c1, "C", "D", types.UnsetID, 2, 0.2)
	assert.True(t, ok)
	assert.Equal(t, 0, affected, "A and B trade edges, C -2, D +2")
}
