package scheduler

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cairnfs/cairn/pkg/topology"
	"github.com/cairnfs/cairn/pkg/types"
)

func peer(chunkServerID, zoneID string) types.Peer {
	return types.Peer{ChunkServerID: chunkServerID, ZoneID: zoneID}
}

func server(id, zone string, state types.ChunkServerState) types.ChunkServer {
	return types.ChunkServer{ID: id, ZoneID: zone, PoolID: "pool-1", State: state}
}

var testPool = types.LogicalPool{
	ID:                "pool-1",
	ReplicaNum:        3,
	StandardZoneNum:   3,
	MinScatterWidth:   2,
	ScatterWidthRange: 0.2,
}

// singleCopySetSnapshot: one copyset {A,B,C}, empty chunkserver D.
func singleCopySetSnapshot() (*topology.Snapshot, types.CopySet) {
	c1 := types.CopySet{PoolID: "pool-1", ID: "1", Peers: []types.Peer{
		peer("A", "z1"), peer("B", "z2"), peer("C", "z3"),
	}}
	snap := topology.NewSnapshot(
		[]types.ChunkServer{
			server("A", "z1", types.ChunkServerOnline),
			server("B", "z2", types.ChunkServerOnline),
			server("C", "z3", types.ChunkServerOnline),
			server("D", "z3", types.ChunkServerOnline),
		},
		[]types.LogicalPool{testPool},
		[]types.CopySet{c1},
	)
	return snap, c1
}

// sharedEdgeSnapshot adds a second copyset {B,C,E} so that B-C keeps an
// edge after one shared copyset moves away.
func sharedEdgeSnapshot() (*topology.Snapshot, types.CopySet) {
	c1 := types.CopySet{PoolID: "pool-1", ID: "1", Peers: []types.Peer{
		peer("A", "z1"), peer("B", "z2"), peer("C", "z3"),
	}}
	c2 := types.CopySet{PoolID: "pool-1", ID: "2", Peers: []types.Peer{
		peer("B", "z2"), peer("C", "z3"), peer("E", "z1"),
	}}
	snap := topology.NewSnapshot(
		[]types.ChunkServer{
			server("A", "z1", types.ChunkServerOnline),
			server("B", "z2", types.ChunkServerOnline),
			server("C", "z3", types.ChunkServerOnline),
			server("D", "z3", types.ChunkServerOnline),
			server("E", "z1", types.ChunkServerOnline),
		},
		[]types.LogicalPool{testPool},
		[]types.CopySet{c1, c2},
	)
	return snap, c1
}

// TestComputeImpactSingleCopyset: for copyset {A,B,C} with source C and
// target D, the simulation must add edges A-D and B-D and remove A-C
// and B-C.
func TestComputeImpactSingleCopyset(t *testing.T) {
	snap, c1 := singleCopySetSnapshot()

	impact := ComputeImpact(snap, c1, "C", "D")
	require.Len(t, impact, 4)

	assert.Equal(t, WidthChange{Before: 2, After: 2}, impact["A"], "A: -C, +D")
	assert.Equal(t, WidthChange{Before: 2, After: 2}, impact["B"], "B: -C, +D")
	assert.Equal(t, WidthChange{Before: 2, After: 0}, impact["C"], "C: -A, -B")
	assert.Equal(t, WidthChange{Before: 0, After: 2}, impact["D"], "D: +A, +B")

	// Edge-count conservation: two edges added, two removed.
	total := 0
	for _, change := range impact {
		total += change.Delta()
	}
	assert.Equal(t, 0, total)
}

// TestComputeImpactSharedEdge: edges backed by another shared copyset
// must survive the migration.
func TestComputeImpactSharedEdge(t *testing.T) {
	snap, c1 := sharedEdgeSnapshot()

	impact := ComputeImpact(snap, c1, "C", "D")
	require.Len(t, impact, 4)

	// A shared C only through the moving copyset.
	assert.Equal(t, WidthChange{Before: 2, After: 2}, impact["A"])
	// B keeps its C edge through copyset 2 and gains D.
	assert.Equal(t, WidthChange{Before: 3, After: 4}, impact["B"])
	// C loses A entirely but keeps B and E through copyset 2.
	assert.Equal(t, WidthChange{Before: 3, After: 2}, impact["C"])
	assert.Equal(t, WidthChange{Before: 0, After: 2}, impact["D"])
}

// TestComputeImpactOneSided: unset source or target models pure
// addition or removal.
func TestComputeImpactOneSided(t *testing.T) {
	snap, c1 := singleCopySetSnapshot()

	t.Run("add only", func(t *testing.T) {
		impact := ComputeImpact(snap, c1, types.UnsetID, "D")
		require.Len(t, impact, 4)
		assert.Equal(t, WidthChange{Before: 2, After: 3}, impact["A"])
		assert.Equal(t, WidthChange{Before: 2, After: 3}, impact["B"])
		assert.Equal(t, WidthChange{Before: 2, After: 3}, impact["C"])
		assert.Equal(t, WidthChange{Before: 0, After: 3}, impact["D"])
	})

	t.Run("remove only", func(t *testing.T) {
		impact := ComputeImpact(snap, c1, "C", types.UnsetID)
		require.Len(t, impact, 3)
		assert.Equal(t, WidthChange{Before: 2, After: 1}, impact["A"])
		assert.Equal(t, WidthChange{Before: 2, After: 1}, impact["B"])
		assert.Equal(t, WidthChange{Before: 2, After: 0}, impact["C"])
	})
}

func TestEvaluateFeasibility(t *testing.T) {
	snap, c1 := singleCopySetSnapshot()

	t.Run("source violation fails closed", func(t *testing.T) {
		// C drops from 2 to 0, below the floor and decreasing.
		ok, affected := EvaluateFeasibility(snap, c1, "C", "D", types.UnsetID, 2, 0.2)
		assert.False(t, ok)
		assert.Equal(t, 0, affected, "deltas still sum over all nodes")
	})

	t.Run("ignored source is excluded", func(t *testing.T) {
		// Ignoring C (e.g. it is already offline) leaves only passing
		// nodes, and C's delta no longer counts.
		ok, affected := EvaluateFeasibility(snap, c1, "C", "D", "C", 2, 0.2)
		assert.True(t, ok)
		assert.Equal(t, 2, affected)
	})
}

// TestEvaluateFeasibilityConcurrent: evaluations against one snapshot
// are pure; concurrent callers must never observe each other's
// simulated edits.
func TestEvaluateFeasibilityConcurrent(t *testing.T) {
	snap, c1 := sharedEdgeSnapshot()

	wantOK, wantAffected := EvaluateFeasibility(snap, c1, "C", "D", types.UnsetID, 2, 1.0)

	var wg sync.WaitGroup
	for g := 0; g < 16; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				ok, affected := EvaluateFeasibility(snap, c1, "C", "D", types.UnsetID, 2, 1.0)
				assert.Equal(t, wantOK, ok)
				assert.Equal(t, wantAffected, affected)
			}
		}()
	}
	wg.Wait()
}
