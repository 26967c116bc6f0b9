package scheduler

import (
	"strconv"

	"github.com/cairnfs/cairn/pkg/metrics"
	"github.com/cairnfs/cairn/pkg/topology"
	"github.com/cairnfs/cairn/pkg/types"
)

// WidthChange is a chunkserver's scatter-width before and after a
// simulated migration.
type WidthChange struct {
	Before int
	After  int
}

// Delta returns the signed scatter-width change.
func (w WidthChange) Delta() int {
	return w.After - w.Before
}

// ComputeImpact simulates moving one replica of copySet from source to
// target and returns the before/after scatter-width of every touched
// chunkserver: the target, the source, and each remaining peer.
//
// For copyset (A,B,C) with source=C and target=D the edge changes are:
//
//	A: -C, +D
//	B: -C, +D
//	C: -A, -B
//	D: +A, +B
//
// An edge is only removed when the two nodes share no other copyset;
// simulation therefore runs on scatter counter maps, decrementing with
// erase-at-zero semantics.
//
// Source and target may each be types.UnsetID to model one-sided
// evaluation (pure replica addition or removal).
func ComputeImpact(topo topology.Adapter, copySet types.CopySet, source, target string) map[string]WidthChange {
	out := make(map[string]WidthChange, len(copySet.Peers)+1)

	var targetMap, sourceMap counterSet
	if target != types.UnsetID {
		targetMap = counterSet(topo.GetChunkServerScatterMap(target))
		out[target] = WidthChange{Before: targetMap.distinct()}
	}
	if source != types.UnsetID {
		sourceMap = counterSet(topo.GetChunkServerScatterMap(source))
		out[source] = WidthChange{Before: sourceMap.distinct()}
	}

	for _, peer := range copySet.Peers {
		if peer.ChunkServerID == source {
			continue
		}

		peerMap := counterSet(topo.GetChunkServerScatterMap(peer.ChunkServerID))
		change := WidthChange{Before: peerMap.distinct()}

		if target != types.UnsetID {
			// Target gains an edge to the peer, the peer to the target.
			targetMap.increment(peer.ChunkServerID)
			peerMap.increment(target)
		}
		if source != types.UnsetID {
			// Edges to the source only disappear once no shared
			// copyset remains.
			peerMap.decrementOrRemove(source)
			sourceMap.decrementOrRemove(peer.ChunkServerID)
		}

		change.After = peerMap.distinct()
		out[peer.ChunkServerID] = change
	}

	if target != types.UnsetID {
		change := out[target]
		change.After = targetMap.distinct()
		out[target] = change
	}
	if source != types.UnsetID {
		change := out[source]
		change.After = sourceMap.distinct()
		out[source] = change
	}

	return out
}

// EvaluateFeasibility applies the scatter-width rule to every
// chunkserver touched by the candidate migration. It returns whether
// all of them pass, plus the aggregate signed scatter-width delta
// ("affected"), which callers use to rank otherwise feasible
// candidates — smaller means less net disruption.
//
// ignore names a chunkserver whose own pass/fail and delta are
// excluded, typically a source already known offline: a departing dead
// node's balance is irrelevant to the decision.
func EvaluateFeasibility(topo topology.Adapter, copySet types.CopySet, source, target, ignore string,
	minScatterWidth int, scatterWidthRange float64) (bool, int) {

	impact := ComputeImpact(topo, copySet, source, target)

	allSatisfied := true
	affected := 0
	for id, change := range impact {
		if id == ignore && ignore != types.UnsetID {
			continue
		}
		if !SatisfiesScatterWidth(id == target, change.Before, change.After, minScatterWidth, scatterWidthRange) {
			allSatisfied = false
		}
		affected += change.Delta()
	}

	metrics.FeasibilityChecks.WithLabelValues(strconv.FormatBool(allSatisfied)).Inc()
	metrics.AffectedScore.Observe(float64(affected))

	return allSatisfied, affected
}
