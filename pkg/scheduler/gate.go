package scheduler

import (
	"github.com/cairnfs/cairn/pkg/log"
	"github.com/cairnfs/cairn/pkg/metrics"
	"github.com/cairnfs/cairn/pkg/topology"
	"github.com/cairnfs/cairn/pkg/types"
)

// IsMigrationAllowed is the admission gate for a candidate migration:
// moving one replica of copySet from source to target must keep the
// copyset's fault-domain spread at or above the pool's standard zone
// count, and must keep every touched chunkserver's scatter-width
// change acceptable under SatisfiesScatterWidth.
//
// Every failure rejects: an unknown target, a non-positive standard
// zone count (configuration error), shrinking the distinct-zone count
// below policy, or any scatter-width violation. Skipping a beneficial
// rebalance is cheap and self-corrects next cycle; approving an
// infeasible one is not.
func IsMigrationAllowed(topo topology.Adapter, target, source string, copySet types.CopySet,
	minScatterWidth int, scatterWidthRange float64) bool {

	logger := log.WithComponent("scheduler")

	targetInfo, ok := topo.GetChunkServerInfo(target)
	if !ok {
		logger.Error().
			Str("target", target).
			Str("copyset", copySet.Key()).
			Msg("cannot get chunkserver for migration target")
		metrics.MigrationsEvaluated.WithLabelValues(metrics.DecisionTargetUnknown).Inc()
		return false
	}

	minZone := topo.GetStandardZoneNumInLogicalPool(copySet.PoolID)
	if minZone <= 0 {
		logger.Error().
			Str("pool", copySet.PoolID).
			Int("standard_zone_num", minZone).
			Msg("standard zone num should be > 0")
		metrics.MigrationsEvaluated.WithLabelValues(metrics.DecisionBadZoneConfig).Inc()
		return false
	}

	// Zone occurrences among current peers, and the zone the source
	// replica leaves behind.
	zones := make(counterSet, len(copySet.Peers))
	sourceZone := types.UnsetID
	for _, peer := range copySet.Peers {
		zones.increment(peer.ZoneID)
		if peer.ChunkServerID == source {
			sourceZone = peer.ZoneID
		}
	}

	// Simulate the move on the zone multiset: -sourceZone, +targetZone.
	if sourceZone != types.UnsetID {
		zones.decrementOrRemove(sourceZone)
	}
	zones.increment(targetInfo.ZoneID)

	if zones.distinct() < minZone {
		metrics.MigrationsEvaluated.WithLabelValues(metrics.DecisionZoneSpread).Inc()
		return false
	}

	ok, _ = EvaluateFeasibility(topo, copySet, source, target, types.UnsetID,
		minScatterWidth, scatterWidthRange)
	if !ok {
		metrics.MigrationsEvaluated.WithLabelValues(metrics.DecisionScatterWidth).Inc()
		return false
	}

	metrics.MigrationsEvaluated.WithLabelValues(metrics.DecisionApproved).Inc()
	return true
}
