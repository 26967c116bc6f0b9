/*
Package scheduler implements placement feasibility and candidate ranking
for copyset rebalancing and recovery.

When the outer scheduling loop considers moving one replica of a copyset
from a source chunkserver to a target chunkserver, this package decides
whether the move keeps the copyset's fault-domain spread and every
involved chunkserver's scatter-width within policy, and ranks competing
candidates so repeated greedy steps converge toward balance instead of
oscillating.

# Architecture

All computation is pure and runs against a read-only topology snapshot:

	┌──────────────────────────────────────────────────────────┐
	│                 Outer scheduling loop                    │
	│      (recovery / balance operators, not this package)    │
	└───────────────┬──────────────────────────┬───────────────┘
	                │ propose (copyset, src, tgt)              │ order candidates
	                ▼                          ▼
	┌──────────────────────────────┐  ┌────────────────────────┐
	│     IsMigrationAllowed       │  │        Ranker          │
	│  1. target zone lookup       │  │  SortDistribution      │
	│  2. zone multiset simulation │  │  SortChunkServers...   │
	│  3. EvaluateFeasibility ──┐  │  │  SortCandidates...     │
	└───────────────────────────┼──┘  └────────────────────────┘
	                            ▼
	┌──────────────────────────────┐
	│        ComputeImpact         │  per-node (before, after)
	│   SatisfiesScatterWidth      │  scatter-width band rule
	└──────────────────────────────┘

# Scatter-Width

A chunkserver's scatter-width is the number of distinct other
chunkservers it shares at least one copyset with — a proxy for blast
radius under correlated failures. Each pool configures a band
[min, min*(1+range)]; the feasibility rule tolerates out-of-band nodes
that a migration does not make worse, but requires the migration target
to strictly improve. That asymmetry is what guarantees monotonic
convergence of the distributed optimization run one greedy step at a
time.

Impact simulation treats co-location as a presence/absence edge with
multiplicity tracked underneath: sharing two copysets with a neighbor
still counts the neighbor once, and an edge only disappears when the
last shared copyset moves away.

# Ranking

Scoring keys tie constantly — equal copyset counts, equal affected
scores. Each Ranker utility shuffles its input and then applies a stable
sort, so the primary key order is exact while ties break uniformly at
random across scheduling cycles rather than systematically favoring
low-numbered chunkservers.

# Errors

There is no exceptional control flow. Every operation returns a boolean
or a structured result, and every uncertainty — unknown target,
misconfigured pool, missing lookup — resolves to "do not migrate".
A skipped rebalance self-corrects on the next cycle; an approved
infeasible migration does not.
*/
package scheduler
