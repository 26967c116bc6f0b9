/*
Package topology provides read-only topology snapshots for the scheduler.

The scheduler core never talks to the live topology registry. It consumes
the Adapter interface — four read operations over chunkservers, pools,
copysets, and per-node scatter counter maps — and this package supplies
Snapshot, an immutable in-memory implementation.

# Snapshots

A Snapshot is built once from a consistent read of the registry:

	snap := topology.NewSnapshot(chunkServers, pools, copySets)

Construction precomputes every chunkserver's scatter counter map (how many
copysets it shares with each other chunkserver). After that the snapshot
is never mutated, so concurrent scheduling goroutines can evaluate
candidate migrations against the same snapshot without coordination.
GetChunkServerScatterMap returns a fresh copy per call; migration
simulation mutates those copies, never the snapshot.

Snapshots may be stale relative to migrations decided elsewhere. The outer
scheduler either serializes decisions or tolerates eventual consistency;
this package only guarantees that one snapshot is internally consistent.

# Topology Documents

LoadFile and Parse read the YAML topology document used by the
cairn-sched CLI and by test fixtures:

	pools:
	  - id: pool-1
	    replicaNum: 3
	    standardZoneNum: 3
	    minScatterWidth: 2
	    scatterWidthRange: 0.2
	chunkservers:
	  - {id: cs-1, zone: z1, pool: pool-1}
	  - {id: cs-2, zone: z2, pool: pool-1, state: pending-offline}
	copysets:
	  - {pool: pool-1, id: "1", peers: [cs-1, cs-2, cs-3]}

Peer zones are resolved through the chunkserver table; dangling
references are load errors.
*/
package topology
