/*
Package types defines the core data structures of Cairn's placement engine.

This package contains the domain model shared by the topology adapter, the
scheduler core, storage, and the CLI: chunkservers, zones, logical pools,
copysets, and migration candidates. Every other package depends on it; it
depends on nothing but the standard library.

# Domain Model

Storage capacity is organized as replica groups ("copysets") spread across
storage nodes ("chunkservers") grouped into fault domains ("zones"). Each
logical pool is an independent placement domain carrying its own policy:

  - StandardZoneNum: the minimum number of distinct zones a copyset in the
    pool must span.
  - MinScatterWidth / ScatterWidthRange: the scatter-width band
    [min, min*(1+range)] the scheduler steers every chunkserver toward.

Scatter-width itself is not stored here: it is a derived, point-in-time
value counting the distinct other chunkservers a node shares at least one
copyset with, and is always recomputed against a topology snapshot.

# Core Types

Topology:
  - ChunkServer: storage node with zone membership and operational state
    (online, pending-offline, offline)
  - Zone: fault domain grouping chunkservers
  - LogicalPool: placement domain with zone and scatter-width policy

Placement:
  - Peer: (chunkserver, zone) replica placement fact
  - CopySet: pool-qualified replica group with a fixed-size peer set
  - MigrationCandidate: ephemeral (copyset, source, target) proposal

All types are plain values: serializable as JSON for the BoltDB store and
as YAML for topology documents, and safe to copy across goroutines.
*/
package types
