/*
Package storage provides BoltDB-backed persistence for topology snapshots.

The placement engine itself is stateless and read-only; this package
exists for its tooling. cairn-sched imports YAML topology documents into
a Bolt database so repeated check/rank invocations — and offline analysis
of a captured production topology — do not reparse the document every
run.

# Storage Layout

A single BoltDB file (cairn-topology.db) with one bucket per kind, keys
as IDs, values as JSON:

	chunkservers/  <id>          → types.ChunkServer
	pools/         <id>          → types.LogicalPool
	copysets/      <pool>/<id>   → types.CopySet

Snapshot() reads all three buckets in one view transaction and hands the
result to topology.NewSnapshot, which precomputes scatter maps. Writes
are upserts; BoltDB gives single-writer serialization for free, which is
all this tooling needs.
*/
package storage
