package topology

import (
	"github.com/cairnfs/cairn/pkg/types"
)

// Snapshot is an immutable in-memory Adapter implementation. It is
// built once from a consistent read of the topology registry and never
// mutated afterwards, so any number of scheduling goroutines may
// evaluate migrations against it concurrently.
//
// Scatter counter maps are precomputed at construction; accessors hand
// out copies so a caller simulating a migration never leaks its edits
// into the snapshot.
type Snapshot struct {
	chunkServers map[string]types.ChunkServer
	pools        map[string]types.LogicalPool
	copySets     []types.CopySet

	// scatter[x][y] counts the copysets x shares with y (y != x).
	scatter map[string]map[string]int
}

// NewSnapshot builds a snapshot from a consistent view of chunkservers,
// pools, and copysets.
func NewSnapshot(chunkServers []types.ChunkServer, pools []types.LogicalPool, copySets []types.CopySet) *Snapshot {
	s := &Snapshot{
		chunkServers: make(map[string]types.ChunkServer, len(chunkServers)),
		pools:        make(map[string]types.LogicalPool, len(pools)),
		copySets:     make([]types.CopySet, len(copySets)),
		scatter:      make(map[string]map[string]int, len(chunkServers)),
	}

	for _, cs := range chunkServers {
		s.chunkServers[cs.ID] = cs
		s.scatter[cs.ID] = make(map[string]int)
	}
	for _, p := range pools {
		s.pools[p.ID] = p
	}
	copy(s.copySets, copySets)

	// Count shared copysets per ordered peer pair. Co-location
	// multiplicity is kept so edge removal can require the count to
	// reach zero.
	for _, c := range s.copySets {
		for _, a := range c.Peers {
			for _, b := range c.Peers {
				if a.ChunkServerID == b.ChunkServerID {
					continue
				}
				m, ok := s.scatter[a.ChunkServerID]
				if !ok {
					m = make(map[string]int)
					s.scatter[a.ChunkServerID] = m
				}
				m[b.ChunkServerID]++
			}
		}
	}

	return s
}

// GetChunkServerInfo implements Adapter.
func (s *Snapshot) GetChunkServerInfo(id string) (types.ChunkServer, bool) {
	cs, ok := s.chunkServers[id]
	return cs, ok
}

// GetStandardZoneNumInLogicalPool implements Adapter. Unknown pools
// return 0, which the scheduler treats as a configuration error.
func (s *Snapshot) GetStandardZoneNumInLogicalPool(poolID string) int {
	return s.pools[poolID].StandardZoneNum
}

// GetChunkServerScatterMap implements Adapter. The returned map is a
// copy; callers may mutate it freely.
func (s *Snapshot) GetChunkServerScatterMap(id string) map[string]int {
	src := s.scatter[id]
	out := make(map[string]int, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// GetCopySetInfos implements Adapter.
func (s *Snapshot) GetCopySetInfos() []types.CopySet {
	out := make([]types.CopySet, len(s.copySets))
	copy(out, s.copySets)
	return out
}

// GetLogicalPool looks up a pool's full policy record.
func (s *Snapshot) GetLogicalPool(poolID string) (types.LogicalPool, bool) {
	p, ok := s.pools[poolID]
	return p, ok
}

// GetCopySet looks up one copyset by pool and ID.
func (s *Snapshot) GetCopySet(poolID, copySetID string) (types.CopySet, bool) {
	for _, c := range s.copySets {
		if c.PoolID == poolID && c.ID == copySetID {
			return c, true
		}
	}
	return types.CopySet{}, false
}

// ChunkServers returns all chunkservers in the snapshot.
func (s *Snapshot) ChunkServers() []types.ChunkServer {
	out := make([]types.ChunkServer, 0, len(s.chunkServers))
	for _, cs := range s.chunkServers {
		out = append(out, cs)
	}
	return out
}

// LogicalPools returns all pools in the snapshot.
func (s *Snapshot) LogicalPools() []types.LogicalPool {
	out := make([]types.LogicalPool, 0, len(s.pools))
	for _, p := range s.pools {
		out = append(out, p)
	}
	return out
}

// ScatterWidth returns the current scatter-width of a chunkserver: the
// number of distinct other chunkservers it shares at least one copyset
// with.
func (s *Snapshot) ScatterWidth(id string) int {
	return len(s.scatter[id])
}
