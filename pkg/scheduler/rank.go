package scheduler

import (
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/cairnfs/cairn/pkg/topology"
	"github.com/cairnfs/cairn/pkg/types"
)

// DistributionBucket pairs a chunkserver with the copysets it hosts,
// used when picking which node sheds load.
type DistributionBucket struct {
	ChunkServerID string
	CopySets      []types.CopySet
}

// RankedCandidate pairs a chunkserver with the affected score its
// candidate migration was scored with by EvaluateFeasibility.
type RankedCandidate struct {
	ChunkServerID string
	Affected      int
}

// CopySetDistributionInOnlineChunkServer maps each online chunkserver
// to the copysets it currently hosts. Offline chunkservers are dropped
// entirely, even when they still appear as copyset peers: a dead node
// is never a stable migration source. Online chunkservers hosting
// nothing map to an empty list and stay eligible as targets.
func CopySetDistributionInOnlineChunkServer(copySets []types.CopySet, chunkServers []types.ChunkServer) map[string][]types.CopySet {
	out := make(map[string][]types.CopySet, len(chunkServers))
	for _, c := range copySets {
		for _, peer := range c.Peers {
			out[peer.ChunkServerID] = append(out[peer.ChunkServerID], c)
		}
	}
	for _, cs := range chunkServers {
		if cs.IsOffline() {
			delete(out, cs.ID)
			continue
		}
		if _, ok := out[cs.ID]; !ok {
			out[cs.ID] = []types.CopySet{}
		}
	}
	return out
}

// Ranker holds the pseudo-random source behind the randomize-then-sort
// ordering utilities. Scoring keys tie constantly (equal load, equal
// impact); sorting an identifier-ordered sequence directly would favor
// the same chunkservers every scheduling cycle. Shuffling before a
// stable sort keeps the primary key order while distributing ties
// uniformly.
//
// The generator is for fairness, not security. One Ranker may be
// shared across scheduling goroutines; the source is mutex-guarded.
type Ranker struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRanker returns a Ranker with a time-seeded source.
func NewRanker() *Ranker {
	return NewSeededRanker(time.Now().UnixNano())
}

// NewSeededRanker returns a Ranker with a fixed seed, for reproducible
// orderings in tests and simulations.
func NewSeededRanker(seed int64) *Ranker {
	return &Ranker{rng: rand.New(rand.NewSource(seed))}
}

func (r *Ranker) shuffle(n int, swap func(i, j int)) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rng.Shuffle(n, swap)
}

// SortDistribution orders a distribution map by descending hosted
// copyset count, randomizing the copysets within each bucket and the
// order of equally-loaded buckets. Used to pick the busiest
// chunkserver(s) first when selecting a load-shedding source.
func (r *Ranker) SortDistribution(distribution map[string][]types.CopySet) []DistributionBucket {
	buckets := make([]DistributionBucket, 0, len(distribution))
	for id, hosted := range distribution {
		shuffled := make([]types.CopySet, len(hosted))
		copy(shuffled, hosted)
		r.shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		buckets = append(buckets, DistributionBucket{ChunkServerID: id, CopySets: shuffled})
	}

	r.shuffle(len(buckets), func(i, j int) {
		buckets[i], buckets[j] = buckets[j], buckets[i]
	})
	sort.SliceStable(buckets, func(i, j int) bool {
		return len(buckets[i].CopySets) > len(buckets[j].CopySets)
	})
	return buckets
}

// SortChunkServersByCopySetCountAsc orders chunkservers by ascending
// hosted copyset count, computed from the adapter's live copyset list,
// with randomized tie-breaks. Used to prefer the least-loaded
// chunkservers as migration targets.
func (r *Ranker) SortChunkServersByCopySetCountAsc(chunkServers []types.ChunkServer, topo topology.Adapter) []types.ChunkServer {
	counts := make(counterSet)
	for _, c := range topo.GetCopySetInfos() {
		for _, peer := range c.Peers {
			counts.increment(peer.ChunkServerID)
		}
	}

	out := make([]types.ChunkServer, len(chunkServers))
	copy(out, chunkServers)
	r.shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	sort.SliceStable(out, func(i, j int) bool {
		return counts[out[i].ID] < counts[out[j].ID]
	})
	return out
}

// SortCandidatesByAffected orders candidates in place by ascending
// affected score with randomized tie-breaks. Used to prefer the
// migration whose aggregate scatter-width disruption is smallest.
func (r *Ranker) SortCandidatesByAffected(candidates []RankedCandidate) {
	r.shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Affected < candidates[j].Affected
	})
}
