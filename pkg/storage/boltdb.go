package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	bolt "go.etcd.io/bbolt"

	"github.com/cairnfs/cairn/pkg/topology"
	"github.com/cairnfs/cairn/pkg/types"
)

var (
	// Bucket names
	bucketChunkServers = []byte("chunkservers")
	bucketLogicalPools = []byte("pools")
	bucketCopySets     = []byte("copysets")
)

// BoltStore implements Store using BoltDB
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore creates a new BoltDB-backed store
func NewBoltStore(dataDir string) (*BoltStore, error) {
	dbPath := filepath.Join(dataDir, "cairn-topology.db")

	db, err := bolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		buckets := [][]byte{
			bucketChunkServers,
			bucketLogicalPools,
			bucketCopySets,
		}
		for _, bucket := range buckets {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return fmt.Errorf("failed to create bucket %s: %w", bucket, err)
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &BoltStore{db: db}, nil
}

// Close closes the database
func (s *BoltStore) Close() error {
	return s.db.Close()
}

func (s *BoltStore) put(bucket []byte, key string, v interface{}) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		data, err := json.Marshal(v)
		if err != nil {
			return err
		}
		return tx.Bucket(bucket).Put([]byte(key), data)
	})
}

func (s *BoltStore) get(bucket []byte, key string, v interface{}) error {
	return s.db.View(func(tx *bolt.Tx) error {
		data := tx.Bucket(bucket).Get([]byte(key))
		if data == nil {
			return fmt.Errorf("%s not found: %s", bucket, key)
		}
		return json.Unmarshal(data, v)
	})
}

func (s *BoltStore) delete(bucket []byte, key string) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(bucket).Delete([]byte(key))
	})
}

// Chunkserver operations

func (s *BoltStore) PutChunkServer(cs *types.ChunkServer) error {
	return s.put(bucketChunkServers, cs.ID, cs)
}

func (s *BoltStore) GetChunkServer(id string) (*types.ChunkServer, error) {
	var cs types.ChunkServer
	if err := s.get(bucketChunkServers, id, &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

func (s *BoltStore) ListChunkServers() ([]*types.ChunkServer, error) {
	var servers []*types.ChunkServer
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketChunkServers).ForEach(func(k, v []byte) error {
			var cs types.ChunkServer
			if err := json.Unmarshal(v, &cs); err != nil {
				return err
			}
			servers = append(servers, &cs)
			return nil
		})
	})
	return servers, err
}

func (s *BoltStore) DeleteChunkServer(id string) error {
	return s.delete(bucketChunkServers, id)
}

// Logical pool operations

func (s *BoltStore) PutLogicalPool(pool *types.LogicalPool) error {
	return s.put(bucketLogicalPools, pool.ID, pool)
}

func (s *BoltStore) GetLogicalPool(id string) (*types.LogicalPool, error) {
	var pool types.LogicalPool
	if err := s.get(bucketLogicalPools, id, &pool); err != nil {
		return nil, err
	}
	return &pool, nil
}

func (s *BoltStore) ListLogicalPools() ([]*types.LogicalPool, error) {
	var pools []*types.LogicalPool
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketLogicalPools).ForEach(func(k, v []byte) error {
			var pool types.LogicalPool
			if err := json.Unmarshal(v, &pool); err != nil {
				return err
			}
			pools = append(pools, &pool)
			return nil
		})
	})
	return pools, err
}

func (s *BoltStore) DeleteLogicalPool(id string) error {
	return s.delete(bucketLogicalPools, id)
}

// Copyset operations

func copySetKey(poolID, copySetID string) string {
	return poolID + "/" + copySetID
}

func (s *BoltStore) PutCopySet(cs *types.CopySet) error {
	return s.put(bucketCopySets, copySetKey(cs.PoolID, cs.ID), cs)
}

func (s *BoltStore) GetCopySet(poolID, copySetID string) (*types.CopySet, error) {
	var cs types.CopySet
	if err := s.get(bucketCopySets, copySetKey(poolID, copySetID), &cs); err != nil {
		return nil, err
	}
	return &cs, nil
}

func (s *BoltStore) ListCopySets() ([]*types.CopySet, error) {
	var copySets []*types.CopySet
	err := s.db.View(func(tx *bolt.Tx) error {
		return tx.Bucket(bucketCopySets).ForEach(func(k, v []byte) error {
			var cs types.CopySet
			if err := json.Unmarshal(v, &cs); err != nil {
				return err
			}
			copySets = append(copySets, &cs)
			return nil
		})
	})
	return copySets, err
}

func (s *BoltStore) DeleteCopySet(poolID, copySetID string) error {
	return s.delete(bucketCopySets, copySetKey(poolID, copySetID))
}

// Snapshot materializes the stored topology as an immutable snapshot.
func (s *BoltStore) Snapshot() (*topology.Snapshot, error) {
	serverPtrs, err := s.ListChunkServers()
	if err != nil {
		return nil, fmt.Errorf("failed to list chunkservers: %w", err)
	}
	poolPtrs, err := s.ListLogicalPools()
	if err != nil {
		return nil, fmt.Errorf("failed to list pools: %w", err)
	}
	copySetPtrs, err := s.ListCopySets()
	if err != nil {
		return nil, fmt.Errorf("failed to list copysets: %w", err)
	}

	servers := make([]types.ChunkServer, 0, len(serverPtrs))
	for _, cs := range serverPtrs {
		servers = append(servers, *cs)
	}
	pools := make([]types.LogicalPool, 0, len(poolPtrs))
	for _, p := range poolPtrs {
		pools = append(pools, *p)
	}
	copySets := make([]types.CopySet, 0, len(copySetPtrs))
	for _, c := range copySetPtrs {
		copySets = append(copySets, *c)
	}

	return topology.NewSnapshot(servers, pools, copySets), nil
}
