package topology

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/cairnfs/cairn/pkg/types"
)

// Document is the YAML representation of a topology snapshot, used by
// the CLI and test fixtures.
type Document struct {
	Pools        []PoolDoc        `yaml:"pools"`
	ChunkServers []ChunkServerDoc `yaml:"chunkservers"`
	CopySets     []CopySetDoc     `yaml:"copysets"`
}

// PoolDoc describes a logical pool and its placement policy.
type PoolDoc struct {
	ID                string  `yaml:"id"`
	ReplicaNum        int     `yaml:"replicaNum"`
	StandardZoneNum   int     `yaml:"standardZoneNum"`
	MinScatterWidth   int     `yaml:"minScatterWidth"`
	ScatterWidthRange float64 `yaml:"scatterWidthRange"`
}

// ChunkServerDoc describes a chunkserver. State defaults to online.
type ChunkServerDoc struct {
	ID      string `yaml:"id"`
	Zone    string `yaml:"zone"`
	Pool    string `yaml:"pool"`
	Address string `yaml:"address"`
	State   string `yaml:"state"`
}

// CopySetDoc describes a copyset by the chunkservers holding its
// replicas; peer zones are resolved through the chunkserver table.
type CopySetDoc struct {
	Pool  string   `yaml:"pool"`
	ID    string   `yaml:"id"`
	Peers []string `yaml:"peers"`
}

// LoadFile reads a YAML topology document and materializes it as a
// Snapshot.
func LoadFile(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topology file: %w", err)
	}
	return Parse(data)
}

// Parse builds a Snapshot from YAML topology data.
func Parse(data []byte) (*Snapshot, error) {
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse topology document: %w", err)
	}
	return doc.Snapshot()
}

// Snapshot validates the document and materializes it.
func (d *Document) Snapshot() (*Snapshot, error) {
	pools := make([]types.LogicalPool, 0, len(d.Pools))
	poolIDs := make(map[string]bool, len(d.Pools))
	for _, p := range d.Pools {
		if p.ID == "" {
			return nil, fmt.Errorf("pool with empty id")
		}
		pools = append(pools, types.LogicalPool{
			ID:                p.ID,
			ReplicaNum:        p.ReplicaNum,
			StandardZoneNum:   p.StandardZoneNum,
			MinScatterWidth:   p.MinScatterWidth,
			ScatterWidthRange: p.ScatterWidthRange,
		})
		poolIDs[p.ID] = true
	}

	servers := make([]types.ChunkServer, 0, len(d.ChunkServers))
	serverZones := make(map[string]string, len(d.ChunkServers))
	for _, cs := range d.ChunkServers {
		if cs.ID == "" {
			return nil, fmt.Errorf("chunkserver with empty id")
		}
		if _, dup := serverZones[cs.ID]; dup {
			return nil, fmt.Errorf("duplicate chunkserver %q", cs.ID)
		}
		state := types.ChunkServerState(cs.State)
		switch state {
		case "":
			state = types.ChunkServerOnline
		case types.ChunkServerOnline, types.ChunkServerPendingOffline, types.ChunkServerOffline:
		default:
			return nil, fmt.Errorf("chunkserver %q has unknown state %q", cs.ID, cs.State)
		}
		servers = append(servers, types.ChunkServer{
			ID:      cs.ID,
			ZoneID:  cs.Zone,
			PoolID:  cs.Pool,
			Address: cs.Address,
			State:   state,
		})
		serverZones[cs.ID] = cs.Zone
	}

	copySets := make([]types.CopySet, 0, len(d.CopySets))
	for _, c := range d.CopySets {
		if !poolIDs[c.Pool] {
			return nil, fmt.Errorf("copyset %s/%s references unknown pool", c.Pool, c.ID)
		}
		peers := make([]types.Peer, 0, len(c.Peers))
		for _, id := range c.Peers {
			zone, ok := serverZones[id]
			if !ok {
				return nil, fmt.Errorf("copyset %s/%s references unknown chunkserver %q", c.Pool, c.ID, id)
			}
			peers = append(peers, types.Peer{ChunkServerID: id, ZoneID: zone})
		}
		copySets = append(copySets, types.CopySet{PoolID: c.Pool, ID: c.ID, Peers: peers})
	}

	return NewSnapshot(servers, pools, copySets), nil
}
