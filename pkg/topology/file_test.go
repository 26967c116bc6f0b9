package topology

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTopology = `
pools:
  - id: pool-1
    replicaNum: 3
    standardZoneNum: 3
    minScatterWidth: 2
    scatterWidthRange: 0.2
chunkservers:
  - {id: cs-1, zone: z1, pool: pool-1, address: "10.0.0.1:8200"}
  - {id: cs-2, zone: z2, pool: pool-1}
  - {id: cs-3, zone: z3, pool: pool-1, state: pending-offline}
  - {id: cs-4, zone: z3, pool: pool-1, state: offline}
copysets:
  - {pool: pool-1, id: "1", peers: [cs-1, cs-2, cs-3]}
`

func TestParse(t *testing.T) {
	snap, err := Parse([]byte(sampleTopology))
	require.NoError(t, err)

	pool, ok := snap.GetLogicalPool("pool-1")
	require.True(t, ok)
	assert.Equal(t, 3, pool.StandardZoneNum)
	assert.Equal(t, 2, pool.MinScatterWidth)
	assert.InDelta(t, 0.2, pool.ScatterWidthRange, 1e-9)

	cs1, ok := snap.GetChunkServerInfo("cs-1")
	require.True(t, ok)
	assert.Equal(t, "online", string(cs1.State), "state defaults to online")
	assert.Equal(t, "10.0.0.1:8200", cs1.Address)

	cs4, ok := snap.GetChunkServerInfo("cs-4")
	require.True(t, ok)
	assert.True(t, cs4.IsOffline())

	// Peer zones are resolved through the chunkserver table.
	copySet, ok := snap.GetCopySet("pool-1", "1")
	require.True(t, ok)
	require.Len(t, copySet.Peers, 3)
	assert.Equal(t, "z2", copySet.Peers[1].ZoneID)

	assert.Equal(t, 2, snap.ScatterWidth("cs-1"))
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{
			name: "not yaml",
			doc:  "{{{",
		},
		{
			name: "unknown pool reference",
			doc: `
chunkservers:
  - {id: cs-1, zone: z1}
copysets:
  - {pool: ghost, id: "1", peers: [cs-1]}
`,
		},
		{
			name: "unknown peer reference",
			doc: `
pools:
  - {id: pool-1, standardZoneNum: 3}
copysets:
  - {pool: pool-1, id: "1", peers: [ghost]}
`,
		},
		{
			name: "bad chunkserver state",
			doc: `
chunkservers:
  - {id: cs-1, zone: z1, state: resting}
`,
		},
		{
			name: "duplicate chunkserver",
			doc: `
chunkservers:
  - {id: cs-1, zone: z1}
  - {id: cs-1, zone: z2}
`,
		},
		{
			name: "empty pool id",
			doc: `
pools:
  - {standardZoneNum: 3}
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.doc))
			assert.Error(t, err)
		})
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "topology.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleTopology), 0644))

	snap, err := LoadFile(path)
	require.NoError(t, err)
	assert.Len(t, snap.ChunkServers(), 4)

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
