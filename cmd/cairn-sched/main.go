package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/cairnfs/cairn/pkg/log"
	"github.com/cairnfs/cairn/pkg/scheduler"
	"github.com/cairnfs/cairn/pkg/storage"
	"github.com/cairnfs/cairn/pkg/topology"
	"github.com/cairnfs/cairn/pkg/types"
)

var (
	// Version information (set via ldflags during build)
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "cairn-sched",
	Short: "Cairn placement feasibility and ranking tool",
	Long: `cairn-sched evaluates candidate copyset migrations against a topology
snapshot: whether a move keeps fault-domain spread and scatter-width
within pool policy, and how competing candidates rank by disruption.

Topologies come from a YAML document (--topology) or from a BoltDB
store previously populated with 'cairn-sched import' (--data-dir).`,
	Version: Version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		jsonLog, _ := cmd.Flags().GetBool("json-log")
		log.Init(log.Config{Level: log.Level(level), JSONOutput: jsonLog})
	},
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"cairn-sched version %s\nCommit: %s\nBuilt: %s\n",
		Version, Commit, BuildTime,
	))

	rootCmd.PersistentFlags().String("topology", "", "Path to a YAML topology document")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory holding an imported topology store")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level (debug|info|warn|error)")
	rootCmd.PersistentFlags().Bool("json-log", false, "Emit JSON logs instead of console output")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(rankCmd)
	rootCmd.AddCommand(distributionCmd)
	rootCmd.AddCommand(importCmd)
}

// loadSnapshot materializes the topology selected by the global flags.
func loadSnapshot(cmd *cobra.Command) (*topology.Snapshot, error) {
	topoPath, _ := cmd.Flags().GetString("topology")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	switch {
	case topoPath != "":
		return topology.LoadFile(topoPath)
	case dataDir != "":
		store, err := storage.NewBoltStore(dataDir)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.Snapshot()
	default:
		return nil, fmt.Errorf("either --topology or --data-dir is required")
	}
}

// resolveCopySet parses a pool-qualified copyset key ("pool/id") and
// looks up the copyset and its pool policy.
func resolveCopySet(snap *topology.Snapshot, key string) (types.CopySet, types.LogicalPool, error) {
	parts := strings.SplitN(key, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return types.CopySet{}, types.LogicalPool{}, fmt.Errorf("copyset must be given as POOL/ID, got %q", key)
	}
	cs, ok := snap.GetCopySet(parts[0], parts[1])
	if !ok {
		return types.CopySet{}, types.LogicalPool{}, fmt.Errorf("copyset %s not found", key)
	}
	pool, ok := snap.GetLogicalPool(parts[0])
	if !ok {
		return types.CopySet{}, types.LogicalPool{}, fmt.Errorf("pool %s not found", parts[0])
	}
	return cs, pool, nil
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate one candidate migration",
	Long: `Evaluate whether moving one replica of a copyset from --source to
--target keeps zone spread and scatter-width within the pool's policy.
Prints the decision and the affected score (aggregate scatter-width
delta; smaller means less disruption).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("copyset")
		source, _ := cmd.Flags().GetString("source")
		target, _ := cmd.Flags().GetString("target")

		snap, err := loadSnapshot(cmd)
		if err != nil {
			return err
		}
		cs, pool, err := resolveCopySet(snap, key)
		if err != nil {
			return err
		}

		decisionID := uuid.New().String()
		logger := log.WithComponent("cli")
		logger.Info().
			Str("decision_id", decisionID).
			Str("copyset", cs.Key()).
			Str("source", source).
			Str("target", target).
			Msg("evaluating candidate migration")

		allowed := scheduler.IsMigrationAllowed(snap, target, source, cs,
			pool.MinScatterWidth, pool.ScatterWidthRange)
		satisfied, affected := scheduler.EvaluateFeasibility(snap, cs, source, target,
			types.UnsetID, pool.MinScatterWidth, pool.ScatterWidthRange)

		fmt.Printf("Copyset:        %s\n", cs.Key())
		fmt.Printf("Migration:      %s -> %s\n", source, target)
		fmt.Printf("Decision:       %s\n", decisionWord(allowed))
		fmt.Printf("Scatter-width:  satisfied=%v affected=%+d\n", satisfied, affected)
		return nil
	},
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank feasible migration targets for a copyset replica",
	Long: `List every online chunkserver that could receive the replica currently
on --source, gate-filtered, ordered by ascending affected score with
randomized tie-breaks.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		key, _ := cmd.Flags().GetString("copyset")
		source, _ := cmd.Flags().GetString("source")

		snap, err := loadSnapshot(cmd)
		if err != nil {
			return err
		}
		cs, pool, err := resolveCopySet(snap, key)
		if err != nil {
			return err
		}
		if !cs.HasPeer(source) {
			return fmt.Errorf("chunkserver %s holds no replica of %s", source, cs.Key())
		}

		var candidates []scheduler.RankedCandidate
		for _, server := range snap.ChunkServers() {
			if server.State != types.ChunkServerOnline || cs.HasPeer(server.ID) {
				continue
			}
			if !scheduler.IsMigrationAllowed(snap, server.ID, source, cs,
				pool.MinScatterWidth, pool.ScatterWidthRange) {
				continue
			}
			_, affected := scheduler.EvaluateFeasibility(snap, cs, source, server.ID,
				types.UnsetID, pool.MinScatterWidth, pool.ScatterWidthRange)
			candidates = append(candidates, scheduler.RankedCandidate{
				ChunkServerID: server.ID,
				Affected:      affected,
			})
		}

		if len(candidates) == 0 {
			fmt.Printf("No feasible target for %s replica on %s\n", cs.Key(), source)
			return nil
		}

		ranker := scheduler.NewRanker()
		ranker.SortCandidatesByAffected(candidates)

		fmt.Printf("Feasible targets for %s (source %s):\n", cs.Key(), source)
		for i, c := range candidates {
			fmt.Printf("  %2d. %-20s affected=%+d\n", i+1, c.ChunkServerID, c.Affected)
		}
		return nil
	},
}

var distributionCmd = &cobra.Command{
	Use:   "distribution",
	Short: "Show per-chunkserver copyset counts, busiest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		snap, err := loadSnapshot(cmd)
		if err != nil {
			return err
		}

		dist := scheduler.CopySetDistributionInOnlineChunkServer(
			snap.GetCopySetInfos(), snap.ChunkServers())
		ranker := scheduler.NewRanker()
		buckets := ranker.SortDistribution(dist)

		fmt.Printf("%-20s %-10s %s\n", "CHUNKSERVER", "COPYSETS", "SCATTER-WIDTH")
		for _, b := range buckets {
			fmt.Printf("%-20s %-10d %d\n", b.ChunkServerID, len(b.CopySets), snap.ScatterWidth(b.ChunkServerID))
		}
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import",
	Short: "Import a YAML topology document into the BoltDB store",
	RunE: func(cmd *cobra.Command, args []string) error {
		topoPath, _ := cmd.Flags().GetString("topology")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		if topoPath == "" || dataDir == "" {
			return fmt.Errorf("import requires both --topology and --data-dir")
		}

		data, err := os.ReadFile(topoPath)
		if err != nil {
			return fmt.Errorf("failed to read topology file: %w", err)
		}
		snap, err := topology.Parse(data)
		if err != nil {
			return err
		}

		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return fmt.Errorf("failed to create data dir: %w", err)
		}
		store, err := storage.NewBoltStore(dataDir)
		if err != nil {
			return err
		}
		defer store.Close()

		imported := 0
		for _, server := range snap.ChunkServers() {
			if err := store.PutChunkServer(&server); err != nil {
				return err
			}
			imported++
		}
		for _, pool := range snap.LogicalPools() {
			if err := store.PutLogicalPool(&pool); err != nil {
				return err
			}
			imported++
		}
		for _, cs := range snap.GetCopySetInfos() {
			if err := store.PutCopySet(&cs); err != nil {
				return err
			}
			imported++
		}

		fmt.Printf("✓ Imported %d topology records into %s\n", imported, dataDir)
		return nil
	},
}

func decisionWord(allowed bool) string {
	if allowed {
		return "ALLOWED"
	}
	return "REJECTED"
}

func init() {
	checkCmd.Flags().String("copyset", "", "Copyset as POOL/ID")
	checkCmd.Flags().String("source", "", "Chunkserver shedding the replica")
	checkCmd.Flags().String("target", "", "Chunkserver receiving the replica")
	checkCmd.MarkFlagRequired("copyset")
	checkCmd.MarkFlagRequired("target")

	rankCmd.Flags().String("copyset", "", "Copyset as POOL/ID")
	rankCmd.Flags().String("source", "", "Chunkserver shedding the replica")
	rankCmd.MarkFlagRequired("copyset")
	rankCmd.MarkFlagRequired("source")
}
