package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

var indexRebuild bool

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the term index",
	Long: `Builds the term index over the stored corpus and persists it.

An index that is already loaded or persisted for the current corpus is
reused unless --rebuild is given.`,
	Args: cobra.NoArgs,
	RunE: runIndexBuild,
}

var indexStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show corpus and index statistics",
	Args:  cobra.NoArgs,
	RunE:  runIndexStatus,
}

var indexClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Discard the loaded and persisted index",
	Long:  `Discards the index. The next query or index command rebuilds it.`,
	Args:  cobra.NoArgs,
	RunE:  runIndexClear,
}

func init() {
	indexCmd.Flags().BoolVar(&indexRebuild, "rebuild", false, "discard any existing index before building")
	indexCmd.AddCommand(indexStatusCmd)
	indexCmd.AddCommand(indexClearCmd)
	rootCmd.AddCommand(indexCmd)
}

func runIndexBuild(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if indexRebuild {
		if err := indexService.Invalidate(cmd.Context()); err != nil {
			return fmt.Errorf("failed to discard index: %w", err)
		}
	}

	stats, err := indexService.Build(cmd.Context())
	if err != nil {
		return fmt.Errorf("index build failed: %w", err)
	}

	printIndexStats(cmd, stats)
	return nil
}

func runIndexStatus(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	stats, err := indexService.Status(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to read index status: %w", err)
	}

	printIndexStats(cmd, stats)
	return nil
}

func runIndexClear(cmd *cobra.Command, _ []string) error {
	if indexService == nil {
		return errors.New("index service not configured")
	}

	if err := indexService.Invalidate(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear index: %w", err)
	}
	cmd.Println("Index cleared.")
	return nil
}

func printIndexStats(cmd *cobra.Command, stats *domain.IndexStats) {
	cmd.Println("[Corpus]")
	cmd.Printf("  Chunks:  %d\n", stats.TotalChunks)
	cmd.Printf("  Sources: %d\n", stats.UniqueSources)
	cmd.Println()
	cmd.Println("[Index]")
	cmd.Printf("  Backend:   %s\n", stats.Backend)
	cmd.Printf("  Retrieval: %s\n", stats.Retrieval)
	if stats.Built {
		cmd.Printf("  Vocabulary: %d terms\n", stats.VocabularySize)
		if !stats.BuiltAt.IsZero() {
			cmd.Printf("  Built at:  %s\n", stats.BuiltAt.Local().Format("2006-01-02 15:04:05"))
		}
	} else {
		cmd.Println("  Built:     no")
	}
}
