package cli

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/casegen/internal/core/domain"
)

var ingestWatch bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Ingest documents into the corpus",
	Long: `Extracts text from every supported file under path (default: the current
directory), sanitises it, chunks it and replaces the stored corpus.

Supported formats: .txt .md .yaml .yml .docx, plus .pdf when pdftotext is
installed and .png .jpg .jpeg when tesseract is installed.

Use --watch to re-ingest and rebuild the index whenever files change.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVarP(&ingestWatch, "watch", "w", false, "re-ingest on file changes until interrupted")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if ingestService == nil {
		return errors.New("ingest service not configured")
	}

	path := "."
	if len(args) == 1 {
		path = args[0]
	}

	if ingestWatch {
		return runIngestWatch(cmd, path)
	}

	report, err := ingestService.Ingest(cmd.Context(), path)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	printIngestReport(cmd, report)
	return nil
}

func runIngestWatch(cmd *cobra.Command, path string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	report, err := ingestService.Ingest(ctx, path)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}
	printIngestReport(cmd, report)

	cmd.Printf("Watching %s for changes (Ctrl+C to stop)...\n", report.Root)
	return ingestService.Watch(ctx, path, func(r *domain.IngestReport, err error) {
		if err != nil {
			cmd.PrintErrf("Re-ingest failed: %v\n", err)
			return
		}
		printIngestReport(cmd, r)
	})
}

func printIngestReport(cmd *cobra.Command, r *domain.IngestReport) {
	cmd.Printf("Ingested %s\n", r.Root)
	cmd.Printf("  Files:   %d seen, %d skipped\n", r.FilesSeen, r.FilesSkipped)
	if r.LinesDropped > 0 {
		cmd.Printf("  Dropped: %d suspicious lines\n", r.LinesDropped)
	}
	cmd.Printf("  Chunks:  %d stored (%d before filtering)\n", r.ChunksStored, r.ChunksEmitted)
	cmd.Printf("  Took:    %s\n", r.Duration.Round(time.Millisecond))
	if r.ChunksStored == 0 {
		cmd.Println("No chunks were stored; queries will ask for clarification.")
	}
}
