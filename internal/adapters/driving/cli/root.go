// Package cli implements the casegen command line.
//
// Commands are registered on a package-level root command in each file's
// init function. Services are injected once by main through SetServices.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
	"github.com/custodia-labs/casegen/internal/logger"
)

var version = "dev"

var (
	ingestService    driving.IngestService
	indexService     driving.IndexService
	queryService     driving.QueryService
	retrievalService driving.RetrievalService
	settingsService  driving.SettingsService
	capabilities     *domain.Capabilities
)

var (
	verboseFlag bool
	logFileFlag string
)

var rootCmd = &cobra.Command{
	Use:   "casegen",
	Short: "Generate grounded use-cases from local documents",
	Long: `casegen ingests local documents, indexes them, and generates structured
use-cases for a query. Every use-case is grounded in retrieved evidence;
when the evidence is too weak casegen asks for clarification instead.

Get started:
  casegen ingest ./docs
  casegen index
  casegen query "user signup"`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		logger.SetVerbose(verboseFlag)
		if logFileFlag != "" {
			return logger.SetFile(logFileFlag)
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "print pipeline debug output to stderr")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "mirror log output to a rotating file")
}

// Services holds the application services used by commands.
type Services struct {
	Ingest       driving.IngestService
	Index        driving.IndexService
	Query        driving.QueryService
	Retrieval    driving.RetrievalService
	Settings     driving.SettingsService
	Capabilities *domain.Capabilities
}

// SetServices injects the application services.
func SetServices(s Services) {
	ingestService = s.Ingest
	indexService = s.Index
	queryService = s.Query
	retrievalService = s.Retrieval
	settingsService = s.Settings
	capabilities = s.Capabilities
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}
