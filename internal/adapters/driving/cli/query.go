package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
)

// Output formats accepted by --format.
const (
	formatJSON = "json"
	formatYAML = "yaml"
)

var (
	queryTopK   int
	queryDebug  bool
	queryFormat string
)

var queryCmd = &cobra.Command{
	Use:   "query <text>",
	Short: "Generate use-cases for a query",
	Long: `Retrieves evidence for the query from the indexed corpus and generates
structured use-cases grounded in it.

The result is always a single JSON (or YAML) document. Its "status" field
is one of:
  success                use-cases were generated
  extracted              a course name was found in the evidence
  clarify                evidence is weak; clarification is requested
  insufficient_evidence  nothing relevant was found
  error                  the LLM delegate failed; see "message"

Use --debug to list every retrieved chunk with its score.`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func init() {
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of evidence chunks (0 = configured default)")
	queryCmd.Flags().BoolVar(&queryDebug, "debug", false, "include retrieved chunks and scores")
	queryCmd.Flags().StringVarP(&queryFormat, "format", "f", formatJSON, "output format: json or yaml")
	rootCmd.AddCommand(queryCmd)
}

func runQuery(cmd *cobra.Command, args []string) error {
	if queryService == nil {
		return errors.New("query service not configured")
	}
	if queryFormat != formatJSON && queryFormat != formatYAML {
		return fmt.Errorf("unknown format %q: want json or yaml", queryFormat)
	}
	if queryTopK < 0 {
		return errors.New("--top-k must not be negative")
	}

	result, err := queryService.Query(cmd.Context(), args[0], driving.QueryOptions{
		TopK:  queryTopK,
		Debug: queryDebug,
	})
	if err != nil {
		return fmt.Errorf("query failed: %w", err)
	}

	if queryDebug {
		printRetrieved(cmd, result.Retrieved)
	}

	return outputResult(cmd, result, queryFormat)
}

// printRetrieved lists retrieved chunks on stderr so stdout stays a single document.
func printRetrieved(cmd *cobra.Command, items []domain.EvidenceItem) {
	for i := range items {
		cmd.PrintErrf("[RETRIEVED] score=%.4f source=%s\n", items[i].Score, items[i].Chunk.Source)
	}
}

func outputResult(cmd *cobra.Command, result *domain.GenerationResult, format string) error {
	if format == formatYAML {
		data, err := yaml.Marshal(result)
		if err != nil {
			return fmt.Errorf("failed to marshal result: %w", err)
		}
		_, err = fmt.Fprint(cmd.OutOrStdout(), string(data))
		return err
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}
