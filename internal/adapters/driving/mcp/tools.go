package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/casegen/internal/core/domain"
	"github.com/custodia-labs/casegen/internal/core/ports/driving"
)

// IngestInput is the input schema for the ingest tool.
type IngestInput struct {
	Path string `json:"path" jsonschema:"file or directory to ingest; replaces the current corpus"`
}

// IngestOutput is the output schema for the ingest tool.
type IngestOutput struct {
	Root          string `json:"root"`
	FilesSeen     int    `json:"files_seen"`
	FilesSkipped  int    `json:"files_skipped"`
	LinesDropped  int    `json:"lines_dropped"`
	ChunksStored  int    `json:"chunks_stored"`
	DurationMilli int64  `json:"duration_ms"`
}

// BuildIndexInput is the input schema for the build_index tool.
type BuildIndexInput struct{}

// StatsOutput reports corpus and index state.
type StatsOutput struct {
	TotalChunks    int    `json:"total_chunks"`
	UniqueSources  int    `json:"unique_sources"`
	Backend        string `json:"backend"`
	Retrieval      string `json:"retrieval"`
	Built          bool   `json:"built"`
	VocabularySize int    `json:"vocabulary_size"`
}

// QueryInput is the input schema for the query tool.
type QueryInput struct {
	Query string `json:"query" jsonschema:"the feature or behaviour to generate use-cases for"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"number of evidence chunks to ground on (default from settings)"`
	Debug bool   `json:"debug,omitempty" jsonschema:"include the ranked evidence in the result"`
}

// RetrieveInput is the input schema for the retrieve tool.
type RetrieveInput struct {
	Query string `json:"query" jsonschema:"the text to rank corpus chunks against"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"maximum number of chunks to return (default from settings)"`
}

// retrieveOutput is the JSON body of the retrieve tool.
type retrieveOutput struct {
	Evidence []domain.EvidenceItem `json:"evidence"`
	Count    int                   `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "query",
		Description: "Generate test use-cases grounded in the ingested documents",
	}, s.handleQuery)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "retrieve",
		Description: "Rank ingested document chunks against a query",
	}, s.handleRetrieve)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "ingest",
		Description: "Replace the corpus with the documents under a path",
	}, s.handleIngest)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "build_index",
		Description: "Rebuild the term index over the current corpus",
	}, s.handleBuildIndex)
}

// handleQuery handles the query tool invocation. The result is returned
// as JSON text because its shape depends on the status.
func (s *Server) handleQuery(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryInput,
) (*mcp.CallToolResult, any, error) {
	result, err := s.ports.Query.Query(ctx, input.Query, driving.QueryOptions{
		TopK:  input.TopK,
		Debug: input.Debug,
	})
	if err != nil {
		return nil, nil, err
	}
	return jsonToolResult(result, result.Status == domain.StatusError)
}

// handleRetrieve handles the retrieve tool invocation.
func (s *Server) handleRetrieve(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input RetrieveInput,
) (*mcp.CallToolResult, any, error) {
	if s.ports.Retrieval == nil {
		return nil, nil, fmt.Errorf("retrieve: %w", ErrServiceUnavailable)
	}

	items, err := s.ports.Retrieval.Retrieve(ctx, input.Query, input.TopK)
	if err != nil {
		return nil, nil, err
	}
	if items == nil {
		items = []domain.EvidenceItem{}
	}
	return jsonToolResult(retrieveOutput{Evidence: items, Count: len(items)}, false)
}

func jsonToolResult(v any, isError bool) (*mcp.CallToolResult, any, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, nil, fmt.Errorf("marshalling result: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(data)}},
		IsError: isError,
	}, nil, nil
}

// handleIngest handles the ingest tool invocation.
func (s *Server) handleIngest(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IngestInput,
) (*mcp.CallToolResult, IngestOutput, error) {
	if s.ports.Ingest == nil {
		return nil, IngestOutput{}, fmt.Errorf("ingest: %w", ErrServiceUnavailable)
	}

	report, err := s.ports.Ingest.Ingest(ctx, input.Path)
	if err != nil {
		return nil, IngestOutput{}, err
	}
	return nil, IngestOutput{
		Root:          report.Root,
		FilesSeen:     report.FilesSeen,
		FilesSkipped:  report.FilesSkipped,
		LinesDropped:  report.LinesDropped,
		ChunksStored:  report.ChunksStored,
		DurationMilli: report.Duration.Milliseconds(),
	}, nil
}

// handleBuildIndex handles the build_index tool invocation.
func (s *Server) handleBuildIndex(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ BuildIndexInput,
) (*mcp.CallToolResult, StatsOutput, error) {
	if s.ports.Index == nil {
		return nil, StatsOutput{}, fmt.Errorf("build_index: %w", ErrServiceUnavailable)
	}

	stats, err := s.ports.Index.Build(ctx)
	if err != nil {
		return nil, StatsOutput{}, err
	}
	return nil, statsOutput(stats), nil
}

func statsOutput(stats *domain.IndexStats) StatsOutput {
	return StatsOutput{
		TotalChunks:    stats.TotalChunks,
		UniqueSources:  stats.UniqueSources,
		Backend:        stats.Backend.String(),
		Retrieval:      stats.Retrieval.String(),
		Built:          stats.Built,
		VocabularySize: stats.VocabularySize,
	}
}
