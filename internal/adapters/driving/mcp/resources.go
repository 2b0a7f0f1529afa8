package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	// uriScheme is the custom URI scheme for casegen resources.
	uriScheme = "casegen://"

	mimeJSON = "application/json"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "stats",
		Name:        "stats",
		Description: "Corpus size, unique sources and index state",
		MIMEType:    mimeJSON,
	}, s.handleStatsResource)

	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "capabilities",
		Name:        "capabilities",
		Description: "Retrieval mode and optional extractors available to this server",
		MIMEType:    mimeJSON,
	}, s.handleCapabilitiesResource)
}

// handleStatsResource returns corpus statistics.
func (s *Server) handleStatsResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Index == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	stats, err := s.ports.Index.Status(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading index status: %w", err)
	}
	return jsonResource(req.Params.URI, statsOutput(stats))
}

// handleCapabilitiesResource returns the resolved capabilities.
func (s *Server) handleCapabilitiesResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	if s.ports.Capabilities == nil {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	caps := s.ports.Capabilities
	info := struct {
		Retrieval string `json:"retrieval"`
		PDF       bool   `json:"pdf"`
		OCR       bool   `json:"ocr"`
		LLM       bool   `json:"llm"`
		LLMModel  string `json:"llm_model,omitempty"`
	}{
		Retrieval: caps.Retrieval.String(),
		PDF:       caps.PDFExtraction,
		OCR:       caps.OCR,
		LLM:       caps.LLM,
		LLMModel:  caps.LLMModel,
	}
	return jsonResource(req.Params.URI, info)
}

func jsonResource(uri string, v any) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling %s: %w", uri, err)
	}
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: mimeJSON,
			Text:     string(data),
		}},
	}, nil
}
