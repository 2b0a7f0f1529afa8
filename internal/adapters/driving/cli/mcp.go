package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/casegen/internal/adapters/driving/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "MCP server commands",
	Long:  `Commands for the Model Context Protocol (MCP) server integration.`,
}

var mcpServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the MCP server",
	Long: `Start the Model Context Protocol server so AI assistants can query
the corpus, inspect evidence, and trigger ingestion.

Tools: query, retrieve, ingest, build_index
Resources: casegen://stats, casegen://capabilities

By default the server speaks JSON-RPC over stdio. Use --port to serve
streamable HTTP instead, for example with MCP Inspector.

Examples:
  casegen mcp serve
  casegen mcp serve --port 8080

Desktop client configuration:
  {
    "mcpServers": {
      "casegen": {
        "command": "/path/to/casegen",
        "args": ["mcp", "serve"]
      }
    }
  }`,
	RunE: runMCPServe,
}

func init() {
	mcpServeCmd.Flags().IntP("port", "p", 0, "HTTP port (0 = use stdio)")
	mcpCmd.AddCommand(mcpServeCmd)
	rootCmd.AddCommand(mcpCmd)
}

func runMCPServe(cmd *cobra.Command, _ []string) error {
	port, err := cmd.Flags().GetInt("port")
	if err != nil {
		return fmt.Errorf("getting port flag: %w", err)
	}
	if queryService == nil {
		return errors.New("query service not configured")
	}

	server, err := mcp.NewServer(&mcp.Ports{
		Query:        queryService,
		Retrieval:    retrievalService,
		Ingest:       ingestService,
		Index:        indexService,
		Capabilities: capabilities,
	})
	if err != nil {
		return err
	}

	if port > 0 {
		addr := fmt.Sprintf(":%d", port)
		cmd.PrintErrf("MCP server listening on http://localhost%s\n", addr)
		return server.RunHTTP(cmd.Context(), addr)
	}

	return server.Run(cmd.Context())
}
