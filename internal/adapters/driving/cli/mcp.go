package cli

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	mcpserver "github.com/custodia-labs/mushaf/internal/adapters/driving/mcp"
)

var mcpHTTPAddr string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the corpus to AI assistants over MCP",
	Long: `Starts a Model Context Protocol server exposing page, verse, word and
similarity lookups as tools. The server speaks stdio by default; use --http
to serve the streamable HTTP transport instead.`,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&mcpHTTPAddr, "http", "", "serve over HTTP on this address (e.g. :8080)")
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, _ []string) error {
	if err := requireCorpus(cmd); err != nil {
		return err
	}
	server, err := mcpserver.NewServer(&mcpserver.Ports{
		Query:  queryService,
		Corpus: corpusService,
	}, mcpserver.WithVersion(version))
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stopWatch := watchInBackground(ctx)
	defer stopWatch()

	if mcpHTTPAddr != "" {
		return server.RunHTTP(ctx, mcpHTTPAddr)
	}
	return server.Run(ctx)
}
