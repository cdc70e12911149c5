package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/scout/internal/mcp"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for code structure analysis",
	Long: `Start the Model Context Protocol (MCP) server that enables LLM-powered coding
assistants to inspect code structure without reading whole files.

The MCP server:
- Exposes scout_structure, scout_duplicates and scout_changes tools
- Analyzes files on demand with tree-sitter plus git change detection
- Communicates via stdio (standard MCP transport)

Example:
  scout mcp`,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	a, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer a.Close()

	if !quiet {
		fmt.Fprintf(os.Stderr, "Scout MCP Server %s\n\n", Version)
	}

	srv := mcp.NewServer(a, Version)
	if err := srv.Serve(cmd.Context()); err != nil {
		return fmt.Errorf("MCP server error: %w", err)
	}

	return nil
}
