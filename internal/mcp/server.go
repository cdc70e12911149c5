// Package mcp exposes scout's analyses to LLM coding assistants over the
// Model Context Protocol. Three tools map onto the analyzer's machine
// payloads: scout_structure, scout_duplicates and scout_changes.
package mcp

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/scout/internal/analyzer"
)

// Server manages the MCP server lifecycle. It does not own the analyzer;
// the caller closes it.
type Server struct {
	analyzer *analyzer.Analyzer
	mcp      *server.MCPServer
}

// NewServer creates an MCP server with the scout tools registered.
func NewServer(a *analyzer.Analyzer, version string) *Server {
	mcpServer := server.NewMCPServer(
		"scout-mcp",
		version,
		server.WithToolCapabilities(true),
	)

	AddStructureTool(mcpServer, a)
	AddDuplicatesTool(mcpServer, a)
	AddChangesTool(mcpServer, a)

	return &Server{
		analyzer: a,
		mcp:      mcpServer,
	}
}

// Serve starts the MCP server on stdio and blocks until shutdown.
func (s *Server) Serve(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Starting MCP server on stdio...")
		if err := server.ServeStdio(s.mcp); err != nil {
			errCh <- fmt.Errorf("MCP server error: %w", err)
		}
	}()

	select {
	case <-sigCh:
		log.Printf("Received shutdown signal, stopping gracefully...")
		cancel()
		return nil
	case err := <-errCh:
		cancel()
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}
