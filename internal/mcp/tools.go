package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/scout/internal/analyzer"
)

// toolHandler is the mcp-go handler signature.
type toolHandler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)

// AddStructureTool registers the scout_structure tool with an MCP server.
func AddStructureTool(s *server.MCPServer, a *analyzer.Analyzer) {
	tool := mcp.NewTool(
		"scout_structure",
		mcp.WithDescription("Extract the structure of a source file: classes with their methods, standalone functions, duplicate definitions, and per-line correlation with uncommitted git changes. Supports Python and C."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the source file to analyze")),
	)

	s.AddTool(tool, createStructureHandler(a))
}

// AddDuplicatesTool registers the scout_duplicates tool with an MCP server.
func AddDuplicatesTool(s *server.MCPServer, a *analyzer.Analyzer) {
	tool := mcp.NewTool(
		"scout_duplicates",
		mcp.WithDescription("List duplicate function and method definitions in a source file with the location of every occurrence. In Python a later definition silently shadows the earlier one, so duplicates are usually bugs."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the source file to analyze")),
	)

	s.AddTool(tool, createDuplicatesHandler(a))
}

// AddChangesTool registers the scout_changes tool with an MCP server.
func AddChangesTool(s *server.MCPServer, a *analyzer.Analyzer) {
	tool := mcp.NewTool(
		"scout_changes",
		mcp.WithDescription("Report uncommitted git changes for a source file as per-line tags (added, modified, deleted above) plus a whole-file summary and the tracking state."),
		mcp.WithString("file",
			mcp.Required(),
			mcp.Description("Path to the source file to inspect")),
	)

	s.AddTool(tool, createChangesHandler(a))
}

// createStructureHandler creates the handler function for scout_structure.
func createStructureHandler(a *analyzer.Analyzer) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, errResult := analyzeRequest(ctx, a, request)
		if errResult != nil {
			return errResult, nil
		}
		return toolJSON(res.StructurePayload())
	}
}

// createDuplicatesHandler creates the handler function for scout_duplicates.
func createDuplicatesHandler(a *analyzer.Analyzer) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, errResult := analyzeRequest(ctx, a, request)
		if errResult != nil {
			return errResult, nil
		}
		return toolJSON(res.DuplicatesPayload())
	}
}

// createChangesHandler creates the handler function for scout_changes.
func createChangesHandler(a *analyzer.Analyzer) toolHandler {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, errResult := analyzeRequest(ctx, a, request)
		if errResult != nil {
			return errResult, nil
		}
		return toolJSON(res.ChangesPayload())
	}
}

// analyzeRequest extracts the file argument and runs the analysis. Bad
// arguments and failed analyses (missing file, syntax error) are tool-result
// errors, not protocol failures.
func analyzeRequest(ctx context.Context, a *analyzer.Analyzer, request mcp.CallToolRequest) (*analyzer.Result, *mcp.CallToolResult) {
	argsMap, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, mcp.NewToolResultError("invalid arguments format")
	}

	file, err := parseStringArg(argsMap, "file", true)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}

	res, err := a.Analyze(ctx, file)
	if err != nil {
		return nil, mcp.NewToolResultError(err.Error())
	}

	return res, nil
}

// toolJSON marshals a payload as a text result (mcp-go convention).
func toolJSON(payload any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}
