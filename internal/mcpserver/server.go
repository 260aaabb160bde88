// Package mcpserver exposes the harness to AI assistants as MCP tools over
// stdio.
package mcpserver

import (
	"fmt"
	"io"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"loxharness/internal/config"
	"loxharness/internal/harness"
	"loxharness/pkg/logging"
)

const serverName = "loxharness"

// Server wraps an MCP server whose tools drive the interpreter under test.
type Server struct {
	harness   *harness.Harness
	mcpServer *server.MCPServer
}

// NewServer creates the MCP server and registers its tools. Stdout belongs
// to the protocol, so reporters write into the tool results instead.
func NewServer(cfg config.HarnessConfig, version string) (*Server, error) {
	h, err := harness.NewHarness(cfg, io.Discard, false)
	if err != nil {
		return nil, fmt.Errorf("failed to create harness: %w", err)
	}

	s := &Server{
		harness: h,
		mcpServer: server.NewMCPServer(
			serverName,
			version,
			server.WithToolCapabilities(true),
		),
	}
	s.registerTools()
	return s, nil
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(
		mcp.NewTool("lox_evaluate",
			mcp.WithDescription("Evaluate a Lox expression with the interpreter under test and return what it prints"),
			mcp.WithString("expression",
				mcp.Required(),
				mcp.Description("Lox expression, evaluated as print (expression);"),
			),
		),
		s.handleEvaluate,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("lox_assert",
			mcp.WithDescription("Check that a Lox expression prints exactly the expected text"),
			mcp.WithString("expression",
				mcp.Required(),
				mcp.Description("Lox expression to evaluate"),
			),
			mcp.WithString("expected",
				mcp.Required(),
				mcp.Description("Expected output after trimming surrounding whitespace"),
			),
		),
		s.handleAssert,
	)

	s.mcpServer.AddTool(
		mcp.NewTool("lox_run_scripts",
			mcp.WithDescription("Run every script in a directory and return the scoreboard as JSON"),
			mcp.WithString("directory",
				mcp.Description("Scripts directory (defaults to the configured scripts directory)"),
			),
			mcp.WithBoolean("sort",
				mcp.Description("Run scripts in lexicographic order instead of directory order"),
				mcp.DefaultBool(true),
			),
		),
		s.handleRunScripts,
	)
}

// MCPServer returns the underlying server, mainly for tests.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// Serve blocks serving requests on stdin/stdout.
func (s *Server) Serve() error {
	logging.Info("MCPServer", "Serving %s tools over stdio (interpreter %s)", serverName, s.harness.Invoker.Binary())
	return server.ServeStdio(s.mcpServer)
}
