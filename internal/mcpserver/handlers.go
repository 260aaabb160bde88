package mcpserver

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"loxharness/internal/harness"
	"loxharness/internal/interpreter"
)

// handleEvaluate handles the lox_evaluate MCP tool
func (s *Server) handleEvaluate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := request.RequireString("expression")
	if err != nil || strings.TrimSpace(expr) == "" {
		return mcp.NewToolResultError("expression parameter is required"), nil
	}

	output, err := s.harness.Evaluator.Evaluate(ctx, expr)
	if err != nil {
		if errors.Is(err, interpreter.ErrEvaluationTimedOut) {
			return mcp.NewToolResultError(fmt.Sprintf("Evaluation timed out after %v", s.harness.Invoker.Timeout())), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("Evaluation failed: %v", err)), nil
	}

	return mcp.NewToolResultText(output), nil
}

// handleAssert handles the lox_assert MCP tool
func (s *Server) handleAssert(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	expr, err := request.RequireString("expression")
	if err != nil || strings.TrimSpace(expr) == "" {
		return mcp.NewToolResultError("expression parameter is required"), nil
	}
	expected, err := request.RequireString("expected")
	if err != nil {
		return mcp.NewToolResultError("expected parameter is required"), nil
	}

	var buf bytes.Buffer
	suite := harness.NewTestSuite("lox_assert", s.harness.Evaluator, harness.NewJSONReporter(&buf))
	suite.Expect("assert", harness.Expectation{Expression: expr, Expected: expected})

	if _, err := suite.Run(ctx); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Assertion could not run: %v", err)), nil
	}

	return mcp.NewToolResultText(buf.String()), nil
}

// handleRunScripts handles the lox_run_scripts MCP tool
func (s *Server) handleRunScripts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args := request.GetArguments()

	dir := s.harness.Config.Scripts.Dir
	if d, ok := args["directory"].(string); ok && d != "" {
		dir = d
	}

	sortScripts := s.harness.Config.ShouldSortScripts()
	if sorted, ok := args["sort"].(bool); ok {
		sortScripts = sorted
	}

	var buf bytes.Buffer
	runner := harness.NewScriptRunner(s.harness.Invoker, harness.NewJSONReporter(&buf), sortScripts)
	if _, err := runner.Run(ctx, dir); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("Script run failed: %v", err)), nil
	}

	return mcp.NewToolResultText(buf.String()), nil
}
