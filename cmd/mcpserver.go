package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"loxharness/internal/color"
	"loxharness/internal/mcpserver"
)

func newMCPServerCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Serve the harness as MCP tools over stdio",
		Long: `Run an MCP server on stdin/stdout exposing the harness to AI assistants.

Available tools:
  lox_evaluate     - Effective output of print (expression);
  lox_assert       - Exact-match check of one expression, result as JSON
  lox_run_scripts  - Scoreboard of a scripts directory as JSON

Configure it in your assistant's MCP settings with the command
"loxharness mcp-server" and any --interpreter/--timeout flags you need.
Diagnostic logs go to stderr so they never mix with the protocol.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			color.Initialize(true)

			server, err := mcpserver.NewServer(cfg, cmd.Root().Version)
			if err != nil {
				return fmt.Errorf("failed to create MCP server: %w", err)
			}

			if err := server.Serve(); err != nil {
				return fmt.Errorf("MCP server error: %w", err)
			}
			return nil
		},
	}
}
