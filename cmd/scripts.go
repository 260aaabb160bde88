package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"loxharness/internal/harness"
)

func newScriptsCmd(root *rootOptions) *cobra.Command {
	var (
		run         runOptions
		sortScripts bool
	)

	cmd := &cobra.Command{
		Use:   "scripts [directory]",
		Short: "Run every script in a directory through the interpreter",
		Long: `Run every file in a directory as a whole Lox program.

A script passes when the interpreter exits with code 0 and fails otherwise.
Output is shown but never compared. Subdirectories are skipped.

When the directory is omitted the configured scripts directory is used
(default ./scripts). Scripts run in lexicographic order unless --sort=false,
which keeps the order the directory listing returns.

Example usage:
  loxharness scripts                         # Run ./scripts
  loxharness scripts tests/lox               # Run another directory
  loxharness scripts --timeout 10s           # Kill scripts that hang
  loxharness scripts --fail-on-failure       # Exit 1 when any script fails`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			run.apply(cmd, &cfg)
			if len(args) == 1 {
				cfg.Scripts.Dir = args[0]
			}
			if cmd.Flags().Changed("sort") {
				cfg.Scripts.Sort = &sortScripts
			}

			h, err := harness.NewHarness(cfg, cmd.OutOrStdout(), run.verbose)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			result, err := h.ScriptRunner().Run(ctx, cfg.Scripts.Dir)
			if err != nil {
				return fmt.Errorf("script run aborted: %w", err)
			}

			return finishRun(cmd, cfg, "scripts", result, result.AllPassed())
		},
	}

	run.bind(cmd)
	cmd.Flags().BoolVar(&sortScripts, "sort", true, "Run scripts in lexicographic order")

	return cmd
}
