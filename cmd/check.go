package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"loxharness/internal/harness"
)

func newCheckCmd(root *rootOptions) *cobra.Command {
	var (
		run          runOptions
		expectations string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Run the expression checks against the interpreter",
		Long: `Run the expression checks against the interpreter.

Each expression is staged as print (expression); in a temporary file and run
through the interpreter. The trimmed stdout, or the trimmed stderr when
stdout is empty, must equal the expected text exactly.

Without --expectations the built-in checks run:
  20 + 20                  -> 40
  true or false            -> true
  true ? "hello" : nil     -> hello
  false ? "hello" : nil    -> nil

Expectation files are YAML:
  name: expressions
  checks:
    - name: arithmetic
      expectations:
        - expression: "20 + 20"
          expected: "40"

Example usage:
  loxharness check                                # Built-in checks
  loxharness check --expectations checks.yaml     # Checks from a file
  loxharness check --fail-on-failure              # Exit 1 on any failed check
  loxharness check --output json --report out/    # JSON to stdout and a report file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}
			run.apply(cmd, &cfg)
			if cmd.Flags().Changed("expectations") {
				cfg.Suite.Expectations = expectations
			}

			h, err := harness.NewHarness(cfg, cmd.OutOrStdout(), run.verbose)
			if err != nil {
				return err
			}

			suite, err := h.LoadSuite()
			if err != nil {
				return fmt.Errorf("failed to load checks: %w", err)
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			result, err := suite.Run(ctx)
			if err != nil {
				return fmt.Errorf("check run aborted: %w", err)
			}

			return finishRun(cmd, cfg, "check", result, result.AllPassed())
		},
	}

	run.bind(cmd)
	cmd.Flags().StringVarP(&expectations, "expectations", "e", "", "YAML file of expression checks")

	return cmd
}
