package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"loxharness/internal/harness"
	"loxharness/internal/interpreter"
)

func newEvalCmd(root *rootOptions) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "eval [expression]",
		Short: "Print what the interpreter outputs for an expression",
		Long: `Print the effective output of one expression, exactly as the checks see it.

The expression is wrapped as print (expression); and staged in a temporary
file. The trimmed stdout is printed, or the trimmed stderr when stdout is
empty. With --file a whole program is run instead and a non-zero exit code
is reported as an error.

Example usage:
  loxharness eval '20 + 20'
  loxharness eval 'true ? "hello" : nil'
  loxharness eval --file scripts/closures.lox`,
		Args: func(cmd *cobra.Command, args []string) error {
			if file == "" && len(args) == 0 {
				return fmt.Errorf("an expression or --file is required")
			}
			if file != "" && len(args) > 0 {
				return fmt.Errorf("an expression and --file are mutually exclusive")
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := root.loadConfig(cmd)
			if err != nil {
				return err
			}

			h, err := harness.NewHarness(cfg, cmd.OutOrStdout(), false)
			if err != nil {
				return err
			}

			ctx, cancel := signalContext(cmd.Context())
			defer cancel()

			if file != "" {
				result, err := h.Invoker.Run(ctx, file)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), result.EffectiveOutput())
				switch {
				case result.TimedOut:
					return fmt.Errorf("%s timed out after %v", file, h.Invoker.Timeout())
				case !result.Succeeded():
					return fmt.Errorf("%s exited with code %d", file, result.ExitCode)
				}
				return nil
			}

			output, err := h.Evaluator.Evaluate(ctx, strings.Join(args, " "))
			if err != nil && !errors.Is(err, interpreter.ErrEvaluationTimedOut) {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return err
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Run a whole Lox program instead of an expression")

	return cmd
}
