package cmd

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"loxharness/internal/color"
)

// rootOptions holds the persistent flags shared by every subcommand
type rootOptions struct {
	configFile  string
	interpreter string
	timeout     time.Duration
	logLevel    string
	noColor     bool
}

// rootCmd represents the base command when called without any subcommands
var rootCmd *cobra.Command

func init() {
	rootCmd = newRootCmd()
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "loxharness",
		Short: "Conformance harness for the loxpp Lox interpreter",
		Long: `loxharness drives an external Lox interpreter as a black box.

It evaluates expressions by running print (expr); through the interpreter and
comparing what it prints, and it runs whole scripts from a directory,
classifying each one by the interpreter's exit code.`,
		// SilenceUsage is set to true to prevent printing usage message on errors
		// handled by us (e.g. failed checks, missing interpreter)
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			color.Initialize(opts.noColor)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "Configuration file (default layers ~/.config/loxharness and .loxharness)")
	cmd.PersistentFlags().StringVar(&opts.interpreter, "interpreter", "", "Path to the Lox interpreter (default ./bin/loxpp)")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 0, "Kill the interpreter after this long per run (0 waits forever)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Diagnostic log level (debug, info, warn, error)")
	cmd.PersistentFlags().BoolVar(&opts.noColor, "no-color", false, "Disable coloured output")

	cmd.AddCommand(newCheckCmd(opts))
	cmd.AddCommand(newScriptsCmd(opts))
	cmd.AddCommand(newEvalCmd(opts))
	cmd.AddCommand(newMCPServerCmd(opts))
	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newSelfUpdateCmd())

	return cmd
}

// SetVersion sets the version for the root command
func SetVersion(v string) {
	rootCmd.Version = v // Set cobra's version field as well
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	// Set up version template
	rootCmd.SetVersionTemplate(`{{printf "loxharness version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		// Cobra prints the error, we just exit non-zero
		os.Exit(1)
	}
}
