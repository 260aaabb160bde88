package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"loxharness/internal/config"
	"loxharness/internal/harness"
	"loxharness/pkg/logging"
)

// loadConfig layers the configuration files and then the persistent flags
// the user actually set. Logging is initialized from the result.
func (o *rootOptions) loadConfig(cmd *cobra.Command) (config.HarnessConfig, error) {
	cfg, err := config.LoadConfig(o.configFile)
	if err != nil {
		return config.HarnessConfig{}, err
	}

	flags := cmd.Flags()
	if flags.Changed("interpreter") {
		cfg.Interpreter.Path = o.interpreter
	}
	if flags.Changed("timeout") {
		cfg.Interpreter.Timeout = o.timeout
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = o.logLevel
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return config.HarnessConfig{}, err
	}
	logging.InitForCLI(level, cmd.ErrOrStderr())
	logging.Debug("CLI", "Using interpreter %s (timeout %v)", cfg.Interpreter.Path, cfg.Interpreter.Timeout)

	return cfg, nil
}

// runOptions holds the flags shared by check and scripts
type runOptions struct {
	output        string
	reportDir     string
	failOnFailure bool
	verbose       bool
}

func (o *runOptions) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&o.output, "output", "o", "", "Output format (text, quiet, json, table)")
	cmd.Flags().StringVar(&o.reportDir, "report", "", "Directory to save a detailed JSON report")
	cmd.Flags().BoolVar(&o.failOnFailure, "fail-on-failure", false, "Exit non-zero when anything fails")
	cmd.Flags().BoolVarP(&o.verbose, "verbose", "v", false, "Show expressions, exit codes and durations")

	_ = cmd.RegisterFlagCompletionFunc("output", completeOutputFlag)
}

// apply overrides cfg with the run flags the user set
func (o *runOptions) apply(cmd *cobra.Command, cfg *config.HarnessConfig) {
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Report.Format = config.ReportFormat(o.output)
	}
	if flags.Changed("report") {
		cfg.Report.Dir = o.reportDir
	}
	if flags.Changed("fail-on-failure") {
		failOnFailure := o.failOnFailure
		cfg.FailOnAnyFailure = &failOnFailure
	}
}

// completeOutputFlag provides shell completion for the output flag
func completeOutputFlag(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return []string{"text", "quiet", "json", "table"}, cobra.ShellCompDirectiveDefault
}

// finishRun saves the detailed report when asked to and turns failures into
// ErrRunFailed when the configuration requires it.
func finishRun(cmd *cobra.Command, cfg config.HarnessConfig, kind string, result interface{}, allPassed bool) error {
	if cfg.Report.Dir != "" {
		path, err := harness.SaveDetailedReport(cfg.Report.Dir, kind, result)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "📄 Detailed report saved to: %s\n", path)
	}

	if !allPassed && cfg.ShouldFailOnAnyFailure() {
		return harness.ErrRunFailed
	}
	return nil
}

// signalContext returns a context cancelled on SIGINT or SIGTERM
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(parent)

	// Handle interrupts gracefully
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			logging.Warn("CLI", "Received interrupt signal, stopping")
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sigChan)
		cancel()
	}
}
