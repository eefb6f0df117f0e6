package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/cqroot/openstack-swift-exporter/internal/config"
	"github.com/cqroot/openstack-swift-exporter/internal/logging"
	"github.com/cqroot/openstack-swift-exporter/internal/services"
	"github.com/cqroot/openstack-swift-exporter/internal/utils"
	"github.com/spf13/cobra"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
)

var cfgFile string

// loggedError wraps a failure that has already been written to the log
type loggedError struct {
	err error
}

func (e *loggedError) Error() string { return e.err.Error() }

func (e *loggedError) Unwrap() error { return e.err }

var rootCmd = &cobra.Command{
	Use:   "update_swift_info",
	Short: "Summarize swift ring builders into the swift exporter's host list",
	Long: `Reads account.builder, container.builder and object.builder, keeps the
hosts that have at least one weighted device and writes them, with their
port (and device names for the object ring), to a JSON file for the swift
exporter.`,
	Version:       fmt.Sprintf("%s (%s)", Version, GitCommit),
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          run,
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVar(&cfgFile, "config", "", "path to a YAML configuration file")
	flags.String("swift-dir", utils.DefaultSwiftDir, "directory holding the ring builder files")
	flags.String("format", "auto", "builder file encoding: auto, pickle or json")
	flags.String("output", utils.DefaultOutputPath, "summary file to write")
	flags.Bool("atomic", false, "replace the summary file atomically")
	flags.Bool("strict-ports", false, "fail when a host appears with different ports in one ring")
	flags.String("metrics-textfile", "", "write run metrics for node_exporter's textfile collector")
	flags.String("log-level", "info", "log level: debug, info, warn, error")
	flags.String("log-format", "console", "log format: console or json")
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logging.SetGlobal(logger)
	logger.Debug("update_swift_info starting", "version", Version, "commit", GitCommit)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := services.NewSummaryService(logger, *cfg).Run(ctx); err != nil {
		logger.Error("Summary run failed", "code", services.ErrorCode(err), "error", err)
		return &loggedError{err: err}
	}
	return nil
}

// reportError prints err to w unless the logger already reported it
func reportError(w io.Writer, err error) {
	var logged *loggedError
	if errors.As(err, &logged) {
		return
	}
	fmt.Fprintf(w, "update_swift_info: %v\n", err)
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		reportError(os.Stderr, err)
		os.Exit(1)
	}
}
