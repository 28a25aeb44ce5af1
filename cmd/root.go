package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/excel-azmin/roomcal/internal/config"
	"github.com/excel-azmin/roomcal/internal/ews"
	"github.com/excel-azmin/roomcal/internal/instrumentation"
)

// rootCmd represents the base command for the roomcal application
var rootCmd = &cobra.Command{
	Use:   "roomcal",
	Short: "Read and book meeting room calendars on an Exchange server",
	Long: `roomcal talks to a Microsoft Exchange server over EWS to list calendar
events, check meeting room availability, book rooms, and collect day
schedules across a set of rooms.

The server address and credentials come from EXCHANGE_* environment
variables (optionally via a .env file); see the config package
documentation for the full list.`,
	SilenceUsage: true,
}

// version will be set by main
var version = "dev"

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "roomcal version %s\n" .Version}}`)

	// If no subcommand is provided, run the connectivity check by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "check")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newListCmd())
	rootCmd.AddCommand(newAvailabilityCmd())
	rootCmd.AddCommand(newBookCmd())
	rootCmd.AddCommand(newSchedulesCmd())
	rootCmd.AddCommand(newVersionCmd())
}

// runtime bundles the collaborators every subcommand needs.
type runtime struct {
	cfg      config.Config
	client   *ews.Client
	logger   *slog.Logger
	provider *instrumentation.Provider
}

// newRuntime loads configuration, sets up instrumentation and constructs
// the EWS client. Callers must invoke close when done so pending metrics
// get flushed.
func newRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}

	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version
	provider, err := instrumentation.NewProvider(ctx, instrConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create instrumentation provider: %w", err)
	}

	logger := slog.Default()
	client, err := ews.NewClient(cfg.EWS,
		ews.WithLogger(logger),
		ews.WithMetrics(provider.Metrics()),
	)
	if err != nil {
		_ = provider.Shutdown(ctx)
		return nil, err
	}

	return &runtime{cfg: cfg, client: client, logger: logger, provider: provider}, nil
}

func (r *runtime) close(ctx context.Context) {
	if err := r.provider.Shutdown(ctx); err != nil {
		r.logger.Warn("instrumentation shutdown failed", "error", err)
	}
}

// parseTimeFlag accepts RFC3339 timestamps and plain dates.
func parseTimeFlag(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid time %q: use RFC3339 (2024-01-15T09:00:00Z) or a date (2024-01-15)", value)
}
