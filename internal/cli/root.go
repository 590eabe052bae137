package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const envFile = "./.env"

var version = "dev"

// transientError marks failures that happened after a successful startup,
// reported with exit code 2 instead of 1.
type transientError struct {
	err error
}

func (e transientError) Error() string {
	return e.err.Error()
}

func (e transientError) Unwrap() error {
	return e.err
}

var rootCmd = &cobra.Command{
	Use:     "watchdog",
	Short:   "Minimalist multi-region network monitoring",
	Version: version,
	Long: `Minimalist multi-region network monitoring.

  The server loads a declarative YAML configuration and keeps one state
  machine per region and per group. Relays run probes in their region and
  push group outcomes to the server, which opens and closes incidents.

  Quick start:
    watchdog server --config watchdog.yml
    watchdog relay --region eu-west
    watchdog status`,
	SilenceUsage: true,
}

// Execute runs the CLI. Exit codes: 0 normal, 1 unrecoverable startup
// failure, 2 transient runtime failure that terminated the process.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var transient transientError
		if errors.As(err, &transient) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

func newAPIClient() (ServerClient, error) {
	cfg, err := LoadConfig(envFile)
	if err != nil {
		return nil, fmt.Errorf("missing server environment: %w", err)
	}
	return NewServerClient(cfg.ServerURL, cfg.Token, cfg.RequestTimeout), nil
}

// queryError keeps auth failures at exit code 1 and treats everything else
// that happens on the wire as transient.
func queryError(err error) error {
	if errors.Is(err, ErrUnauthorized) {
		return err
	}
	return transientError{err: err}
}

func init() {
	rootCmd.AddCommand(serverCmd)
	rootCmd.AddCommand(relayCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(incidentCmd)
	rootCmd.AddCommand(alertingCmd)
}

func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
