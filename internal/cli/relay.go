package cli

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"watchdog/internal/relay"
	"watchdog/pkg/logger"
)

var relayCmd = &cobra.Command{
	Use:   "relay",
	Short: "Run a region relay",
	RunE: func(cmd *cobra.Command, args []string) error {
		region, _ := cmd.Flags().GetString("region")

		appConfig, err := relay.LoadConfig(envFile)
		if err != nil {
			return fmt.Errorf("missing relay environment: %w", err)
		}
		zapLogger := logger.NewLogger(appConfig.LogLevel, "relay", nil)
		defer func() {
			_ = zapLogger.Sync()
		}()

		client := relay.NewServerClient(appConfig.ServerURL, appConfig.Token, appConfig.RequestTimeout)
		engine := relay.NewEngine(zapLogger, client, region, appConfig.PollInterval)

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if err = engine.Run(ctx); err != nil {
			if ctx.Err() != nil {
				return transientError{err: err}
			}
			return err
		}
		return nil
	},
}

func init() {
	relayCmd.Flags().StringP("region", "r", "", "region this relay is responsible for")
	_ = relayCmd.MarkFlagRequired("region")
}
