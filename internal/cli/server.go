package cli

import (
	"github.com/spf13/cobra"

	"watchdog/internal/server"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Run the monitoring server",
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		port, _ := cmd.Flags().GetInt("port")
		return server.Launch(server.Options{
			ConfigPath: configPath,
			Port:       port,
			EnvFile:    envFile,
		})
	},
}

func init() {
	serverCmd.Flags().StringP("config", "c", "watchdog.yml", "configuration file path")
	serverCmd.Flags().IntP("port", "p", 3030, "http listen port")
}
