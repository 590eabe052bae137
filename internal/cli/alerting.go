package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var alertingCmd = &cobra.Command{
	Use:   "alerting",
	Short: "Manage alert mediums",
}

var alertingTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Send a test alert through every configured medium",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		if err = client.TestAlerting(commandContext(cmd)); err != nil {
			return queryError(err)
		}
		fmt.Println("Test alert delivered to every configured medium.")
		return nil
	},
}

func init() {
	alertingCmd.AddCommand(alertingTestCmd)
}
