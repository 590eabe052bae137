package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"watchdog/internal/server/api/dto/response"
)

var incidentCmd = &cobra.Command{
	Use:   "incident",
	Short: "Inspect the incident ledger",
}

var incidentLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List incidents from the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		incidents, err := client.Incidents(commandContext(cmd))
		if err != nil {
			return queryError(err)
		}
		renderIncidents(os.Stdout, incidents.Incidents)
		return nil
	},
}

func renderIncidents(out io.Writer, incidents []response.IncidentItem) {
	if len(incidents) == 0 {
		fmt.Fprintln(out, "No incidents recorded.")
		return
	}
	for _, incident := range incidents {
		fmt.Fprintf(out, "[%s] %s  %s\n",
			incident.Timestamp, renderKind(incident.Kind), incident.Message)
	}
	fmt.Fprintf(out, "\nTotal: %d incidents\n", len(incidents))
}

func init() {
	incidentCmd.AddCommand(incidentLsCmd)
}
