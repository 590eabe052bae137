package cli

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"watchdog/internal/server/api/dto/response"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print region and group states from a running server",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}
		status, err := client.Status(commandContext(cmd))
		if err != nil {
			return queryError(err)
		}
		renderStatusTables(os.Stdout, status)
		return nil
	},
}

func renderStatusTables(out io.Writer, status response.StatusResponse) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "REGION\tLAST UPDATE\tSTATUS")
	fmt.Fprintln(w, "------\t-----------\t------")
	for _, region := range status.Regions {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			region.Name, orDash(region.LastUpdate), renderState(region.Status, false))
	}
	w.Flush()

	fmt.Fprintln(out)

	w = tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tLAST UPDATE\tSTATUS")
	fmt.Fprintln(w, "-----\t-----------\t------")
	for _, group := range status.Groups {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			group.Name, orDash(group.LastUpdate), renderState(group.Status, group.Stale))
	}
	w.Flush()
}

func orDash(value string) string {
	if value == "" {
		return "-"
	}
	return value
}
