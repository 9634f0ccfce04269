package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/pratik-mahalle/proftrack/pkg/client"
	"github.com/spf13/cobra"
)

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show server health and your account summary",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			loggedIn := apiClient.GetToken() != ""

			if getOutputFormat() != "table" {
				summary := map[string]interface{}{}
				if ready, err := apiClient.Ready(ctx); err == nil {
					summary["server"] = ready
				}
				if loggedIn {
					if st, err := apiClient.Billing().Status(ctx); err == nil {
						summary["subscription"] = st
					}
					if page, err := apiClient.Projects().List(ctx, &client.ProjectListOptions{ListOptions: client.ListOptions{PageSize: 1}}); err == nil {
						summary["projects"] = page.TotalItems
					}
					if page, err := apiClient.Reports().List(ctx, &client.ReportListOptions{ListOptions: client.ListOptions{PageSize: 1}}); err == nil {
						summary["reports"] = page.TotalItems
					}
				}
				return printOutput(summary)
			}

			fmt.Fprintln(out, "ProfTrack")
			fmt.Fprintln(out, strings.Repeat("=", 40))

			ready, err := apiClient.Ready(ctx)
			if err != nil {
				fmt.Fprintf(out, "  Server:        (error: %v)\n", err)
			} else {
				fmt.Fprintf(out, "  Server:        %s (db %s, identity %s)\n",
					formatStatus(ready.Status), orDash(ready.Database), orDash(ready.Identity))
			}

			if !loggedIn {
				fmt.Fprintln(out, "  Account:       not logged in")
				return nil
			}

			st, err := apiClient.Billing().Status(ctx)
			if err != nil {
				fmt.Fprintf(out, "  Subscription:  (error: %v)\n", err)
			} else {
				fmt.Fprintf(out, "  Subscription:  %s until %s\n", formatStatus(st.Status), formatTime(st.EndsAt))
			}

			projects, err := apiClient.Projects().List(ctx, &client.ProjectListOptions{ListOptions: client.ListOptions{PageSize: 1}})
			if err != nil {
				fmt.Fprintf(out, "  Projects:      (error: %v)\n", err)
			} else {
				fmt.Fprintf(out, "  Projects:      %d\n", projects.TotalItems)
			}

			reports, err := apiClient.Reports().List(ctx, &client.ReportListOptions{ListOptions: client.ListOptions{PageSize: 1}})
			if err != nil {
				fmt.Fprintf(out, "  Reports:       (error: %v)\n", err)
			} else {
				fmt.Fprintf(out, "  Reports:       %d\n", reports.TotalItems)
			}

			return nil
		},
	}
	return withAuth(cmd, authOptional)
}
