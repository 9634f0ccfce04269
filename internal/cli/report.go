package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pratik-mahalle/proftrack/pkg/client"
	"github.com/spf13/cobra"
)

func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "report",
		Aliases: []string{"reports"},
		Short:   "Manage and generate reports",
	}

	cmd.AddCommand(newReportListCmd())
	cmd.AddCommand(newReportGetCmd())
	cmd.AddCommand(newReportGenerateCmd())
	cmd.AddCommand(newReportExportCmd())

	return cmd
}

func newReportListCmd() *cobra.Command {
	var (
		projectID int64
		kind      string
		status    string
		page      int
		pageSize  int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List reports",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := &client.ReportListOptions{
				ListOptions: client.ListOptions{Page: page, PageSize: pageSize},
				Kind:        kind,
				Status:      status,
			}
			if projectID > 0 {
				opts.ProjectID = &projectID
			}

			result, err := apiClient.Reports().List(context.Background(), opts)
			if err != nil {
				return fmt.Errorf("failed to list reports: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			if len(result.Data) == 0 {
				fmt.Fprintln(out, "No reports found.")
				return nil
			}

			table := NewTable("ID", "TITLE", "KIND", "STATUS", "ARCHIVED", "UPDATED")
			for _, r := range result.Data {
				archived := "no"
				if r.ArchiveLocation != nil {
					archived = "yes"
				}
				updated := r.UpdatedAt
				table.AddRow(
					strconv.FormatInt(r.ID, 10),
					truncate(r.Title, 40),
					r.Kind,
					formatStatus(r.Status),
					archived,
					formatTime(&updated),
				)
			}
			table.Render()
			fmt.Fprintf(out, "\nPage %d of %d (%d reports)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "filter by project")
	cmd.Flags().StringVar(&kind, "kind", "", "filter by kind (summary, competency, referee_statement)")
	cmd.Flags().StringVar(&status, "status", "", "filter by status (draft, final)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "results per page")

	return cmd
}

func newReportGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			r, err := apiClient.Reports().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get report: %w", err)
			}
			return printReport(r)
		},
	}
}

func newReportGenerateCmd() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "generate <project-id>",
		Short: "Draft a report for a project with the configured writer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			projectID, err := parseID(args[0])
			if err != nil {
				return err
			}

			r, err := apiClient.Reports().Generate(context.Background(), projectID, kind)
			if err != nil {
				return fmt.Errorf("failed to generate report: %w", err)
			}
			return printReport(r)
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "summary", "report kind (summary, competency, referee_statement)")

	return cmd
}

func newReportExportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export <id>",
		Short: "Archive a report to object storage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			export, err := apiClient.Reports().Export(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to export report: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(export)
			}
			fmt.Fprintf(out, "Report %d archived to %s\n", export.ReportID, export.Location)
			return nil
		},
	}
}

func printReport(r *client.Report) error {
	if getOutputFormat() != "table" {
		return printOutput(r)
	}

	fmt.Fprintf(out, "ID:      %d\n", r.ID)
	fmt.Fprintf(out, "Title:   %s\n", r.Title)
	fmt.Fprintf(out, "Kind:    %s\n", r.Kind)
	fmt.Fprintf(out, "Status:  %s\n", formatStatus(r.Status))
	if r.ArchiveLocation != nil {
		fmt.Fprintf(out, "Archive: %s\n", *r.ArchiveLocation)
	}
	if r.Content != "" {
		fmt.Fprintf(out, "\n%s\n", r.Content)
	}
	return nil
}
