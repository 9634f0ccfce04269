package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pratik-mahalle/proftrack/pkg/client"
	"github.com/spf13/cobra"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "project",
		Aliases: []string{"projects"},
		Short:   "Manage projects",
	}

	cmd.AddCommand(newProjectListCmd())
	cmd.AddCommand(newProjectGetCmd())
	cmd.AddCommand(newProjectCreateCmd())
	cmd.AddCommand(newProjectDeleteCmd())

	return cmd
}

func newProjectListCmd() *cobra.Command {
	var (
		status   string
		page     int
		pageSize int
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := apiClient.Projects().List(context.Background(), &client.ProjectListOptions{
				ListOptions: client.ListOptions{Page: page, PageSize: pageSize},
				Status:      status,
			})
			if err != nil {
				return fmt.Errorf("failed to list projects: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(result)
			}

			if len(result.Data) == 0 {
				fmt.Fprintln(out, "No projects found.")
				return nil
			}

			table := NewTable("ID", "TITLE", "EMPLOYER", "ROLE", "STATUS", "START", "END")
			for _, p := range result.Data {
				table.AddRow(
					strconv.FormatInt(p.ID, 10),
					truncate(p.Title, 40),
					orDash(truncate(p.Employer, 24)),
					orDash(truncate(p.Role, 24)),
					formatStatus(p.Status),
					orDash(p.StartDate),
					orDash(p.EndDate),
				)
			}
			table.Render()
			fmt.Fprintf(out, "\nPage %d of %d (%d projects)\n", result.Page, result.TotalPages, result.TotalItems)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", "", "filter by status (planned, active, completed)")
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&pageSize, "page-size", 20, "results per page")

	return cmd
}

func newProjectGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			p, err := apiClient.Projects().Get(context.Background(), id)
			if err != nil {
				return fmt.Errorf("failed to get project: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(p)
			}

			fmt.Fprintf(out, "ID:        %d\n", p.ID)
			fmt.Fprintf(out, "Title:     %s\n", p.Title)
			fmt.Fprintf(out, "Employer:  %s\n", orDash(p.Employer))
			fmt.Fprintf(out, "Role:      %s\n", orDash(p.Role))
			fmt.Fprintf(out, "Location:  %s\n", orDash(p.Location))
			fmt.Fprintf(out, "Status:    %s\n", formatStatus(p.Status))
			fmt.Fprintf(out, "Dates:     %s to %s\n", orDash(p.StartDate), orDash(p.EndDate))
			if p.Summary != "" {
				fmt.Fprintf(out, "\n%s\n", p.Summary)
			}
			return nil
		},
	}
}

func newProjectCreateCmd() *cobra.Command {
	var req client.CreateProjectRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a project",
		RunE: func(cmd *cobra.Command, args []string) error {
			if req.Title == "" {
				req.Title = promptInput("Title: ")
			}

			p, err := apiClient.Projects().Create(context.Background(), req)
			if err != nil {
				return fmt.Errorf("failed to create project: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(p)
			}
			fmt.Fprintf(out, "Project %d created: %s\n", p.ID, p.Title)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.Title, "title", "", "project title")
	cmd.Flags().StringVar(&req.Summary, "summary", "", "short description of the work")
	cmd.Flags().StringVar(&req.Employer, "employer", "", "employer or client")
	cmd.Flags().StringVar(&req.Role, "role", "", "your role on the project")
	cmd.Flags().StringVar(&req.Location, "location", "", "where the work took place")
	cmd.Flags().StringVar(&req.Status, "status", "", "planned, active or completed")
	cmd.Flags().StringVar(&req.StartDate, "start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&req.EndDate, "end", "", "end date (YYYY-MM-DD)")

	return cmd
}

func newProjectDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := apiClient.Projects().Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete project: %w", err)
			}
			fmt.Fprintf(out, "Project %d deleted\n", id)
			return nil
		},
	}
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
