package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pratik-mahalle/proftrack/pkg/client"
	"github.com/spf13/cobra"
)

func newRefereeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "referee",
		Aliases: []string{"referees"},
		Short:   "Manage referees",
	}

	cmd.AddCommand(newRefereeListCmd())
	cmd.AddCommand(newRefereeCreateCmd())
	cmd.AddCommand(newRefereeDeleteCmd())

	return cmd
}

func newRefereeListCmd() *cobra.Command {
	var projectID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List referees",
		RunE: func(cmd *cobra.Command, args []string) error {
			var filter *int64
			if projectID > 0 {
				filter = &projectID
			}

			referees, err := apiClient.Referees().List(context.Background(), filter)
			if err != nil {
				return fmt.Errorf("failed to list referees: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(referees)
			}

			if len(referees) == 0 {
				fmt.Fprintln(out, "No referees found.")
				return nil
			}

			table := NewTable("ID", "NAME", "EMAIL", "POSITION", "ORGANISATION", "PROJECT")
			for _, r := range referees {
				project := "-"
				if r.ProjectID != nil {
					project = strconv.FormatInt(*r.ProjectID, 10)
				}
				table.AddRow(
					strconv.FormatInt(r.ID, 10),
					truncate(r.FullName, 30),
					r.Email,
					orDash(truncate(r.Position, 24)),
					orDash(truncate(r.Organisation, 24)),
					project,
				)
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().Int64Var(&projectID, "project", 0, "only referees attached to this project")

	return cmd
}

func newRefereeCreateCmd() *cobra.Command {
	var (
		req       client.CreateRefereeRequest
		projectID int64
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a referee",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectID > 0 {
				req.ProjectID = &projectID
			}
			if req.FullName == "" {
				req.FullName = promptInput("Full name: ")
			}
			if req.Email == "" {
				req.Email = promptInput("Email: ")
			}

			r, err := apiClient.Referees().Create(context.Background(), req)
			if err != nil {
				return fmt.Errorf("failed to create referee: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(r)
			}
			fmt.Fprintf(out, "Referee %d created: %s <%s>\n", r.ID, r.FullName, r.Email)
			return nil
		},
	}

	cmd.Flags().StringVar(&req.FullName, "name", "", "referee full name")
	cmd.Flags().StringVar(&req.Email, "email", "", "referee email")
	cmd.Flags().StringVar(&req.Phone, "phone", "", "referee phone")
	cmd.Flags().StringVar(&req.Position, "position", "", "referee position")
	cmd.Flags().StringVar(&req.Organisation, "organisation", "", "referee organisation")
	cmd.Flags().StringVar(&req.Relationship, "relationship", "", "how the referee knows you")
	cmd.Flags().Int64Var(&projectID, "project", 0, "project the referee vouches for")

	return cmd
}

func newRefereeDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a referee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			if err := apiClient.Referees().Delete(context.Background(), id); err != nil {
				return fmt.Errorf("failed to delete referee: %w", err)
			}
			fmt.Fprintf(out, "Referee %d deleted\n", id)
			return nil
		},
	}
}
