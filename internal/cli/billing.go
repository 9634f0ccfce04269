package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func newBillingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "billing",
		Short: "Subscription and payments",
	}

	cmd.AddCommand(newBillingStatusCmd())
	cmd.AddCommand(newBillingCheckoutCmd())

	return cmd
}

func newBillingStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show your subscription state",
		RunE: func(cmd *cobra.Command, args []string) error {
			st, err := apiClient.Billing().Status(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get billing status: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(st)
			}

			fmt.Fprintf(out, "Status: %s\n", formatStatus(st.Status))
			fmt.Fprintf(out, "Ends:   %s\n", formatTime(st.EndsAt))
			if st.Active {
				fmt.Fprintln(out, "Access: granted")
			} else {
				fmt.Fprintf(out, "Access: denied (%s)\n", orDash(st.Reason))
			}
			return nil
		},
	}
}

func newBillingCheckoutCmd() *cobra.Command {
	var amount float64

	cmd := &cobra.Command{
		Use:   "checkout",
		Short: "Start a subscription payment and print the checkout link",
		RunE: func(cmd *cobra.Command, args []string) error {
			if amount <= 0 {
				return fmt.Errorf("--amount must be positive")
			}

			url, err := apiClient.Billing().Checkout(context.Background(), amount)
			if err != nil {
				return fmt.Errorf("failed to start checkout: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(map[string]string{"authorization_url": url})
			}
			fmt.Fprintf(out, "Complete your payment at:\n  %s\n", url)
			return nil
		},
	}

	cmd.Flags().Float64Var(&amount, "amount", 0, "amount to charge in major currency units")

	return cmd
}
