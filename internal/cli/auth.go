package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
	"syscall"
	"time"

	"github.com/pratik-mahalle/proftrack/internal/auth"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

func newAuthCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authentication commands",
	}

	cmd.AddCommand(newAuthLoginCmd())
	cmd.AddCommand(newAuthLogoutCmd())
	cmd.AddCommand(newAuthWhoamiCmd())
	cmd.AddCommand(newAuthDevTokenCmd())

	return cmd
}

func newAuthLoginCmd() *cobra.Command {
	var token string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Store an identity token and confirm it with the server",
		Long: `Store an ID token issued by the identity provider. The token is sent as
a bearer credential and checked against the server before it is saved.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if token == "" {
				token = promptPassword("ID token: ")
			}
			token = strings.TrimSpace(token)
			if token == "" {
				return fmt.Errorf("token is required")
			}

			apiClient.SetToken(token)
			profile, err := apiClient.Profile(context.Background())
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			viper.Set("auth.token", token)
			viper.Set("auth.email", profile.Email)
			if _, err := writeConfig(); err != nil {
				return fmt.Errorf("failed to save credentials: %w", err)
			}

			name := profile.Email
			if profile.DisplayName != "" {
				name = profile.DisplayName
			}
			fmt.Fprintf(out, "Logged in as %s\n", name)
			return nil
		},
	}

	cmd.Flags().StringVar(&token, "token", "", "ID token (prompted when omitted)")

	return withAuth(cmd, authOptional)
}

func newAuthLogoutCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logout",
		Short: "Clear stored credentials",
		RunE: func(cmd *cobra.Command, args []string) error {
			viper.Set("auth.token", "")
			viper.Set("auth.email", "")

			if _, err := writeConfig(); err != nil {
				return fmt.Errorf("failed to clear credentials: %w", err)
			}

			fmt.Fprintln(out, "Logged out successfully")
			return nil
		},
	}
	return withAuth(cmd, authNone)
}

func newAuthWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show current user info",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := apiClient.Profile(context.Background())
			if err != nil {
				return fmt.Errorf("failed to get user info: %w", err)
			}

			if getOutputFormat() != "table" {
				return printOutput(profile)
			}

			fmt.Fprintf(out, "Email:        %s\n", profile.Email)
			if profile.DisplayName != "" {
				fmt.Fprintf(out, "Name:         %s\n", profile.DisplayName)
			}
			fmt.Fprintf(out, "Role:         %s\n", profile.Role)
			fmt.Fprintf(out, "Subscription: %s\n", formatStatus(profile.SubscriptionStatus))
			fmt.Fprintf(out, "Ends:         %s\n", formatTime(profile.SubscriptionEndsAt))
			fmt.Fprintf(out, "ID:           %d\n", profile.ID)
			return nil
		},
	}
}

func newAuthDevTokenCmd() *cobra.Command {
	var (
		email  string
		name   string
		secret string
		ttl    time.Duration
		save   bool
	)

	cmd := &cobra.Command{
		Use:   "dev-token",
		Short: "Mint a token for a server running with AUTH_DEV_BYPASS",
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				secret = viper.GetString("auth.dev_secret")
			}
			if email == "" {
				return fmt.Errorf("--email is required")
			}

			token, err := auth.MintDevToken(email, name, secret, ttl)
			if err != nil {
				return fmt.Errorf("failed to mint token: %w", err)
			}

			if save {
				viper.Set("auth.token", token)
				viper.Set("auth.email", email)
				if _, err := writeConfig(); err != nil {
					return fmt.Errorf("failed to save credentials: %w", err)
				}
				fmt.Fprintf(out, "Dev token for %s saved\n", email)
				return nil
			}

			fmt.Fprintln(out, token)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "email the token is issued for")
	cmd.Flags().StringVar(&name, "name", "", "display name claim")
	cmd.Flags().StringVar(&secret, "secret", "", "signing secret matching the server's AUTH_DEV_SECRET")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "token lifetime")
	cmd.Flags().BoolVar(&save, "save", false, "store the token as the active credential")

	return withAuth(cmd, authNone)
}

func promptInput(prompt string) string {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func promptPassword(prompt string) string {
	fmt.Print(prompt)
	secret, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return ""
	}
	return string(secret)
}
