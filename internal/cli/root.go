package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pratik-mahalle/proftrack/pkg/client"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// authAnnotation controls how a command's API client is prepared.
const authAnnotation = "proftrack/auth"

const (
	authNone     = "none"     // no client
	authOptional = "optional" // client, token attached when present
)

var (
	cfgFile      string
	outputFormat string
	serverURL    string
	apiClient    *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "proftrack",
	Short: "ProfTrack CLI - manage projects, referees and reports",
	Long: `ProfTrack CLI provides command-line access to the ProfTrack platform
for tracking professional projects, collecting referees, generating reports
and managing your subscription.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch commandAuth(cmd) {
		case authNone:
			return nil
		case authOptional:
			initClient()
			if token := viper.GetString("auth.token"); token != "" {
				apiClient.SetToken(token)
			}
			return nil
		default:
			return initAuthenticatedClient()
		}
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $HOME/.proftrack/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "output format: table, json, yaml")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "server URL (overrides config)")

	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))
	_ = viper.BindPFlag("server_url", rootCmd.PersistentFlags().Lookup("server"))

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatusCmd())
	rootCmd.AddCommand(newProjectCmd())
	rootCmd.AddCommand(newRefereeCmd())
	rootCmd.AddCommand(newReportCmd())
	rootCmd.AddCommand(newBillingCmd())
	rootCmd.AddCommand(newWebhookCmd())
}

// commandAuth walks up from cmd to the first command carrying an auth
// annotation. Commands without one require a stored token.
func commandAuth(cmd *cobra.Command) string {
	for c := cmd; c != nil; c = c.Parent() {
		if v, ok := c.Annotations[authAnnotation]; ok {
			return v
		}
	}
	return ""
}

func withAuth(cmd *cobra.Command, mode string) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[authAnnotation] = mode
	return cmd
}

func configDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".proftrack"), nil
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		dir, err := configDir()
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error:", err)
			return
		}
		_ = os.MkdirAll(dir, 0700)
		viper.AddConfigPath(dir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("PROFTRACK")
	viper.AutomaticEnv()

	viper.SetDefault("server_url", "http://localhost:8080")
	viper.SetDefault("output", "table")

	_ = viper.ReadInConfig()
}

func initClient() {
	url := viper.GetString("server_url")
	if serverURL != "" {
		url = serverURL
	}

	apiClient = client.NewClient(client.Config{
		BaseURL: url,
	})
}

func initAuthenticatedClient() error {
	initClient()

	token := viper.GetString("auth.token")
	if token == "" {
		return fmt.Errorf("not authenticated. Run 'proftrack auth login' first")
	}

	apiClient.SetToken(token)
	return nil
}

func getOutputFormat() string {
	if outputFormat != "" && outputFormat != "table" {
		return outputFormat
	}
	return viper.GetString("output")
}
