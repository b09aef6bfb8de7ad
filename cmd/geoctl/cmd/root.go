package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/geofront-io/geofront/cmd/geoctl/client"
)

var (
	endpoint string
	api      *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "geoctl",
	Short: "geoctl manages a running geofront gateway",
	Long:  "A command-line interface for managing access tokens, registered OWS services and tracked jobs of a geofront gateway.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		api = client.New(endpoint)
	},
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&endpoint, "endpoint", "http://localhost:8080", "gateway base URL")
}
