package cmd

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	tokenHours   int
	tokenEnviron []string
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage access tokens",
}

var tokenGenCmd = &cobra.Command{
	Use:   "gen",
	Short: "Generate a new access token",
	RunE: func(cmd *cobra.Command, args []string) error {
		environ := make(map[string]string, len(tokenEnviron))
		for _, pair := range tokenEnviron {
			key, value, ok := strings.Cut(pair, "=")
			if !ok {
				return fmt.Errorf("invalid environ entry %q, expected key=value", pair)
			}
			environ[key] = value
		}

		var resp struct {
			Token     string    `json:"token"`
			ExpiresAt time.Time `json:"expires_at"`
		}
		err := api.Do(cmd.Context(), http.MethodPost, "/api/tokens", map[string]any{
			"valid_in_hours": tokenHours,
			"environ":        environ,
		}, &resp)
		if err != nil {
			return err
		}
		fmt.Printf("%s (expires %s)\n", resp.Token, resp.ExpiresAt.Format(time.RFC3339))
		return nil
	},
}

var tokenRevokeCmd = &cobra.Command{
	Use:   "revoke <token>",
	Short: "Revoke one access token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Do(cmd.Context(), http.MethodDelete, "/api/tokens/"+args[0], nil, nil)
	},
}

var tokenClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Revoke all access tokens",
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Do(cmd.Context(), http.MethodDelete, "/api/tokens", nil, nil)
	},
}

func init() {
	tokenGenCmd.Flags().IntVar(&tokenHours, "hours", 1, "token validity in hours")
	tokenGenCmd.Flags().StringArrayVar(&tokenEnviron, "environ", nil, "environment entries (key=value) attached to the token")
	tokenCmd.AddCommand(tokenGenCmd, tokenRevokeCmd, tokenClearCmd)
	rootCmd.AddCommand(tokenCmd)
}
