package cmd

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
)

var (
	serviceName      string
	serviceType      string
	serviceAuth      string
	servicePublic    bool
	serviceOverwrite bool
)

type serviceRecord struct {
	Name   string `json:"name"`
	URL    string `json:"url"`
	Type   string `json:"type"`
	Public bool   `json:"public"`
	Auth   string `json:"auth"`
}

var serviceCmd = &cobra.Command{
	Use:   "service",
	Short: "Manage registered OWS services",
}

var serviceRegisterCmd = &cobra.Command{
	Use:   "register <url>",
	Short: "Register a backend service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var svc serviceRecord
		err := api.Do(cmd.Context(), http.MethodPost, "/api/services", map[string]any{
			"name":      serviceName,
			"url":       args[0],
			"type":      serviceType,
			"public":    servicePublic,
			"auth":      serviceAuth,
			"overwrite": serviceOverwrite,
		}, &svc)
		if err != nil {
			return err
		}
		fmt.Printf("registered %s -> %s\n", svc.Name, svc.URL)
		return nil
	},
}

var serviceListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered services",
	RunE: func(cmd *cobra.Command, args []string) error {
		var services []serviceRecord
		if err := api.Do(cmd.Context(), http.MethodGet, "/api/services", nil, &services); err != nil {
			return err
		}
		for _, svc := range services {
			visibility := "private"
			if svc.Public {
				visibility = "public"
			}
			fmt.Printf("%s\t%s\t%s\t%s\n", svc.Name, svc.URL, svc.Type, visibility)
		}
		return nil
	},
}

var serviceUnregisterCmd = &cobra.Command{
	Use:   "unregister <name>",
	Short: "Remove one registered service",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Do(cmd.Context(), http.MethodDelete, "/api/services/"+args[0], nil, nil)
	},
}

var serviceClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all registered services",
	RunE: func(cmd *cobra.Command, args []string) error {
		return api.Do(cmd.Context(), http.MethodDelete, "/api/services", nil, nil)
	},
}

func init() {
	serviceRegisterCmd.Flags().StringVar(&serviceName, "name", "", "service name (generated when empty)")
	serviceRegisterCmd.Flags().StringVar(&serviceType, "type", "wps", "backend service kind")
	serviceRegisterCmd.Flags().StringVar(&serviceAuth, "auth", "token", "authentication method tag")
	serviceRegisterCmd.Flags().BoolVar(&servicePublic, "public", false, "mark the service publicly reachable")
	serviceRegisterCmd.Flags().BoolVar(&serviceOverwrite, "overwrite", false, "replace a colliding registration")
	serviceCmd.AddCommand(serviceRegisterCmd, serviceListCmd, serviceUnregisterCmd, serviceClearCmd)
	rootCmd.AddCommand(serviceCmd)
}
