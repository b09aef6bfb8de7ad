package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"
)

var (
	jobsPage    int
	jobsLimit   int
	jobsStatus  string
	jobsProcess string
	jobsService string
	jobsTags    string
	jobsAccess  string
	jobsSort    string
)

var jobsCmd = &cobra.Command{
	Use:   "jobs",
	Short: "List tracked jobs",
	RunE: func(cmd *cobra.Command, args []string) error {
		query := url.Values{}
		query.Set("page", strconv.Itoa(jobsPage))
		query.Set("limit", strconv.Itoa(jobsLimit))
		for name, value := range map[string]string{
			"status":  jobsStatus,
			"process": jobsProcess,
			"service": jobsService,
			"tags":    jobsTags,
			"access":  jobsAccess,
			"sort":    jobsSort,
		} {
			if value != "" {
				query.Set(name, value)
			}
		}

		var resp struct {
			Jobs  []string `json:"jobs"`
			Count int64    `json:"count"`
			Page  int      `json:"page"`
			Limit int      `json:"limit"`
		}
		if err := api.Do(cmd.Context(), http.MethodGet, "/api/jobs?"+query.Encode(), nil, &resp); err != nil {
			return err
		}
		for _, id := range resp.Jobs {
			fmt.Println(id)
		}
		fmt.Printf("page %d of %d matching jobs\n", resp.Page, resp.Count)
		return nil
	},
}

func init() {
	jobsCmd.Flags().IntVar(&jobsPage, "page", 0, "result page")
	jobsCmd.Flags().IntVar(&jobsLimit, "limit", 10, "page size")
	jobsCmd.Flags().StringVar(&jobsStatus, "status", "", "literal status or category (running, finished)")
	jobsCmd.Flags().StringVar(&jobsProcess, "process", "", "filter by process identifier")
	jobsCmd.Flags().StringVar(&jobsService, "service", "", "filter by service identifier")
	jobsCmd.Flags().StringVar(&jobsTags, "tags", "", "comma-separated tags")
	jobsCmd.Flags().StringVar(&jobsAccess, "access", "", "access scope: public, private or all")
	jobsCmd.Flags().StringVar(&jobsSort, "sort", "", "sort key")
	rootCmd.AddCommand(jobsCmd)
}
