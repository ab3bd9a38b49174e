package commands

import (
	"github.com/spf13/cobra"
)

func usersCmd() *cobra.Command {
	var page, perPage int
	var country string
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List registered users",
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]any{"page": page}
			if perPage > 0 {
				params["per_page"] = perPage
			}
			if country != "" {
				params["country"] = country
			}
			env, err := api.Users().List(cmd.Context(), params)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"data":       env.Data(),
				"pagination": env.Pagination(),
			})
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&perPage, "per-page", 0, "page size (default 50, max 100)")
	cmd.Flags().StringVar(&country, "country", "", "ISO 3166-1 alpha-2 filter")
	return cmd
}
