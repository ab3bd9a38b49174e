package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/suar-net/iberbanco-go/internal/model"
)

func exportCmd() *cobra.Command {
	var format, from, to string
	var columns []string
	cmd := &cobra.Command{
		Use:       "export RESOURCE",
		Short:     "Start an export job for users, accounts, transactions or cards",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"users", "accounts", "transactions", "cards"},
		RunE: func(cmd *cobra.Command, args []string) error {
			params := map[string]any{}
			if format != "" {
				params["format"] = format
			}
			if from != "" {
				params["date_from"] = from
			}
			if to != "" {
				params["date_to"] = to
			}
			if len(columns) > 0 {
				params["columns"] = columns
			}

			svc := api.Export()
			start := map[model.ExportResource]func() (model.Envelope, error){
				model.ExportUsers:        func() (model.Envelope, error) { return svc.Users(cmd.Context(), params) },
				model.ExportAccounts:     func() (model.Envelope, error) { return svc.Accounts(cmd.Context(), params) },
				model.ExportTransactions: func() (model.Envelope, error) { return svc.Transactions(cmd.Context(), params) },
				model.ExportCards:        func() (model.Envelope, error) { return svc.Cards(cmd.Context(), params) },
			}[model.ExportResource(strings.ToLower(args[0]))]
			if start == nil {
				return fmt.Errorf("unknown export resource %q", args[0])
			}

			env, err := start()
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), env.Data())
		},
	}
	cmd.Flags().StringVar(&format, "format", "", "csv, xlsx, json or xml")
	cmd.Flags().StringVar(&from, "from", "", "first day, YYYY-MM-DD")
	cmd.Flags().StringVar(&to, "to", "", "last day, YYYY-MM-DD")
	cmd.Flags().StringSliceVar(&columns, "columns", nil, "columns to include")
	return cmd
}
