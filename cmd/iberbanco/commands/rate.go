package commands

import (
	"strconv"

	"github.com/spf13/cobra"
)

func rateCmd() *cobra.Command {
	var precision int
	var date string
	cmd := &cobra.Command{
		Use:   "rate FROM TO [AMOUNT]",
		Short: "Quote an exchange rate",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := map[string]any{}
			if precision > 0 {
				opts["precision"] = precision
			}

			amount := 1.0
			if len(args) == 3 {
				v, err := strconv.ParseFloat(args[2], 64)
				if err != nil {
					return err
				}
				amount = v
			}

			if date != "" {
				opts["amount"] = amount
				env, err := api.Exchange().HistoricalRate(cmd.Context(), args[0], args[1], date, opts)
				if err != nil {
					return err
				}
				return printJSON(cmd.OutOrStdout(), env.Data())
			}

			env, err := api.Exchange().Conversion(cmd.Context(), args[0], args[1], amount, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), env.Data())
		},
	}
	cmd.Flags().IntVar(&precision, "precision", 0, "decimal places of the rate (2-8)")
	cmd.Flags().StringVar(&date, "date", "", "historical date, YYYY-MM-DD")
	return cmd
}
