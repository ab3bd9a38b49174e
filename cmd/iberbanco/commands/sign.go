package commands

import (
	"github.com/spf13/cobra"
)

func signCmd() *cobra.Command {
	var timestamp int64
	cmd := &cobra.Command{
		Use:   "sign",
		Short: "Print the signed header set for the current token",
		RunE: func(cmd *cobra.Command, args []string) error {
			headers, err := api.Auth().GenerateAuthHeaders("", timestamp)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), headers.Map())
		},
	}
	cmd.Flags().Int64Var(&timestamp, "timestamp", 0, "unix time to sign at (default now)")
	return cmd
}
