package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/suar-net/iberbanco-go/internal/client"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the library version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), client.Version())
			return err
		},
	}
}
