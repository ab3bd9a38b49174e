package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/suar-net/iberbanco-go/internal/model"
)

func loginCmd() *cobra.Command {
	var password string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Open a session and print its token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if password == "" {
				password = os.Getenv("IBERBANCO_PASSWORD")
			}
			if password == "" {
				return errors.New("password is required (--password or $IBERBANCO_PASSWORD)")
			}

			env, err := api.Authenticate(cmd.Context(), api.Config().Username, password)
			if err != nil {
				return err
			}
			var login model.LoginResponse
			if err := env.Decode(&login); err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), login)
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "agent password (default $IBERBANCO_PASSWORD)")
	return cmd
}
