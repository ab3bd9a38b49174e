// Package commands is the iberbanco command line: a thin shell over the
// client library for trying credentials and endpoints by hand.
package commands

import (
	"encoding/json"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/suar-net/iberbanco-go/internal/client"
)

var (
	debug  bool
	token  string
	logger *zap.Logger
	api    *client.Client
)

func Execute() error {
	return newRoot().Execute()
}

func newRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "iberbanco",
		Short:         "Call the Iberbanco platform from the shell",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			logger = zap.NewNop()
			if debug {
				l, err := zap.NewDevelopment()
				if err != nil {
					return err
				}
				logger = l
			}

			c, err := client.FromEnvironment(client.WithLogger(logger))
			if err != nil {
				return err
			}
			if debug {
				c.EnableDebug()
			}
			if token == "" {
				token = os.Getenv("IBERBANCO_TOKEN")
			}
			if token != "" {
				c.SetAuthToken(token)
			}
			api = c
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			_ = logger.Sync()
			if api != nil {
				return api.Close()
			}
			return nil
		},
	}

	root.PersistentFlags().BoolVar(&debug, "debug", false, "log requests and responses")
	root.PersistentFlags().StringVar(&token, "token", "", "session token (default $IBERBANCO_TOKEN)")

	root.AddCommand(
		loginCmd(),
		signCmd(),
		rateCmd(),
		usersCmd(),
		exportCmd(),
		historyCmd(),
		versionCmd(),
	)
	return root
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
