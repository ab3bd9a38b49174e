package main

import (
	"os"

	"github.com/suar-net/iberbanco-go/cmd/iberbanco/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
