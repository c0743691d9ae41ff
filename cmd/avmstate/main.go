package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "avmstate",
		Usage: "Inspect serialized machine-state buffers",
		Commands: []*cli.Command{
			&LedgerCmd,
			&ReasonCmd,
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
