package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/Account-Link/reproducible-builds-playground/cmd"
)

func main() {
	app := &cli.Command{
		Name:  "compose-hash",
		Usage: "Deterministic app-compose hashing and deployment verification",
		Commands: []*cli.Command{
			cmd.HashCommand(),
			cmd.VerifyCommand(),
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}
