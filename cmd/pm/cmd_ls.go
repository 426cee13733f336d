package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kpvault/pm/records"
)

func cmdLs() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     "list entries, optionally filtered by prefix",
		ArgsUsage: "[prefix]",
		Action: func(ctx context.Context, c *cli.Command) error {
			paths, err := records.ListEntries()
			if err != nil {
				return err
			}
			if prefix := c.Args().First(); prefix != "" {
				paths = records.FilterByPrefix(paths, prefix)
			}

			if !isTTY(os.Stdout) {
				return json.NewEncoder(os.Stdout).Encode(paths)
			}
			os.Stdout.WriteString(renderList(paths))
			return nil
		},
	}
}
