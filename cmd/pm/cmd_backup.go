package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/kpvault/pm/backup"
)

func cmdBackup() *cli.Command {
	return &cli.Command{
		Name:  "backup",
		Usage: "archive the store",
		Commands: []*cli.Command{
			{
				Name:      "create",
				Usage:     "create a backup archive",
				ArgsUsage: "[file]",
				Action: func(ctx context.Context, c *cli.Command) error {
					a := mustApp(ctx)
					path, err := backup.CreateBackup(c.Args().First())
					if err != nil {
						return err
					}
					a.Log.Info("backup created", "path", path)
					fmt.Printf("backup written to %s\n", path)
					return nil
				},
			},
		},
	}
}
