package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/kpvault/pm/logging"
)

func cmdLogs() *cli.Command {
	return &cli.Command{
		Name:  "logs",
		Usage: "inspect the active log file",
		Commands: []*cli.Command{
			{
				Name:  "path",
				Usage: "print the path of the active log file",
				Action: func(ctx context.Context, c *cli.Command) error {
					path := logging.CurrentFile()
					if path == "" {
						fmt.Println("no log file configured, set PM_LOG_FILE to enable one")
						return nil
					}
					fmt.Println(path)
					return nil
				},
			},
			{
				Name:      "tail",
				Usage:     "print the last N lines of the active log file",
				ArgsUsage: "[n]",
				Action: func(ctx context.Context, c *cli.Command) error {
					path := logging.CurrentFile()
					if path == "" {
						fmt.Println("no log file configured, set PM_LOG_FILE to enable one")
						return nil
					}

					n := 100
					if arg := c.Args().First(); arg != "" {
						v, err := strconv.Atoi(arg)
						if err != nil {
							return fmt.Errorf("invalid line count %q: %w", arg, err)
						}
						n = v
					}

					lines, err := logging.TailLastLines(path, n)
					if err != nil {
						return err
					}
					for _, line := range lines {
						fmt.Println(line)
					}
					return nil
				},
			},
		},
	}
}
