package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/kpvault/pm/records"
)

func cmdShow() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "show an entry",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "password-only", Usage: "print only the password"},
			&cli.BoolFlag{Name: "json", Usage: "force JSON output"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("usage: pm show <path>")
			}

			mk, err := unlock()
			if err != nil {
				return err
			}
			entry, err := records.LoadEntry(path, mk)
			if err != nil {
				return err
			}

			if c.Bool("password-only") {
				fmt.Println(entry.Password)
				return nil
			}

			if c.Bool("json") || !isTTY(os.Stdout) {
				return json.NewEncoder(os.Stdout).Encode(entry)
			}

			fields := map[string]string{
				"title":    entry.Title,
				"username": entry.Username,
				"password": entry.Password,
				"url":      entry.URL,
				"notes":    entry.Notes,
			}
			order := []string{"title", "username", "password", "url", "notes"}
			fmt.Print(renderFields(fields, order))
			return nil
		},
	}
}
