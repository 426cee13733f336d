package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/kpvault/pm/promptio"
	"github.com/kpvault/pm/records"
)

func cmdAdd() *cli.Command {
	return &cli.Command{
		Name:      "add",
		Usage:     "add a new entry at a logical path",
		ArgsUsage: "<path>",
		Action: func(ctx context.Context, c *cli.Command) error {
			a := mustApp(ctx)
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("usage: pm add <path>")
			}

			mk, err := unlock()
			if err != nil {
				return err
			}

			var username, password, url, notes string
			if isTTY(os.Stdout) && isTTY(os.Stdin) {
				username, password, url, notes, err = runAddForm()
				if err != nil {
					return err
				}
			} else {
				term := promptio.NewTerminal()
				username, err = term.Line("username: ")
				if err != nil {
					return err
				}
				pw, err := term.Hidden("password: ")
				if err != nil {
					return err
				}
				password = string(pw)
				url, err = term.Line("url: ")
				if err != nil {
					return err
				}
				notes, err = term.Line("notes: ")
				if err != nil {
					return err
				}
			}

			if password == "" {
				return fmt.Errorf("password must not be empty")
			}

			now := time.Now().UTC().Format(time.RFC3339)
			entry := records.Entry{
				Version:   1,
				Title:     path,
				Username:  username,
				Password:  password,
				URL:       url,
				Notes:     notes,
				CreatedAt: now,
				UpdatedAt: now,
			}

			if err := records.SaveEntry(path, entry, mk); err != nil {
				return err
			}
			a.Log.Info("entry added", "path", path)
			fmt.Printf("added %s\n", path)
			return nil
		},
	}
}
