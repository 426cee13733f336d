package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/kpvault/pm/clipboard"
	"github.com/kpvault/pm/records"
)

func cmdClip() *cli.Command {
	return &cli.Command{
		Name:      "clip",
		Usage:     "copy an entry field to the clipboard",
		ArgsUsage: "<path>",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "field", Value: "password", Usage: "one of password, username, url"},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			a := mustApp(ctx)
			path := c.Args().First()
			if path == "" {
				return fmt.Errorf("usage: pm clip <path>")
			}

			mk, err := unlock()
			if err != nil {
				return err
			}
			entry, err := records.LoadEntry(path, mk)
			if err != nil {
				return err
			}

			var value string
			switch c.String("field") {
			case "password":
				value = entry.Password
			case "username":
				value = entry.Username
			case "url":
				value = entry.URL
			default:
				return fmt.Errorf("unknown field %q", c.String("field"))
			}

			if err := clipboard.Copy(value); err != nil {
				return err
			}
			a.Log.Info("copied to clipboard", "path", path, "field", c.String("field"))
			fmt.Println("copied to clipboard")
			return nil
		},
	}
}
