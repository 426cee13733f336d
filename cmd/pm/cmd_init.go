package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/kpvault/pm/keyring"
	"github.com/kpvault/pm/layout"
	"github.com/kpvault/pm/promptio"
	"github.com/kpvault/pm/vaultcrypto"
)

func cmdInit() *cli.Command {
	return &cli.Command{
		Name:  "init",
		Usage: "create a new store and set its master password",
		Action: func(ctx context.Context, c *cli.Command) error {
			a := mustApp(ctx)

			exists, err := keyring.Exists()
			if err != nil {
				return err
			}
			if exists {
				root, rootErr := layout.StoreRoot()
				if rootErr != nil {
					root = "<unknown>"
				}
				fmt.Printf("store already exists at: %s\n", root)
				return nil
			}

			term := promptio.NewTerminal()
			pw1, err := term.Hidden("New master password: ")
			if err != nil {
				return err
			}
			defer vaultcrypto.Wipe(pw1)
			pw2, err := term.Hidden("Confirm master password: ")
			if err != nil {
				return err
			}
			defer vaultcrypto.Wipe(pw2)

			if string(pw1) != string(pw2) {
				return fmt.Errorf("passwords do not match")
			}
			if len(pw1) == 0 {
				return fmt.Errorf("master password must not be empty")
			}

			cfg, err := keyring.GenerateNewConfig(pw1)
			if err != nil {
				return err
			}
			if err := keyring.Save(cfg); err != nil {
				return err
			}

			a.Log.Info("store initialized")
			fmt.Println("store initialized")
			return nil
		},
	}
}
