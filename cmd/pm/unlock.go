package main

import (
	"fmt"

	"github.com/kpvault/pm/keyring"
	"github.com/kpvault/pm/promptio"
	"github.com/kpvault/pm/session"
	"github.com/kpvault/pm/vaultcrypto"
)

// unlock loads config.json and returns the current master key, using
// the session cache when possible and otherwise prompting interactively.
func unlock() (vaultcrypto.MasterKey, error) {
	cfg, err := keyring.Load()
	if err != nil {
		return vaultcrypto.MasterKey{}, fmt.Errorf("no store found, run 'pm init' first: %w", err)
	}
	return session.GetMasterKey(cfg, promptio.NewTerminal())
}
