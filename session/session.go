// Package session caches the unwrapped master key across invocations,
// bounded by a short TTL, so routine commands don't re-prompt for the
// master password every time.
package session

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kpvault/pm/keyring"
	"github.com/kpvault/pm/layout"
	"github.com/kpvault/pm/promptio"
	"github.com/kpvault/pm/vaultcrypto"
)

// TTL is how long a cached master key remains valid after a successful
// unlock.
const TTL = 300 * time.Second

const sessionFileName = "pm-session.json"

// file is the on-disk session cache payload.
type file struct {
	MasterKey string `json:"master_key"`
	ExpiresAt int64  `json:"expires_at"`
}

// path resolves the session file location: $XDG_RUNTIME_DIR/pm-session.json
// when set, else StoreRoot/session.json.
func path() (string, error) {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, sessionFileName), nil
	}
	root, err := layout.StoreRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "session.json"), nil
}

// GetMasterKey returns the currently-unlocked master key, reusing a
// still-valid cached copy when present and otherwise prompting through
// prompter and unlocking cfg. The cache is best-effort: any failure to
// read, parse, write, or chmod the session file is non-fatal.
func GetMasterKey(cfg keyring.Config, prompter promptio.Prompter) (vaultcrypto.MasterKey, error) {
	if mk, ok := readCached(); ok {
		return mk, nil
	}

	password, err := prompter.Hidden("Master password: ")
	if err != nil {
		return vaultcrypto.MasterKey{}, fmt.Errorf("session: read master password: %w", err)
	}
	defer vaultcrypto.Wipe(password)

	mk, err := keyring.UnlockMasterKey(password, cfg)
	if err != nil {
		return vaultcrypto.MasterKey{}, err
	}

	writeCache(mk)
	return mk, nil
}

// readCached implements steps 1-3: absent/unreadable file -> miss,
// expired file -> best-effort delete and miss, corrupt file -> miss,
// valid file -> hit.
func readCached() (vaultcrypto.MasterKey, bool) {
	var mk vaultcrypto.MasterKey

	p, err := path()
	if err != nil {
		return mk, false
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return mk, false
	}

	var f file
	if err := json.Unmarshal(data, &f); err != nil {
		return mk, false
	}

	now := time.Now().Unix()
	if now > f.ExpiresAt {
		_ = os.Remove(p)
		return mk, false
	}

	raw, err := base64.StdEncoding.DecodeString(f.MasterKey)
	if err != nil || len(raw) != vaultcrypto.KeySize {
		return mk, false
	}
	copy(mk[:], raw)
	return mk, true
}

// writeCache implements step 5. Errors are swallowed: a cache miss on
// the next invocation is the only consequence.
func writeCache(mk vaultcrypto.MasterKey) {
	p, err := path()
	if err != nil {
		return
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o700); err != nil {
		return
	}

	f := file{
		MasterKey: base64.StdEncoding.EncodeToString(mk[:]),
		ExpiresAt: time.Now().Add(TTL).Unix(),
	}
	data, err := json.Marshal(f)
	if err != nil {
		return
	}
	if err := os.WriteFile(p, data, 0o600); err != nil {
		return
	}
	_ = os.Chmod(p, 0o600)
}
