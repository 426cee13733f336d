// Package keyring persists the store's public parameters (Argon2id KDF
// settings, wrapped master key) and unwraps the master key from a
// supplied master password.
package keyring

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/kpvault/pm/layout"
	"github.com/kpvault/pm/vaultcrypto"
)

// ErrInvalidMasterPassword is returned by UnlockMasterKey when the
// wrapped master key fails to authenticate under the derived KEK. It is
// deliberately the only failure mode exposed: a caller must never be
// able to distinguish a corrupt config from a wrong password.
var ErrInvalidMasterPassword = errors.New("invalid master password")

// ErrStoreExists marks a store that is already initialized. No function
// in this package returns it; Exists reports the same condition as a
// bool.
var ErrStoreExists = errors.New("store already exists")

// KdfParams is the wire representation of vaultcrypto.KdfParams.
type KdfParams struct {
	Algo        string `json:"algo"`
	MemoryMiB   uint32 `json:"memory_mib"`
	Iterations  uint32 `json:"iterations"`
	Parallelism uint8  `json:"parallelism"`
	Salt        string `json:"salt"`
}

// EncConfig is the wire representation of the wrapped master key.
type EncConfig struct {
	Algo               string `json:"algo"`
	MasterKeyNonce     string `json:"master_key_nonce"`
	EncryptedMasterKey string `json:"encrypted_master_key"`
}

// Config is the on-disk config.json payload.
type Config struct {
	Version uint32    `json:"version"`
	Kdf     KdfParams `json:"kdf"`
	Enc     EncConfig `json:"enc"`
}

// GenerateNewConfig samples a fresh master key and KDF salt, wraps the
// master key under a KEK derived from masterPassword, and returns the
// assembled Config. It does not write anything to disk.
func GenerateNewConfig(masterPassword []byte) (Config, error) {
	params, err := vaultcrypto.DefaultKdfParams()
	if err != nil {
		return Config{}, err
	}

	var mk vaultcrypto.MasterKey
	copy(mk[:], vaultcrypto.Random(vaultcrypto.KeySize))
	defer mk.Wipe()

	kek := vaultcrypto.DeriveKEK(masterPassword, params)
	defer vaultcrypto.Wipe(kek[:])

	nonce, ct, err := vaultcrypto.Seal(kek, mk[:])
	if err != nil {
		return Config{}, fmt.Errorf("keyring: wrap master key: %w", err)
	}

	return Config{
		Version: 1,
		Kdf: KdfParams{
			Algo:        "argon2id",
			MemoryMiB:   params.MemoryMiB,
			Iterations:  params.Iterations,
			Parallelism: params.Parallelism,
			Salt:        base64.StdEncoding.EncodeToString(params.Salt),
		},
		Enc: EncConfig{
			Algo:               "xchacha20-poly1305",
			MasterKeyNonce:     base64.StdEncoding.EncodeToString(nonce),
			EncryptedMasterKey: base64.StdEncoding.EncodeToString(ct),
		},
	}, nil
}

// UnlockMasterKey derives the KEK from masterPassword using cfg.Kdf and
// opens the wrapped master key. Any authentication failure, whether
// wrong password or corrupt ciphertext, collapses to ErrInvalidMasterPassword.
func UnlockMasterKey(masterPassword []byte, cfg Config) (vaultcrypto.MasterKey, error) {
	var mk vaultcrypto.MasterKey

	salt, err := base64.StdEncoding.DecodeString(cfg.Kdf.Salt)
	if err != nil {
		return mk, ErrInvalidMasterPassword
	}
	nonce, err := base64.StdEncoding.DecodeString(cfg.Enc.MasterKeyNonce)
	if err != nil {
		return mk, ErrInvalidMasterPassword
	}
	ct, err := base64.StdEncoding.DecodeString(cfg.Enc.EncryptedMasterKey)
	if err != nil {
		return mk, ErrInvalidMasterPassword
	}

	params := vaultcrypto.KdfParams{
		MemoryMiB:   cfg.Kdf.MemoryMiB,
		Iterations:  cfg.Kdf.Iterations,
		Parallelism: cfg.Kdf.Parallelism,
		Salt:        salt,
	}
	kek := vaultcrypto.DeriveKEK(masterPassword, params)
	defer vaultcrypto.Wipe(kek[:])

	plain, err := vaultcrypto.Open(kek, nonce, ct)
	if err != nil {
		return mk, ErrInvalidMasterPassword
	}
	defer vaultcrypto.Wipe(plain)

	if len(plain) != vaultcrypto.KeySize {
		return mk, ErrInvalidMasterPassword
	}
	copy(mk[:], plain)
	return mk, nil
}

// Load reads and parses config.json from the store root.
func Load() (Config, error) {
	path, err := layout.ConfigPath()
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("keyring: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Save pretty-prints cfg to config.json, writing it atomically via a
// temp-file-then-rename so a crash mid-write can never leave a
// half-written config behind.
func Save(cfg Config) error {
	path, err := layout.ConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(pathDir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return writeFileAtomic(path, data, 0o600)
}

// Exists reports whether config.json is already present.
func Exists() (bool, error) {
	path, err := layout.ConfigPath()
	if err != nil {
		return false, err
	}
	_, err = os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}
