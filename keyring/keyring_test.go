package keyring

import "testing"

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := GenerateNewConfig([]byte("hunter2"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if err := Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}

	exists, err := Exists()
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if !exists {
		t.Fatalf("expected config to exist after save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Enc.EncryptedMasterKey != cfg.Enc.EncryptedMasterKey {
		t.Fatalf("loaded config does not match saved config")
	}
}

func TestGenerateAndUnlockRoundTrip(t *testing.T) {
	cfg, err := GenerateNewConfig([]byte("hunter2"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	mk1, err := UnlockMasterKey([]byte("hunter2"), cfg)
	if err != nil {
		t.Fatalf("unlock: %v", err)
	}
	mk2, err := UnlockMasterKey([]byte("hunter2"), cfg)
	if err != nil {
		t.Fatalf("unlock again: %v", err)
	}
	if mk1 != mk2 {
		t.Fatalf("unlocking twice with the same password produced different keys")
	}
}

func TestUnlockWrongPasswordFails(t *testing.T) {
	cfg, err := GenerateNewConfig([]byte("A"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if _, err := UnlockMasterKey([]byte("B"), cfg); err != ErrInvalidMasterPassword {
		t.Fatalf("unlock with wrong password: got %v, want ErrInvalidMasterPassword", err)
	}
}

func TestUnlockCorruptConfigFails(t *testing.T) {
	cfg, err := GenerateNewConfig([]byte("hunter2"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	cfg.Enc.EncryptedMasterKey = "not-base64!!"
	if _, err := UnlockMasterKey([]byte("hunter2"), cfg); err != ErrInvalidMasterPassword {
		t.Fatalf("unlock with corrupt config: got %v, want ErrInvalidMasterPassword", err)
	}
}

func TestGeneratedConfigShape(t *testing.T) {
	cfg, err := GenerateNewConfig([]byte("x"))
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if cfg.Version != 1 {
		t.Errorf("version = %d, want 1", cfg.Version)
	}
	if cfg.Kdf.Algo != "argon2id" {
		t.Errorf("kdf algo = %q, want argon2id", cfg.Kdf.Algo)
	}
	if cfg.Enc.Algo != "xchacha20-poly1305" {
		t.Errorf("enc algo = %q, want xchacha20-poly1305", cfg.Enc.Algo)
	}
}
