package session

import (
	"encoding/base64"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kpvault/pm/keyring"
	"github.com/kpvault/pm/vaultcrypto"
)

type fakePrompter struct {
	hidden []byte
	calls  int
}

func (f *fakePrompter) Line(label string) (string, error) { return "", nil }

func (f *fakePrompter) Hidden(label string) ([]byte, error) {
	f.calls++
	cp := make([]byte, len(f.hidden))
	copy(cp, f.hidden)
	return cp, nil
}

func setupEnv(t *testing.T) (runtimeDir string) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	runtimeDir = t.TempDir()
	t.Setenv("XDG_RUNTIME_DIR", runtimeDir)
	return runtimeDir
}

func TestGetMasterKeyPromptsThenCaches(t *testing.T) {
	setupEnv(t)
	cfg, err := keyring.GenerateNewConfig([]byte("correct horse"))
	if err != nil {
		t.Fatalf("generate config: %v", err)
	}

	prompter := &fakePrompter{hidden: []byte("correct horse")}

	mk1, err := GetMasterKey(cfg, prompter)
	if err != nil {
		t.Fatalf("first unlock: %v", err)
	}
	if prompter.calls != 1 {
		t.Fatalf("expected one prompt, got %d", prompter.calls)
	}

	mk2, err := GetMasterKey(cfg, prompter)
	if err != nil {
		t.Fatalf("second unlock: %v", err)
	}
	if prompter.calls != 1 {
		t.Fatalf("expected cache hit to avoid re-prompting, got %d calls", prompter.calls)
	}
	if mk1 != mk2 {
		t.Fatalf("cached master key does not match original")
	}
}

func TestExpiredSessionIsDeletedAndReprompts(t *testing.T) {
	runtimeDir := setupEnv(t)
	cfg, err := keyring.GenerateNewConfig([]byte("hunter2"))
	if err != nil {
		t.Fatalf("generate config: %v", err)
	}

	var mk vaultcrypto.MasterKey
	copy(mk[:], vaultcrypto.Random(vaultcrypto.KeySize))
	expired := file{
		MasterKey: base64.StdEncoding.EncodeToString(mk[:]),
		ExpiresAt: time.Now().Add(-time.Hour).Unix(),
	}
	data, err := json.Marshal(expired)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	sessionPath := filepath.Join(runtimeDir, sessionFileName)
	if err := os.WriteFile(sessionPath, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	prompter := &fakePrompter{hidden: []byte("hunter2")}
	if _, err := GetMasterKey(cfg, prompter); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if prompter.calls != 1 {
		t.Fatalf("expected expired cache to force a prompt, got %d calls", prompter.calls)
	}
	if _, err := os.Stat(sessionPath); err != nil {
		t.Fatalf("expected a fresh session file to replace the expired one: %v", err)
	}
}

func TestCorruptSessionFileIsIgnored(t *testing.T) {
	runtimeDir := setupEnv(t)
	cfg, err := keyring.GenerateNewConfig([]byte("hunter2"))
	if err != nil {
		t.Fatalf("generate config: %v", err)
	}

	sessionPath := filepath.Join(runtimeDir, sessionFileName)
	if err := os.WriteFile(sessionPath, []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	prompter := &fakePrompter{hidden: []byte("hunter2")}
	if _, err := GetMasterKey(cfg, prompter); err != nil {
		t.Fatalf("unlock: %v", err)
	}
	if prompter.calls != 1 {
		t.Fatalf("expected corrupt cache to force a prompt, got %d calls", prompter.calls)
	}
}

func TestWrongPasswordDoesNotCache(t *testing.T) {
	runtimeDir := setupEnv(t)
	cfg, err := keyring.GenerateNewConfig([]byte("right"))
	if err != nil {
		t.Fatalf("generate config: %v", err)
	}

	prompter := &fakePrompter{hidden: []byte("wrong")}
	if _, err := GetMasterKey(cfg, prompter); err == nil {
		t.Fatalf("expected wrong password to fail")
	}

	sessionPath := filepath.Join(runtimeDir, sessionFileName)
	if _, err := os.Stat(sessionPath); !os.IsNotExist(err) {
		t.Fatalf("expected no session file after failed unlock, stat err=%v", err)
	}
}
