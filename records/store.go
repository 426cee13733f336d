package records

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/samber/lo"

	"github.com/kpvault/pm/layout"
	"github.com/kpvault/pm/vaultcrypto"
)

// ErrNotFound is returned by LoadEntry when no file backs the requested
// logical path.
var ErrNotFound = errors.New("records: entry not found")

// ErrCorrupt is returned by LoadEntry when the on-disk record fails to
// parse as JSON, fails base64 decoding, or decrypts to a payload that
// is not valid JSON.
var ErrCorrupt = errors.New("records: corrupt entry file")

// encryptedRecordFile is the on-disk wire format for a single record
// file.
type encryptedRecordFile struct {
	Version    int    `json:"version"`
	Nonce      string `json:"nonce"`
	Ciphertext string `json:"ciphertext"`
}

// SaveEntry serializes entry to canonical JSON, seals it under mk, and
// writes the EncryptedRecordFile to the path logicalPath maps to. An
// existing file at that path is overwritten. The write is atomic
// (temp-file-then-rename).
func SaveEntry(logicalPath string, entry Entry, mk vaultcrypto.MasterKey) error {
	if err := layout.EnsureStoreDirs(logicalPath); err != nil {
		return err
	}
	file, err := layout.EntryFilePath(logicalPath)
	if err != nil {
		return err
	}

	plaintext, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("records: marshal entry: %w", err)
	}

	nonce, ct, err := vaultcrypto.Seal(mk, plaintext)
	if err != nil {
		return fmt.Errorf("records: seal entry: %w", err)
	}

	rec := encryptedRecordFile{
		Version:    1,
		Nonce:      base64.StdEncoding.EncodeToString(nonce),
		Ciphertext: base64.StdEncoding.EncodeToString(ct),
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("records: marshal record file: %w", err)
	}

	return writeFileAtomic(file, data, 0o600)
}

// LoadEntry reads, authenticates, and decodes the entry at logicalPath.
func LoadEntry(logicalPath string, mk vaultcrypto.MasterKey) (Entry, error) {
	file, err := layout.EntryFilePath(logicalPath)
	if err != nil {
		return Entry{}, err
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if os.IsNotExist(err) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, fmt.Errorf("records: read %s: %w", file, err)
	}

	var rec encryptedRecordFile
	if err := json.Unmarshal(data, &rec); err != nil {
		return Entry{}, fmt.Errorf("%w: %s: %v", ErrCorrupt, file, err)
	}

	nonce, err := base64.StdEncoding.DecodeString(rec.Nonce)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %s: bad nonce encoding", ErrCorrupt, file)
	}
	ct, err := base64.StdEncoding.DecodeString(rec.Ciphertext)
	if err != nil {
		return Entry{}, fmt.Errorf("%w: %s: bad ciphertext encoding", ErrCorrupt, file)
	}

	plaintext, err := vaultcrypto.Open(mk, nonce, ct)
	if err != nil {
		return Entry{}, vaultcrypto.ErrAuthFailed
	}

	var entry Entry
	if err := json.Unmarshal(plaintext, &entry); err != nil {
		return Entry{}, fmt.Errorf("%w: %s: decrypted payload is not valid JSON", ErrCorrupt, file)
	}
	return entry, nil
}

// ListEntries walks store/ and returns the logical path of every .enc
// file, extension stripped, separators normalized to "/", in
// lexicographic order. Hidden files and non-.enc files are ignored.
func ListEntries() ([]string, error) {
	dir, err := layout.StoreDir()
	if err != nil {
		return nil, err
	}

	var paths []string
	err = filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if os.IsNotExist(err) {
				return nil
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		if strings.HasPrefix(name, ".") {
			return nil
		}
		if filepath.Ext(name) != ".enc" {
			return nil
		}
		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		rel = strings.TrimSuffix(rel, ".enc")
		paths = append(paths, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(paths)
	return paths, nil
}

// FilterByPrefix keeps only the logical paths equal to prefix or nested
// under prefix + "/". A plain substring match on prefix is not enough:
// prefix "a" over {a, a/b, ab} must exclude "ab".
func FilterByPrefix(paths []string, prefix string) []string {
	if prefix == "" {
		return paths
	}
	return lo.Filter(paths, func(p string, _ int) bool {
		return p == prefix || strings.HasPrefix(p, prefix+"/")
	})
}
