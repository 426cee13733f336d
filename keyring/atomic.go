package keyring

import (
	"os"
	"path/filepath"
)

// writeFileAtomic writes data to a temp file in path's directory, syncs
// it, and renames it into place so a crash mid-write can never leave a
// half-written file behind.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_TRUNC|os.O_SYNC, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}

func pathDir(path string) string {
	return filepath.Dir(path)
}
