// Package backup archives the store into a single zip or tar.gz file,
// chosen by the requested filename's extension.
package backup

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"

	"github.com/kpvault/pm/layout"
)

const tarPrefix = "pm-store"

// CreateBackup packs StoreRoot into a single archive and returns the
// path it was written to. When filename is empty, the output is
// "backup_<rfc3339-utc-with-colons-dashed>.zip". A filename without a
// recognized archive extension (.zip, .tar.gz, .tgz, .gz) gets ".tar.gz"
// appended; one that already carries a recognized extension is used
// verbatim. The ".zip" extension selects a Deflate zip archive; every
// other recognized extension selects a gzip-compressed tar.
func CreateBackup(filename string) (string, error) {
	root, err := layout.StoreRoot()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(root); err != nil {
		return "", fmt.Errorf("backup: store root %s: %w", root, err)
	}

	out := resolveFilename(filename)
	if strings.EqualFold(filepath.Ext(out), ".zip") {
		if err := writeZip(root, out); err != nil {
			return "", err
		}
		return out, nil
	}
	if err := writeTarGz(root, out); err != nil {
		return "", err
	}
	return out, nil
}

func resolveFilename(filename string) string {
	if filename == "" {
		ts := strings.ReplaceAll(time.Now().UTC().Format(time.RFC3339), ":", "-")
		return fmt.Sprintf("backup_%s.zip", ts)
	}
	if hasRecognizedExt(filename) {
		return filename
	}
	return filename + ".tar.gz"
}

func hasRecognizedExt(name string) bool {
	lower := strings.ToLower(name)
	for _, ext := range []string{".tar.gz", ".tgz", ".gz", ".zip"} {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// writeZip packs every regular file under root, relative to root, into
// a Deflate zip archive. Deflate is registered against
// klauspost/compress/flate instead of the standard library's, matching
// the rest of this module's choice of that compression stack.
func writeZip(root, dest string) error {
	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	success := false
	defer func() {
		if !success {
			out.Close()
			os.Remove(tmp)
		}
	}()

	zw := zip.NewWriter(out)
	zw.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.DefaultCompression)
	})

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:   filepath.ToSlash(rel),
			Method: zip.Deflate,
		})
		if err != nil {
			return err
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if err != nil {
		zw.Close()
		return fmt.Errorf("backup: zip %s: %w", root, err)
	}
	if err := zw.Close(); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		return err
	}
	success = true
	return nil
}

// writeTarGz packs root under the prefix "pm-store/" into a gzip tar,
// using klauspost/compress/gzip as a source-compatible drop-in for the
// standard library's.
func writeTarGz(root, dest string) error {
	tmp := dest + ".tmp"
	out, err := os.Create(tmp)
	if err != nil {
		return err
	}
	success := false
	defer func() {
		if !success {
			out.Close()
			os.Remove(tmp)
		}
	}()

	gw := gzip.NewWriter(out)
	tw := tar.NewWriter(gw)

	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		name := filepath.ToSlash(filepath.Join(tarPrefix, rel))

		info, err := d.Info()
		if err != nil {
			return err
		}
		if d.IsDir() {
			if rel == "." {
				return nil
			}
			hdr, err := tar.FileInfoHeader(info, "")
			if err != nil {
				return err
			}
			hdr.Name = name + "/"
			return tw.WriteHeader(hdr)
		}

		hdr, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		hdr.Name = name
		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		f, err := os.Open(p)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if err != nil {
		tw.Close()
		gw.Close()
		return fmt.Errorf("backup: tar %s: %w", root, err)
	}
	if err := tw.Close(); err != nil {
		return err
	}
	if err := gw.Close(); err != nil {
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		return err
	}
	success = true
	return nil
}
