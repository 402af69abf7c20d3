package workflow

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// BackupName returns path with ".old" appended, adding ".1", ".2", ...
// until the name is unused. Existing backups are never overwritten.
func BackupName(path string) string {
	candidate := path + ".old"
	for i := 1; ; i++ {
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
		candidate = fmt.Sprintf("%s.old.%d", path, i)
	}
}

// CopyTree recursively copies the directory src to dst, which must not
// exist yet. File modes are preserved; names in skip are left out of the
// top level (the payload manifest stays with the payload).
func CopyTree(src, dst string, skip ...string) error {
	skipNames := make(map[string]bool, len(skip))
	for _, name := range skip {
		skipNames[name] = true
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(dst, srcInfo.Mode().Perm()); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if skipNames[entry.Name()] {
			continue
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := CopyTree(srcPath, dstPath); err != nil {
				return err
			}
			continue
		}

		if err := copyFile(srcPath, dstPath); err != nil {
			return err
		}
	}

	return nil
}

func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// Touch sets the mtime and atime of path to now, creating the file if it
// does not exist
func Touch(path string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	now := time.Now()
	return os.Chtimes(path, now, now)
}
