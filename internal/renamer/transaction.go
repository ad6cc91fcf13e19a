package renamer

import (
	"io"
	"os"

	"github.com/stedavkle/fish-renamer/internal/errors"
)

const backupSuffix = ".bak"

// renameWithBackup renames a file crash-safely: copy the source to a
// sibling backup, rename, then delete the backup. If anything fails and
// the original is gone, the backup is moved back into place. The batch
// as a whole is not transactional; only each individual rename is.
func renameWithBackup(oldPath, newPath string) error {
	backupPath := oldPath + backupSuffix

	if err := copyFile(oldPath, backupPath); err != nil {
		return errors.New(err).
			Component("renamer").
			Category(errors.CategoryFileIO).
			Context("stage", "backup").
			Build()
	}

	if err := os.Rename(oldPath, newPath); err != nil {
		restoreBackup(oldPath, backupPath)
		return errors.New(err).
			Component("renamer").
			Category(errors.CategoryFileIO).
			Context("stage", "rename").
			Build()
	}

	if err := os.Remove(backupPath); err != nil {
		// The rename itself succeeded; a leftover backup is harmless.
		return nil
	}
	return nil
}

// restoreBackup puts the backup back as the original, but only if the
// original is actually missing.
func restoreBackup(oldPath, backupPath string) {
	if _, err := os.Stat(oldPath); err == nil {
		os.Remove(backupPath)
		return
	}
	_ = os.Rename(backupPath, oldPath)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(dst)
		return err
	}
	return out.Close()
}
