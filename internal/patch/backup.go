package patch

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/afero"

	"termsetup/internal/logger"
)

// backupStampFormat is sortable, second-resolution, and contains no
// characters that are unsafe in filenames on any supported OS.
const backupStampFormat = "20060102-150405"

// now is swapped out by tests that need a fixed clock.
var now = time.Now

// BackupFile copies path to path + ".bak-" + timestamp and returns the
// backup path. Backups are taken before any mutation and are never deleted
// by this tool; repeated runs simply accumulate them. Two backups within
// the same clock second get distinct numeric suffixes rather than the
// second overwriting the first.
func BackupFile(fs afero.Fs, path string) (string, error) {
	stamped := fmt.Sprintf("%s.bak-%s", path, now().Format(backupStampFormat))
	backupPath := stamped
	for i := 1; ; i++ {
		exists, err := afero.Exists(fs, backupPath)
		if err != nil {
			return "", fmt.Errorf("stat backup %s: %w", backupPath, err)
		}
		if !exists {
			break
		}
		backupPath = fmt.Sprintf("%s.%d", stamped, i)
	}

	in, err := fs.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s for backup: %w", path, err)
	}
	defer func() {
		if cerr := in.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close %s after backup: %v\n", path, cerr)
		}
	}()

	out, err := fs.Create(backupPath)
	if err != nil {
		return "", fmt.Errorf("create backup %s: %w", backupPath, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return "", fmt.Errorf("write backup %s: %w", backupPath, err)
	}
	if err := out.Close(); err != nil {
		return "", fmt.Errorf("close backup %s: %w", backupPath, err)
	}

	logger.Debug("[DEBUG] Backed up %s to %s\n", path, backupPath)
	return backupPath, nil
}
