package patch

import (
	"bufio"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/spf13/afero"

	"termsetup/internal/logger"
)

// PatchInitLine ensures path contains exactly one line matching pattern:
// every prior matching line is removed and newLine is appended at the end,
// with all non-matching lines preserved in their original order. The file
// is created (with directory scaffolding) when absent; when it already
// exists a timestamped backup is taken before the rewrite.
//
// The pattern is deliberately loose (e.g. just the tool invocation
// signature) so that repeated runs with different arguments still converge
// to a single init line. Running twice with the same newLine leaves the
// content unchanged beyond one more backup.
func PatchInitLine(fs afero.Fs, path, pattern, newLine string) (string, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return "", fmt.Errorf("invalid init line pattern %q: %w", pattern, err)
	}

	// Directory scaffolding only; the file itself is created by the write.
	if dir := filepath.Dir(path); dir != "." {
		if err := fs.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create profile directory %s: %w", dir, err)
		}
	}

	exists, err := afero.Exists(fs, path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}

	// Read existing lines, dropping every previous init line.
	var kept []string
	removed := 0
	if exists {
		if _, err := BackupFile(fs, path); err != nil {
			return "", err
		}

		f, err := fs.Open(path)
		if err != nil {
			return "", fmt.Errorf("open %s: %w", path, err)
		}
		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			line := scanner.Text()
			if re.MatchString(line) {
				logger.Debug("[DEBUG] Dropping existing init line: %s\n", line)
				removed++
				continue
			}
			kept = append(kept, line)
		}
		scanErr := scanner.Err()
		_ = f.Close()
		if scanErr != nil {
			return "", fmt.Errorf("read %s: %w", path, scanErr)
		}
	}

	kept = append(kept, newLine)

	// Whole-file overwrite, UTF-8, no BOM.
	content := strings.Join(kept, "\n") + "\n"
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if removed > 0 {
		logger.Info("[INFO] Replaced %d existing init line(s) in %s\n", removed, path)
	} else {
		logger.Info("[INFO] Added init line to %s\n", path)
	}
	return path, nil
}
