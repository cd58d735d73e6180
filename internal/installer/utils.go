package installer

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"termsetup/internal/logger"
)

// httpGet is swapped out by tests that stub release downloads.
var httpGet = http.Get

// downloadFile downloads the content at url to destPath on the real
// filesystem. Release archives are always staged in a temp dir before
// extraction, so this never goes through the injected fs.
func downloadFile(url, destPath string) error {
	resp, err := httpGet(url)
	if err != nil {
		return fmt.Errorf("failed to GET %s: %w", url, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != 200 {
		return fmt.Errorf("download %s: HTTP status %d", url, resp.StatusCode)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = out.Close()
		return fmt.Errorf("failed to write response to file: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", destPath, err)
	}

	logger.Debug("[DEBUG] Downloaded %s to %s\n", url, destPath)
	return nil
}

// copyFile copies a file from src to dst on fs, creating missing parent
// directories. The copy is verbatim; permissions are fixed at 0644 since
// everything copied here is a data file.
func copyFile(fs afero.Fs, src, dst string) error {
	in, err := fs.Open(src)
	if err != nil {
		return fmt.Errorf("open source failed: %w", err)
	}
	defer in.Close()

	if err := fs.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fmt.Errorf("mkdir failed: %w", err)
	}

	out, err := fs.Create(dst)
	if err != nil {
		return fmt.Errorf("create target failed: %w", err)
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy failed: %w", err)
	}
	return out.Close()
}
