package installer

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"termsetup/internal/logger"
	"termsetup/internal/paths"
)

// executablePath is swapped out by tests; os.Executable needs a real
// binary on disk.
var executablePath = os.Executable

// ResolveAsset turns the optional CLI asset argument into an existing
// file path. Lookup order: the argument as given (or defaultName when the
// argument is empty), then the same filename next to the termsetup
// executable. Nothing found is ErrAssetNotFound.
func ResolveAsset(fs afero.Fs, arg, defaultName string) (string, error) {
	name := arg
	if name == "" {
		name = defaultName
	}

	if ok, _ := afero.Exists(fs, name); ok {
		return name, nil
	}

	if exe, err := executablePath(); err == nil {
		beside := filepath.Join(filepath.Dir(exe), filepath.Base(name))
		if ok, _ := afero.Exists(fs, beside); ok {
			logger.Debug("[DEBUG] Resolved theme asset beside executable: %s\n", beside)
			return beside, nil
		}
	}

	return "", fmt.Errorf("%s: %w", name, ErrAssetNotFound)
}

// CopyAsset copies the theme asset verbatim into the provider's themes
// directory and returns the installed path. An already-present
// destination is skipped unless overwrite is set.
func CopyAsset(p paths.Provider, src string, overwrite bool) (string, error) {
	dst := filepath.Join(p.ThemesDir(), filepath.Base(src))

	if ok, _ := afero.Exists(p.Fs(), dst); ok && !overwrite {
		logger.Info("[INFO] Theme %s already present. Skipping copy (use --overwrite to replace).\n", dst)
		return dst, nil
	}

	if err := copyFile(p.Fs(), src, dst); err != nil {
		return "", fmt.Errorf("copy theme asset to %s: %w", dst, err)
	}
	logger.Info("[INFO] Copied theme asset to %s\n", dst)
	return dst, nil
}
