package installer

import (
	"fmt"

	"termsetup/internal/config"
	"termsetup/internal/logger"
)

// InstallTool makes tool.Command available on PATH, trying each install
// strategy in order until the probe confirms it. Presence is decided by
// probing after each attempt, never by the package manager's exit code
// alone. Returns the resolved path and the name of the strategy that got
// it there ("" when the tool was already present).
func InstallTool(tool config.Tool, r Runner) (string, string, error) {
	if path, err := r.LookPath(tool.Command); err == nil {
		logger.Info("[INFO] %s already present at %s. Skipping install.\n", tool.Name, path)
		return path, "", nil
	}

	for _, s := range tool.Strategies {
		if _, err := r.LookPath(s.Command); err != nil {
			logger.Debug("[DEBUG] Package manager %s not available, skipping strategy\n", s.Command)
			continue
		}

		logger.Info("[INFO] Installing %s via %s...\n", tool.Name, s.Name)
		output, err := r.Run(s.Command, s.Args...)
		logger.Debug("[DEBUG] %s output:\n%s\n", s.Name, output)
		if err != nil {
			// Not fatal yet: some package managers exit non-zero on
			// already-installed, so the probe below has the final say.
			logger.Warn("[WARN] %s install via %s reported an error: %v\n", tool.Name, s.Name, err)
		}

		if path, err := r.LookPath(tool.Command); err == nil {
			logger.Info("[INFO] Installed %s via %s (%s)\n", tool.Name, s.Name, path)
			return path, s.Name, nil
		}
		logger.Warn("[WARN] %s still not on PATH after %s attempt\n", tool.Command, s.Name)
	}

	return "", "", fmt.Errorf("%s: %w", tool.Name, ErrToolInstall)
}
