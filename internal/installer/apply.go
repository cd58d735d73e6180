package installer

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/afero"

	"termsetup/internal/config"
	"termsetup/internal/logger"
	"termsetup/internal/patch"
	"termsetup/internal/paths"
	"termsetup/internal/state"
)

// Options carries the CLI inputs into the apply sequence.
type Options struct {
	AssetPath string // optional theme asset path argument
	Overwrite bool   // replace an already-installed theme asset
}

// Apply runs the full provisioning sequence: tool, font, theme asset,
// profile init line, terminal settings. Every step is fatal on failure
// except the tool install, which degrades to a warning with a manual
// install hint. There is no rollback; the patch steps leave timestamped
// backups for manual restore instead.
func Apply(cfg config.Config, p paths.Provider, r Runner, st *state.State, opts Options) error {
	// Step 1: prompt tool. Recoverable — the rest of the setup is still
	// worth doing with the tool absent.
	if ToolConfirmedByState(st, cfg.Tool, p) {
		logger.Info("[INFO] %s recorded as installed at %s. Skipping.\n", cfg.Tool.Name, st.Tools[cfg.Tool.Name].Path)
	} else if path, strategy, err := InstallTool(cfg.Tool, r); err != nil {
		logger.Warn("[WARN] Could not install %s automatically: %v\n", cfg.Tool.Name, err)
		logger.Warn("[WARN] Install it manually and re-run; the remaining steps will continue now.\n")
	} else {
		st.Tools[cfg.Tool.Name] = state.ToolState{Path: path, Strategy: strategy}
	}

	// Step 2: Nerd Font. Fatal — the prompt is unreadable without it.
	if FontConfirmedByState(st, cfg.Font.Family, p) {
		logger.Info("[INFO] %s Nerd Font recorded as installed. Skipping.\n", cfg.Font.Family)
	} else {
		files, err := InstallFont(cfg.Font, p, r)
		if err != nil {
			return err
		}
		if len(files) > 0 {
			st.Fonts[cfg.Font.Family] = state.FontState{Asset: cfg.Font.Asset, Files: files}
		}
	}

	// Step 3: theme asset.
	src, err := ResolveAsset(p.Fs(), opts.AssetPath, cfg.Theme.DefaultAsset)
	if err != nil {
		return err
	}
	installed, err := CopyAsset(p, src, opts.Overwrite)
	if err != nil {
		return err
	}
	st.Themes[filepath.Base(installed)] = state.ThemeState{Source: src, Installed: installed}

	// Step 4: profile init line, pointing the tool at the copied theme.
	line := fmt.Sprintf(cfg.Profile.LineTemplate, installed)
	if _, err := patch.PatchInitLine(p.Fs(), p.ProfilePath(), cfg.Profile.MatchPattern, line); err != nil {
		return err
	}

	// Step 5: terminal settings.
	if err := patch.PatchSettings(p.Fs(), p.SettingsCandidates(), SettingsPatches(cfg.Settings)); err != nil {
		return err
	}

	logger.Info("[INFO] Setup complete.\n")
	return nil
}

// ToolConfirmedByState reports whether the loaded state records the tool
// at a path that still exists, letting re-runs skip the install step
// without re-probing PATH. A stale record (binary removed since) falls
// through to the normal install path.
func ToolConfirmedByState(st *state.State, tool config.Tool, p paths.Provider) bool {
	ts, ok := st.Tools[tool.Name]
	if !ok || ts.Path == "" {
		return false
	}
	if exists, _ := afero.Exists(p.Fs(), ts.Path); !exists {
		logger.Debug("[DEBUG] State records %s at %s but it is gone; re-installing\n", tool.Name, ts.Path)
		return false
	}
	return true
}

// FontConfirmedByState reports whether the loaded state records font
// files from an earlier install that are all still present. Strategy
// installs record no files and are re-probed instead.
func FontConfirmedByState(st *state.State, family string, p paths.Provider) bool {
	fs, ok := st.Fonts[family]
	if !ok || len(fs.Files) == 0 {
		return false
	}
	for _, f := range fs.Files {
		if exists, _ := afero.Exists(p.Fs(), f); !exists {
			logger.Debug("[DEBUG] State records font file %s but it is gone; re-installing\n", f)
			return false
		}
	}
	return true
}

// SettingsPatches maps the configured terminal settings onto the
// profiles.defaults key-paths the structured patcher writes.
func SettingsPatches(s config.Settings) []patch.Patch {
	return []patch.Patch{
		{KeyPath: "profiles.defaults.colorScheme", Value: s.ColorScheme},
		{KeyPath: "profiles.defaults.font.face", Value: s.FontFace},
		{KeyPath: "profiles.defaults.font.size", Value: s.FontSize},
	}
}
