package state

import (
	"encoding/json" // JSON encoding and decoding of the state file
	"os"
	"path/filepath"

	"termsetup/internal/logger"
)

// ToolState records the prompt tool as confirmed present, with the path
// the presence probe resolved and which install strategy got it there
// ("" when it was already on the machine).
type ToolState struct {
	Path     string `json:"path"`
	Strategy string `json:"strategy"`
}

// FontState records an installed font: the release asset it came from and
// the font files this tool copied into place (empty when a package
// manager did the install).
type FontState struct {
	Asset string   `json:"asset"`
	Files []string `json:"files"`
}

// ThemeState records the theme asset last copied into the themes dir.
type ThemeState struct {
	Source    string `json:"source"`
	Installed string `json:"installed"`
}

// State is the persisted record of what previous runs confirmed, so
// re-runs can skip probing for steps that already succeeded. Losing or
// corrupting this file only costs re-probing, never correctness.
type State struct {
	Tools  map[string]ToolState  `json:"tools"`
	Fonts  map[string]FontState  `json:"fonts"`
	Themes map[string]ThemeState `json:"themes"`
}

// Load reads the saved state from a JSON file at the given path. A
// missing or unreadable file yields a fresh empty state. All maps are
// guaranteed non-nil.
func Load(path string) *State {
	st := &State{}
	if file, err := os.ReadFile(path); err == nil {
		_ = json.Unmarshal(file, st)
	}
	if st.Tools == nil {
		st.Tools = make(map[string]ToolState)
	}
	if st.Fonts == nil {
		st.Fonts = make(map[string]FontState)
	}
	if st.Themes == nil {
		st.Themes = make(map[string]ThemeState)
	}
	return st
}

// Save writes the state to path as indented JSON. Errors are logged but
// not propagated: failing to remember a successful run must not turn the
// run into a failure.
func Save(path string, st *State) {
	file, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		logger.Error("[ERROR] Failed to marshal state: %v\n", err)
		return
	}

	logger.Debug("[DEBUG] Writing state to %s\n", path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		logger.Error("[ERROR] Failed to create state directory for %s: %v\n", path, err)
		return
	}
	if err := os.WriteFile(path, file, 0o644); err != nil {
		logger.Error("[ERROR] Failed to write state file %s: %v\n", path, err)
	}
}
