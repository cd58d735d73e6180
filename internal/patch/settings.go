package patch

import (
	"fmt"
	"strings"

	"github.com/spf13/afero"
	"github.com/tidwall/gjson"
	"github.com/tidwall/jsonc"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"

	"termsetup/internal/logger"
)

// Patch is one (key-path, value) pair to set in a settings document, e.g.
// {"profiles.defaults.font.face", "MesloLGM Nerd Font Mono"}. Key-paths
// are dotted; intermediate objects are created as needed.
type Patch struct {
	KeyPath string
	Value   any
}

// PatchSettings applies the patch set independently to each candidate
// settings document. Candidates are expected to be pre-filtered to
// existing files (paths.Provider.SettingsCandidates does this); zero
// candidates is a successful no-op. Each patched file gets a timestamped
// backup before it is rewritten.
//
// Everything outside the patched key-paths is preserved as parsed.
// Formatting is normalized on the way out (stable four-space indentation),
// and comments in the original document are blanked, which the terminal
// itself also does when it rewrites its settings.
func PatchSettings(fs afero.Fs, candidates []string, patches []Patch) error {
	if len(candidates) == 0 {
		logger.Info("[INFO] No settings file found. Nothing to patch.\n")
		return nil
	}

	for _, path := range candidates {
		if _, err := BackupFile(fs, path); err != nil {
			return err
		}

		data, err := afero.ReadFile(fs, path)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}

		patched, err := applyPatches(path, data, patches)
		if err != nil {
			return err
		}

		if err := afero.WriteFile(fs, path, patched, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		logger.Info("[INFO] Patched %d setting(s) in %s\n", len(patches), path)
	}
	return nil
}

// applyPatches sets every patch key-path in data and returns the
// re-serialized document. data may be JSONC (Windows Terminal allows
// comments and trailing commas in settings.json).
func applyPatches(path string, data []byte, patches []Patch) ([]byte, error) {
	data = jsonc.ToJSON(data)
	if !gjson.ValidBytes(data) {
		return nil, &ParseError{Path: path}
	}

	for _, p := range patches {
		// Walk the intermediate segments first: an existing non-object on
		// the way down is a conflict we refuse to overwrite silently.
		if seg := conflictingSegment(data, p.KeyPath); seg != "" {
			return nil, &PathError{Path: path, KeyPath: p.KeyPath, Segment: seg}
		}

		out, err := sjson.SetBytes(data, p.KeyPath, p.Value)
		if err != nil {
			return nil, fmt.Errorf("set %q in %s: %w", p.KeyPath, path, err)
		}
		logger.Debug("[DEBUG] Set %s = %v in %s\n", p.KeyPath, p.Value, path)
		data = out
	}

	return pretty.PrettyOptions(data, &pretty.Options{Indent: "    "}), nil
}

// conflictingSegment returns the first strict prefix of keyPath that
// exists in data with a non-object value, or "" when the whole path is
// safe to set.
func conflictingSegment(data []byte, keyPath string) string {
	segments := strings.Split(keyPath, ".")
	for i := 1; i < len(segments); i++ {
		prefix := strings.Join(segments[:i], ".")
		res := gjson.GetBytes(data, prefix)
		if res.Exists() && !res.IsObject() {
			return prefix
		}
	}
	return ""
}
