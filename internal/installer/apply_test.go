package installer

import (
	"errors"
	"net/http"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"termsetup/internal/config"
	"termsetup/internal/paths"
	"termsetup/internal/state"
)

// applyFixture builds a provider with the font already installed and one
// settings document present, so Apply runs offline end to end.
func applyFixture(t *testing.T) (config.Config, paths.Static, *fakeRunner, *state.State) {
	t.Helper()

	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/fonts/MesloLGMNerdFontMono-Regular.ttf", []byte("font"), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/terminal/settings.json", []byte(`{"profiles":{"list":[{"name":"cmd"}]}}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "/assets/theme.omp.json", []byte("{}"), 0o644))

	p := paths.Static{
		Filesystem: fs,
		Profile:    "/home/user/Documents/PowerShell/Microsoft.PowerShell_profile.ps1",
		Settings:   []string{"/terminal/settings.json", "/terminal/preview/settings.json"},
		Themes:     "/home/user/.poshthemes",
		Fonts:      []string{"/fonts"},
	}

	cfg := config.Default()
	cfg.Tool.Strategies = []config.Strategy{
		{Name: "winget", Command: "winget", Args: []string{"install", "JanDeDobbeleer.OhMyPosh"}},
	}

	r := &fakeRunner{available: map[string]string{"oh-my-posh": "/bin/oh-my-posh"}}
	return cfg, p, r, state.Load("/nonexistent-state.json")
}

func TestApplyFullSequence(t *testing.T) {
	cfg, p, r, st := applyFixture(t)

	opts := Options{AssetPath: "/assets/theme.omp.json"}
	require.NoError(t, Apply(cfg, p, r, st, opts))

	// Theme copied into the themes dir.
	theme, err := afero.ReadFile(p.Filesystem, "/home/user/.poshthemes/theme.omp.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(theme))

	// Profile holds exactly one init line referencing the copied theme.
	profile, err := afero.ReadFile(p.Filesystem, p.Profile)
	require.NoError(t, err)
	assert.Equal(t, `oh-my-posh init pwsh --config "/home/user/.poshthemes/theme.omp.json" | Invoke-Expression`+"\n", string(profile))

	// Settings patched, unrelated keys kept.
	settings, err := afero.ReadFile(p.Filesystem, "/terminal/settings.json")
	require.NoError(t, err)
	assert.Equal(t, "One Half Dark", gjson.GetBytes(settings, "profiles.defaults.colorScheme").String())
	assert.Equal(t, "cmd", gjson.GetBytes(settings, "profiles.list.0.name").String())

	// State remembers tool and theme.
	assert.Equal(t, "/bin/oh-my-posh", st.Tools["oh-my-posh"].Path)
	assert.Equal(t, "/home/user/.poshthemes/theme.omp.json", st.Themes["theme.omp.json"].Installed)
}

func TestApplyIsIdempotent(t *testing.T) {
	cfg, p, r, st := applyFixture(t)
	opts := Options{AssetPath: "/assets/theme.omp.json"}

	require.NoError(t, Apply(cfg, p, r, st, opts))
	profile1, err := afero.ReadFile(p.Filesystem, p.Profile)
	require.NoError(t, err)
	settings1, err := afero.ReadFile(p.Filesystem, "/terminal/settings.json")
	require.NoError(t, err)

	require.NoError(t, Apply(cfg, p, r, st, opts))
	profile2, err := afero.ReadFile(p.Filesystem, p.Profile)
	require.NoError(t, err)
	settings2, err := afero.ReadFile(p.Filesystem, "/terminal/settings.json")
	require.NoError(t, err)

	assert.Equal(t, string(profile1), string(profile2))
	assert.Equal(t, string(settings1), string(settings2))
}

func TestApplyToolFailureIsRecoverable(t *testing.T) {
	cfg, p, _, st := applyFixture(t)

	// No tool, no package managers: the tool step must warn and the rest
	// of the sequence must still run.
	r := &fakeRunner{available: map[string]string{}}
	opts := Options{AssetPath: "/assets/theme.omp.json"}
	require.NoError(t, Apply(cfg, p, r, st, opts))

	exists, err := afero.Exists(p.Filesystem, p.Profile)
	require.NoError(t, err)
	assert.True(t, exists, "profile must still be patched after a tool install failure")
	assert.Empty(t, st.Tools)
}

func TestApplyStateSkipsConfirmedFont(t *testing.T) {
	cfg, p, r, st := applyFixture(t)

	// The font dir holds no file the probe would accept, and the network
	// is down, so only the state record can satisfy the font step.
	require.NoError(t, p.Filesystem.Remove("/fonts/MesloLGMNerdFontMono-Regular.ttf"))
	require.NoError(t, afero.WriteFile(p.Filesystem, "/fonts/custom.ttf", []byte("font"), 0o644))
	st.Fonts["Meslo"] = state.FontState{Asset: "Meslo.zip", Files: []string{"/fonts/custom.ttf"}}

	restore := httpGet
	defer func() { httpGet = restore }()
	httpGet = func(url string) (*http.Response, error) { return nil, errors.New("offline") }

	require.NoError(t, Apply(cfg, p, r, st, Options{AssetPath: "/assets/theme.omp.json"}))
}

func TestApplyStateStaleFontRecordFallsThrough(t *testing.T) {
	cfg, p, r, st := applyFixture(t)

	// The recorded files are gone; the step must fall back to probing,
	// which the fixture's installed font satisfies.
	st.Fonts["Meslo"] = state.FontState{Asset: "Meslo.zip", Files: []string{"/fonts/removed.ttf"}}

	require.NoError(t, Apply(cfg, p, r, st, Options{AssetPath: "/assets/theme.omp.json"}))
}

func TestApplyStateSkipsConfirmedTool(t *testing.T) {
	cfg, p, _, st := applyFixture(t)

	require.NoError(t, afero.WriteFile(p.Filesystem, "/bin/oh-my-posh", []byte("exe"), 0o755))
	st.Tools["oh-my-posh"] = state.ToolState{Path: "/bin/oh-my-posh", Strategy: "winget"}

	// The tool is not on PATH and winget is primed to run; a consulted
	// state record must prevent any install attempt.
	r := &fakeRunner{available: map[string]string{"winget": "/bin/winget"}}
	require.NoError(t, Apply(cfg, p, r, st, Options{AssetPath: "/assets/theme.omp.json"}))
	assert.Empty(t, r.ran, "no package manager should run when state already confirms the tool")
}

func TestApplyStateStaleToolRecordFallsThrough(t *testing.T) {
	cfg, p, r, st := applyFixture(t)

	// Recorded binary no longer exists; the normal probe runs and finds
	// the tool on PATH again.
	st.Tools["oh-my-posh"] = state.ToolState{Path: "/bin/removed/oh-my-posh", Strategy: "winget"}

	require.NoError(t, Apply(cfg, p, r, st, Options{AssetPath: "/assets/theme.omp.json"}))
	assert.Equal(t, "/bin/oh-my-posh", st.Tools["oh-my-posh"].Path)
}

func TestApplyMissingAssetIsFatal(t *testing.T) {
	cfg, p, r, st := applyFixture(t)

	restore := executablePath
	executablePath = func() (string, error) { return "/opt/termsetup/termsetup", nil }
	defer func() { executablePath = restore }()

	err := Apply(cfg, p, r, st, Options{AssetPath: "/assets/missing.omp.json"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrAssetNotFound)

	// Aborted before the profile step.
	exists, aferr := afero.Exists(p.Filesystem, p.Profile)
	require.NoError(t, aferr)
	assert.False(t, exists)
}
