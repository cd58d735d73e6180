package paths

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/afero"

	"termsetup/internal/logger"
)

// Provider resolves the per-user locations this tool reads and writes.
// The patch and installer packages only ever touch the filesystem through
// a Provider, so tests can point them at a temp dir or an in-memory fs.
type Provider interface {
	// Fs is the filesystem all resolved paths live on.
	Fs() afero.Fs

	// ProfilePath is the shell profile script that receives the init line.
	// The file (and its parent directory) may not exist yet.
	ProfilePath() string

	// SettingsCandidates returns the terminal settings documents that
	// actually exist on disk, in preference order. May be empty.
	SettingsCandidates() []string

	// ThemesDir is the per-user directory theme assets are copied into.
	ThemesDir() string

	// FontDirs returns the font storage locations to probe and install
	// into, most preferred first.
	FontDirs() []string

	// StatePath is the per-user state file recording what previous runs
	// confirmed.
	StatePath() string
}

// Static is a fixed Provider over explicit paths. It backs the test
// fixtures and any future config-driven path overrides.
type Static struct {
	Filesystem afero.Fs
	Profile    string
	Settings   []string // candidate settings paths, existence-filtered by SettingsCandidates
	Themes     string
	Fonts      []string
	State      string
}

func (s Static) Fs() afero.Fs        { return s.Filesystem }
func (s Static) ProfilePath() string { return s.Profile }
func (s Static) ThemesDir() string   { return s.Themes }
func (s Static) FontDirs() []string  { return s.Fonts }
func (s Static) StatePath() string   { return s.State }

func (s Static) SettingsCandidates() []string {
	return filterExisting(s.Filesystem, s.Settings)
}

// NewOS builds the Provider for the current user on the real filesystem,
// using the conventional per-OS locations for the PowerShell profile, the
// Windows Terminal settings documents, oh-my-posh themes, and user fonts.
func NewOS() Provider {
	fs := afero.NewOsFs()
	home, err := os.UserHomeDir()
	if err != nil {
		logger.Warn("[WARN] Could not resolve home directory: %v\n", err)
	}

	p := Static{
		Filesystem: fs,
		Themes:     filepath.Join(home, ".poshthemes"),
		State:      filepath.Join(home, ".termsetup", "state.json"),
	}

	switch runtime.GOOS {
	case "windows":
		localAppData := os.Getenv("LOCALAPPDATA")
		if localAppData == "" {
			localAppData = filepath.Join(home, "AppData", "Local")
		}
		p.Profile = filepath.Join(home, "Documents", "PowerShell", "Microsoft.PowerShell_profile.ps1")
		// Store-packaged stable, store-packaged preview, then unpackaged.
		p.Settings = []string{
			filepath.Join(localAppData, "Packages", "Microsoft.WindowsTerminal_8wekyb3d8bbwe", "LocalState", "settings.json"),
			filepath.Join(localAppData, "Packages", "Microsoft.WindowsTerminalPreview_8wekyb3d8bbwe", "LocalState", "settings.json"),
			filepath.Join(localAppData, "Microsoft", "Windows Terminal", "settings.json"),
		}
		p.Fonts = []string{
			filepath.Join(localAppData, "Microsoft", "Windows", "Fonts"),
			filepath.Join(os.Getenv("WINDIR"), "Fonts"),
		}
	case "darwin":
		p.Profile = filepath.Join(home, ".config", "powershell", "Microsoft.PowerShell_profile.ps1")
		p.Fonts = []string{filepath.Join(home, "Library", "Fonts")}
	default:
		p.Profile = filepath.Join(home, ".config", "powershell", "Microsoft.PowerShell_profile.ps1")
		p.Fonts = []string{filepath.Join(home, ".local", "share", "fonts")}
	}

	return p
}

// filterExisting keeps only the paths that exist as files on fs.
func filterExisting(fs afero.Fs, candidates []string) []string {
	var existing []string
	for _, c := range candidates {
		if c == "" {
			continue
		}
		if ok, _ := afero.Exists(fs, c); ok {
			existing = append(existing, c)
		} else {
			logger.Debug("[DEBUG] Settings candidate does not exist: %s\n", c)
		}
	}
	return existing
}
