package config

// Tool describes the prompt CLI to install and how to probe for it.
// - Name: logical/display name.
// - Command: executable name probed on PATH to confirm presence.
// - Strategies: ordered package-manager install attempts, tried until the
//   probe succeeds.
type Tool struct {
	Name       string     `yaml:"name"`
	Command    string     `yaml:"command"`
	Strategies []Strategy `yaml:"strategies"`
}

// Strategy is a single external package-manager invocation. Success is
// decided by probing afterwards, never by the tool's exit code alone.
type Strategy struct {
	Name    string   `yaml:"name"`    // label for logs, e.g. "winget"
	Command string   `yaml:"command"` // executable to run
	Args    []string `yaml:"args"`
}

// Font describes the Nerd Font to install.
// - Family: filename token identifying the family (e.g. "MesloLG").
// - Repo/Tag/Asset: GitHub release coordinates of the font archive, used
//   as the fallback when no package-manager strategy confirms the font.
type Font struct {
	Family     string     `yaml:"family"`
	Repo       string     `yaml:"repo"`
	Tag        string     `yaml:"tag"`
	Asset      string     `yaml:"asset"`
	Strategies []Strategy `yaml:"strategies"`
}

// Theme names the asset file copied into the per-user themes directory.
type Theme struct {
	DefaultAsset string `yaml:"default_asset"`
}

// Profile controls the init line written to the shell profile.
// - MatchPattern: regexp identifying prior init lines to replace.
// - LineTemplate: fmt template for the new line; %s receives the installed
//   theme path.
type Profile struct {
	MatchPattern string `yaml:"match_pattern"`
	LineTemplate string `yaml:"line_template"`
}

// Settings holds the terminal settings values written by the structured
// patcher. These map onto profiles.defaults in Windows Terminal.
type Settings struct {
	ColorScheme string `yaml:"color_scheme"`
	FontFace    string `yaml:"font_face"`
	FontSize    int    `yaml:"font_size"`
}

// Config is the top-level structure loaded from the YAML config file, or
// built by Default() when no file is provided.
type Config struct {
	Tool     Tool     `yaml:"tool"`
	Font     Font     `yaml:"font"`
	Theme    Theme    `yaml:"theme"`
	Profile  Profile  `yaml:"profile"`
	Settings Settings `yaml:"settings"`
}
