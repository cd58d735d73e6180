package config

import (
	"fmt"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"termsetup/internal/logger"
)

// Default returns the built-in configuration: oh-my-posh installed through
// the OS package managers, the Meslo Nerd Font from the nerd-fonts
// releases, and Windows Terminal defaults pointed at both.
func Default() Config {
	cfg := Config{
		Tool: Tool{
			Name:    "oh-my-posh",
			Command: "oh-my-posh",
		},
		Font: Font{
			Family: "Meslo",
			Repo:   "ryanoasis/nerd-fonts",
			Tag:    "v3.2.1",
			Asset:  "Meslo.zip",
		},
		Theme: Theme{
			DefaultAsset: "theme.omp.json",
		},
		Profile: Profile{
			MatchPattern: `oh-my-posh init`,
			LineTemplate: `oh-my-posh init pwsh --config "%s" | Invoke-Expression`,
		},
		Settings: Settings{
			ColorScheme: "One Half Dark",
			FontFace:    "MesloLGM Nerd Font Mono",
			FontSize:    11,
		},
	}

	// Install strategies depend on which package managers the OS ships.
	switch runtime.GOOS {
	case "windows":
		cfg.Tool.Strategies = []Strategy{
			{Name: "winget", Command: "winget", Args: []string{
				"install", "JanDeDobbeleer.OhMyPosh", "-s", "winget",
				"--accept-package-agreements", "--accept-source-agreements",
			}},
			{Name: "choco", Command: "choco", Args: []string{"install", "oh-my-posh", "-y"}},
		}
		cfg.Font.Strategies = []Strategy{
			{Name: "choco", Command: "choco", Args: []string{"install", "nerd-fonts-Meslo", "-y"}},
		}
	case "darwin":
		cfg.Tool.Strategies = []Strategy{
			{Name: "brew", Command: "brew", Args: []string{"install", "jandedobbeleer/oh-my-posh/oh-my-posh"}},
		}
		cfg.Font.Strategies = []Strategy{
			{Name: "brew", Command: "brew", Args: []string{"install", "--cask", "font-meslo-lg-nerd-font"}},
		}
	}
	// On other systems the tool step falls through to the manual-install
	// hint and the font step to the release-archive download.

	return cfg
}

// Load reads the YAML config file at configFile, layered over Default():
// sections the file omits keep their built-in values. An empty configFile
// path returns the defaults outright; an unreadable or malformed file is
// an error, since silently ignoring a config the user asked for would be
// worse than aborting.
func Load(configFile string) (Config, error) {
	cfg := Default()
	if configFile == "" {
		logger.Debug("[DEBUG] No config file given, using built-in defaults\n")
		return cfg, nil
	}

	raw, err := os.ReadFile(configFile)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", configFile, err)
	}
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", configFile, err)
	}

	logger.Debug("[DEBUG] Loaded config from %s\n", configFile)
	return cfg, nil
}
