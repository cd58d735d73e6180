package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"termsetup/internal/config"
	"termsetup/internal/installer"
	"termsetup/internal/patch"
	"termsetup/internal/paths"
	"termsetup/internal/state"
)

// configPath holds the path to an optional configuration YAML file.
// Empty means the built-in defaults (oh-my-posh + Meslo Nerd Font).
var configPath string

// overwrite replaces an already-installed theme asset instead of skipping it.
var overwrite bool

// applyCmd runs the full provisioning sequence: tool, font, theme,
// profile init line, terminal settings.
var applyCmd = &cobra.Command{
	Use:   "apply [theme-asset]",
	Short: "Install the prompt tool and font, copy the theme, patch profile and settings",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		p := paths.NewOS()
		st := state.Load(p.StatePath())

		opts := installer.Options{Overwrite: overwrite}
		if len(args) > 0 {
			opts.AssetPath = args[0]
		}

		err = installer.Apply(cfg, p, installer.ExecRunner{}, st, opts)
		state.Save(p.StatePath(), st)
		return err
	},
}

// applyToolCmd installs only the prompt tool.
var applyToolCmd = &cobra.Command{
	Use:   "tool",
	Short: "Install only the prompt tool",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		p := paths.NewOS()
		st := state.Load(p.StatePath())

		if installer.ToolConfirmedByState(st, cfg.Tool, p) {
			return nil
		}
		path, strategy, err := installer.InstallTool(cfg.Tool, installer.ExecRunner{})
		if err != nil {
			return err
		}
		st.Tools[cfg.Tool.Name] = state.ToolState{Path: path, Strategy: strategy}
		state.Save(p.StatePath(), st)
		return nil
	},
}

// applyFontCmd installs only the Nerd Font.
var applyFontCmd = &cobra.Command{
	Use:   "font",
	Short: "Install only the Nerd Font",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		p := paths.NewOS()
		st := state.Load(p.StatePath())

		if installer.FontConfirmedByState(st, cfg.Font.Family, p) {
			return nil
		}
		files, err := installer.InstallFont(cfg.Font, p, installer.ExecRunner{})
		if err != nil {
			return err
		}
		if len(files) > 0 {
			st.Fonts[cfg.Font.Family] = state.FontState{Asset: cfg.Font.Asset, Files: files}
			state.Save(p.StatePath(), st)
		}
		return nil
	},
}

// applyThemeCmd copies only the theme asset.
var applyThemeCmd = &cobra.Command{
	Use:   "theme [theme-asset]",
	Short: "Copy only the theme asset",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		p := paths.NewOS()

		arg := ""
		if len(args) > 0 {
			arg = args[0]
		}
		src, err := installer.ResolveAsset(p.Fs(), arg, cfg.Theme.DefaultAsset)
		if err != nil {
			return err
		}
		_, err = installer.CopyAsset(p, src, overwrite)
		return err
	},
}

// applyProfileCmd patches only the shell profile init line, pointing at
// the theme asset already in the themes directory.
var applyProfileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Patch only the shell profile init line",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		p := paths.NewOS()

		themePath := filepath.Join(p.ThemesDir(), cfg.Theme.DefaultAsset)
		line := fmt.Sprintf(cfg.Profile.LineTemplate, themePath)
		_, err = patch.PatchInitLine(p.Fs(), p.ProfilePath(), cfg.Profile.MatchPattern, line)
		return err
	},
}

// applySettingsCmd patches only the terminal settings documents.
var applySettingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Patch only the terminal settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		p := paths.NewOS()

		return patch.PatchSettings(p.Fs(), p.SettingsCandidates(), installer.SettingsPatches(cfg.Settings))
	},
}

// init sets up CLI flags and wires the apply subcommands.
func init() {
	applyCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: built-in)")
	applyCmd.PersistentFlags().BoolVar(&overwrite, "overwrite", false, "Replace the theme asset if already installed")

	applyCmd.AddCommand(applyToolCmd)
	applyCmd.AddCommand(applyFontCmd)
	applyCmd.AddCommand(applyThemeCmd)
	applyCmd.AddCommand(applyProfileCmd)
	applyCmd.AddCommand(applySettingsCmd)
	rootCmd.AddCommand(applyCmd)
}
