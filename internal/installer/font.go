package installer

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"termsetup/internal/config"
	"termsetup/internal/logger"
	"termsetup/internal/paths"
)

// GitHubRelease is the slice of a GitHub release JSON response needed to
// locate the font archive asset.
type GitHubRelease struct {
	TagName string `json:"tag_name"`
	Assets  []struct {
		Name               string `json:"name"`
		BrowserDownloadURL string `json:"browser_download_url"`
	} `json:"assets"`
}

// errFontFound short-circuits the font dir walk once a match is found.
var errFontFound = errors.New("font found")

// fontTokens are the name fragments that must all appear in a single
// installed font file for the font to count as present: the family, the
// Nerd Font patch marker, and the Mono variant.
func fontTokens(family string) []string {
	return []string{family, "NerdFont", "Mono"}
}

// normalizeFontName lowercases a font file or registration name and strips
// the separators vendors are inconsistent about, so "MesloLGM Nerd Font
// Mono", "MesloLGMNerdFontMono-Regular.ttf" and "meslolgm-nerd-font-mono"
// all compare equal-ish.
func normalizeFontName(name string) string {
	name = strings.ToLower(name)
	for _, sep := range []string{" ", "-", "_"} {
		name = strings.ReplaceAll(name, sep, "")
	}
	return name
}

// FontInstalled probes the provider's font storage locations for a file
// whose name carries all required tokens. All three must match on the
// same file; a plain (unpatched) Meslo install must not count.
func FontInstalled(p paths.Provider, family string) bool {
	tokens := fontTokens(family)
	found := false

	for _, dir := range p.FontDirs() {
		if dir == "" {
			continue
		}
		err := afero.Walk(p.Fs(), dir, func(path string, info os.FileInfo, err error) error {
			if err != nil || info == nil || info.IsDir() {
				return nil // unreadable entries are treated as absent
			}
			name := normalizeFontName(info.Name())
			for _, tok := range tokens {
				if !strings.Contains(name, normalizeFontName(tok)) {
					return nil
				}
			}
			logger.Debug("[DEBUG] Font probe matched %s\n", path)
			found = true
			return errFontFound // stop walking this dir early
		})
		if err != nil && err != errFontFound {
			logger.Debug("[DEBUG] Font dir %s not scannable: %v\n", dir, err)
		}
		if found {
			return true
		}
	}
	return false
}

// InstallFont confirms the Nerd Font is present, installing it if needed.
// Order of attempts: package-manager strategies, then the GitHub release
// archive. Every attempt is followed by the presence probe; if nothing
// confirms the font the error is ErrFontInstall and the run must abort.
// Returns the font files this call copied into place, if any.
func InstallFont(font config.Font, p paths.Provider, r Runner) ([]string, error) {
	if FontInstalled(p, font.Family) {
		logger.Info("[INFO] %s Nerd Font already installed. Skipping.\n", font.Family)
		return nil, nil
	}

	for _, s := range font.Strategies {
		if _, err := r.LookPath(s.Command); err != nil {
			logger.Debug("[DEBUG] Package manager %s not available, skipping strategy\n", s.Command)
			continue
		}

		logger.Info("[INFO] Installing %s Nerd Font via %s...\n", font.Family, s.Name)
		output, err := r.Run(s.Command, s.Args...)
		logger.Debug("[DEBUG] %s output:\n%s\n", s.Name, output)
		if err != nil {
			logger.Warn("[WARN] Font install via %s reported an error: %v\n", s.Name, err)
		}

		if FontInstalled(p, font.Family) {
			logger.Info("[INFO] Installed %s Nerd Font via %s\n", font.Family, s.Name)
			return nil, nil
		}
	}

	logger.Info("[INFO] Falling back to release archive for %s Nerd Font...\n", font.Family)
	files, err := installFontFromRelease(font, p)
	if err != nil {
		logger.Error("[ERROR] Release archive install failed: %v\n", err)
		return nil, fmt.Errorf("%s: %w", font.Family, ErrFontInstall)
	}

	if !FontInstalled(p, font.Family) {
		return nil, fmt.Errorf("%s: %w", font.Family, ErrFontInstall)
	}
	logger.Info("[INFO] Installed %s Nerd Font (%d files)\n", font.Family, len(files))
	return files, nil
}

// installFontFromRelease downloads the configured release asset, extracts
// it, and copies the font files into the first font dir.
func installFontFromRelease(font config.Font, p paths.Provider) ([]string, error) {
	release, err := fetchRelease(font.Repo, font.Tag)
	if err != nil {
		return nil, err
	}

	assetURL := ""
	for _, asset := range release.Assets {
		if strings.EqualFold(asset.Name, font.Asset) {
			assetURL = asset.BrowserDownloadURL
			break
		}
	}
	if assetURL == "" {
		return nil, fmt.Errorf("no asset named %s in release %s of %s", font.Asset, release.TagName, font.Repo)
	}

	tmpDir, err := os.MkdirTemp("", "termsetup-font-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	archivePath := filepath.Join(tmpDir, font.Asset)
	logger.Info("[INFO] Downloading %s from %s\n", font.Asset, assetURL)
	if err := downloadFile(assetURL, archivePath); err != nil {
		return nil, err
	}

	extracted, err := ExtractArchive(archivePath, tmpDir)
	if err != nil {
		return nil, fmt.Errorf("failed to extract archive: %w", err)
	}

	return copyFontFiles(p, extracted)
}

// copyFontFiles copies the .ttf/.otf files among extracted into the
// provider's preferred font dir and returns the installed paths.
func copyFontFiles(p paths.Provider, extracted []string) ([]string, error) {
	dirs := p.FontDirs()
	if len(dirs) == 0 {
		return nil, fmt.Errorf("no font directory to install into")
	}
	fontDir := dirs[0]
	if err := p.Fs().MkdirAll(fontDir, 0o755); err != nil {
		return nil, fmt.Errorf("create font dir %s: %w", fontDir, err)
	}

	var installed []string
	for _, src := range extracted {
		ext := strings.ToLower(filepath.Ext(src))
		if ext != ".ttf" && ext != ".otf" {
			continue
		}
		// Extraction happens on the real filesystem; read from there and
		// write through the provider's fs.
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("read extracted font %s: %w", src, err)
		}
		dst := filepath.Join(fontDir, filepath.Base(src))
		if err := afero.WriteFile(p.Fs(), dst, data, 0o644); err != nil {
			return nil, fmt.Errorf("install font file %s: %w", dst, err)
		}
		logger.Debug("[DEBUG] Installed font file %s\n", dst)
		installed = append(installed, dst)
	}

	if len(installed) == 0 {
		return nil, fmt.Errorf("archive contained no font files")
	}
	return installed, nil
}

// fetchRelease pulls the release metadata for repo at tag from the GitHub
// API.
func fetchRelease(repo, tag string) (*GitHubRelease, error) {
	url := fmt.Sprintf("https://api.github.com/repos/%s/releases/tags/%s", repo, tag)
	logger.Debug("[DEBUG] Fetching GitHub release from URL: %s\n", url)

	resp, err := httpGet(url)
	if err != nil {
		return nil, fmt.Errorf("HTTP GET error fetching release %s of %s: %w", tag, repo, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("GitHub release fetch failed for %s@%s: HTTP status %d", repo, tag, resp.StatusCode)
	}

	var release GitHubRelease
	if err := json.NewDecoder(resp.Body).Decode(&release); err != nil {
		return nil, fmt.Errorf("failed to decode GitHub release JSON for %s@%s: %w", repo, tag, err)
	}
	logger.Debug("[DEBUG] Release tag: %s with %d assets\n", release.TagName, len(release.Assets))
	return &release, nil
}
