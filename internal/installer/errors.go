package installer

import "errors"

var (
	// ErrToolInstall means no install strategy made the tool's command
	// available on PATH. Recoverable: the run continues with a hint to
	// install manually.
	ErrToolInstall = errors.New("tool did not become available after install")

	// ErrFontInstall means the font could not be confirmed present after
	// every strategy and the release-archive fallback. Fatal.
	ErrFontInstall = errors.New("font could not be confirmed present")

	// ErrAssetNotFound means the requested theme asset path resolved to
	// nothing, neither as given nor next to the executable. Fatal.
	ErrAssetNotFound = errors.New("theme asset not found")
)
