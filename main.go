package main

import (
	"os"

	"termsetup/cmd" // CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument
// parsing and execution, and maps any failure to exit status 1.
//
// termsetup provisions a terminal/prompt environment in one idempotent run:
//   - Installs the prompt tool through an ordered chain of package-manager
//     strategies, confirming presence by probing PATH rather than trusting
//     exit codes
//   - Installs a Nerd Font, falling back from package managers to the
//     GitHub release archive, confirmed by scanning the user's font storage
//   - Copies a theme asset into the per-user themes directory
//   - Patches the shell profile so it contains exactly one init line for
//     the prompt tool, backing the profile up first
//   - Patches the terminal's settings documents (color scheme, font face
//     and size) in place, preserving all unrelated settings
//
// Error handling strategy:
//   - Every mutated file gets a timestamped backup before the write, so a
//     bad run can be restored by hand; there is no automatic rollback
//   - The tool install step is recoverable (a warning plus a manual-install
//     hint); every other step aborts the run on first failure with a
//     non-zero exit status
//
// A small JSON state file records what previous runs confirmed, keeping
// repeated runs cheap; losing it only costs re-probing.
func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
