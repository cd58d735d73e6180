package logger

import (
	"github.com/fatih/color" // Colored console output for the log levels below
)

// Colorized printing functions for the different log levels. These are
// package-level variables holding functions that behave like fmt.Printf,
// but with text colored appropriately for the level.

// Info logs informational messages in green color.
// Green is used for success or normal progress output.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta color.
// Warnings signal recoverable problems, like a fallback install method being used.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red color.
// Red draws immediate attention to fatal problems that abort the run.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// It is assigned dynamically during Init based on the debug flag.
var Debug func(format string, a ...any)

// Init initializes the logger package, specifically enabling or disabling
// debug logging. When enabled, Debug prints cyan-colored messages; when
// disabled, Debug is a no-op that silently ignores debug logs.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}

func init() {
	// Commands call Init from their pre-run hook; default to quiet so the
	// patch packages can log before that happens (e.g. from tests).
	Init(false)
}
