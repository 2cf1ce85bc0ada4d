// Package render implements the run renderer: chronological cell logs while
// the scheduler drains, then the assembled cohomology table.
package render

import (
	"os"

	"golang.org/x/term"
)

// Mode selects how the final table is rendered.
type Mode int

const (
	// ModeAuto automatically detects the appropriate mode.
	ModeAuto Mode = iota
	// ModePretty renders a bordered, styled table for interactive terminals.
	ModePretty
	// ModePlain renders tab-delimited rows for CI logs and pipelines.
	ModePlain
)

// DetectMode returns the recommended mode based on the environment.
// Non-TTY stdout or a CI environment variable selects plain output.
func DetectMode() Mode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd()))

	ci := os.Getenv("CI")
	isCI := ci == "true" || ci == "1"

	if !isTTY || isCI {
		return ModePlain
	}
	return ModePretty
}

// ResolveMode applies a user override flag to auto-detection.
// userFlag should be one of: "auto", "pretty", "plain", "ci", or empty.
func ResolveMode(autoDetected Mode, userFlag string) Mode {
	switch userFlag {
	case "pretty":
		return ModePretty
	case "plain", "ci":
		return ModePlain
	default:
		return autoDetected
	}
}
