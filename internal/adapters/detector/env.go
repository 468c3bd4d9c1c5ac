// Package detector chooses between the interactive screen and the plain list.
package detector

import (
	"errors"
	"fmt"
	"os"

	"go.trai.ch/tasklist/internal/core/domain"
	"golang.org/x/term"
)

// OutputMode is the presentation used when no subcommand is given.
type OutputMode int

const (
	// ModeAuto defers to DetectEnvironment.
	ModeAuto OutputMode = iota
	// ModeTUI runs the interactive screen.
	ModeTUI
	// ModeLinear prints the list once.
	ModeLinear
)

// String returns the flag spelling of m.
func (m OutputMode) String() string {
	switch m {
	case ModeTUI:
		return "tui"
	case ModeLinear:
		return "linear"
	default:
		return "auto"
	}
}

// DetectEnvironment returns ModeTUI only when both stdin and stdout are
// terminals and CI is not set.
func DetectEnvironment() OutputMode {
	isTTY := term.IsTerminal(int(os.Stdout.Fd())) && term.IsTerminal(int(os.Stdin.Fd())) //nolint:gosec // fds fit in int
	return detect(isTTY, os.Getenv("CI"))
}

func detect(isTTY bool, ci string) OutputMode {
	if !isTTY || ci == "true" || ci == "1" {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the user's --mode flag to the detected mode.
// userFlag is one of "auto", "tui", "linear", "ci" or empty; anything else
// returns ErrUnknownMode.
func ResolveMode(autoDetected OutputMode, userFlag string) (OutputMode, error) {
	switch userFlag {
	case "", "auto":
		return autoDetected, nil
	case "tui":
		return ModeTUI, nil
	case "linear", "ci":
		return ModeLinear, nil
	default:
		return autoDetected, errors.Join(domain.ErrUnknownMode, fmt.Errorf("got %q", userFlag))
	}
}
