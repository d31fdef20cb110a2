package primitives

import (
	"fmt"
	"strings"
)

// EmitMode selects how catalog objects are rendered as statements.
type EmitMode int

const (
	// ForCopy renders human-authorable statements with object ids stripped.
	ForCopy EmitMode = iota

	// ForStorage persists object ids so a catalog snapshot can be reloaded
	// with identical identities.
	ForStorage

	// ForRemote suppresses device-specific objects so the script can be
	// replayed against another server.
	ForRemote
)

func (m EmitMode) String() string {
	switch m {
	case ForCopy:
		return "ForCopy"
	case ForStorage:
		return "ForStorage"
	case ForRemote:
		return "ForRemote"
	default:
		return "UNKNOWN_MODE"
	}
}

// ParseEmitMode accepts the mode names as written in config files and flags.
// Matching is case-insensitive and the "For" prefix is optional.
func ParseEmitMode(s string) (EmitMode, error) {
	switch strings.ToLower(strings.TrimPrefix(strings.TrimPrefix(s, "For"), "for")) {
	case "", "copy":
		return ForCopy, nil
	case "storage":
		return ForStorage, nil
	case "remote":
		return ForRemote, nil
	default:
		return ForCopy, fmt.Errorf("unknown emit mode %q", s)
	}
}
