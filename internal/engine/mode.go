package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownMode is returned by ParseMode for anything but postfix or prefix.
var ErrUnknownMode = errors.New("unknown conversion mode")

// Mode selects the target notation.
type Mode uint8

const (
	// Postfix is the default mode.
	Postfix Mode = iota
	Prefix
)

func (m Mode) String() string {
	switch m {
	case Postfix:
		return "POSTFIX"
	case Prefix:
		return "PREFIX"
	default:
		return "UNKNOWN"
	}
}

// ParseMode accepts "postfix" or "prefix" in any case; the empty string
// selects Postfix.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "postfix":
		return Postfix, nil
	case "prefix":
		return Prefix, nil
	default:
		return Postfix, fmt.Errorf("%w: %q (expected: postfix|prefix)", ErrUnknownMode, s)
	}
}

// MarshalText encodes the mode by name.
func (m Mode) MarshalText() ([]byte, error) {
	if m > Prefix {
		return nil, fmt.Errorf("invalid mode %d", uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText decodes a mode name.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
