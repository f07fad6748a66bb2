package engine

import "fmt"

// Zone is one of the four mutually exclusive places a token can be.
type Zone uint8

const (
	ZoneInput Zone = iota
	ZoneStack
	ZoneOutput
	ZoneDiscarded
)

// Zones lists every zone in display order.
var Zones = [...]Zone{ZoneInput, ZoneStack, ZoneOutput, ZoneDiscarded}

func (z Zone) String() string {
	switch z {
	case ZoneInput:
		return "INPUT"
	case ZoneStack:
		return "STACK"
	case ZoneOutput:
		return "OUTPUT"
	case ZoneDiscarded:
		return "DISCARDED"
	default:
		return "UNKNOWN"
	}
}

// MarshalText encodes the zone by name.
func (z Zone) MarshalText() ([]byte, error) {
	if z > ZoneDiscarded {
		return nil, fmt.Errorf("invalid zone %d", uint8(z))
	}
	return []byte(z.String()), nil
}

// UnmarshalText decodes a zone name produced by MarshalText.
func (z *Zone) UnmarshalText(text []byte) error {
	switch string(text) {
	case "INPUT":
		*z = ZoneInput
	case "STACK":
		*z = ZoneStack
	case "OUTPUT":
		*z = ZoneOutput
	case "DISCARDED":
		*z = ZoneDiscarded
	default:
		return fmt.Errorf("invalid zone: %q (expected: INPUT|STACK|OUTPUT|DISCARDED)", text)
	}
	return nil
}

// Location is where one token is at one instant.
// Position is the stack depth for ZoneStack, the emission order for
// ZoneOutput, the reading order for ZoneInput and always 0 for ZoneDiscarded.
type Location struct {
	Zone     Zone `json:"zone" yaml:"zone" msgpack:"zone"`
	Position int  `json:"position" yaml:"position" msgpack:"position"`
}
