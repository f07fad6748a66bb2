// Package tracefmt renders conversion traces for people and for other programs.
package tracefmt

import (
	"fmt"
	"io"
	"strings"

	"shunt/internal/engine"
)

// Format selects a renderer.
type Format uint8

const (
	FormatPretty   Format = iota // colored step blocks
	FormatJSON                   // whole result, indented
	FormatNDJSON                 // one step per line
	FormatYAML                   // whole result
	FormatMsgpack                // whole result, binary
	FormatMarkdown               // table of steps
)

func (f Format) String() string {
	switch f {
	case FormatPretty:
		return "pretty"
	case FormatJSON:
		return "json"
	case FormatNDJSON:
		return "ndjson"
	case FormatYAML:
		return "yaml"
	case FormatMsgpack:
		return "msgpack"
	case FormatMarkdown:
		return "markdown"
	default:
		return "unknown"
	}
}

// ParseFormat converts a flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "pretty":
		return FormatPretty, nil
	case "json":
		return FormatJSON, nil
	case "ndjson":
		return FormatNDJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp":
		return FormatMsgpack, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	default:
		return FormatPretty, fmt.Errorf("invalid format: %q (expected: pretty|json|ndjson|yaml|msgpack|markdown)", s)
	}
}

// Binary reports whether the format must not be written to a terminal.
func (f Format) Binary() bool { return f == FormatMsgpack }

// Options tune the human-oriented renderers. Machine formats ignore them.
type Options struct {
	Color bool
	// Glamour renders markdown for a terminal instead of emitting the source.
	Glamour bool
	// Width wraps glamour output; 0 keeps the renderer default.
	Width int
}

// Write renders res in format f.
func Write(w io.Writer, res *engine.Result, f Format, opts Options) error {
	switch f {
	case FormatPretty:
		return WritePretty(w, res, opts)
	case FormatJSON:
		return WriteJSON(w, res)
	case FormatNDJSON:
		return WriteNDJSON(w, res)
	case FormatYAML:
		return WriteYAML(w, res)
	case FormatMsgpack:
		return WriteMsgpack(w, res)
	case FormatMarkdown:
		return WriteMarkdown(w, res, opts)
	default:
		return fmt.Errorf("unknown format: %v", f)
	}
}
