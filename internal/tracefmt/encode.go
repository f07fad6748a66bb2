package tracefmt

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"shunt/internal/engine"
	"shunt/internal/token"
)

// Document is the serialized form of a result. Notation is redundant with
// the steps and is included for consumers that only want the answer.
type Document struct {
	Mode     engine.Mode   `json:"mode" yaml:"mode" msgpack:"mode"`
	Notation string        `json:"notation" yaml:"notation" msgpack:"notation"`
	Tokens   []token.Token `json:"tokens" yaml:"tokens" msgpack:"tokens"`
	Steps    []engine.Step `json:"steps" yaml:"steps" msgpack:"steps"`
}

// NewDocument wraps res for encoding.
func NewDocument(res *engine.Result) Document {
	return Document{Mode: res.Mode, Notation: res.Notation(), Tokens: res.Tokens, Steps: res.Steps}
}

// WriteJSON writes the whole result as indented JSON.
func WriteJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewDocument(res))
}

// WriteNDJSON writes one JSON object per step.
func WriteNDJSON(w io.Writer, res *engine.Result) error {
	enc := json.NewEncoder(w)
	for i := range res.Steps {
		if err := enc.Encode(res.Steps[i]); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

// WriteYAML writes the whole result as YAML.
func WriteYAML(w io.Writer, res *engine.Result) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(NewDocument(res)); err != nil {
		return err
	}
	return enc.Close()
}

// WriteMsgpack writes the whole result as msgpack.
func WriteMsgpack(w io.Writer, res *engine.Result) error {
	return msgpack.NewEncoder(w).Encode(NewDocument(res))
}

// ReadJSON decodes a document written by WriteJSON.
func ReadJSON(r io.Reader) (*engine.Result, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode json trace: %w", err)
	}
	return doc.result()
}

// ReadMsgpack decodes a document written by WriteMsgpack.
func ReadMsgpack(r io.Reader) (*engine.Result, error) {
	var doc Document
	if err := msgpack.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode msgpack trace: %w", err)
	}
	return doc.result()
}

func (d Document) result() (*engine.Result, error) {
	if len(d.Steps) < 2 {
		return nil, fmt.Errorf("trace has %d steps, want at least 2", len(d.Steps))
	}
	return &engine.Result{Tokens: d.Tokens, Steps: d.Steps, Mode: d.Mode}, nil
}
