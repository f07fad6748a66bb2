package token

import "fmt"

// Span is a byte range in the original expression.
type Span struct {
	Start uint32 `json:"start" yaml:"start" msgpack:"start"` // inclusive
	End   uint32 `json:"end" yaml:"end" msgpack:"end"`       // exclusive
}

func (s Span) Empty() bool {
	return s.Start == s.End
}

func (s Span) Len() uint32 {
	return s.End - s.Start
}

func (s Span) String() string {
	return fmt.Sprintf("%d-%d", s.Start, s.End)
}
