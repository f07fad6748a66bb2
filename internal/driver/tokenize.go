package driver

import (
	"golang.org/x/text/unicode/norm"

	"shunt/internal/lexer"
	"shunt/internal/token"
)

// Skip is a character the lexer ignored.
type Skip struct {
	Span    token.Span `json:"span"`
	Text    string     `json:"text"`
	Message string     `json:"message"`
}

// TokenizeResult holds the tokens of a normalized expression.
type TokenizeResult struct {
	Expression string        `json:"expression"`
	Tokens     []token.Token `json:"tokens"`
	Skipped    []Skip        `json:"skipped,omitempty"`
}

type skipCollector struct {
	src   string
	skips []Skip
}

func (c *skipCollector) Report(_ string, sp token.Span, msg string) {
	c.skips = append(c.skips, Skip{Span: sp, Text: c.src[sp.Start:sp.End], Message: msg})
}

// Normalize puts expr into Unicode NFC so that visually identical inputs
// tokenize, and cache, identically.
func Normalize(expr string) string {
	return norm.NFC.String(expr)
}

// Tokenize normalizes expr and splits it into tokens.
func Tokenize(expr string) *TokenizeResult {
	src := Normalize(expr)
	c := &skipCollector{src: src}
	return &TokenizeResult{Expression: src, Tokens: lexerTokens(src, c), Skipped: c.skips}
}

func lexerTokens(src string, c *skipCollector) []token.Token {
	return lexer.New(src, lexer.Options{Reporter: c}).All()
}
