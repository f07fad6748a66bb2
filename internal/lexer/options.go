package lexer

import "shunt/internal/token"

// Reporter receives notices about input the lexer skipped.
// Skipping is not an error: callers use it for warnings only.
type Reporter interface {
	Report(kind string, span token.Span, msg string)
}

type Options struct {
	Reporter Reporter // may be nil
}

func (lx *Lexer) report(kind string, sp token.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(kind, sp, msg)
	}
}
