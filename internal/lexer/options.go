package lexer

import (
	"pyrsc/internal/diag"
	"pyrsc/internal/source"
)

// Options configure a lexer instance.
type Options struct {
	// Reporter receives lexical diagnostics. May be nil; lexing continues
	// either way.
	Reporter diag.Reporter
}

func (lx *Lexer) report(code diag.Code, sp source.Span, msg string) {
	if lx.opts.Reporter != nil {
		lx.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}
