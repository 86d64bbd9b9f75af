package lexer

import (
	"strings"

	"pyrsc/internal/diag"
	"pyrsc/internal/token"
)

// scanString scans a single- or double-quoted string literal on one line.
// Token.Text carries the decoded value, not the raw source slice.
func (lx *Lexer) scanString() token.Token {
	start := lx.cursor.Mark()
	quote := lx.cursor.Bump()

	var out strings.Builder
	for {
		if lx.cursor.EOF() || lx.cursor.Peek() == '\n' {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexUnterminatedString, sp, "unterminated string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: out.String()}
		}

		b := lx.cursor.Bump()
		if b == quote {
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: out.String()}
		}
		if b != '\\' {
			out.WriteByte(b)
			continue
		}

		esc := lx.cursor.Bump()
		switch esc {
		case 'n':
			out.WriteByte('\n')
		case 't':
			out.WriteByte('\t')
		case 'r':
			out.WriteByte('\r')
		case '\\':
			out.WriteByte('\\')
		case '\'':
			out.WriteByte('\'')
		case '"':
			out.WriteByte('"')
		case '0':
			out.WriteByte(0)
		default:
			// unknown escapes keep the backslash, like Python
			out.WriteByte('\\')
			out.WriteByte(esc)
		}
	}
}
