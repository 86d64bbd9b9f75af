package token

import (
	"pyrsc/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a numeric, boolean, string or None
// literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, KwTrue, KwFalse, KwNone:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	switch t.Kind {
	case KwDef, KwReturn, KwIf, KwElif, KwElse, KwWhile, KwFor, KwIn,
		KwBreak, KwContinue, KwPass, KwAnd, KwOr, KwNot, KwTrue, KwFalse, KwNone:
		return true
	default:
		return false
	}
}

// IsLayout reports whether the token is synthesized from line structure
// rather than scanned from characters.
func (t Token) IsLayout() bool {
	switch t.Kind {
	case Newline, Indent, Dedent:
		return true
	default:
		return false
	}
}

// IsIdent reports whether the token is an identifier.
func (t Token) IsIdent() bool { return t.Kind == Ident }
