package lexer

import (
	"pyrsc/internal/diag"
	"pyrsc/internal/source"
	"pyrsc/internal/token"
)

// scanNumber scans decimal integers and floats:
//
//	[0-9][0-9_]* ( . [0-9_]+ )? ( [eE] [+-]? [0-9]+ )?
//	. [0-9_]+ ...
//
// A '.' or exponent promotes the literal to FloatLit. Malformed forms are
// reported and produce an Invalid token.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	kind := token.IntLit

	if lx.cursor.Peek() == '.' {
		kind = token.FloatLit
		lx.cursor.Bump()
		if !isDec(lx.cursor.Peek()) {
			sp := lx.cursor.SpanFrom(start)
			lx.report(diag.LexBadNumber, sp, "expected digit after '.'")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
		}
	}

	for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
		lx.cursor.Bump()
	}

	if kind == token.IntLit && lx.cursor.Peek() == '.' && isDec(lx.cursor.PeekAt(1)) {
		kind = token.FloatLit
		lx.cursor.Bump()
		for isDec(lx.cursor.Peek()) || lx.cursor.Peek() == '_' {
			lx.cursor.Bump()
		}
	}

	if b := lx.cursor.Peek(); b == 'e' || b == 'E' {
		next := lx.cursor.PeekAt(1)
		hasSign := next == '+' || next == '-'
		digitAt := uint32(1)
		if hasSign {
			digitAt = 2
		}
		if isDec(lx.cursor.PeekAt(digitAt)) {
			kind = token.FloatLit
			lx.cursor.Bump() // e
			if hasSign {
				lx.cursor.Bump()
			}
			for isDec(lx.cursor.Peek()) {
				lx.cursor.Bump()
			}
		}
	}

	// trailing identifier chars glued to a number are an error: 1abc
	if isIdentStartByte(lx.cursor.Peek()) {
		for isIdentContinueByte(lx.cursor.Peek()) {
			lx.cursor.Bump()
		}
		sp := lx.cursor.SpanFrom(start)
		lx.report(diag.LexBadNumber, sp, "invalid number literal `"+lx.textFrom(sp)+"`")
		return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
	}

	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: kind, Span: sp, Text: lx.textFrom(sp)}
}

func (lx *Lexer) textFrom(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}
