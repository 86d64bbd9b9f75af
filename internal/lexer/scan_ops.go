package lexer

import (
	"fmt"

	"pyrsc/internal/diag"
	"pyrsc/internal/token"
)

// scanOperatorOrPunct scans operators, brackets and punctuation, tracking
// bracket depth for implicit line joining.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	b := lx.cursor.Bump()

	emit := func(kind token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: kind, Span: sp, Text: lx.textFrom(sp)}
	}

	switch b {
	case '+':
		return emit(token.Plus)
	case '-':
		if lx.cursor.Peek() == '>' {
			lx.cursor.Bump()
			return emit(token.Arrow)
		}
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		if lx.cursor.Peek() == '/' {
			lx.cursor.Bump()
			return emit(token.SlashSlash)
		}
		return emit(token.Slash)
	case '%':
		return emit(token.Percent)
	case '=':
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			return emit(token.EqEq)
		}
		return emit(token.Assign)
	case '!':
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			return emit(token.BangEq)
		}
	case '<':
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			return emit(token.LtEq)
		}
		return emit(token.Lt)
	case '>':
		if lx.cursor.Peek() == '=' {
			lx.cursor.Bump()
			return emit(token.GtEq)
		}
		return emit(token.Gt)
	case ':':
		return emit(token.Colon)
	case ',':
		return emit(token.Comma)
	case '(':
		lx.brackets++
		return emit(token.LParen)
	case ')':
		if lx.brackets > 0 {
			lx.brackets--
		}
		return emit(token.RParen)
	case '[':
		lx.brackets++
		return emit(token.LBracket)
	case ']':
		if lx.brackets > 0 {
			lx.brackets--
		}
		return emit(token.RBracket)
	}

	sp := lx.cursor.SpanFrom(start)
	lx.report(diag.LexUnknownChar, sp, fmt.Sprintf("unexpected character %q", b))
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.textFrom(sp)}
}
