package parser

import (
	"fmt"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/token"
)

// Expression grammar, loosest to tightest:
//
//	or     := and { "or" and }
//	and    := not { "and" not }
//	not    := "not" not | cmp
//	cmp    := add [ cmpop add ]          (no chaining in the strict subset)
//	add    := mul { ("+"|"-") mul }
//	mul    := unary { ("*"|"/"|"//"|"%") unary }
//	unary  := "-" unary | postfix
//	postfix:= primary { "(" args ")" | "[" expr "]" }
func (p *Parser) parseExpr() (ast.ExprID, bool) {
	return p.parseOr()
}

func (p *Parser) parseOr() (ast.ExprID, bool) {
	left, ok := p.parseAnd()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.KwOr) {
		p.advance()
		right, ok := p.parseAnd()
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBoolOp(span, ast.BoolOr, left, right)
	}
	return left, true
}

func (p *Parser) parseAnd() (ast.ExprID, bool) {
	left, ok := p.parseNot()
	if !ok {
		return ast.NoExprID, false
	}
	for p.at(token.KwAnd) {
		p.advance()
		right, ok := p.parseNot()
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBoolOp(span, ast.BoolAnd, left, right)
	}
	return left, true
}

func (p *Parser) parseNot() (ast.ExprID, bool) {
	if p.at(token.KwNot) {
		notTok := p.advance()
		operand, ok := p.parseNot()
		if !ok {
			return ast.NoExprID, false
		}
		span := notTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		return p.arenas.Exprs.NewUnary(span, ast.UnaryNot, operand), true
	}
	return p.parseComparison()
}

func comparisonOp(k token.Kind) (ast.BinaryOp, bool) {
	switch k {
	case token.EqEq:
		return ast.BinEq, true
	case token.BangEq:
		return ast.BinNe, true
	case token.Lt:
		return ast.BinLt, true
	case token.LtEq:
		return ast.BinLe, true
	case token.Gt:
		return ast.BinGt, true
	case token.GtEq:
		return ast.BinGe, true
	}
	return 0, false
}

func (p *Parser) parseComparison() (ast.ExprID, bool) {
	left, ok := p.parseAdditive()
	if !ok {
		return ast.NoExprID, false
	}
	op, isCmp := comparisonOp(p.peek().Kind)
	if !isCmp {
		return left, true
	}
	p.advance()
	right, ok := p.parseAdditive()
	if !ok {
		return ast.NoExprID, false
	}
	if _, chained := comparisonOp(p.peek().Kind); chained {
		p.report(diag.SynUnexpectedToken, p.peek().Span,
			"comparison chaining is not supported")
		return ast.NoExprID, false
	}
	span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
	return p.arenas.Exprs.NewBinary(span, op, left, right), true
}

func (p *Parser) parseAdditive() (ast.ExprID, bool) {
	left, ok := p.parseMultiplicative()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case token.Plus:
			op = ast.BinAdd
		case token.Minus:
			op = ast.BinSub
		default:
			return left, true
		}
		p.advance()
		right, ok := p.parseMultiplicative()
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, op, left, right)
	}
}

func (p *Parser) parseMultiplicative() (ast.ExprID, bool) {
	left, ok := p.parseUnary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		var op ast.BinaryOp
		switch p.peek().Kind {
		case token.Star:
			op = ast.BinMul
		case token.Slash:
			op = ast.BinDiv
		case token.SlashSlash:
			op = ast.BinFloorDiv
		case token.Percent:
			op = ast.BinMod
		default:
			return left, true
		}
		p.advance()
		right, ok := p.parseUnary()
		if !ok {
			return ast.NoExprID, false
		}
		span := p.arenas.Exprs.Get(left).Span.Cover(p.arenas.Exprs.Get(right).Span)
		left = p.arenas.Exprs.NewBinary(span, op, left, right)
	}
}

func (p *Parser) parseUnary() (ast.ExprID, bool) {
	if p.at(token.Minus) {
		minusTok := p.advance()
		operand, ok := p.parseUnary()
		if !ok {
			return ast.NoExprID, false
		}
		span := minusTok.Span.Cover(p.arenas.Exprs.Get(operand).Span)
		return p.arenas.Exprs.NewUnary(span, ast.UnaryNeg, operand), true
	}
	return p.parsePostfix()
}

func (p *Parser) parsePostfix() (ast.ExprID, bool) {
	expr, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}
	for {
		switch p.peek().Kind {
		case token.LParen:
			p.advance()
			var args []ast.ExprID
			for !p.at(token.RParen) {
				arg, ok := p.parseExpr()
				if !ok {
					return ast.NoExprID, false
				}
				args = append(args, arg)
				if !p.at(token.Comma) {
					break
				}
				p.advance()
			}
			if _, ok := p.expect(token.RParen); !ok {
				return ast.NoExprID, false
			}
			span := p.arenas.Exprs.Get(expr).Span.Cover(p.lastSpan)
			expr = p.arenas.Exprs.NewCall(span, expr, args)

		case token.LBracket:
			p.advance()
			index, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			if _, ok := p.expect(token.RBracket); !ok {
				return ast.NoExprID, false
			}
			span := p.arenas.Exprs.Get(expr).Span.Cover(p.lastSpan)
			expr = p.arenas.Exprs.NewIndex(span, expr, index)

		default:
			return expr, true
		}
	}
}

func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.peek()
	switch tok.Kind {
	case token.Ident:
		p.advance()
		return p.arenas.Exprs.NewIdent(tok.Span, p.arenas.Strings.Intern(tok.Text)), true

	case token.IntLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitInt, tok.Text), true

	case token.FloatLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitFloat, tok.Text), true

	case token.StringLit:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitString, tok.Text), true

	case token.KwTrue:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitTrue, ""), true

	case token.KwFalse:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitFalse, ""), true

	case token.KwNone:
		p.advance()
		return p.arenas.Exprs.NewLiteral(tok.Span, ast.LitNone, ""), true

	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return ast.NoExprID, false
		}
		if _, ok := p.expect(token.RParen); !ok {
			return ast.NoExprID, false
		}
		return inner, true

	case token.LBracket:
		p.advance()
		var elems []ast.ExprID
		for !p.at(token.RBracket) {
			elem, ok := p.parseExpr()
			if !ok {
				return ast.NoExprID, false
			}
			elems = append(elems, elem)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.RBracket); !ok {
			return ast.NoExprID, false
		}
		span := tok.Span.Cover(p.lastSpan)
		return p.arenas.Exprs.NewList(span, elems), true

	default:
		p.report(diag.SynUnexpectedToken, tok.Span,
			fmt.Sprintf("expected an expression, found %q", tok.Kind.String()))
		return ast.NoExprID, false
	}
}
