package parser

import (
	"pyrsc/internal/ast"
	"pyrsc/internal/token"
)

// parseTypeExpr parses a type annotation: a name, optionally subscripted
// with comma-separated type arguments (`list[int]`). `None` is accepted as
// a type name. Validity of the name and arity is the type system's job.
func (p *Parser) parseTypeExpr() (ast.TypeExprID, bool) {
	var nameTok token.Token
	switch p.peek().Kind {
	case token.Ident, token.KwNone:
		nameTok = p.advance()
	default:
		_, _ = p.expect(token.Ident)
		return ast.NoTypeExprID, false
	}
	name := nameTok.Text
	if nameTok.Kind == token.KwNone {
		name = "None"
	}

	te := ast.TypeExpr{
		Name:     p.arenas.Strings.Intern(name),
		NameSpan: nameTok.Span,
		Span:     nameTok.Span,
	}

	if p.at(token.LBracket) {
		p.advance()
		te.Subscripted = true
		for !p.at(token.RBracket) {
			arg, ok := p.parseTypeExpr()
			if !ok {
				return ast.NoTypeExprID, false
			}
			te.Args = append(te.Args, arg)
			if !p.at(token.Comma) {
				break
			}
			p.advance()
		}
		if _, ok := p.expect(token.RBracket); !ok {
			return ast.NoTypeExprID, false
		}
		te.Span = nameTok.Span.Cover(p.lastSpan)
	}

	return p.arenas.TypeExprs.New(te), true
}
