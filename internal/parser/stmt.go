package parser

import (
	"fmt"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/token"
)

// parseStmt parses one statement, consuming its terminating newline.
func (p *Parser) parseStmt() (ast.StmtID, bool) {
	switch p.peek().Kind {
	case token.KwPass:
		tok := p.advance()
		if !p.endOfStmt() {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewPass(tok.Span), true

	case token.KwBreak:
		tok := p.advance()
		if p.loops == 0 {
			p.report(diag.SynBreakOutsideLoop, tok.Span, "'break' outside a loop")
		}
		if !p.endOfStmt() {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewBreak(tok.Span), true

	case token.KwContinue:
		tok := p.advance()
		if p.loops == 0 {
			p.report(diag.SynBreakOutsideLoop, tok.Span, "'continue' outside a loop")
		}
		if !p.endOfStmt() {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewContinue(tok.Span), true

	case token.KwReturn:
		return p.parseReturn()

	case token.KwIf:
		return p.parseIf()

	case token.KwWhile:
		return p.parseWhile()

	case token.KwFor:
		return p.parseFor()

	case token.KwDef:
		p.report(diag.SynNestedDef, p.peek().Span,
			"nested function definitions are not supported")
		return ast.NoStmtID, false

	default:
		return p.parseSimpleStmt()
	}
}

// endOfStmt consumes the statement's newline. Dedent and EOF also close a
// statement (inline suites, end of file).
func (p *Parser) endOfStmt() bool {
	switch p.peek().Kind {
	case token.Newline:
		p.advance()
		return true
	case token.Dedent, token.EOF:
		return true
	default:
		got := p.peek()
		p.report(diag.SynUnexpectedToken, got.Span,
			fmt.Sprintf("expected end of statement, found %q", got.Kind.String()))
		return false
	}
}

func (p *Parser) parseReturn() (ast.StmtID, bool) {
	retTok := p.advance()
	value := ast.NoExprID
	if !p.at(token.Newline) && !p.at(token.Dedent) && !p.at(token.EOF) {
		expr, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		value = expr
	}
	span := retTok.Span.Cover(p.lastSpan)
	if !p.endOfStmt() {
		return ast.NoStmtID, false
	}
	return p.arenas.Stmts.NewReturn(span, value), true
}

// parseIf parses if/elif/else; every elif becomes a nested if in the else
// branch, so later stages only see two-way branches.
func (p *Parser) parseIf() (ast.StmtID, bool) {
	ifTok := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	then, ok := p.parseSuite()
	if !ok {
		return ast.NoStmtID, false
	}

	var els []ast.StmtID
	p.skipBlankBeforeBranch()
	switch p.peek().Kind {
	case token.KwElif:
		nested, ok := p.parseIf()
		if !ok {
			return ast.NoStmtID, false
		}
		els = []ast.StmtID{nested}
	case token.KwElse:
		p.advance()
		elsBody, ok := p.parseSuite()
		if !ok {
			return ast.NoStmtID, false
		}
		els = elsBody
	}

	span := ifTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewIf(span, ast.StmtIfData{Cond: cond, Then: then, Else: els}), true
}

// skipBlankBeforeBranch looks past blank lines to a possible elif/else at
// the same indentation level.
func (p *Parser) skipBlankBeforeBranch() {
	for p.at(token.Newline) {
		p.advance()
	}
}

func (p *Parser) parseWhile() (ast.StmtID, bool) {
	whileTok := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}
	p.loops++
	body, ok := p.parseSuite()
	p.loops--
	if !ok {
		return ast.NoStmtID, false
	}
	span := whileTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewWhile(span, ast.StmtWhileData{Cond: cond, Body: body}), true
}

// parseFor parses `for x in range(...):`. Only counted range loops are in
// the subset; any other iterable is reported.
func (p *Parser) parseFor() (ast.StmtID, bool) {
	forTok := p.advance()

	nameTok, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoStmtID, false
	}
	if _, ok := p.expect(token.KwIn); !ok {
		return ast.NoStmtID, false
	}

	iterable, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	args, ok := p.rangeArgs(iterable)
	if !ok {
		p.report(diag.SynBadForIterable, p.arenas.Exprs.Get(iterable).Span,
			"for loops support only range(...) iterables")
		return ast.NoStmtID, false
	}

	p.loops++
	body, ok := p.parseSuite()
	p.loops--
	if !ok {
		return ast.NoStmtID, false
	}

	span := forTok.Span.Cover(p.lastSpan)
	return p.arenas.Stmts.NewFor(span, ast.StmtForData{
		Var:     p.arenas.Strings.Intern(nameTok.Text),
		VarSpan: nameTok.Span,
		Args:    args,
		Body:    body,
	}), true
}

// rangeArgs extracts the argument list when the iterable is a direct call
// to `range` with one to three arguments.
func (p *Parser) rangeArgs(iterable ast.ExprID) ([]ast.ExprID, bool) {
	call, ok := p.arenas.Exprs.Call(iterable)
	if !ok {
		return nil, false
	}
	ident, ok := p.arenas.Exprs.Ident(call.Callee)
	if !ok {
		return nil, false
	}
	if p.arenas.Name(ident.Name) != "range" {
		return nil, false
	}
	if len(call.Args) < 1 || len(call.Args) > 3 {
		return nil, false
	}
	return call.Args, true
}

// parseSimpleStmt handles assignments and expression statements, which all
// start with an expression.
func (p *Parser) parseSimpleStmt() (ast.StmtID, bool) {
	startSpan := p.peek().Span
	expr, ok := p.parseExpr()
	if !ok {
		return ast.NoStmtID, false
	}

	switch p.peek().Kind {
	case token.Colon:
		// annotated declaration: target must be a bare name
		ident, isIdent := p.arenas.Exprs.Ident(expr)
		if !isIdent {
			p.report(diag.SynUnexpectedToken, p.peek().Span,
				"only a simple name can be annotated")
			return ast.NoStmtID, false
		}
		p.advance()
		ann, ok := p.parseTypeExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		if !p.at(token.Assign) {
			p.report(diag.SynExpectedInit, p.peek().Span,
				"an annotated declaration requires an initializer")
			return ast.NoStmtID, false
		}
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		span := startSpan.Cover(p.lastSpan)
		if !p.endOfStmt() {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewAssign(span, ast.StmtAssignData{
			Name:     ident.Name,
			NameSpan: p.arenas.Exprs.Get(expr).Span,
			Ann:      ann,
			Value:    value,
		}), true

	case token.Assign:
		p.advance()
		value, ok := p.parseExpr()
		if !ok {
			return ast.NoStmtID, false
		}
		span := startSpan.Cover(p.lastSpan)
		if !p.endOfStmt() {
			return ast.NoStmtID, false
		}
		if ident, isIdent := p.arenas.Exprs.Ident(expr); isIdent {
			return p.arenas.Stmts.NewAssign(span, ast.StmtAssignData{
				Name:     ident.Name,
				NameSpan: p.arenas.Exprs.Get(expr).Span,
				Ann:      ast.NoTypeExprID,
				Value:    value,
			}), true
		}
		if index, isIndex := p.arenas.Exprs.Index(expr); isIndex {
			return p.arenas.Stmts.NewIndexAssign(span, ast.StmtIndexAssignData{
				Base:  index.Base,
				Index: index.Index,
				Value: value,
			}), true
		}
		p.report(diag.SynUnexpectedToken, span, "invalid assignment target")
		return ast.NoStmtID, false

	default:
		span := startSpan.Cover(p.lastSpan)
		if !p.endOfStmt() {
			return ast.NoStmtID, false
		}
		return p.arenas.Stmts.NewExpr(span, expr), true
	}
}
