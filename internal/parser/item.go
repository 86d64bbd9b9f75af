package parser

import (
	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/token"
)

// parseDef parses `def name(params) -> T:` and its suite. A missing arrow
// clause is tolerated here; the checker reports the strict-mode error so
// the whole file keeps producing diagnostics.
func (p *Parser) parseDef() (ast.ItemID, bool) {
	defTok, _ := p.expect(token.KwDef)

	nameTok, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoItemID, false
	}

	if _, ok := p.expect(token.LParen); !ok {
		return ast.NoItemID, false
	}

	var params []ast.ParamID
	for !p.at(token.RParen) {
		param, ok := p.parseParam()
		if !ok {
			return ast.NoItemID, false
		}
		params = append(params, param)
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen); !ok {
		return ast.NoItemID, false
	}

	ret := ast.NoTypeExprID
	if p.at(token.Arrow) {
		p.advance()
		retID, ok := p.parseTypeExpr()
		if !ok {
			return ast.NoItemID, false
		}
		ret = retID
	}

	body, ok := p.parseSuite()
	if !ok {
		return ast.NoItemID, false
	}

	span := defTok.Span.Cover(p.lastSpan)
	return p.arenas.Items.NewFunc(span, ast.FuncData{
		Name:     p.arenas.Strings.Intern(nameTok.Text),
		NameSpan: nameTok.Span,
		Params:   params,
		Return:   ret,
		Body:     body,
	}), true
}

// parseParam parses `name: T`. The annotation is optional syntactically;
// strict mode flags its absence during checking.
func (p *Parser) parseParam() (ast.ParamID, bool) {
	nameTok, ok := p.expect(token.Ident)
	if !ok {
		return ast.NoParamID, false
	}

	ann := ast.NoTypeExprID
	if p.at(token.Colon) {
		p.advance()
		annID, ok := p.parseTypeExpr()
		if !ok {
			return ast.NoParamID, false
		}
		ann = annID
	}

	return p.arenas.Items.NewParam(ast.Param{
		Name: p.arenas.Strings.Intern(nameTok.Text),
		Span: nameTok.Span,
		Ann:  ann,
	}), true
}

// parseSuite parses `:` followed by either an indented block or a single
// inline statement on the same line.
func (p *Parser) parseSuite() ([]ast.StmtID, bool) {
	if _, ok := p.expect(token.Colon); !ok {
		return nil, false
	}

	if !p.at(token.Newline) {
		// inline suite: one statement on the same line
		stmt, ok := p.parseStmt()
		if !ok {
			return nil, false
		}
		return []ast.StmtID{stmt}, true
	}

	p.skipNewlines()
	if !p.at(token.Indent) {
		p.report(diag.SynExpectedIndent, p.peek().Span, "expected an indented block")
		return nil, false
	}
	p.advance()

	var body []ast.StmtID
	for {
		p.skipNewlines()
		if p.at(token.Dedent) {
			p.advance()
			break
		}
		if p.at(token.EOF) {
			break
		}
		stmt, ok := p.parseStmt()
		if !ok {
			p.resyncStmt()
			if p.tooManyErrors() {
				return body, true
			}
			continue
		}
		body = append(body, stmt)
	}
	return body, true
}
