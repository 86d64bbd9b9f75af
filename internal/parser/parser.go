package parser

import (
	"fmt"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/lexer"
	"pyrsc/internal/source"
	"pyrsc/internal/token"
)

// Options configure one parse pass.
type Options struct {
	MaxErrors uint
	Reporter  diag.Reporter
}

// Result of parsing one file.
type Result struct {
	File ast.FileID
}

// Parser holds the state for parsing a single file.
type Parser struct {
	lx       *lexer.Lexer
	arenas   *ast.Builder
	file     ast.FileID
	opts     Options
	errors   uint
	loops    uint // nesting depth of while/for bodies
	lastSpan source.Span
}

// ParseFile parses one source file into the builder's arenas.
func ParseFile(sf *source.File, arenas *ast.Builder, opts Options) Result {
	lx := lexer.New(sf, lexer.Options{Reporter: opts.Reporter})
	fileSpan := source.Span{File: sf.ID, Start: 0, End: uint32(len(sf.Content))}
	p := Parser{
		lx:     lx,
		arenas: arenas,
		file:   arenas.Files.New(fileSpan),
		opts:   opts,
	}
	p.parseModule()
	return Result{File: p.file}
}

func (p *Parser) peek() token.Token {
	return p.lx.Peek()
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	p.lastSpan = tok.Span
	return tok
}

// expect consumes a token of the wanted kind or reports and returns false.
func (p *Parser) expect(k token.Kind) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	got := p.peek()
	p.report(diag.SynUnexpectedToken, got.Span,
		fmt.Sprintf("expected %q, found %q", k.String(), got.Kind.String()))
	return got, false
}

func (p *Parser) report(code diag.Code, sp source.Span, msg string) {
	p.errors++
	if p.opts.Reporter != nil {
		p.opts.Reporter.Report(code, diag.SevError, sp, msg, nil)
	}
}

func (p *Parser) tooManyErrors() bool {
	return p.opts.MaxErrors != 0 && p.errors >= p.opts.MaxErrors
}

func (p *Parser) skipNewlines() {
	for p.at(token.Newline) {
		p.advance()
	}
}

// resyncStmt skips to the start of the next logical line so one bad
// statement does not cascade. Layout tokens are preserved for the caller.
func (p *Parser) resyncStmt() {
	for {
		switch p.peek().Kind {
		case token.Newline:
			p.advance()
			return
		case token.EOF, token.Indent, token.Dedent:
			return
		default:
			p.advance()
		}
	}
}

// parseModule is the top-level loop: function definitions become items,
// everything else module body statements.
func (p *Parser) parseModule() {
	file := p.arenas.Files.Get(p.file)
	for {
		p.skipNewlines()
		if p.at(token.EOF) || p.tooManyErrors() {
			return
		}
		if p.at(token.KwDef) {
			if itemID, ok := p.parseDef(); ok {
				file.Items = append(file.Items, itemID)
			} else {
				p.resyncStmt()
			}
			continue
		}
		if stmtID, ok := p.parseStmt(); ok {
			file.Body = append(file.Body, stmtID)
		} else {
			p.resyncStmt()
		}
	}
}
