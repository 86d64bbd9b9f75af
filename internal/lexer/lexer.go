package lexer

import (
	"pyrsc/internal/diag"
	"pyrsc/internal/source"
	"pyrsc/internal/token"
)

// Lexer scans one Python-subset source file into tokens. Indentation is
// turned into synthetic Indent/Dedent tokens using a stack of indentation
// widths: a deeper line pushes and emits Indent, a shallower line pops and
// emits one Dedent per level. A dedent that lands between two known levels
// is reported as an inconsistency.
type Lexer struct {
	file        *source.File
	cursor      Cursor
	opts        Options
	pending     []token.Token // layout tokens waiting to be delivered
	indents     []uint32      // indentation stack, always starts with 0
	atLineStart bool
	brackets    int // depth of ( and [; newlines inside are joined
	eofEmitted  bool
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:        file,
		cursor:      NewCursor(file),
		opts:        opts,
		indents:     []uint32{0},
		atLineStart: true,
	}
}

// Next returns the next token. After the final Dedent/EOF sequence it keeps
// returning EOF.
func (lx *Lexer) Next() token.Token {
	for {
		if len(lx.pending) > 0 {
			tok := lx.pending[0]
			lx.pending = lx.pending[1:]
			return tok
		}

		if lx.atLineStart && lx.brackets == 0 {
			lx.handleLineStart()
			continue
		}

		lx.skipInlineSpace()

		if lx.cursor.EOF() {
			lx.queueEOF(true)
			continue
		}

		ch := lx.cursor.Peek()
		switch {
		case ch == '\n':
			nl := lx.scanNewline()
			if lx.brackets > 0 {
				continue // implicit line joining inside brackets
			}
			lx.atLineStart = true
			return nl

		case ch == '#':
			lx.skipComment()

		case isIdentStartByte(ch) || ch >= utf8RuneSelf:
			return lx.scanIdentOrKeyword()

		case isDec(ch):
			return lx.scanNumber()

		case ch == '.' && isDec(lx.cursor.PeekAt(1)):
			return lx.scanNumber()

		case ch == '"' || ch == '\'':
			return lx.scanString()

		default:
			return lx.scanOperatorOrPunct()
		}
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	t := lx.Next()
	lx.pending = append([]token.Token{t}, lx.pending...)
	return t
}

// Tokenize drains the lexer into a slice ending with EOF.
func Tokenize(file *source.File, opts Options) []token.Token {
	lx := New(file, opts)
	var out []token.Token
	for {
		tok := lx.Next()
		out = append(out, tok)
		if tok.Kind == token.EOF {
			return out
		}
	}
}

// handleLineStart measures leading whitespace, skips blank and comment-only
// lines, and queues Indent/Dedent tokens against the indentation stack.
func (lx *Lexer) handleLineStart() {
	start := lx.cursor.Mark()
	width := uint32(0)
	for {
		switch lx.cursor.Peek() {
		case ' ':
			lx.cursor.Bump()
			width++
			continue
		case '\t':
			lx.cursor.Bump()
			// tabs advance to the next multiple of 8, like CPython
			width += 8 - width%8
			continue
		}
		break
	}

	// Blank or comment-only lines never affect indentation.
	if lx.cursor.Peek() == '#' {
		lx.skipComment()
	}
	if lx.cursor.Peek() == '\n' {
		lx.cursor.Bump()
		return
	}
	if lx.cursor.EOF() {
		lx.queueEOF(false)
		lx.atLineStart = false
		return
	}

	lx.atLineStart = false
	sp := lx.cursor.SpanFrom(start)
	current := lx.indents[len(lx.indents)-1]
	switch {
	case width > current:
		lx.indents = append(lx.indents, width)
		lx.pending = append(lx.pending, token.Token{Kind: token.Indent, Span: sp})
	case width < current:
		for lx.indents[len(lx.indents)-1] > width {
			lx.indents = lx.indents[:len(lx.indents)-1]
			lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
		}
		if lx.indents[len(lx.indents)-1] != width {
			lx.report(diag.LexInconsistentIndent, sp,
				"unindent does not match any outer indentation level")
		}
	}
}

// queueEOF appends the final Newline/Dedent/EOF sequence exactly once.
// needNewline is set when EOF was hit mid-line (no trailing newline in the
// file), so the last logical line still gets terminated.
func (lx *Lexer) queueEOF(needNewline bool) {
	if lx.eofEmitted {
		lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: lx.emptySpan()})
		return
	}
	lx.eofEmitted = true
	sp := lx.emptySpan()
	if needNewline {
		lx.pending = append(lx.pending, token.Token{Kind: token.Newline, Span: sp})
	}
	for len(lx.indents) > 1 {
		lx.indents = lx.indents[:len(lx.indents)-1]
		lx.pending = append(lx.pending, token.Token{Kind: token.Dedent, Span: sp})
	}
	lx.pending = append(lx.pending, token.Token{Kind: token.EOF, Span: sp})
}

func (lx *Lexer) scanNewline() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	return token.Token{Kind: token.Newline, Span: lx.cursor.SpanFrom(start), Text: "\n"}
}

func (lx *Lexer) skipInlineSpace() {
	for {
		switch lx.cursor.Peek() {
		case ' ', '\t', '\r':
			lx.cursor.Bump()
		case '\\':
			// explicit line joining: backslash immediately before newline
			if lx.cursor.PeekAt(1) == '\n' {
				lx.cursor.Bump()
				lx.cursor.Bump()
				continue
			}
			return
		default:
			return
		}
	}
}

func (lx *Lexer) skipComment() {
	for !lx.cursor.EOF() && lx.cursor.Peek() != '\n' {
		lx.cursor.Bump()
	}
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}
