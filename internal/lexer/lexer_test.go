package lexer_test

import (
	"testing"

	"pyrsc/internal/diag"
	"pyrsc/internal/lexer"
	"pyrsc/internal/source"
	"pyrsc/internal/token"
)

func tokenize(input string) ([]token.Token, *diag.Bag) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.py", []byte(input))
	bag := diag.NewBag(16)
	toks := lexer.Tokenize(fs.Get(fileID), lexer.Options{
		Reporter: diag.BagReporter{Bag: bag},
	})
	return toks, bag
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func expectKinds(t *testing.T, input string, want []token.Kind) {
	t.Helper()
	toks, bag := tokenize(input)
	if bag.HasErrors() {
		t.Fatalf("unexpected lex errors for %q: %+v", input, bag.Items())
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("%q: got %v, want %v", input, got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("%q: token %d = %v, want %v (all: %v)", input, i, got[i], want[i], got)
		}
	}
}

func TestSimpleAssignment(t *testing.T) {
	expectKinds(t, "x: int = 1\n", []token.Kind{
		token.Ident, token.Colon, token.Ident, token.Assign, token.IntLit,
		token.Newline, token.EOF,
	})
}

func TestDefWithIndentedBody(t *testing.T) {
	src := "def f(a: int) -> int:\n    return a\n"
	expectKinds(t, src, []token.Kind{
		token.KwDef, token.Ident, token.LParen, token.Ident, token.Colon,
		token.Ident, token.RParen, token.Arrow, token.Ident, token.Colon,
		token.Newline,
		token.Indent, token.KwReturn, token.Ident, token.Newline,
		token.Dedent, token.EOF,
	})
}

func TestNestedDedents(t *testing.T) {
	src := "while True:\n    if x:\n        pass\ny = 1\n"
	toks, bag := tokenize(src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	dedents := 0
	for _, tok := range toks {
		if tok.Kind == token.Dedent {
			dedents++
		}
	}
	if dedents != 2 {
		t.Fatalf("dedents = %d, want 2", dedents)
	}
}

func TestInconsistentDedentReported(t *testing.T) {
	src := "if x:\n        pass\n    y = 1\n"
	_, bag := tokenize(src)
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexInconsistentIndent {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexInconsistentIndent, got %+v", bag.Items())
	}
}

func TestBlankAndCommentLinesIgnored(t *testing.T) {
	src := "x = 1\n\n# comment\n   # indented comment\ny = 2\n"
	toks, bag := tokenize(src)
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	for _, tok := range toks {
		if tok.Kind == token.Indent || tok.Kind == token.Dedent {
			t.Fatalf("blank/comment lines must not produce layout tokens: %v", kinds(toks))
		}
	}
}

func TestImplicitLineJoining(t *testing.T) {
	src := "x = f(1,\n      2)\n"
	toks, _ := tokenize(src)
	newlines := 0
	for _, tok := range toks {
		if tok.Kind == token.Newline {
			newlines++
		}
	}
	if newlines != 1 {
		t.Fatalf("newlines = %d, want 1 (joining inside parens)", newlines)
	}
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		input string
		kind  token.Kind
	}{
		{"0", token.IntLit},
		{"123", token.IntLit},
		{"1_000", token.IntLit},
		{"1.0", token.FloatLit},
		{"0.5", token.FloatLit},
		{"1e3", token.FloatLit},
		{"1.5e-3", token.FloatLit},
	}
	for _, tc := range cases {
		toks, bag := tokenize(tc.input + "\n")
		if bag.HasErrors() {
			t.Errorf("%q: unexpected errors %+v", tc.input, bag.Items())
			continue
		}
		if toks[0].Kind != tc.kind {
			t.Errorf("%q: kind = %v, want %v", tc.input, toks[0].Kind, tc.kind)
		}
	}
}

func TestBadNumberReported(t *testing.T) {
	_, bag := tokenize("x = 1abc\n")
	if !bag.HasErrors() {
		t.Fatalf("expected LexBadNumber")
	}
}

func TestStringEscapes(t *testing.T) {
	toks, bag := tokenize(`s = "a\nb"` + "\n")
	if bag.HasErrors() {
		t.Fatalf("unexpected errors: %+v", bag.Items())
	}
	if toks[2].Kind != token.StringLit || toks[2].Text != "a\nb" {
		t.Fatalf("string = %q (%v)", toks[2].Text, toks[2].Kind)
	}
}

func TestUnterminatedString(t *testing.T) {
	_, bag := tokenize("s = \"oops\n")
	found := false
	for _, d := range bag.Items() {
		if d.Code == diag.LexUnterminatedString {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected LexUnterminatedString")
	}
}

func TestKeywordsVsIdents(t *testing.T) {
	toks, _ := tokenize("def deff return returned\n")
	want := []token.Kind{token.KwDef, token.Ident, token.KwReturn, token.Ident}
	for i, k := range want {
		if toks[i].Kind != k {
			t.Fatalf("token %d = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestSpans(t *testing.T) {
	toks, _ := tokenize("ab = 12\n")
	if toks[0].Span.Start != 0 || toks[0].Span.End != 2 {
		t.Errorf("ident span = %v", toks[0].Span)
	}
	if toks[2].Span.Start != 5 || toks[2].Span.End != 7 {
		t.Errorf("int span = %v", toks[2].Span)
	}
}
