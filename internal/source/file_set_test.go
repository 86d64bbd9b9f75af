package source_test

import (
	"testing"

	"pyrsc/internal/source"
)

func TestAddVirtualAndResolve(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.py", []byte("x: int = 1\ny: int = 2\n"))

	f := fs.Get(id)
	if f.Path != "test.py" {
		t.Fatalf("path = %q, want test.py", f.Path)
	}
	if f.Flags&source.FileVirtual == 0 {
		t.Fatalf("virtual flag not set")
	}

	// "y" starts at byte 11, line 2 col 1
	start, end := fs.Resolve(source.Span{File: id, Start: 11, End: 12})
	if start.Line != 2 || start.Col != 1 {
		t.Errorf("start = %+v, want line 2 col 1", start)
	}
	if end.Line != 2 || end.Col != 2 {
		t.Errorf("end = %+v, want line 2 col 2", end)
	}
}

func TestGetLine(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("t.py", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
		{0, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestCRLFNormalization(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("crlf.py", []byte("a = 1\nb = 2\n"), 0)
	f := fs.Get(id)
	if len(f.LineIdx) != 2 {
		t.Fatalf("line index = %v, want two entries", f.LineIdx)
	}
}

func TestVersioning(t *testing.T) {
	fs := source.NewFileSet()
	first := fs.AddVirtual("v.py", []byte("old"))
	second := fs.AddVirtual("v.py", []byte("new"))
	if first == second {
		t.Fatalf("expected distinct IDs for re-added path")
	}
	f, ok := fs.GetByPath("v.py")
	if !ok || string(f.Content) != "new" {
		t.Fatalf("index should point at the latest version")
	}
}
