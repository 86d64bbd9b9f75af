package source_test

import (
	"testing"

	"pyrsc/internal/source"
)

func TestInternerDedup(t *testing.T) {
	in := source.NewInterner()
	a := in.Intern("foo")
	b := in.Intern("foo")
	c := in.Intern("bar")

	if a != b {
		t.Errorf("same string interned to different IDs: %d vs %d", a, b)
	}
	if a == c {
		t.Errorf("distinct strings interned to same ID")
	}
	if got := in.MustLookup(a); got != "foo" {
		t.Errorf("MustLookup = %q, want foo", got)
	}
}

func TestInternerEmptyString(t *testing.T) {
	in := source.NewInterner()
	if id := in.Intern(""); id != source.NoStringID {
		t.Errorf("empty string interned to %d, want NoStringID", id)
	}
	if got, ok := in.Lookup(source.NoStringID); !ok || got != "" {
		t.Errorf("Lookup(NoStringID) = %q, %v", got, ok)
	}
}
