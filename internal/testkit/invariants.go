package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"pyrsc/internal/ast"
	"pyrsc/internal/source"
)

// CheckSpanInvariants runs a minimal set of span invariants on a parsed file:
// 1) file.Span is non-empty and within file content bounds
// 2) every item and top-level statement span is non-empty and fully
//    contained in file.Span
// 3) file.Span covers the union of item and statement spans (if any exist)
func CheckSpanInvariants(b *ast.Builder, fileID ast.FileID, sf *source.File) error {
	if b == nil || sf == nil {
		return fmt.Errorf("nil builder or file")
	}
	f := b.Files.Get(fileID)
	if f == nil {
		return fmt.Errorf("file node not found")
	}

	if f.Span.End <= f.Span.Start {
		return fmt.Errorf("file span is empty: %v", f.Span)
	}
	if f.Span.File != sf.ID {
		return fmt.Errorf("file span points to different file id: got=%d want=%d", f.Span.File, sf.ID)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	if f.Span.End > lenContent {
		return fmt.Errorf("file span end beyond content: %d > %d", f.Span.End, lenContent)
	}

	var union source.Span
	var have bool
	cover := func(what string, sp source.Span) error {
		if sp.End <= sp.Start {
			return fmt.Errorf("empty %s span: %v", what, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("%s span file mismatch: got=%d want=%d", what, sp.File, sf.ID)
		}
		if sp.Start < f.Span.Start || sp.End > f.Span.End {
			return fmt.Errorf("%s span %v is outside file span %v", what, sp, f.Span)
		}
		if !have {
			union = sp
			have = true
		} else {
			union = union.Cover(sp)
		}
		return nil
	}

	for _, it := range f.Items {
		item := b.Items.Get(it)
		if item == nil {
			return fmt.Errorf("nil item for id=%d", it)
		}
		if err := cover("item", item.Span); err != nil {
			return err
		}
	}
	for _, st := range f.Body {
		stmt := b.Stmts.Get(st)
		if stmt == nil {
			return fmt.Errorf("nil stmt for id=%d", st)
		}
		if err := cover("stmt", stmt.Span); err != nil {
			return err
		}
	}

	if have {
		if union.Start < f.Span.Start || union.End > f.Span.End {
			return fmt.Errorf("file span %v does not cover union of nodes %v", f.Span, union)
		}
	}
	return nil
}
