package types

import (
	"fmt"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
)

// ResolveAnnotation turns a syntactic type expression into a TypeID.
// Unknown names and wrong generic arity are reported as TypeSyntaxError
// diagnostics and yield the error sentinel so checking can continue.
func (in *Interner) ResolveAnnotation(builder *ast.Builder, id ast.TypeExprID, reporter diag.Reporter) TypeID {
	te := builder.TypeExprs.Get(id)
	if te == nil {
		return in.builtins.Error
	}
	name := builder.Name(te.Name)

	if name == "list" {
		if !te.Subscripted || len(te.Args) != 1 {
			diag.ReportError(reporter, diag.TypeSyntaxBadArity, te.Span,
				fmt.Sprintf("list takes exactly one type argument, got %d", len(te.Args)))
			return in.builtins.Error
		}
		elem := in.ResolveAnnotation(builder, te.Args[0], reporter)
		if in.IsError(elem) {
			return in.builtins.Error
		}
		return in.RegisterList(elem)
	}

	var prim TypeID
	switch name {
	case "int":
		prim = in.builtins.Int
	case "float":
		prim = in.builtins.Float
	case "bool":
		prim = in.builtins.Bool
	case "str":
		prim = in.builtins.Str
	case "None":
		prim = in.builtins.None
	default:
		diag.ReportError(reporter, diag.TypeSyntaxUnknownName, te.NameSpan,
			fmt.Sprintf("unknown type name `%s`", name))
		return in.builtins.Error
	}

	if te.Subscripted {
		diag.ReportError(reporter, diag.TypeSyntaxBadArity, te.Span,
			fmt.Sprintf("`%s` takes no type arguments", name))
		return in.builtins.Error
	}
	return prim
}
