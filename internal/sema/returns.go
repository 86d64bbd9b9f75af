package sema

import (
	"pyrsc/internal/ast"
)

// terminates reports whether a statement list always leaves the function
// on every path. The analysis is structural: `return` terminates, an
// if/else terminates when both arms do, and loops never count even when
// their condition is trivially true.
func terminates(builder *ast.Builder, stmts []ast.StmtID) bool {
	for _, stmtID := range stmts {
		if stmtTerminates(builder, stmtID) {
			return true
		}
	}
	return false
}

func stmtTerminates(builder *ast.Builder, stmtID ast.StmtID) bool {
	stmt := builder.Stmts.Get(stmtID)
	switch stmt.Kind {
	case ast.StmtReturn:
		return true
	case ast.StmtIf:
		data, _ := builder.Stmts.If(stmtID)
		if len(data.Else) == 0 {
			return false
		}
		return terminates(builder, data.Then) && terminates(builder, data.Else)
	default:
		return false
	}
}
