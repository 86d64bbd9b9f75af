package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"pyrsc/internal/ast"
)

// DumpAST renders the parsed file as an indented tree, one node per line.
// Output is deterministic and used by the ast command and golden tests.
func DumpAST(w io.Writer, b *ast.Builder, fileID ast.FileID) {
	p := astPrinter{w: w, b: b}
	file := b.Files.Get(fileID)
	if file == nil {
		fmt.Fprintln(w, "<no file>")
		return
	}
	p.line(0, "File")
	for _, item := range file.Items {
		p.item(1, item)
	}
	for _, stmt := range file.Body {
		p.stmt(1, stmt)
	}
}

type astPrinter struct {
	w io.Writer
	b *ast.Builder
}

func (p *astPrinter) line(depth int, format string, args ...any) {
	fmt.Fprintf(p.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (p *astPrinter) item(depth int, id ast.ItemID) {
	item := p.b.Items.Get(id)
	if item == nil || item.Kind != ast.ItemFunc {
		p.line(depth, "<invalid item>")
		return
	}
	p.line(depth, "Func %s", p.b.Name(item.Fn.Name))
	for _, paramID := range item.Fn.Params {
		param := p.b.Items.Param(paramID)
		p.line(depth+1, "Param %s%s", p.b.Name(param.Name), p.annSuffix(param.Ann))
	}
	p.line(depth+1, "Returns%s", p.annSuffix(item.Fn.Return))
	for _, stmt := range item.Fn.Body {
		p.stmt(depth+1, stmt)
	}
}

func (p *astPrinter) annSuffix(id ast.TypeExprID) string {
	if !id.IsValid() {
		return ""
	}
	return ": " + p.typeExpr(id)
}

func (p *astPrinter) typeExpr(id ast.TypeExprID) string {
	te := p.b.TypeExprs.Get(id)
	if te == nil {
		return "<invalid>"
	}
	out := p.b.Name(te.Name)
	if te.Subscripted {
		args := make([]string, 0, len(te.Args))
		for _, arg := range te.Args {
			args = append(args, p.typeExpr(arg))
		}
		out += "[" + strings.Join(args, ", ") + "]"
	}
	return out
}

func (p *astPrinter) stmt(depth int, id ast.StmtID) {
	stmt := p.b.Stmts.Get(id)
	if stmt == nil {
		p.line(depth, "<invalid stmt>")
		return
	}
	switch stmt.Kind {
	case ast.StmtAssign:
		data, _ := p.b.Stmts.Assign(id)
		p.line(depth, "Assign %s%s", p.b.Name(data.Name), p.annSuffix(data.Ann))
		p.expr(depth+1, data.Value)
	case ast.StmtIndexAssign:
		data, _ := p.b.Stmts.IndexAssign(id)
		p.line(depth, "IndexAssign")
		p.expr(depth+1, data.Base)
		p.expr(depth+1, data.Index)
		p.expr(depth+1, data.Value)
	case ast.StmtExpr:
		data, _ := p.b.Stmts.Expr(id)
		p.line(depth, "ExprStmt")
		p.expr(depth+1, data.Value)
	case ast.StmtReturn:
		data, _ := p.b.Stmts.Return(id)
		p.line(depth, "Return")
		if data.Value.IsValid() {
			p.expr(depth+1, data.Value)
		}
	case ast.StmtIf:
		data, _ := p.b.Stmts.If(id)
		p.line(depth, "If")
		p.expr(depth+1, data.Cond)
		p.line(depth+1, "Then")
		for _, s := range data.Then {
			p.stmt(depth+2, s)
		}
		if len(data.Else) > 0 {
			p.line(depth+1, "Else")
			for _, s := range data.Else {
				p.stmt(depth+2, s)
			}
		}
	case ast.StmtWhile:
		data, _ := p.b.Stmts.While(id)
		p.line(depth, "While")
		p.expr(depth+1, data.Cond)
		for _, s := range data.Body {
			p.stmt(depth+1, s)
		}
	case ast.StmtFor:
		data, _ := p.b.Stmts.For(id)
		p.line(depth, "For %s", p.b.Name(data.Var))
		for _, arg := range data.Args {
			p.expr(depth+1, arg)
		}
		for _, s := range data.Body {
			p.stmt(depth+1, s)
		}
	case ast.StmtPass:
		p.line(depth, "Pass")
	case ast.StmtBreak:
		p.line(depth, "Break")
	case ast.StmtContinue:
		p.line(depth, "Continue")
	default:
		p.line(depth, "<stmt kind %d>", stmt.Kind)
	}
}

func (p *astPrinter) expr(depth int, id ast.ExprID) {
	expr := p.b.Exprs.Get(id)
	if expr == nil {
		p.line(depth, "<invalid expr>")
		return
	}
	switch expr.Kind {
	case ast.ExprIdent:
		data, _ := p.b.Exprs.Ident(id)
		p.line(depth, "Ident %s", p.b.Name(data.Name))
	case ast.ExprLit:
		data, _ := p.b.Exprs.Literal(id)
		p.line(depth, "Lit %s", litText(data))
	case ast.ExprUnary:
		data, _ := p.b.Exprs.Unary(id)
		p.line(depth, "Unary %s", data.Op)
		p.expr(depth+1, data.Operand)
	case ast.ExprBinary:
		data, _ := p.b.Exprs.Binary(id)
		p.line(depth, "Binary %s", data.Op)
		p.expr(depth+1, data.Left)
		p.expr(depth+1, data.Right)
	case ast.ExprBoolOp:
		data, _ := p.b.Exprs.BoolOp(id)
		p.line(depth, "BoolOp %s", data.Op)
		p.expr(depth+1, data.Left)
		p.expr(depth+1, data.Right)
	case ast.ExprCall:
		data, _ := p.b.Exprs.Call(id)
		p.line(depth, "Call")
		p.expr(depth+1, data.Callee)
		for _, arg := range data.Args {
			p.expr(depth+1, arg)
		}
	case ast.ExprList:
		data, _ := p.b.Exprs.List(id)
		p.line(depth, "List")
		for _, elem := range data.Elems {
			p.expr(depth+1, elem)
		}
	case ast.ExprIndex:
		data, _ := p.b.Exprs.Index(id)
		p.line(depth, "Index")
		p.expr(depth+1, data.Base)
		p.expr(depth+1, data.Index)
	default:
		p.line(depth, "<expr kind %d>", expr.Kind)
	}
}

func litText(data *ast.ExprLitData) string {
	switch data.Kind {
	case ast.LitInt, ast.LitFloat:
		return data.Text
	case ast.LitString:
		return fmt.Sprintf("%q", data.Text)
	case ast.LitTrue:
		return "True"
	case ast.LitFalse:
		return "False"
	case ast.LitNone:
		return "None"
	}
	return "?"
}
