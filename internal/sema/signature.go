package sema

import (
	"fmt"

	"pyrsc/internal/ast"
	"pyrsc/internal/diag"
	"pyrsc/internal/types"
)

// resolveSignature turns a def's annotations into a function type before
// any body is checked, so calls resolve regardless of definition order.
// Missing annotations are hard errors; the affected slot gets the error
// sentinel and checking continues.
func (tc *typeChecker) resolveSignature(itemID ast.ItemID) {
	item := tc.builder.Items.Get(itemID)
	if item.Kind != ast.ItemFunc {
		return
	}
	name := tc.builder.Name(item.Fn.Name)

	params := make([]types.TypeID, 0, len(item.Fn.Params))
	for _, paramID := range item.Fn.Params {
		param := tc.builder.Items.Param(paramID)
		var pt types.TypeID
		if param.Ann.IsValid() {
			pt = tc.types.ResolveAnnotation(tc.builder, param.Ann, tc.reporter)
		} else {
			diag.ReportError(tc.reporter, diag.MissingParamAnnotation, param.Span,
				fmt.Sprintf("parameter '%s' of '%s' is missing a type annotation",
					tc.builder.Name(param.Name), name))
			pt = tc.b.Error
		}
		params = append(params, pt)
		if sym := tc.symbol(tc.syms.ParamSymbols[paramID]); sym != nil {
			sym.Type = pt
		}
	}

	var result types.TypeID
	if item.Fn.Return.IsValid() {
		result = tc.types.ResolveAnnotation(tc.builder, item.Fn.Return, tc.reporter)
	} else {
		diag.ReportError(tc.reporter, diag.MissingReturnAnnotation, item.Fn.NameSpan,
			fmt.Sprintf("'%s' is missing a return type annotation", name))
		result = tc.b.Error
	}

	fnType := tc.types.RegisterFn(params, result)
	tc.result.FuncTypes[itemID] = fnType
	if sym := tc.symbol(tc.syms.FuncSymbols[itemID]); sym != nil {
		sym.Type = fnType
	}
}

// checkFunc checks one def body and its return paths.
func (tc *typeChecker) checkFunc(itemID ast.ItemID) {
	item := tc.builder.Items.Get(itemID)
	if item.Kind != ast.ItemFunc {
		return
	}
	info, ok := tc.types.FnInfo(tc.result.FuncTypes[itemID])
	if !ok {
		return
	}

	tc.fnName = tc.builder.Name(item.Fn.Name)
	tc.fnResult = info.Result
	tc.checkStmts(item.Fn.Body)

	if !tc.isErr(info.Result) && info.Result != tc.b.None && !terminates(tc.builder, item.Fn.Body) {
		diag.ReportError(tc.reporter, diag.UnreachableReturn, item.Fn.NameSpan,
			fmt.Sprintf("control can reach the end of '%s' without returning %s",
				tc.fnName, tc.types.String(info.Result)))
	}

	tc.fnName = ""
	tc.fnResult = types.NoTypeID
}
