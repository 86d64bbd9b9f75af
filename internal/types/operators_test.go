package types

import (
	"testing"

	"pyrsc/internal/ast"
)

func TestBinaryResultArithmetic(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	cases := []struct {
		name  string
		op    ast.BinaryOp
		left  TypeID
		right TypeID
		want  TypeID
		ok    bool
	}{
		{"int+int", ast.BinAdd, b.Int, b.Int, b.Int, true},
		{"int-int", ast.BinSub, b.Int, b.Int, b.Int, true},
		{"int*int", ast.BinMul, b.Int, b.Int, b.Int, true},
		{"int//int", ast.BinFloorDiv, b.Int, b.Int, b.Int, true},
		{"int%int", ast.BinMod, b.Int, b.Int, b.Int, true},
		{"int/int", ast.BinDiv, b.Int, b.Int, b.Error, false},
		{"float+float", ast.BinAdd, b.Float, b.Float, b.Float, true},
		{"float/float", ast.BinDiv, b.Float, b.Float, b.Float, true},
		{"float//float", ast.BinFloorDiv, b.Float, b.Float, b.Error, false},
		{"float%float", ast.BinMod, b.Float, b.Float, b.Error, false},
		{"str+str", ast.BinAdd, b.Str, b.Str, b.Str, true},
		{"str-str", ast.BinSub, b.Str, b.Str, b.Error, false},
		{"int+float", ast.BinAdd, b.Int, b.Float, b.Error, false},
		{"float+int", ast.BinAdd, b.Float, b.Int, b.Error, false},
		{"bool+bool", ast.BinAdd, b.Bool, b.Bool, b.Error, false},
		{"none+none", ast.BinAdd, b.None, b.None, b.Error, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := in.BinaryResult(tc.op, tc.left, tc.right)
			if ok != tc.ok || got != tc.want {
				t.Fatalf("BinaryResult(%v, %s, %s) = (%s, %v), want (%s, %v)",
					tc.op, in.String(tc.left), in.String(tc.right),
					in.String(got), ok, in.String(tc.want), tc.ok)
			}
		})
	}
}

func TestBinaryResultListsHaveNoOperators(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()
	listInt := in.RegisterList(b.Int)

	if _, ok := in.BinaryResult(ast.BinAdd, listInt, listInt); ok {
		t.Fatalf("list[int] + list[int] should be rejected")
	}
	if _, ok := in.BinaryResult(ast.BinEq, listInt, listInt); ok {
		t.Fatalf("list[int] == list[int] should be rejected")
	}
}

func TestBinaryResultComparisons(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	cases := []struct {
		name  string
		op    ast.BinaryOp
		left  TypeID
		right TypeID
		ok    bool
	}{
		{"int==int", ast.BinEq, b.Int, b.Int, true},
		{"bool!=bool", ast.BinNe, b.Bool, b.Bool, true},
		{"str==str", ast.BinEq, b.Str, b.Str, true},
		{"int==float", ast.BinEq, b.Int, b.Float, false},
		{"int<int", ast.BinLt, b.Int, b.Int, true},
		{"float>=float", ast.BinGe, b.Float, b.Float, true},
		{"str<str", ast.BinLt, b.Str, b.Str, true},
		{"bool<bool", ast.BinLt, b.Bool, b.Bool, false},
		{"int<float", ast.BinLt, b.Int, b.Float, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := in.BinaryResult(tc.op, tc.left, tc.right)
			if ok != tc.ok {
				t.Fatalf("BinaryResult(%v) ok = %v, want %v", tc.op, ok, tc.ok)
			}
			if ok && got != b.Bool {
				t.Fatalf("comparison result = %s, want bool", in.String(got))
			}
		})
	}
}

func TestUnaryResult(t *testing.T) {
	in := NewInterner()
	b := in.Builtins()

	if got, ok := in.UnaryResult(ast.UnaryNeg, b.Int); !ok || got != b.Int {
		t.Fatalf("-int = (%s, %v)", in.String(got), ok)
	}
	if got, ok := in.UnaryResult(ast.UnaryNeg, b.Float); !ok || got != b.Float {
		t.Fatalf("-float = (%s, %v)", in.String(got), ok)
	}
	if _, ok := in.UnaryResult(ast.UnaryNeg, b.Str); ok {
		t.Fatalf("-str should be rejected")
	}
	if got, ok := in.UnaryResult(ast.UnaryNot, b.Bool); !ok || got != b.Bool {
		t.Fatalf("not bool = (%s, %v)", in.String(got), ok)
	}
	if _, ok := in.UnaryResult(ast.UnaryNot, b.Int); ok {
		t.Fatalf("not int should be rejected")
	}
}

func TestResolveAnnotationErrors(t *testing.T) {
	// ResolveAnnotation behaviour with real TypeExpr nodes is covered in
	// the sema tests where a parsed module is available.
	in := NewInterner()
	if !in.IsError(in.Builtins().Error) {
		t.Fatalf("IsError(Error builtin) = false")
	}
	if in.IsError(in.Builtins().Int) {
		t.Fatalf("IsError(int) = true")
	}
}
