package token

var keywords = map[string]Kind{
	"def":      KwDef,
	"return":   KwReturn,
	"if":       KwIf,
	"elif":     KwElif,
	"else":     KwElse,
	"while":    KwWhile,
	"for":      KwFor,
	"in":       KwIn,
	"break":    KwBreak,
	"continue": KwContinue,
	"pass":     KwPass,
	"and":      KwAnd,
	"or":       KwOr,
	"not":      KwNot,
	"True":     KwTrue,
	"False":    KwFalse,
	"None":     KwNone,
}

// LookupKeyword returns the keyword kind for ident, if it is one.
// Keywords are case-sensitive, matching Python.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
