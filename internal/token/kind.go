package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// Newline terminates a logical line.
	Newline
	// Indent opens an indented block (synthesized from leading whitespace).
	Indent
	// Dedent closes an indented block.
	Dedent

	// Ident represents an identifier token.
	Ident
	// IntLit represents an integer literal.
	IntLit
	// FloatLit represents a floating-point literal.
	FloatLit
	// StringLit represents a string literal.
	StringLit

	// KwDef represents the 'def' keyword.
	KwDef // def
	// KwReturn represents the 'return' keyword.
	KwReturn // return
	// KwIf represents the 'if' keyword.
	KwIf // if
	// KwElif represents the 'elif' keyword.
	KwElif // elif
	// KwElse represents the 'else' keyword.
	KwElse // else
	// KwWhile represents the 'while' keyword.
	KwWhile // while
	// KwFor represents the 'for' keyword.
	KwFor // for
	// KwIn represents the 'in' keyword.
	KwIn // in
	// KwBreak represents the 'break' keyword.
	KwBreak // break
	// KwContinue represents the 'continue' keyword.
	KwContinue // continue
	// KwPass represents the 'pass' keyword.
	KwPass // pass
	// KwAnd represents the 'and' keyword.
	KwAnd // and
	// KwOr represents the 'or' keyword.
	KwOr // or
	// KwNot represents the 'not' keyword.
	KwNot // not
	// KwTrue represents the 'True' literal keyword.
	KwTrue // True
	// KwFalse represents the 'False' literal keyword.
	KwFalse // False
	// KwNone represents the 'None' literal keyword.
	KwNone // None

	// Plus represents '+'.
	Plus
	// Minus represents '-'.
	Minus
	// Star represents '*'.
	Star
	// Slash represents '/'.
	Slash
	// SlashSlash represents '//' (floor division).
	SlashSlash
	// Percent represents '%'.
	Percent
	// Assign represents '='.
	Assign
	// EqEq represents '=='.
	EqEq
	// BangEq represents '!='.
	BangEq
	// Lt represents '<'.
	Lt
	// LtEq represents '<='.
	LtEq
	// Gt represents '>'.
	Gt
	// GtEq represents '>='.
	GtEq
	// Colon represents ':'.
	Colon
	// Comma represents ','.
	Comma
	// Arrow represents '->'.
	Arrow
	// LParen represents '('.
	LParen
	// RParen represents ')'.
	RParen
	// LBracket represents '['.
	LBracket
	// RBracket represents ']'.
	RBracket
)

func (k Kind) String() string {
	switch k {
	case Invalid:
		return "invalid"
	case EOF:
		return "eof"
	case Newline:
		return "newline"
	case Indent:
		return "indent"
	case Dedent:
		return "dedent"
	case Ident:
		return "ident"
	case IntLit:
		return "int"
	case FloatLit:
		return "float"
	case StringLit:
		return "string"
	case KwDef:
		return "def"
	case KwReturn:
		return "return"
	case KwIf:
		return "if"
	case KwElif:
		return "elif"
	case KwElse:
		return "else"
	case KwWhile:
		return "while"
	case KwFor:
		return "for"
	case KwIn:
		return "in"
	case KwBreak:
		return "break"
	case KwContinue:
		return "continue"
	case KwPass:
		return "pass"
	case KwAnd:
		return "and"
	case KwOr:
		return "or"
	case KwNot:
		return "not"
	case KwTrue:
		return "True"
	case KwFalse:
		return "False"
	case KwNone:
		return "None"
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case SlashSlash:
		return "//"
	case Percent:
		return "%"
	case Assign:
		return "="
	case EqEq:
		return "=="
	case BangEq:
		return "!="
	case Lt:
		return "<"
	case LtEq:
		return "<="
	case Gt:
		return ">"
	case GtEq:
		return ">="
	case Colon:
		return ":"
	case Comma:
		return ","
	case Arrow:
		return "->"
	case LParen:
		return "("
	case RParen:
		return ")"
	case LBracket:
		return "["
	case RBracket:
		return "]"
	}
	return "unknown"
}
