package symbols

// PreludeEntry describes a builtin injected into the synthetic root scope
// before source traversal.
type PreludeEntry struct {
	Name    string
	Builtin Builtin
}

// builtinPreludeEntries returns the builtins exposed to every module.
func builtinPreludeEntries() []PreludeEntry {
	return []PreludeEntry{
		{Name: "print", Builtin: BuiltinPrint},
		{Name: "range", Builtin: BuiltinRange},
		{Name: "len", Builtin: BuiltinLen},
	}
}
