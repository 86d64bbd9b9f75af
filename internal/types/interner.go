package types

import (
	"fmt"
	"strings"

	"fortio.org/safecast"
)

// Builtins stores TypeIDs for the primitive types and the error sentinel.
type Builtins struct {
	Invalid TypeID
	Error   TypeID
	None    TypeID
	Bool    TypeID
	Int     TypeID
	Float   TypeID
	Str     TypeID
}

// FnInfo stores metadata for function types.
type FnInfo struct {
	Params []TypeID
	Result TypeID
}

// Interner provides stable TypeIDs by hashing structural descriptors.
// It is immutable after checking finishes and safe for concurrent reads.
type Interner struct {
	types    []Type
	index    map[Type]TypeID
	fns      []FnInfo
	fnIndex  map[string]TypeID
	builtins Builtins
}

// NewInterner constructs an interner seeded with the built-in primitives.
func NewInterner() *Interner {
	in := &Interner{
		index:   make(map[Type]TypeID, 32),
		fnIndex: make(map[string]TypeID, 8),
	}
	in.builtins.Invalid = in.internRaw(Type{Kind: KindInvalid}) // reserves id 0
	in.builtins.Error = in.Intern(Type{Kind: KindError})
	in.builtins.None = in.Intern(Type{Kind: KindNone})
	in.builtins.Bool = in.Intern(Type{Kind: KindBool})
	in.builtins.Int = in.Intern(Type{Kind: KindInt})
	in.builtins.Float = in.Intern(Type{Kind: KindFloat})
	in.builtins.Str = in.Intern(Type{Kind: KindStr})
	return in
}

// Builtins returns TypeIDs for the primitive types.
func (in *Interner) Builtins() Builtins {
	return in.builtins
}

// Intern ensures the provided descriptor has a stable TypeID.
func (in *Interner) Intern(t Type) TypeID {
	if id, ok := in.index[t]; ok {
		return id
	}
	return in.internRaw(t)
}

func (in *Interner) internRaw(t Type) TypeID {
	next, err := safecast.Conv[uint32](len(in.types))
	if err != nil {
		panic(fmt.Errorf("types interner overflow: %w", err))
	}
	id := TypeID(next)
	in.types = append(in.types, t)
	in.index[t] = id
	return id
}

// RegisterList returns the TypeID for list[elem].
func (in *Interner) RegisterList(elem TypeID) TypeID {
	return in.Intern(MakeList(elem))
}

// RegisterFn creates or finds a function type. Parameter order matters:
// function types compare positionally.
func (in *Interner) RegisterFn(params []TypeID, result TypeID) TypeID {
	key := fnKey(params, result)
	if id, ok := in.fnIndex[key]; ok {
		return id
	}
	slot, err := safecast.Conv[uint32](len(in.fns))
	if err != nil {
		panic(fmt.Errorf("fn info overflow: %w", err))
	}
	in.fns = append(in.fns, FnInfo{
		Params: append([]TypeID(nil), params...),
		Result: result,
	})
	id := in.internRaw(Type{Kind: KindFunc, Payload: slot})
	in.fnIndex[key] = id
	return id
}

// FnInfo retrieves function type metadata by TypeID.
func (in *Interner) FnInfo(id TypeID) (*FnInfo, bool) {
	tt, ok := in.Lookup(id)
	if !ok || tt.Kind != KindFunc {
		return nil, false
	}
	if int(tt.Payload) >= len(in.fns) {
		return nil, false
	}
	return &in.fns[tt.Payload], true
}

// Lookup returns the descriptor for a TypeID.
func (in *Interner) Lookup(id TypeID) (Type, bool) {
	if id == NoTypeID || int(id) >= len(in.types) {
		return Type{}, false
	}
	return in.types[id], true
}

// MustLookup panics when id is invalid.
func (in *Interner) MustLookup(id TypeID) Type {
	tt, ok := in.Lookup(id)
	if !ok {
		panic("types: invalid TypeID")
	}
	return tt
}

// Kind returns the kind behind id, or KindInvalid.
func (in *Interner) Kind(id TypeID) Kind {
	tt, ok := in.Lookup(id)
	if !ok {
		return KindInvalid
	}
	return tt.Kind
}

// IsError reports whether id is the error sentinel.
func (in *Interner) IsError(id TypeID) bool {
	return id == in.builtins.Error
}

// String renders a type for diagnostics: int, list[str], (int, int) -> int.
func (in *Interner) String(id TypeID) string {
	tt, ok := in.Lookup(id)
	if !ok {
		return "invalid"
	}
	switch tt.Kind {
	case KindList:
		return "list[" + in.String(tt.Elem) + "]"
	case KindFunc:
		info, ok := in.FnInfo(id)
		if !ok {
			return "function"
		}
		parts := make([]string, len(info.Params))
		for i, p := range info.Params {
			parts[i] = in.String(p)
		}
		return "(" + strings.Join(parts, ", ") + ") -> " + in.String(info.Result)
	default:
		return tt.Kind.String()
	}
}

func fnKey(params []TypeID, result TypeID) string {
	var sb strings.Builder
	for _, p := range params {
		fmt.Fprintf(&sb, "%d,", p)
	}
	fmt.Fprintf(&sb, ">%d", result)
	return sb.String()
}
