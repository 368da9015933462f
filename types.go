// Package kvjson converts Valve KeyValues-style text into JSON.
package kvjson

// Kind identifies the JSON type held by a Value.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindNumber
	KindBool
	KindObject
	KindArray
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "null"
	}
}

// Value is a JSON-equivalent tree node.
//
// Objects keep their members in insertion order and may hold the same key
// more than once; nothing is merged. Numbers keep their literal text.
type Value struct {
	Kind    Kind
	Str     string
	Bool    bool
	Members []Member
	Items   []*Value
}

// Member is a single key/value pair inside an object.
type Member struct {
	Key   string
	Value *Value
}

// String returns a string Value.
func String(s string) *Value { return &Value{Kind: KindString, Str: s} }

// Number returns a number Value holding the literal JSON text lit.
func Number(lit string) *Value { return &Value{Kind: KindNumber, Str: lit} }

// Bool returns a boolean Value.
func Bool(b bool) *Value { return &Value{Kind: KindBool, Bool: b} }

// Null returns a null Value.
func Null() *Value { return &Value{Kind: KindNull} }

// Object returns an empty object Value.
func Object() *Value { return &Value{Kind: KindObject} }

// Array returns an array Value holding items.
func Array(items ...*Value) *Value { return &Value{Kind: KindArray, Items: items} }

// Set appends key/value to the object. Existing members with the same key
// are left in place.
func (v *Value) Set(key string, val *Value) *Value {
	v.Members = append(v.Members, Member{Key: key, Value: val})
	return v
}

// Append adds items to the array.
func (v *Value) Append(items ...*Value) *Value {
	v.Items = append(v.Items, items...)
	return v
}

// Get returns the first member named key.
func (v *Value) Get(key string) (*Value, bool) {
	if i := v.index(key); i >= 0 {
		return v.Members[i].Value, true
	}
	return nil, false
}

// Len returns the number of members or items.
func (v *Value) Len() int {
	switch v.Kind {
	case KindObject:
		return len(v.Members)
	case KindArray:
		return len(v.Items)
	default:
		return 0
	}
}

// Clone returns a deep copy of v.
func (v *Value) Clone() *Value {
	if v == nil {
		return nil
	}
	out := &Value{Kind: v.Kind, Str: v.Str, Bool: v.Bool}
	if v.Members != nil {
		out.Members = make([]Member, len(v.Members))
		for i, m := range v.Members {
			out.Members[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
	}
	if v.Items != nil {
		out.Items = make([]*Value, len(v.Items))
		for i, item := range v.Items {
			out.Items[i] = item.Clone()
		}
	}
	return out
}

func (v *Value) index(key string) int {
	for i, m := range v.Members {
		if m.Key == key {
			return i
		}
	}
	return -1
}

// Document is the per-file outcome of a conversion.
type Document struct {
	// Root is the converted tree. It is an object for localization files.
	Root *Value
	// Label is the descriptive text of a topic header found on the first
	// line of the file, if any. It does not appear in Root.
	Label string
	// Topics counts topic sections, including ones synthesized by repairs.
	Topics int
}
