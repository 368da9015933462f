package kvjson

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Encode serializes v as compact JSON. Object members are written in
// insertion order, duplicates included.
func Encode(v *Value) []byte {
	var b strings.Builder
	writeValue(&b, v)
	return []byte(b.String())
}

// EncodeIndent serializes v as indented JSON.
func EncodeIndent(v *Value, indent string) ([]byte, error) {
	var out bytes.Buffer
	if err := json.Indent(&out, Encode(v), "", indent); err != nil {
		return nil, err
	}
	return out.Bytes(), nil
}

// MarshalJSON implements json.Marshaler.
func (v *Value) MarshalJSON() ([]byte, error) {
	return Encode(v), nil
}

func writeValue(b *strings.Builder, v *Value) {
	if v == nil {
		b.WriteString("null")
		return
	}

	switch v.Kind {
	case KindString:
		b.WriteString(Quote(v.Str))
	case KindNumber:
		b.WriteString(v.Str)
	case KindBool:
		if v.Bool {
			b.WriteString("true")
		} else {
			b.WriteString("false")
		}
	case KindObject:
		b.WriteByte('{')
		for i, m := range v.Members {
			if i > 0 {
				b.WriteByte(',')
			}
			b.WriteString(Quote(m.Key))
			b.WriteByte(':')
			writeValue(b, m.Value)
		}
		b.WriteByte('}')
	case KindArray:
		b.WriteByte('[')
		for i, item := range v.Items {
			if i > 0 {
				b.WriteByte(',')
			}
			writeValue(b, item)
		}
		b.WriteByte(']')
	default:
		b.WriteString("null")
	}
}
