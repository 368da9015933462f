package kvjson

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncode(t *testing.T) {
	v := Object().
		Set("s", String("a/b")).
		Set("n", Number("1.5")).
		Set("t", Bool(true)).
		Set("f", Bool(false)).
		Set("z", Null()).
		Set("arr", Array(String("x"), Object())).
		Set("s", String("dup"))

	assert.Equal(t, `{"s":"a\/b","n":1.5,"t":true,"f":false,"z":null,"arr":["x",{}],"s":"dup"}`, string(Encode(v)))
}

func TestEncode_DecodesAsJSON(t *testing.T) {
	v := Object().Set("quote", String(`"q" \ /`)).Set("list", Array(Number("2")))

	var out map[string]any
	require.NoError(t, json.Unmarshal(Encode(v), &out))
	assert.Equal(t, `"q" \ /`, out["quote"])
	assert.Equal(t, []any{float64(2)}, out["list"])
}

func TestEncodeIndent(t *testing.T) {
	out, err := EncodeIndent(Object().Set("a", Array(String("b"))), "  ")

	require.NoError(t, err)
	assert.Equal(t, "{\n  \"a\": [\n    \"b\"\n  ]\n}", string(out))
}

func TestValue_MarshalJSON(t *testing.T) {
	wrapper := struct {
		Doc *Value `json:"doc"`
	}{Doc: Object().Set("k", String("v"))}

	out, err := json.Marshal(wrapper)

	require.NoError(t, err)
	assert.Equal(t, `{"doc":{"k":"v"}}`, string(out))
}

func TestValue_GetAndLen(t *testing.T) {
	v := Object().Set("a", String("1")).Set("a", String("2"))

	got, ok := v.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", got.Str)
	assert.Equal(t, 2, v.Len())

	_, ok = v.Get("missing")
	assert.False(t, ok)
	assert.Zero(t, String("x").Len())
	assert.Equal(t, "array", Array().Kind.String())
}
