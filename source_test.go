package kvjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeText(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want string
	}{
		{"plain", []byte(`"a" "b"`), `"a" "b"`},
		{"utf-8 bom", []byte("\xef\xbb\xbf\"a\" \"b\""), `"a" "b"`},
		{"utf-16le bom", []byte{0xff, 0xfe, '"', 0, 'a', 0, '"', 0}, `"a"`},
		{"utf-16be bom", []byte{0xfe, 0xff, 0, '"', 0, 'a', 0, '"'}, `"a"`},
		{"non-ascii", []byte("\"k\" \"日本語\""), "\"k\" \"日本語\""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeText(tt.data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
