package kvjson

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		line  string
		kind  LineKind
		key   string
		text  string
		value string
	}{
		{"// comment", LineIgnored, "", "", ""},
		{"\t\t// \"quoted\" comment", LineIgnored, "", "", ""},
		{"", LineIgnored, "", "", ""},
		{"\t", LineIgnored, "", "", ""},
		{"\t\"Language\"\t\t\"english\"", LineKeyValue, "Language", "", "english"},
		{`"Empty" ""`, LineKeyValue, "Empty", "", ""},
		{`"Quote" "say "hi" now"`, LineKeyValue, "Quote", "", `say "hi" now`},
		{`"Path" "a/b" [$WIN32]`, LineKeyValue, "Path", "", "a/b"},
		{"Abrams", LineTopic, "", "Abrams", ""},
		{"Upgrades: Weapon ", LineTopic, "", "Upgrades: Weapon", ""},
		{"\t\"Tokens\"", LineKeyOnly, "Tokens", "", ""},
		{"\t\"Tokens\"  \r", LineKeyOnly, "Tokens", "", ""},
		{"lang {", LineIgnored, "", "", ""},
		{"\tbare\twords", LineIgnored, "", "", ""},
	}

	c := NewClassifier()
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			pl := c.Classify(tt.line)
			require.Equal(t, tt.kind, pl.Kind, "kind of %q", tt.line)
			assert.Equal(t, tt.key, pl.Key)
			assert.Equal(t, tt.text, pl.Text)
			if tt.kind == LineKeyValue {
				require.NotNil(t, pl.Value)
				assert.Equal(t, KindString, pl.Value.Kind)
				assert.Equal(t, tt.value, pl.Value.Str)
			}
		})
	}
}

func TestClassify_Braces(t *testing.T) {
	c := NewClassifier()

	tests := []struct {
		line      string
		open      bool
		container Kind
	}{
		{"{", true, KindObject},
		{"\t}", false, KindObject},
		{"[", true, KindArray},
		{" ] ", false, KindArray},
	}
	for _, tt := range tests {
		pl := c.Classify(tt.line)
		assert.Equal(t, LineBrace, pl.Kind, tt.line)
		assert.Equal(t, tt.open, pl.Open, tt.line)
		assert.Equal(t, tt.container, pl.Container, tt.line)
	}
}
