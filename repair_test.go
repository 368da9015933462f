package kvjson

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyRepairs_MissingWeaponSection(t *testing.T) {
	doc := parse(t, "\"Tokens\"\n{\n\"AmmoPerSoul\" \"5\"\n}")

	n := ApplyRepairs(doc, "citadel_mods", DefaultRepairs())

	assert.Equal(t, 1, n)
	assert.Equal(t, 1, doc.Topics)
	assert.Equal(t, `{"Tokens":{"Upgrades: Weapon":{"AmmoPerSoul":"5"}}}`, string(Encode(doc.Root)))
}

func TestApplyRepairs_OtherCategoryUntouched(t *testing.T) {
	doc := parse(t, "\"Tokens\"\n{\n\"AmmoPerSoul\" \"5\"\n}")

	n := ApplyRepairs(doc, "citadel_gc", DefaultRepairs())

	assert.Zero(t, n)
	assert.Equal(t, `{"Tokens":{"AmmoPerSoul":"5"}}`, string(Encode(doc.Root)))
}

func TestApplyRepairs_MovesFollowingValues(t *testing.T) {
	input := "\"lang\"\n{\n\"Tokens\"\n{\n\"Before\" \"0\"\n\"AmmoPerSoul\" \"5\"\n\"AmmoPerSoul_desc\" \"d\"\nSpirit\n\"x\" \"y\"\n}\n}\n"
	doc := parse(t, input)

	ApplyRepairs(doc, "citadel_mods", DefaultRepairs())

	assert.Equal(t,
		`{"lang":{"Tokens":{"Before":"0","Upgrades: Weapon":{"AmmoPerSoul":"5","AmmoPerSoul_desc":"d"},"Spirit":{"x":"y"}}}}`,
		string(Encode(doc.Root)))
	assert.Equal(t, 2, doc.Topics)
}

func TestApplyRepairs_SectionPresent(t *testing.T) {
	doc := parse(t, "\"Tokens\"\n{\n\"AmmoPerSoul\" \"5\"\nUpgrades: Weapon\n\"a\" \"b\"\n}")

	assert.Zero(t, ApplyRepairs(doc, "citadel_mods", DefaultRepairs()))
}

func TestLoadRepairs(t *testing.T) {
	input := `
repairs:
  - category: citadel_heroes
    parent: Tokens
    section: Abrams
    indicator: abrams_name
  - parent: Tokens
    section: "Upgrades: Vitality"
    indicator: BonusHealth
`
	repairs, err := LoadRepairs(strings.NewReader(input))

	require.NoError(t, err)
	assert.Equal(t, []Repair{
		{Category: "citadel_heroes", Parent: "Tokens", Section: "Abrams", Indicator: "abrams_name"},
		{Parent: "Tokens", Section: "Upgrades: Vitality", Indicator: "BonusHealth"},
	}, repairs)
}

func TestLoadRepairs_Invalid(t *testing.T) {
	tests := map[string]string{
		"missing section": "repairs:\n  - parent: Tokens\n    indicator: x\n",
		"unknown field":   "repairs:\n  - parent: Tokens\n    section: s\n    indicator: x\n    extra: 1\n",
		"not yaml":        "repairs: [\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := LoadRepairs(strings.NewReader(input))
			assert.ErrorIs(t, err, ErrInvalidRepairTable)
		})
	}
}

func TestLoadRepairs_Empty(t *testing.T) {
	repairs, err := LoadRepairs(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, repairs)
}
