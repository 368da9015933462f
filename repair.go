package kvjson

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Repair describes one known upstream file that is missing a wrapping
// section. When Section is absent from the object bound to Parent but
// Indicator is a direct child of Parent, Section is synthesized in the
// indicator's place and the indicator is moved into it, together with the
// plain values that follow it up to the next nested object.
type Repair struct {
	// Category limits the repair to files of one folder. Empty matches all.
	Category  string `yaml:"category"`
	Parent    string `yaml:"parent"`
	Section   string `yaml:"section"`
	Indicator string `yaml:"indicator"`
}

// DefaultRepairs returns the built-in repair table.
func DefaultRepairs() []Repair {
	return []Repair{
		{Category: "citadel_mods", Parent: "Tokens", Section: "Upgrades: Weapon", Indicator: "AmmoPerSoul"},
	}
}

type repairFile struct {
	Repairs []Repair `yaml:"repairs"`
}

// LoadRepairs reads a YAML repair table:
//
//	repairs:
//	  - category: citadel_mods
//	    parent: Tokens
//	    section: "Upgrades: Weapon"
//	    indicator: AmmoPerSoul
func LoadRepairs(r io.Reader) ([]Repair, error) {
	var f repairFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("%w: %w", ErrInvalidRepairTable, err)
	}

	for i, rep := range f.Repairs {
		if rep.Parent == "" || rep.Section == "" || rep.Indicator == "" {
			return nil, fmt.Errorf("%w: repair %d: parent, section and indicator are required", ErrInvalidRepairTable, i)
		}
	}
	return f.Repairs, nil
}

// LoadRepairsFile reads a YAML repair table from path.
func LoadRepairsFile(path string) ([]Repair, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIoUnavailable, err)
	}
	defer f.Close()
	return LoadRepairs(f)
}

// ApplyRepairs runs every repair matching category against doc and returns
// how many were applied. Each synthesized section counts as a topic.
func ApplyRepairs(doc *Document, category string, repairs []Repair) int {
	applied := 0
	for _, rep := range repairs {
		if rep.Category != "" && rep.Category != category {
			continue
		}
		if applyRepair(doc.Root, rep) {
			applied++
		}
	}
	doc.Topics += applied
	return applied
}

func applyRepair(root *Value, rep Repair) bool {
	parent := findObject(root, rep.Parent)
	if parent == nil {
		return false
	}
	if _, ok := parent.Get(rep.Section); ok {
		return false
	}

	start := parent.index(rep.Indicator)
	if start < 0 {
		return false
	}

	end := start + 1
	for end < len(parent.Members) && parent.Members[end].Value.Kind != KindObject {
		end++
	}

	section := Object()
	section.Members = append(section.Members, parent.Members[start:end]...)

	members := make([]Member, 0, len(parent.Members)-(end-start)+1)
	members = append(members, parent.Members[:start]...)
	members = append(members, Member{Key: rep.Section, Value: section})
	members = append(members, parent.Members[end:]...)
	parent.Members = members
	return true
}

// findObject returns the first object bound to key, searching depth first.
func findObject(v *Value, key string) *Value {
	switch v.Kind {
	case KindObject:
		for _, m := range v.Members {
			if m.Key == key && m.Value.Kind == KindObject {
				return m.Value
			}
			if found := findObject(m.Value, key); found != nil {
				return found
			}
		}
	case KindArray:
		for _, item := range v.Items {
			if found := findObject(item, key); found != nil {
				return found
			}
		}
	}
	return nil
}
