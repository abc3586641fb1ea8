package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// BundleDef names a component set that spawn entries refer to.
type BundleDef struct {
	Name       string   `yaml:"name"`
	Components []string `yaml:"components"`
}

// SpawnEntry defines how many entities of a bundle to seed and their
// starting kinematics.
type SpawnEntry struct {
	Bundle   string  `yaml:"bundle"`
	Count    int     `yaml:"count"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	DX       float64 `yaml:"dx"`
	DY       float64 `yaml:"dy"`
	Lifetime uint64  `yaml:"lifetime"` // ticks, 0 = immortal
}

type spawnFile struct {
	Bundles []BundleDef  `yaml:"bundles"`
	Spawns  []SpawnEntry `yaml:"spawns"`
}

// SpawnTable holds bundle definitions and the initial spawn list.
type SpawnTable struct {
	bundles map[string]BundleDef
	spawns  []SpawnEntry
}

// LoadSpawnTable loads bundles and spawn entries from a YAML file.
func LoadSpawnTable(path string) (*SpawnTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spawn table: %w", err)
	}
	var f spawnFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse spawn table: %w", err)
	}
	t := &SpawnTable{bundles: make(map[string]BundleDef, len(f.Bundles)), spawns: f.Spawns}
	for _, b := range f.Bundles {
		if len(b.Components) == 0 {
			return nil, fmt.Errorf("bundle %q has no components", b.Name)
		}
		t.bundles[b.Name] = b
	}
	for _, s := range f.Spawns {
		if _, ok := t.bundles[s.Bundle]; !ok {
			return nil, fmt.Errorf("spawn entry refers to unknown bundle %q", s.Bundle)
		}
	}
	return t, nil
}

// Bundle returns the definition for a named bundle.
func (t *SpawnTable) Bundle(name string) (BundleDef, bool) {
	b, ok := t.bundles[name]
	return b, ok
}

// Bundles returns every bundle definition.
func (t *SpawnTable) Bundles() []BundleDef {
	out := make([]BundleDef, 0, len(t.bundles))
	for _, b := range t.bundles {
		out = append(out, b)
	}
	return out
}

// Spawns returns the initial spawn entries in file order.
func (t *SpawnTable) Spawns() []SpawnEntry { return t.spawns }

// Count returns the number of spawn entries.
func (t *SpawnTable) Count() int { return len(t.spawns) }
