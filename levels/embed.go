// Package levels holds the embedded level data files and their schema.
package levels

import (
	"embed"
	"encoding/json"
	"fmt"
	"io/fs"
	"sort"
)

//go:embed *.json *.tengo
var levelsFS embed.FS

// Level is one tile map plus its placed entities. Tile values: 0 empty,
// 1 solid, 2 hazard spike.
type Level struct {
	Name      string      `json:"name"`
	Width     int         `json:"width"`
	Height    int         `json:"height"`
	Layers    [][]int     `json:"layers"`
	LayerMeta []LayerMeta `json:"layer_meta,omitempty"`

	EmotionSpawn Point `json:"emotion_spawn"`
	LogicSpawn   Point `json:"logic_spawn"`

	Entities []Entity `json:"entities,omitempty"`
}

type LayerMeta struct {
	Physics bool `json:"physics"`
}

// Point is a tile coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Entity is a placed trigger object. Positions and sizes are in tiles.
type Entity struct {
	Type  string                 `json:"type"`
	X     int                    `json:"x"`
	Y     int                    `json:"y"`
	Props map[string]interface{} `json:"props,omitempty"`
}

// Names returns the embedded level file names in play order.
func Names() []string {
	entries, err := fs.Glob(levelsFS, "*.json")
	if err != nil {
		return nil
	}
	sort.Strings(entries)
	return entries
}

// Count returns how many levels ship in the run.
func Count() int {
	return len(Names())
}

// Load reads one embedded level by file name.
func Load(name string) (*Level, error) {
	data, err := fs.ReadFile(levelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read level: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return nil, fmt.Errorf("unmarshal level: %w", err)
	}
	if lvl.Width <= 0 || lvl.Height <= 0 {
		return nil, fmt.Errorf("level %s: bad dimensions %dx%d", name, lvl.Width, lvl.Height)
	}
	for i, layer := range lvl.Layers {
		if len(layer) != lvl.Width*lvl.Height {
			return nil, fmt.Errorf("level %s: layer %d has %d tiles, want %d",
				name, i, len(layer), lvl.Width*lvl.Height)
		}
	}
	return &lvl, nil
}

// LoadByIndex reads the nth level in play order.
func LoadByIndex(i int) (*Level, error) {
	names := Names()
	if i < 0 || i >= len(names) {
		return nil, fmt.Errorf("level index %d out of range [0,%d)", i, len(names))
	}
	return Load(names[i])
}

// LoadScript reads an embedded behavior script by file name.
func LoadScript(name string) ([]byte, error) {
	data, err := fs.ReadFile(levelsFS, name)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return data, nil
}

// PropString reads a string entity property with a fallback.
func (e Entity) PropString(key string, fallback string) string {
	if s, ok := e.Props[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

// PropFloat reads a numeric entity property with a fallback.
func (e Entity) PropFloat(key string, fallback float64) float64 {
	v, ok := e.Props[key]
	if !ok {
		return fallback
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return fallback
	}
}
