package config

import "sort"

// Presets are overlays on DefaultConfig, keyed by name.
var Presets = map[string]func(*Config){
	"calm": func(c *Config) {
		c.FPS = 30
		c.Particles.Count = 50
		c.Particles.Speed = 0.3
		c.Cube.AutoRotate = AxisPair{X: 0.1, Y: 0.15}
	},
	"dense": func(c *Config) {
		c.Particles.Count = 200
		c.Particles.ConnectionDistance = 90
	},
	"sparse": func(c *Config) {
		c.Particles.Count = 30
		c.Particles.ConnectionDistance = 180
	},
	"turbo": func(c *Config) {
		c.Particles.Speed = 2.4
		c.Cube.AutoRotate = AxisPair{X: 0.8, Y: 1.2}
		c.Cube.KeyStep = 15
	},
}

// GetPreset returns DefaultConfig with the named preset applied, or nil.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
