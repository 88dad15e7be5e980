package config

import "github.com/leanviz/layout3d/internal/physics"

// Presets are starting points tuned for common graph shapes. They only
// touch the physics block; run settings stay at their defaults.
var Presets = map[string]func(*physics.Config){
	// sparse: few edges per node, spread the graph out.
	"sparse": func(c *physics.Config) {
		c.RepulsionStrength = 200
		c.SpringLength = 12
		c.CenterStrength = 0.03
	},
	// dense: heavily connected graphs crowd fast; shorter springs and
	// adaptive rest lengths keep hubs breathable.
	"dense": func(c *physics.Config) {
		c.RepulsionStrength = 150
		c.SpringLength = 6
		c.AdaptiveSpringEnabled = true
		c.AdaptiveSpringMode = physics.SpringSqrt
		c.AdaptiveSpringScale = 0.5
	},
	// clustered: emphasize namespace grouping.
	"clustered": func(c *physics.Config) {
		c.ClusteringEnabled = true
		c.ClusteringStrength = 0.8
		c.ClusterSeparation = 120
	},
}

// GetPreset returns the default config with the named preset applied,
// or nil when the name is unknown.
func GetPreset(name string) *Config {
	apply, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(&cfg.Physics)
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
