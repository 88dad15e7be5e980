package physics

// SpringMode selects how adaptive spring rest lengths grow with node
// degree.
type SpringMode string

const (
	SpringLinear      SpringMode = "linear"
	SpringSqrt        SpringMode = "sqrt"
	SpringLogarithmic SpringMode = "logarithmic"
)

// Config holds every force parameter for one simulation. It is treated
// as immutable during a step; updates happen only between steps.
//
// Values are deliberately not validated: the engine is total over any
// finite numeric input, and a caller that wants a sanity check does it
// before sending the config in.
type Config struct {
	RepulsionStrength float64 `json:"repulsionStrength" yaml:"repulsion_strength"`
	SpringLength      float64 `json:"springLength" yaml:"spring_length"`
	SpringStrength    float64 `json:"springStrength" yaml:"spring_strength"`
	CenterStrength    float64 `json:"centerStrength" yaml:"center_strength"`
	Damping           float64 `json:"damping" yaml:"damping"`
	MaxVelocity       float64 `json:"maxVelocity" yaml:"max_velocity"`

	// Theta is the Barnes-Hut opening criterion; BarnesHutThreshold is
	// the node count above which repulsion switches from the exact
	// pairwise sum to the octree approximation.
	Theta              float64 `json:"theta" yaml:"theta"`
	BarnesHutThreshold int     `json:"barnesHutThreshold" yaml:"barnes_hut_threshold"`

	ClusteringEnabled  bool    `json:"clusteringEnabled" yaml:"clustering_enabled"`
	ClusteringStrength float64 `json:"clusteringStrength" yaml:"clustering_strength"`
	ClusterSeparation  float64 `json:"clusterSeparation" yaml:"cluster_separation"`
	// ClusteringDepth is carried for wire compatibility with callers
	// that expand namespaces recursively. The engine treats group
	// membership as a flat partition and never reads this.
	ClusteringDepth int `json:"clusteringDepth" yaml:"clustering_depth"`

	AdaptiveSpringEnabled bool       `json:"adaptiveSpringEnabled" yaml:"adaptive_spring_enabled"`
	AdaptiveSpringMode    SpringMode `json:"adaptiveSpringMode" yaml:"adaptive_spring_mode"`
	AdaptiveSpringScale   float64    `json:"adaptiveSpringScale" yaml:"adaptive_spring_scale"`
}

const (
	DefaultDt        = 0.016
	DefaultTheta     = 0.7
	DefaultThreshold = 100
	DefaultMinDist   = 1e-4
)

func DefaultConfig() Config {
	return Config{
		RepulsionStrength:   100,
		SpringLength:        8,
		SpringStrength:      1,
		CenterStrength:      0.05,
		Damping:             0.8,
		MaxVelocity:         10,
		Theta:               DefaultTheta,
		BarnesHutThreshold:  DefaultThreshold,
		ClusteringStrength:  0.5,
		ClusterSeparation:   50,
		ClusteringDepth:     1,
		AdaptiveSpringMode:  SpringSqrt,
		AdaptiveSpringScale: 0.5,
	}
}

// Partial is a sparse config update: nil fields keep their current
// value. This is the payload of the updatePhysics command.
type Partial struct {
	RepulsionStrength  *float64 `json:"repulsionStrength,omitempty"`
	SpringLength       *float64 `json:"springLength,omitempty"`
	SpringStrength     *float64 `json:"springStrength,omitempty"`
	CenterStrength     *float64 `json:"centerStrength,omitempty"`
	Damping            *float64 `json:"damping,omitempty"`
	MaxVelocity        *float64 `json:"maxVelocity,omitempty"`
	Theta              *float64 `json:"theta,omitempty"`
	BarnesHutThreshold *int     `json:"barnesHutThreshold,omitempty"`

	ClusteringEnabled  *bool    `json:"clusteringEnabled,omitempty"`
	ClusteringStrength *float64 `json:"clusteringStrength,omitempty"`
	ClusterSeparation  *float64 `json:"clusterSeparation,omitempty"`
	ClusteringDepth    *int     `json:"clusteringDepth,omitempty"`

	AdaptiveSpringEnabled *bool       `json:"adaptiveSpringEnabled,omitempty"`
	AdaptiveSpringMode    *SpringMode `json:"adaptiveSpringMode,omitempty"`
	AdaptiveSpringScale   *float64    `json:"adaptiveSpringScale,omitempty"`
}

// Apply merges the set fields of p into cfg.
func (p Partial) Apply(cfg *Config) {
	if p.RepulsionStrength != nil {
		cfg.RepulsionStrength = *p.RepulsionStrength
	}
	if p.SpringLength != nil {
		cfg.SpringLength = *p.SpringLength
	}
	if p.SpringStrength != nil {
		cfg.SpringStrength = *p.SpringStrength
	}
	if p.CenterStrength != nil {
		cfg.CenterStrength = *p.CenterStrength
	}
	if p.Damping != nil {
		cfg.Damping = *p.Damping
	}
	if p.MaxVelocity != nil {
		cfg.MaxVelocity = *p.MaxVelocity
	}
	if p.Theta != nil {
		cfg.Theta = *p.Theta
	}
	if p.BarnesHutThreshold != nil {
		cfg.BarnesHutThreshold = *p.BarnesHutThreshold
	}
	if p.ClusteringEnabled != nil {
		cfg.ClusteringEnabled = *p.ClusteringEnabled
	}
	if p.ClusteringStrength != nil {
		cfg.ClusteringStrength = *p.ClusteringStrength
	}
	if p.ClusterSeparation != nil {
		cfg.ClusterSeparation = *p.ClusterSeparation
	}
	if p.ClusteringDepth != nil {
		cfg.ClusteringDepth = *p.ClusteringDepth
	}
	if p.AdaptiveSpringEnabled != nil {
		cfg.AdaptiveSpringEnabled = *p.AdaptiveSpringEnabled
	}
	if p.AdaptiveSpringMode != nil {
		cfg.AdaptiveSpringMode = *p.AdaptiveSpringMode
	}
	if p.AdaptiveSpringScale != nil {
		cfg.AdaptiveSpringScale = *p.AdaptiveSpringScale
	}
}
