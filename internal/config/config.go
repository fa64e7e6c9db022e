package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/san-kum/neonfolio/internal/cube"
	"github.com/san-kum/neonfolio/internal/particles"
)

const (
	DefaultFPS      = 60
	DefaultTheme    = "neon"
	DefaultLogLevel = "info"
	MaxParticles    = 2000
)

var (
	ErrInvalidCount    = errors.New("config: particle count must be between 0 and 2000")
	ErrInvalidDistance = errors.New("config: connection distance must be positive")
	ErrInvalidSpeed    = errors.New("config: particle speed must not be negative")
	ErrInvalidRadius   = errors.New("config: radius range is empty or negative")
	ErrInvalidFPS      = errors.New("config: fps must be between 1 and 240")
	ErrInvalidEdge     = errors.New("config: cube edge must be positive and small enough to stay in front of the viewer")
)

type Config struct {
	FPS       int             `yaml:"fps"`
	Seed      int64           `yaml:"seed"`
	Theme     string          `yaml:"theme"`
	Particles ParticlesConfig `yaml:"particles"`
	Cube      CubeConfig      `yaml:"cube"`
	Log       LogConfig       `yaml:"log"`
}

type ParticlesConfig struct {
	Count              int     `yaml:"count"`
	ConnectionDistance float64 `yaml:"connection_distance"`
	Speed              float64 `yaml:"speed"`
	RadiusMin          float64 `yaml:"radius_min"`
	RadiusMax          float64 `yaml:"radius_max"`
}

type AxisPair struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type CubeConfig struct {
	Initial         AxisPair `yaml:"initial"`
	AutoRotate      AxisPair `yaml:"auto_rotate"`
	DragSensitivity float64  `yaml:"drag_sensitivity"`
	KeyStep         float64  `yaml:"key_step"`
	Edge            float64  `yaml:"edge"`
	Faces           []string `yaml:"faces"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

func DefaultConfig() *Config {
	p := particles.DefaultConfig()
	c := cube.DefaultConfig()
	return &Config{
		FPS:   DefaultFPS,
		Theme: DefaultTheme,
		Particles: ParticlesConfig{
			Count:              p.Count,
			ConnectionDistance: p.ConnectionDistance,
			Speed:              p.Speed,
			RadiusMin:          p.RadiusMin,
			RadiusMax:          p.RadiusMax,
		},
		Cube: CubeConfig{
			Initial:         AxisPair{X: c.Initial.X, Y: c.Initial.Y},
			AutoRotate:      AxisPair{X: c.AutoRotate.X, Y: c.AutoRotate.Y},
			DragSensitivity: c.DragSensitivity,
			KeyStep:         c.KeyStep,
			Edge:            c.Edge,
			Faces:           c.Labels,
		},
		Log: LogConfig{Level: DefaultLogLevel},
	}
}

func Load(path string) (*Config, error) {
	return LoadOver(path, DefaultConfig())
}

// LoadOver reads the file at path on top of base, so keys the file leaves
// out keep base's values. base is modified and returned.
func LoadOver(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := base
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	p := c.Particles
	switch {
	case p.Count < 0 || p.Count > MaxParticles:
		return fmt.Errorf("%w (got %d)", ErrInvalidCount, p.Count)
	case p.ConnectionDistance <= 0:
		return fmt.Errorf("%w (got %g)", ErrInvalidDistance, p.ConnectionDistance)
	case p.Speed < 0:
		return fmt.Errorf("%w (got %g)", ErrInvalidSpeed, p.Speed)
	case p.RadiusMin < 0 || p.RadiusMax < p.RadiusMin:
		return fmt.Errorf("%w (got %g..%g)", ErrInvalidRadius, p.RadiusMin, p.RadiusMax)
	case c.FPS < 1 || c.FPS > 240:
		return fmt.Errorf("%w (got %d)", ErrInvalidFPS, c.FPS)
	case c.Cube.Edge <= 0 || c.Cube.Edge >= cube.MaxEdge:
		return fmt.Errorf("%w (got %g, max %.0f)", ErrInvalidEdge, c.Cube.Edge, cube.MaxEdge)
	}
	return nil
}

func (c *Config) ParticleConfig() particles.Config {
	return particles.Config{
		Count:              c.Particles.Count,
		ConnectionDistance: c.Particles.ConnectionDistance,
		Speed:              c.Particles.Speed,
		RadiusMin:          c.Particles.RadiusMin,
		RadiusMax:          c.Particles.RadiusMax,
	}
}

func (c *Config) CubeConfig() cube.Config {
	return cube.Config{
		Initial:         cube.Rotation{X: c.Cube.Initial.X, Y: c.Cube.Initial.Y},
		AutoRotate:      cube.Rotation{X: c.Cube.AutoRotate.X, Y: c.Cube.AutoRotate.Y},
		DragSensitivity: c.Cube.DragSensitivity,
		KeyStep:         c.Cube.KeyStep,
		Edge:            c.Cube.Edge,
		Labels:          c.Cube.Faces,
	}
}
