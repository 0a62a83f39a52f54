package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/tbraden/numlab/internal/models"
	"github.com/tbraden/numlab/internal/shooting"
)

const (
	DefaultH         = 1e-3
	DefaultGuess     = 0.25
	DefaultAlpha     = 0.0
	DefaultBeta      = 0.0
	DefaultSpan      = 50.0
	DefaultStiffness = 8.5e7
	DefaultTension   = 100.0
	DefaultLoad      = 1000.0
	DefaultLevels    = 6
)

type Config struct {
	Model       string            `yaml:"model"`
	H           float64           `yaml:"h"`
	Alpha       float64           `yaml:"alpha"`
	Beta        float64           `yaml:"beta"`
	Guess       float64           `yaml:"guess"`
	Beam        BeamConfig        `yaml:"beam"`
	Linear      LinearConfig      `yaml:"linear"`
	Convergence ConvergenceConfig `yaml:"convergence"`
}

type BeamConfig struct {
	Span      float64 `yaml:"span"`
	Stiffness float64 `yaml:"stiffness"`
	Tension   float64 `yaml:"tension"`
	Load      float64 `yaml:"load"`
}

type LinearConfig struct {
	A    float64 `yaml:"a"`
	B    float64 `yaml:"b"`
	Span float64 `yaml:"span"`
}

type ConvergenceConfig struct {
	BaseH  float64 `yaml:"base_h"`
	Levels int     `yaml:"levels"`
}

func DefaultConfig() *Config {
	return &Config{
		Model: "beam",
		H:     DefaultH,
		Alpha: DefaultAlpha,
		Beta:  DefaultBeta,
		Guess: DefaultGuess,
		Beam: BeamConfig{
			Span:      DefaultSpan,
			Stiffness: DefaultStiffness,
			Tension:   DefaultTension,
			Load:      DefaultLoad,
		},
		Linear: LinearConfig{A: 1.0, B: 0.0, Span: 1.0},
		Convergence: ConvergenceConfig{
			BaseH:  DefaultH,
			Levels: DefaultLevels,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

// BuildSystem constructs the configured boundary-value model.
func (c *Config) BuildSystem() (shooting.System, error) {
	switch c.Model {
	case "beam":
		b := models.NewBeam()
		b.Span = c.Beam.Span
		b.Stiffness = c.Beam.Stiffness
		b.Tension = c.Beam.Tension
		b.Load = c.Beam.Load
		return b, nil
	case "linear":
		return models.NewLinear(c.Linear.A, c.Linear.B, c.Linear.Span), nil
	default:
		return nil, fmt.Errorf("unknown model: %s", c.Model)
	}
}

// DriverConfig maps the file configuration onto the shooting driver.
func (c *Config) DriverConfig() shooting.Config {
	return shooting.Config{
		Alpha: c.Alpha,
		Beta:  c.Beta,
		Guess: c.Guess,
		H:     c.H,
	}
}
