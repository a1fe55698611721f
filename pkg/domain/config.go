package domain

import (
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/df07/go-particle-domains/pkg/core"
)

// Domain type names accepted in configuration files
const (
	TypePoint  = "point"
	TypeLine   = "line"
	TypePlane  = "plane"
	TypeAABox  = "aabox"
	TypeSphere = "sphere"
	TypeDisc   = "disc"
)

const defaultSamples = 1000

// Config describes a set of named domains and how to survey them
type Config struct {
	Seed     int64          `yaml:"seed"`
	Samples  int            `yaml:"samples"`
	Workers  int            `yaml:"workers"`
	LogLevel string         `yaml:"log_level"`
	Domains  []DomainConfig `yaml:"domains"`
	Probes   []ProbeConfig  `yaml:"probes"`
}

// DomainConfig holds the construction parameters of one domain. Only the
// fields relevant to Type are read.
type DomainConfig struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Position    []float64 `yaml:"position,omitempty"`
	Start       []float64 `yaml:"start,omitempty"`
	End         []float64 `yaml:"end,omitempty"`
	Point       []float64 `yaml:"point,omitempty"`
	Normal      []float64 `yaml:"normal,omitempty"`
	Min         []float64 `yaml:"min,omitempty"`
	Max         []float64 `yaml:"max,omitempty"`
	Center      []float64 `yaml:"center,omitempty"`
	OuterRadius float64   `yaml:"outer_radius,omitempty"`
	InnerRadius float64   `yaml:"inner_radius,omitempty"`
}

// ProbeConfig is a segment tested against every domain
type ProbeConfig struct {
	Start []float64 `yaml:"start"`
	End   []float64 `yaml:"end"`
}

// Probe is a resolved probe segment
type Probe struct {
	Start core.Vec3
	End   core.Vec3
}

// LoadConfig decodes a YAML configuration and applies defaults
func LoadConfig(r io.Reader) (*Config, error) {
	var c Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("config is empty")
		}
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	c.applyDefaults()
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// LoadConfigFile reads the configuration at path
func LoadConfigFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()
	return LoadConfig(f)
}

func (c *Config) applyDefaults() {
	if c.Samples <= 0 {
		c.Samples = defaultSamples
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

// Validate checks names and probe vectors. Domain parameters are checked when built.
func (c *Config) Validate() error {
	if len(c.Domains) == 0 {
		return errors.New("config defines no domains")
	}
	seen := make(map[string]bool, len(c.Domains))
	for i, dc := range c.Domains {
		if dc.Name == "" {
			return fmt.Errorf("domain %d: name is required", i)
		}
		if seen[dc.Name] {
			return fmt.Errorf("domain %q: duplicate name", dc.Name)
		}
		seen[dc.Name] = true
	}
	for i, pc := range c.Probes {
		if _, err := pc.Build(); err != nil {
			return fmt.Errorf("probe %d: %w", i, err)
		}
	}
	return nil
}

// Build constructs every configured domain in order
func (c *Config) Build() ([]Named, error) {
	named := make([]Named, 0, len(c.Domains))
	for _, dc := range c.Domains {
		d, err := dc.Build()
		if err != nil {
			return nil, fmt.Errorf("domain %q: %w", dc.Name, err)
		}
		named = append(named, Named{Name: dc.Name, Type: normalizeType(dc.Type), Domain: d})
	}
	return named, nil
}

// BuildProbes resolves the probe segments
func (c *Config) BuildProbes() ([]Probe, error) {
	probes := make([]Probe, 0, len(c.Probes))
	for i, pc := range c.Probes {
		p, err := pc.Build()
		if err != nil {
			return nil, fmt.Errorf("probe %d: %w", i, err)
		}
		probes = append(probes, p)
	}
	return probes, nil
}

// Build resolves the probe's endpoints
func (pc ProbeConfig) Build() (Probe, error) {
	start, err := vector("start", pc.Start)
	if err != nil {
		return Probe{}, err
	}
	end, err := vector("end", pc.End)
	if err != nil {
		return Probe{}, err
	}
	return Probe{Start: start, End: end}, nil
}

// Build constructs the domain described by dc
func (dc DomainConfig) Build() (Domain, error) {
	switch normalizeType(dc.Type) {
	case TypePoint:
		position, err := vector("position", dc.Position)
		if err != nil {
			return nil, err
		}
		return NewPoint(position), nil

	case TypeLine:
		start, err := vector("start", dc.Start)
		if err != nil {
			return nil, err
		}
		end, err := vector("end", dc.End)
		if err != nil {
			return nil, err
		}
		return NewLine(start, end), nil

	case TypePlane:
		point, err := vector("point", dc.Point)
		if err != nil {
			return nil, err
		}
		normal, err := vector("normal", dc.Normal)
		if err != nil {
			return nil, err
		}
		plane, err := NewPlane(point, normal)
		if err != nil {
			return nil, err
		}
		return plane, nil

	case TypeAABox:
		min, err := vector("min", dc.Min)
		if err != nil {
			return nil, err
		}
		max, err := vector("max", dc.Max)
		if err != nil {
			return nil, err
		}
		return NewAABox(min, max), nil

	case TypeSphere:
		center, err := vector("center", dc.Center)
		if err != nil {
			return nil, err
		}
		sphere, err := NewShell(center, dc.OuterRadius, dc.InnerRadius)
		if err != nil {
			return nil, err
		}
		return sphere, nil

	case TypeDisc:
		center, err := vector("center", dc.Center)
		if err != nil {
			return nil, err
		}
		normal, err := vector("normal", dc.Normal)
		if err != nil {
			return nil, err
		}
		disc, err := NewDisc(center, normal, dc.OuterRadius, dc.InnerRadius)
		if err != nil {
			return nil, err
		}
		return disc, nil

	default:
		return nil, fmt.Errorf("unknown domain type %q: %w", dc.Type, core.ErrInvalidArgument)
	}
}

func normalizeType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func vector(field string, values []float64) (core.Vec3, error) {
	if len(values) != 3 {
		return core.Vec3{}, fmt.Errorf("%s needs 3 components, got %d: %w", field, len(values), core.ErrInvalidArgument)
	}
	return core.NewVec3(values[0], values[1], values[2]), nil
}
