package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/df07/go-particle-domains/pkg/core"
	"github.com/df07/go-particle-domains/pkg/domain"
	"github.com/df07/go-particle-domains/pkg/logging"
	"github.com/df07/go-particle-domains/pkg/survey"
)

func main() {
	// Parse command line flags
	configPath := flag.String("config", "", "YAML file describing the domains to survey")
	samples := flag.Int("samples", 0, "Samples per domain (overrides config)")
	seed := flag.Int64("seed", 0, "Base random seed (overrides config when non-zero)")
	workers := flag.Int("workers", 0, "Domains surveyed in parallel (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	help := flag.Bool("help", false, "Show help information")
	flag.Parse()

	// Show help if requested
	if *help || *configPath == "" {
		fmt.Println("Particle Domain Survey")
		fmt.Println("Usage: domains -config domains.yaml [options]")
		fmt.Println()
		fmt.Println("Options:")
		flag.PrintDefaults()
		fmt.Println()
		fmt.Println("Domain types: point, line, plane, aabox, sphere, disc")
		if !*help {
			os.Exit(2)
		}
		return
	}

	cfg, err := domain.LoadConfigFile(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(cfg, *samples, *seed, *workers, *logLevel)

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, os.Stdout, logger); err != nil {
		logger.Error("survey failed", zap.Error(err))
		os.Exit(1)
	}
}

func applyOverrides(cfg *domain.Config, samples int, seed int64, workers int, logLevel string) {
	if samples > 0 {
		cfg.Samples = samples
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
}

// run builds the configured domains, surveys them and writes a YAML report to out
func run(ctx context.Context, cfg *domain.Config, out io.Writer, logger *zap.Logger) error {
	domains, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("failed to build domains: %w", err)
	}
	probes, err := cfg.BuildProbes()
	if err != nil {
		return fmt.Errorf("failed to build probes: %w", err)
	}

	logger.Info("starting survey",
		zap.Int("domains", len(domains)),
		zap.Int("samples", cfg.Samples),
		zap.Int("workers", cfg.Workers),
		zap.Int64("seed", cfg.Seed))

	reports, err := survey.Run(ctx, domains, survey.Options{
		Samples: cfg.Samples,
		Seed:    cfg.Seed,
		Workers: cfg.Workers,
		Probes:  probes,
	}, logger)
	if err != nil {
		return err
	}

	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(toOutput(reports))
}

type reportOutput struct {
	Name         string           `yaml:"name"`
	Type         string           `yaml:"type"`
	Seed         int64            `yaml:"seed"`
	Samples      int              `yaml:"samples"`
	Failures     int              `yaml:"failures"`
	Centroid     []float64        `yaml:"centroid"`
	SampleMin    []float64        `yaml:"sample_min"`
	SampleMax    []float64        `yaml:"sample_max"`
	MeanDistance float64          `yaml:"mean_distance"`
	BoundsMin    []float64        `yaml:"bounds_min,omitempty"`
	BoundsMax    []float64        `yaml:"bounds_max,omitempty"`
	Histogram    *histogramOutput `yaml:"radial_histogram,omitempty"`
	Probes       []probeOutput    `yaml:"probes,omitempty"`
}

type histogramOutput struct {
	Center []float64 `yaml:"center"`
	Radius float64   `yaml:"radius"`
	Bins   []int     `yaml:"bins,flow"`
}

type probeOutput struct {
	Start   []float64  `yaml:"start"`
	End     []float64  `yaml:"end"`
	Hit     *hitOutput `yaml:"hit,omitempty"`
	Reverse *hitOutput `yaml:"reverse,omitempty"`
}

type hitOutput struct {
	Point  []float64 `yaml:"point"`
	Normal []float64 `yaml:"normal"`
}

func toOutput(reports []survey.Report) []reportOutput {
	out := make([]reportOutput, 0, len(reports))
	for _, r := range reports {
		ro := reportOutput{
			Name:         r.Name,
			Type:         r.Type,
			Seed:         r.Seed,
			Samples:      r.Stats.Count,
			Failures:     r.Stats.Failures,
			Centroid:     components(r.Stats.Centroid()),
			SampleMin:    components(r.Stats.Bounds.Min),
			SampleMax:    components(r.Stats.Bounds.Max),
			MeanDistance: r.MeanDistance,
		}
		if r.Declared != nil {
			ro.BoundsMin = components(r.Declared.Min)
			ro.BoundsMax = components(r.Declared.Max)
		}
		if h := r.Histogram; h != nil && len(h.Bins) > 0 {
			ro.Histogram = &histogramOutput{Center: components(h.Origin), Radius: h.Radius, Bins: h.Bins}
		}
		for _, p := range r.Probes {
			ro.Probes = append(ro.Probes, probeOutput{
				Start:   components(p.Probe.Start),
				End:     components(p.Probe.End),
				Hit:     hitToOutput(p.Hit),
				Reverse: hitToOutput(p.Reverse),
			})
		}
		out = append(out, ro)
	}
	return out
}

func hitToOutput(hit *domain.Hit) *hitOutput {
	if hit == nil {
		return nil
	}
	return &hitOutput{Point: components(hit.Point), Normal: components(hit.Normal)}
}

func components(v core.Vec3) []float64 {
	return []float64{v.X, v.Y, v.Z}
}
