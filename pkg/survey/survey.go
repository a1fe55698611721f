// Package survey exercises domains the way a particle simulation does: it
// spawns points with Generate, checks them with Contains and runs probe
// segments through Intersect, surveying many domains concurrently.
package survey

import (
	"context"
	"runtime"
	"sync"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/df07/go-particle-domains/pkg/core"
	"github.com/df07/go-particle-domains/pkg/domain"
)

// checkInterval is how many samples are drawn between context checks
const checkInterval = 256

// defaultHistogramBins is used when Options.HistogramBins is zero
const defaultHistogramBins = 10

// Options controls a survey run
type Options struct {
	Samples int            // Samples drawn per domain
	Seed    int64          // Base seed; each domain derives its own from its name
	Workers int            // Domains surveyed in parallel; <= 0 uses NumCPU
	Probes  []domain.Probe // Segments intersected against every domain

	// HistogramBins sets the radial histogram resolution for bounded
	// domains; zero uses a default and a negative value disables it
	HistogramBins int

	// OnReport, if set, is called as each domain finishes. Calls are
	// serialized but arrive in completion order.
	OnReport func(Report) error
}

// ProbeResult records one probe segment in both directions
type ProbeResult struct {
	Probe   domain.Probe
	Hit     *domain.Hit // nil when the segment does not intersect
	Reverse *domain.Hit // result for End -> Start
}

// Report summarizes one surveyed domain
type Report struct {
	Name         string
	Type         string
	Seed         int64
	Stats        *SampleStats
	Declared     *core.AABB // Bounds the domain reports, if finite
	Probes       []ProbeResult
	MeanDistance float64 // Mean sample distance from the centroid

	// Histogram bins sample distances from the center of Declared out to
	// its half diagonal; nil for unbounded domains
	Histogram *RadialStats
}

// DomainSeed derives the per-domain seed so results do not depend on
// scheduling order
func DomainSeed(base int64, name string) int64 {
	return base ^ int64(xxhash.Sum64String(name))
}

// Run surveys every domain and returns reports in input order
func Run(ctx context.Context, domains []domain.Named, opts Options, logger *zap.Logger) ([]Report, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	reports := make([]Report, len(domains))
	var callbackMu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, named := range domains {
		g.Go(func() error {
			report, err := surveyDomain(ctx, named, opts, logger.With(zap.String("domain", named.Name)))
			if err != nil {
				return err
			}
			// Each goroutine owns a distinct index
			reports[i] = report
			if opts.OnReport == nil {
				return nil
			}
			callbackMu.Lock()
			defer callbackMu.Unlock()
			return opts.OnReport(report)
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

func surveyDomain(ctx context.Context, named domain.Named, opts Options, logger *zap.Logger) (Report, error) {
	seed := DomainSeed(opts.Seed, named.Name)
	sampler := core.NewSeededSampler(seed)
	stats := &SampleStats{}

	logger.Debug("survey started", zap.String("type", named.Type), zap.Int("samples", opts.Samples), zap.Int64("seed", seed))

	for i := 0; i < opts.Samples; i++ {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Report{}, err
			}
		}
		point := named.Domain.Generate(sampler)
		contained := named.Domain.Contains(point)
		if !contained {
			logger.Warn("generated point outside domain",
				zap.Float64("x", point.X), zap.Float64("y", point.Y), zap.Float64("z", point.Z))
		}
		stats.AddSample(point, contained)
	}

	report := Report{
		Name:  named.Name,
		Type:  named.Type,
		Seed:  seed,
		Stats: stats,
	}

	// Replay the same samples to measure spread without retaining them
	spread := NewRadialStats(stats.Centroid(), 0, 0)
	if bounded, ok := named.Domain.(domain.Bounded); ok {
		bounds := bounded.Bounds()
		report.Declared = &bounds
		if bins := histogramBins(opts.HistogramBins); bins > 0 {
			report.Histogram = NewRadialStats(bounds.Center(), bounds.Size().Length()/2, bins)
		}
	}
	replay := core.NewSeededSampler(seed)
	for i := 0; i < opts.Samples; i++ {
		if i%checkInterval == 0 {
			if err := ctx.Err(); err != nil {
				return Report{}, err
			}
		}
		point := named.Domain.Generate(replay)
		spread.Add(point)
		if report.Histogram != nil {
			report.Histogram.Add(point)
		}
	}
	report.MeanDistance = spread.Mean()

	for _, probe := range opts.Probes {
		report.Probes = append(report.Probes, runProbe(named.Domain, probe))
	}

	logger.Info("survey finished",
		zap.Int("samples", stats.Count),
		zap.Int("failures", stats.Failures),
		zap.Int("probe_hits", countHits(report.Probes)))
	return report, nil
}

func histogramBins(bins int) int {
	if bins == 0 {
		return defaultHistogramBins
	}
	return max(0, bins)
}

func runProbe(d domain.Domain, probe domain.Probe) ProbeResult {
	result := ProbeResult{Probe: probe}
	if hit, ok := d.Intersect(probe.Start, probe.End); ok {
		result.Hit = &hit
	}
	if hit, ok := d.Intersect(probe.End, probe.Start); ok {
		result.Reverse = &hit
	}
	return result
}

func countHits(results []ProbeResult) int {
	n := 0
	for _, r := range results {
		if r.Hit != nil {
			n++
		}
	}
	return n
}
