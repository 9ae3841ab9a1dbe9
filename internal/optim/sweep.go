// Package optim searches fixed control insertions that bring a core to a
// target power.
package optim

import (
	"context"
	"errors"
	"fmt"
	"math"
	"runtime"

	"github.com/go-logr/logr"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/reactorsim/internal/control"
	"github.com/san-kum/reactorsim/internal/logging"
	"github.com/san-kum/reactorsim/internal/metrics"
	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/reactor"
	"github.com/san-kum/reactorsim/internal/trace"
)

var ErrNoCandidates = errors.New("optim: no sweep candidates")

// Entry is the outcome of one candidate run.
type Entry struct {
	Thermal   float64 `json:"sigma_ctrl_thermal"`
	MeanPower float64 `json:"mean_power"`
	Diff      float64 `json:"diff"`
}

type Result struct {
	Best    Entry   `json:"best"`
	Entries []Entry `json:"entries"`
	// Final is the longer run with the best insertion, when requested.
	Final *trace.Trace `json:"-"`
}

// ControlSweep runs one fixed-insertion simulation per thermal candidate and
// keeps the one whose tail-mean power is closest to Target.
type ControlSweep struct {
	Target       float64
	Candidates   []float64
	Fast         float64 // fixed fast-group insertion for every candidate
	ScanTime     float64
	TailFraction float64
	// FinalTime, when positive, reruns the best candidate over this horizon.
	FinalTime float64
	Workers   int
	Log       logr.Logger
}

// DefaultCandidates is 0..20 1/s in steps of 1.
func DefaultCandidates() []float64 {
	return Span(0, 20, 21)
}

// Span returns n evenly spaced values from lo to hi inclusive. n must be at
// least 2.
func Span(lo, hi float64, n int) []float64 {
	return floats.Span(make([]float64, n), lo, hi)
}

func NewControlSweep(target float64) *ControlSweep {
	return &ControlSweep{
		Target:       target,
		Candidates:   DefaultCandidates(),
		ScanTime:     5.0,
		TailFraction: 0.2,
		Workers:      runtime.GOMAXPROCS(0),
		Log:          logr.Discard(),
	}
}

func (s *ControlSweep) validate() error {
	if len(s.Candidates) == 0 {
		return ErrNoCandidates
	}
	for _, c := range s.Candidates {
		if !(c >= 0) || math.IsInf(c, 0) {
			return fmt.Errorf("%w: candidate %g", control.ErrInvalidLaw, c)
		}
	}
	if !(s.ScanTime > 0) {
		return fmt.Errorf("optim: scan time must be positive, got %g", s.ScanTime)
	}
	if !(s.TailFraction > 0 && s.TailFraction <= 1) {
		return fmt.Errorf("optim: tail fraction must be in (0, 1], got %g", s.TailFraction)
	}
	return nil
}

// Run sweeps the candidates concurrently. cfg supplies everything but the
// horizon. The provider is shared between workers.
func (s *ControlSweep) Run(ctx context.Context, provider nucdata.Provider, cfg reactor.Configuration) (*Result, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	scan := cfg
	scan.Duration = s.ScanTime

	entries := make([]Entry, len(s.Candidates))
	g, gctx := errgroup.WithContext(ctx)
	workers := s.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)

	for i, sigma := range s.Candidates {
		g.Go(func() error {
			sim := reactor.NewSimulator(provider, control.NewFixed(s.Fast, sigma))
			tr, err := sim.Run(gctx, scan)
			if err != nil {
				return fmt.Errorf("candidate %g: %w", sigma, err)
			}
			mean, err := metrics.TailMean(tr.Series(trace.Power), s.TailFraction)
			if err != nil {
				return fmt.Errorf("candidate %g: %w", sigma, err)
			}
			entries[i] = Entry{Thermal: sigma, MeanPower: mean, Diff: math.Abs(mean - s.Target)}
			s.Log.V(logging.DEBUG).Info("sweep candidate", "sigma_thermal", sigma, "mean_power", mean)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	best := 0
	for i, e := range entries {
		if e.Diff < entries[best].Diff {
			best = i
		}
	}
	res := &Result{Best: entries[best], Entries: entries}
	s.Log.Info("sweep finished", "best_sigma_thermal", res.Best.Thermal, "mean_power", res.Best.MeanPower)

	if s.FinalTime > 0 {
		final := cfg
		final.Duration = s.FinalTime
		sim := reactor.NewSimulator(provider, control.NewFixed(s.Fast, res.Best.Thermal), reactor.WithLogger(s.Log))
		for _, m := range metrics.Standard(0) {
			sim.AddMetric(m)
		}
		tr, err := sim.Run(ctx, final)
		if err != nil {
			return nil, fmt.Errorf("final run: %w", err)
		}
		res.Final = tr
	}
	return res, nil
}
