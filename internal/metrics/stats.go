// Package metrics holds streaming observers of a run and summary statistics
// over recorded series.
package metrics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/reactorsim/internal/trace"
)

// TailMean averages the last fraction of xs. At least one sample is used.
func TailMean(xs []float64, fraction float64) (float64, error) {
	if len(xs) == 0 {
		return 0, fmt.Errorf("metrics: empty series")
	}
	if !(fraction > 0 && fraction <= 1) {
		return 0, fmt.Errorf("metrics: tail fraction must be in (0, 1], got %g", fraction)
	}
	n := int(math.Ceil(float64(len(xs)) * fraction))
	if n < 1 {
		n = 1
	}
	return stat.Mean(xs[len(xs)-n:], nil), nil
}

type Summary struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
	Min    float64 `json:"min"`
	Max    float64 `json:"max"`
	Final  float64 `json:"final"`
}

func Summarize(xs []float64) Summary {
	if len(xs) == 0 {
		return Summary{}
	}
	var s Summary
	if len(xs) == 1 {
		s.Mean = xs[0]
	} else {
		s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
	}
	s.Min = floats.Min(xs)
	s.Max = floats.Max(xs)
	s.Final = xs[len(xs)-1]
	return s
}

// SummarizeTrace summarizes each requested quantity present in tr.
func SummarizeTrace(tr *trace.Trace, quantities ...trace.Quantity) map[trace.Quantity]Summary {
	out := make(map[trace.Quantity]Summary, len(quantities))
	for _, q := range quantities {
		if xs := tr.Series(q); xs != nil {
			out[q] = Summarize(xs)
		}
	}
	return out
}

// Standard returns the metrics attached to every CLI run. nominal scales the
// tracking metrics; pass 0 when the law has no setpoint.
func Standard(nominal float64) []Observer {
	ms := []Observer{NewPeakPower(), NewEnergy(), NewControlEffort(), NewMeanKEff()}
	if nominal > 0 {
		ms = append(ms, NewTrackingError(nominal), NewStability(0.05, nominal))
	}
	return ms
}

// Observer matches reactor.Metric.
type Observer interface {
	Name() string
	Observe(s trace.Sample)
	Value() float64
	Reset()
}
