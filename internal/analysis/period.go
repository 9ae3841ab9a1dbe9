package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/san-kum/reactorsim/internal/trace"
)

var ErrTooShort = errors.New("analysis: not enough samples")

const flatSlope = 1e-12 // 1/s

// Period returns P/(dP/dt) between consecutive samples. The result has one
// entry fewer than p. Flat intervals give +Inf, intervals starting at zero
// power give NaN.
func Period(t, p []float64) ([]float64, error) {
	if len(t) != len(p) {
		return nil, fmt.Errorf("analysis: %d times, %d powers", len(t), len(p))
	}
	if len(p) < 2 {
		return nil, ErrTooShort
	}
	out := make([]float64, len(p)-1)
	for k := range out {
		dp := p[k+1] - p[k]
		switch {
		case p[k] <= 0:
			out[k] = math.NaN()
		case dp == 0:
			out[k] = math.Inf(1)
		default:
			out[k] = p[k] * (t[k+1] - t[k]) / dp
		}
	}
	return out, nil
}

// AsymptoticPeriod fits ln P = a + t/tau over the last fraction of the run and
// returns tau. Samples with zero power are skipped. A tail flatter than
// flatSlope gives +Inf.
func AsymptoticPeriod(tr *trace.Trace, fraction float64) (float64, error) {
	if !(fraction > 0 && fraction <= 1) {
		return 0, fmt.Errorf("analysis: tail fraction must be in (0, 1], got %g", fraction)
	}
	t, p := tr.Series(trace.Time), tr.Series(trace.Power)
	start := len(p) - int(math.Ceil(fraction*float64(len(p))))

	var xs, ys []float64
	for k := max(start, 0); k < len(p); k++ {
		if p[k] > 0 {
			xs = append(xs, t[k])
			ys = append(ys, math.Log(p[k]))
		}
	}
	if len(xs) < 2 {
		return 0, ErrTooShort
	}
	_, slope := stat.LinearRegression(xs, ys, nil, false)
	if math.Abs(slope) < flatSlope || math.IsNaN(slope) {
		return math.Inf(1), nil
	}
	return 1 / slope, nil
}

// DoublingTime converts a period into the time to double (or, for negative
// periods, halve) the power.
func DoublingTime(period float64) float64 {
	return period * math.Ln2
}
