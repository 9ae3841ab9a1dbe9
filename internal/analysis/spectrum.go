package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/dsp/fourier"
	"gonum.org/v1/gonum/stat"
)

// PowerSpectrum returns the amplitude of each non-negative frequency bin of
// xs after removing its mean. Bin i corresponds to i/(len(xs)·dt) Hz.
func PowerSpectrum(xs []float64) []float64 {
	if len(xs) < 2 {
		return nil
	}
	mean := stat.Mean(xs, nil)
	centered := make([]float64, len(xs))
	for i, x := range xs {
		centered[i] = x - mean
	}
	coeff := fourier.NewFFT(len(xs)).Coefficients(nil, centered)
	ps := make([]float64, len(coeff))
	for i, c := range coeff {
		ps[i] = cmplx.Abs(c)
	}
	return ps
}

// DominantFrequency returns the frequency in Hz of the strongest non-DC bin
// for xs sampled every dt seconds, and 0 when there is no oscillation. Trim
// irregular samples with [Uniform] first.
func DominantFrequency(xs []float64, dt float64) float64 {
	ps := PowerSpectrum(xs)
	best, amp := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > amp {
			best, amp = i, ps[i]
		}
	}
	if best == 0 || dt <= 0 {
		return 0
	}
	return float64(best) / (float64(len(xs)) * dt)
}

// Uniform returns the longest prefix of xs whose sample times t share the
// spacing of the first interval, together with that spacing. A thinned trace
// ends with an off-grid final sample, which this drops.
func Uniform(t, xs []float64) ([]float64, float64, error) {
	if len(t) != len(xs) {
		return nil, 0, fmt.Errorf("analysis: %d times, %d samples", len(t), len(xs))
	}
	if len(t) < 2 {
		return nil, 0, ErrTooShort
	}
	step := t[1] - t[0]
	if !(step > 0) {
		return nil, 0, fmt.Errorf("analysis: non-increasing sample times at %g", t[0])
	}
	n := 2
	for n < len(t) && math.Abs(t[n]-t[n-1]-step) <= 1e-9*step {
		n++
	}
	return xs[:n], step, nil
}
