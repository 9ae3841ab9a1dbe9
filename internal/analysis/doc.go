// Package analysis derives reactor diagnostics from a recorded power history.
//
//   - [Period]: instantaneous reactor period P/(dP/dt)
//   - [AsymptoticPeriod]: e-folding time fitted to the tail of a run
//   - [PowerSpectrum]: one-sided amplitude spectrum of a series
//   - [DominantFrequency]: strongest non-DC oscillation, e.g. controller hunting
//
// A positive period means power is rising:
//
//	tau, err := analysis.AsymptoticPeriod(tr, 0.2)
//	if err == nil && tau > 0 {
//	    fmt.Printf("doubling time %.3g s\n", analysis.DoublingTime(tau))
//	}
package analysis
