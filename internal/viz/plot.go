package viz

import (
	"github.com/guptarohit/asciigraph"
)

// Downsample keeps at most n evenly spaced points of xs, always including the
// last one.
func Downsample(xs []float64, n int) []float64 {
	if n <= 0 || len(xs) <= n {
		return xs
	}
	if n == 1 {
		return xs[len(xs)-1:]
	}
	out := make([]float64, n)
	last := len(xs) - 1
	for i := range out {
		out[i] = xs[i*last/(n-1)]
	}
	return out
}

// Plot draws a line graph of xs. It returns "" for an empty series.
func Plot(xs []float64, width, height int, caption string) string {
	if len(xs) == 0 {
		return ""
	}
	data := Downsample(xs, width)
	opts := []asciigraph.Option{asciigraph.Height(height), asciigraph.Caption(caption)}
	if width > 0 {
		opts = append(opts, asciigraph.Width(width))
	}
	return asciigraph.Plot(data, opts...)
}
