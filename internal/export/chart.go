package export

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"gonum.org/v1/gonum/floats"

	"github.com/san-kum/reactorsim/internal/trace"
)

type Format string

const (
	PNG Format = "png"
	SVG Format = "svg"
)

type ChartOptions struct {
	Title  string
	Width  int
	Height int
	// MaxPoints bounds the points drawn per series.
	MaxPoints int
	Format    Format
}

func DefaultChartOptions() ChartOptions {
	return ChartOptions{Width: 1280, Height: 720, MaxPoints: 2000, Format: PNG}
}

// Chart renders the given quantities against time on one set of axes.
func Chart(w io.Writer, tr *trace.Trace, quantities []trace.Quantity, opts ChartOptions) error {
	if tr.Len() < 2 {
		return fmt.Errorf("%w: need at least 2 samples to chart, got %d", ErrEmptyTrace, tr.Len())
	}
	if len(quantities) == 0 {
		quantities = []trace.Quantity{trace.Power}
	}

	stride := 1
	if opts.MaxPoints > 0 && tr.Len() > opts.MaxPoints {
		stride = (tr.Len() + opts.MaxPoints - 1) / opts.MaxPoints
	}
	rows := Rows(tr.Len(), stride)
	pick := func(q trace.Quantity) []float64 {
		full := tr.Series(q)
		out := make([]float64, len(rows))
		for i, k := range rows {
			out[i] = full[k]
		}
		return out
	}

	xs := pick(trace.Time)
	var series []chart.Series
	lo, hi := 0.0, 0.0
	for i, q := range quantities {
		if !tr.Has(q) {
			return fmt.Errorf("%w: %s", trace.ErrUnknownSeries, q)
		}
		ys := pick(q)
		if i == 0 {
			lo, hi = floats.Min(ys), floats.Max(ys)
		} else {
			lo, hi = min(lo, floats.Min(ys)), max(hi, floats.Max(ys))
		}
		series = append(series, chart.ContinuousSeries{
			Name:    string(q),
			XValues: xs,
			YValues: ys,
		})
	}

	graph := chart.Chart{
		Title:  opts.Title,
		Width:  opts.Width,
		Height: opts.Height,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis:  chart.XAxis{Name: "t (s)"},
		YAxis:  chart.YAxis{},
		Series: series,
	}
	if lo == hi {
		// flat series need a non-empty range
		graph.YAxis.Range = &chart.ContinuousRange{Min: lo - 1, Max: hi + 1}
	}
	if len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	}

	provider := chart.PNG
	if opts.Format == SVG {
		provider = chart.SVG
	}
	return graph.Render(provider, w)
}
