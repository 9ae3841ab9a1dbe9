package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/trace"
)

func testTrace(t *testing.T, n int) *trace.Trace {
	t.Helper()
	ts := make([]float64, n)
	ps := make([]float64, n)
	for k := range ts {
		ts[k] = float64(k) * 0.1
		ps[k] = 1e9 * float64(k) / 3
	}
	tr, err := trace.FromColumns([]trace.Quantity{trace.Time, trace.Power}, [][]float64{ts, ps})
	if err != nil {
		t.Fatalf("build trace: %v", err)
	}
	tr.Metrics["peak_power"] = ps[n-1]
	return tr
}

func TestRows(t *testing.T) {
	tests := []struct {
		n, stride int
		want      []int
	}{
		{0, 1, nil},
		{1, 5, []int{0}},
		{5, 1, []int{0, 1, 2, 3, 4}},
		{5, 2, []int{0, 2, 4}},
		{6, 2, []int{0, 2, 4, 5}},
		{4, 0, []int{0, 1, 2, 3}},
		{10, 100, []int{0, 9}},
	}
	for _, tt := range tests {
		if got := Rows(tt.n, tt.stride); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Rows(%d, %d) = %v, want %v", tt.n, tt.stride, got, tt.want)
		}
	}
}

func TestCSVRoundTrip(t *testing.T) {
	tr := testTrace(t, 7)

	var buf bytes.Buffer
	if err := CSV(&buf, tr, 1); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	if !strings.HasPrefix(buf.String(), "t,P\n") {
		t.Errorf("unexpected header: %q", strings.SplitN(buf.String(), "\n", 2)[0])
	}

	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if back.Len() != 7 {
		t.Fatalf("expected 7 samples, got %d", back.Len())
	}
	for _, q := range tr.Quantities() {
		if !reflect.DeepEqual(tr.Series(q), back.Series(q)) {
			t.Errorf("%s differs after round trip", q)
		}
	}
}

func TestCSVStride(t *testing.T) {
	tr := testTrace(t, 10)
	var buf bytes.Buffer
	if err := CSV(&buf, tr, 4); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	back, err := ReadCSV(&buf)
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	// rows 0, 4, 8 and the final sample 9
	if back.Len() != 4 {
		t.Fatalf("expected 4 samples, got %d", back.Len())
	}
	if back.Last(trace.Power) != tr.Last(trace.Power) {
		t.Error("final sample must be kept")
	}
}

func TestReadCSVErrors(t *testing.T) {
	if _, err := ReadCSV(strings.NewReader("")); !errors.Is(err, ErrEmptyTrace) {
		t.Errorf("expected ErrEmptyTrace, got %v", err)
	}
	if _, err := ReadCSV(strings.NewReader("t,P\n0,abc\n")); err == nil {
		t.Error("expected parse error")
	}
	if _, err := ReadCSV(strings.NewReader("t,P\n0,1,2\n")); err == nil {
		t.Error("expected field count error")
	}
	tr, err := ReadCSV(strings.NewReader("t,P\n"))
	if err != nil {
		t.Fatalf("header only: %v", err)
	}
	if tr.Len() != 0 || !tr.Has(trace.Power) {
		t.Error("expected empty trace with quantities")
	}
}

func TestJSON(t *testing.T) {
	tr := testTrace(t, 5)
	tr.Diagnostics = []nucdata.Diagnostic{{Kind: nucdata.MissingHalfLife, Nuclide: nucdata.Xe135, Detail: "x"}}

	var buf bytes.Buffer
	if err := JSON(&buf, tr, 2); err != nil {
		t.Fatalf("write json: %v", err)
	}
	var got Data
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Samples != 3 {
		t.Errorf("expected 3 samples, got %d", got.Samples)
	}
	if !reflect.DeepEqual(got.Series[trace.Time], []float64{0, 0.2, 0.4}) {
		t.Errorf("unexpected time series %v", got.Series[trace.Time])
	}
	if got.Metrics["peak_power"] != tr.Last(trace.Power) {
		t.Error("metrics missing")
	}
	if len(got.Diagnostics) != 1 || got.Diagnostics[0].Kind != nucdata.MissingHalfLife {
		t.Errorf("diagnostics not exported: %+v", got.Diagnostics)
	}
}

func TestChart(t *testing.T) {
	tr := testTrace(t, 50)

	var png bytes.Buffer
	if err := Chart(&png, tr, nil, DefaultChartOptions()); err != nil {
		t.Fatalf("render png: %v", err)
	}
	if !bytes.HasPrefix(png.Bytes(), []byte("\x89PNG")) {
		t.Error("expected PNG signature")
	}

	opts := DefaultChartOptions()
	opts.Format = SVG
	opts.MaxPoints = 10
	var svg bytes.Buffer
	if err := Chart(&svg, tr, []trace.Quantity{trace.Power, trace.Time}, opts); err != nil {
		t.Fatalf("render svg: %v", err)
	}
	if !strings.Contains(svg.String(), "<svg") {
		t.Error("expected svg output")
	}
}

func TestChartFlatSeries(t *testing.T) {
	tr, err := trace.FromColumns([]trace.Quantity{trace.Time, trace.Power}, [][]float64{{0, 1, 2}, {0, 0, 0}})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err := Chart(&buf, tr, nil, DefaultChartOptions()); err != nil {
		t.Fatalf("flat series should render: %v", err)
	}
}

func TestChartErrors(t *testing.T) {
	var buf bytes.Buffer
	if err := Chart(&buf, testTrace(t, 1), nil, DefaultChartOptions()); !errors.Is(err, ErrEmptyTrace) {
		t.Errorf("expected ErrEmptyTrace, got %v", err)
	}
	if err := Chart(&buf, testTrace(t, 5), []trace.Quantity{trace.Xenon}, DefaultChartOptions()); !errors.Is(err, trace.ErrUnknownSeries) {
		t.Errorf("expected ErrUnknownSeries, got %v", err)
	}
}
