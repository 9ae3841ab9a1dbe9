// Package export writes recorded traces as JSON, CSV and rendered charts.
package export

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/san-kum/reactorsim/internal/nucdata"
	"github.com/san-kum/reactorsim/internal/trace"
)

var ErrEmptyTrace = errors.New("export: trace has no samples")

// Rows lists the sample indices kept when writing every stride-th sample.
// The last sample is always kept.
func Rows(n, stride int) []int {
	if n == 0 {
		return nil
	}
	if stride < 1 {
		stride = 1
	}
	rows := make([]int, 0, n/stride+2)
	for k := 0; k < n; k += stride {
		rows = append(rows, k)
	}
	if rows[len(rows)-1] != n-1 {
		rows = append(rows, n-1)
	}
	return rows
}

type Data struct {
	Samples     int                          `json:"samples"`
	Quantities  []trace.Quantity             `json:"quantities"`
	Series      map[trace.Quantity][]float64 `json:"series"`
	Metrics     map[string]float64           `json:"metrics,omitempty"`
	Diagnostics []nucdata.Diagnostic         `json:"diagnostics,omitempty"`
}

func NewData(tr *trace.Trace, stride int) Data {
	rows := Rows(tr.Len(), stride)
	d := Data{
		Samples:     len(rows),
		Quantities:  tr.Quantities(),
		Series:      make(map[trace.Quantity][]float64),
		Metrics:     tr.Metrics,
		Diagnostics: tr.Diagnostics,
	}
	for _, q := range d.Quantities {
		full := tr.Series(q)
		out := make([]float64, len(rows))
		for i, k := range rows {
			out[i] = full[k]
		}
		d.Series[q] = out
	}
	return d
}

func JSON(w io.Writer, tr *trace.Trace, stride int) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(NewData(tr, stride))
}

// CSV writes a header of quantity names followed by one row per kept sample.
// Values use the shortest exact representation.
func CSV(w io.Writer, tr *trace.Trace, stride int) error {
	cw := csv.NewWriter(w)
	quantities := tr.Quantities()

	header := make([]string, len(quantities))
	for i, q := range quantities {
		header[i] = string(q)
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	row := make([]string, len(quantities))
	for _, k := range Rows(tr.Len(), stride) {
		for i, q := range quantities {
			row[i] = strconv.FormatFloat(tr.Value(q, k), 'g', -1, 64)
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ReadCSV parses the output of CSV back into a trace.
func ReadCSV(r io.Reader) (*trace.Trace, error) {
	cr := csv.NewReader(r)
	header, err := cr.Read()
	if err == io.EOF {
		return nil, ErrEmptyTrace
	}
	if err != nil {
		return nil, err
	}

	quantities := make([]trace.Quantity, len(header))
	for i, h := range header {
		quantities[i] = trace.Quantity(h)
	}
	columns := make([][]float64, len(header))

	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		for i, field := range record {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d, column %s: %w", line, header[i], err)
			}
			columns[i] = append(columns[i], v)
		}
	}
	return trace.FromColumns(quantities, columns)
}
