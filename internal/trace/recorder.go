package trace

import "fmt"

// Recorder fills a Trace sequentially. It allocates every series once, sized
// by capacity, and hands the trace over on Finish.
type Recorder struct {
	tr       *Trace
	capacity int
	done     bool
}

func NewRecorder(quantities []Quantity, capacity int) *Recorder {
	return &Recorder{
		tr:       newTrace(quantities, capacity),
		capacity: capacity,
	}
}

// Append stores one sample; values follow the quantity order given to
// NewRecorder.
func (r *Recorder) Append(values ...float64) (Sample, error) {
	if r.done {
		return Sample{}, ErrFinished
	}
	if len(values) != len(r.tr.names) {
		return Sample{}, fmt.Errorf("%w: got %d values, want %d", ErrRowWidth, len(values), len(r.tr.names))
	}
	if r.tr.n >= r.capacity {
		return Sample{}, fmt.Errorf("%w: %d samples", ErrFull, r.capacity)
	}
	k := r.tr.n
	for i, v := range values {
		r.tr.data[i][k] = v
	}
	r.tr.n++
	return Sample{tr: r.tr, k: k}, nil
}

func (r *Recorder) Len() int { return r.tr.n }

// Finish seals the recorder and returns the trace.
func (r *Recorder) Finish() *Trace {
	r.done = true
	return r.tr
}
