package metrics

import (
	"math"

	"github.com/san-kum/reactorsim/internal/trace"
)

// ControlEffort is the mean total control absorption Σ_f + Σ_th over a run.
type ControlEffort struct {
	name    string
	sum     float64
	samples int
}

func NewControlEffort() *ControlEffort {
	return &ControlEffort{
		name: "control_effort",
	}
}

func (c *ControlEffort) Name() string {
	return c.name
}

func (c *ControlEffort) Observe(s trace.Sample) {
	c.sum += math.Abs(s.Get(trace.ControlFast)) + math.Abs(s.Get(trace.ControlThermal))
	c.samples++
}

func (c *ControlEffort) Value() float64 {
	if c.samples == 0 {
		return 0
	}
	return c.sum / float64(c.samples)
}

func (c *ControlEffort) Reset() {
	c.sum = 0
	c.samples = 0
}
