package integrators

import "github.com/san-kum/reactorsim/internal/sim"

// Euler is the fixed-step explicit Euler scheme x[k+1] = x[k] + dt·f(x[k]).
// A clamped Euler additionally floors every component at zero, which keeps
// extensive quantities physical when a step overshoots.
type Euler struct {
	clamp bool
}

func NewEuler() *Euler {
	return &Euler{}
}

func NewClampedEuler() *Euler {
	return &Euler{clamp: true}
}

func (e *Euler) Clamped() bool { return e.clamp }

func (e *Euler) Step(dyn sim.Dynamics, x sim.State, u sim.Control, t float64, dt float64) sim.State {
	dx := dyn.Derivative(x, u, t)
	result := make(sim.State, len(x))
	for i := range x {
		result[i] = x[i] + dt*dx[i]
	}
	if e.clamp {
		result.Clamp()
	}
	return result
}
