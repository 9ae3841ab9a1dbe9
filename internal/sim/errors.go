package sim

import "errors"

// Domain errors for simulation operations.
var (
	// ErrInvalidConfig indicates a non-positive or non-finite step size or horizon.
	ErrInvalidConfig = errors.New("sim: invalid configuration")

	// ErrUnstable indicates the state vector picked up NaN or Inf values.
	ErrUnstable = errors.New("sim: simulation unstable (state diverged)")

	// ErrDimensionMismatch indicates mismatched state/control dimensions.
	ErrDimensionMismatch = errors.New("sim: dimension mismatch between state and system")
)
