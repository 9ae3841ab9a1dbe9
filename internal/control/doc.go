// Package control provides the control-rod laws that set the macroscopic
// control absorption of each energy group.
//
//   - [Proportional]: saturating proportional law tracking a power setpoint
//   - [Fixed]: constant coefficients (feedback disabled)
//   - [Constant], [Ramp]: setpoint shapes
//
// # Usage
//
//	law, err := control.NewProportional(control.Ramp{Nominal: 1e9, Duration: 50}, control.Gains{...})
//	sim := reactor.NewSimulator(provider, law)
//	// Update is called once per step with the power measured at that step;
//	// its result applies to the following step.
package control
