// Package sim provides the fixed-step simulation primitives shared by the
// reactor core and its integrators.
//
//   - [State]: flat vector of extensive quantities
//   - [Dynamics]: right-hand side dX/dt = f(X, u, t)
//   - [Integrator]: one explicit step of a fixed size
//   - [Config]: step size and horizon, with [Config.Steps] sizing traces
package sim
