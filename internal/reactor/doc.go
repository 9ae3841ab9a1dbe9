// Package reactor implements a two-group point-kinetics model of a reactor
// core: fast and thermal neutron populations, heavy-nuclide inventories with
// the U238 and Th232 breeding chains, Xe-135 poisoning, a lumped delayed
// neutron precursor pool, power and burnup.
//
// A run is assembled from three parts:
//
//   - a [nucdata.Provider] for cross sections, half-lives and molar masses
//   - a [control.Law] setting the control absorption of each group
//   - a [Configuration] with the fuel, initial populations and time grid
//
// # Example
//
//	table, _ := nucdata.Default()
//	law := control.NewFixed(0, 16)
//	s := reactor.NewSimulator(table, law)
//	tr, err := s.Run(ctx, reactor.DefaultConfiguration())
//
// Each step evaluates the reaction rates and balance equations on the current
// state, records the sample, lets the control law react to the measured power
// and advances the state with a clamped explicit Euler step. Runs are
// deterministic and single-threaded; a Simulator must not be shared between
// goroutines while running, but the provider may be.
package reactor
