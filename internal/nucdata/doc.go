// Package nucdata supplies the nuclear data the reactor core consumes:
// two-group microscopic cross sections, decay half-lives and molar masses.
//
// The data sits behind the read-only [Provider] interface. [Table] is the
// standard implementation, built from YAML; [Default] parses the embedded
// table once and shares it.
//
// # Defaults
//
// Lookups that have a documented default do not abort. An unknown nuclide
// yields a zero cross section and a missing half-life yields +Inf (stable on
// the simulated timescale). The default value is returned together with a
// *[Diagnostic] error so callers can surface it:
//
//	sigma, err := p.CrossSection(nucdata.U235, nucdata.Fission, 0.025)
//	if d, ok := nucdata.AsDiagnostic(err); ok {
//	    diags = append(diags, *d)
//	} else if err != nil {
//	    return err
//	}
package nucdata
