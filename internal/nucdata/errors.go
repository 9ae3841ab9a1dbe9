package nucdata

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidEnergy    = errors.New("nucdata: neutron energy must be positive")
	ErrUnknownReaction  = errors.New("nucdata: unsupported reaction")
	ErrUnknownDecayMode = errors.New("nucdata: unsupported decay mode")
	ErrNoMolarMass      = errors.New("nucdata: molar mass not defined")
	ErrInvalidTable     = errors.New("nucdata: invalid data table")

	// ErrDefaulted matches every *Diagnostic via errors.Is.
	ErrDefaulted = errors.New("nucdata: lookup resolved to a default")
)

type DiagnosticKind string

const (
	UnknownNuclide           DiagnosticKind = "unknown_nuclide"
	MissingCrossSection      DiagnosticKind = "missing_cross_section"
	MissingHalfLife          DiagnosticKind = "missing_half_life"
	EnergyOutOfRange         DiagnosticKind = "energy_out_of_range"
	CompositionNotNormalized DiagnosticKind = "composition_not_normalized"
)

// Diagnostic describes a recoverable condition that was resolved locally.
// It is returned as an error next to a usable value.
type Diagnostic struct {
	Kind    DiagnosticKind `json:"kind" yaml:"kind"`
	Nuclide Nuclide        `json:"nuclide,omitempty" yaml:"nuclide,omitempty"`
	Detail  string         `json:"detail" yaml:"detail"`
	Value   float64        `json:"-" yaml:"-"`
}

func (d *Diagnostic) Error() string {
	if d.Nuclide != "" {
		return fmt.Sprintf("nucdata: %s (%s): %s", d.Kind, d.Nuclide, d.Detail)
	}
	return fmt.Sprintf("nucdata: %s: %s", d.Kind, d.Detail)
}

func (d *Diagnostic) Is(target error) bool {
	return target == ErrDefaulted
}

func IsDefaulted(err error) bool {
	return errors.Is(err, ErrDefaulted)
}

func AsDiagnostic(err error) (*Diagnostic, bool) {
	var d *Diagnostic
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
