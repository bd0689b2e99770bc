// Package event defines the reconstructed-object model consumed by the
// selection: leptons, jets, missing transverse momentum and the
// energy-flow constituents used for isolation.
//
// Responsibilities: object types, the Object capability interface shared by
// overlap removal and isolation, and a JSON-lines event source.
//
// No selection logic lives here; see internal/selection and
// internal/analysis.
package event
