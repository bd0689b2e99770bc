package analysis

import "errors"

// ErrZeroWeight is returned by Engine.Process for an event whose generator
// weight is zero while event weighting is enabled. Nothing is recorded for
// such an event.
var ErrZeroWeight = errors.New("zero event weight")

// Registrar declares regions, cuts and histograms before the first event.
type Registrar interface {
	AddRegion(name string) error
	// AddCut declares a cut applying to the given regions, or to every
	// region when none are given.
	AddCut(name string, regions ...string) error
	AddHisto(name string, bins int, lo, hi float64, region string) error
}

// Recorder receives the per-event outcomes.
type Recorder interface {
	// StartEvent resets the per-event region state and counts the event,
	// with the given weight, as an initial entry of every region.
	StartEvent(weight float64)
	// ApplyCut records pass/fail for every still-alive region the cut
	// applies to, kills those regions on failure, and reports whether any
	// region is still alive.
	ApplyCut(name string, pass bool) bool
	// Fill adds v to the histogram if its region is alive.
	Fill(name string, v float64)
	// Surviving reports whether region is alive for the current event.
	Surviving(region string) bool
}

// Bookkeeper is the registry the engine is constructed with.
type Bookkeeper interface {
	Registrar
	Recorder
}
