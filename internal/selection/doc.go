// Package selection turns the raw reconstructed objects of an event into the
// signal candidates used by the region cutflow.
//
// Responsibilities: per-object kinematic and isolation thresholds, overlap
// removal between collections, pT ordering and same-flavour opposite-sign
// pair selection.
//
// The isolation computation itself sits behind the Isolator interface so the
// filter stays a pure transform over its collaborator.
package selection
