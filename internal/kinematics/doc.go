// Package kinematics holds the relativistic value types used by the event
// selection: four-momenta, Lorentz boosts and the angular separations
// between reconstructed objects.
//
// P4 wraps the go-hep fmom Cartesian four-vector. Operations return new
// values and never mutate their receiver, so a P4 may be shared freely
// between collections.
//
// Units follow the input: momenta and energies are in GeV, angles in radians.
package kinematics
