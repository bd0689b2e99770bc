package kinematics

import (
	"math"

	"go-hep.org/x/hep/fmom"
	"gonum.org/v1/gonum/spatial/r3"
)

// P4 is a four-momentum stored as go-hep's Cartesian fmom.PxPyPzE. The
// accessors take value receivers so a P4 returned from a function can be
// queried directly.
type P4 struct {
	fmom.PxPyPzE
}

// NewP4 builds a four-momentum from its Cartesian components.
func NewP4(px, py, pz, e float64) P4 {
	return P4{fmom.NewPxPyPzE(px, py, pz, e)}
}

// PtEtaPhiM builds a four-momentum from collider coordinates.
func PtEtaPhiM(pt, eta, phi, m float64) P4 {
	var p P4
	p.SetPtEtaPhiM(pt, eta, phi, m)
	return p
}

func (p P4) Px() float64 { return p.PxPyPzE.Px() }
func (p P4) Py() float64 { return p.PxPyPzE.Py() }
func (p P4) Pz() float64 { return p.PxPyPzE.Pz() }
func (p P4) E() float64  { return p.PxPyPzE.E() }

// Pt is the transverse momentum.
func (p P4) Pt() float64 { return p.PxPyPzE.Pt() }

// P is the magnitude of the three-momentum.
func (p P4) P() float64 { return p.PxPyPzE.P() }

// M is the invariant mass. A space-like vector yields -sqrt(-m²).
func (p P4) M() float64 { return p.PxPyPzE.M() }

// Phi is the azimuthal angle. The null transverse vector has Phi 0.
func (p P4) Phi() float64 { return p.PxPyPzE.Phi() }

// Eta is the pseudo-rapidity; vectors along the beam axis give ±Inf.
func (p P4) Eta() float64 { return p.PxPyPzE.Eta() }

// AbsEta is |Eta|.
func (p P4) AbsEta() float64 { return math.Abs(p.Eta()) }

// Vect returns the three-momentum.
func (p P4) Vect() r3.Vec { return fmom.VecOf(&p.PxPyPzE) }

// Add returns p+q.
func (p P4) Add(q P4) P4 { return Sum(p, q) }

// Sum adds any number of four-momenta.
func Sum(ps ...P4) P4 {
	var s P4
	for i := range ps {
		fmom.IAdd(&s.PxPyPzE, &ps[i].PxPyPzE)
	}
	return s
}

// DeltaPhi is the azimuthal difference φ(q) − φ(p) folded into [-π, π].
func DeltaPhi(p, q P4) float64 {
	return fmom.DeltaPhi(&p.PxPyPzE, &q.PxPyPzE)
}

// DeltaR returns the angular separation sqrt(Δη² + Δφ²).
func DeltaR(p, q P4) float64 {
	return fmom.DeltaR(&p.PxPyPzE, &q.PxPyPzE)
}

// Boost returns p boosted by the velocity beta, |beta| < 1.
func Boost(p P4, beta r3.Vec) P4 {
	var out P4
	out.Set(fmom.Boost(&p.PxPyPzE, beta))
	return out
}
