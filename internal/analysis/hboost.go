package analysis

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/banshee-data/trilepton/internal/event"
	"github.com/banshee-data/trilepton/internal/kinematics"
)

// InvisibleMomentum reconstructs the longitudinal component of the missing
// momentum assuming it is collinear with the boost of the visible
// three-lepton system vis:
//
//	pz = vis.pz · MET / sqrt(vis.pt² + vis.m²),  E = sqrt(MET² + pz²)
func InvisibleMomentum(vis kinematics.P4, met *event.Missing) kinematics.P4 {
	ptMiss := met.Pt()
	pz := vis.Pz() * ptMiss / math.Sqrt(vis.Pt()*vis.Pt()+vis.M()*vis.M())
	e := math.Sqrt(ptMiss*ptMiss + pz*pz)
	return kinematics.NewP4(met.Px, met.Py, pz, e)
}

// HBoost is the scalar sum of the momentum magnitudes of the three leptons
// and the reconstructed invisible system, all boosted into the approximate
// rest frame of the full system. The frame velocity is
// -(L+M)⃗ / (L.E + |M⃗|): the invisible system enters the energy through its
// momentum magnitude, not its energy.
//
// When that velocity reaches the speed of light (for example massless
// collinear leptons with the missing momentum along them) there is no such
// frame and HBoost returns 0.
func HBoost(leptons [3]*event.Lepton, met *event.Missing) float64 {
	vis := kinematics.Sum(leptons[0].P, leptons[1].P, leptons[2].P)
	inv := InvisibleMomentum(vis, met)

	eTotal := vis.E() + inv.P()
	beta := r3.Scale(-1/eTotal, vis.Add(inv).Vect())
	if !(r3.Norm2(beta) < 1) {
		return 0
	}

	var h float64
	for _, l := range leptons {
		h += kinematics.Boost(l.P, beta).P()
	}
	h += kinematics.Boost(inv, beta).P()
	return h
}
