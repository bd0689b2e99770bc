package analysis

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/banshee-data/trilepton/internal/event"
	"github.com/banshee-data/trilepton/internal/kinematics"
)

// TransverseMass is sqrt(2·pT(l)·MET·(1 − cos Δφ(l, MET))).
func TransverseMass(l *event.Lepton, met *event.Missing) float64 {
	dphi := kinematics.DeltaPhi(l.P, met.Momentum())
	return math.Sqrt(2 * l.Pt() * met.Pt() * (1 - math.Cos(dphi)))
}

// Meff is the scalar pT sum of the three leptons and the missing momentum.
func Meff(leptons [3]*event.Lepton, met *event.Missing) float64 {
	return floats.Sum([]float64{leptons[0].Pt(), leptons[1].Pt(), leptons[2].Pt(), met.Pt()})
}

// PTsoft is the transverse momentum of the vector sum of parts and the
// missing momentum.
func PTsoft(met *event.Missing, parts ...kinematics.P4) float64 {
	return kinematics.Sum(parts...).Add(met.Momentum()).Pt()
}

// RMETJets is the projection of the missing momentum onto the jet system,
// |MET·J|ₜ / J.pt².
func RMETJets(met *event.Missing, jets kinematics.P4) float64 {
	jpt := jets.Pt()
	return math.Abs(met.Px*jets.Px()+met.Py*jets.Py()) / (jpt * jpt)
}

// JetSum is the four-momentum sum of jets.
func JetSum(jets []*event.Jet) kinematics.P4 {
	var sum kinematics.P4
	for _, j := range jets {
		sum = sum.Add(j.P)
	}
	return sum
}
