package analysis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/banshee-data/trilepton/internal/event"
	"github.com/banshee-data/trilepton/internal/kinematics"
)

const tol = 1e-6

func TestHBoostFixture(t *testing.T) {
	rec := lowCandidate()
	leptons := [3]*event.Lepton{&rec.Muons[0], &rec.Muons[1], &rec.Electrons[0]}

	assert.InDelta(t, 130.12629817476764, HBoost(leptons, &rec.MET), tol)
}

func TestHBoostOrderIndependent(t *testing.T) {
	rec := lowCandidate()
	a := [3]*event.Lepton{&rec.Muons[0], &rec.Muons[1], &rec.Electrons[0]}
	b := [3]*event.Lepton{&rec.Electrons[0], &rec.Muons[0], &rec.Muons[1]}

	assert.InDelta(t, HBoost(a, &rec.MET), HBoost(b, &rec.MET), 1e-9)
}

func TestHBoostMETDependence(t *testing.T) {
	rec := lowCandidate()
	leptons := [3]*event.Lepton{&rec.Muons[0], &rec.Muons[1], &rec.Electrons[0]}

	tests := []struct {
		px, py float64
		want   float64
	}{
		{-60, -40, 220.0786},
		{-150, -40, 298.3686},
	}
	for _, tt := range tests {
		met := event.Missing{Px: tt.px, Py: tt.py}
		assert.InDelta(t, tt.want, HBoost(leptons, &met), 1e-3)
	}
}

func TestInvisibleMomentum(t *testing.T) {
	vis := kinematics.NewP4(30, 40, 120, 200)
	met := event.Missing{Px: 3, Py: 4}
	inv := InvisibleMomentum(vis, &met)

	// pt = 50, m² = 23100, so pz = 120·5/160.
	assert.InDelta(t, 3.0, inv.Px(), 1e-12)
	assert.InDelta(t, 4.0, inv.Py(), 1e-12)
	assert.InDelta(t, 3.75, inv.Pz(), 1e-12)
	assert.InDelta(t, 6.25, inv.E(), 1e-12)
	assert.InDelta(t, 0.0, inv.M(), 1e-9, "invisible system is massless")
}

func TestHBoostNoRestFrame(t *testing.T) {
	// Massless collinear leptons with the missing momentum along them put
	// the frame velocity at c.
	l0 := event.Lepton{P: kinematics.NewP4(70, 0, 0, 70), Flavor: event.Muon, Charge: 1}
	l1 := event.Lepton{P: kinematics.NewP4(45, 0, 0, 45), Flavor: event.Muon, Charge: -1}
	l2 := event.Lepton{P: kinematics.NewP4(35, 0, 0, 35), Flavor: event.Electron, Charge: 1}
	met := event.Missing{Px: 20}

	got := HBoost([3]*event.Lepton{&l0, &l1, &l2}, &met)
	assert.False(t, math.IsNaN(got))
	assert.Equal(t, 0.0, got)

	// Tilting the missing momentum gives a valid frame again.
	met.Py = 15
	assert.Greater(t, HBoost([3]*event.Lepton{&l0, &l1, &l2}, &met), 0.0)
}
