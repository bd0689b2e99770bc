package selection

import (
	"math"

	"github.com/banshee-data/trilepton/internal/event"
	"github.com/banshee-data/trilepton/internal/kinematics"
)

// ZMass is the nominal Z boson mass in GeV.
const ZMass = 91.1876

// Triple indexes a three-lepton collection: the selected pair in Pair[0],
// Pair[1] and the unpaired lepton in Rest.
type Triple struct {
	Pair [2]int
	Rest int
}

// SFOS reports whether two leptons form a same-flavour opposite-sign pair.
func SFOS(a, b *event.Lepton) bool {
	return a.Flavor == b.Flavor && a.Charge != b.Charge
}

// SelectPair picks, among the SFOS pairs of exactly three leptons, the one
// whose invariant mass is closest to ZMass. Pairs are visited in ascending
// (i, j) order and only a strictly smaller distance replaces the current
// choice, so the first minimum wins. ok is false when no SFOS pair exists.
func SelectPair(leptons [3]*event.Lepton) (t Triple, ok bool) {
	best := math.Inf(1)
	for i := 0; i < 2; i++ {
		for j := i + 1; j < 3; j++ {
			if !SFOS(leptons[i], leptons[j]) {
				continue
			}
			m := kinematics.Sum(leptons[i].P, leptons[j].P).M()
			if d := math.Abs(ZMass - m); d < best {
				best = d
				t.Pair = [2]int{i, j}
				ok = true
			}
		}
	}
	if ok {
		t.Rest = 3 - t.Pair[0] - t.Pair[1]
	}
	return t, ok
}
