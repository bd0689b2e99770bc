package selection

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/banshee-data/trilepton/internal/event"
	"github.com/banshee-data/trilepton/internal/kinematics"
)

func three(a, b, c event.Lepton) [3]*event.Lepton {
	return [3]*event.Lepton{&a, &b, &c}
}

func pairMass(ls [3]*event.Lepton, tr Triple) float64 {
	return kinematics.Sum(ls[tr.Pair[0]].P, ls[tr.Pair[1]].P).M()
}

func TestSelectPair_ClosestToZ(t *testing.T) {
	// (0,1) is SFOS with m ≈ 72; (0,2) is SFOS with m ≈ 97; (1,2) same sign.
	ls := three(
		muon(50, 0, 0, 1),
		muon(30, 0, 2.4, -1),
		muon(45, 0.5, 2.9, -1),
	)

	tr, ok := SelectPair(ls)
	require.True(t, ok)
	assert.Equal(t, Triple{Pair: [2]int{0, 2}, Rest: 1}, tr)

	best := math.Abs(ZMass - pairMass(ls, tr))
	other := math.Abs(ZMass - kinematics.Sum(ls[0].P, ls[1].P).M())
	assert.Less(t, best, other)
}

func TestSelectPair_FlavourMustMatch(t *testing.T) {
	ls := three(
		muon(70, 0, 0, 1),
		electron(45, 0, 3, -1), // opposite sign but different flavour
		muon(35, 0.4, 2.5, -1),
	)

	tr, ok := SelectPair(ls)
	require.True(t, ok)
	assert.Equal(t, Triple{Pair: [2]int{0, 2}, Rest: 1}, tr)
}

func TestSelectPair_TieFirstWins(t *testing.T) {
	// Leptons 1 and 2 are identical, so (0,1) and (0,2) tie exactly.
	ls := three(
		electron(50, 0, 0, 1),
		electron(40, 0.2, 2.5, -1),
		electron(40, 0.2, 2.5, -1),
	)

	tr, ok := SelectPair(ls)
	require.True(t, ok)
	assert.Equal(t, Triple{Pair: [2]int{0, 1}, Rest: 2}, tr)
}

func TestSelectPair_NoEligiblePair(t *testing.T) {
	tests := []struct {
		name string
		ls   [3]*event.Lepton
	}{
		{"all same sign", three(muon(70, 0, 0, 1), muon(45, 0, 1, 1), electron(35, 0, 2, 1))},
		{"opposite sign but mixed flavour", three(muon(70, 0, 0, 1), electron(45, 0, 1, -1), electron(35, 0, 2, -1))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, ok := SelectPair(tt.ls)
			assert.False(t, ok)
		})
	}
}

func TestSelectPair_IsPermutation(t *testing.T) {
	charges := [][3]int{{1, -1, 1}, {-1, 1, 1}, {1, 1, -1}, {-1, -1, 1}}
	for _, q := range charges {
		ls := three(muon(60, 0, 0, q[0]), muon(40, 1, 2, q[1]), muon(30, -1, -2, q[2]))
		tr, ok := SelectPair(ls)
		require.True(t, ok)

		seen := map[int]bool{tr.Pair[0]: true, tr.Pair[1]: true, tr.Rest: true}
		assert.Len(t, seen, 3)
		assert.Less(t, tr.Pair[0], tr.Pair[1])
		assert.True(t, SFOS(ls[tr.Pair[0]], ls[tr.Pair[1]]))
	}
}
