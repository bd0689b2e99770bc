package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMuonTrackIsoCone(t *testing.T) {
	tests := []struct {
		pt   float64
		want float64
	}{
		{10, 0.3},
		{33, 0.3},
		{40, -0.0059*40 + 0.4941},
		{49.99, -0.0059*49.99 + 0.4941},
		{50, 0.2},
		{200, 0.2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, MuonTrackIsoCone(tt.pt), 1e-12, "pt=%v", tt.pt)
	}
}

func TestLeptonJetRadius(t *testing.T) {
	tests := []struct {
		pt   float64
		want float64
	}{
		{5, 0.4},
		{25, 0.4},
		{30, 0.36},
		{50, 0.2},
		{50.5, 0.2},
		{300, 0.2},
	}
	for _, tt := range tests {
		assert.InDelta(t, tt.want, LeptonJetRadius(tt.pt), 1e-12, "pt=%v", tt.pt)
	}
}

func TestFixed(t *testing.T) {
	r := Fixed(0.25)
	assert.Equal(t, 0.25, r(0))
	assert.Equal(t, 0.25, r(1000))
}
