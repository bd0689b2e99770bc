package selection

// RadiusFunc resolves an exclusion or isolation cone radius from an object's
// transverse momentum (GeV).
type RadiusFunc func(pt float64) float64

// Fixed returns a RadiusFunc that ignores pT.
func Fixed(r float64) RadiusFunc {
	return func(float64) float64 { return r }
}

// MuonTrackIsoCone is the track-isolation cone for muons: 0.3 up to 33 GeV,
// 0.2 from 50 GeV, linear in between.
func MuonTrackIsoCone(pt float64) float64 {
	switch {
	case pt <= 33:
		return 0.3
	case pt < 50:
		return -0.0059*pt + 0.4941
	default:
		return 0.2
	}
}

// LeptonJetRadius is the ΔR used to drop leptons close to a jet: 0.4 up to
// 25 GeV, 0.2 above 50 GeV, linear in between.
func LeptonJetRadius(pt float64) float64 {
	switch {
	case pt <= 25:
		return 0.4
	case pt <= 50:
		return -0.008*pt + 0.6
	default:
		return 0.2
	}
}
