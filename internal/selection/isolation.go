package selection

import (
	"github.com/banshee-data/trilepton/internal/event"
)

// Component selects which energy-flow constituents enter an isolation sum.
type Component int

const (
	// TrackComponent sums charged tracks only.
	TrackComponent Component = iota
	// AllComponents sums tracks, photons and neutral hadrons.
	AllComponents
)

func (c Component) String() string {
	if c == TrackComponent {
		return "track"
	}
	return "all"
}

// Isolator computes the relative isolation of a lepton: the summed pT of the
// selected constituents inside the cone, divided by the lepton pT.
type Isolator interface {
	RelIsolation(l *event.Lepton, rec *event.Reconstructed, cone float64, c Component) float64
}

// selfMatchDR is the separation under which a constituent is taken to be
// the lepton itself.
const selfMatchDR = 1e-6

// EFlowIsolation computes isolation from the event's energy-flow
// constituents. Constituents at or below MinPt are ignored.
type EFlowIsolation struct {
	MinPt float64
}

// RelIsolation implements Isolator.
func (iso EFlowIsolation) RelIsolation(l *event.Lepton, rec *event.Reconstructed, cone float64, c Component) float64 {
	pt := l.Pt()
	if pt <= 0 || rec == nil {
		return 0
	}
	sum := iso.sum(l, rec.Tracks, cone)
	if c == AllComponents {
		sum += iso.sum(l, rec.Photons, cone)
		sum += iso.sum(l, rec.NeutralHadrons, cone)
	}
	return sum / pt
}

func (iso EFlowIsolation) sum(l *event.Lepton, parts []event.Particle, cone float64) float64 {
	var s float64
	for i := range parts {
		p := &parts[i]
		if p.Pt() <= iso.MinPt {
			continue
		}
		dr := event.DeltaR(l, p)
		if dr < selfMatchDR || dr >= cone {
			continue
		}
		s += p.Pt()
	}
	return s
}
