package selection

import (
	"github.com/banshee-data/trilepton/internal/event"
	"github.com/banshee-data/trilepton/internal/kinematics"
)

func muon(pt, eta, phi float64, charge int) event.Lepton {
	return event.Lepton{P: kinematics.PtEtaPhiM(pt, eta, phi, 0), Flavor: event.Muon, Charge: charge}
}

func electron(pt, eta, phi float64, charge int) event.Lepton {
	return event.Lepton{P: kinematics.PtEtaPhiM(pt, eta, phi, 0), Flavor: event.Electron, Charge: charge}
}

func jet(pt, eta, phi float64) event.Jet {
	return event.Jet{P: kinematics.PtEtaPhiM(pt, eta, phi, 0)}
}

// isoCall records one isolation query.
type isoCall struct {
	pt   float64
	cone float64
	c    Component
}

// fakeIsolator returns fixed isolation fractions and records every call.
type fakeIsolator struct {
	track, all float64
	calls      []isoCall
}

func (f *fakeIsolator) RelIsolation(l *event.Lepton, _ *event.Reconstructed, cone float64, c Component) float64 {
	f.calls = append(f.calls, isoCall{pt: l.Pt(), cone: cone, c: c})
	if c == TrackComponent {
		return f.track
	}
	return f.all
}
