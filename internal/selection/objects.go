package selection

import (
	"github.com/banshee-data/trilepton/internal/event"
)

// LeptonCuts are the per-lepton signal thresholds. A lepton passes when
// pT > PtMin, |η| < AbsEtaMax and both isolation fractions are below their
// ceilings.
type LeptonCuts struct {
	PtMin       float64
	AbsEtaMax   float64
	TrackCone   RadiusFunc
	AllCone     RadiusFunc
	TrackIsoMax float64
	AllIsoMax   float64
}

// JetCuts are the per-jet signal thresholds.
type JetCuts struct {
	PtMin     float64
	AbsEtaMax float64
}

// ObjectCuts groups every object-level threshold of the selection.
type ObjectCuts struct {
	Electron LeptonCuts
	Muon     LeptonCuts
	Jet      JetCuts

	// LeptonLeptonDR removes electrons near a muon.
	LeptonLeptonDR float64
	// JetLeptonDR removes jets near an electron or muon.
	JetLeptonDR float64
	// LeptonJetRadius removes leptons near a surviving jet.
	LeptonJetRadius RadiusFunc
}

// DefaultObjectCuts returns the calibrated thresholds of the analysis.
func DefaultObjectCuts() ObjectCuts {
	return ObjectCuts{
		Electron: LeptonCuts{
			PtMin:       10,
			AbsEtaMax:   2.47,
			TrackCone:   Fixed(0.2),
			AllCone:     Fixed(0.2),
			TrackIsoMax: 0.06,
			AllIsoMax:   0.06,
		},
		Muon: LeptonCuts{
			PtMin:       10,
			AbsEtaMax:   2.4,
			TrackCone:   MuonTrackIsoCone,
			AllCone:     Fixed(0.2),
			TrackIsoMax: 0.04,
			AllIsoMax:   0.15,
		},
		Jet: JetCuts{
			PtMin:     20,
			AbsEtaMax: 2.4,
		},
		LeptonLeptonDR:  0.2,
		JetLeptonDR:     0.2,
		LeptonJetRadius: LeptonJetRadius,
	}
}

// FilterLeptons returns the leptons passing cuts, in input order. The
// isolator is queried exactly once per lepton and component, with the cone
// resolved from that lepton's pT.
func FilterLeptons(leptons []event.Lepton, rec *event.Reconstructed, cuts LeptonCuts, iso Isolator) []*event.Lepton {
	var out []*event.Lepton
	for i := range leptons {
		l := &leptons[i]
		pt := l.Pt()
		isoTrack := iso.RelIsolation(l, rec, cuts.TrackCone(pt), TrackComponent)
		isoAll := iso.RelIsolation(l, rec, cuts.AllCone(pt), AllComponents)
		isolated := isoTrack < cuts.TrackIsoMax && isoAll < cuts.AllIsoMax
		if l.AbsEta() < cuts.AbsEtaMax && pt > cuts.PtMin && isolated {
			out = append(out, l)
		}
	}
	return out
}

// FilterJets returns the jets passing cuts, in input order.
func FilterJets(jets []event.Jet, cuts JetCuts) []*event.Jet {
	var out []*event.Jet
	for i := range jets {
		j := &jets[i]
		if j.Pt() > cuts.PtMin && j.AbsEta() < cuts.AbsEtaMax {
			out = append(out, j)
		}
	}
	return out
}
