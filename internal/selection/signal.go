package selection

import (
	"sort"

	"github.com/banshee-data/trilepton/internal/event"
)

// Signal holds the candidate collections of one event after object
// selection and overlap removal.
type Signal struct {
	Electrons []*event.Lepton
	Muons     []*event.Lepton
	// Leptons is muons then electrons, ordered by descending pT.
	Leptons []*event.Lepton
	Jets    []*event.Jet
	MET     *event.Missing
}

// Select runs the object filter and the overlap removal chain:
// electrons against muons, jets against electrons then muons, and finally
// electrons and muons against the cleaned jets. Each pass consumes the
// output of the previous one.
func Select(rec *event.Reconstructed, cuts ObjectCuts, iso Isolator) Signal {
	electrons := FilterLeptons(rec.Electrons, rec, cuts.Electron, iso)
	muons := FilterLeptons(rec.Muons, rec, cuts.Muon, iso)
	jets := FilterJets(rec.Jets, cuts.Jet)

	electrons = Resolve(electrons, muons, Fixed(cuts.LeptonLeptonDR))
	jets = Resolve(jets, electrons, Fixed(cuts.JetLeptonDR))
	jets = Resolve(jets, muons, Fixed(cuts.JetLeptonDR))
	electrons = Resolve(electrons, jets, cuts.LeptonJetRadius)
	muons = Resolve(muons, jets, cuts.LeptonJetRadius)

	leptons := make([]*event.Lepton, 0, len(muons)+len(electrons))
	leptons = append(leptons, muons...)
	leptons = append(leptons, electrons...)
	SortByPt(leptons)

	return Signal{
		Electrons: electrons,
		Muons:     muons,
		Leptons:   leptons,
		Jets:      jets,
		MET:       &rec.MET,
	}
}

// SortByPt orders objects by descending pT. Equal pT keeps input order.
func SortByPt[T event.Object](objs []T) {
	sort.SliceStable(objs, func(i, j int) bool {
		return objs[i].Pt() > objs[j].Pt()
	})
}
