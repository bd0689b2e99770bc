// Package testutil provides shared test helpers and event fixtures.
//
// The fixtures are hand-built three-lepton events whose selection outcome
// is known: LowSignal passes every SR-low cut, ISRSignal every SR-ISR cut.
package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/banshee-data/trilepton/internal/event"
	"github.com/banshee-data/trilepton/internal/kinematics"
)

// AssertNoError fails the test if err is not nil.
func AssertNoError(t *testing.T, err error) {
	t.Helper()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// AssertError fails the test if err is nil.
func AssertError(t *testing.T, err error) {
	t.Helper()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
}

// Weight returns a pointer to w.
func Weight(w float64) *float64 { return &w }

// Lepton builds a massless lepton.
func Lepton(f event.Flavor, charge int, pt, eta, phi float64) event.Lepton {
	return event.Lepton{P: kinematics.PtEtaPhiM(pt, eta, phi, 0), Flavor: f, Charge: charge}
}

// Jet builds a massless, untagged jet.
func Jet(pt, eta, phi float64) event.Jet {
	return event.Jet{P: kinematics.PtEtaPhiM(pt, eta, phi, 0)}
}

// LowCandidate is μ+ μ− e+ at 70/45/35 GeV with no jets. It reaches the
// SR-low HBoost cut (HBoost ≈ 130) and fails it.
func LowCandidate() *event.Reconstructed {
	return &event.Reconstructed{
		Muons: []event.Lepton{
			Lepton(event.Muon, 1, 70, 0, 0),
			Lepton(event.Muon, -1, 45, 0, 1.86),
		},
		Electrons: []event.Lepton{Lepton(event.Electron, 1, 35, 0.1, -0.56)},
		MET:       event.Missing{Px: 20, Py: 0},
	}
}

// LowSignal passes every SR-low cut and fails SR-ISR on the jet count.
func LowSignal() *event.Reconstructed {
	return &event.Reconstructed{
		Muons: []event.Lepton{
			Lepton(event.Muon, 1, 90, 0, 0),
			Lepton(event.Muon, -1, 55, 0, 1.41),
		},
		Electrons: []event.Lepton{Lepton(event.Electron, 1, 40, -1.0, -0.5)},
		MET:       event.Missing{Px: -134, Py: -35},
	}
}

// ISRSignal passes every SR-ISR cut and fails SR-low on the jet veto.
func ISRSignal() *event.Reconstructed {
	rec := LowSignal()
	rec.Jets = []event.Jet{Jet(160, 1.8, -1.6)}
	rec.MET = event.Missing{Px: -129, Py: 125}
	return rec
}

// SoftLeadingISRSignal passes every SR-ISR cut while its 58 GeV leading
// muon fails the SR-low lepton pT floors.
func SoftLeadingISRSignal() *event.Reconstructed {
	return &event.Reconstructed{
		Muons: []event.Lepton{
			Lepton(event.Muon, 1, 58, 0, 0),
			Lepton(event.Muon, -1, 55, 0, 1.84),
		},
		Electrons: []event.Lepton{Lepton(event.Electron, 1, 40, -1.0, -0.5)},
		Jets:      []event.Jet{Jet(160, 1.8, -1.6)},
		MET:       event.Missing{Px: -74, Py: 126},
	}
}

// SameSignLeptons has three positive leptons and hence no SFOS pair.
func SameSignLeptons() *event.Reconstructed {
	rec := LowCandidate()
	rec.Muons[1].Charge = 1
	return rec
}

// WriteEvents encodes events as JSON lines into a file under t.TempDir()
// and returns its path.
func WriteEvents(t *testing.T, events []*event.Event) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "events.jsonl")
	f, err := os.Create(path)
	AssertNoError(t, err)
	defer f.Close()

	enc := event.NewEncoder(f)
	for _, ev := range events {
		AssertNoError(t, enc.Encode(ev))
	}
	return path
}
