package event

import (
	"fmt"
	"math"

	"github.com/banshee-data/trilepton/internal/kinematics"
)

// Object is the capability shared by every reconstructed object: a
// four-momentum with its transverse momentum and |η|.
type Object interface {
	Momentum() kinematics.P4
	Pt() float64
	AbsEta() float64
}

// DeltaR returns the angular separation between two objects.
func DeltaR(a, b Object) float64 {
	return kinematics.DeltaR(a.Momentum(), b.Momentum())
}

// Flavor distinguishes electrons from muons.
type Flavor int

const (
	Electron Flavor = iota
	Muon
)

func (f Flavor) String() string {
	switch f {
	case Electron:
		return "electron"
	case Muon:
		return "muon"
	default:
		return fmt.Sprintf("Flavor(%d)", int(f))
	}
}

// Particle is a bare four-momentum object (tracks, energy-flow photons and
// neutral hadrons).
type Particle struct {
	P kinematics.P4
}

func (p *Particle) Momentum() kinematics.P4 { return p.P }
func (p *Particle) Pt() float64             { return p.P.Pt() }
func (p *Particle) AbsEta() float64         { return p.P.AbsEta() }

// Lepton is a reconstructed electron or muon.
type Lepton struct {
	P      kinematics.P4
	Flavor Flavor
	Charge int
}

func (l *Lepton) Momentum() kinematics.P4 { return l.P }
func (l *Lepton) Pt() float64             { return l.P.Pt() }
func (l *Lepton) AbsEta() float64         { return l.P.AbsEta() }

// IsMuon reports whether the lepton is a muon.
func (l *Lepton) IsMuon() bool { return l.Flavor == Muon }

// Jet is a reconstructed hadronic jet.
type Jet struct {
	P    kinematics.P4
	BTag bool
}

func (j *Jet) Momentum() kinematics.P4 { return j.P }
func (j *Jet) Pt() float64             { return j.P.Pt() }
func (j *Jet) AbsEta() float64         { return j.P.AbsEta() }

// Missing is the missing transverse momentum. It has no longitudinal
// component and no mass: its four-momentum is (px, py, 0, pt).
type Missing struct {
	Px, Py float64
}

func (m *Missing) Momentum() kinematics.P4 {
	return kinematics.NewP4(m.Px, m.Py, 0, m.Pt())
}

func (m *Missing) Pt() float64     { return math.Hypot(m.Px, m.Py) }
func (m *Missing) AbsEta() float64 { return 0 }

// Reconstructed holds the detector-level objects of one event.
type Reconstructed struct {
	Electrons []Lepton
	Muons     []Lepton
	Jets      []Jet
	MET       Missing

	// Energy-flow constituents, used only for isolation.
	Tracks         []Particle
	Photons        []Particle
	NeutralHadrons []Particle
}

// Event is one collision event. A nil Weight means no generator weight was
// supplied. A nil Rec means the event carries no reconstructed objects.
type Event struct {
	Number int64
	Weight *float64
	Rec    *Reconstructed
}
