package event

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"github.com/banshee-data/trilepton/internal/kinematics"
)

// maxLineBytes bounds a single encoded event.
const maxLineBytes = 16 * 1024 * 1024

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrBadCharge is returned for a lepton whose charge is missing or not ±1.
var ErrBadCharge = errors.New("lepton charge must be +1 or -1")

// wireP4 accepts either collider coordinates (pt, eta, phi, m) or Cartesian
// components (px, py, pz, e). Cartesian wins when e is present.
type wireP4 struct {
	Pt  float64  `json:"pt,omitempty"`
	Eta float64  `json:"eta,omitempty"`
	Phi float64  `json:"phi,omitempty"`
	M   float64  `json:"m,omitempty"`
	Px  float64  `json:"px,omitempty"`
	Py  float64  `json:"py,omitempty"`
	Pz  float64  `json:"pz,omitempty"`
	E   *float64 `json:"e,omitempty"`
}

func (w wireP4) p4() kinematics.P4 {
	if w.E != nil {
		return kinematics.NewP4(w.Px, w.Py, w.Pz, *w.E)
	}
	return kinematics.PtEtaPhiM(w.Pt, w.Eta, w.Phi, w.M)
}

func toWire(p kinematics.P4) wireP4 {
	e := p.E()
	return wireP4{Px: p.Px(), Py: p.Py(), Pz: p.Pz(), E: &e}
}

type wireLepton struct {
	wireP4
	Charge int `json:"charge"`
}

type wireJet struct {
	wireP4
	BTag bool `json:"btag,omitempty"`
}

type wireMissing struct {
	Px float64 `json:"px"`
	Py float64 `json:"py"`
}

type wireRec struct {
	Electrons      []wireLepton `json:"electrons,omitempty"`
	Muons          []wireLepton `json:"muons,omitempty"`
	Jets           []wireJet    `json:"jets,omitempty"`
	MET            wireMissing  `json:"met"`
	Tracks         []wireP4     `json:"tracks,omitempty"`
	Photons        []wireP4     `json:"photons,omitempty"`
	NeutralHadrons []wireP4     `json:"neutral_hadrons,omitempty"`
}

type wireEvent struct {
	Number int64    `json:"event"`
	Weight *float64 `json:"weight,omitempty"`
	Rec    *wireRec `json:"rec,omitempty"`
}

// Decoder reads events encoded one JSON object per line. Blank lines are
// skipped. Events without an "event" number are numbered by position.
type Decoder struct {
	sc   *bufio.Scanner
	line int
	seq  int64
}

// NewDecoder returns a Decoder reading from r.
func NewDecoder(r io.Reader) *Decoder {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), maxLineBytes)
	return &Decoder{sc: sc}
}

// Next returns the next event, or io.EOF once the input is exhausted.
func (d *Decoder) Next() (*Event, error) {
	for d.sc.Scan() {
		d.line++
		raw := bytes.TrimSpace(d.sc.Bytes())
		if len(raw) == 0 {
			continue
		}
		var w wireEvent
		if err := json.Unmarshal(raw, &w); err != nil {
			return nil, fmt.Errorf("line %d: decode event: %w", d.line, err)
		}
		d.seq++
		ev, err := w.event()
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", d.line, err)
		}
		if ev.Number == 0 {
			ev.Number = d.seq
		}
		return ev, nil
	}
	if err := d.sc.Err(); err != nil {
		return nil, fmt.Errorf("line %d: read events: %w", d.line+1, err)
	}
	return nil, io.EOF
}

func (w *wireEvent) event() (*Event, error) {
	ev := &Event{Number: w.Number, Weight: w.Weight}
	if w.Rec == nil {
		return ev, nil
	}
	rec := &Reconstructed{
		MET: Missing{Px: w.Rec.MET.Px, Py: w.Rec.MET.Py},
	}
	var err error
	if rec.Electrons, err = leptons(w.Rec.Electrons, Electron); err != nil {
		return nil, err
	}
	if rec.Muons, err = leptons(w.Rec.Muons, Muon); err != nil {
		return nil, err
	}
	for _, j := range w.Rec.Jets {
		rec.Jets = append(rec.Jets, Jet{P: j.p4(), BTag: j.BTag})
	}
	rec.Tracks = particles(w.Rec.Tracks)
	rec.Photons = particles(w.Rec.Photons)
	rec.NeutralHadrons = particles(w.Rec.NeutralHadrons)
	ev.Rec = rec
	return ev, nil
}

func leptons(ws []wireLepton, f Flavor) ([]Lepton, error) {
	var out []Lepton
	for i, l := range ws {
		if l.Charge != 1 && l.Charge != -1 {
			return nil, fmt.Errorf("%s %d: %w, got %d", f, i, ErrBadCharge, l.Charge)
		}
		out = append(out, Lepton{P: l.p4(), Flavor: f, Charge: l.Charge})
	}
	return out, nil
}

func particles(ws []wireP4) []Particle {
	if len(ws) == 0 {
		return nil
	}
	out := make([]Particle, len(ws))
	for i, w := range ws {
		out[i] = Particle{P: w.p4()}
	}
	return out
}

// Encoder writes events one JSON object per line, using Cartesian
// components so that decoding reproduces the momenta exactly.
type Encoder struct {
	w io.Writer
}

// NewEncoder returns an Encoder writing to w.
func NewEncoder(w io.Writer) *Encoder {
	return &Encoder{w: w}
}

// Encode writes ev followed by a newline.
func (e *Encoder) Encode(ev *Event) error {
	w := wireEvent{Number: ev.Number, Weight: ev.Weight}
	if ev.Rec != nil {
		r := ev.Rec
		wr := &wireRec{MET: wireMissing{Px: r.MET.Px, Py: r.MET.Py}}
		for _, l := range r.Electrons {
			wr.Electrons = append(wr.Electrons, wireLepton{wireP4: toWire(l.P), Charge: l.Charge})
		}
		for _, l := range r.Muons {
			wr.Muons = append(wr.Muons, wireLepton{wireP4: toWire(l.P), Charge: l.Charge})
		}
		for _, j := range r.Jets {
			wr.Jets = append(wr.Jets, wireJet{wireP4: toWire(j.P), BTag: j.BTag})
		}
		for _, p := range r.Tracks {
			wr.Tracks = append(wr.Tracks, toWire(p.P))
		}
		for _, p := range r.Photons {
			wr.Photons = append(wr.Photons, toWire(p.P))
		}
		for _, p := range r.NeutralHadrons {
			wr.NeutralHadrons = append(wr.NeutralHadrons, toWire(p.P))
		}
		w.Rec = wr
	}
	b, err := json.Marshal(&w)
	if err != nil {
		return fmt.Errorf("encode event %d: %w", ev.Number, err)
	}
	b = append(b, '\n')
	if _, err := e.w.Write(b); err != nil {
		return fmt.Errorf("write event %d: %w", ev.Number, err)
	}
	return nil
}
