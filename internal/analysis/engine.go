package analysis

import (
	"fmt"
	"math"

	"github.com/banshee-data/trilepton/internal/event"
	"github.com/banshee-data/trilepton/internal/kinematics"
	"github.com/banshee-data/trilepton/internal/selection"
)

// Config parameterises an Engine.
type Config struct {
	Objects selection.ObjectCuts
	Cuts    Thresholds
	// Isolator defaults to selection.EFlowIsolation when nil.
	Isolator selection.Isolator
	// UseEventWeights applies generator weights. When false every event
	// has weight 1.
	UseEventWeights bool
}

// DefaultConfig returns the published selection with event weighting on.
func DefaultConfig() Config {
	return Config{
		Objects:         selection.DefaultObjectCuts(),
		Cuts:            DefaultThresholds(),
		Isolator:        selection.EFlowIsolation{},
		UseEventWeights: true,
	}
}

// Result is the outcome of one processed event.
type Result struct {
	Weight float64
	// Selected lists the regions the event survived, in registration order.
	Selected []string
}

// Passed reports whether the event survived region.
func (r Result) Passed(region string) bool {
	for _, s := range r.Selected {
		if s == region {
			return true
		}
	}
	return false
}

// state carries the variables of the event under evaluation. Later steps
// read what earlier steps computed.
type state struct {
	sig     selection.Signal
	leptons [3]*event.Lepton
	triple  selection.Triple
	hasPair bool

	lll    kinematics.P4
	mll    float64
	hboost float64
	meff   float64
	jets   kinematics.P4
	mt     float64
}

type fill struct {
	histo string
	value func(*state) float64
}

// step is one named cut. prepare computes the variables the step needs,
// fills run before the decision.
type step struct {
	cut     string
	regions []string
	prepare func(*state)
	fills   []fill
	pass    func(*state) bool
}

// Engine evaluates the signal-region cutflow of single events against a
// Bookkeeper. An Engine is not safe for concurrent use.
type Engine struct {
	book  Bookkeeper
	cfg   Config
	steps []step
}

// NewEngine registers the regions, cuts and histograms of the selection
// with book and returns an engine recording into it.
func NewEngine(book Bookkeeper, cfg Config) (*Engine, error) {
	if cfg.Isolator == nil {
		cfg.Isolator = selection.EFlowIsolation{}
	}
	e := &Engine{book: book, cfg: cfg, steps: buildSteps(cfg.Cuts)}

	for _, r := range Regions {
		if err := book.AddRegion(r); err != nil {
			return nil, fmt.Errorf("add region %q: %w", r, err)
		}
	}
	for _, s := range e.steps {
		if err := book.AddCut(s.cut, s.regions...); err != nil {
			return nil, fmt.Errorf("add cut %q: %w", s.cut, err)
		}
	}
	for _, h := range Histos {
		if err := book.AddHisto(h.Name, h.Bins, h.Lo, h.Hi, h.Region); err != nil {
			return nil, fmt.Errorf("add histogram %q: %w", h.Name, err)
		}
	}
	return e, nil
}

// Cuts returns the cut names in evaluation order.
func (e *Engine) Cuts() []string {
	names := make([]string, len(e.steps))
	for i, s := range e.steps {
		names[i] = s.cut
	}
	return names
}

// Process evaluates one event. It returns ErrZeroWeight, recording
// nothing, for a zero-weight event when weighting is enabled. An event
// without reconstructed objects is counted in every region and selected
// without any cut being applied.
func (e *Engine) Process(ev *event.Event) (Result, error) {
	w := 1.0
	if e.cfg.UseEventWeights && ev.Weight != nil {
		w = *ev.Weight
		if w == 0 {
			return Result{}, ErrZeroWeight
		}
	}
	res := Result{Weight: w}

	e.book.StartEvent(w)
	if ev.Rec == nil {
		res.Selected = append(res.Selected, Regions...)
		return res, nil
	}

	st := &state{sig: selection.Select(ev.Rec, e.cfg.Objects, e.cfg.Isolator)}
	for _, s := range e.steps {
		if s.prepare != nil {
			s.prepare(st)
		}
		for _, f := range s.fills {
			e.book.Fill(f.histo, f.value(st))
		}
		if !e.book.ApplyCut(s.cut, s.pass(st)) {
			return res, nil
		}
	}

	for _, r := range Regions {
		if e.book.Surviving(r) {
			res.Selected = append(res.Selected, r)
		}
	}
	return res, nil
}

func leptonPt(floor [3]float64) func(*state) bool {
	return func(st *state) bool {
		for i, l := range st.leptons {
			if !(l.Pt() > floor[i]) {
				return false
			}
		}
		return true
	}
}

func buildSteps(c Thresholds) []step {
	low := []string{RegionLow}
	isr := []string{RegionISR}

	return []step{
		{
			cut:  CutThreeLeptons,
			pass: func(st *state) bool { return len(st.sig.Leptons) == 3 },
		},
		{
			cut: CutSFOS,
			prepare: func(st *state) {
				copy(st.leptons[:], st.sig.Leptons)
				st.triple, st.hasPair = selection.SelectPair(st.leptons)
			},
			pass: func(st *state) bool { return st.hasPair },
		},
		{
			cut: CutBVeto,
			pass: func(st *state) bool {
				for _, j := range st.sig.Jets {
					if j.BTag {
						return false
					}
				}
				return true
			},
		},
		{
			cut: CutMlll,
			prepare: func(st *state) {
				st.lll = kinematics.Sum(st.leptons[0].P, st.leptons[1].P, st.leptons[2].P)
			},
			pass: func(st *state) bool { return st.lll.M() > c.MlllMin },
		},
		{cut: CutLowLeptonPt, regions: low, pass: leptonPt(c.LowLeptonPt)},
		{cut: CutISRLeptonPt, regions: isr, pass: leptonPt(c.ISRLeptonPt)},
		{
			cut: CutMll,
			prepare: func(st *state) {
				p := st.triple.Pair
				st.mll = kinematics.Sum(st.leptons[p[0]].P, st.leptons[p[1]].P).M()
			},
			pass: func(st *state) bool { return c.MllMin <= st.mll && st.mll <= c.MllMax },
		},
		{
			cut:     CutLowJetVeto,
			regions: low,
			pass:    func(st *state) bool { return len(st.sig.Jets) == 0 },
		},
		{
			cut:     CutLowHBoost,
			regions: low,
			prepare: func(st *state) { st.hboost = HBoost(st.leptons, st.sig.MET) },
			fills:   []fill{{HistLowHBoost, func(st *state) float64 { return st.hboost }}},
			pass:    func(st *state) bool { return st.hboost > c.LowHBoostMin },
		},
		{
			cut:     CutLowPTsoft,
			regions: low,
			prepare: func(st *state) { st.meff = Meff(st.leptons, st.sig.MET) },
			fills:   []fill{{HistLowPTsoft, lowPTsoftRatio}},
			pass:    func(st *state) bool { return lowPTsoftRatio(st) < c.LowPTsoftRatioMax },
		},
		{
			cut:     CutLowMeffHBoost,
			regions: low,
			fills:   []fill{{HistLowMeffHBoost, meffOverHBoost}},
			pass:    func(st *state) bool { return meffOverHBoost(st) > c.LowMeffHBoostMin },
		},
		{
			cut:     CutISRNJetMin,
			regions: isr,
			pass:    func(st *state) bool { return len(st.sig.Jets) > c.ISRNJetMin },
		},
		{
			cut:     CutISRNJetMax,
			regions: isr,
			pass:    func(st *state) bool { return len(st.sig.Jets) < c.ISRNJetMax },
		},
		{
			cut:     CutISRDeltaPhi,
			regions: isr,
			prepare: func(st *state) { st.jets = JetSum(st.sig.Jets) },
			pass: func(st *state) bool {
				return math.Abs(kinematics.DeltaPhi(st.sig.MET.Momentum(), st.jets)) > c.ISRDeltaPhiMin
			},
		},
		{
			cut:     CutISRRMETJets,
			regions: isr,
			fills:   []fill{{HistISRRMETJets, rMETJets}},
			pass: func(st *state) bool {
				r := rMETJets(st)
				return c.ISRRMin <= r && r <= c.ISRRMax
			},
		},
		{
			cut:     CutISRJetsPt,
			regions: isr,
			fills:   []fill{{HistISRJetsPt, jetsPt}},
			pass:    func(st *state) bool { return jetsPt(st) > c.ISRJetsPtMin },
		},
		{
			cut:     CutISRMET,
			regions: isr,
			pass:    func(st *state) bool { return st.sig.MET.Pt() > c.ISRMETMin },
		},
		{
			cut: CutMT,
			prepare: func(st *state) {
				st.mt = TransverseMass(st.leptons[st.triple.Rest], st.sig.MET)
			},
			fills: []fill{
				{HistLowMT, transverseMass},
				{HistISRMT, transverseMass},
			},
			pass: func(st *state) bool { return st.mt > c.MTMin },
		},
		{
			cut:     CutISRPTsoft,
			regions: isr,
			fills:   []fill{{HistISRPTsoft, isrPTsoft}},
			pass:    func(st *state) bool { return isrPTsoft(st) < c.ISRPTsoftMax },
		},
	}
}

func lowPTsoftRatio(st *state) float64 {
	pt := PTsoft(st.sig.MET, st.lll)
	return pt / (pt + st.meff)
}

func meffOverHBoost(st *state) float64 { return st.meff / st.hboost }
func rMETJets(st *state) float64       { return RMETJets(st.sig.MET, st.jets) }
func jetsPt(st *state) float64         { return st.jets.Pt() }
func transverseMass(st *state) float64 { return st.mt }
func isrPTsoft(st *state) float64      { return PTsoft(st.sig.MET, st.lll, st.jets) }
