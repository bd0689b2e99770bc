package analysis

// Signal regions.
const (
	RegionLow = "SR-low"
	RegionISR = "SR-ISR"
)

// Regions lists the signal regions in registration order.
var Regions = []string{RegionLow, RegionISR}

// Cut names, in evaluation order. They are fixed identifiers: the numbers
// in some of them are the published default thresholds and stay in the
// name when Thresholds overrides the value. Stored runs keep the thresholds
// actually applied in their config JSON.
const (
	CutThreeLeptons  = "3Leptons"
	CutSFOS          = "SFOS"
	CutBVeto         = "B-veto"
	CutMlll          = "Three Lepton Mass"
	CutLowLeptonPt   = "low-LeptonPT > 60, 40, 30"
	CutISRLeptonPt   = "ISR-LeptonPT > 25, 25, 20"
	CutMll           = "Dilepton InvMass"
	CutLowJetVeto    = "low-Jet-veto"
	CutLowHBoost     = "low-HBoost"
	CutLowPTsoft     = "low-PTsoft/(PTsoft+Meff)"
	CutLowMeffHBoost = "low-Meff/HBoost"
	CutISRNJetMin    = "ISR-Njet > 0"
	CutISRNJetMax    = "ISR-Njet < 4"
	CutISRDeltaPhi   = "ISR-DeltaPhi(MET,Jets) > 2.0"
	CutISRRMETJets   = "ISR-R(MET,Jets)"
	CutISRJetsPt     = "ISR-JetsPT > 100"
	CutISRMET        = "ISR-MET > 80"
	CutMT            = "Transverse Mass"
	CutISRPTsoft     = "ISR-PTsoft < 25"
)

// Histogram names.
const (
	HistLowMT         = "SR-low-MT"
	HistLowHBoost     = "SR-low-HBoost"
	HistLowMeffHBoost = "SR-low-R(Meff,HBoost)"
	HistLowPTsoft     = "SR-low-R(PTsoft,(PTsoft+Meff))"
	HistISRMT         = "SR-ISR-MT"
	HistISRRMETJets   = "SR-ISR-R(MET,Jets)"
	HistISRPTsoft     = "SR-ISR-PTsoft"
	HistISRJetsPt     = "SR-ISR-PTjets"
)

// HistoSpec is the binning of one histogram.
type HistoSpec struct {
	Name   string
	Bins   int
	Lo, Hi float64
	Region string
}

// Histos lists the histograms in registration order.
var Histos = []HistoSpec{
	{HistLowMT, 20, 0, 500, RegionLow},
	{HistLowHBoost, 20, 200, 700, RegionLow},
	{HistLowMeffHBoost, 15, 0.3, 1.05, RegionLow},
	{HistLowPTsoft, 15, 0, 0.15, RegionLow},
	{HistISRMT, 50, 0, 500, RegionISR},
	{HistISRRMETJets, 18, 0.1, 1, RegionISR},
	{HistISRPTsoft, 20, 0, 100, RegionISR},
	{HistISRJetsPt, 18, 0, 500, RegionISR},
}
