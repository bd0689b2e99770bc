package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	jsoniter "github.com/json-iterator/go"

	"github.com/banshee-data/trilepton/internal/analysis"
	"github.com/banshee-data/trilepton/internal/selection"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DefaultConfigPath is the path to the canonical analysis defaults file.
const DefaultConfigPath = "config/analysis.defaults.json"

// AnalysisConfig holds every tunable threshold of the selection. Fields
// left out of the JSON fall back to the published values through the
// Get* accessors, so partial files are safe.
type AnalysisConfig struct {
	// Electrons
	ElectronPtMin       *float64 `json:"electron_pt_min,omitempty"`
	ElectronAbsEtaMax   *float64 `json:"electron_abs_eta_max,omitempty"`
	ElectronIsoCone     *float64 `json:"electron_iso_cone,omitempty"`
	ElectronTrackIsoMax *float64 `json:"electron_track_iso_max,omitempty"`
	ElectronAllIsoMax   *float64 `json:"electron_all_iso_max,omitempty"`

	// Muons. The track cone shrinks with pT and is not configurable.
	MuonPtMin       *float64 `json:"muon_pt_min,omitempty"`
	MuonAbsEtaMax   *float64 `json:"muon_abs_eta_max,omitempty"`
	MuonAllIsoCone  *float64 `json:"muon_all_iso_cone,omitempty"`
	MuonTrackIsoMax *float64 `json:"muon_track_iso_max,omitempty"`
	MuonAllIsoMax   *float64 `json:"muon_all_iso_max,omitempty"`

	// Jets
	JetPtMin     *float64 `json:"jet_pt_min,omitempty"`
	JetAbsEtaMax *float64 `json:"jet_abs_eta_max,omitempty"`

	// Overlap removal
	LeptonLeptonDR *float64 `json:"lepton_lepton_dr,omitempty"`
	JetLeptonDR    *float64 `json:"jet_lepton_dr,omitempty"`

	// Isolation constituents must exceed this pT.
	IsolationMinPt *float64 `json:"isolation_min_pt,omitempty"`

	// Event selection
	MlllMin           *float64    `json:"mlll_min,omitempty"`
	LowLeptonPt       *[3]float64 `json:"low_lepton_pt,omitempty"`
	ISRLeptonPt       *[3]float64 `json:"isr_lepton_pt,omitempty"`
	MllMin            *float64    `json:"mll_min,omitempty"`
	MllMax            *float64    `json:"mll_max,omitempty"`
	LowHBoostMin      *float64    `json:"low_hboost_min,omitempty"`
	LowPTsoftRatioMax *float64    `json:"low_ptsoft_ratio_max,omitempty"`
	LowMeffHBoostMin  *float64    `json:"low_meff_hboost_min,omitempty"`
	ISRNJetMax        *int        `json:"isr_njet_max,omitempty"`
	ISRDeltaPhiMin    *float64    `json:"isr_delta_phi_min,omitempty"`
	ISRRMin           *float64    `json:"isr_r_min,omitempty"`
	ISRRMax           *float64    `json:"isr_r_max,omitempty"`
	ISRJetsPtMin      *float64    `json:"isr_jets_pt_min,omitempty"`
	ISRMETMin         *float64    `json:"isr_met_min,omitempty"`
	ISRPTsoftMax      *float64    `json:"isr_ptsoft_max,omitempty"`
	MTMin             *float64    `json:"mt_min,omitempty"`

	UseEventWeights *bool `json:"use_event_weights,omitempty"`
}

// EmptyAnalysisConfig returns an AnalysisConfig with every field unset.
func EmptyAnalysisConfig() *AnalysisConfig {
	return &AnalysisConfig{}
}

// LoadAnalysisConfig loads an AnalysisConfig from a JSON file. The file
// must have a .json extension and be at most 1MB.
func LoadAnalysisConfig(path string) (*AnalysisConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024 // 1MB
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptyAnalysisConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// MustLoadDefaultConfig loads DefaultConfigPath from the current directory
// or one of its parents. Panics if the file cannot be loaded, intended for
// test setup.
func MustLoadDefaultConfig() *AnalysisConfig {
	candidates := []string{
		DefaultConfigPath,
		"../" + DefaultConfigPath,
		"../../" + DefaultConfigPath, // from internal/config/
		"../../../" + DefaultConfigPath,
	}
	for _, path := range candidates {
		if cfg, err := LoadAnalysisConfig(path); err == nil {
			return cfg
		}
	}
	panic("cannot find " + DefaultConfigPath + " - run tests from repository root")
}

// Validate checks that the configured values are usable.
func (c *AnalysisConfig) Validate() error {
	nonNegative := map[string]*float64{
		"electron_pt_min":        c.ElectronPtMin,
		"electron_abs_eta_max":   c.ElectronAbsEtaMax,
		"electron_iso_cone":      c.ElectronIsoCone,
		"electron_track_iso_max": c.ElectronTrackIsoMax,
		"electron_all_iso_max":   c.ElectronAllIsoMax,
		"muon_pt_min":            c.MuonPtMin,
		"muon_abs_eta_max":       c.MuonAbsEtaMax,
		"muon_all_iso_cone":      c.MuonAllIsoCone,
		"muon_track_iso_max":     c.MuonTrackIsoMax,
		"muon_all_iso_max":       c.MuonAllIsoMax,
		"jet_pt_min":             c.JetPtMin,
		"jet_abs_eta_max":        c.JetAbsEtaMax,
		"lepton_lepton_dr":       c.LeptonLeptonDR,
		"jet_lepton_dr":          c.JetLeptonDR,
		"isolation_min_pt":       c.IsolationMinPt,
		"mlll_min":               c.MlllMin,
		"low_hboost_min":         c.LowHBoostMin,
		"low_ptsoft_ratio_max":   c.LowPTsoftRatioMax,
		"low_meff_hboost_min":    c.LowMeffHBoostMin,
		"isr_delta_phi_min":      c.ISRDeltaPhiMin,
		"isr_jets_pt_min":        c.ISRJetsPtMin,
		"isr_met_min":            c.ISRMETMin,
		"isr_ptsoft_max":         c.ISRPTsoftMax,
		"mt_min":                 c.MTMin,
	}
	for name, v := range nonNegative {
		if v != nil && *v < 0 {
			return fmt.Errorf("%s must be non-negative, got %f", name, *v)
		}
	}

	if c.GetMllMin() > c.GetMllMax() {
		return fmt.Errorf("mll_min (%f) must not exceed mll_max (%f)", c.GetMllMin(), c.GetMllMax())
	}
	if c.GetISRRMin() > c.GetISRRMax() {
		return fmt.Errorf("isr_r_min (%f) must not exceed isr_r_max (%f)", c.GetISRRMin(), c.GetISRRMax())
	}
	if c.ISRNJetMax != nil && *c.ISRNJetMax < 2 {
		return fmt.Errorf("isr_njet_max must be at least 2, got %d", *c.ISRNJetMax)
	}
	if c.ISRDeltaPhiMin != nil && *c.ISRDeltaPhiMin > math.Pi {
		return fmt.Errorf("isr_delta_phi_min must not exceed pi, got %f", *c.ISRDeltaPhiMin)
	}
	return nil
}

// ObjectCuts returns the object-level thresholds. The muon track cone and
// the lepton-jet removal radius keep their pT-dependent shapes.
func (c *AnalysisConfig) ObjectCuts() selection.ObjectCuts {
	cuts := selection.DefaultObjectCuts()

	cuts.Electron.PtMin = c.GetElectronPtMin()
	cuts.Electron.AbsEtaMax = c.GetElectronAbsEtaMax()
	cuts.Electron.TrackCone = selection.Fixed(c.GetElectronIsoCone())
	cuts.Electron.AllCone = selection.Fixed(c.GetElectronIsoCone())
	cuts.Electron.TrackIsoMax = c.GetElectronTrackIsoMax()
	cuts.Electron.AllIsoMax = c.GetElectronAllIsoMax()

	cuts.Muon.PtMin = c.GetMuonPtMin()
	cuts.Muon.AbsEtaMax = c.GetMuonAbsEtaMax()
	cuts.Muon.AllCone = selection.Fixed(c.GetMuonAllIsoCone())
	cuts.Muon.TrackIsoMax = c.GetMuonTrackIsoMax()
	cuts.Muon.AllIsoMax = c.GetMuonAllIsoMax()

	cuts.Jet.PtMin = c.GetJetPtMin()
	cuts.Jet.AbsEtaMax = c.GetJetAbsEtaMax()

	cuts.LeptonLeptonDR = c.GetLeptonLeptonDR()
	cuts.JetLeptonDR = c.GetJetLeptonDR()
	return cuts
}

// Thresholds returns the event-level cut values.
func (c *AnalysisConfig) Thresholds() analysis.Thresholds {
	t := analysis.DefaultThresholds()
	t.MlllMin = c.GetMlllMin()
	t.LowLeptonPt = c.GetLowLeptonPt()
	t.ISRLeptonPt = c.GetISRLeptonPt()
	t.MllMin = c.GetMllMin()
	t.MllMax = c.GetMllMax()
	t.LowHBoostMin = c.GetLowHBoostMin()
	t.LowPTsoftRatioMax = c.GetLowPTsoftRatioMax()
	t.LowMeffHBoostMin = c.GetLowMeffHBoostMin()
	t.ISRNJetMax = c.GetISRNJetMax()
	t.ISRDeltaPhiMin = c.GetISRDeltaPhiMin()
	t.ISRRMin = c.GetISRRMin()
	t.ISRRMax = c.GetISRRMax()
	t.ISRJetsPtMin = c.GetISRJetsPtMin()
	t.ISRMETMin = c.GetISRMETMin()
	t.ISRPTsoftMax = c.GetISRPTsoftMax()
	t.MTMin = c.GetMTMin()
	return t
}

// EngineConfig assembles the full engine configuration.
func (c *AnalysisConfig) EngineConfig() analysis.Config {
	return analysis.Config{
		Objects:         c.ObjectCuts(),
		Cuts:            c.Thresholds(),
		Isolator:        selection.EFlowIsolation{MinPt: c.GetIsolationMinPt()},
		UseEventWeights: c.GetUseEventWeights(),
	}
}

func getFloat(p *float64, def float64) float64 {
	if p == nil {
		return def
	}
	return *p
}

func (c *AnalysisConfig) GetElectronPtMin() float64       { return getFloat(c.ElectronPtMin, 10) }
func (c *AnalysisConfig) GetElectronAbsEtaMax() float64   { return getFloat(c.ElectronAbsEtaMax, 2.47) }
func (c *AnalysisConfig) GetElectronIsoCone() float64     { return getFloat(c.ElectronIsoCone, 0.2) }
func (c *AnalysisConfig) GetElectronTrackIsoMax() float64 { return getFloat(c.ElectronTrackIsoMax, 0.06) }
func (c *AnalysisConfig) GetElectronAllIsoMax() float64   { return getFloat(c.ElectronAllIsoMax, 0.06) }
func (c *AnalysisConfig) GetMuonPtMin() float64           { return getFloat(c.MuonPtMin, 10) }
func (c *AnalysisConfig) GetMuonAbsEtaMax() float64       { return getFloat(c.MuonAbsEtaMax, 2.4) }
func (c *AnalysisConfig) GetMuonAllIsoCone() float64      { return getFloat(c.MuonAllIsoCone, 0.2) }
func (c *AnalysisConfig) GetMuonTrackIsoMax() float64     { return getFloat(c.MuonTrackIsoMax, 0.04) }
func (c *AnalysisConfig) GetMuonAllIsoMax() float64       { return getFloat(c.MuonAllIsoMax, 0.15) }
func (c *AnalysisConfig) GetJetPtMin() float64            { return getFloat(c.JetPtMin, 20) }
func (c *AnalysisConfig) GetJetAbsEtaMax() float64        { return getFloat(c.JetAbsEtaMax, 2.4) }
func (c *AnalysisConfig) GetLeptonLeptonDR() float64      { return getFloat(c.LeptonLeptonDR, 0.2) }
func (c *AnalysisConfig) GetJetLeptonDR() float64         { return getFloat(c.JetLeptonDR, 0.2) }
func (c *AnalysisConfig) GetIsolationMinPt() float64      { return getFloat(c.IsolationMinPt, 0) }
func (c *AnalysisConfig) GetMlllMin() float64             { return getFloat(c.MlllMin, 105) }
func (c *AnalysisConfig) GetMllMin() float64              { return getFloat(c.MllMin, 75) }
func (c *AnalysisConfig) GetMllMax() float64              { return getFloat(c.MllMax, 105) }
func (c *AnalysisConfig) GetLowHBoostMin() float64        { return getFloat(c.LowHBoostMin, 250) }
func (c *AnalysisConfig) GetLowPTsoftRatioMax() float64   { return getFloat(c.LowPTsoftRatioMax, 0.05) }
func (c *AnalysisConfig) GetLowMeffHBoostMin() float64    { return getFloat(c.LowMeffHBoostMin, 0.9) }
func (c *AnalysisConfig) GetISRDeltaPhiMin() float64      { return getFloat(c.ISRDeltaPhiMin, 2.0) }
func (c *AnalysisConfig) GetISRRMin() float64             { return getFloat(c.ISRRMin, 0.55) }
func (c *AnalysisConfig) GetISRRMax() float64             { return getFloat(c.ISRRMax, 1.0) }
func (c *AnalysisConfig) GetISRJetsPtMin() float64        { return getFloat(c.ISRJetsPtMin, 100) }
func (c *AnalysisConfig) GetISRMETMin() float64           { return getFloat(c.ISRMETMin, 80) }
func (c *AnalysisConfig) GetISRPTsoftMax() float64        { return getFloat(c.ISRPTsoftMax, 25) }
func (c *AnalysisConfig) GetMTMin() float64               { return getFloat(c.MTMin, 100) }

// GetLowLeptonPt returns the SR-low lepton pT floors, leading first.
func (c *AnalysisConfig) GetLowLeptonPt() [3]float64 {
	if c.LowLeptonPt == nil {
		return [3]float64{60, 40, 30}
	}
	return *c.LowLeptonPt
}

// GetISRLeptonPt returns the SR-ISR lepton pT floors, leading first.
func (c *AnalysisConfig) GetISRLeptonPt() [3]float64 {
	if c.ISRLeptonPt == nil {
		return [3]float64{25, 25, 20}
	}
	return *c.ISRLeptonPt
}

// GetISRNJetMax returns the exclusive upper bound on the SR-ISR jet count.
func (c *AnalysisConfig) GetISRNJetMax() int {
	if c.ISRNJetMax == nil {
		return 4
	}
	return *c.ISRNJetMax
}

// GetUseEventWeights reports whether generator weights are applied.
func (c *AnalysisConfig) GetUseEventWeights() bool {
	if c.UseEventWeights == nil {
		return true
	}
	return *c.UseEventWeights
}
