package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/banshee-data/trilepton/internal/analysis"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("Failed to write test config: %v", err)
	}
	return path
}

func TestEmptyConfigDefaults(t *testing.T) {
	cfg := EmptyAnalysisConfig()

	if diff := cmp.Diff(analysis.DefaultThresholds(), cfg.Thresholds()); diff != "" {
		t.Errorf("Thresholds() mismatch (-want +got):\n%s", diff)
	}
	if !cfg.GetUseEventWeights() {
		t.Error("expected event weights on by default")
	}

	cuts := cfg.ObjectCuts()
	if cuts.Electron.PtMin != 10 || cuts.Electron.AbsEtaMax != 2.47 {
		t.Errorf("unexpected electron cuts %+v", cuts.Electron)
	}
	if cuts.Muon.TrackIsoMax != 0.04 || cuts.Muon.AllIsoMax != 0.15 {
		t.Errorf("unexpected muon isolation %v/%v", cuts.Muon.TrackIsoMax, cuts.Muon.AllIsoMax)
	}
	if got := cuts.Muon.TrackCone(60); got != 0.2 {
		t.Errorf("muon track cone at 60 GeV = %v, want 0.2", got)
	}
	if got := cuts.LeptonJetRadius(20); got != 0.4 {
		t.Errorf("lepton-jet radius at 20 GeV = %v, want 0.4", got)
	}
}

func TestMustLoadDefaultConfigMatchesDefaults(t *testing.T) {
	cfg := MustLoadDefaultConfig()

	if diff := cmp.Diff(analysis.DefaultThresholds(), cfg.Thresholds()); diff != "" {
		t.Errorf("defaults file drifted from DefaultThresholds (-want +got):\n%s", diff)
	}
	if cfg.UseEventWeights == nil || !*cfg.UseEventWeights {
		t.Errorf("expected use_event_weights true, got %v", cfg.UseEventWeights)
	}
	if cfg.GetJetPtMin() != 20 {
		t.Errorf("GetJetPtMin() = %v, want 20", cfg.GetJetPtMin())
	}
}

func TestLoadAnalysisConfigPartial(t *testing.T) {
	path := writeConfig(t, "partial.json", `{
  "low_hboost_min": 300,
  "isr_lepton_pt": [30, 30, 25],
  "use_event_weights": false
}`)

	cfg, err := LoadAnalysisConfig(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	th := cfg.Thresholds()
	if th.LowHBoostMin != 300 {
		t.Errorf("LowHBoostMin = %v, want 300", th.LowHBoostMin)
	}
	if th.ISRLeptonPt != [3]float64{30, 30, 25} {
		t.Errorf("ISRLeptonPt = %v", th.ISRLeptonPt)
	}
	if th.MTMin != 100 {
		t.Errorf("unset MTMin should default to 100, got %v", th.MTMin)
	}

	ec := cfg.EngineConfig()
	if ec.UseEventWeights {
		t.Error("expected event weights off")
	}
	if ec.Isolator == nil {
		t.Error("expected an isolator")
	}
}

func TestLoadAnalysisConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		body    string
		wantErr string
	}{
		{"extension", "cfg.yaml", `{}`, ".json extension"},
		{"syntax", "cfg.json", `{"mt_min": }`, "failed to parse"},
		{"negative", "cfg.json", `{"mt_min": -1}`, "mt_min must be non-negative"},
		{"mll window", "cfg.json", `{"mll_min": 110}`, "mll_min"},
		{"r window", "cfg.json", `{"isr_r_min": 2}`, "isr_r_min"},
		{"njet", "cfg.json", `{"isr_njet_max": 1}`, "isr_njet_max"},
		{"delta phi", "cfg.json", `{"isr_delta_phi_min": 4}`, "isr_delta_phi_min"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.file, tt.body)
			_, err := LoadAnalysisConfig(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadAnalysisConfigMissingFile(t *testing.T) {
	_, err := LoadAnalysisConfig(filepath.Join(t.TempDir(), "missing.json"))
	if err == nil || !strings.Contains(err.Error(), "failed to stat") {
		t.Fatalf("expected stat error, got %v", err)
	}
}

func TestLoadAnalysisConfigTooLarge(t *testing.T) {
	body := `{"mt_min": 100` + strings.Repeat(" ", 1024*1024) + `}`
	path := writeConfig(t, "big.json", body)
	_, err := LoadAnalysisConfig(path)
	if err == nil || !strings.Contains(err.Error(), "too large") {
		t.Fatalf("expected size error, got %v", err)
	}
}
