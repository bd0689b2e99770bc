package analysis

// Thresholds are the event-level cut values of the two signal regions.
// Momenta and masses are in GeV, angles in radians.
type Thresholds struct {
	MlllMin float64

	// Per-lepton pT floors, leading first.
	LowLeptonPt [3]float64
	ISRLeptonPt [3]float64

	// Inclusive SFOS pair mass window.
	MllMin, MllMax float64

	LowHBoostMin      float64
	LowPTsoftRatioMax float64
	LowMeffHBoostMin  float64

	// Jet multiplicity is required to be strictly inside (ISRNJetMin, ISRNJetMax).
	ISRNJetMin, ISRNJetMax int
	ISRDeltaPhiMin         float64
	// Inclusive window on |MET·J| / J.pt².
	ISRRMin, ISRRMax float64
	ISRJetsPtMin     float64
	ISRMETMin        float64
	ISRPTsoftMax     float64

	MTMin float64
}

// DefaultThresholds returns the published signal-region definitions.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MlllMin:           105,
		LowLeptonPt:       [3]float64{60, 40, 30},
		ISRLeptonPt:       [3]float64{25, 25, 20},
		MllMin:            75,
		MllMax:            105,
		LowHBoostMin:      250,
		LowPTsoftRatioMax: 0.05,
		LowMeffHBoostMin:  0.9,
		ISRNJetMin:        0,
		ISRNJetMax:        4,
		ISRDeltaPhiMin:    2.0,
		ISRRMin:           0.55,
		ISRRMax:           1.0,
		ISRJetsPtMin:      100,
		ISRMETMin:         80,
		ISRPTsoftMax:      25,
		MTMin:             100,
	}
}
