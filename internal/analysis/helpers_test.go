package analysis

import "github.com/banshee-data/trilepton/internal/testutil"

var (
	lep          = testutil.Lepton
	jet          = testutil.Jet
	weight       = testutil.Weight
	lowCandidate = testutil.LowCandidate
	lowSignal    = testutil.LowSignal
	isrSignal    = testutil.ISRSignal
	softLeading  = testutil.SoftLeadingISRSignal
)
