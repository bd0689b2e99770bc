// Package analysis implements the three-lepton signal-region selection:
// the boosted-frame HBoost variable, the derived kinematic variables and
// the region cutflow engine.
//
// The engine evaluates an ordered list of named cuts. Each cut is tagged
// with the regions it applies to; a failed cut kills those regions and the
// event is abandoned as soon as no region survives. Histogram fills happen
// before the cut that reads the same variable, and only reach histograms
// whose region is still alive.
//
// Bookkeeping (region/cut counters and histograms) is delegated to a
// Bookkeeper supplied at construction; see internal/cutflow.
package analysis
