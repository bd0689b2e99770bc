// Package cutflow is the region/cut/histogram registry the selection
// engine records into.
//
// Responsibilities:
//   - declare signal regions, the cuts that apply to each, and one
//     histogram per region-scoped observable
//   - track which regions are still alive for the event in flight
//   - accumulate raw and weighted counters per region and cut
//   - merge managers built by independent workers
//
// A Manager is not safe for concurrent use; give each goroutine its own
// and Merge them afterwards.
package cutflow
