// Package report renders the outcome of a run: one PNG per histogram
// and an HTML page with the region cutflows and histogram contents.
package report
