package cutflow

import (
	"errors"
	"fmt"

	"go-hep.org/x/hep/hbook"

	"github.com/banshee-data/trilepton/internal/monitoring"
)

var (
	ErrDuplicate     = errors.New("already registered")
	ErrUnknownRegion = errors.New("unknown region")
	ErrBadBinning    = errors.New("invalid binning")
	ErrIncompatible  = errors.New("incompatible managers")
)

type region struct {
	name    string
	initial Counter
	cuts    []int
}

type cut struct {
	name    string
	regions []int
	// pass is parallel to regions.
	pass []Counter
}

type histo struct {
	name   string
	region int
	bins   int
	lo, hi float64
	h      *hbook.H1D
}

// Manager records region survival, cut counters and histograms.
type Manager struct {
	regions  []*region
	regionIx map[string]int
	cuts     []*cut
	cutIx    map[string]int
	histos   []*histo
	histoIx  map[string]int

	weight float64
	alive  []bool
}

// NewManager returns an empty Manager.
func NewManager() *Manager {
	return &Manager{
		regionIx: make(map[string]int),
		cutIx:    make(map[string]int),
		histoIx:  make(map[string]int),
	}
}

// AddRegion declares a signal region.
func (m *Manager) AddRegion(name string) error {
	if _, ok := m.regionIx[name]; ok {
		return fmt.Errorf("region %q: %w", name, ErrDuplicate)
	}
	m.regionIx[name] = len(m.regions)
	m.regions = append(m.regions, &region{name: name})
	m.alive = append(m.alive, false)
	return nil
}

// AddCut declares a cut applying to regions, or to every region declared
// so far when none are given.
func (m *Manager) AddCut(name string, regions ...string) error {
	if _, ok := m.cutIx[name]; ok {
		return fmt.Errorf("cut %q: %w", name, ErrDuplicate)
	}
	c := &cut{name: name}
	if len(regions) == 0 {
		for i := range m.regions {
			c.regions = append(c.regions, i)
		}
	}
	for _, r := range regions {
		ri, ok := m.regionIx[r]
		if !ok {
			return fmt.Errorf("cut %q: %w %q", name, ErrUnknownRegion, r)
		}
		c.regions = append(c.regions, ri)
	}
	c.pass = make([]Counter, len(c.regions))

	ci := len(m.cuts)
	m.cutIx[name] = ci
	m.cuts = append(m.cuts, c)
	for _, ri := range c.regions {
		m.regions[ri].cuts = append(m.regions[ri].cuts, ci)
	}
	return nil
}

// AddHisto declares a histogram filled only while region is alive.
func (m *Manager) AddHisto(name string, bins int, lo, hi float64, region string) error {
	if _, ok := m.histoIx[name]; ok {
		return fmt.Errorf("histogram %q: %w", name, ErrDuplicate)
	}
	ri, ok := m.regionIx[region]
	if !ok {
		return fmt.Errorf("histogram %q: %w %q", name, ErrUnknownRegion, region)
	}
	if bins <= 0 || !(lo < hi) {
		return fmt.Errorf("histogram %q: %w: %d bins in [%g, %g)", name, ErrBadBinning, bins, lo, hi)
	}
	m.histoIx[name] = len(m.histos)
	m.histos = append(m.histos, &histo{
		name:   name,
		region: ri,
		bins:   bins,
		lo:     lo,
		hi:     hi,
		h:      hbook.NewH1D(bins, lo, hi),
	})
	return nil
}

// StartEvent revives every region and counts the event in each region's
// initial counter.
func (m *Manager) StartEvent(weight float64) {
	m.weight = weight
	for i, r := range m.regions {
		m.alive[i] = true
		r.initial.add(weight)
	}
}

// ApplyCut records the outcome of a cut in each alive region it applies
// to. On failure those regions die for the rest of the event. It reports
// whether any region is still alive.
func (m *Manager) ApplyCut(name string, pass bool) bool {
	ci, ok := m.cutIx[name]
	if !ok {
		monitoring.Logf("cutflow: apply of unregistered cut %q ignored", name)
		return m.anyAlive()
	}
	c := m.cuts[ci]
	for i, ri := range c.regions {
		if !m.alive[ri] {
			continue
		}
		if pass {
			c.pass[i].add(m.weight)
		} else {
			m.alive[ri] = false
		}
	}
	return m.anyAlive()
}

// Fill adds v with the current event weight to the named histogram if
// its region is alive.
func (m *Manager) Fill(name string, v float64) {
	hi, ok := m.histoIx[name]
	if !ok {
		monitoring.Logf("cutflow: fill of unregistered histogram %q ignored", name)
		return
	}
	h := m.histos[hi]
	if m.alive[h.region] {
		h.h.Fill(v, m.weight)
	}
}

// Surviving reports whether region is alive for the current event.
func (m *Manager) Surviving(region string) bool {
	ri, ok := m.regionIx[region]
	return ok && m.alive[ri]
}

func (m *Manager) anyAlive() bool {
	for _, a := range m.alive {
		if a {
			return true
		}
	}
	return false
}

// Regions returns the region names in declaration order.
func (m *Manager) Regions() []string {
	names := make([]string, len(m.regions))
	for i, r := range m.regions {
		names[i] = r.name
	}
	return names
}

// Histograms returns the histogram names in declaration order.
func (m *Manager) Histograms() []string {
	names := make([]string, len(m.histos))
	for i, h := range m.histos {
		names[i] = h.name
	}
	return names
}

// Histogram returns the named histogram, or nil.
func (m *Manager) Histogram(name string) *hbook.H1D {
	hi, ok := m.histoIx[name]
	if !ok {
		return nil
	}
	return m.histos[hi].h
}

// HistogramRegion returns the region the named histogram belongs to.
func (m *Manager) HistogramRegion(name string) (string, bool) {
	hi, ok := m.histoIx[name]
	if !ok {
		return "", false
	}
	return m.regions[m.histos[hi].region].name, true
}

// Step is the passing count of one cut within a region.
type Step struct {
	Cut  string
	Pass Counter
}

// Flow is the cutflow of one region.
type Flow struct {
	Region  string
	Initial Counter
	Steps   []Step
}

// Final returns the count after the last cut, or the initial count when
// the region has no cuts.
func (f Flow) Final() Counter {
	if len(f.Steps) == 0 {
		return f.Initial
	}
	return f.Steps[len(f.Steps)-1].Pass
}

// Cutflow returns the cutflow of region.
func (m *Manager) Cutflow(region string) (Flow, bool) {
	ri, ok := m.regionIx[region]
	if !ok {
		return Flow{}, false
	}
	r := m.regions[ri]
	f := Flow{Region: r.name, Initial: r.initial}
	for _, ci := range r.cuts {
		c := m.cuts[ci]
		for i, cr := range c.regions {
			if cr == ri {
				f.Steps = append(f.Steps, Step{Cut: c.name, Pass: c.pass[i]})
				break
			}
		}
	}
	return f, true
}

// Merge adds the counters and histograms of o into m. Both managers must
// carry identical declarations.
func (m *Manager) Merge(o *Manager) error {
	if err := m.compatible(o); err != nil {
		return err
	}
	for i, r := range o.regions {
		m.regions[i].initial.merge(r.initial)
	}
	for i, c := range o.cuts {
		for j := range c.pass {
			m.cuts[i].pass[j].merge(c.pass[j])
		}
	}
	for i, h := range o.histos {
		m.histos[i].h = hbook.AddH1D(m.histos[i].h, h.h)
	}
	return nil
}

func (m *Manager) compatible(o *Manager) error {
	if len(m.regions) != len(o.regions) || len(m.cuts) != len(o.cuts) || len(m.histos) != len(o.histos) {
		return fmt.Errorf("%w: declaration counts differ", ErrIncompatible)
	}
	for i := range m.regions {
		if m.regions[i].name != o.regions[i].name {
			return fmt.Errorf("%w: region %d is %q vs %q", ErrIncompatible, i, m.regions[i].name, o.regions[i].name)
		}
	}
	for i := range m.cuts {
		a, b := m.cuts[i], o.cuts[i]
		if a.name != b.name || len(a.regions) != len(b.regions) {
			return fmt.Errorf("%w: cut %d is %q vs %q", ErrIncompatible, i, a.name, b.name)
		}
	}
	for i := range m.histos {
		a, b := m.histos[i], o.histos[i]
		if a.name != b.name || a.bins != b.bins || a.lo != b.lo || a.hi != b.hi {
			return fmt.Errorf("%w: histogram %d is %q vs %q", ErrIncompatible, i, a.name, b.name)
		}
	}
	return nil
}
