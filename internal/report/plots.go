package report

import (
	"fmt"
	"path/filepath"
	"strings"

	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"

	"github.com/banshee-data/trilepton/internal/cutflow"
	"github.com/banshee-data/trilepton/internal/fsutil"
)

// axisLabels maps histogram names to their x-axis titles.
var axisLabels = map[string]string{
	"SR-low-MT":                      "m_T (GeV)",
	"SR-low-HBoost":                  "H_boost (GeV)",
	"SR-low-R(Meff,HBoost)":          "m_eff / H_boost",
	"SR-low-R(PTsoft,(PTsoft+Meff))": "p_T^soft / (p_T^soft + m_eff)",
	"SR-ISR-MT":                      "m_T (GeV)",
	"SR-ISR-R(MET,Jets)":             "|MET . J| / p_T(J)^2",
	"SR-ISR-PTsoft":                  "p_T^soft (GeV)",
	"SR-ISR-PTjets":                  "p_T(J) (GeV)",
}

// FileName maps a histogram name to a file-system safe base name.
func FileName(histo string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range histo {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}

// WritePNGs saves one plot per histogram of m into dir on fsys and returns
// the written paths in histogram order.
func WritePNGs(fsys fsutil.FileSystem, dir string, m *cutflow.Manager) ([]string, error) {
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create plot directory: %w", err)
	}

	var paths []string
	for _, name := range m.Histograms() {
		region, _ := m.HistogramRegion(name)

		p := plot.New()
		p.Title.Text = name
		p.X.Label.Text = axisLabels[name]
		p.Y.Label.Text = fmt.Sprintf("Events (%s)", region)

		h := hplot.NewH1D(m.Histogram(name))
		p.Add(h)

		path := filepath.Join(dir, FileName(name)+".png")
		if err := savePNG(fsys, p, path); err != nil {
			return paths, fmt.Errorf("histogram %s: %w", name, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func savePNG(fsys fsutil.FileSystem, p *plot.Plot, path string) error {
	wt, err := p.WriterTo(6*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return err
	}
	f, err := fsys.Create(path)
	if err != nil {
		return err
	}
	if _, err := wt.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
