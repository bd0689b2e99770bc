package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/banshee-data/trilepton/internal/cutflow"
	"github.com/banshee-data/trilepton/internal/fsutil"
)

// WriteHTML renders a page with one bar chart per region cutflow
// (weighted events after each cut) followed by one chart per histogram.
func WriteHTML(w io.Writer, title string, m *cutflow.Manager) error {
	page := components.NewPage()
	page.PageTitle = title

	for _, region := range m.Regions() {
		flow, _ := m.Cutflow(region)
		page.AddCharts(cutflowChart(flow))
	}
	for _, name := range m.Histograms() {
		page.AddCharts(histogramChart(m, name))
	}

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render error: %w", err)
	}
	return nil
}

// WriteHTMLFile renders the page into path on fsys.
func WriteHTMLFile(fsys fsutil.FileSystem, path, title string, m *cutflow.Manager) error {
	f, err := fsys.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create HTML report: %w", err)
	}
	if err := WriteHTML(f, title, m); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func cutflowChart(flow cutflow.Flow) *charts.Bar {
	x := []string{"initial"}
	y := []opts.BarData{{Value: flow.Initial.SumW}}
	for _, s := range flow.Steps {
		x = append(x, s.Cut)
		y = append(y, opts.BarData{Value: s.Pass.SumW})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{
			Title:    flow.Region,
			Subtitle: fmt.Sprintf("initial=%.4g final=%.4g", flow.Initial.SumW, flow.Final().SumW),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).
		AddSeries("weighted events", y,
			charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
		)
	return bar
}

func histogramChart(m *cutflow.Manager, name string) *charts.Bar {
	h := m.Histogram(name)
	region, _ := m.HistogramRegion(name)

	x := make([]string, 0, len(h.Binning.Bins))
	y := make([]opts.BarData, 0, len(h.Binning.Bins))
	for _, b := range h.Binning.Bins {
		x = append(x, fmt.Sprintf("%.3g", b.XMid()))
		y = append(y, opts.BarData{Value: b.SumW()})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "360px"}),
		charts.WithTitleOpts(opts.Title{Title: name, Subtitle: region}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: axisLabels[name], NameLocation: "middle", NameGap: 25}),
	)
	bar.SetXAxis(x).AddSeries(name, y)
	return bar
}
