package cutflow

import (
	"fmt"
	"io"
	"text/tabwriter"
)

// WriteReport writes the cutflow of every region as aligned text. Each
// row carries the raw count, the weighted count with its error, and the
// efficiency relative to the previous row and to the initial count.
func (m *Manager) WriteReport(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	for i, name := range m.Regions() {
		f, _ := m.Cutflow(name)
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "# %s\t\t\t\t\t\t\n", f.Region)
		fmt.Fprintln(tw, "cut\tevents\tsumw\terr\teff\tcumul\t")
		writeRow(tw, "initial", f.Initial, f.Initial, f.Initial)
		prev := f.Initial
		for _, s := range f.Steps {
			writeRow(tw, s.Cut, s.Pass, prev, f.Initial)
			prev = s.Pass
		}
	}
	return tw.Flush()
}

func writeRow(w io.Writer, label string, c, prev, initial Counter) {
	fmt.Fprintf(w, "%s\t%d\t%.4g\t%.2g\t%.4f\t%.4f\t\n",
		label, c.Events, c.SumW, c.Error(), c.Efficiency(prev), c.Efficiency(initial))
}
