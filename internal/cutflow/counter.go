package cutflow

import "math"

// Counter accumulates raw and weighted event counts.
type Counter struct {
	Events int64
	SumW   float64
	SumW2  float64
}

func (c *Counter) add(w float64) {
	c.Events++
	c.SumW += w
	c.SumW2 += w * w
}

func (c *Counter) merge(o Counter) {
	c.Events += o.Events
	c.SumW += o.SumW
	c.SumW2 += o.SumW2
}

// Error is the statistical uncertainty on SumW.
func (c Counter) Error() float64 { return math.Sqrt(c.SumW2) }

// Efficiency returns c.SumW/ref.SumW, or 0 when ref is empty.
func (c Counter) Efficiency(ref Counter) float64 {
	if ref.SumW == 0 {
		return 0
	}
	return c.SumW / ref.SumW
}
