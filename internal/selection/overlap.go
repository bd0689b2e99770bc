package selection

import (
	"github.com/banshee-data/trilepton/internal/event"
)

// Resolve drops every primary object lying closer than radius(pT) to any
// reference object. The survivors keep their relative order.
func Resolve[T, R event.Object](primary []T, reference []R, radius RadiusFunc) []T {
	out := make([]T, 0, len(primary))
	for _, p := range primary {
		if !overlaps(p, reference, radius(p.Pt())) {
			out = append(out, p)
		}
	}
	return out
}

func overlaps[T, R event.Object](p T, reference []R, dr float64) bool {
	for _, r := range reference {
		if event.DeltaR(r, p) < dr {
			return true
		}
	}
	return false
}
