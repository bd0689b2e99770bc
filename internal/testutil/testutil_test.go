package testutil

import (
	"io"
	"os"
	"testing"

	"github.com/banshee-data/trilepton/internal/event"
)

func TestAssertNoError(t *testing.T) {
	t.Parallel()
	AssertNoError(t, nil)
}

func TestAssertError(t *testing.T) {
	t.Parallel()
	AssertError(t, io.EOF)
}

func TestFixturesAreIndependent(t *testing.T) {
	t.Parallel()

	a := LowSignal()
	a.Muons[0].Charge = -1
	if b := LowSignal(); b.Muons[0].Charge != 1 {
		t.Fatal("fixtures must not share state")
	}

	isr := ISRSignal()
	if len(isr.Jets) != 1 || len(LowSignal().Jets) != 0 {
		t.Errorf("unexpected jets: isr=%d", len(isr.Jets))
	}

	soft := SoftLeadingISRSignal()
	if got := soft.Muons[0].Pt(); got >= 60 {
		t.Errorf("leading muon pT = %v, want below 60", got)
	}

	ss := SameSignLeptons()
	for _, l := range append(ss.Muons, ss.Electrons...) {
		if l.Charge != 1 {
			t.Errorf("expected all positive charges, got %d", l.Charge)
		}
	}
}

func TestWriteEvents(t *testing.T) {
	path := WriteEvents(t, []*event.Event{
		{Weight: Weight(0.5), Rec: LowSignal()},
		{Rec: nil},
	})

	f, err := os.Open(path)
	AssertNoError(t, err)
	defer f.Close()

	d := event.NewDecoder(f)
	ev, err := d.Next()
	AssertNoError(t, err)
	if ev.Weight == nil || *ev.Weight != 0.5 {
		t.Errorf("unexpected weight %v", ev.Weight)
	}
	if ev.Rec == nil || len(ev.Rec.Muons) != 2 {
		t.Fatalf("unexpected reconstruction %+v", ev.Rec)
	}

	ev, err = d.Next()
	AssertNoError(t, err)
	if ev.Rec != nil {
		t.Errorf("expected no reconstruction, got %+v", ev.Rec)
	}

	if _, err := d.Next(); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}
