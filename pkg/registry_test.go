package cffilter

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestHistogramRegistryFillAndEntries(t *testing.T) {
	registry := NewHistogramRegistry()
	registry.Book1D("qa/pt", 100, 0, 10)
	registry.Book2D("qa/dedx", 10, 0, 10, 10, 0, 100)

	registry.Fill("qa/pt", 1.0)
	registry.Fill("qa/pt", 2.0)
	registry.Fill2D("qa/dedx", 1.0, 50)

	if got := registry.Entries("qa/pt"); got != 2 {
		t.Errorf("Entries(qa/pt) = %d, want 2", got)
	}
	if got := registry.Entries("qa/dedx"); got != 1 {
		t.Errorf("Entries(qa/dedx) = %d, want 1", got)
	}
	if got := registry.Entries("qa/unknown"); got != -1 {
		t.Errorf("Entries(qa/unknown) = %d, want -1", got)
	}
}

func TestHistogramRegistryWarnsOnce(t *testing.T) {
	registry := NewHistogramRegistry()

	testLog.reset()
	registry.Fill("ghost", 1)
	registry.Fill("ghost", 2)
	registry.Fill2D("ghost", 1, 2)
	if len(testLog.warns) != 1 {
		t.Errorf("unknown histogram warned %d times, want 1", len(testLog.warns))
	}

	registry.Fill("phantom", 1)
	if len(testLog.warns) != 2 {
		t.Errorf("second unknown histogram must warn again, got %d warnings", len(testLog.warns))
	}
}

func TestHistogramRegistrySummaries(t *testing.T) {
	registry := NewHistogramRegistry()
	registry.Book1D("pt", 1000, 0, 10)
	registry.Book2D("dedx", 10, 0, 10, 10, 0, 100)
	registry.Book1D("empty", 10, 0, 1)

	for i := 0; i < 3; i++ {
		registry.Fill("pt", 2.5)
	}
	registry.Fill("pt", 7.5)

	registry.Fill2D("dedx", 1, 10)
	registry.Fill2D("dedx", 2, 20)
	registry.Fill2D("dedx", 3, 30)

	summaries := registry.Summaries()
	if len(summaries) != 3 {
		t.Fatalf("got %d summaries, want 3", len(summaries))
	}
	for i, name := range []string{"dedx", "empty", "pt"} {
		if summaries[i].Name != name {
			t.Fatalf("summaries not sorted by name: %v", summaries)
		}
	}

	dedx := summaries[0]
	if dedx.Entries != 3 {
		t.Errorf("dedx entries = %d, want 3", dedx.Entries)
	}
	if math.Abs(dedx.Mean-2) > 1e-9 {
		t.Errorf("dedx mean = %g, want 2", dedx.Mean)
	}
	if math.Abs(dedx.StdDev-1) > 1e-9 {
		t.Errorf("dedx stddev = %g, want 1", dedx.StdDev)
	}

	empty := summaries[1]
	if empty.Entries != 0 || empty.Mean != 0 || empty.StdDev != 0 {
		t.Errorf("empty summary = %+v", empty)
	}

	pt := summaries[2]
	if pt.Entries != 4 {
		t.Errorf("pt entries = %d, want 4", pt.Entries)
	}
	// The mean comes from the bin contents, so it is only known to a
	// bin width.
	if math.Abs(pt.Mean-3.75) > 0.02 {
		t.Errorf("pt mean = %g, want about 3.75", pt.Mean)
	}
	if math.Abs(pt.StdDev-2.5) > 0.02 {
		t.Errorf("pt stddev = %g, want about 2.5", pt.StdDev)
	}
}

func TestHistogramRegistrySavePlots(t *testing.T) {
	registry := NewHistogramRegistry()
	registry.Book1D("EventCuts/Zvtx", 100, -15, 15)
	registry.Fill("EventCuts/Zvtx", 2.5)

	plotDir := t.TempDir()
	if err := registry.SavePlots(plotDir); err != nil {
		t.Fatalf("SavePlots failed: %v", err)
	}
	if _, err := os.Stat(filepath.Join(plotDir, "EventCuts_Zvtx.png")); err != nil {
		t.Errorf("expected a plot file with slashes mangled: %v", err)
	}
}
