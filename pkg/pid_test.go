package cffilter

import (
	"strings"
	"testing"
)

func newTestFilter(t *testing.T, config Configuration, store CalibrationStore) *Filter {
	t.Helper()
	SetConfiguration(config)
	t.Cleanup(func() { SetConfiguration(DefaultConfiguration()) })

	filter, err := NewFilter(store, nil, NewHistogramRegistry())
	if err != nil {
		t.Fatalf("NewFilter failed: %v", err)
	}
	return filter
}

func TestIsSelectedTrackPIDLowMomentum(t *testing.T) {
	filter := newTestFilter(t, DefaultConfiguration(), nil)

	track := testTrack()
	track.TpcInnerParam = 0.5
	// A hopeless TOF score must not matter below the threshold.
	track.NSigmaTOFPr = 50

	cases := []struct {
		score float64
		want  bool
	}{
		{0, true},
		{5.9, true},
		{-5.9, true},
		{6.0, false},
		{-6.0, false},
		{7, false},
	}
	for _, tc := range cases {
		scores := [2]float64{tc.score, 0}
		if got := filter.IsSelectedTrackPID(&track, Proton, scores, false); got != tc.want {
			t.Errorf("TPC score %g selected = %v, want %v", tc.score, got, tc.want)
		}
	}
}

func TestIsSelectedTrackPIDThresholdBoundary(t *testing.T) {
	filter := newTestFilter(t, DefaultConfiguration(), nil)

	track := testTrack()
	track.NSigmaTOFPr = 50
	scores := [2]float64{0, 0}

	track.TpcInnerParam = 0.75
	if !filter.IsSelectedTrackPID(&track, Proton, scores, false) {
		t.Error("momentum on the threshold must still use the TPC-only band")
	}

	track.TpcInnerParam = 0.76
	if filter.IsSelectedTrackPID(&track, Proton, scores, false) {
		t.Error("above the threshold the combined score must reject")
	}
}

func TestIsSelectedTrackPIDCombined(t *testing.T) {
	filter := newTestFilter(t, DefaultConfiguration(), nil)

	track := testTrack()
	track.TpcInnerParam = 2.0

	track.NSigmaTOFPr = 4
	if !filter.IsSelectedTrackPID(&track, Proton, [2]float64{3, 0}, false) {
		t.Error("combined score 5 must pass a limit of 6")
	}

	track.NSigmaTOFPr = 4.8
	if filter.IsSelectedTrackPID(&track, Proton, [2]float64{3.6, 0}, false) {
		t.Error("combined score exactly on the limit must be rejected")
	}
}

func TestIsSelectedTrackPIDAverageOffsets(t *testing.T) {
	config := DefaultConfiguration()
	config.TPCTOFAvg["proton"] = []float64{3, 4}
	filter := newTestFilter(t, config, nil)

	track := testTrack()
	track.TpcInnerParam = 2.0
	track.NSigmaTOFPr = 4

	// Without the offsets this track sits at a combined score of 8.9.
	if !filter.IsSelectedTrackPID(&track, Proton, [2]float64{8, 0}, false) {
		t.Error("the average corrections must recenter the combined score")
	}

	plain := newTestFilter(t, DefaultConfiguration(), nil)
	if plain.IsSelectedTrackPID(&track, Proton, [2]float64{8, 0}, false) {
		t.Error("without offsets the same track must fail")
	}
}

func TestIsSelectedTrackPIDAntiWindows(t *testing.T) {
	config := DefaultConfiguration()
	config.PIDCutsAnti["proton"] = []float64{-1, 1, -6, 6, 6}
	filter := newTestFilter(t, config, nil)

	track := testTrack()
	track.TpcInnerParam = 0.5
	scores := [2]float64{2, 0}

	track.Sign = 1
	if !filter.IsSelectedTrackPID(&track, Proton, scores, false) {
		t.Error("positive track must use the particle window")
	}
	track.Sign = -1
	if filter.IsSelectedTrackPID(&track, Proton, scores, false) {
		t.Error("negative track must use the narrower anti window")
	}
}

func TestIsSelectedTrackPIDDeuteronMomentumSource(t *testing.T) {
	config := DefaultConfiguration()
	config.PtCuts["deuteron"] = []float64{0.35, 1.6, 1.2}
	config.PIDCuts["deuteron"] = []float64{-6, 6, -6, 6, 6}

	track := testTrack()
	track.P = 1.0
	track.TpcInnerParam = 1.5
	track.NSigmaTOFDe = 50
	scores := [2]float64{5, 0}

	filter := newTestFilter(t, config, nil)
	if filter.IsSelectedTrackPID(&track, Deuteron, scores, false) {
		t.Error("with the TPC momentum above the threshold the TOF must veto")
	}

	config.DeuteronThresPV = true
	filter = newTestFilter(t, config, nil)
	if !filter.IsSelectedTrackPID(&track, Deuteron, scores, false) {
		t.Error("with the vertex momentum below the threshold the TPC band must decide")
	}
}

func TestIsSelectedTrackPIDRejectionVeto(t *testing.T) {
	filter := newTestFilter(t, DefaultConfiguration(), nil)

	clean := testTrack()
	clean.TpcInnerParam = 0.5
	clean.NSigmaTPCPi = 5
	clean.NSigmaTPCEl = 5
	scores := [2]float64{5, 0}

	if !filter.IsSelectedTrackPID(&clean, Deuteron, scores, true) {
		t.Fatal("candidate clear of all contaminants must survive")
	}
	if !filter.IsSelectedTrackPID(&clean, Deuteron, [2]float64{1, 0}, false) {
		t.Error("without rejection the contaminant windows must not fire")
	}

	if filter.IsSelectedTrackPID(&clean, Deuteron, [2]float64{1, 0}, true) {
		t.Error("proton score inside the window must veto")
	}

	pion := clean
	pion.NSigmaTPCPi = 0
	if filter.IsSelectedTrackPID(&pion, Deuteron, scores, true) {
		t.Error("pion score inside the window must veto")
	}

	electron := clean
	electron.NSigmaTPCEl = -1.5
	if filter.IsSelectedTrackPID(&electron, Deuteron, scores, true) {
		t.Error("electron score inside the window must veto")
	}

	boundary := clean
	boundary.NSigmaTPCPi = 2.0
	if !filter.IsSelectedTrackPID(&boundary, Deuteron, scores, true) {
		t.Error("scores on the window edge must not veto")
	}
}

func TestIsSelectedTrackPIDRejectionRecomputesPion(t *testing.T) {
	config := DefaultConfiguration()
	config.UseManualPIDPion = true
	filter := newTestFilter(t, config, &fakeStore{})

	curve := testCurve(0.08)
	filter.calib.Pion = curve

	track := testTrack()
	track.TpcInnerParam = 0.5
	track.NSigmaTPCPi = 50
	track.NSigmaTPCEl = 5
	// Put the raw signal exactly on the pion curve, so the recomputed
	// score lands in the middle of the rejection window.
	track.TpcSignal = BetheBlochAleph(track.TpcInnerParam/MassPion, curve[0], curve[1], curve[2], curve[3], curve[4])
	scores := [2]float64{5, 0}

	if filter.IsSelectedTrackPID(&track, Deuteron, scores, true) {
		t.Error("recomputed pion score must veto despite the stale stored score")
	}

	// A negative track reads the anti pion curve, which is not loaded.
	negative := track
	negative.Sign = -1
	if !filter.IsSelectedTrackPID(&negative, Deuteron, scores, true) {
		t.Error("negative track must fall back to the stored score")
	}

	// A truncated curve is unusable and leaves the stored score alone.
	filter.calib.Pion = curve[:5]
	if !filter.IsSelectedTrackPID(&track, Deuteron, scores, true) {
		t.Error("short curve must fall back to the stored score")
	}

	// Without the flag the loaded curve is ignored.
	plain := newTestFilter(t, DefaultConfiguration(), nil)
	plain.calib.Pion = curve
	if !plain.IsSelectedTrackPID(&track, Deuteron, scores, true) {
		t.Error("manual pion PID disabled must keep the stored score")
	}
}

func TestIsSelectedTrackPIDElectronCurvesAreSwapped(t *testing.T) {
	config := DefaultConfiguration()
	config.UseManualPIDElectron = true
	filter := newTestFilter(t, config, &fakeStore{})

	curve := testCurve(0.08)
	filter.calib.Electron = curve

	track := testTrack()
	track.TpcInnerParam = 0.5
	track.NSigmaTPCPi = 5
	track.NSigmaTPCEl = 50
	track.TpcSignal = BetheBlochAleph(track.TpcInnerParam/MassElectron, curve[0], curve[1], curve[2], curve[3], curve[4])
	scores := [2]float64{5, 0}

	// The particle-side electron curve describes negative tracks.
	track.Sign = -1
	if filter.IsSelectedTrackPID(&track, Deuteron, scores, true) {
		t.Error("negative track must be vetoed through the electron curve")
	}

	track.Sign = 1
	if !filter.IsSelectedTrackPID(&track, Deuteron, scores, true) {
		t.Error("positive track must read the missing anti electron curve and fall back")
	}

	filter.calib.AntiElectron = curve
	if filter.IsSelectedTrackPID(&track, Deuteron, scores, true) {
		t.Error("positive track must be vetoed once the anti electron curve is loaded")
	}
}

func TestIsSelectedTrackPIDUnknownSpeciesPanics(t *testing.T) {
	filter := newTestFilter(t, DefaultConfiguration(), nil)
	track := testTrack()

	testLog.reset()
	defer func() {
		recovered := recover()
		err, ok := recovered.(*ErrNoPIDForSpecies)
		if !ok {
			t.Fatalf("panic value = %v, want *ErrNoPIDForSpecies", recovered)
		}
		if err.Species != Lambda {
			t.Errorf("panic names species %v, want lambda", err.Species)
		}
		if len(testLog.errors) == 0 || !strings.Contains(testLog.errors[0], "no PID selection") {
			t.Error("the PID request must be logged before panicking")
		}
	}()
	filter.IsSelectedTrackPID(&track, Lambda, [2]float64{0, 0}, false)
	t.Fatal("expected a panic for a species without PID")
}
