package cffilter

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// fakeStore serves curves from a map and records the requested paths.
type fakeStore struct {
	curves map[string][]float64
	fail   map[string]error
	calls  []string
}

func (s *fakeStore) GetCurve(path string, timestampMS int64) ([]float64, error) {
	s.calls = append(s.calls, path)
	if err, ok := s.fail[path]; ok {
		return nil, err
	}
	return s.curves[path], nil
}

func testCurve(resolution float64) []float64 {
	return []float64{0.05, 15, 1e-8, 2.3, 4.5, resolution}
}

func TestCalibrationCacheFetchesOnlyEnabledCurves(t *testing.T) {
	config := DefaultConfiguration()
	config.UseManualPIDProton = true
	SetConfiguration(config)
	defer SetConfiguration(DefaultConfiguration())

	store := &fakeStore{curves: map[string][]float64{
		config.PIDPathProton:     testCurve(0.07),
		config.PIDPathAntiProton: testCurve(0.08),
	}}
	cache := NewCalibrationCache(store)

	set, err := cache.GetOrRefresh(100, 1500)
	if err != nil {
		t.Fatalf("GetOrRefresh failed: %v", err)
	}

	wantCalls := []string{config.PIDPathProton, config.PIDPathAntiProton}
	if diff := cmp.Diff(wantCalls, store.calls); diff != "" {
		t.Errorf("fetched paths mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(testCurve(0.07), set.Proton); diff != "" {
		t.Errorf("proton curve mismatch (-want +got):\n%s", diff)
	}
	if set.Deuteron != nil || set.Pion != nil || set.Electron != nil {
		t.Error("curves without a manual PID flag must stay empty")
	}
}

func TestCalibrationCacheRefetchesOnRunChange(t *testing.T) {
	config := DefaultConfiguration()
	config.UseManualPIDProton = true
	SetConfiguration(config)
	defer SetConfiguration(DefaultConfiguration())

	store := &fakeStore{curves: map[string][]float64{
		config.PIDPathProton:     testCurve(0.07),
		config.PIDPathAntiProton: testCurve(0.08),
	}}
	cache := NewCalibrationCache(store)

	if _, err := cache.GetOrRefresh(100, 1500); err != nil {
		t.Fatalf("GetOrRefresh failed: %v", err)
	}
	if _, err := cache.GetOrRefresh(100, 9999); err != nil {
		t.Fatalf("GetOrRefresh failed: %v", err)
	}
	if len(store.calls) != 2 {
		t.Errorf("same run triggered %d fetches, want 2", len(store.calls))
	}

	if _, err := cache.GetOrRefresh(101, 9999); err != nil {
		t.Fatalf("GetOrRefresh failed: %v", err)
	}
	if len(store.calls) != 4 {
		t.Errorf("run change triggered %d fetches in total, want 4", len(store.calls))
	}
}

func TestCalibrationCacheElectronRidesOnPionFlag(t *testing.T) {
	config := DefaultConfiguration()
	config.UseManualPIDPion = true
	SetConfiguration(config)
	defer SetConfiguration(DefaultConfiguration())

	store := &fakeStore{curves: map[string][]float64{
		config.PIDPathPion:         testCurve(0.07),
		config.PIDPathAntiPion:     testCurve(0.07),
		config.PIDPathElectron:     testCurve(0.09),
		config.PIDPathAntiElectron: testCurve(0.09),
	}}
	cache := NewCalibrationCache(store)

	set, err := cache.GetOrRefresh(100, 1500)
	if err != nil {
		t.Fatalf("GetOrRefresh failed: %v", err)
	}
	wantCalls := []string{
		config.PIDPathPion, config.PIDPathAntiPion,
		config.PIDPathElectron, config.PIDPathAntiElectron,
	}
	if diff := cmp.Diff(wantCalls, store.calls); diff != "" {
		t.Errorf("fetched paths mismatch (-want +got):\n%s", diff)
	}
	if set.Electron == nil || set.AntiElectron == nil {
		t.Error("electron curves must ride on the pion flag")
	}
}

func TestCalibrationCacheElectronFlagAloneFetchesNothing(t *testing.T) {
	config := DefaultConfiguration()
	config.UseManualPIDElectron = true
	SetConfiguration(config)
	defer SetConfiguration(DefaultConfiguration())

	store := &fakeStore{curves: map[string][]float64{
		config.PIDPathElectron: testCurve(0.09),
	}}
	cache := NewCalibrationCache(store)

	set, err := cache.GetOrRefresh(100, 1500)
	if err != nil {
		t.Fatalf("GetOrRefresh failed: %v", err)
	}
	if len(store.calls) != 0 {
		t.Errorf("electron flag alone fetched %d curves, want 0", len(store.calls))
	}
	if set.Electron != nil {
		t.Error("electron curve must stay empty without the pion flag")
	}
}

func TestCalibrationCacheMissingCurveLogsAndContinues(t *testing.T) {
	config := DefaultConfiguration()
	config.UseManualPIDProton = true
	SetConfiguration(config)
	defer SetConfiguration(DefaultConfiguration())

	store := &fakeStore{curves: map[string][]float64{
		config.PIDPathProton: testCurve(0.07),
		// The anti proton path is absent on purpose.
	}}
	cache := NewCalibrationCache(store)

	testLog.reset()
	set, err := cache.GetOrRefresh(100, 1500)
	if err != nil {
		t.Fatalf("GetOrRefresh failed: %v", err)
	}
	if set.Proton == nil {
		t.Error("present curve must be returned")
	}
	if set.AntiProton != nil {
		t.Error("absent curve must stay empty")
	}

	found := false
	for _, message := range testLog.infos {
		if strings.Contains(message, "using default PID values") {
			found = true
		}
	}
	if !found {
		t.Error("missing curve must be reported")
	}
}

func TestCalibrationCacheKeepsCacheOnError(t *testing.T) {
	config := DefaultConfiguration()
	config.UseManualPIDProton = true
	SetConfiguration(config)
	defer SetConfiguration(DefaultConfiguration())

	store := &fakeStore{curves: map[string][]float64{
		config.PIDPathProton:     testCurve(0.07),
		config.PIDPathAntiProton: testCurve(0.08),
	}}
	cache := NewCalibrationCache(store)

	if _, err := cache.GetOrRefresh(100, 1500); err != nil {
		t.Fatalf("priming the cache failed: %v", err)
	}

	store.fail = map[string]error{config.PIDPathAntiProton: errors.New("connection lost")}
	if _, err := cache.GetOrRefresh(101, 2500); err == nil {
		t.Fatal("expected the fetch error to propagate")
	}

	// The failed refresh must not dislodge the previous run.
	callsBefore := len(store.calls)
	set, err := cache.GetOrRefresh(100, 1500)
	if err != nil {
		t.Fatalf("GetOrRefresh failed: %v", err)
	}
	if len(store.calls) != callsBefore {
		t.Error("cached run must be served without new fetches")
	}
	if set.Proton == nil {
		t.Error("cached curves must survive a failed refresh")
	}

	// Once the store recovers, the new run loads.
	store.fail = nil
	if _, err := cache.GetOrRefresh(101, 2500); err != nil {
		t.Fatalf("retry after recovery failed: %v", err)
	}
}
