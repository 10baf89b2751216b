package cffilter

import "fmt"

// CalibrationSet holds the manual Bethe-Bloch curves for one run. An
// empty curve leaves the precomputed deviation scores untouched.
type CalibrationSet struct {
	Proton       []float64
	AntiProton   []float64
	Deuteron     []float64
	AntiDeuteron []float64
	Pion         []float64
	AntiPion     []float64
	Electron     []float64
	AntiElectron []float64
}

// CalibrationCache keeps the curve set of the current run and refetches
// all of it when the run number changes.
type CalibrationCache struct {
	store   CalibrationStore
	lastRun uint32
	set     CalibrationSet
	primed  bool
}

func NewCalibrationCache(store CalibrationStore) *CalibrationCache {
	return &CalibrationCache{store: store}
}

// GetOrRefresh returns the curves for the given run. Only the curves
// enabled by the manual PID flags are fetched; the electron pair rides
// on the pion flag. A fetch error leaves the cache unchanged.
func (cache *CalibrationCache) GetOrRefresh(runNumber uint32, timestampMS int64) (CalibrationSet, error) {
	if cache.primed && runNumber == cache.lastRun {
		return cache.set, nil
	}

	configuration := GetConfiguration()
	var set CalibrationSet
	var err error

	fetch := func(path string) ([]float64, error) {
		curve, fetchErr := cache.store.GetCurve(path, timestampMS)
		if fetchErr != nil {
			return nil, fetchErr
		}
		if curve == nil {
			message := fmt.Sprintf("Calibration %s was not found for run %d, using default PID values", path, runNumber)
			logger.Info(message, "ccdb")
		}
		return curve, nil
	}

	if configuration.UseManualPIDProton || configuration.UseManualPIDDaughterProton {
		if set.Proton, err = fetch(configuration.PIDPathProton); err != nil {
			return CalibrationSet{}, err
		}
		if set.AntiProton, err = fetch(configuration.PIDPathAntiProton); err != nil {
			return CalibrationSet{}, err
		}
	}
	if configuration.UseManualPIDDeuteron {
		if set.Deuteron, err = fetch(configuration.PIDPathDeuteron); err != nil {
			return CalibrationSet{}, err
		}
		if set.AntiDeuteron, err = fetch(configuration.PIDPathAntiDeuteron); err != nil {
			return CalibrationSet{}, err
		}
	}
	if configuration.UseManualPIDPion || configuration.UseManualPIDDaughterPion {
		if set.Pion, err = fetch(configuration.PIDPathPion); err != nil {
			return CalibrationSet{}, err
		}
		if set.AntiPion, err = fetch(configuration.PIDPathAntiPion); err != nil {
			return CalibrationSet{}, err
		}
	}
	if configuration.UseManualPIDPion {
		if set.Electron, err = fetch(configuration.PIDPathElectron); err != nil {
			return CalibrationSet{}, err
		}
		if set.AntiElectron, err = fetch(configuration.PIDPathAntiElectron); err != nil {
			return CalibrationSet{}, err
		}
	}

	cache.set = set
	cache.lastRun = runNumber
	cache.primed = true
	return set, nil
}
