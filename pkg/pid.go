package cffilter

import "math"

// IsSelectedTrackPID classifies a quality-selected track as the given
// species. tpcScores holds the per-species TPC deviation scores
// indexed by ParticleSpecies, already recalibrated where manual curves
// apply. Below the momentum threshold only the TPC window is checked;
// above it the average-corrected TPC and TOF scores are combined in
// quadrature. With rejection set, an accepted candidate is vetoed when
// any contaminant window contains the matching score.
func (f *Filter) IsSelectedTrackPID(track *Track, species ParticleSpecies, tpcScores [2]float64, rejection bool) bool {
	var tpcScore, tofScore, momentum float64
	switch species {
	case Proton:
		tpcScore = tpcScores[Proton]
		tofScore = track.NSigmaTOFPr
		momentum = track.TpcInnerParam
	case Deuteron:
		tpcScore = tpcScores[Deuteron]
		tofScore = track.NSigmaTOFDe
		if f.config.DeuteronThresPV {
			momentum = track.P
		} else {
			momentum = track.TpcInnerParam
		}
	default:
		message := &ErrNoPIDForSpecies{Species: species}
		logger.Error(message.Error())
		panic(message)
	}

	cuts, _ := f.cuts.Track.Species(species)
	window := cuts.Part
	offsets := cuts.AvgPart
	if track.Sign < 0 {
		window = cuts.Anti
		offsets = cuts.AvgAnti
	}

	isSelected := false
	if momentum <= cuts.PThreshold {
		isSelected = tpcScore > window.TPCMin && tpcScore < window.TPCMax
	} else {
		combined := math.Hypot(tpcScore-offsets.TPC, tofScore-offsets.TOF)
		isSelected = combined < window.TPCTOFMax
	}
	if !isSelected || !rejection {
		return isSelected
	}

	nSigmaPi := track.NSigmaTPCPi
	nSigmaEl := track.NSigmaTPCEl
	if f.config.UseManualPIDPion {
		massInverse := 1 / MassPion
		if track.Sign > 0 && len(f.calib.Pion) == NCurveParams {
			nSigmaPi = RecalibratedScore(track.TpcSignal, track.TpcInnerParam, massInverse, f.calib.Pion)
		}
		if track.Sign < 0 && len(f.calib.AntiPion) == NCurveParams {
			nSigmaPi = RecalibratedScore(track.TpcSignal, track.TpcInnerParam, massInverse, f.calib.AntiPion)
		}
	}
	if f.config.UseManualPIDElectron {
		// The electron curves are swapped with respect to the track
		// sign: the particle curve describes negative tracks.
		massInverse := 1 / MassElectron
		if track.Sign < 0 && len(f.calib.Electron) == NCurveParams {
			nSigmaEl = RecalibratedScore(track.TpcSignal, track.TpcInnerParam, massInverse, f.calib.Electron)
		}
		if track.Sign > 0 && len(f.calib.AntiElectron) == NCurveParams {
			nSigmaEl = RecalibratedScore(track.TpcSignal, track.TpcInnerParam, massInverse, f.calib.AntiElectron)
		}
	}

	if f.cuts.Rejection[RejectProton].Contains(tpcScores[Proton]) {
		return false
	}
	if f.cuts.Rejection[RejectPion].Contains(nSigmaPi) {
		return false
	}
	if f.cuts.Rejection[RejectElectron].Contains(nSigmaEl) {
		return false
	}
	return true
}
