package cffilter

import (
	"fmt"
	"math"
)

// Filter runs the event and track selection and hands the surviving
// candidates to the table writer. One Filter processes one input file.
type Filter struct {
	config   Configuration
	cuts     SelectionCuts
	cache    *CalibrationCache
	calib    CalibrationSet
	registry *HistogramRegistry
	writer   TableWriter
}

// NewFilter builds the cut tables from the global configuration and
// books the QA histograms. The calibration store may be nil when no
// manual PID flag is set.
func NewFilter(store CalibrationStore, writer TableWriter, registry *HistogramRegistry) (*Filter, error) {
	config := GetConfiguration()
	if !config.IsRun3 {
		message := fmt.Errorf("run 2 data processing is not implemented")
		logger.Error(message.Error())
		return nil, message
	}
	cuts, err := BuildSelectionCuts(config)
	if err != nil {
		logger.Error(err.Error())
		return nil, err
	}

	filter := &Filter{
		config:   config,
		cuts:     cuts,
		registry: registry,
		writer:   writer,
	}
	if manualPIDEnabled(config) {
		if store == nil {
			message := fmt.Errorf("manual PID requested but no calibration database connected")
			logger.Error(message.Error())
			return nil, message
		}
		filter.cache = NewCalibrationCache(store)
	}
	bookFilterHistograms(registry)
	return filter, nil
}

func manualPIDEnabled(config Configuration) bool {
	return config.UseManualPIDProton || config.UseManualPIDDeuteron ||
		config.UseManualPIDPion || config.UseManualPIDElectron ||
		config.UseManualPIDDaughterPion || config.UseManualPIDDaughterProton
}

func bookFilterHistograms(registry *HistogramRegistry) {
	registry.Book1D("EventCuts/MultiplicityBefore", 1000, 0, 1000)
	registry.Book1D("EventCuts/MultiplicityAfter", 1000, 0, 1000)
	registry.Book1D("EventCuts/ZvtxBefore", 1000, -15, 15)
	registry.Book1D("EventCuts/ZvtxAfter", 1000, -15, 15)

	for _, side := range []string{"_Pos", "_Neg"} {
		registry.Book2D("TrackCuts/TPCSignal"+side, 100, 0, 10, 500, 0, 500)
		registry.Book2D("TrackCuts/TPCSignalAllCuts"+side, 100, 0, 10, 500, 0, 500)
		registry.Book2D("TrackCuts/NSigmaTPCProton"+side, 100, 0, 10, 100, -5, 5)
		registry.Book2D("TrackCuts/NSigmaTPCProtonAllCuts"+side, 100, 0, 10, 100, -5, 5)
		registry.Book2D("TrackCuts/NSigmaTPCDeuteron"+side, 100, 0, 10, 100, -5, 5)
		registry.Book2D("TrackCuts/NSigmaTPCDeuteronAllCuts"+side, 100, 0, 10, 100, -5, 5)
	}

	for _, prefix := range []string{"Proton", "AntiProton", "Deuteron", "AntiDeuteron"} {
		registry.Book1D(prefix+"/P", 100, 0, 10)
		registry.Book1D(prefix+"/PTPC", 100, 0, 10)
		registry.Book1D(prefix+"/Pt", 100, 0, 10)
		registry.Book1D(prefix+"/Eta", 200, -1.5, 1.5)
		registry.Book1D(prefix+"/Phi", 360, 0, 2*math.Pi)
		registry.Book1D(prefix+"/DCAxy", 500, -0.5, 0.5)
		registry.Book1D(prefix+"/DCAz", 500, -0.5, 0.5)
		registry.Book1D(prefix+"/TPCFound", 163, -0.5, 162.5)
		registry.Book1D(prefix+"/TPCCRows", 163, -0.5, 162.5)
		registry.Book1D(prefix+"/TPCFindable", 120, 0, 1.2)
		registry.Book1D(prefix+"/TPCShared", 163, -0.5, 162.5)
		registry.Book2D(prefix+"/NSigmaTPC", 100, 0, 10, 100, -5, 5)
		registry.Book2D(prefix+"/NSigmaTOF", 100, 0, 10, 100, -5, 5)
		registry.Book2D(prefix+"/NSigmaTPCTOF", 100, 0, 10, 100, 0, 10)
	}
}

// ProcessEvent runs the selection on one decoded event. The
// calibration curves are refreshed on run changes before any track is
// classified.
func (f *Filter) ProcessEvent(event *Event) error {
	if f.cache != nil {
		set, err := f.cache.GetOrRefresh(event.RunNumber, event.TimestampMS)
		if err != nil {
			return err
		}
		f.calib = set
	}

	collision := &event.Collision
	f.registry.Fill("EventCuts/MultiplicityBefore", float64(collision.MultNTracksPV))
	f.registry.Fill("EventCuts/ZvtxBefore", collision.PosZ)

	if !f.cuts.Event.IsSelectedEvent(collision) {
		return nil
	}
	f.registry.Fill("EventCuts/MultiplicityAfter", float64(collision.MultNTracksPV))
	f.registry.Fill("EventCuts/ZvtxAfter", collision.PosZ)

	collisionRef := -1
	if f.writer != nil {
		collisionRef = f.writer.WriteCollision(event)
	}

	for i := range event.Tracks {
		f.processTrack(&event.Tracks[i], collisionRef)
	}
	return nil
}

func (f *Filter) processTrack(track *Track, collisionRef int) {
	scores := [2]float64{track.NSigmaTPCPr, track.NSigmaTPCDe}
	if f.config.UseManualPIDProton {
		if track.Sign > 0 && len(f.calib.Proton) == NCurveParams {
			scores[Proton] = RecalibratedScore(track.TpcSignal, track.TpcInnerParam, 1/MassProton, f.calib.Proton)
		}
		if track.Sign < 0 && len(f.calib.AntiProton) == NCurveParams {
			scores[Proton] = RecalibratedScore(track.TpcSignal, track.TpcInnerParam, 1/MassProton, f.calib.AntiProton)
		}
	}
	if f.config.UseManualPIDDeuteron {
		if track.Sign > 0 && len(f.calib.Deuteron) == NCurveParams {
			scores[Deuteron] = RecalibratedScore(track.TpcSignal, track.TpcInnerParam, 1/MassDeuteron, f.calib.Deuteron)
		}
		if track.Sign < 0 && len(f.calib.AntiDeuteron) == NCurveParams {
			scores[Deuteron] = RecalibratedScore(track.TpcSignal, track.TpcInnerParam, 1/MassDeuteron, f.calib.AntiDeuteron)
		}
	}

	side := "_Pos"
	if track.Sign < 0 {
		side = "_Neg"
	}
	f.registry.Fill2D("TrackCuts/TPCSignal"+side, track.TpcInnerParam, track.TpcSignal)
	f.registry.Fill2D("TrackCuts/NSigmaTPCProton"+side, track.TpcInnerParam, scores[Proton])
	f.registry.Fill2D("TrackCuts/NSigmaTPCDeuteron"+side, track.TpcInnerParam, scores[Deuteron])

	if f.cuts.Track.IsSelectedTrack(track, Proton) {
		f.registry.Fill2D("TrackCuts/TPCSignalAllCuts"+side, track.TpcInnerParam, track.TpcSignal)
		f.registry.Fill2D("TrackCuts/NSigmaTPCProtonAllCuts"+side, track.TpcInnerParam, scores[Proton])
		if f.IsSelectedTrackPID(track, Proton, scores, false) {
			f.fillSpeciesQA(track, Proton, scores)
			f.writeCandidate(track, collisionRef, f.config.PidBitProton)
		}
	}

	if f.config.SelectDeuterons {
		if f.cuts.Track.IsSelectedTrack(track, Deuteron) {
			f.registry.Fill2D("TrackCuts/NSigmaTPCDeuteronAllCuts"+side, track.TpcInnerParam, scores[Deuteron])
			if f.IsSelectedTrackPID(track, Deuteron, scores, f.config.AutocorRejection) {
				f.fillSpeciesQA(track, Deuteron, scores)
				f.writeCandidate(track, collisionRef, f.config.PidBitDeuteron)
			}
		}
	}
}

func (f *Filter) writeCandidate(track *Track, collisionRef int, pidBits uint32) {
	if f.writer == nil {
		return
	}
	cutBits := f.config.CutBitPart
	if track.Sign < 0 {
		cutBits = f.config.CutBitAntiPart
	}
	f.writer.WriteParticle(collisionRef, track, cutBits, pidBits)
}

func (f *Filter) fillSpeciesQA(track *Track, species ParticleSpecies, scores [2]float64) {
	prefix := "Proton"
	tof := track.NSigmaTOFPr
	if species == Deuteron {
		prefix = "Deuteron"
		tof = track.NSigmaTOFDe
	}
	if track.Sign < 0 {
		prefix = "Anti" + prefix
	}

	cuts, _ := f.cuts.Track.Species(species)
	offsets := cuts.AvgPart
	if track.Sign < 0 {
		offsets = cuts.AvgAnti
	}
	combined := math.Hypot(scores[species]-offsets.TPC, tof-offsets.TOF)

	f.registry.Fill(prefix+"/P", track.P)
	f.registry.Fill(prefix+"/PTPC", track.TpcInnerParam)
	f.registry.Fill(prefix+"/Pt", track.Pt)
	f.registry.Fill(prefix+"/Eta", track.Eta)
	f.registry.Fill(prefix+"/Phi", track.Phi)
	f.registry.Fill(prefix+"/DCAxy", track.DcaXY)
	f.registry.Fill(prefix+"/DCAz", track.DcaZ)
	f.registry.Fill(prefix+"/TPCFound", track.TpcNClsFound)
	f.registry.Fill(prefix+"/TPCCRows", track.TpcNClsCrossedRows)
	f.registry.Fill(prefix+"/TPCFindable", track.TpcCrossedRowsOverFindable)
	f.registry.Fill(prefix+"/TPCShared", track.TpcNClsShared)
	f.registry.Fill2D(prefix+"/NSigmaTPC", track.TpcInnerParam, scores[species])
	f.registry.Fill2D(prefix+"/NSigmaTOF", track.TpcInnerParam, tof)
	f.registry.Fill2D(prefix+"/NSigmaTPCTOF", track.TpcInnerParam, combined)
}
