package cffilter

import "math"

// IsSelectedEvent applies the collision cuts. Boundary-equal values
// pass.
func (c EventCuts) IsSelectedEvent(collision *Collision) bool {
	if c.SelectZvtx && math.Abs(collision.PosZ) > c.ZvtxMax {
		return false
	}
	if c.OfflineCheck && !collision.Sel8 {
		return false
	}
	return true
}

// IsSelectedTrack runs the track-quality chain for one species. The
// checks reject on the first failure and never adjust the track, so a
// track can be probed for several species in turn. Species without a
// pt row are never selected.
func (c *TrackCuts) IsSelectedTrack(track *Track, species ParticleSpecies) bool {
	sc, ok := c.Species(species)
	if !ok {
		return false
	}
	if track.Pt < sc.PtMin {
		return false
	}
	if track.Pt > sc.PtMax {
		return false
	}
	if math.Abs(track.Eta) > c.EtaMax {
		return false
	}
	if track.TpcNClsFound < float64(sc.TPCnClsMin) {
		return false
	}
	if track.TpcCrossedRowsOverFindable < c.TPCfClsMin {
		return false
	}
	if track.TpcNClsCrossedRows < float64(c.TPCcRowsMin) {
		return false
	}
	if track.TpcNClsShared > float64(c.TPCsClsMax) {
		return false
	}
	if track.ItsNCls < float64(c.ITSnClsMin) {
		return false
	}
	if track.ItsNClsInnerBarrel < float64(c.ITSnClsIbMin) {
		return false
	}
	if math.Abs(track.DcaXY) > c.DCAxyMax {
		return false
	}
	if math.Abs(track.DcaZ) > c.DCAzMax {
		return false
	}
	// Tracks not propagated to the collision vertex carry a huge
	// dummy impact parameter.
	if c.RejectNotPropagated && math.Abs(track.DcaXY) > 1e3 {
		return false
	}
	if c.Chi2TPCCheck && track.TpcChi2NCl >= c.Chi2TPCMax {
		return false
	}
	if c.Chi2ITSCheck && track.ItsChi2NCl >= c.Chi2ITSMax {
		return false
	}
	if c.TPCRefit && !track.TPCRefit {
		return false
	}
	if c.ITSRefit && !track.ITSRefit {
		return false
	}
	return true
}

// IsSelectedV0Daughter checks one leg of a V0 candidate against the
// daughter cuts for the given charge hypothesis. The impact-parameter
// cut is a MINIMUM: a genuine decay daughter does not point back to
// the primary vertex.
func (c *V0DaughterCuts) IsSelectedV0Daughter(track *Track, daughter V0Daughter, charge int) bool {
	if track.Sign != charge {
		return false
	}
	if math.Abs(track.Eta) > c.EtaMax {
		return false
	}
	if track.TpcNClsFound < float64(c.TPCnClsMin) {
		return false
	}
	if math.Abs(track.DcaXY) < c.DCAMin {
		return false
	}
	var score float64
	switch daughter {
	case DaughterPion:
		score = track.NSigmaTPCPi
	case DaughterProton:
		score = track.NSigmaTPCPr
	default:
		panic(&ErrUnknownDaughter{Species: daughter})
	}
	return c.windows[daughter].Contains(score)
}
