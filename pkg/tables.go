package cffilter

import "fmt"

// PIDWindow holds the acceptance windows of one species for one charge
// sign: TPC-only and TOF-only bands plus the combined maximum used
// above the momentum threshold.
type PIDWindow struct {
	TPCMin    float64
	TPCMax    float64
	TOFMin    float64
	TOFMax    float64
	TPCTOFMax float64
}

// AvgOffsets are the per-detector average corrections subtracted from
// the deviation scores before combining them.
type AvgOffsets struct {
	TPC float64
	TOF float64
}

// ScoreWindow is an open interval on a deviation score. Boundary-equal
// values count as outside.
type ScoreWindow struct {
	Min float64
	Max float64
}

func (w ScoreWindow) Contains(score float64) bool {
	return score > w.Min && score < w.Max
}

// SpeciesCuts is the per-species slice of the cut tables, assembled
// once at startup.
type SpeciesCuts struct {
	PtMin      float64
	PtMax      float64
	PThreshold float64
	TPCnClsMin int
	HasPID     bool
	Part       PIDWindow
	Anti       PIDWindow
	AvgPart    AvgOffsets
	AvgAnti    AvgOffsets
}

type EventCuts struct {
	SelectZvtx   bool
	ZvtxMax      float64
	OfflineCheck bool
}

type TrackCuts struct {
	EtaMax              float64
	TPCfClsMin          float64
	TPCcRowsMin         int
	TPCsClsMax          int
	ITSnClsMin          int
	ITSnClsIbMin        int
	DCAxyMax            float64
	DCAzMax             float64
	RejectNotPropagated bool
	Chi2TPCCheck        bool
	Chi2TPCMax          float64
	Chi2ITSCheck        bool
	Chi2ITSMax          float64
	TPCRefit            bool
	ITSRefit            bool

	species [3]SpeciesCuts
	defined [3]bool
}

// Species returns the assembled cuts for one species. The boolean is
// false for species without a pt_cuts row.
func (c *TrackCuts) Species(s ParticleSpecies) (SpeciesCuts, bool) {
	if s < Proton || s > Lambda {
		return SpeciesCuts{}, false
	}
	return c.species[s], c.defined[s]
}

type V0DaughterCuts struct {
	EtaMax     float64
	TPCnClsMin int
	DCAMin     float64
	windows    [2]ScoreWindow
}

// Window returns the TPC acceptance band for one daughter species.
func (c *V0DaughterCuts) Window(d V0Daughter) (ScoreWindow, bool) {
	if d < DaughterPion || d > DaughterProton {
		return ScoreWindow{}, false
	}
	return c.windows[d], true
}

// SelectionCuts is the full typed cut set built from the configuration.
// Rejection windows veto a deuteron candidate when they CONTAIN the
// contaminant score.
type SelectionCuts struct {
	Event     EventCuts
	Track     TrackCuts
	Daughter  V0DaughterCuts
	Rejection [3]ScoreWindow
}

// BuildSelectionCuts translates the labeled configuration tables into
// the typed cut set, rejecting malformed tables before any event is
// processed.
func BuildSelectionCuts(config Configuration) (SelectionCuts, error) {
	var cuts SelectionCuts

	cuts.Event = EventCuts{
		SelectZvtx:   config.EvtSelectZvtx,
		ZvtxMax:      config.EvtZvtxMax,
		OfflineCheck: config.EvtOfflineCheck,
	}

	cuts.Track = TrackCuts{
		EtaMax:              config.TrkEtaMax,
		TPCfClsMin:          config.TrkTPCfClsMin,
		TPCcRowsMin:         config.TrkTPCcRowsMin,
		TPCsClsMax:          config.TrkTPCsClsMax,
		ITSnClsMin:          config.TrkITSnClsMin,
		ITSnClsIbMin:        config.TrkITSnClsIbMin,
		DCAxyMax:            config.TrkDCAxyMax,
		DCAzMax:             config.TrkDCAzMax,
		RejectNotPropagated: config.RejectNotPropagated,
		Chi2TPCCheck:        config.TrkChi2TPCCheck,
		Chi2TPCMax:          config.TrkChi2TPCMax,
		Chi2ITSCheck:        config.TrkChi2ITSCheck,
		Chi2ITSMax:          config.TrkChi2ITSMax,
		TPCRefit:            config.TrkTPCRefit,
		ITSRefit:            config.TrkITSRefit,
	}

	for name, row := range config.PtCuts {
		species, err := speciesByName(name, "pt_cuts")
		if err != nil {
			return cuts, err
		}
		if len(row) != 3 {
			return cuts, &ErrBadCutTable{Table: "pt_cuts", Reason: fmt.Sprintf("row %q has %d entries, want 3", name, len(row))}
		}
		if row[0] >= row[1] {
			return cuts, &ErrBadCutTable{Table: "pt_cuts", Reason: fmt.Sprintf("row %q has pt min %g >= pt max %g", name, row[0], row[1])}
		}
		sc := &cuts.Track.species[species]
		sc.PtMin = row[0]
		sc.PtMax = row[1]
		sc.PThreshold = row[2]
		cuts.Track.defined[species] = true
	}
	for _, required := range []ParticleSpecies{Proton, Deuteron} {
		if !cuts.Track.defined[required] {
			return cuts, &ErrBadCutTable{Table: "pt_cuts", Reason: fmt.Sprintf("missing row %q", required)}
		}
	}

	if err := fillPIDWindows(config.PIDCuts, "pid_cuts", &cuts.Track, false); err != nil {
		return cuts, err
	}
	if err := fillPIDWindows(config.PIDCutsAnti, "pid_cuts_anti", &cuts.Track, true); err != nil {
		return cuts, err
	}
	if err := fillAvgOffsets(config.TPCTOFAvg, "tpctof_avg", &cuts.Track, false); err != nil {
		return cuts, err
	}
	if err := fillAvgOffsets(config.TPCTOFAvgAnti, "tpctof_avg_anti", &cuts.Track, true); err != nil {
		return cuts, err
	}

	for name, min := range config.TPCnClsMin {
		species, err := speciesByName(name, "trk_tpc_ncls_min")
		if err != nil {
			return cuts, err
		}
		if min < 0 {
			return cuts, &ErrBadCutTable{Table: "trk_tpc_ncls_min", Reason: fmt.Sprintf("row %q is negative", name)}
		}
		cuts.Track.species[species].TPCnClsMin = min
	}

	for name, row := range config.PIDRejection {
		var rejection RejectionSpecies
		switch name {
		case "proton":
			rejection = RejectProton
		case "pion":
			rejection = RejectPion
		case "electron":
			rejection = RejectElectron
		default:
			return cuts, &ErrBadCutTable{Table: "pid_rejection", Reason: fmt.Sprintf("unknown species %q", name)}
		}
		window, err := windowFromRow(row, "pid_rejection", name)
		if err != nil {
			return cuts, err
		}
		cuts.Rejection[rejection] = window
	}

	cuts.Daughter = V0DaughterCuts{
		EtaMax:     config.DaughterEtaMax,
		TPCnClsMin: config.DaughterTPCnClsMin,
		DCAMin:     config.DaughterDCAMin,
	}
	for name, row := range config.DaughterPIDCut {
		var daughter V0Daughter
		switch name {
		case "pion":
			daughter = DaughterPion
		case "proton":
			daughter = DaughterProton
		default:
			return cuts, &ErrBadCutTable{Table: "daughter_pid_cuts", Reason: fmt.Sprintf("unknown species %q", name)}
		}
		window, err := windowFromRow(row, "daughter_pid_cuts", name)
		if err != nil {
			return cuts, err
		}
		cuts.Daughter.windows[daughter] = window
	}

	return cuts, nil
}

func speciesByName(name string, table string) (ParticleSpecies, error) {
	for i, v := range particleSpeciesStrings {
		if v == name {
			return ParticleSpecies(i), nil
		}
	}
	return 0, &ErrBadCutTable{Table: table, Reason: fmt.Sprintf("unknown species %q", name)}
}

func fillPIDWindows(table map[string][]float64, tableName string, cuts *TrackCuts, anti bool) error {
	for name, row := range table {
		species, err := speciesByName(name, tableName)
		if err != nil {
			return err
		}
		if species == Lambda {
			return &ErrBadCutTable{Table: tableName, Reason: "species \"lambda\" has no PID discriminant"}
		}
		if len(row) != 5 {
			return &ErrBadCutTable{Table: tableName, Reason: fmt.Sprintf("row %q has %d entries, want 5", name, len(row))}
		}
		if row[0] >= row[1] {
			return &ErrBadCutTable{Table: tableName, Reason: fmt.Sprintf("row %q has TPC min %g >= TPC max %g", name, row[0], row[1])}
		}
		if row[2] >= row[3] {
			return &ErrBadCutTable{Table: tableName, Reason: fmt.Sprintf("row %q has TOF min %g >= TOF max %g", name, row[2], row[3])}
		}
		window := PIDWindow{
			TPCMin:    row[0],
			TPCMax:    row[1],
			TOFMin:    row[2],
			TOFMax:    row[3],
			TPCTOFMax: row[4],
		}
		sc := &cuts.species[species]
		if anti {
			sc.Anti = window
		} else {
			sc.Part = window
		}
		sc.HasPID = true
	}
	return nil
}

func fillAvgOffsets(table map[string][]float64, tableName string, cuts *TrackCuts, anti bool) error {
	for name, row := range table {
		species, err := speciesByName(name, tableName)
		if err != nil {
			return err
		}
		if species == Lambda {
			return &ErrBadCutTable{Table: tableName, Reason: "species \"lambda\" has no PID discriminant"}
		}
		if len(row) != 2 {
			return &ErrBadCutTable{Table: tableName, Reason: fmt.Sprintf("row %q has %d entries, want 2", name, len(row))}
		}
		offsets := AvgOffsets{TPC: row[0], TOF: row[1]}
		if anti {
			cuts.species[species].AvgAnti = offsets
		} else {
			cuts.species[species].AvgPart = offsets
		}
	}
	return nil
}

func windowFromRow(row []float64, tableName string, rowName string) (ScoreWindow, error) {
	if len(row) != 2 {
		return ScoreWindow{}, &ErrBadCutTable{Table: tableName, Reason: fmt.Sprintf("row %q has %d entries, want 2", rowName, len(row))}
	}
	if row[0] >= row[1] {
		return ScoreWindow{}, &ErrBadCutTable{Table: tableName, Reason: fmt.Sprintf("row %q has min %g >= max %g", rowName, row[0], row[1])}
	}
	return ScoreWindow{Min: row[0], Max: row[1]}, nil
}
