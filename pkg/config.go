package cffilter

import (
	"encoding/json"
	"os"
)

type Configuration struct {
	MaxEvents        int     `json:"max_events"`
	Skip             int     `json:"skip"`
	Verbosity        int     `json:"verbosity"`
	FileIn           string  `json:"file_in"`
	FileOut          string  `json:"file_out"`
	PlotDir          string  `json:"plot_dir"`
	IsRun3           bool    `json:"is_run3"`
	NoDB             bool    `json:"no_db"`
	Host             string  `json:"host"`
	User             string  `json:"user"`
	Passwd           string  `json:"pass"`
	DBName           string  `json:"dbname"`
	NumWorkers       int     `json:"num_workers"`
	WriteData        bool    `json:"write_data"`
	CompressionLevel int     `json:"compression_level"`
	EvtSelectZvtx    bool    `json:"evt_select_zvtx"`
	EvtZvtxMax       float64 `json:"evt_zvtx"`
	EvtOfflineCheck  bool    `json:"evt_offline_check"`
	AutocorRejection bool    `json:"autocor_rejection"`
	SelectDeuterons  bool    `json:"select_deuterons"`
	DeuteronThresPV  bool    `json:"deuteron_thres_pv_mom"`
	CutBitPart       uint32  `json:"cut_bit_part"`
	CutBitAntiPart   uint32  `json:"cut_bit_antipart"`
	PidBitProton     uint32  `json:"pid_bit_proton"`
	PidBitDeuteron   uint32  `json:"pid_bit_deuteron"`

	RejectNotPropagated bool    `json:"reject_not_propagated"`
	TrkEtaMax           float64 `json:"trk_eta"`
	TrkTPCfClsMin       float64 `json:"trk_tpc_fcls"`
	TrkTPCcRowsMin      int     `json:"trk_tpc_crows_min"`
	TrkTPCsClsMax       int     `json:"trk_tpc_scls_max"`
	TrkITSnClsMin       int     `json:"trk_its_ncls_min"`
	TrkITSnClsIbMin     int     `json:"trk_its_ncls_ib_min"`
	TrkDCAxyMax         float64 `json:"trk_dcaxy_max"`
	TrkDCAzMax          float64 `json:"trk_dcaz_max"`
	TrkChi2TPCCheck     bool    `json:"trk_chi2_tpc_check"`
	TrkChi2TPCMax       float64 `json:"trk_chi2_tpc_max"`
	TrkChi2ITSCheck     bool    `json:"trk_chi2_its_check"`
	TrkChi2ITSMax       float64 `json:"trk_chi2_its_max"`
	TrkTPCRefit         bool    `json:"trk_tpc_refit"`
	TrkITSRefit         bool    `json:"trk_its_refit"`

	UseManualPIDProton         bool   `json:"use_manual_pid_proton"`
	UseManualPIDDeuteron       bool   `json:"use_manual_pid_deuteron"`
	UseManualPIDPion           bool   `json:"use_manual_pid_pion"`
	UseManualPIDElectron       bool   `json:"use_manual_pid_electron"`
	UseManualPIDDaughterPion   bool   `json:"use_manual_pid_daughter_pion"`
	UseManualPIDDaughterProton bool   `json:"use_manual_pid_daughter_proton"`
	PIDPathProton              string `json:"pid_path_proton"`
	PIDPathAntiProton          string `json:"pid_path_antiproton"`
	PIDPathDeuteron            string `json:"pid_path_deuteron"`
	PIDPathAntiDeuteron        string `json:"pid_path_antideuteron"`
	PIDPathPion                string `json:"pid_path_pion"`
	PIDPathAntiPion            string `json:"pid_path_antipion"`
	PIDPathElectron            string `json:"pid_path_electron"`
	PIDPathAntiElectron        string `json:"pid_path_antielectron"`

	// Labeled cut tables, keyed by species name. Row layouts:
	// pt_cuts [pt min, pt max, p threshold],
	// pid_cuts [TPC min, TPC max, TOF min, TOF max, TPCTOF max],
	// pid_rejection [TPC min, TPC max],
	// tpctof_avg [TPC avg, TOF avg].
	PtCuts         map[string][]float64 `json:"pt_cuts"`
	PIDCuts        map[string][]float64 `json:"pid_cuts"`
	PIDCutsAnti    map[string][]float64 `json:"pid_cuts_anti"`
	PIDRejection   map[string][]float64 `json:"pid_rejection"`
	TPCTOFAvg      map[string][]float64 `json:"tpctof_avg"`
	TPCTOFAvgAnti  map[string][]float64 `json:"tpctof_avg_anti"`
	TPCnClsMin     map[string]int       `json:"trk_tpc_ncls_min"`
	DaughterPIDCut map[string][]float64 `json:"daughter_pid_cuts"`

	DaughterEtaMax     float64 `json:"daughter_eta"`
	DaughterTPCnClsMin int     `json:"daughter_tpc_ncls_min"`
	DaughterDCAMin     float64 `json:"daughter_dca_min"`
}

var configuration Configuration

func GetConfiguration() Configuration {
	return configuration
}

func SetConfiguration(config Configuration) {
	configuration = config
}

func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

// DefaultConfiguration returns the cut values used in production when
// the configuration file does not override them. Unmarshalling merges
// table rows, so overriding one species keeps the defaults for the rest.
func DefaultConfiguration() Configuration {
	var config Configuration

	config.MaxEvents = 1000000000
	config.Skip = 0
	config.Verbosity = 0
	config.IsRun3 = true
	config.NoDB = false
	config.Host = "ccdb-mirror.cern.ch"
	config.User = "ccdbreader"
	config.Passwd = "readonly"
	config.DBName = "pidcalib"
	config.NumWorkers = 4
	config.WriteData = true
	config.CompressionLevel = 4

	config.EvtSelectZvtx = true
	config.EvtZvtxMax = 10
	config.EvtOfflineCheck = false
	config.AutocorRejection = true
	config.SelectDeuterons = false
	config.DeuteronThresPV = false
	config.CutBitPart = 8190
	config.CutBitAntiPart = 8189
	config.PidBitProton = 1
	config.PidBitDeuteron = 2

	config.RejectNotPropagated = false
	config.TrkEtaMax = 0.85
	config.TrkTPCfClsMin = 0.83
	config.TrkTPCcRowsMin = 70
	config.TrkTPCsClsMax = 160
	config.TrkITSnClsMin = 0
	config.TrkITSnClsIbMin = 0
	config.TrkDCAxyMax = 0.15
	config.TrkDCAzMax = 0.3
	config.TrkChi2TPCCheck = false
	config.TrkChi2TPCMax = 4.0
	config.TrkChi2ITSCheck = false
	config.TrkChi2ITSMax = 36.0
	config.TrkTPCRefit = false
	config.TrkITSRefit = false

	config.UseManualPIDProton = false
	config.UseManualPIDDeuteron = false
	config.UseManualPIDPion = false
	config.UseManualPIDElectron = false
	config.UseManualPIDDaughterPion = false
	config.UseManualPIDDaughterProton = false
	config.PIDPathProton = "Users/l/lserksny/PIDProton"
	config.PIDPathAntiProton = "Users/l/lserksny/PIDAntiProton"
	config.PIDPathDeuteron = "Users/l/lserksny/PIDDeuteron"
	config.PIDPathAntiDeuteron = "Users/l/lserksny/PIDAntiDeuteron"
	config.PIDPathPion = "Users/l/lserksny/PIDPion"
	config.PIDPathAntiPion = "Users/l/lserksny/PIDAntiPion"
	config.PIDPathElectron = "Users/l/lserksny/PIDElectron"
	config.PIDPathAntiElectron = "Users/l/lserksny/PIDAntiElectron"

	config.PtCuts = map[string][]float64{
		"proton":   {0.35, 6.0, 0.75},
		"deuteron": {0.35, 1.6, 99.0},
		"lambda":   {0.35, 6.0, 99.0},
	}
	config.PIDCuts = map[string][]float64{
		"proton":   {-6.0, 6.0, -6.0, 6.0, 6.0},
		"deuteron": {-6.0, 6.0, -99.0, 99.0, 99.0},
	}
	config.PIDCutsAnti = map[string][]float64{
		"proton":   {-6.0, 6.0, -6.0, 6.0, 6.0},
		"deuteron": {-6.0, 6.0, -99.0, 99.0, 99.0},
	}
	config.PIDRejection = map[string][]float64{
		"proton":   {-2.0, 2.0},
		"pion":     {-2.0, 2.0},
		"electron": {-2.0, 2.0},
	}
	config.TPCTOFAvg = map[string][]float64{
		"proton":   {0.0, 0.0},
		"deuteron": {0.0, 0.0},
	}
	config.TPCTOFAvgAnti = map[string][]float64{
		"proton":   {0.0, 0.0},
		"deuteron": {0.0, 0.0},
	}
	config.TPCnClsMin = map[string]int{
		"proton":   60,
		"deuteron": 60,
	}
	config.DaughterPIDCut = map[string][]float64{
		"pion":   {-6.0, 6.0},
		"proton": {-6.0, 6.0},
	}

	config.DaughterEtaMax = 0.85
	config.DaughterTPCnClsMin = 60
	config.DaughterDCAMin = 0.04

	return config
}
