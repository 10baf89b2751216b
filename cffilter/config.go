package main

import (
	"fmt"

	cffilter "github.com/alice-cf/cffilter_go/pkg"
)

func printConfiguration(config cffilter.Configuration, logger Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("File out: %s", config.FileOut), "config")
	logger.Info(fmt.Sprintf("Plot dir: %s", config.PlotDir), "config")
	logger.Info(fmt.Sprintf("Run 3: %t", config.IsRun3), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Skip: %d", config.Skip), "config")
	logger.Info(fmt.Sprintf("Max events: %d", config.MaxEvents), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
	logger.Info(fmt.Sprintf("Write data: %t", config.WriteData), "config")
	logger.Info(fmt.Sprintf("Compression level: %d", config.CompressionLevel), "config")
	logger.Info(fmt.Sprintf("Select z-vertex: %t", config.EvtSelectZvtx), "config")
	logger.Info(fmt.Sprintf("Z-vertex max: %g", config.EvtZvtxMax), "config")
	logger.Info(fmt.Sprintf("Offline check: %t", config.EvtOfflineCheck), "config")
	logger.Info(fmt.Sprintf("Select deuterons: %t", config.SelectDeuterons), "config")
	logger.Info(fmt.Sprintf("Autocorrelation rejection: %t", config.AutocorRejection), "config")
	logger.Info(fmt.Sprintf("Manual PID proton: %t", config.UseManualPIDProton), "config")
	logger.Info(fmt.Sprintf("Manual PID deuteron: %t", config.UseManualPIDDeuteron), "config")
	logger.Info(fmt.Sprintf("Manual PID pion: %t", config.UseManualPIDPion), "config")
	logger.Info(fmt.Sprintf("Manual PID electron: %t", config.UseManualPIDElectron), "config")
}
