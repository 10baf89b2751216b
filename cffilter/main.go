package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	cffilter "github.com/alice-cf/cffilter_go/pkg"
	sqlx "github.com/jmoiron/sqlx"
)

var dbConn *sqlx.DB
var configuration cffilter.Configuration

var (
	logger         Logger
	VerbosityLevel int
)

func init() {
	opts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	handlerStdOut := NewHandler(os.Stdout, opts)
	handlerStdErr := slog.NewJSONHandler(os.Stderr, opts)
	logger = Logger{
		InfoLog:  slog.New(handlerStdOut),
		ErrorLog: slog.New(handlerStdErr),
	}
}

func main() {
	configFilename := flag.String("config", "", "Configuration file path")
	flag.Parse()

	var err error
	configuration, err = cffilter.LoadConfiguration(*configFilename)
	if err != nil {
		message := fmt.Errorf("Error reading configuration file: %w", err)
		logger.Error(message.Error())
		return
	}
	cffilter.SetConfiguration(configuration)
	cffilter.SetLogger(logger)

	VerbosityLevel = configuration.Verbosity
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading configuration file: %s", *configFilename)
		logger.Info(message, "main")
		printConfiguration(configuration, logger)
	}

	var store cffilter.CalibrationStore
	if !configuration.NoDB {
		dbConn, err = cffilter.ConnectToDatabase(configuration.User, configuration.Passwd, configuration.Host, configuration.DBName)
		if err != nil {
			message := fmt.Errorf("Error connecting to database: %w", err)
			logger.Error(message.Error())
			return
		}
		defer dbConn.Close()
		store = cffilter.NewSQLCalibrationStore(dbConn)
	}

	file, err := os.Open(configuration.FileIn)
	if err != nil {
		message := fmt.Errorf("Error opening file: %w", err)
		logger.Error(message.Error())
		return
	}
	defer file.Close()

	evtCount, runNumber := countEvents(file)
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Number of events: %d in run %d", evtCount, runNumber)
		logger.Info(message, "main")
	}

	registry := cffilter.NewHistogramRegistry()

	var tableWriter cffilter.TableWriter
	var writer *cffilter.Writer
	if configuration.WriteData {
		writer = cffilter.NewWriter(configuration.FileOut, registry)
		tableWriter = writer
	}

	filter, err := cffilter.NewFilter(store, tableWriter, registry)
	if err != nil {
		message := fmt.Errorf("Error setting up filter: %w", err)
		logger.Error(message.Error())
		return
	}

	fileReader := NewFileReader(file)

	start := time.Now()
	evtsProcessed := 0
	for {
		header, eventData, err := fileReader.getNextEvent()
		if err != nil {
			if err != io.EOF {
				message := fmt.Errorf("error reading event: %w", err)
				logger.Error(message.Error())
			}
			break
		}
		event, err := cffilter.ParseEvent(eventData, header)
		if err != nil {
			message := fmt.Errorf("error parsing event %d: %w", event.EventID, err)
			logger.Error(message.Error())
			continue
		}
		err = filter.ProcessEvent(&event)
		if err != nil {
			message := fmt.Errorf("error processing event %d: %w", event.EventID, err)
			logger.Error(message.Error())
			break
		}
		evtsProcessed++
	}
	fmt.Println("Total events processed: ", evtsProcessed)

	if writer != nil {
		if err := writer.Close(); err != nil {
			message := fmt.Errorf("error closing writer: %w", err)
			logger.Error(message.Error())
		}
	}

	if configuration.PlotDir != "" {
		if err := registry.SavePlots(configuration.PlotDir); err != nil {
			message := fmt.Errorf("error saving plots: %w", err)
			logger.Error(message.Error())
		}
	}

	duration := time.Since(start)
	fmt.Printf("Total time: %d ms\n", duration.Milliseconds())
}
