package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	cffilter "github.com/alice-cf/cffilter_go/pkg"
)

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
	evtsToRead := numberOfEventsToProcess(evtCount, configuration.Skip, configuration.MaxEvents)

	registry := cffilter.NewHistogramRegistry()
	bookFT0Histograms(registry)

	var writer *cffilter.Writer
	if configuration.WriteData {
		writer = cffilter.NewWriter(configuration.FileOut, registry)
	}

	jobs := make(chan WorkerData, configuration.NumWorkers)
	results := make(chan cffilter.Event, 1000)

	for w := 1; w <= configuration.NumWorkers; w++ {
		go worker(w, jobs, results)
	}

	fileReader := NewFileReader(file)

	start := time.Now()
	go sendEventsToWorkers(fileReader, jobs)

	// Workers only parse, all histogram fills stay on this goroutine.
	eventsWithFT0 := 0
	for evtsProcessed := 0; evtsProcessed < evtsToRead; evtsProcessed++ {
		event := <-results
		if event.Error {
			continue
		}
		if event.FT0 != nil {
			fillFT0Histograms(registry, &event)
			eventsWithFT0++
		}
	}
	fmt.Println("Events with FT0: ", eventsWithFT0)

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

func numberOfEventsToProcess(fileEvtCount int, skipEvts int, maxEvtCount int) int {
	evtsToRead := fileEvtCount
	if maxEvtCount < evtsToRead {
		evtsToRead = maxEvtCount
	}
	evtsToRead -= skipEvts
	if evtsToRead < 0 {
		evtsToRead = 0
	}
	return evtsToRead
}
