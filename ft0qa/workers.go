package main

import (
	"fmt"
	"io"

	cffilter "github.com/alice-cf/cffilter_go/pkg"
)

type WorkerData struct {
	Data   []byte
	Header cffilter.EventHeaderStruct
}

func worker(id int, jobs <-chan WorkerData, results chan<- cffilter.Event) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("Worker %d recovered from panic: %v\n", id, r)
			results <- cffilter.Event{Error: true}
		}
	}()

	for job := range jobs {
		if VerbosityLevel > 1 {
			message := fmt.Sprintf("Worker %d processing event %d", id, cffilter.EventIdGetNbInRun(job.Header.EventId))
			logger.Info(message, "worker")
		}
		event, err := cffilter.ParseEvent(job.Data, job.Header)
		if err != nil {
			logger.Error(err.Error())
			event.Error = true
		}
		results <- event
	}
}

func sendEventsToWorkers(fileReader *FileReader, jobs chan<- WorkerData) {
	for {
		header, eventData, err := fileReader.getNextEvent()
		if err != nil {
			if err != io.EOF {
				message := fmt.Errorf("error reading event: %w", err)
				logger.Error(message.Error())
			}
			break
		}
		jobs <- WorkerData{Data: eventData, Header: header}
	}
	close(jobs)
}
