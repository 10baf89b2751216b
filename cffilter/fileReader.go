package main

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"unsafe"

	cffilter "github.com/alice-cf/cffilter_go/pkg"
)

type FileReader struct {
	File     *os.File
	EvtCount int
}

func NewFileReader(file *os.File) *FileReader {
	return &FileReader{File: file, EvtCount: -1}
}

func (f *FileReader) getNextEvent() (cffilter.EventHeaderStruct, []byte, error) {
	header, eventData, err := cffilter.ReadEventFromFile(f.File)
	if err != nil {
		return header, nil, err
	}
	if !cffilter.ValidEvent(header) {
		return f.getNextEvent()
	}
	f.EvtCount++
	if f.EvtCount >= configuration.MaxEvents {
		if VerbosityLevel > 0 {
			logger.Info("Max events reached", "fileReader")
		}
		return header, nil, io.EOF
	}
	if f.EvtCount < configuration.Skip {
		if VerbosityLevel > 0 {
			message := fmt.Sprintf("Skipping event %d with ID %d", f.EvtCount, cffilter.EventIdGetNbInRun(header.EventId))
			logger.Info(message, "fileReader")
		}
		return f.getNextEvent()
	}
	if VerbosityLevel > 0 {
		message := fmt.Sprintf("Reading event %d with ID %d", f.EvtCount, cffilter.EventIdGetNbInRun(header.EventId))
		logger.Info(message, "fileReader")
	}
	return header, eventData, nil
}

func countEvents(file *os.File) (int, int) {
	evtCount := 0
	runNumber := 0
	for {
		var header cffilter.EventHeaderStruct
		headerSize := unsafe.Sizeof(header)
		headerBinary := make([]byte, headerSize)
		nRead, err := file.Read(headerBinary)
		if err != nil {
			if err != io.EOF {
				errMessage := fmt.Errorf("error reading header counting events: %w", err)
				logger.Error(errMessage.Error())
			}
			break
		}
		if nRead == 0 {
			if VerbosityLevel > 1 {
				logger.Info("End of file", "evtCounter")
			}
			break
		}

		headerReader := bytes.NewReader(headerBinary)
		binary.Read(headerReader, binary.LittleEndian, &header)
		runNumber = int(header.EventRunNb)
		if VerbosityLevel > 1 {
			message := fmt.Sprintf("Evt id: %d. Run %d", cffilter.EventIdGetNbInRun(header.EventId), header.EventRunNb)
			logger.Info(message, "evtCounter")
		}
		payloadSize := uint32(header.EventSize) - uint32(headerSize)
		file.Seek(int64(payloadSize), 1)

		if !cffilter.ValidEvent(header) {
			if VerbosityLevel > 1 {
				message := fmt.Sprintf("Skipping invalid event: %d", cffilter.EventIdGetNbInRun(header.EventId))
				logger.Info(message, "evtCounter")
			}
			continue
		}
		evtCount++
	}
	// Go back to the beginning of the file
	file.Seek(0, 0)
	return evtCount, runNumber
}
