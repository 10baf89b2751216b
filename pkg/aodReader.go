package cffilter

import (
	"bytes"
	"encoding/binary"
	"os"
	"unsafe"
)

func ValidEvent(header EventHeaderStruct) bool {
	return header.EventType == PHYSICS_EVENT || header.EventType == CALIBRATION_EVENT
}

func ReadEventFromFile(file *os.File) (EventHeaderStruct, []byte, error) {
	var header EventHeaderStruct
	headerSize := unsafe.Sizeof(header)
	headerBinary := make([]byte, headerSize)
	nRead, err := file.Read(headerBinary)
	if err != nil {
		return header, nil, err
	}

	if nRead == 0 {
		return header, nil, err
	}

	headerReader := bytes.NewReader(headerBinary)
	binary.Read(headerReader, binary.LittleEndian, &header)
	if header.EventMagic != EVENT_MAGIC_NUMBER {
		return header, nil, &ErrBadMagic{Got: header.EventMagic}
	}

	payloadSize := uint32(header.EventSize) - uint32(headerSize)
	eventData := make([]byte, payloadSize)
	_, err = file.Read(eventData)
	if err != nil {
		return header, nil, err
	}
	return header, eventData, nil
}

func ReadEvent(data []byte) (EventHeaderStruct, []byte, error) {
	var header EventHeaderStruct
	headerSize := unsafe.Sizeof(header)
	if len(data) < int(headerSize) {
		return header, nil, &ErrShortEvent{Want: int(headerSize), Got: len(data)}
	}
	headerReader := bytes.NewReader(data[:headerSize])
	binary.Read(headerReader, binary.LittleEndian, &header)
	if header.EventMagic != EVENT_MAGIC_NUMBER {
		return header, nil, &ErrBadMagic{Got: header.EventMagic}
	}

	payloadSize := uint32(header.EventSize) - uint32(headerSize)
	eventData := data[headerSize : uint32(headerSize)+payloadSize]
	return header, eventData, nil
}

// ParseEvent decodes an event payload into the in-memory model. The
// payload carries the collision record, the track block and, when the
// header announces it, the FT0 block.
func ParseEvent(eventData []byte, header EventHeaderStruct) (Event, error) {
	event := Event{
		RunNumber:   uint32(header.EventRunNb),
		EventID:     EventIdGetNbInRun(header.EventId),
		GlobalBC:    uint64(header.EventGlobalBC),
		TimestampMS: EventTimestampMS(header),
	}

	collisionSize := int(unsafe.Sizeof(CollisionStruct{}))
	trackSize := int(unsafe.Sizeof(TrackStruct{}))
	want := collisionSize + int(header.NTracks)*trackSize
	if len(eventData) < want {
		return event, &ErrShortEvent{EventID: event.EventID, Want: want, Got: len(eventData)}
	}

	reader := bytes.NewReader(eventData)

	var collision CollisionStruct
	binary.Read(reader, binary.LittleEndian, &collision)
	event.Collision = Collision{
		PosX:          float64(collision.PosX),
		PosY:          float64(collision.PosY),
		PosZ:          float64(collision.PosZ),
		MultFV0M:      float64(collision.MultFV0M),
		MultNTracksPV: int(collision.MultNTracksPV),
		Sel8:          collision.Sel8 != 0,
	}

	event.Tracks = make([]Track, 0, header.NTracks)
	for i := uint32(0); i < uint32(header.NTracks); i++ {
		var raw TrackStruct
		binary.Read(reader, binary.LittleEndian, &raw)
		event.Tracks = append(event.Tracks, trackFromStruct(raw))
	}

	if header.HasFT0 != 0 {
		ft0Size := int(unsafe.Sizeof(FT0HeaderStruct{}))
		if reader.Len() < ft0Size {
			return event, &ErrShortEvent{EventID: event.EventID, Want: want + ft0Size, Got: len(eventData)}
		}
		var ft0Header FT0HeaderStruct
		binary.Read(reader, binary.LittleEndian, &ft0Header)

		channelSize := int(unsafe.Sizeof(FT0ChannelStruct{}))
		nChannels := int(ft0Header.NChanA) + int(ft0Header.NChanC)
		if reader.Len() < nChannels*channelSize {
			return event, &ErrShortEvent{EventID: event.EventID, Want: want + ft0Size + nChannels*channelSize, Got: len(eventData)}
		}

		record := &FT0Record{
			TimeA:       float64(ft0Header.TimeA),
			TimeC:       float64(ft0Header.TimeC),
			TriggerMask: ft0Header.TriggerMask,
			ChannelA:    make([]FT0Channel, 0, ft0Header.NChanA),
			ChannelC:    make([]FT0Channel, 0, ft0Header.NChanC),
		}
		for i := uint32(0); i < ft0Header.NChanA; i++ {
			var channel FT0ChannelStruct
			binary.Read(reader, binary.LittleEndian, &channel)
			record.ChannelA = append(record.ChannelA, FT0Channel{ChannelID: int(channel.ChannelID), Amplitude: float64(channel.Amplitude)})
		}
		for i := uint32(0); i < ft0Header.NChanC; i++ {
			var channel FT0ChannelStruct
			binary.Read(reader, binary.LittleEndian, &channel)
			record.ChannelC = append(record.ChannelC, FT0Channel{ChannelID: int(channel.ChannelID), Amplitude: float64(channel.Amplitude)})
		}
		event.FT0 = record
	}

	return event, nil
}

func trackFromStruct(raw TrackStruct) Track {
	return Track{
		Pt:                         float64(raw.Pt),
		Eta:                        float64(raw.Eta),
		Phi:                        float64(raw.Phi),
		Sign:                       int(raw.Sign),
		P:                          float64(raw.P),
		TpcInnerParam:              float64(raw.TpcInnerParam),
		TpcSignal:                  float64(raw.TpcSignal),
		TpcNClsFound:               float64(raw.TpcNClsFound),
		TpcNClsCrossedRows:         float64(raw.TpcNClsCrossedRows),
		TpcCrossedRowsOverFindable: float64(raw.TpcCrossedRowsOverFindable),
		TpcNClsShared:              float64(raw.TpcNClsShared),
		ItsNCls:                    float64(raw.ItsNCls),
		ItsNClsInnerBarrel:         float64(raw.ItsNClsInnerBarrel),
		TpcChi2NCl:                 float64(raw.TpcChi2NCl),
		ItsChi2NCl:                 float64(raw.ItsChi2NCl),
		DcaXY:                      float64(raw.DcaXY),
		DcaZ:                       float64(raw.DcaZ),
		HasTPC:                     raw.Flags&TRACK_HAS_TPC != 0,
		HasITS:                     raw.Flags&TRACK_HAS_ITS != 0,
		TPCRefit:                   raw.Flags&TRACK_TPC_REFIT != 0,
		ITSRefit:                   raw.Flags&TRACK_ITS_REFIT != 0,
		NSigmaTPCEl:                float64(raw.NSigmaTPCEl),
		NSigmaTPCPi:                float64(raw.NSigmaTPCPi),
		NSigmaTPCPr:                float64(raw.NSigmaTPCPr),
		NSigmaTPCDe:                float64(raw.NSigmaTPCDe),
		NSigmaTOFPr:                float64(raw.NSigmaTOFPr),
		NSigmaTOFDe:                float64(raw.NSigmaTOFDe),
	}
}
