package cffilter

type EventSizeType uint32

type EventMagicType uint32

const EVENT_MAGIC_NUMBER EventMagicType = 0xA0DF17E5
const EVENT_MAGIC_NUMBER_SWAPPED EventMagicType = 0xE517DFA0

type EventHeadSizeType uint32

/* ---------- Unique version identifier ---------- */
const EVENT_MAJOR_VERSION_NUMBER = 1
const EVENT_MINOR_VERSION_NUMBER = 2
const EVENT_CURRENT_VERSION = ((EVENT_MAJOR_VERSION_NUMBER << 16) & 0xffff0000) | (EVENT_MINOR_VERSION_NUMBER & 0x0000ffff)

type EventVersionType uint32

/* ---------- Event type ---------- */
type EventTypeType uint32

const (
	START_OF_RUN EventTypeType = iota + 1
	END_OF_RUN
	START_OF_RUN_FILES
	END_OF_RUN_FILES
	START_OF_BURST
	END_OF_BURST
	PHYSICS_EVENT
	CALIBRATION_EVENT
	EVENT_FORMAT_ERROR
	START_OF_DATA
	END_OF_DATA
	SYSTEM_SOFTWARE_TRIGGER_EVENT
	DETECTOR_SOFTWARE_TRIGGER_EVENT
	SYNC_EVENT
)

type EventRunNbType uint32

/* ---------- The eventId field ---------- */
type EventIdType [2]uint32

/*
---------- Timestamps ----------

	The timestamp is split into seconds and microseconds.
*/
type EventTimestampSecType uint32

/* Microseconds: range [0..999999] */
type EventTimestampUsecType uint32

/* ---------- The event header structure ---------- */
// Field order keeps the struct free of alignment padding, so the
// in-memory size matches the on-disk size.
type EventHeaderStruct struct {
	EventSize          EventSizeType
	EventMagic         EventMagicType
	EventHeadSize      EventHeadSizeType
	EventVersion       EventVersionType
	EventType          EventTypeType
	EventRunNb         EventRunNbType
	EventId            EventIdType
	EventGlobalBC      uint64
	EventTimestampSec  EventTimestampSecType
	EventTimestampUsec EventTimestampUsecType
	NTracks            uint32
	HasFT0             uint32
}

/* ---------- Collision record ---------- */
type CollisionStruct struct {
	PosX          float32
	PosY          float32
	PosZ          float32
	MultFV0M      float32
	MultNTracksPV int32
	Sel8          uint32
	Flags         uint32
}

/* ---------- Track record ---------- */
type TrackStruct struct {
	Pt                         float32
	Eta                        float32
	Phi                        float32
	Sign                       int32
	P                          float32
	TpcInnerParam              float32
	TpcSignal                  float32
	TpcNClsFound               int16
	TpcNClsCrossedRows         int16
	TpcCrossedRowsOverFindable float32
	TpcNClsShared              uint8
	ItsNCls                    uint8
	ItsNClsInnerBarrel         uint8
	Pad                        uint8
	TpcChi2NCl                 float32
	ItsChi2NCl                 float32
	DcaXY                      float32
	DcaZ                       float32
	Flags                      uint32
	NSigmaTPCEl                float32
	NSigmaTPCPi                float32
	NSigmaTPCPr                float32
	NSigmaTPCDe                float32
	NSigmaTOFPr                float32
	NSigmaTOFDe                float32
}

/* ---------- Track flag bits ---------- */
const TRACK_HAS_TPC = 0x00000001
const TRACK_HAS_ITS = 0x00000002
const TRACK_TPC_REFIT = 0x00000004
const TRACK_ITS_REFIT = 0x00000008

/* ---------- FT0 records ---------- */
type FT0HeaderStruct struct {
	TimeA       float32
	TimeC       float32
	TriggerMask uint32
	NChanA      uint32
	NChanC      uint32
}

type FT0ChannelStruct struct {
	ChannelID uint32
	Amplitude float32
}

/* ---------- FT0 trigger bits ---------- */
const (
	FT0_BIT_A = iota
	FT0_BIT_C
	FT0_BIT_VERTEX
	FT0_BIT_CEN
	FT0_BIT_SCEN
)

func EventIdGetNbInRun(id EventIdType) uint32 {
	return id[0]
}

// EventTimestampMS returns the header timestamp in milliseconds, the
// unit the calibration store validity windows are keyed on.
func EventTimestampMS(header EventHeaderStruct) int64 {
	return int64(header.EventTimestampSec)*1000 + int64(header.EventTimestampUsec)/1000
}

func TestBit(mask uint32, bit int) bool {
	return mask&(1<<uint(bit)) != 0
}
