package cffilter

type Event struct {
	RunNumber   uint32
	EventID     uint32
	GlobalBC    uint64
	TimestampMS int64
	Collision   Collision
	Tracks      []Track
	FT0         *FT0Record
	Error       bool
}

type Collision struct {
	PosX          float64
	PosY          float64
	PosZ          float64
	MultFV0M      float64
	MultNTracksPV int
	Sel8          bool
}

type Track struct {
	Pt                         float64
	Eta                        float64
	Phi                        float64
	Sign                       int
	P                          float64
	TpcInnerParam              float64
	TpcSignal                  float64
	TpcNClsFound               float64
	TpcNClsCrossedRows         float64
	TpcCrossedRowsOverFindable float64
	TpcNClsShared              float64
	ItsNCls                    float64
	ItsNClsInnerBarrel         float64
	TpcChi2NCl                 float64
	ItsChi2NCl                 float64
	DcaXY                      float64
	DcaZ                       float64
	HasTPC                     bool
	HasITS                     bool
	TPCRefit                   bool
	ITSRefit                   bool
	NSigmaTPCEl                float64
	NSigmaTPCPi                float64
	NSigmaTPCPr                float64
	NSigmaTPCDe                float64
	NSigmaTOFPr                float64
	NSigmaTOFDe                float64
}

type FT0Record struct {
	TimeA       float64
	TimeC       float64
	TriggerMask uint32
	// C-side entries keep their raw 0-based ids here; the QA task
	// offsets them past the A side when filling.
	ChannelA []FT0Channel
	ChannelC []FT0Channel
}

type FT0Channel struct {
	ChannelID int
	Amplitude float64
}
