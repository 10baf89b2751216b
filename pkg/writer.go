package cffilter

import (
	"errors"
	"fmt"

	hdf5 "github.com/jmbenlloch/go-hdf5"
)

// TableWriter receives the selected collisions and particle candidates.
type TableWriter interface {
	WriteCollision(event *Event) int
	WriteParticle(collisionRef int, track *Track, cutBits uint32, pidBits uint32)
	Close() error
}

// Role of a particle table row.
const (
	PartTypeTrack int32 = iota
	PartTypeV0Child
	PartTypeV0
)

// Writer stores the filter output in an HDF5 file: the run info and
// the collision and particle tables, plus a summary of the QA
// histograms written on Close.
type Writer struct {
	File           *hdf5.File
	Filename       string
	FirstEvt       bool
	RunGroup       *hdf5.Group
	EventsGroup    *hdf5.Group
	QAGroup        *hdf5.Group
	RunInfoTable   *hdf5.Dataset
	CollisionTable *hdf5.Dataset
	ParticleTable  *hdf5.Dataset
	QATable        *hdf5.Dataset
	registry       *HistogramRegistry
	CollCounter    int
	PartCounter    int
}

func NewWriter(filename string, registry *HistogramRegistry) *Writer {
	// Set string size for HDF5
	hdf5.SetStringLength(STRLEN)

	writer := &Writer{}
	fmt.Println("hdf5writer: Creating file: ", filename)
	writer.File = openFile(filename)
	writer.Filename = filename
	writer.RunGroup = createGroup(writer.File, "Run")
	writer.EventsGroup = createGroup(writer.File, "Events")
	writer.QAGroup = createGroup(writer.File, "QA")
	writer.RunInfoTable = createTable(writer.RunGroup, "runInfo", RunInfoHDF5{})
	writer.CollisionTable = createTable(writer.EventsGroup, "collisions", CollisionHDF5{})
	writer.ParticleTable = createTable(writer.EventsGroup, "particles", ParticleHDF5{})
	writer.QATable = createTable(writer.QAGroup, "summary", HistSummaryHDF5{})
	writer.registry = registry
	return writer
}

// WriteCollision appends one collision row and returns its index, used
// as the collision reference of the particle rows. The run info row is
// written with the first collision.
func (w *Writer) WriteCollision(event *Event) int {
	if !w.FirstEvt {
		writeEntryToTable(w.RunInfoTable, RunInfoHDF5{run_number: int32(event.RunNumber)}, 0)
		w.FirstEvt = true
	}

	// Spherocity and magnetic field are not computed here, the
	// downstream mixing code expects -2 in both columns.
	row := CollisionHDF5{
		pos_z:        float32(event.Collision.PosZ),
		mult_v0m:     float32(event.Collision.MultFV0M),
		mult_ntracks: int32(event.Collision.MultNTracksPV),
		spher:        -2,
		mag_field:    -2,
	}
	writeEntryToTable(w.CollisionTable, row, w.CollCounter)
	ref := w.CollCounter
	w.CollCounter++
	return ref
}

// WriteParticle appends one candidate row. Track rows carry no decay
// children and no invariant mass, those columns stay at zero.
func (w *Writer) WriteParticle(collisionRef int, track *Track, cutBits uint32, pidBits uint32) {
	row := ParticleHDF5{
		collision_ref: int32(collisionRef),
		pt:            float32(track.Pt),
		eta:           float32(track.Eta),
		phi:           float32(track.Phi),
		part_type:     PartTypeTrack,
		cutbits:       cutBits,
		pidbits:       pidBits,
		dcaxy:         float32(track.DcaXY),
		child1:        0,
		child2:        0,
	}
	writeEntryToTable(w.ParticleTable, row, w.PartCounter)
	w.PartCounter++
}

func (w *Writer) Close() error {
	fmt.Println("Closing file hdf writer ", w.Filename)
	var errs []error

	if w.registry != nil {
		summaries := w.registry.Summaries()
		rows := make([]HistSummaryHDF5, len(summaries))
		for i, summary := range summaries {
			rows[i] = HistSummaryHDF5{
				name:    convertToHdf5String(summary.Name),
				entries: summary.Entries,
				mean:    summary.Mean,
				stddev:  summary.StdDev,
			}
		}
		if len(rows) > 0 {
			writeArrayToTable(w.QATable, &rows, 0)
		}
	}

	if err := w.RunInfoTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run info table: %w", err))
	}
	if err := w.CollisionTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing collision table: %w", err))
	}
	if err := w.ParticleTable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing particle table: %w", err))
	}
	if err := w.QATable.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing QA table: %w", err))
	}
	if err := w.RunGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing run group: %w", err))
	}
	if err := w.EventsGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing events group: %w", err))
	}
	if err := w.QAGroup.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing QA group: %w", err))
	}
	if err := w.File.Close(); err != nil {
		errs = append(errs, fmt.Errorf("error closing file: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
