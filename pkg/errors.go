package cffilter

import "fmt"

// ErrOpenFile represents an error when opening a file.
type ErrOpenFile struct {
	Filename string
	Err      error
}

func (e *ErrOpenFile) Error() string {
	return fmt.Sprintf("error opening file %q: %v", e.Filename, e.Err)
}

// ErrBadCutTable represents a malformed selection cut table in the
// configuration. Raised at load time, before any event is processed.
type ErrBadCutTable struct {
	Table  string
	Reason string
}

func (e *ErrBadCutTable) Error() string {
	return fmt.Sprintf("bad cut table %q: %s", e.Table, e.Reason)
}

// ErrNoPIDForSpecies represents a PID discriminant request for a
// species that has none defined.
type ErrNoPIDForSpecies struct {
	Species ParticleSpecies
}

func (e *ErrNoPIDForSpecies) Error() string {
	return fmt.Sprintf("no PID selection defined for species %q", e.Species)
}

// ErrUnknownDaughter represents a V0 daughter selection request for a
// species outside the daughter enumeration.
type ErrUnknownDaughter struct {
	Species V0Daughter
}

func (e *ErrUnknownDaughter) Error() string {
	return fmt.Sprintf("particle species %d not defined for V0 daughters", int(e.Species))
}

// ErrShortEvent represents an event payload shorter than its header
// declares.
type ErrShortEvent struct {
	EventID uint32
	Want    int
	Got     int
}

func (e *ErrShortEvent) Error() string {
	return fmt.Sprintf("event %d payload too short: want %d bytes, got %d", e.EventID, e.Want, e.Got)
}

// ErrBadMagic represents an event header whose magic word does not
// match the AOD export format.
type ErrBadMagic struct {
	Got EventMagicType
}

func (e *ErrBadMagic) Error() string {
	return fmt.Sprintf("bad event magic word 0x%08X", uint32(e.Got))
}
