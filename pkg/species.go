package cffilter

import (
	"encoding/json"
	"fmt"
)

// ParticleSpecies enumerates the particles the filter selects on.
// Lambda takes part in kinematic selection only; it has no direct
// PID discriminant.
type ParticleSpecies int

const (
	Proton ParticleSpecies = iota
	Deuteron
	Lambda
)

var particleSpeciesStrings = []string{
	"proton",
	"deuteron",
	"lambda",
}

func (s ParticleSpecies) String() string {
	if s < Proton || s > Lambda {
		return "UNKNOWN"
	}
	return particleSpeciesStrings[s]
}

func (s ParticleSpecies) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *ParticleSpecies) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for i, v := range particleSpeciesStrings {
		if v == name {
			*s = ParticleSpecies(i)
			return nil
		}
	}
	return fmt.Errorf("invalid ParticleSpecies: %s", name)
}

// V0Daughter enumerates the decay daughters of V0 candidates.
type V0Daughter int

const (
	DaughterPion V0Daughter = iota
	DaughterProton
)

var v0DaughterStrings = []string{
	"pion",
	"proton",
}

func (d V0Daughter) String() string {
	if d < DaughterPion || d > DaughterProton {
		return "UNKNOWN"
	}
	return v0DaughterStrings[d]
}

// RejectionSpecies enumerates the contaminants vetoed against during
// deuteron candidate evaluation.
type RejectionSpecies int

const (
	RejectProton RejectionSpecies = iota
	RejectPion
	RejectElectron
)

var rejectionSpeciesStrings = []string{
	"proton",
	"pion",
	"electron",
}

func (r RejectionSpecies) String() string {
	if r < RejectProton || r > RejectElectron {
		return "UNKNOWN"
	}
	return rejectionSpeciesStrings[r]
}

// Particle masses in GeV/c^2 (PDG values).
const (
	MassElectron = 0.000510999
	MassPion     = 0.13957039
	MassProton   = 0.93827208
	MassDeuteron = 1.87561294
	MassLambda   = 1.115683
)
