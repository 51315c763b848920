// Package wizard implements the diagnostic wizard state machine. The
// transition rules are the contract; where state lives (memory, Redis,
// a browser session) is a pluggable detail.
package wizard

import (
	"time"

	"monpro-diagnostic/internal/models"
)

// Stage is the wizard's position in the flow.
type Stage string

const (
	StageRegion    Stage = "region"    // no region chosen yet
	StagePath      Stage = "path"      // region chosen, picking a persona
	StageAnswering Stage = "answering" // stepping through questions
	StageDelivery  Stage = "delivery"  // identity + delivery details
	StageSubmitted Stage = "submitted" // terminal
)

// AuthorizedWindow bounds how long the post-submission marker lets a
// confirmation view distinguish a legitimate visit from direct
// navigation.
const AuthorizedWindow = 5 * time.Minute

// State is the session-scoped accumulator mutated by every wizard
// interaction.
type State struct {
	Stage       Stage          `json:"stage"`
	Region      models.Region  `json:"region"`
	Path        models.Path    `json:"path,omitempty"`
	CurrentStep int            `json:"currentStep"`
	Answers     models.Answers `json:"answers"`

	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	BrandName string `json:"brandName"`
	Email     string `json:"email"`

	DeliveryMethod models.DeliveryMethod `json:"deliveryMethod,omitempty"`
	Phone          string                `json:"phone,omitempty"`

	// AuthorizedAt is set on successful submission; all other fields are
	// cleared at that point.
	AuthorizedAt time.Time `json:"authorizedAt,omitempty"`
}

func newState() *State {
	return &State{
		Stage:   StageRegion,
		Answers: models.Answers{},
	}
}

// Authorized reports whether the short-lived post-submission marker is
// still valid.
func (s *State) Authorized(now time.Time) bool {
	if s.Stage != StageSubmitted || s.AuthorizedAt.IsZero() {
		return false
	}
	return now.Sub(s.AuthorizedAt) <= AuthorizedWindow
}
