package wizard

import (
	"context"
	"errors"
	"time"

	"monpro-diagnostic/internal/diagnostic/questionbank"
	"monpro-diagnostic/internal/diagnostic/sanitize"
	"monpro-diagnostic/internal/models"
)

var (
	ErrInvalidRegion      = errors.New("INVALID_REGION")
	ErrInvalidPath        = errors.New("INVALID_PATH")
	ErrNoRegion           = errors.New("NO_REGION_CHOSEN")
	ErrNoPath             = errors.New("NO_PATH_CHOSEN")
	ErrNotAnswering       = errors.New("NOT_ANSWERING")
	ErrUnknownOption      = errors.New("UNKNOWN_OPTION")
	ErrAnswerRequired     = errors.New("ANSWER_REQUIRED")
	ErrNotInDelivery      = errors.New("NOT_IN_DELIVERY")
	ErrIdentityIncomplete = errors.New("IDENTITY_INCOMPLETE")
	ErrDeliveryMethod     = errors.New("DELIVERY_METHOD_REQUIRED")
	ErrInvalidEmail       = errors.New("INVALID_EMAIL")
	ErrInvalidPhone       = errors.New("INVALID_PHONE")
	ErrAlreadySubmitted   = errors.New("ALREADY_SUBMITTED")
)

// Submitter sends a frozen submission to the diagnostic endpoint. The
// returned error's message is surfaced to the user verbatim.
type Submitter interface {
	Submit(ctx context.Context, sub *models.Submission) error
}

// Machine drives one session's wizard. Not safe for concurrent use;
// a session has a single owner.
type Machine struct {
	store     SessionStore
	sessionID string
	submitter Submitter
	state     *State
	now       func() time.Time
}

// New loads the session's persisted state (or starts empty) and returns
// a machine bound to it.
func New(ctx context.Context, store SessionStore, sessionID string, submitter Submitter) (*Machine, error) {
	state, err := store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if state == nil {
		state = newState()
	}
	if state.Answers == nil {
		state.Answers = models.Answers{}
	}

	return &Machine{
		store:     store,
		sessionID: sessionID,
		submitter: submitter,
		state:     state,
		now:       time.Now,
	}, nil
}

// State returns a snapshot copy of the current state.
func (m *Machine) State() State {
	cp := *m.state
	cp.Answers = make(models.Answers, len(m.state.Answers))
	for k, v := range m.state.Answers {
		cp.Answers[k] = v
	}
	return cp
}

func (m *Machine) persist(ctx context.Context) error {
	return m.store.Save(ctx, m.sessionID, m.state)
}

// SetRegion stores the region and moves past the region stage.
func (m *Machine) SetRegion(ctx context.Context, region models.Region) error {
	if !region.Valid() {
		return ErrInvalidRegion
	}
	m.state.Region = region
	if m.state.Stage == StageRegion {
		m.state.Stage = StagePath
	}
	return m.persist(ctx)
}

// ChoosePath selects a persona, resets the step index and discards any
// answers recorded for a previously chosen path.
func (m *Machine) ChoosePath(ctx context.Context, path models.Path) error {
	if m.state.Region == "" {
		return ErrNoRegion
	}
	if !path.Valid() {
		return ErrInvalidPath
	}

	m.state.Path = path
	m.state.CurrentStep = 0
	m.state.Answers = models.Answers{}
	m.state.Stage = StageAnswering
	return m.persist(ctx)
}

// Questions returns the region-labeled question set for the chosen path.
func (m *Machine) Questions() []models.Question {
	if m.state.Path == "" {
		return nil
	}
	return questionbank.ForPath(m.state.Path, m.state.Region)
}

func (m *Machine) currentQuestion() (models.Question, bool) {
	if m.state.Stage != StageAnswering || m.state.Path == "" {
		return models.Question{}, false
	}
	questions := questionbank.ForPath(m.state.Path, m.state.Region)
	if m.state.CurrentStep < 0 || m.state.CurrentStep >= len(questions) {
		return models.Question{}, false
	}
	return questions[m.state.CurrentStep], true
}

// CurrentQuestion exposes the question at the current step.
func (m *Machine) CurrentQuestion() (models.Question, bool) {
	return m.currentQuestion()
}

// Select records an option for the current question.
//
// Single-select questions replace any prior value. Multi-select
// questions toggle: a selected value is removed; a new exclusive value
// clears everything else; a new regular value first drops any selected
// exclusive values; adding beyond maxSelections is a no-op.
func (m *Machine) Select(ctx context.Context, value string) error {
	q, ok := m.currentQuestion()
	if !ok {
		return ErrNotAnswering
	}
	if !optionExists(q, value) {
		return ErrUnknownOption
	}

	if !q.MultiSelect {
		m.state.Answers[q.ID] = models.SingleAnswer(value)
		return m.persist(ctx)
	}

	current := m.state.Answers[q.ID].Values()

	if contains(current, value) {
		m.state.Answers[q.ID] = models.MultiAnswer(remove(current, value)...)
		return m.persist(ctx)
	}

	var next []string
	if q.IsExclusive(value) {
		next = []string{value}
	} else {
		for _, v := range current {
			if !q.IsExclusive(v) {
				next = append(next, v)
			}
		}
		next = append(next, value)
		if q.MaxSelections > 0 && len(next) > q.MaxSelections {
			// Over the cap: leave the recorded answer unchanged.
			return nil
		}
	}

	m.state.Answers[q.ID] = models.MultiAnswer(next...)
	return m.persist(ctx)
}

// CanAdvance reports whether the current question has a shape-valid
// answer recorded.
func (m *Machine) CanAdvance() bool {
	q, ok := m.currentQuestion()
	if !ok {
		return false
	}
	answer, recorded := m.state.Answers[q.ID]
	if !recorded {
		return false
	}
	if q.MultiSelect {
		return answer.IsMulti() && len(answer.Values()) > 0
	}
	return !answer.IsMulti() && answer.Single() != ""
}

// Next advances to the next question, or to the delivery stage from the
// last one. Blocked while the current question is unanswered.
func (m *Machine) Next(ctx context.Context) error {
	if m.state.Stage != StageAnswering {
		return ErrNotAnswering
	}
	if !m.CanAdvance() {
		return ErrAnswerRequired
	}

	total := questionbank.Count(m.state.Path)
	if m.state.CurrentStep < total-1 {
		m.state.CurrentStep++
	} else {
		m.state.Stage = StageDelivery
	}
	return m.persist(ctx)
}

// Back steps backwards: from delivery to the last question, between
// questions, and from the first question out to path selection.
func (m *Machine) Back(ctx context.Context) error {
	switch m.state.Stage {
	case StageDelivery:
		m.state.Stage = StageAnswering
		m.state.CurrentStep = questionbank.Count(m.state.Path) - 1
	case StageAnswering:
		if m.state.CurrentStep > 0 {
			m.state.CurrentStep--
		} else {
			// Leaving the question flow is explicit; answers survive until
			// a path is chosen again.
			m.state.Stage = StagePath
		}
	default:
		return ErrNotAnswering
	}
	return m.persist(ctx)
}

func (m *Machine) SetIdentity(ctx context.Context, firstName, lastName, brandName string) error {
	m.state.FirstName = firstName
	m.state.LastName = lastName
	m.state.BrandName = brandName
	return m.persist(ctx)
}

func (m *Machine) SetEmail(ctx context.Context, email string) error {
	m.state.Email = email
	return m.persist(ctx)
}

func (m *Machine) SetDelivery(ctx context.Context, method models.DeliveryMethod, phone string) error {
	m.state.DeliveryMethod = method
	m.state.Phone = phone
	return m.persist(ctx)
}

// validateForSubmit mirrors the checks the delivery screen runs before
// calling the endpoint.
func (m *Machine) validateForSubmit() error {
	if m.state.FirstName == "" || m.state.LastName == "" || m.state.BrandName == "" {
		return ErrIdentityIncomplete
	}
	switch m.state.DeliveryMethod {
	case models.DeliveryEmail:
		if !sanitize.ValidEmail(m.state.Email) {
			return ErrInvalidEmail
		}
	case models.DeliveryWhatsApp:
		if !sanitize.ValidPhone(m.state.Phone) {
			return ErrInvalidPhone
		}
	default:
		return ErrDeliveryMethod
	}
	return nil
}

// Submit freezes the accumulated state into a submission and sends it.
// On success the wizard state is cleared and the authorized marker set;
// on any failure the state stays in the delivery stage so the user can
// retry.
func (m *Machine) Submit(ctx context.Context) error {
	if m.state.Stage == StageSubmitted {
		return ErrAlreadySubmitted
	}
	if m.state.Stage != StageDelivery {
		return ErrNotInDelivery
	}
	if m.state.Path == "" {
		return ErrNoPath
	}
	if err := m.validateForSubmit(); err != nil {
		return err
	}

	sub := &models.Submission{
		Region:         m.state.Region,
		Path:           m.state.Path,
		Answers:        m.state.Answers,
		FirstName:      m.state.FirstName,
		LastName:       m.state.LastName,
		BrandName:      m.state.BrandName,
		Email:          m.state.Email,
		DeliveryMethod: m.state.DeliveryMethod,
		Phone:          m.state.Phone,
		Timestamp:      m.now().UTC(),
	}

	if err := m.submitter.Submit(ctx, sub); err != nil {
		return err
	}

	m.state = newState()
	m.state.Stage = StageSubmitted
	m.state.AuthorizedAt = m.now().UTC()
	return m.persist(ctx)
}

// Reset abandons the wizard entirely.
func (m *Machine) Reset(ctx context.Context) error {
	m.state = newState()
	return m.store.Clear(ctx, m.sessionID)
}

func optionExists(q models.Question, value string) bool {
	for _, opt := range q.Options {
		if opt.Value == value {
			return true
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}

func remove(values []string, v string) []string {
	out := values[:0]
	for _, x := range values {
		if x != v {
			out = append(out, x)
		}
	}
	return out
}
