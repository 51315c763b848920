package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Region is the market a lead belongs to. It only affects currency
// labeling, never the question semantics.
type Region string

const (
	RegionIndia  Region = "india"
	RegionEurope Region = "europe"
	RegionUK     Region = "uk"
)

func (r Region) Valid() bool {
	switch r {
	case RegionIndia, RegionEurope, RegionUK:
		return true
	}
	return false
}

// CurrencyCode returns the ISO currency code for the region.
func (r Region) CurrencyCode() string {
	switch r {
	case RegionIndia:
		return "INR"
	case RegionEurope:
		return "EUR"
	default:
		return "GBP"
	}
}

// CurrencySymbol returns the symbol used in question text and prompts.
func (r Region) CurrencySymbol() string {
	switch r {
	case RegionIndia:
		return "₹"
	case RegionEurope:
		return "€"
	default:
		return "£"
	}
}

// Path is the persona bucket that selects a question set.
type Path string

const (
	PathScaler   Path = "scaler"
	PathFounder  Path = "founder"
	PathOperator Path = "operator"
	PathExplorer Path = "explorer"
)

func (p Path) Valid() bool {
	switch p {
	case PathScaler, PathFounder, PathOperator, PathExplorer:
		return true
	}
	return false
}

// DeliveryMethod is how the lead wants their roadmap delivered.
type DeliveryMethod string

const (
	DeliveryEmail    DeliveryMethod = "email"
	DeliveryWhatsApp DeliveryMethod = "whatsapp"
)

// AnswerValue holds either a single selected option value or the
// selection set of a multi-select question. On the wire it is a JSON
// string or array of strings.
type AnswerValue struct {
	values []string
	multi  bool
}

func SingleAnswer(value string) AnswerValue {
	return AnswerValue{values: []string{value}}
}

func MultiAnswer(values ...string) AnswerValue {
	vs := make([]string, len(values))
	copy(vs, values)
	return AnswerValue{values: vs, multi: true}
}

// IsMulti reports whether the answer was recorded for a multi-select
// question.
func (a AnswerValue) IsMulti() bool { return a.multi }

// Single returns the selected value of a single-select answer.
func (a AnswerValue) Single() string {
	if a.multi || len(a.values) == 0 {
		return ""
	}
	return a.values[0]
}

// Values returns the selection set. Single-select answers yield a
// one-element slice.
func (a AnswerValue) Values() []string {
	out := make([]string, len(a.values))
	copy(out, a.values)
	return out
}

func (a AnswerValue) MarshalJSON() ([]byte, error) {
	if a.multi {
		return json.Marshal(a.values)
	}
	return json.Marshal(a.Single())
}

func (a *AnswerValue) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		*a = SingleAnswer(single)
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err == nil {
		*a = MultiAnswer(many...)
		return nil
	}
	return fmt.Errorf("answer value must be a string or array of strings")
}

// Answers maps question id to the recorded answer.
type Answers map[string]AnswerValue

// Submission is the payload a lead sends once, at the end of the wizard.
// Frozen at submit time; validated and sanitized server-side; never
// mutated after acceptance.
type Submission struct {
	Region         Region         `json:"region"`
	Path           Path           `json:"path"`
	Answers        Answers        `json:"answers"`
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	BrandName      string         `json:"brandName"`
	Email          string         `json:"email"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod,omitempty"`
	Phone          string         `json:"phone,omitempty"`
	Timestamp      time.Time      `json:"timestamp"`
}

// MCQOption is one selectable option of a question.
type MCQOption struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Question is one wizard step's prompt. Questions are immutable static
// data, indexed by path; region only relabels currency tokens.
type Question struct {
	ID               string      `json:"id"`
	Title            string      `json:"title"`
	Options          []MCQOption `json:"options"`
	HelperText       string      `json:"helperText,omitempty"`
	MultiSelect      bool        `json:"multiSelect,omitempty"`
	ExclusiveOptions []string    `json:"exclusiveOptions,omitempty"`
	MaxSelections    int         `json:"maxSelections,omitempty"`
}

// IsExclusive reports whether the option value is mutually exclusive
// with all other options of this question.
func (q Question) IsExclusive(value string) bool {
	for _, v := range q.ExclusiveOptions {
		if v == value {
			return true
		}
	}
	return false
}

// PathInfo describes a persona card on the path-selection screen.
type PathInfo struct {
	ID          Path   `json:"id"`
	Title       string `json:"title"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
}
