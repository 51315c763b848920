package models

import "time"

// EstimatedROI carries single representative numbers reduced from the
// analysis ranges.
type EstimatedROI struct {
	Currency           string `json:"currency"`
	MonthlyImpact      int    `json:"monthlyImpact"`
	ImplementationCost int    `json:"implementationCost"`
}

// Battlecard is the internal, operator-facing sales artifact produced
// from a submission. Created once per accepted submission, immutable
// after creation, never shown to the lead.
type Battlecard struct {
	LeadID         string         `json:"leadId"`
	Region         Region         `json:"region"`
	Path           Path           `json:"path"`
	Answers        Answers        `json:"answers"`
	FirstName      string         `json:"firstName"`
	LastName       string         `json:"lastName"`
	BrandName      string         `json:"brandName"`
	Email          string         `json:"email"`
	DeliveryMethod DeliveryMethod `json:"deliveryMethod,omitempty"`
	Phone          string         `json:"phone,omitempty"`

	RevenueLeaks           []string     `json:"revenueLeaks"`
	ManualFriction         []string     `json:"manualFriction"`
	RecommendedAutomations []string     `json:"recommendedAutomations"`
	EstimatedROI           EstimatedROI `json:"estimatedROI"`
	PriorityScore          int          `json:"priorityScore"`

	GeneratedAt time.Time   `json:"generatedAt"`
	RawData     *Submission `json:"rawData"`
}
