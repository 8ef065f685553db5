// Package domain holds the quotation form aggregate and its pure logic:
// the wizard state machine, personal info validation, and price calculation.
package domain

import (
	"time"

	"github.com/google/uuid"
)

// Wizard steps. The final options overlay is not a step of its own; it is a
// flag raised on top of the review step.
const (
	StepPersonalInfo = 0
	StepServices     = 1
	StepReview       = 2
)

// ServiceSelection is one chosen sub-service on the form.
// The (ServiceID, SubServiceID) pair is unique within a session.
type ServiceSelection struct {
	ServiceID    uuid.UUID `json:"serviceId"`
	SubServiceID uuid.UUID `json:"subServiceId"`
	// Quantity is nil for flat-rate options.
	Quantity *int64 `json:"quantity,omitempty"`
}

// CustomerFormData is everything the customer enters across the wizard.
type CustomerFormData struct {
	Name             string             `json:"name"`
	Email            string             `json:"email"`
	Phone            string             `json:"phone"`
	Country          string             `json:"country"`
	Message          string             `json:"message"`
	SelectedServices []ServiceSelection `json:"selectedServices"`
	Urgent           bool               `json:"urgent"`
	HasDocument      bool               `json:"hasDocument"`
	DocumentKey      string             `json:"documentKey"`
	DocumentName     string             `json:"documentName"`
}

// FormSession is the server-side wizard aggregate. All mutation flows
// through the quotation controller service; it is persisted as JSON in Redis.
type FormSession struct {
	ID               uuid.UUID         `json:"id"`
	Data             CustomerFormData  `json:"data"`
	CurrentStep      int               `json:"currentStep"`
	ShowFinalOptions bool              `json:"showFinalOptions"`
	Submitting       bool              `json:"submitting"`
	ShowConfirmation bool              `json:"showConfirmation"`
	FormErrors       map[string]string `json:"formErrors"`
	CreatedAt        time.Time         `json:"createdAt"`
	UpdatedAt        time.Time         `json:"updatedAt"`
}

// NewFormSession creates a fresh session in its default state.
func NewFormSession() FormSession {
	now := time.Now().UTC()
	return FormSession{
		ID:          uuid.New(),
		Data:        CustomerFormData{SelectedServices: []ServiceSelection{}},
		CurrentStep: StepPersonalInfo,
		FormErrors:  map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// Reset returns the session to its default state, keeping the ID and
// creation time. Used after the confirmation screen has been shown.
func (s *FormSession) Reset() {
	s.Data = CustomerFormData{SelectedServices: []ServiceSelection{}}
	s.CurrentStep = StepPersonalInfo
	s.ShowFinalOptions = false
	s.Submitting = false
	s.ShowConfirmation = false
	s.FormErrors = map[string]string{}
	s.UpdatedAt = time.Now().UTC()
}

// FindSelection returns the index of the selection matching the pair,
// or -1 when not selected.
func (d *CustomerFormData) FindSelection(serviceID, subServiceID uuid.UUID) int {
	for i, sel := range d.SelectedServices {
		if sel.ServiceID == serviceID && sel.SubServiceID == subServiceID {
			return i
		}
	}
	return -1
}
