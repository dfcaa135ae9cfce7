package domain

// StepError is a user-correctable validation failure for one wizard step.
// It is always returned as data, never raised as an error, so handlers can
// surface the message against the owning step and field.
//
// Eligibility is populated only for reloan-blocked failures, carrying enough
// structure to render a repayment progress indicator instead of bare text.
type StepError struct {
	Step        WizardStep         `json:"step"`
	Field       string             `json:"field,omitempty"`
	Message     string             `json:"message"`
	Eligibility *ReloanEligibility `json:"eligibility,omitempty"`
}

// NewStepError builds a plain validation failure for a step and field.
func NewStepError(step WizardStep, field, message string) *StepError {
	return &StepError{Step: step, Field: field, Message: message}
}
