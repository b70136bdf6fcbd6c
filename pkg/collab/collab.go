// Package collab defines the contracts of the external collaborator
// services the action handlers call out to, plus the shared business record
// store. Every collaborator except the text generator is optional: a nil
// collaborator degrades the action to a logged simulation.
package collab

import "context"

// Email is an outgoing email message.
type Email struct {
	To       string `json:"to"`
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Template string `json:"template,omitempty"`
}

// EmailSender delivers outgoing email.
type EmailSender interface {
	SendEmail(ctx context.Context, email Email) error
}

// Appointment is a calendar entry created by the create-appointment action.
type Appointment struct {
	Title        string `json:"title"`
	Date         string `json:"date"`
	DurationMins int    `json:"duration_mins"`
	Reference    string `json:"reference,omitempty"`
}

// Calendar manages appointments.
type Calendar interface {
	AddAppointment(ctx context.Context, appointment Appointment) (string, error)
}

// Inventory reserves material for an order.
type Inventory interface {
	ReserveMaterial(ctx context.Context, materialID string, quantity float64, orderID string) error
}

// Notifier pushes in-app notifications.
type Notifier interface {
	Notify(ctx context.Context, title, message string) error
}

// TextGenerator produces text from a prompt. Unlike the other collaborators
// the ai-generate action has no core effect without it and fails hard when
// it is absent or errors.
type TextGenerator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Services bundles the optional collaborators injected into the action
// handler registry. Nil fields are allowed.
type Services struct {
	Email     EmailSender
	Calendar  Calendar
	Inventory Inventory
	Notifier  Notifier
	TextGen   TextGenerator
	// FallbackTextGen is tried when TextGen fails.
	FallbackTextGen TextGenerator
}
