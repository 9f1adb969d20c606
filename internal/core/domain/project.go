package domain

import "time"

// ProjectStatus represents the delivery state of a project.
type ProjectStatus string

const (
	ProjectNotStarted ProjectStatus = "not_started"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectOnHold     ProjectStatus = "on_hold"
)

// ValidProjectStatus reports whether s is a known project status.
func ValidProjectStatus(s ProjectStatus) bool {
	switch s {
	case ProjectNotStarted, ProjectInProgress, ProjectCompleted, ProjectOnHold:
		return true
	}
	return false
}

// PaymentStatus is derived from amountPaid vs totalAmount and is never set
// directly by callers.
type PaymentStatus string

const (
	PaymentUnpaid        PaymentStatus = "unpaid"
	PaymentPartiallyPaid PaymentStatus = "partially_paid"
	PaymentPaid          PaymentStatus = "paid"
)

// PaymentEntry is one line in a project's payment ledger.
type PaymentEntry struct {
	Amount float64   `json:"amount" bson:"amount"`
	Date   time.Time `json:"date" bson:"date"`
	Method string    `json:"method,omitempty" bson:"method,omitempty"`
	Notes  string    `json:"notes,omitempty" bson:"notes,omitempty"`
}

// ProjectFile records metadata for a file attached to a project. The file
// contents live in external storage; only the reference is kept here.
type ProjectFile struct {
	Filename   string    `json:"filename" bson:"filename"`
	URL        string    `json:"url" bson:"url"`
	UploadedBy string    `json:"uploaded_by,omitempty" bson:"uploaded_by,omitempty"`
	UploadedAt time.Time `json:"uploaded_at" bson:"uploaded_at"`
}

// Project is the central work item linking a client to assigned employees.
type Project struct {
	ID                string        `json:"id" bson:"_id,omitempty"`
	Name              string        `json:"name" bson:"name"`
	Description       string        `json:"description,omitempty" bson:"description,omitempty"`
	ClientID          string        `json:"client" bson:"client"`
	AssignedEmployees []string      `json:"assigned_employees" bson:"assigned_employees"`
	Status            ProjectStatus `json:"status" bson:"status"`
	ServiceRequestID  string        `json:"service_request,omitempty" bson:"service_request,omitempty"`

	PaymentStatus  PaymentStatus  `json:"payment_status" bson:"payment_status"`
	TotalAmount    float64        `json:"total_amount" bson:"total_amount"`
	AmountPaid     float64        `json:"amount_paid" bson:"amount_paid"`
	PaymentHistory []PaymentEntry `json:"payment_history" bson:"payment_history"`

	Files []ProjectFile `json:"files" bson:"files"`

	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

// IsAssigned reports whether the given employee is on the project.
func (p *Project) IsAssigned(employeeID string) bool {
	for _, id := range p.AssignedEmployees {
		if id == employeeID {
			return true
		}
	}
	return false
}

// RecalcPaymentStatus recomputes the derived payment status. It must be
// called after every mutation of AmountPaid or TotalAmount; the stored
// value is never trusted independently.
func (p *Project) RecalcPaymentStatus() {
	switch {
	case p.AmountPaid >= p.TotalAmount && p.AmountPaid > 0:
		p.PaymentStatus = PaymentPaid
	case p.AmountPaid > 0:
		p.PaymentStatus = PaymentPartiallyPaid
	default:
		p.PaymentStatus = PaymentUnpaid
	}
}

// BalanceDue returns the outstanding amount, never negative.
func (p *Project) BalanceDue() float64 {
	if due := p.TotalAmount - p.AmountPaid; due > 0 {
		return due
	}
	return 0
}
