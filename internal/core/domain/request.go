package domain

import "time"

// RequestStatus is the review state of a service request.
type RequestStatus string

const (
	RequestPending  RequestStatus = "pending"
	RequestApproved RequestStatus = "approved"
	RequestRejected RequestStatus = "rejected"
)

// ServiceRequest is a client's ask for a catalog service. Approval by an
// admin creates a project for the requesting client; the two writes are not
// transactional, so an approved request without a project is a possible
// intermediate state.
type ServiceRequest struct {
	ID        string        `json:"id" bson:"_id,omitempty"`
	ClientID  string        `json:"client" bson:"client"`
	ServiceID string        `json:"service" bson:"service"`
	Status    RequestStatus `json:"status" bson:"status"`
	Message   string        `json:"message,omitempty" bson:"message,omitempty"`
	CreatedAt time.Time     `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time     `json:"updated_at" bson:"updated_at"`
}
