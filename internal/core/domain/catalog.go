package domain

import "time"

// Service is an offering in the company's catalog.
type Service struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	Name        string    `json:"name" bson:"name"`
	Description string    `json:"description,omitempty" bson:"description,omitempty"`
	Price       float64   `json:"price" bson:"price"`
	CreatedBy   string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" bson:"updated_at"`
}

// ClientCompany is an organisation that client users belong to.
type ClientCompany struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Industry     string    `json:"industry,omitempty" bson:"industry,omitempty"`
	ContactEmail string    `json:"contact_email,omitempty" bson:"contact_email,omitempty"`
	CreatedBy    string    `json:"created_by,omitempty" bson:"created_by,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}
