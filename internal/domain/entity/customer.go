package entity

import "time"

// Customer cliente asociado a una venta (propiedad del backend).
type Customer struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	ContactPerson  string    `json:"contactPerson,omitempty"`
	Email          string    `json:"email,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	AssignedUserID string    `json:"assignedUserId,omitempty"`
	Status         string    `json:"status,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"createdAt,omitempty"`
	UpdatedAt      time.Time `json:"updatedAt,omitempty"`
}
