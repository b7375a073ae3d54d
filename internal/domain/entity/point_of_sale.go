package entity

import "time"

// PointOfSale punto de venta de la empresa.
type PointOfSale struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Location  string    `json:"location"`
	CompanyID string    `json:"companyId,omitempty"`
	IsActive  *bool     `json:"isActive,omitempty"`
	CreatedAt time.Time `json:"createdAt,omitempty"`
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
	Count     *struct {
		Users int `json:"users"`
		Sales int `json:"sales"`
	} `json:"_count,omitempty"`
	Users []User `json:"users,omitempty"`
}

// UsersCount usuarios asignados (0 si el backend no envió conteos).
func (p *PointOfSale) UsersCount() int {
	if p.Count == nil {
		return 0
	}
	return p.Count.Users
}

// SalesCount ventas registradas (0 si el backend no envió conteos).
func (p *PointOfSale) SalesCount() int {
	if p.Count == nil {
		return 0
	}
	return p.Count.Sales
}
