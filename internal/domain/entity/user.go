package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin      = "admin"
	RoleManager    = "manager"
	RoleCommercial = "commercial"
)

// ValidRole indica si el rol es uno de los admitidos por el backend.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleManager || role == RoleCommercial
}

// User empleado de la empresa.
type User struct {
	ID          string     `json:"id"`
	FirstName   string     `json:"firstName"`
	LastName    string     `json:"lastName"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"isActive"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt,omitempty"`
	PointOfSale *struct {
		ID       string `json:"id"`
		Name     string `json:"name"`
		Location string `json:"location"`
	} `json:"pointOfSale,omitempty"`
}

// FullName nombre y apellido.
func (u User) FullName() string {
	return joinName(u.FirstName, u.LastName)
}
